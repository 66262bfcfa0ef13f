package controllers

import (
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/responses"
	"appointment-service/internal/pkg/utils"
	"net/http"
	"time"
)

type HealthController struct {
	ServiceName string
}

func NewHealthController(serviceName string) *HealthController {
	return &HealthController{ServiceName: serviceName}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthCheck{
		Status:    "ok",
		Service:   ctrl.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
