package routers

import (
	"appointment-service/internal/app/delivery/http/controllers"
	"appointment-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, appointmentController *controllers.AppointmentController) {
	router.Post("/", appointmentController.CreateAppointment)
	router.Get("/insured/{"+constvars.URLParamInsuredID+"}", appointmentController.FindAppointmentsByInsuredID)
	router.Get("/{"+constvars.URLParamAppointmentID+"}", appointmentController.FindAppointmentByID)
}
