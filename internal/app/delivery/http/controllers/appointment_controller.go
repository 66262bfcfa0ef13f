package controllers

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	RequestTimeout     time.Duration
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, requestTimeout time.Duration) *AppointmentController {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		RequestTimeout:     requestTimeout,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CreateAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, violations, err := utils.DecodeCreateAppointment(r.Body)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CreateAppointment error decoding request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if len(violations) > 0 {
		validationErr := exceptions.ErrInputViolations(violations, utils.ValidateStruct(request))
		ctrl.Log.Error("AppointmentController.CreateAppointment request body has fields of the wrong type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings(constvars.LoggingValidationDetailsKey, validationErr.Details))
		utils.BuildErrorResponse(ctrl.Log, w, validationErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.CreateAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.writeUsecaseError(w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID))
	utils.BuildAppointmentResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindAppointmentByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindAppointmentByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	ctrl.Log.Info("AppointmentController.FindAppointmentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindAppointmentByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.writeUsecaseError(w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAppointmentByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	utils.BuildAppointmentResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindAppointmentsByInsuredID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindAppointmentsByInsuredID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	insuredID := chi.URLParam(r, constvars.URLParamInsuredID)
	ctrl.Log.Info("AppointmentController.FindAppointmentsByInsuredID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInsuredIDKey, insuredID))

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindAppointmentsByInsuredID(ctx, insuredID)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindAppointmentsByInsuredID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.writeUsecaseError(w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAppointmentsByInsuredID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, response.Count))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsByInsuredIDSuccessMessage, response)
}

func (ctrl *AppointmentController) writeUsecaseError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
