package appointments

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/dto/requests"
	"appointment-service/internal/pkg/dto/responses"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	CreationFactPublisher contracts.CreationFactPublisher
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	creationFactPublisher contracts.CreationFactPublisher,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		CreationFactPublisher: creationFactPublisher,
		Log:                   logger,
		now:                   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error validating request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	now := uc.now()
	appointment := &models.Appointment{
		ID:          utils.GenerateID(),
		InsuredID:   request.InsuredID,
		ScheduleID:  request.ScheduleID,
		CountryCode: request.CountryCode,
		Status:      constvars.AppointmentStatusPending,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	err = uc.AppointmentRepository.Create(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error calling AppointmentRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	// The record stays PENDING when the fact cannot be emitted. The caller still
	// gets the created appointment.
	err = uc.CreationFactPublisher.PublishCreationFact(ctx, creationFactFromModel(appointment))
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error calling CreationFactPublisher.PublishCreationFact",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingCountryCodeKey, appointment.CountryCode),
			zap.Error(err),
		)
	}

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingCountryCodeKey, appointment.CountryCode),
		zap.Int64(constvars.LoggingScheduleIDKey, appointment.ScheduleID),
	)
	return toAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) FindAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindAppointmentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if appointmentID == "" {
		return nil, exceptions.ErrAppointmentIDRequired(nil)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAppointmentByID error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if appointment == nil {
		uc.Log.Info("appointmentUsecase.FindAppointmentByID appointment not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}

	uc.Log.Info("appointmentUsecase.FindAppointmentByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, string(appointment.Status)),
	)
	return toAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) FindAppointmentsByInsuredID(ctx context.Context, insuredID string) (*responses.InsuredAppointments, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindAppointmentsByInsuredID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInsuredIDKey, insuredID),
	)

	err := utils.ValidateStruct(&requests.FindAppointmentsByInsuredID{InsuredID: insuredID})
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	appointments, err := uc.AppointmentRepository.FindByInsuredID(ctx, insuredID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAppointmentsByInsuredID error calling AppointmentRepository.FindByInsuredID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &responses.InsuredAppointments{
		InsuredID:    insuredID,
		Count:        len(appointments),
		Appointments: make([]responses.Appointment, 0, len(appointments)),
	}
	for i := range appointments {
		response.Appointments = append(response.Appointments, *toAppointmentResponse(&appointments[i]))
	}

	uc.Log.Info("appointmentUsecase.FindAppointmentsByInsuredID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, response.Count),
	)
	return response, nil
}

// UpdateAppointmentStatus applies an outcome to the core record. Unknown ids and
// repeated outcomes are no-ops so redeliveries are harmless.
func (uc *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, fact *events.OutcomeFact) error {
	messageID := utils.GetMessageID(ctx)
	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus called",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingStatusKey, fact.Status),
	)

	status := constvars.AppointmentStatus(fact.Status)
	if !status.IsTerminal() {
		return exceptions.ErrMalformedMessage(fmt.Errorf("unexpected outcome status %q", fact.Status), constvars.ResourceAppointments)
	}

	changed, err := uc.AppointmentRepository.UpdateStatus(ctx, fact.AppointmentID, status, uc.now())
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointmentStatus error calling AppointmentRepository.UpdateStatus",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
			zap.Error(err),
		)
		return err
	}

	if !changed {
		uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus nothing to update",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		)
		return nil
	}

	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus succeeded",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingStatusKey, fact.Status),
	)
	return nil
}

func (uc *appointmentUsecase) FindStalePendingAppointments(ctx context.Context, olderThan time.Duration) ([]models.Appointment, error) {
	cutoff := uc.now().Add(-olderThan)
	appointments, err := uc.AppointmentRepository.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindStalePendingAppointments error calling AppointmentRepository.FindPendingOlderThan",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Time(constvars.LoggingCutoffKey, cutoff),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

func creationFactFromModel(appointment *models.Appointment) events.CreationFact {
	return events.CreationFact{
		AppointmentID: appointment.ID,
		InsuredID:     appointment.InsuredID,
		ScheduleID:    appointment.ScheduleID,
		CountryCode:   appointment.CountryCode,
		Status:        string(appointment.Status),
		CreatedAt:     appointment.CreatedAt,
		EventType:     constvars.EventTypeAppointmentCreated,
	}
}

func toAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		ID:          appointment.ID,
		InsuredID:   appointment.InsuredID,
		ScheduleID:  appointment.ScheduleID,
		CountryCode: appointment.CountryCode,
		Status:      string(appointment.Status),
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}
