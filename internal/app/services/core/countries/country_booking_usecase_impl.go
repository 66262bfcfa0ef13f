package countries

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type countryBookingUsecase struct {
	countryCode          string
	hardened             bool
	BookingRepository    contracts.CountryBookingRepository
	OutcomeFactPublisher contracts.OutcomeFactPublisher
	Log                  *zap.Logger
	now                  func() time.Time
}

// NewCountryBookingUsecase binds the confirmation steps to one country store.
// With hardened set the store is expected to carry unique indexes on scheduleId
// and externalId, and bookings that already exist for an appointment are
// re-confirmed instead of evaluated again.
func NewCountryBookingUsecase(
	countryCode string,
	hardened bool,
	bookingRepository contracts.CountryBookingRepository,
	outcomeFactPublisher contracts.OutcomeFactPublisher,
	logger *zap.Logger,
) contracts.CountryBookingUsecase {
	countryCode = strings.ToUpper(countryCode)
	return &countryBookingUsecase{
		countryCode:          countryCode,
		hardened:             hardened,
		BookingRepository:    bookingRepository,
		OutcomeFactPublisher: outcomeFactPublisher,
		Log:                  logger.With(zap.String(constvars.LoggingCountryCodeKey, countryCode)),
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

func (uc *countryBookingUsecase) CountryCode() string {
	return uc.countryCode
}

func (uc *countryBookingUsecase) ConfirmAppointment(ctx context.Context, fact *events.CreationFact) (constvars.AppointmentStatus, error) {
	messageID := utils.GetMessageID(ctx)
	uc.Log.Info("countryBookingUsecase.ConfirmAppointment called",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.Int64(constvars.LoggingScheduleIDKey, fact.ScheduleID),
		zap.Bool(constvars.LoggingHardenedKey, uc.hardened),
	)

	if !strings.EqualFold(fact.CountryCode, uc.countryCode) {
		mismatch := exceptions.ErrCountryMismatch(nil, fact.CountryCode, uc.countryCode)
		return "", exceptions.ErrMalformedMessage(mismatch, uc.countryCode)
	}

	if uc.hardened {
		existing, err := uc.BookingRepository.FindByExternalID(ctx, fact.AppointmentID)
		if err != nil {
			uc.Log.Error("countryBookingUsecase.ConfirmAppointment error calling BookingRepository.FindByExternalID",
				zap.String(constvars.LoggingMessageIDKey, messageID),
				zap.Error(err),
			)
			return "", err
		}
		if existing != nil {
			uc.Log.Info("countryBookingUsecase.ConfirmAppointment booking already exists, re-emitting confirmation",
				zap.String(constvars.LoggingMessageIDKey, messageID),
				zap.String(constvars.LoggingBookingIDKey, existing.ID),
			)
			uc.emit(ctx, fact.AppointmentID, constvars.AppointmentStatusConfirmed)
			return constvars.AppointmentStatusConfirmed, nil
		}
	}

	free, err := uc.BookingRepository.IsScheduleFree(ctx, fact.ScheduleID)
	if err != nil {
		uc.Log.Error("countryBookingUsecase.ConfirmAppointment error calling BookingRepository.IsScheduleFree",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.Error(err),
		)
		return "", err
	}
	if !free {
		return uc.reject(ctx, fact), nil
	}

	now := uc.now()
	booking := &models.CountryBooking{
		ID:          utils.GenerateID(),
		InsuredID:   fact.InsuredID,
		ScheduleID:  fact.ScheduleID,
		CountryCode: uc.countryCode,
		ExternalID:  fact.AppointmentID,
		Status:      constvars.AppointmentStatusConfirmed,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	err = uc.BookingRepository.Create(ctx, booking)
	if errors.Is(err, ErrScheduleTaken) || errors.Is(err, ErrExternalIDTaken) {
		// Lost a race at write time. The booking for this appointment decides the
		// outcome, whichever index rejected the write.
		return uc.resolveConflict(ctx, fact)
	}
	if err != nil {
		uc.Log.Error("countryBookingUsecase.ConfirmAppointment error calling BookingRepository.Create",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.Error(err),
		)
		return "", err
	}

	uc.emit(ctx, fact.AppointmentID, constvars.AppointmentStatusConfirmed)
	uc.Log.Info("countryBookingUsecase.ConfirmAppointment succeeded",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingBookingIDKey, booking.ID),
	)
	return constvars.AppointmentStatusConfirmed, nil
}

func (uc *countryBookingUsecase) resolveConflict(ctx context.Context, fact *events.CreationFact) (constvars.AppointmentStatus, error) {
	messageID := utils.GetMessageID(ctx)
	existing, err := uc.BookingRepository.FindByExternalID(ctx, fact.AppointmentID)
	if err != nil {
		uc.Log.Error("countryBookingUsecase.resolveConflict error calling BookingRepository.FindByExternalID",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.Error(err),
		)
		return "", err
	}
	if existing != nil {
		uc.Log.Info("countryBookingUsecase.resolveConflict booking written by a concurrent delivery",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.String(constvars.LoggingBookingIDKey, existing.ID),
		)
		uc.emit(ctx, fact.AppointmentID, constvars.AppointmentStatusConfirmed)
		return constvars.AppointmentStatusConfirmed, nil
	}

	uc.Log.Info("countryBookingUsecase.resolveConflict schedule taken at write time",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.Int64(constvars.LoggingScheduleIDKey, fact.ScheduleID),
	)
	return uc.reject(ctx, fact), nil
}

func (uc *countryBookingUsecase) reject(ctx context.Context, fact *events.CreationFact) constvars.AppointmentStatus {
	uc.Log.Info("countryBookingUsecase.ConfirmAppointment schedule not available",
		zap.String(constvars.LoggingMessageIDKey, utils.GetMessageID(ctx)),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.Int64(constvars.LoggingScheduleIDKey, fact.ScheduleID),
	)
	uc.emit(ctx, fact.AppointmentID, constvars.AppointmentStatusCancelled)
	return constvars.AppointmentStatusCancelled
}

// emit never fails the step. A lost outcome leaves the core record PENDING.
func (uc *countryBookingUsecase) emit(ctx context.Context, appointmentID string, status constvars.AppointmentStatus) {
	fact := events.OutcomeFact{
		ID:            utils.GenerateID(),
		AppointmentID: appointmentID,
		Status:        string(status),
		Timestamp:     uc.now(),
		Action:        constvars.EventActionUpdateStatus,
	}
	err := uc.OutcomeFactPublisher.PublishOutcomeFact(ctx, fact)
	if err != nil {
		uc.Log.Error("countryBookingUsecase.emit error calling OutcomeFactPublisher.PublishOutcomeFact",
			zap.String(constvars.LoggingMessageIDKey, utils.GetMessageID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingStatusKey, string(status)),
			zap.Error(err),
		)
	}
}
