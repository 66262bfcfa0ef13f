package contracts

import (
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"context"
)

type CountryBookingUsecase interface {
	CountryCode() string
	ConfirmAppointment(ctx context.Context, fact *events.CreationFact) (constvars.AppointmentStatus, error)
}

// CountryBookingRepository is bound to the isolated store of one country.
// Create returns an exceptions.KindConflict error when a uniqueness index rejects
// the booking.
type CountryBookingRepository interface {
	Create(ctx context.Context, booking *models.CountryBooking) error
	IsScheduleFree(ctx context.Context, scheduleID int64) (bool, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.CountryBooking, error)
	EnsureIndexes(ctx context.Context, unique bool) error
}

type CountryBookingRegistry interface {
	Register(usecase CountryBookingUsecase)
	Lookup(countryCode string) (CountryBookingUsecase, bool)
	CountryCodes() []string
}
