package contracts

import (
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/dto/requests"
	"appointment-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error)
	FindAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	FindAppointmentsByInsuredID(ctx context.Context, insuredID string) (*responses.InsuredAppointments, error)
	UpdateAppointmentStatus(ctx context.Context, fact *events.OutcomeFact) error
	FindStalePendingAppointments(ctx context.Context, olderThan time.Duration) ([]models.Appointment, error)
}

// AppointmentRepository returns a nil appointment and a nil error when nothing matches.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByInsuredID(ctx context.Context, insuredID string) ([]models.Appointment, error)
	// UpdateStatus reports whether a record changed. Unknown ids and records
	// already holding status are left untouched.
	UpdateStatus(ctx context.Context, appointmentID string, status constvars.AppointmentStatus, updatedAt time.Time) (bool, error)
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)
	EnsureIndexes(ctx context.Context) error
}
