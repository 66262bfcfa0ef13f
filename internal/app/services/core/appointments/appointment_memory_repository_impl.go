package appointments

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// AppointmentMemoryRepository keeps records in process. It mirrors the mongo
// repository semantics, including the secondary lookup by insuredId.
type AppointmentMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]models.Appointment
	byInsuredID  map[string][]string
}

func NewAppointmentMemoryRepository() contracts.AppointmentRepository {
	return &AppointmentMemoryRepository{
		appointments: map[string]models.Appointment{},
		byInsuredID:  map[string][]string{},
	}
}

func (r *AppointmentMemoryRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *AppointmentMemoryRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.appointments[appointment.ID]; exists {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("duplicate id %s", appointment.ID))
	}
	r.appointments[appointment.ID] = *appointment
	r.byInsuredID[appointment.InsuredID] = append(r.byInsuredID[appointment.InsuredID], appointment.ID)
	return nil
}

func (r *AppointmentMemoryRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *AppointmentMemoryRepository) FindByInsuredID(ctx context.Context, insuredID string) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointments := []models.Appointment{}
	for _, id := range r.byInsuredID[insuredID] {
		appointments = append(appointments, r.appointments[id])
	}
	return appointments, nil
}

func (r *AppointmentMemoryRepository) UpdateStatus(ctx context.Context, appointmentID string, status constvars.AppointmentStatus, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[appointmentID]
	if !ok || appointment.Status != constvars.AppointmentStatusPending {
		return false, nil
	}
	appointment.Status = status
	appointment.UpdatedAt = updatedAt
	r.appointments[appointmentID] = appointment
	return true, nil
}

func (r *AppointmentMemoryRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointments := []models.Appointment{}
	for _, appointment := range r.appointments {
		if appointment.Status == constvars.AppointmentStatusPending && appointment.CreatedAt.Before(cutoff) {
			appointments = append(appointments, appointment)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].CreatedAt.Before(appointments[j].CreatedAt)
	})
	return appointments, nil
}
