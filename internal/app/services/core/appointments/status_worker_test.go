package appointments

import (
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusUpdateWorker_Handle(t *testing.T) {
	uc, repo := newTestUsecase(t, new(mockCreationFactPublisher))
	worker := NewStatusUpdateWorker(zap.NewNop(), nil, constvars.DefaultAppointmentStatusQueue, uc)

	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &models.Appointment{
		ID:        "a-1",
		Status:    constvars.AppointmentStatusPending,
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}))

	body, err := events.NewBusEnvelope("env-1", events.OutcomeFact{
		ID:            "o-1",
		AppointmentID: "a-1",
		Status:        string(constvars.AppointmentStatusCancelled),
		Timestamp:     now,
		Action:        constvars.EventActionUpdateStatus,
	})
	require.NoError(t, err)

	require.NoError(t, worker.Handle(context.Background(), "env-1", body))
	stored, _ := repo.FindByID(context.Background(), "a-1")
	assert.Equal(t, constvars.AppointmentStatusCancelled, stored.Status)
}

func TestStatusUpdateWorker_HandleMalformed(t *testing.T) {
	uc, _ := newTestUsecase(t, new(mockCreationFactPublisher))
	worker := NewStatusUpdateWorker(zap.NewNop(), nil, constvars.DefaultAppointmentStatusQueue, uc)

	err := worker.Handle(context.Background(), "m-1", []byte("not json"))
	assert.True(t, exceptions.IsMalformedMessage(err))

	err = worker.Handle(context.Background(), "m-2", []byte(`{"detail":{"appointmentId":"a-1","status":"booked"},"source":"x"}`))
	assert.True(t, exceptions.IsMalformedMessage(err))
}
