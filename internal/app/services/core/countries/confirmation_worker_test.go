package countries

import (
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfirmationWorker_Handle(t *testing.T) {
	store := newMemoryStore(t, "PE", true)
	publisher := new(mockOutcomeFactPublisher)
	publisher.On("PublishOutcomeFact", mock.Anything, withStatus(constvars.AppointmentStatusConfirmed, "a-1")).Return(nil).Once()

	worker := NewConfirmationWorker(zap.NewNop(), nil, "appointment_pe_queue",
		NewCountryBookingUsecase("PE", true, store, publisher, zap.NewNop()))

	body, err := events.NewTopicEnvelope("m-1", *creationFact("a-1", "PE", 55), time.Now())
	require.NoError(t, err)

	require.NoError(t, worker.Handle(context.Background(), "m-1", body))
	assert.Len(t, store.Bookings(), 1)
	publisher.AssertExpectations(t)
}

func TestConfirmationWorker_HandleMalformed(t *testing.T) {
	publisher := new(mockOutcomeFactPublisher)
	worker := NewConfirmationWorker(zap.NewNop(), nil, "appointment_pe_queue",
		NewCountryBookingUsecase("PE", true, newMemoryStore(t, "PE", true), publisher, zap.NewNop()))

	assert.True(t, exceptions.IsMalformedMessage(worker.Handle(context.Background(), "m-1", []byte("{"))))

	missingSchedule, err := events.NewTopicEnvelope("m-2", events.CreationFact{AppointmentID: "a-1", InsuredID: "12345", CountryCode: "PE"}, time.Now())
	require.NoError(t, err)
	assert.True(t, exceptions.IsMalformedMessage(worker.Handle(context.Background(), "m-2", missingSchedule)))

	publisher.AssertNotCalled(t, "PublishOutcomeFact", mock.Anything, mock.Anything)
}
