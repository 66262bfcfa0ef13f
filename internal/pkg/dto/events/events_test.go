package events

import (
	"appointment-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicEnvelope(t *testing.T) {
	fact := CreationFact{
		AppointmentID: "a-1",
		InsuredID:     "12345",
		ScheduleID:    100,
		CountryCode:   "PE",
		Status:        "pending",
		CreatedAt:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		EventType:     constvars.EventTypeAppointmentCreated,
	}

	body, err := NewTopicEnvelope("m-1", fact, time.Now())
	require.NoError(t, err)

	var envelope TopicEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "m-1", envelope.MessageID)
	assert.Equal(t, "PE", envelope.MessageAttributes[constvars.EventAttributeCountryISO].Value)
	assert.Contains(t, envelope.Message, `"countryISO":"PE"`)

	decoded, err := DecodeCreationFact(body)
	require.NoError(t, err)
	assert.Equal(t, fact, *decoded)
}

func TestDecodeCreationFact(t *testing.T) {
	t.Run("Bare Fact", func(t *testing.T) {
		fact, err := DecodeCreationFact([]byte(`{"id":"a-1","insuredId":"12345","scheduleId":7,"countryISO":"CL"}`))
		require.NoError(t, err)
		assert.Equal(t, "CL", fact.CountryCode)
		assert.Equal(t, int64(7), fact.ScheduleID)
	})

	t.Run("Envelope Without Message", func(t *testing.T) {
		_, err := DecodeCreationFact([]byte(`{"Type":"Notification","MessageId":"m-1"}`))
		assert.ErrorIs(t, err, ErrEmptyEnvelope)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := DecodeCreationFact([]byte(`not json`))
		assert.Error(t, err)
	})
}

func TestDecodeOutcomeFact(t *testing.T) {
	fact := OutcomeFact{
		ID:            "o-1",
		AppointmentID: "a-1",
		Status:        "confirmed",
		Timestamp:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Action:        constvars.EventActionUpdateStatus,
	}

	t.Run("Bus Envelope", func(t *testing.T) {
		body, err := NewBusEnvelope("e-1", fact)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"detail-type":"`+constvars.EventDetailTypeStatusUpdate+`"`)

		decoded, err := DecodeOutcomeFact(body)
		require.NoError(t, err)
		assert.Equal(t, fact, *decoded)
	})

	t.Run("Bare Fact", func(t *testing.T) {
		decoded, err := DecodeOutcomeFact([]byte(`{"appointmentId":"a-2","status":"cancelled"}`))
		require.NoError(t, err)
		assert.Equal(t, "a-2", decoded.AppointmentID)
		assert.Equal(t, "cancelled", decoded.Status)
	})
}
