package events

import (
	"appointment-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
)

// OutcomeFact reports the country decision back to the core record.
type OutcomeFact struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=confirmed cancelled"`
	Timestamp     time.Time `json:"timestamp"`
	Action        string    `json:"action"`
}

type BusEnvelope struct {
	ID         string      `json:"id"`
	Source     string      `json:"source"`
	DetailType string      `json:"detail-type"`
	Time       time.Time   `json:"time"`
	Detail     OutcomeFact `json:"detail"`
}

func NewBusEnvelope(envelopeID string, fact OutcomeFact) ([]byte, error) {
	envelope := BusEnvelope{
		ID:         envelopeID,
		Source:     constvars.EventSourceStatusUpdate,
		DetailType: constvars.EventDetailTypeStatusUpdate,
		Time:       fact.Timestamp.UTC(),
		Detail:     fact,
	}
	return json.Marshal(envelope)
}

// DecodeOutcomeFact reads the detail of a bus envelope, falling back to a bare
// fact when no detail is present.
func DecodeOutcomeFact(body []byte) (*OutcomeFact, error) {
	var envelope BusEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Detail.AppointmentID != "" || envelope.Source != "" {
		return &envelope.Detail, nil
	}

	var fact OutcomeFact
	if err := json.Unmarshal(body, &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}
