package events

import (
	"appointment-service/internal/pkg/constvars"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// CreationFact is broadcast once per appointment written by intake.
type CreationFact struct {
	AppointmentID string    `json:"id" validate:"required"`
	InsuredID     string    `json:"insuredId" validate:"required"`
	ScheduleID    int64     `json:"scheduleId" validate:"required,gt=0"`
	CountryCode   string    `json:"countryISO" validate:"required"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	EventType     string    `json:"eventType"`
}

type MessageAttribute struct {
	Type  string `json:"Type"`
	Value string `json:"Value"`
}

// TopicEnvelope wraps a JSON encoded CreationFact in the notification shape the
// intake side has always emitted.
type TopicEnvelope struct {
	Type              string                      `json:"Type"`
	MessageID         string                      `json:"MessageId"`
	Message           string                      `json:"Message"`
	MessageAttributes map[string]MessageAttribute `json:"MessageAttributes,omitempty"`
	Timestamp         time.Time                   `json:"Timestamp"`
}

var ErrEmptyEnvelope = errors.New("envelope carries no message")

func NewTopicEnvelope(messageID string, fact CreationFact, now time.Time) ([]byte, error) {
	message, err := json.Marshal(fact)
	if err != nil {
		return nil, err
	}

	envelope := TopicEnvelope{
		Type:      constvars.EventEnvelopeTypeNotification,
		MessageID: messageID,
		Message:   string(message),
		MessageAttributes: map[string]MessageAttribute{
			constvars.EventAttributeEventType:     {Type: "String", Value: fact.EventType},
			constvars.EventAttributeCountryISO:    {Type: "String", Value: fact.CountryCode},
			constvars.EventAttributeAppointmentID: {Type: "String", Value: fact.AppointmentID},
		},
		Timestamp: now.UTC(),
	}
	return json.Marshal(envelope)
}

// DecodeCreationFact unwraps a topic envelope. A body without the envelope
// fields is read as a bare fact.
func DecodeCreationFact(body []byte) (*CreationFact, error) {
	var envelope TopicEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	payload := []byte(envelope.Message)
	if envelope.Type == "" && envelope.Message == "" {
		payload = body
	}
	if len(payload) == 0 {
		return nil, ErrEmptyEnvelope
	}

	var fact CreationFact
	if err := json.Unmarshal(payload, &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}
