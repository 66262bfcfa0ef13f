package contracts

import (
	"appointment-service/internal/pkg/dto/events"
	"context"
)

// MessageHandler processes one delivery. The returned error decides whether the
// delivery is acked, requeued or dead lettered.
type MessageHandler func(ctx context.Context, messageID string, body []byte) error

type MessageBus interface {
	DeclareTopology(ctx context.Context) error
	Publish(ctx context.Context, exchange, routingKey, messageID string, body []byte) error
	// Consume blocks until ctx is done or the channel closes.
	Consume(ctx context.Context, queue string, handler MessageHandler) error
	Close() error
}

type CreationFactPublisher interface {
	PublishCreationFact(ctx context.Context, fact events.CreationFact) error
}

type OutcomeFactPublisher interface {
	PublishOutcomeFact(ctx context.Context, fact events.OutcomeFact) error
}

// CountryChannel carries creation facts to the confirmation worker of one country.
type CountryChannel interface {
	Send(ctx context.Context, fact events.CreationFact) error
}

type FanoutRouter interface {
	Register(countryCode string, channel CountryChannel)
	Route(ctx context.Context, fact *events.CreationFact) error
}
