package eventbus

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

type creationFactPublisher struct {
	bus      contracts.MessageBus
	exchange string
	log      *zap.Logger
}

func NewCreationFactPublisher(bus contracts.MessageBus, topology Topology, log *zap.Logger) contracts.CreationFactPublisher {
	return &creationFactPublisher{bus: bus, exchange: topology.AppointmentExchange, log: log}
}

// PublishCreationFact addresses the fact by country on the appointment exchange.
func (p *creationFactPublisher) PublishCreationFact(ctx context.Context, fact events.CreationFact) error {
	messageID := utils.GenerateID()
	body, err := events.NewTopicEnvelope(messageID, fact, time.Now())
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	routingKey := CreatedRoutingKey(fact.CountryCode)
	err = p.bus.Publish(ctx, p.exchange, routingKey, messageID, body)
	if err != nil {
		return err
	}

	p.log.Info("creationFactPublisher.PublishCreationFact succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingRoutingKeyKey, routingKey),
	)
	return nil
}

type outcomeFactPublisher struct {
	bus      contracts.MessageBus
	exchange string
	log      *zap.Logger
}

func NewOutcomeFactPublisher(bus contracts.MessageBus, topology Topology, log *zap.Logger) contracts.OutcomeFactPublisher {
	return &outcomeFactPublisher{bus: bus, exchange: topology.StatusExchange, log: log}
}

func (p *outcomeFactPublisher) PublishOutcomeFact(ctx context.Context, fact events.OutcomeFact) error {
	envelopeID := utils.GenerateID()
	body, err := events.NewBusEnvelope(envelopeID, fact)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = p.bus.Publish(ctx, p.exchange, constvars.RoutingKeyAppointmentStatusUpdate, envelopeID, body)
	if err != nil {
		return err
	}

	p.log.Info("outcomeFactPublisher.PublishOutcomeFact succeeded",
		zap.String(constvars.LoggingMessageIDKey, envelopeID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingStatusKey, fact.Status),
	)
	return nil
}

// queueChannel delivers creation facts straight to one country queue.
type queueChannel struct {
	bus   contracts.MessageBus
	queue string
}

func NewCountryChannel(bus contracts.MessageBus, queue string) contracts.CountryChannel {
	return &queueChannel{bus: bus, queue: queue}
}

func (c *queueChannel) Send(ctx context.Context, fact events.CreationFact) error {
	messageID := utils.GenerateID()
	body, err := events.NewTopicEnvelope(messageID, fact, time.Now())
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return c.bus.Publish(ctx, "", c.queue, messageID, body)
}
