package eventbus

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var errNotConfirmed = errors.New("message not confirmed")

// RabbitMQBus publishes with confirms on a shared channel and opens one channel
// per consumer.
type RabbitMQBus struct {
	conn           *amqp.Connection
	ch             *amqp.Channel
	mu             sync.Mutex
	log            *zap.Logger
	topology       Topology
	prefetch       int
	publishTimeout time.Duration
	consumer       config.AppConsumer
}

func NewRabbitMQBus(conn *amqp.Connection, log *zap.Logger, topology Topology, rabbitCfg config.AppRabbitMQ, consumerCfg config.AppConsumer) (*RabbitMQBus, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Enable publisher confirms for durability guarantees
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	prefetch := rabbitCfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	publishTimeout := time.Duration(rabbitCfg.PublishTimeoutInSeconds) * time.Second
	if publishTimeout <= 0 {
		publishTimeout = 5 * time.Second
	}

	return &RabbitMQBus{
		conn:           conn,
		ch:             ch,
		log:            log,
		topology:       topology,
		prefetch:       prefetch,
		publishTimeout: publishTimeout,
		consumer:       consumerCfg,
	}, nil
}

// DeclareTopology is idempotent, every process declares what it needs on startup.
func (b *RabbitMQBus) DeclareTopology(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, exchange := range []string{b.topology.AppointmentExchange, b.topology.StatusExchange} {
		err := b.ch.ExchangeDeclare(
			exchange, // name
			amqp.ExchangeTopic,
			true,  // durable
			false, // autoDelete
			false, // internal
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return exceptions.ErrRabbitMQDeclareTopology(err, exchange)
		}
	}

	if err := b.declareQueue(b.topology.AppointmentCreatedQueue); err != nil {
		return err
	}
	err := b.ch.QueueBind(b.topology.AppointmentCreatedQueue, constvars.RoutingKeyAppointmentCreatedAll, b.topology.AppointmentExchange, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQDeclareTopology(err, b.topology.AppointmentCreatedQueue)
	}

	if err := b.declareQueue(b.topology.StatusUpdateQueue); err != nil {
		return err
	}
	err = b.ch.QueueBind(b.topology.StatusUpdateQueue, constvars.RoutingKeyAppointmentStatusUpdate, b.topology.StatusExchange, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQDeclareTopology(err, b.topology.StatusUpdateQueue)
	}

	// Country queues are addressed through the default exchange by name.
	for _, queue := range b.topology.CountryQueues {
		if err := b.declareQueue(queue); err != nil {
			return err
		}
	}

	b.log.Info("RabbitMQBus.DeclareTopology succeeded",
		zap.String(constvars.LoggingExchangeKey, b.topology.AppointmentExchange),
		zap.Int("country_queue_count", len(b.topology.CountryQueues)),
	)
	return nil
}

func (b *RabbitMQBus) declareQueue(queue string) error {
	for _, name := range []string{queue, DeadLetterQueue(queue)} {
		_, err := b.ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return exceptions.ErrRabbitMQDeclareTopology(err, name)
		}
	}
	return nil
}

func (b *RabbitMQBus) Publish(ctx context.Context, exchange, routingKey, messageID string, body []byte) error {
	return b.publish(ctx, exchange, routingKey, amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}

func (b *RabbitMQBus) publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	destination := exchange + "/" + routingKey
	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	b.mu.Lock()
	confirmation, err := b.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, false, false, msg)
	b.mu.Unlock()
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, destination)
	}
	if confirmation == nil {
		return exceptions.ErrRabbitMQPublishMessage(errNotConfirmed, destination)
	}
	return awaitConfirm(ctx, confirmation, destination)
}

type confirmWaiter interface {
	WaitContext(ctx context.Context) (bool, error)
}

// awaitConfirm waits for the broker ack of one delivery tag. A confirm arriving
// after ctx ends is dropped with its own tag and never answers a later publish.
func awaitConfirm(ctx context.Context, confirmation confirmWaiter, destination string) error {
	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, destination)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(errNotConfirmed, destination)
	}
	return nil
}

func (b *RabbitMQBus) Consume(ctx context.Context, queue string, handler contracts.MessageHandler) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return exceptions.ErrRabbitMQConsume(err, queue)
	}
	defer ch.Close()

	// Set QoS to limit unacked deliveries in-flight
	if err := ch.Qos(b.prefetch, 0, false); err != nil {
		return exceptions.ErrRabbitMQConsume(err, queue)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQConsume(err, queue)
	}

	limiter := newLimiter(b.consumer)
	b.log.Info("RabbitMQBus.Consume started",
		zap.String(constvars.LoggingQueueKey, queue),
		zap.Int("prefetch", b.prefetch),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return exceptions.ErrRabbitMQConsume(fmt.Errorf("delivery channel closed"), queue)
			}
			if err := limiter.Wait(ctx); err != nil {
				// Shutting down, let the broker hand the delivery to someone else.
				_ = d.Nack(false, true)
				return nil
			}
			b.handle(ctx, queue, d, handler)
		}
	}
}

func (b *RabbitMQBus) handle(ctx context.Context, queue string, d amqp.Delivery, handler contracts.MessageHandler) {
	messageID := d.MessageId
	if messageID == "" {
		messageID = fmt.Sprintf("%s-%d", queue, d.DeliveryTag)
	}
	handlerCtx, cancel := context.WithTimeout(utils.WithMessageID(ctx, messageID), handlerTimeout(b.consumer))
	defer cancel()

	err := handler(handlerCtx, messageID, d.Body)
	disposition := Decide(err)
	fields := []zap.Field{
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingQueueKey, queue),
		zap.Bool(constvars.LoggingRedeliveryKey, d.Redelivered),
		zap.Stringer("disposition", disposition),
	}

	switch disposition {
	case Ack:
		if ackErr := d.Ack(false); ackErr != nil {
			b.log.Error("RabbitMQBus.handle error acking delivery", append(fields, zap.Error(ackErr))...)
		}
	case DeadLetter:
		b.log.Warn("RabbitMQBus.handle moving poison message to dead letter queue", append(fields, zap.Error(err))...)
		dlqErr := b.publish(ctx, "", DeadLetterQueue(queue), amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         d.Body,
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{constvars.RabbitMQHeaderFailedReason: err.Error()},
		})
		if dlqErr != nil {
			b.log.Error("RabbitMQBus.handle error publishing to dead letter queue", append(fields, zap.Error(dlqErr))...)
			_ = d.Nack(false, true)
			return
		}
		_ = d.Ack(false)
	default:
		b.log.Warn("RabbitMQBus.handle requeueing delivery", append(fields, zap.Error(err))...)
		if nackErr := d.Nack(false, true); nackErr != nil {
			b.log.Error("RabbitMQBus.handle error nacking delivery", append(fields, zap.Error(nackErr))...)
		}
	}
}

func (b *RabbitMQBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch.IsClosed() {
		return nil
	}
	return b.ch.Close()
}

func newLimiter(cfg config.AppConsumer) *rate.Limiter {
	if cfg.MaxMessagesPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.MaxMessagesPerSecond), burst)
}

func handlerTimeout(cfg config.AppConsumer) time.Duration {
	timeout := time.Duration(cfg.HandlerTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		return 15 * time.Second
	}
	return timeout
}
