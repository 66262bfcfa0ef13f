package fanout

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"

	"go.uber.org/zap"
)

// Worker consumes creation facts from the fan-out queue and forwards each one
// to the channel of its country.
type Worker struct {
	log    *zap.Logger
	bus    contracts.MessageBus
	queue  string
	router contracts.FanoutRouter
}

func NewWorker(log *zap.Logger, bus contracts.MessageBus, queue string, router contracts.FanoutRouter) *Worker {
	return &Worker{log: log, bus: bus, queue: queue, router: router}
}

func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("fanout.Worker started", zap.String(constvars.LoggingQueueKey, w.queue))
	return w.bus.Consume(ctx, w.queue, w.Handle)
}

func (w *Worker) Handle(ctx context.Context, messageID string, body []byte) error {
	fact, err := events.DecodeCreationFact(body)
	if err != nil {
		return exceptions.ErrMalformedMessage(err, w.queue)
	}
	if err := utils.ValidateStruct(fact); err != nil {
		return exceptions.ErrMalformedMessage(err, w.queue)
	}
	return w.router.Route(ctx, fact)
}
