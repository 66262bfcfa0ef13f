package appointments

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"

	"go.uber.org/zap"
)

// StatusUpdateWorker consumes outcome facts and applies them to core records.
type StatusUpdateWorker struct {
	log     *zap.Logger
	bus     contracts.MessageBus
	queue   string
	usecase contracts.AppointmentUsecase
}

func NewStatusUpdateWorker(log *zap.Logger, bus contracts.MessageBus, queue string, usecase contracts.AppointmentUsecase) *StatusUpdateWorker {
	return &StatusUpdateWorker{log: log, bus: bus, queue: queue, usecase: usecase}
}

// Run blocks until ctx is cancelled or the consumer fails.
func (w *StatusUpdateWorker) Run(ctx context.Context) error {
	w.log.Info("appointments.StatusUpdateWorker started", zap.String(constvars.LoggingQueueKey, w.queue))
	return w.bus.Consume(ctx, w.queue, w.Handle)
}

func (w *StatusUpdateWorker) Handle(ctx context.Context, messageID string, body []byte) error {
	fact, err := events.DecodeOutcomeFact(body)
	if err != nil {
		return exceptions.ErrMalformedMessage(err, w.queue)
	}
	if err := utils.ValidateStruct(fact); err != nil {
		w.log.Warn("appointments.StatusUpdateWorker invalid outcome fact",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.Strings("details", exceptions.FormatAllValidationErrors(err)),
		)
		return exceptions.ErrMalformedMessage(err, w.queue)
	}
	return w.usecase.UpdateAppointmentStatus(ctx, fact)
}
