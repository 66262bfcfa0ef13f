package countries

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"

	"go.uber.org/zap"
)

// ConfirmationWorker consumes the queue of one country and runs its booking usecase.
type ConfirmationWorker struct {
	log     *zap.Logger
	bus     contracts.MessageBus
	queue   string
	usecase contracts.CountryBookingUsecase
}

func NewConfirmationWorker(log *zap.Logger, bus contracts.MessageBus, queue string, usecase contracts.CountryBookingUsecase) *ConfirmationWorker {
	return &ConfirmationWorker{log: log, bus: bus, queue: queue, usecase: usecase}
}

// NewConfirmationWorkers builds one worker per country queue. Every queue needs a
// registered usecase.
func NewConfirmationWorkers(log *zap.Logger, bus contracts.MessageBus, countryQueues map[string]string, registry contracts.CountryBookingRegistry) ([]*ConfirmationWorker, error) {
	workers := make([]*ConfirmationWorker, 0, len(countryQueues))
	for countryCode, queue := range countryQueues {
		usecase, ok := registry.Lookup(countryCode)
		if !ok {
			return nil, exceptions.ErrNoConfirmationWorker(nil, countryCode)
		}
		workers = append(workers, NewConfirmationWorker(log, bus, queue, usecase))
	}
	return workers, nil
}

func (w *ConfirmationWorker) Queue() string {
	return w.queue
}

func (w *ConfirmationWorker) Run(ctx context.Context) error {
	w.log.Info("countries.ConfirmationWorker started",
		zap.String(constvars.LoggingQueueKey, w.queue),
		zap.String(constvars.LoggingCountryCodeKey, w.usecase.CountryCode()),
	)
	return w.bus.Consume(ctx, w.queue, w.Handle)
}

func (w *ConfirmationWorker) Handle(ctx context.Context, messageID string, body []byte) error {
	fact, err := events.DecodeCreationFact(body)
	if err != nil {
		return exceptions.ErrMalformedMessage(err, w.queue)
	}
	if err := utils.ValidateStruct(fact); err != nil {
		w.log.Warn("countries.ConfirmationWorker invalid creation fact",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.Strings("details", exceptions.FormatAllValidationErrors(err)),
		)
		return exceptions.ErrMalformedMessage(err, w.queue)
	}

	status, err := w.usecase.ConfirmAppointment(ctx, fact)
	if err != nil {
		return err
	}
	w.log.Info("countries.ConfirmationWorker processed creation fact",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingStatusKey, string(status)),
	)
	return nil
}
