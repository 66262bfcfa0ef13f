package fanout

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"appointment-service/internal/pkg/utils"
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type router struct {
	mu       sync.RWMutex
	channels map[string]contracts.CountryChannel
	Log      *zap.Logger
}

// NewRouter returns an empty routing table. Supporting a country is one
// Register call.
func NewRouter(logger *zap.Logger) contracts.FanoutRouter {
	return &router{channels: map[string]contracts.CountryChannel{}, Log: logger}
}

func (r *router) Register(countryCode string, channel contracts.CountryChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[strings.ToUpper(countryCode)] = channel
}

// Route returns a routing error for countries without a channel. The consumer
// requeues those, nothing is reported back to the caller that created the
// appointment.
func (r *router) Route(ctx context.Context, fact *events.CreationFact) error {
	messageID := utils.GetMessageID(ctx)

	r.mu.RLock()
	channel, ok := r.channels[strings.ToUpper(fact.CountryCode)]
	r.mu.RUnlock()

	if !ok {
		r.Log.Warn("fanout.Route no channel registered for country",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
			zap.String(constvars.LoggingCountryCodeKey, fact.CountryCode),
		)
		return exceptions.ErrRoutingNoChannel(nil, fact.CountryCode)
	}

	err := channel.Send(ctx, *fact)
	if err != nil {
		r.Log.Error("fanout.Route error calling CountryChannel.Send",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.String(constvars.LoggingCountryCodeKey, fact.CountryCode),
			zap.Error(err),
		)
		return err
	}

	r.Log.Info("fanout.Route succeeded",
		zap.String(constvars.LoggingMessageIDKey, messageID),
		zap.String(constvars.LoggingAppointmentIDKey, fact.AppointmentID),
		zap.String(constvars.LoggingCountryCodeKey, fact.CountryCode),
	)
	return nil
}
