package eventbus

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/pkg/constvars"
	"fmt"
	"strings"
)

// Topology names every exchange and queue the saga uses.
type Topology struct {
	AppointmentExchange     string
	StatusExchange          string
	AppointmentCreatedQueue string
	StatusUpdateQueue       string
	// CountryQueues maps an upper case country code to its queue
	CountryQueues map[string]string
}

func NewTopology(cfg config.AppRabbitMQ, countryCodes []string) Topology {
	topology := Topology{
		AppointmentExchange:     cfg.AppointmentExchange,
		StatusExchange:          cfg.StatusExchange,
		AppointmentCreatedQueue: cfg.AppointmentCreatedQueue,
		StatusUpdateQueue:       cfg.StatusUpdateQueue,
		CountryQueues:           make(map[string]string, len(countryCodes)),
	}
	format := cfg.CountryQueueFormat
	if format == "" {
		format = constvars.DefaultCountryQueueFormat
	}
	for _, code := range countryCodes {
		code = strings.ToUpper(code)
		topology.CountryQueues[code] = fmt.Sprintf(format, strings.ToLower(code))
	}
	return topology
}

func (t Topology) CountryQueue(countryCode string) (string, bool) {
	queue, ok := t.CountryQueues[strings.ToUpper(countryCode)]
	return queue, ok
}

func CreatedRoutingKey(countryCode string) string {
	return fmt.Sprintf(constvars.RoutingKeyAppointmentCreatedFormat, strings.ToUpper(countryCode))
}

func DeadLetterQueue(queue string) string {
	return queue + constvars.DeadLetterQueueSuffix
}
