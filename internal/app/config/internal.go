package config

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	MongoDB      AppMongoDB      `mapstructure:"mongodb"`
	RabbitMQ     AppRabbitMQ     `mapstructure:"rabbitmq"`
	Country      AppCountry      `mapstructure:"country"`
	Consumer     AppConsumer     `mapstructure:"consumer"`
	PendingAudit AppPendingAudit `mapstructure:"pending_audit"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Name                       string   `mapstructure:"name"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	CorsAllowedOrigins         []string `mapstructure:"cors_allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds  int      `mapstructure:"max_time_requests_per_seconds"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
}

type AppMongoDB struct {
	CoreDBName string `mapstructure:"core_db_name"`
	// CountryDBNameFormat receives the lowercase country code
	CountryDBNameFormat   string `mapstructure:"country_db_name_format"`
	OperationTimeoutInSec int    `mapstructure:"operation_timeout_in_seconds"`
}

type AppRabbitMQ struct {
	AppointmentExchange     string `mapstructure:"appointment_exchange"`
	StatusExchange          string `mapstructure:"status_exchange"`
	AppointmentCreatedQueue string `mapstructure:"appointment_created_queue"`
	StatusUpdateQueue       string `mapstructure:"status_update_queue"`
	// CountryQueueFormat receives the lowercase country code
	CountryQueueFormat      string `mapstructure:"country_queue_format"`
	Prefetch                int    `mapstructure:"prefetch"`
	PublishTimeoutInSeconds int    `mapstructure:"publish_timeout_in_seconds"`
}

// AppCountry lists the countries this process runs a confirmation worker for.
type AppCountry struct {
	Codes []string `mapstructure:"codes"`
	// BookingHardened adds unique indexes on scheduleId and externalId and the
	// externalId replay guard
	BookingHardened bool `mapstructure:"booking_hardened"`
}

type AppConsumer struct {
	MaxMessagesPerSecond    float64 `mapstructure:"max_messages_per_second"`
	Burst                   int     `mapstructure:"burst"`
	HandlerTimeoutInSeconds int     `mapstructure:"handler_timeout_in_seconds"`
}

type AppPendingAudit struct {
	Enabled          bool   `mapstructure:"enabled"`
	CronSpec         string `mapstructure:"cron_spec"`
	AgeInMinutes     int    `mapstructure:"age_in_minutes"`
	LockKey          string `mapstructure:"lock_key"`
	LockTTLInSeconds int    `mapstructure:"lock_ttl_in_seconds"`
}
