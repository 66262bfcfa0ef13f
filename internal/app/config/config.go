package config

import (
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			URI:      utils.GetEnvString("MONGODB_URI", ""),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:    utils.GetEnvString("RABBITMQ_VHOST", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Name:                       utils.GetEnvString("APP_NAME", "appointment-service"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			CorsAllowedOrigins:         utils.GetEnvCSV("APP_CORS_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		MongoDB: AppMongoDB{
			CoreDBName:            utils.GetEnvString("APP_MONGODB_CORE_DB_NAME", "appointments_core"),
			CountryDBNameFormat:   utils.GetEnvString("APP_MONGODB_COUNTRY_DB_NAME_FORMAT", "appointments_%s"),
			OperationTimeoutInSec: utils.GetEnvInt("APP_MONGODB_OPERATION_TIMEOUT_IN_SECONDS", 5),
		},
		RabbitMQ: AppRabbitMQ{
			AppointmentExchange:     utils.GetEnvString("APP_RABBITMQ_APPOINTMENT_EXCHANGE", constvars.DefaultAppointmentExchange),
			StatusExchange:          utils.GetEnvString("APP_RABBITMQ_STATUS_EXCHANGE", constvars.DefaultAppointmentStatusExchange),
			AppointmentCreatedQueue: utils.GetEnvString("APP_RABBITMQ_APPOINTMENT_CREATED_QUEUE", constvars.DefaultAppointmentCreatedQueue),
			StatusUpdateQueue:       utils.GetEnvString("APP_RABBITMQ_STATUS_UPDATE_QUEUE", constvars.DefaultAppointmentStatusQueue),
			CountryQueueFormat:      utils.GetEnvString("APP_RABBITMQ_COUNTRY_QUEUE_FORMAT", constvars.DefaultCountryQueueFormat),
			Prefetch:                utils.GetEnvInt("APP_RABBITMQ_PREFETCH", 10),
			PublishTimeoutInSeconds: utils.GetEnvInt("APP_RABBITMQ_PUBLISH_TIMEOUT_IN_SECONDS", 5),
		},
		Country: AppCountry{
			Codes:           utils.GetEnvCSV("APP_COUNTRY_CODES", constvars.SupportedCountryCodes),
			BookingHardened: utils.GetEnvBool("APP_COUNTRY_BOOKING_HARDENED", true),
		},
		Consumer: AppConsumer{
			MaxMessagesPerSecond:    utils.GetEnvFloat("APP_CONSUMER_MAX_MESSAGES_PER_SECOND", 50),
			Burst:                   utils.GetEnvInt("APP_CONSUMER_BURST", 10),
			HandlerTimeoutInSeconds: utils.GetEnvInt("APP_CONSUMER_HANDLER_TIMEOUT_IN_SECONDS", 15),
		},
		PendingAudit: AppPendingAudit{
			Enabled:          utils.GetEnvBool("APP_PENDING_AUDIT_ENABLED", true),
			CronSpec:         utils.GetEnvString("APP_PENDING_AUDIT_CRON_SPEC", "@every 5m"),
			AgeInMinutes:     utils.GetEnvInt("APP_PENDING_AUDIT_AGE_IN_MINUTES", 15),
			LockKey:          utils.GetEnvString("APP_PENDING_AUDIT_LOCK_KEY", "appointment-service:pending-audit:leader"),
			LockTTLInSeconds: utils.GetEnvInt("APP_PENDING_AUDIT_LOCK_TTL_IN_SECONDS", 120),
		},
	}
}
