package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMessageIDKey      = "message_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorTypeKey      = "error_type"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingAppointmentIDKey     = "appointment_id"
	LoggingAppointmentCountKey  = "appointment_count"
	LoggingInsuredIDKey         = "insured_id"
	LoggingValidationDetailsKey = "validation_details"
	LoggingScheduleIDKey        = "schedule_id"
	LoggingCountryCodeKey       = "country_code"
	LoggingStatusKey            = "status"
	LoggingBookingIDKey         = "booking_id"
	LoggingExternalIDKey        = "external_id"
	LoggingHardenedKey          = "hardened"

	LoggingExchangeKey   = "exchange"
	LoggingQueueKey      = "queue"
	LoggingRoutingKeyKey = "routing_key"
	LoggingRedeliveryKey = "redelivered"
	LoggingCollectionKey = "collection"
	LoggingDatabaseKey   = "database"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"

	LoggingCutoffKey = "cutoff"
)
