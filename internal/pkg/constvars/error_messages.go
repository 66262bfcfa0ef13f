package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"numeric":      "must be a number",
	"integer":      "must be an integer",
	"string":       "must be a string",
	"len":          "must be %s characters long",
	"oneof":        "must be one of [%s]",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"uuid":         "must be a valid UUID",
	"insured_id":   "must be exactly 5 numeric digits",
	"country_code": "must be one of [CL, PE]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"len":   true,
	"gt":    true,
	"gte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientValidationError               = "Validation error"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientAppointmentIDRequired         = "Appointment ID is required"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevURLParamValidationFailed   = "url param %s validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevMissingRequestID           = "request id not found in context"
	ErrDevAppointmentNotFound        = "appointment %s not found"
	ErrDevMalformedMessage           = "malformed message on %s"
	ErrDevRoutingNoChannel           = "no channel registered for country %s"
	ErrDevNoConfirmationWorker       = "no confirmation worker registered for country %s"
	ErrDevCountryMismatch            = "fact for country %s delivered to %s worker"
	ErrDevScheduleAlreadyBooked      = "schedule %d already booked in country %s store"
	ErrDevBookingAlreadyExists       = "booking for appointment %s already exists in country %s store"
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCreateIndex      = "failed to create index on %s"
	ErrDevRedisGetNoData             = "no data found in redis for key %s"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisSetData               = "failed to set data to redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevRedisExpireData            = "failed to refresh expiry in redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to %s"
	ErrDevRabbitMQDeclareTopology    = "failed to declare %s"
	ErrDevRabbitMQConsume            = "failed to consume from %s"
)
