package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_MESSAGE_ID_KEY           ContextKey = "message_id"
)

const (
	REQUEST_ID_PREFIX = "APPT_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	ResourceAppointments = "appointments"
	ResourceHealth       = "health"
)
