package constvars

const (
	EventTypeAppointmentCreated = "APPOINTMENT_CREATED"

	EventSourceStatusUpdate     = "appointment-service.statusUpdate"
	EventDetailTypeStatusUpdate = "Appointment Status Update"
	EventActionUpdateStatus     = "update_status_to_completed"

	EventEnvelopeTypeNotification = "Notification"
)

const (
	EventAttributeEventType     = "eventType"
	EventAttributeCountryISO    = "countryISO"
	EventAttributeAppointmentID = "appointmentId"
)

const (
	RabbitMQHeaderFailedReason = "x-failed-reason"
)

// Default topology names, overridable through configuration.
const (
	DefaultAppointmentExchange         = "appointments"
	DefaultAppointmentStatusExchange   = "appointments.status"
	DefaultAppointmentCreatedQueue     = "appointment_created_fanout_queue"
	DefaultAppointmentStatusQueue      = "appointment_status_update_queue"
	DefaultCountryQueueFormat          = "appointment_%s_queue"
	DeadLetterQueueSuffix              = "_dlq"
	RoutingKeyAppointmentCreatedFormat = "appointment.created.%s"
	RoutingKeyAppointmentCreatedAll    = "appointment.created.*"
	RoutingKeyAppointmentStatusUpdate  = "appointment.status.updated"
)
