package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
)

const (
	CreateAppointmentSuccessMessage          = "Appointment created successfully"
	GetAppointmentSuccessMessage             = "Appointment retrieved successfully"
	GetAppointmentsByInsuredIDSuccessMessage = "Appointments retrieved successfully"
	HealthCheckSuccessMessage                = "service is healthy"
)
