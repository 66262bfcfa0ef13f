package requests

type CreateAppointment struct {
	InsuredID   string `json:"insuredId" validate:"required,insured_id"`
	ScheduleID  int64  `json:"scheduleId" validate:"required,gt=0"`
	CountryCode string `json:"countryCode" validate:"required,country_code"`
}

type FindAppointmentsByInsuredID struct {
	InsuredID string `json:"insuredId" validate:"required,insured_id"`
}

// CreateAppointmentPayload takes any JSON type per field so type mistakes can
// be reported together with the other rule violations.
type CreateAppointmentPayload struct {
	InsuredID   interface{} `json:"insuredId"`
	ScheduleID  interface{} `json:"scheduleId"`
	CountryCode interface{} `json:"countryCode"`
}
