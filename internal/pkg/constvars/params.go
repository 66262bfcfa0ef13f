package constvars

const (
	URLParamAppointmentID = "id"
	URLParamInsuredID     = "insured_id"
)
