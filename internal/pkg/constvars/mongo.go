package constvars

const (
	MongoCollectionAppointments        = "appointments"
	MongoCollectionCountryAppointments = "appointments"
)

const (
	MongoIndexAppointmentsInsuredID     = "insured_id_idx"
	MongoIndexAppointmentsStatusCreated = "status_created_at_idx"
	MongoIndexCountryScheduleIDUnique   = "schedule_id_unique_idx"
	MongoIndexCountryExternalIDUnique   = "external_id_unique_idx"
	MongoIndexCountryScheduleID         = "schedule_id_idx"
)
