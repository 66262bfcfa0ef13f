package models

import "appointment-service/internal/pkg/constvars"

// CountryBooking lives in the store of a single country. ExternalID points back
// to the core Appointment.ID.
type CountryBooking struct {
	ID          string                      `json:"id" bson:"_id"`
	InsuredID   string                      `json:"insuredId" bson:"insuredId"`
	ScheduleID  int64                       `json:"scheduleId" bson:"scheduleId"`
	CountryCode string                      `json:"countryCode" bson:"countryCode"`
	ExternalID  string                      `json:"externalId" bson:"externalId"`
	Status      constvars.AppointmentStatus `json:"status" bson:"status"`
	TimeModel   `bson:",inline"`
}
