package models

import "appointment-service/internal/pkg/constvars"

type Appointment struct {
	ID          string                      `json:"id" bson:"_id"`
	InsuredID   string                      `json:"insuredId" bson:"insuredId"`
	ScheduleID  int64                       `json:"scheduleId" bson:"scheduleId"`
	CountryCode string                      `json:"countryCode" bson:"countryCode"`
	Status      constvars.AppointmentStatus `json:"status" bson:"status"`
	TimeModel   `bson:",inline"`
}
