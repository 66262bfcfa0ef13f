package responses

import "time"

type Appointment struct {
	ID          string    `json:"id"`
	InsuredID   string    `json:"insuredId"`
	ScheduleID  int64     `json:"scheduleId"`
	CountryCode string    `json:"countryCode"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type InsuredAppointments struct {
	InsuredID    string        `json:"insuredId"`
	Count        int           `json:"count"`
	Appointments []Appointment `json:"appointments"`
}
