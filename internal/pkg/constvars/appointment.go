package constvars

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusConfirmed || s == AppointmentStatusCancelled
}

const (
	CountryCodeChile = "CL"
	CountryCodePeru  = "PE"
)

// SupportedCountryCodes is the set accepted at intake. A code listed here still
// needs a registered fan-out channel and confirmation worker to be booked.
var SupportedCountryCodes = []string{CountryCodeChile, CountryCodePeru}

func IsSupportedCountryCode(code string) bool {
	for _, supported := range SupportedCountryCodes {
		if supported == code {
			return true
		}
	}
	return false
}
