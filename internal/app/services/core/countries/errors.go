package countries

import "errors"

// Sentinels wrapped by the repositories when a uniqueness rule rejects a booking.
var (
	ErrScheduleTaken   = errors.New("schedule already booked")
	ErrExternalIDTaken = errors.New("booking for appointment already exists")
)
