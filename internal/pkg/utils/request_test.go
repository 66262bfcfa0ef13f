package utils

import (
	"appointment-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateAppointment(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantScheduleID int64
		wantViolations []exceptions.FieldViolation
	}{
		{"Number", `{"insuredId":"12345","scheduleId":100,"countryCode":"PE"}`, 100, nil},
		{"Numeric String", `{"insuredId":"12345","scheduleId":" 42 ","countryCode":"PE"}`, 42, nil},
		{"Whole Float", `{"insuredId":"12345","scheduleId":7.0,"countryCode":"PE"}`, 7, nil},
		{"Missing Schedule ID", `{"insuredId":"12345","countryCode":"PE"}`, 0, nil},
		{"Fraction", `{"scheduleId":"10.5"}`, 0, []exceptions.FieldViolation{{Field: "scheduleId", Tag: "integer"}}},
		{"Text", `{"scheduleId":"abc"}`, 0, []exceptions.FieldViolation{{Field: "scheduleId", Tag: "numeric"}}},
		{"Numeric Insured ID", `{"insuredId":12345}`, 0, []exceptions.FieldViolation{{Field: "insuredId", Tag: "string"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, violations, err := DecodeCreateAppointment(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheduleID, request.ScheduleID)
			assert.Equal(t, tt.wantViolations, violations)
		})
	}

	t.Run("Not JSON", func(t *testing.T) {
		_, _, err := DecodeCreateAppointment(strings.NewReader(`{"insuredId":`))
		assert.Error(t, err)
	})
}
