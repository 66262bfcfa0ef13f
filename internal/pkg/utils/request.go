package utils

import (
	"appointment-service/internal/pkg/dto/requests"
	"appointment-service/internal/pkg/exceptions"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DecodeCreateAppointment reads the create body. Numeric strings are accepted
// for scheduleId; values of the wrong type come back as violations and leave
// the field zero. The error is set only for bodies that are not JSON objects.
func DecodeCreateAppointment(body io.Reader) (*requests.CreateAppointment, []exceptions.FieldViolation, error) {
	var payload requests.CreateAppointmentPayload
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, nil, err
	}

	var violations []exceptions.FieldViolation
	request := &requests.CreateAppointment{}

	insuredID, ok := stringField(payload.InsuredID)
	if !ok {
		violations = append(violations, exceptions.FieldViolation{Field: "insuredId", Tag: "string"})
	}
	request.InsuredID = insuredID

	scheduleID, tag := int64Field(payload.ScheduleID)
	if tag != "" {
		violations = append(violations, exceptions.FieldViolation{Field: "scheduleId", Tag: tag})
	}
	request.ScheduleID = scheduleID

	countryCode, ok := stringField(payload.CountryCode)
	if !ok {
		violations = append(violations, exceptions.FieldViolation{Field: "countryCode", Tag: "string"})
	}
	request.CountryCode = countryCode

	return request, violations, nil
}

func stringField(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	default:
		return "", false
	}
}

// int64Field returns the violated tag, "numeric" or "integer", when the value
// cannot be used as a schedule id.
func int64Field(value interface{}) (int64, string) {
	var raw string
	switch v := value.(type) {
	case nil:
		return 0, ""
	case json.Number:
		raw = v.String()
	case string:
		raw = strings.TrimSpace(v)
	default:
		return 0, "numeric"
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "numeric"
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f), ""
	}
	return 0, "integer"
}
