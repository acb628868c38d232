package csvcalendar

import (
	"strings"
	"time"
)

// ValidateRequired fails on nil and on the empty string. Zero and false
// are present values.
func ValidateRequired(value any, field string) error {
	switch v := value.(type) {
	case nil:
		return newValidationError(field, "%s is required", field)
	case string:
		if v == "" {
			return newValidationError(field, "%s is required", field)
		}
	}
	return nil
}

func ValidatePositive(value Minutes, field string) error {
	if n, ok := value.Int(); !ok || n <= 0 {
		return newValidationError(field, "%s must be a number greater than zero", field)
	}
	return nil
}

func ValidateNonNegative(value Minutes, field string) error {
	if n, ok := value.Int(); !ok || n < 0 {
		return newValidationError(field, "%s must not be negative", field)
	}
	return nil
}

func ValidateDateTimeFormat(value, field string) error {
	if !IsValidDateTimeFormat(value) {
		return newValidationError(field, "%s must be in the format %s", field, DateTimePattern)
	}
	return nil
}

// ValidateEvent returns the first rule e breaks, in column order: presence,
// then format and ranges, then whether horario names a real instant in loc.
func ValidateEvent(e *Event, loc *time.Location) error {
	if e == nil {
		return newValidationError("event", "event is required")
	}
	checks := []func() error{
		func() error { return ValidateRequired(e.Time, FieldTime) },
		func() error { return ValidateRequired(e.Duration, FieldDuration) },
		func() error { return ValidateRequired(e.Name, FieldName) },
		func() error { return ValidateRequired(e.Notification, FieldNotification) },
		func() error { return ValidateDateTimeFormat(e.Time, FieldTime) },
		func() error { return ValidatePositive(e.Duration, FieldDuration) },
		func() error { return ValidateNonNegative(e.Notification, FieldNotification) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	if _, err := ParseDateTime(e.Time, loc); err != nil {
		return &ValidationError{
			Field: FieldTime,
			Msg:   "invalid date: " + err.Error(),
			Err:   err,
		}
	}
	return nil
}

var payloadFields = []string{FieldName, FieldStartDateTime, FieldEndDateTime}

// ValidatePayloadShape is the check every provider runs before anything
// else: the three fields it can't create an event without.
func ValidatePayloadShape(d *CalendarEventData) error {
	if d == nil || d.Name == "" || d.StartDateTime == "" || d.EndDateTime == "" {
		fields := strings.Join(payloadFields, ", ")
		return newValidationError(fields, "required fields not provided: %s", fields)
	}
	return nil
}

// ValidateCalendarEventData checks d can be turned into a calendar event:
// both instants parse and the event ends strictly after it starts.
func ValidateCalendarEventData(d *CalendarEventData) error {
	if d == nil {
		return newValidationError("event", "event is required")
	}
	if err := ValidateRequired(d.Name, FieldName); err != nil {
		return err
	}
	if err := ValidateRequired(d.StartDateTime, FieldStartDateTime); err != nil {
		return err
	}
	if err := ValidateRequired(d.EndDateTime, FieldEndDateTime); err != nil {
		return err
	}

	start, err := ParseISO(d.StartDateTime)
	if err != nil {
		return newValidationError(FieldStartDateTime, "%s must be a valid date", FieldStartDateTime)
	}
	end, err := ParseISO(d.EndDateTime)
	if err != nil {
		return newValidationError(FieldEndDateTime, "%s must be a valid date", FieldEndDateTime)
	}
	if !end.After(start) {
		return newValidationError(FieldEndDateTime, "%s must be after %s", FieldEndDateTime, FieldStartDateTime)
	}
	return nil
}
