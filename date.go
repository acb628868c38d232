package csvcalendar

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

const (
	// DateTimePattern is the only accepted layout for the horario column.
	DateTimePattern = "DD/MM/YYYY HH:mm:ss"
	// ISOFormat is how instants are handed to calendar providers, always in UTC.
	ISOFormat = "2006-01-02T15:04:05.000Z07:00"

	DefaultTimezone = "America/Sao_Paulo"
)

var dateTimeRegexp = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4}) (\d{2}):(\d{2}):(\d{2})$`)

var (
	ErrDateTimeFormat = errors.New("invalid date format, use " + DateTimePattern)
	ErrInvalidDate    = errors.New("date is out of calendar range")
	ErrStartDate      = errors.New("startDate must be a valid instant")
	ErrDuration       = errors.New("durationMinutes must be a positive number")
)

// ParseDateTime reads a DD/MM/YYYY HH:mm:ss value as a wall clock time in loc.
// Values the calendar cannot hold (day 32, hour 25, 30/02) are rejected
// instead of rolling over into the next unit.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	m := dateTimeRegexp.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrDateTimeFormat
	}

	var f [6]int
	for i := range f {
		f[i], _ = strconv.Atoi(m[i+1])
	}
	day, month, year, hour, min, sec := f[0], f[1], f[2], f[3], f[4], f[5]

	if loc == nil {
		loc = time.Local
	}
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != min || t.Second() != sec {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// CalculateEndTime returns start shifted by the given amount of minutes.
func CalculateEndTime(start time.Time, durationMinutes int) (time.Time, error) {
	if !IsValidDate(start) {
		return time.Time{}, ErrStartDate
	}
	if durationMinutes <= 0 {
		return time.Time{}, ErrDuration
	}
	return start.Add(time.Duration(durationMinutes) * time.Minute), nil
}

// IsValidDateTimeFormat only checks the shape of s, not the ranges.
func IsValidDateTimeFormat(s string) bool {
	return dateTimeRegexp.MatchString(s)
}

func IsValidDate(t time.Time) bool {
	return !t.IsZero()
}

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOFormat)
}

// ParseISO accepts what FormatISO produces and any other RFC 3339 value.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
