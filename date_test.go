package csvcalendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/csvcalendar"
)

func TestParseDateTime(t *testing.T) {
	loc := saoPaulo(t)

	got, err := csvcalendar.ParseDateTime("15/03/2024 14:30:00", loc)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 0, got.Second())
	assert.Equal(t, loc, got.Location())
}

func TestParseDateTime_Format(t *testing.T) {
	for _, s := range []string{
		"15-03-2024 14:30:00",
		"15/03/24 14:30:00",
		"15/03/2024 14:30",
		"2024-03-15T14:30:00Z",
		"15/03/2024T14:30:00",
		" 15/03/2024 14:30:00",
		"15/03/2024 14:30:00 ",
		"5/3/2024 14:30:00",
		"",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := csvcalendar.ParseDateTime(s, time.UTC)
			require.ErrorIs(t, err, csvcalendar.ErrDateTimeFormat)
			assert.Contains(t, err.Error(), csvcalendar.DateTimePattern)
			assert.False(t, csvcalendar.IsValidDateTimeFormat(s))
		})
	}
}

// The shape check alone accepts these, the calendar check rejects them
// instead of rolling over.
func TestParseDateTime_OutOfRange(t *testing.T) {
	for _, s := range []string{
		"32/01/2024 10:00:00",
		"00/01/2024 10:00:00",
		"15/13/2024 10:00:00",
		"15/00/2024 10:00:00",
		"30/02/2024 10:00:00",
		"29/02/2023 10:00:00",
		"15/03/2024 25:00:00",
		"15/03/2024 10:60:00",
		"15/03/2024 10:00:60",
	} {
		t.Run(s, func(t *testing.T) {
			assert.True(t, csvcalendar.IsValidDateTimeFormat(s))

			_, err := csvcalendar.ParseDateTime(s, time.UTC)
			require.ErrorIs(t, err, csvcalendar.ErrInvalidDate)
		})
	}
}

func TestParseDateTime_LeapDay(t *testing.T) {
	got, err := csvcalendar.ParseDateTime("29/02/2024 23:59:59", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), got)
}

func TestCalculateEndTime(t *testing.T) {
	start := time.Date(2024, time.March, 15, 14, 30, 0, 0, saoPaulo(t))

	end, err := csvcalendar.CalculateEndTime(start, 60)
	require.NoError(t, err)
	assert.Equal(t, int64(3600000), end.UnixMilli()-start.UnixMilli())

	end, err = csvcalendar.CalculateEndTime(start, 90)
	require.NoError(t, err)
	assert.Equal(t, start.Add(90*time.Minute), end)
}

func TestCalculateEndTime_Errors(t *testing.T) {
	start := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

	_, err := csvcalendar.CalculateEndTime(start, 0)
	assert.ErrorIs(t, err, csvcalendar.ErrDuration)

	_, err = csvcalendar.CalculateEndTime(start, -5)
	assert.ErrorIs(t, err, csvcalendar.ErrDuration)

	_, err = csvcalendar.CalculateEndTime(time.Time{}, 30)
	assert.ErrorIs(t, err, csvcalendar.ErrStartDate)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, csvcalendar.IsValidDate(time.Now()))
	assert.False(t, csvcalendar.IsValidDate(time.Time{}))
}

func TestFormatISO(t *testing.T) {
	start := time.Date(2024, time.March, 15, 14, 30, 0, 0, saoPaulo(t))
	assert.Equal(t, "2024-03-15T17:30:00.000Z", csvcalendar.FormatISO(start))

	parsed, err := csvcalendar.ParseISO(csvcalendar.FormatISO(start))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(start))

	_, err = csvcalendar.ParseISO("15/03/2024 14:30:00")
	assert.Error(t, err)
}
