package csvcalendar_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/csvcalendar"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(csvcalendar.DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func validEvent() *csvcalendar.Event {
	return csvcalendar.NewEvent("15/03/2024 14:30:00", "60", "Team meeting", "15")
}
