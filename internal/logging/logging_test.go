package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/csvcalendar"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestSetup(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := Setup(&buf, "warn", "json")
	assert.Same(t, logger, slog.Default())

	slog.Info("hidden")
	slog.Warn("shown", "rows", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, float64(2), line["rows"])
}

func TestObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var obs csvcalendar.Observer = NewObserver(logger)

	e := csvcalendar.NewEvent("15/03/2024 14:30:00", "60", "Team meeting", "15")
	obs.RowsRead("eventos.csv", 3)
	obs.RowValidated(e, nil)
	obs.RowValidated(e, errors.New("duracao is required"))
	obs.EventCreated(e, &csvcalendar.RemoteEvent{ID: "mock-event-1"})
	obs.TokenRefreshed(nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `msg="csv file read" path=eventos.csv rows=3`)
	assert.Contains(t, lines[1], `event.name="Team meeting"`)
	assert.Contains(t, lines[2], `level=WARN`)
	assert.Contains(t, lines[2], `error="duracao is required"`)
	assert.Contains(t, lines[3], `id=mock-event-1`)
	assert.Contains(t, lines[4], `msg="token refreshed"`)
}
