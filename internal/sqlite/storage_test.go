package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/csvcalendar"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a different database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return NewStorage(db)
}

func TestStorage_SaveRun(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	run := csvcalendar.Run{
		ID:        "run-1",
		Source:    "data/eventos.csv",
		Provider:  "mock",
		StartedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	results := []csvcalendar.Result{
		{
			Success:      true,
			Event:        &csvcalendar.RemoteEvent{ID: "mock-event-1"},
			OriginalData: *csvcalendar.NewEvent("15/03/2024 14:30:00", "60", "Team meeting", "15"),
		},
		{
			Error:        "invalid event: duracao must be a number greater than zero",
			OriginalData: *csvcalendar.NewEvent("15/03/2024 16:00:00", "0", "Review", ""),
		},
	}
	require.NoError(t, s.SaveRun(ctx, run, results))

	imports, err := s.Imports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "run-1", imports[0].ID)
	assert.Equal(t, 1, imports[0].Created)
	assert.Equal(t, 1, imports[0].Failed)
	assert.True(t, run.StartedAt.Equal(imports[0].Run().StartedAt))

	rows, err := s.Results(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{ImportID: "run-1", Position: 0, Success: true, EventID: "mock-event-1", Name: "Team meeting", Horario: "15/03/2024 14:30:00"},
		{ImportID: "run-1", Position: 1, Name: "Review", Horario: "15/03/2024 16:00:00", Error: "invalid event: duracao must be a number greater than zero"},
	}, rows)
}

func TestStorage_SaveRun_DuplicateID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	run := csvcalendar.Run{ID: "run-1", Source: "a.csv", Provider: "mock", StartedAt: time.Now()}
	require.NoError(t, s.SaveRun(ctx, run, nil))
	assert.Error(t, s.SaveRun(ctx, run, nil))

	imports, err := s.Imports(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, imports, 1)
}

func TestStorage_Imports_Order(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new", "middle"} {
		offset := []time.Duration{0, 2 * time.Hour, time.Hour}[i]
		run := csvcalendar.Run{ID: id, Source: "a.csv", Provider: "mock", StartedAt: base.Add(offset)}
		require.NoError(t, s.SaveRun(ctx, run, nil))
	}

	imports, err := s.Imports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, "new", imports[0].ID)
	assert.Equal(t, "middle", imports[1].ID)
}
