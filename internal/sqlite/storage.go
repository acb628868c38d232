package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/guilherme-santos/csvcalendar"
)

const DriverName = "sqlite3"

// Storage keeps the history of imports and the outcome of every row.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sql.DB) *Storage {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	err := s.RunMigrations()
	if err != nil {
		panic(fmt.Sprintf("sqlite: running migrations: %v", err))
	}
	return s
}

func (s Storage) SaveRun(ctx context.Context, run csvcalendar.Run, results []csvcalendar.Result) error {
	created, failed := csvcalendar.Summarize(results)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (id, source, provider, started_at, created, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Provider, run.StartedAt.UTC(), created, failed)
	if err != nil {
		return fmt.Errorf("import: %v", err)
	}

	for i, r := range results {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO results (import_id, position, success, event_id, name, horario, error)
			VALUES (:import_id, :position, :success, :event_id, :name, :horario, :error)
		`, newResult(run.ID, i, r))
		if err != nil {
			return fmt.Errorf("result #%d: %v", i, err)
		}
	}
	return tx.Commit()
}

// Imports returns the latest imports first, at most limit of them.
func (s Storage) Imports(ctx context.Context, limit int) ([]Import, error) {
	var imports []Import

	err := s.db.SelectContext(ctx, &imports, `
		SELECT id, source, provider, started_at, created, failed
		FROM imports
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return imports, nil
}

func (s Storage) Results(ctx context.Context, importID string) ([]Result, error) {
	var results []Result

	err := s.db.SelectContext(ctx, &results, `
		SELECT import_id, position, success, event_id, name, horario, error
		FROM results
		WHERE import_id = ?
		ORDER BY position
	`, importID)
	if err != nil {
		return nil, err
	}
	return results, nil
}
