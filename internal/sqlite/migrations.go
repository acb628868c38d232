package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS imports (
		id VARCHAR NOT NULL PRIMARY KEY,
		source VARCHAR NOT NULL,
		provider VARCHAR NOT NULL,
		started_at DATETIME NOT NULL,
		created INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		import_id VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		success BOOLEAN NOT NULL,
		event_id VARCHAR NOT NULL DEFAULT '',
		name VARCHAR NOT NULL,
		horario VARCHAR NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (import_id, position),
		FOREIGN KEY (import_id) REFERENCES imports (id)
	)`,
}
