package sqlite

import (
	"time"

	"github.com/guilherme-santos/csvcalendar"
)

type Import struct {
	ID        string
	Source    string
	Provider  string
	StartedAt time.Time `db:"started_at"`
	Created   int
	Failed    int
}

func (i Import) Run() csvcalendar.Run {
	return csvcalendar.Run{
		ID:        i.ID,
		Source:    i.Source,
		Provider:  i.Provider,
		StartedAt: i.StartedAt,
	}
}

type Result struct {
	ImportID string `db:"import_id"`
	Position int
	Success  bool
	EventID  string `db:"event_id"`
	Name     string
	Horario  string
	Error    string
}

func newResult(importID string, pos int, r csvcalendar.Result) Result {
	res := Result{
		ImportID: importID,
		Position: pos,
		Success:  r.Success,
		Name:     r.OriginalData.Name,
		Horario:  r.OriginalData.Time,
		Error:    r.Error,
	}
	if r.Event != nil {
		res.EventID = r.Event.ID
	}
	return res
}
