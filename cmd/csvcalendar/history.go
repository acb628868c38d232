package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/guilherme-santos/csvcalendar"
	"github.com/guilherme-santos/csvcalendar/file"
)

var HistoryCommand = _historyCommand{
	Name:        "history",
	Description: "List the latest imports",
}

type _historyCommand struct {
	Name        string
	Description string
}

func (s _historyCommand) Run(ctx context.Context, cfg file.Config, w io.Writer, args []string) error {
	var (
		limit    int
		importID string
	)

	fs := flag.NewFlagSet(s.Name, flag.ContinueOnError)
	fs.IntVar(&limit, "limit", 10, "number of imports to list")
	fs.StringVar(&importID, "id", "", "show the rows of this import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return &csvcalendar.ConfigurationError{
			Key: "history_db",
			Err: errors.New("import history is disabled"),
		}
	}

	storage, closeHistory, err := openHistory(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer closeHistory()

	if importID != "" {
		results, err := storage.Results(ctx, importID)
		if err != nil {
			return err
		}
		for _, r := range results {
			status := "created " + r.EventID
			if !r.Success {
				status = r.Error
			}
			fmt.Fprintf(w, "%3d %s %q: %s\n", r.Position+1, r.Horario, r.Name, status)
		}
		return nil
	}

	imports, err := storage.Imports(ctx, limit)
	if err != nil {
		return err
	}
	for _, i := range imports {
		fmt.Fprintf(w, "%s %s %s (%s): %d created, %d with errors\n",
			i.ID, i.StartedAt.In(time.Local).Format("02 Jan 06 15:04"), i.Source, i.Provider, i.Created, i.Failed)
	}
	return nil
}
