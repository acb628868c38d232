package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/guilherme-santos/csvcalendar"
	"github.com/guilherme-santos/csvcalendar/calendar"
	"github.com/guilherme-santos/csvcalendar/calendar/mock"
	"github.com/guilherme-santos/csvcalendar/file"
	"github.com/guilherme-santos/csvcalendar/internal/importer"
	"github.com/guilherme-santos/csvcalendar/internal/logging"
	"github.com/guilherme-santos/csvcalendar/internal/metrics"
)

var ImportCommand = _importCommand{
	Name:        "import",
	Description: "Create the events of a CSV file in the calendar",
}

type _importCommand struct {
	Name        string
	Description string
}

func (s _importCommand) Run(ctx context.Context, cfg file.Config, w io.Writer, args []string) error {
	var useMock bool

	fs := flag.NewFlagSet(s.Name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage of %s:\n", fs.Name())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&useMock, "mock", false, "create the events in memory instead of Google Calendar")
	fs.StringVar(&cfg.CSVFile, "csv", cfg.CSVFile, "CSV file with the events")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "where the results are written")
	fs.StringVar(&cfg.CalendarID, "calendar-id", cfg.CalendarID, "calendar where the events are created")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	observers := csvcalendar.Observers{logging.NewObserver(slog.Default())}
	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		observers = append(observers, recorder)
	}

	mux, auth, muxErr := newMux(cfg, observers)
	typ := calendar.TypeGoogle
	if useMock {
		typ = calendar.TypeMock
		// Nothing to authorize against.
		auth = nil
	}
	if typ == calendar.TypeGoogle && muxErr != nil {
		return muxErr
	}
	provider, err := mux.Get(typ)
	if err != nil {
		return err
	}
	if auth != nil {
		auth.Prompt = func(authURL string) {
			fmt.Fprintf(w, "Go to the following link in your browser\n%s\n", authURL)
		}
	}

	im := importer.New(
		file.NewCSVReader(observers),
		csvcalendar.NewValidator(loc, observers),
		csvcalendar.NewProcessor(loc, observers),
		provider,
		observers,
	)
	im.CalendarID = cfg.CalendarID
	im.ProviderType = typ

	if cfg.HistoryDB != "" {
		history, closeHistory, err := openHistory(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history: %v", err)
		}
		defer closeHistory()
		im.History = history
	}

	var authenticator csvcalendar.Authenticator
	if auth != nil {
		authenticator = auth
	}
	if err := im.Initialize(ctx, authenticator); err != nil {
		return fmt.Errorf("initializing %s provider: %w", typ, err)
	}

	results, err := im.ProcessCSV(ctx, cfg.CSVFile)
	if err != nil {
		return err
	}

	if err := im.Save(ctx, cfg.CSVFile, cfg.OutputFile, results); err != nil {
		slog.Error("unable to save results", "error", err)
	} else {
		fmt.Fprintf(w, "Results saved to %s\n", cfg.OutputFile)
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Error("unable to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	created, failed := csvcalendar.Summarize(results)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d events created\n", created)
	fmt.Fprintf(w, "  %d events with errors\n", failed)
	if mockCal, ok := provider.(*mock.Provider); ok {
		fmt.Fprintf(w, "  %d events in the mock calendar\n", mockCal.EventsCount())
	}
	return nil
}
