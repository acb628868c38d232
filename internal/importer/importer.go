package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guilherme-santos/csvcalendar"
	"github.com/guilherme-santos/csvcalendar/file"
)

// TokenSetter is implemented by providers that need the authorized token
// handed over once authorization is done.
type TokenSetter interface {
	SetToken(*csvcalendar.Token)
}

// Importer takes the rows of a CSV file into a calendar provider.
type Importer struct {
	parser    csvcalendar.CSVParser
	validator csvcalendar.EventValidator
	processor csvcalendar.EventProcessor
	provider  csvcalendar.Provider
	observer  csvcalendar.Observer

	CalendarID   string
	ProviderType string
	// History is optional, imports aren't recorded when it's nil.
	History csvcalendar.History
	Now     func() time.Time
}

func New(
	parser csvcalendar.CSVParser,
	validator csvcalendar.EventValidator,
	processor csvcalendar.EventProcessor,
	provider csvcalendar.Provider,
	observer csvcalendar.Observer,
) *Importer {
	return &Importer{
		parser:     parser,
		validator:  validator,
		processor:  processor,
		provider:   provider,
		observer:   csvcalendar.ObserverOrNop(observer),
		CalendarID: csvcalendar.DefaultCalendarID,
		Now:        time.Now,
	}
}

// Initialize prepares the provider. When auth is set, a usable token is
// obtained first, interactively if the stored one can't be used.
func (im *Importer) Initialize(ctx context.Context, auth csvcalendar.Authenticator) error {
	if err := im.provider.Initialize(ctx); err != nil {
		return err
	}
	if auth == nil {
		return nil
	}
	tok, err := Authorize(ctx, auth)
	if err != nil {
		return err
	}
	if setter, ok := im.provider.(TokenSetter); ok {
		setter.SetToken(tok)
	}
	return nil
}

// Authorize loads the saved token and refreshes it when needed. Without
// a token, or when it can't be refreshed, the interactive flow runs.
func Authorize(ctx context.Context, auth csvcalendar.Authenticator) (*csvcalendar.Token, error) {
	if auth.LoadSavedTokens() == nil || !auth.EnsureValidToken(ctx) {
		return auth.Authenticate(ctx)
	}
	return auth.Token(), nil
}

// ProcessCSV returns one result per row: created events first, then rows
// that failed processing, then the invalid ones. Failures creating a single
// event don't stop the import.
func (im *Importer) ProcessCSV(ctx context.Context, path string) ([]csvcalendar.Result, error) {
	events, err := im.parser.ParseFileToEvents(path)
	if err != nil {
		return nil, err
	}

	validation := im.validator.ValidateEvents(events)
	processing := im.processor.ProcessEvents(validation.ValidEvents)

	results := make([]csvcalendar.Result, 0, len(events))
	for _, pe := range processing.SuccessfulEvents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		original := pe.OriginalData
		remote, err := im.provider.CreateEvent(ctx, pe.Data, im.CalendarID)
		if err != nil {
			im.observer.EventFailed(&original, err)
			results = append(results, csvcalendar.Result{
				Success:      false,
				Error:        err.Error(),
				OriginalData: original,
			})
			continue
		}
		im.observer.EventCreated(&original, remote)
		results = append(results, csvcalendar.Result{
			Success:      true,
			Event:        remote,
			OriginalData: original,
		})
	}

	for _, pe := range processing.FailedEvents {
		results = append(results, pe.Result())
	}

	for _, ie := range validation.InvalidEvents {
		var original csvcalendar.Event
		if ie.Event != nil {
			original = *ie.Event
		}
		results = append(results, csvcalendar.Result{
			Success:      false,
			Error:        "invalid event: " + strings.Join(ie.Errors, ", "),
			OriginalData: original,
		})
	}
	return results, nil
}

// Save writes results to outputPath and records the import in History.
// Both are attempted, the returned error carries every failure.
func (im *Importer) Save(ctx context.Context, source, outputPath string, results []csvcalendar.Result) error {
	var errs []error
	if err := file.SaveResults(outputPath, results); err != nil {
		errs = append(errs, fmt.Errorf("saving results to %s: %v", outputPath, err))
	}
	if im.History != nil {
		run := csvcalendar.Run{
			ID:        uuid.NewString(),
			Source:    source,
			Provider:  im.ProviderType,
			StartedAt: im.Now(),
		}
		if err := im.History.SaveRun(ctx, run, results); err != nil {
			errs = append(errs, fmt.Errorf("saving import history: %v", err))
		}
	}
	return errors.Join(errs...)
}
