package logging

import (
	"log/slog"

	"github.com/guilherme-santos/csvcalendar"
)

// Observer logs every import step on a slog.Logger.
type Observer struct {
	logger *slog.Logger
}

func NewObserver(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{logger: logger}
}

func eventAttrs(e *csvcalendar.Event) slog.Attr {
	if e == nil {
		return slog.Group("event")
	}
	return slog.Group("event",
		slog.String("name", e.Name),
		slog.String("horario", e.Time),
	)
}

func (o *Observer) RowsRead(path string, n int) {
	o.logger.Info("csv file read", "path", path, "rows", n)
}

func (o *Observer) RowValidated(e *csvcalendar.Event, err error) {
	if err != nil {
		o.logger.Warn("invalid event", eventAttrs(e), "error", err)
		return
	}
	o.logger.Debug("event is valid", eventAttrs(e))
}

func (o *Observer) RowProcessed(e *csvcalendar.Event, err error) {
	if err != nil {
		o.logger.Warn("unable to process event", eventAttrs(e), "error", err)
		return
	}
	o.logger.Debug("event processed", eventAttrs(e))
}

func (o *Observer) EventCreated(e *csvcalendar.Event, remote *csvcalendar.RemoteEvent) {
	attrs := []any{eventAttrs(e)}
	if remote != nil {
		attrs = append(attrs, "id", remote.ID)
	}
	o.logger.Info("event created", attrs...)
}

func (o *Observer) EventFailed(e *csvcalendar.Event, err error) {
	o.logger.Error("unable to create event", eventAttrs(e), "error", err)
}

func (o *Observer) TokenSaved(path string, err error) {
	if err != nil {
		o.logger.Error("unable to save token", "path", path, "error", err)
		return
	}
	o.logger.Info("token saved", "path", path)
}

func (o *Observer) TokenRefreshed(err error) {
	if err != nil {
		o.logger.Error("unable to refresh token", "error", err)
		return
	}
	o.logger.Info("token refreshed")
}

func (o *Observer) AuthorizationURL(url string) {
	o.logger.Debug("authorization url ready", "url", url)
}
