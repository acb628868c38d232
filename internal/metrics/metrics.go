package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/guilherme-santos/csvcalendar"
)

const (
	StageRead       = "read"
	StageValidation = "validation"
	StageProcessing = "processing"
	StageCreation   = "creation"

	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder counts import outcomes on its own registry, so a run can be
// written as a textfile without the Go runtime collectors.
type Recorder struct {
	registry    *prometheus.Registry
	rows        *prometheus.CounterVec
	tokenEvents *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csvcalendar_rows_total",
				Help: "Total number of CSV rows by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		tokenEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csvcalendar_token_events_total",
				Help: "Total number of token saves and refreshes by kind",
			},
			[]string{"kind"},
		),
	}
	r.registry.MustRegister(r.rows, r.tokenEvents)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current values in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

func (r *Recorder) RowsRead(_ string, n int) {
	r.rows.WithLabelValues(StageRead, OutcomeOK).Add(float64(n))
}

func (r *Recorder) RowValidated(_ *csvcalendar.Event, err error) {
	r.rows.WithLabelValues(StageValidation, outcome(err)).Inc()
}

func (r *Recorder) RowProcessed(_ *csvcalendar.Event, err error) {
	r.rows.WithLabelValues(StageProcessing, outcome(err)).Inc()
}

func (r *Recorder) EventCreated(*csvcalendar.Event, *csvcalendar.RemoteEvent) {
	r.rows.WithLabelValues(StageCreation, OutcomeOK).Inc()
}

func (r *Recorder) EventFailed(_ *csvcalendar.Event, _ error) {
	r.rows.WithLabelValues(StageCreation, OutcomeError).Inc()
}

func (r *Recorder) TokenSaved(_ string, err error) {
	kind := "saved"
	if err != nil {
		kind = "save_failed"
	}
	r.tokenEvents.WithLabelValues(kind).Inc()
}

func (r *Recorder) TokenRefreshed(err error) {
	kind := "refreshed"
	if err != nil {
		kind = "refresh_failed"
	}
	r.tokenEvents.WithLabelValues(kind).Inc()
}

func (r *Recorder) AuthorizationURL(string) {
	r.tokenEvents.WithLabelValues("authorization_requested").Inc()
}
