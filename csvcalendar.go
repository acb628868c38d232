package csvcalendar

import (
	"context"
	"time"
)

const DefaultCalendarID = "primary"

type ProviderInfo struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Authenticated bool   `json:"authenticated"`
	EventsCount   *int   `json:"events_count,omitempty"`
}

// Provider is a calendar backend able to create events.
type Provider interface {
	Initialize(context.Context) error
	// CreateEvent creates d on calendarID, empty means DefaultCalendarID.
	CreateEvent(_ context.Context, d *CalendarEventData, calendarID string) (*RemoteEvent, error)
	IsAuthenticated() bool
	Info() ProviderInfo
}

type Mux interface {
	Get(typ string) (Provider, error)
	Types() []string
}

// TokenManager stores a single token record. Storage failures are never
// returned, Load gives nil and Save/Clear give false instead.
type TokenManager interface {
	Load() *Token
	Save(*Token) bool
	Clear() bool
	Exists() bool
	IsExpired(*Token) bool
}

type Authenticator interface {
	LoadSavedTokens() *Token
	EnsureValidToken(context.Context) bool
	Authenticate(context.Context) (*Token, error)
	Token() *Token
}

type CSVParser interface {
	ParseFileToEvents(path string) ([]*Event, error)
}

type EventValidator interface {
	ValidateEvent(*Event) ValidationResult
	ValidateEvents([]*Event) BatchValidation
}

type EventProcessor interface {
	ProcessEvent(*Event) ProcessResult
	ProcessEvents([]*Event) BatchProcessing
}

// Result is the outcome of one input row.
type Result struct {
	Success      bool         `json:"success"`
	Event        *RemoteEvent `json:"event,omitempty"`
	Error        string       `json:"error,omitempty"`
	OriginalData Event        `json:"originalData"`
}

func Summarize(results []Result) (created, failed int) {
	for _, r := range results {
		if r.Success {
			created++
		} else {
			failed++
		}
	}
	return
}

// Run identifies one import execution.
type Run struct {
	ID        string
	Source    string
	Provider  string
	StartedAt time.Time
}

type History interface {
	SaveRun(context.Context, Run, []Result) error
}

// Credentials identify the OAuth client of the real provider.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}
