// Package mock is an in-memory calendar provider for dry runs and tests.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/guilherme-santos/csvcalendar"
)

const DefaultLatency = 100 * time.Millisecond

type Provider struct {
	mu       sync.Mutex
	events   []csvcalendar.RemoteEvent
	nextID   int
	timezone string
	latency  time.Duration

	Now func() time.Time
}

// New returns an empty provider. Every creation waits latency first,
// zero or negative disables the wait.
func New(timezone string, latency time.Duration) *Provider {
	return &Provider{
		nextID:   1,
		timezone: timezone,
		latency:  latency,
		Now:      time.Now,
	}
}

func (p *Provider) Initialize(context.Context) error {
	return nil
}

func (p *Provider) CreateEvent(ctx context.Context, d *csvcalendar.CalendarEventData, _ string) (*csvcalendar.RemoteEvent, error) {
	if err := csvcalendar.ValidatePayloadShape(d); err != nil {
		return nil, err
	}
	if err := csvcalendar.ValidateCalendarEventData(d); err != nil {
		return nil, err
	}

	if p.latency > 0 {
		select {
		case <-time.After(p.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	payload := csvcalendar.NewPayload(d, p.timezone)
	now := csvcalendar.FormatISO(p.Now())

	p.mu.Lock()
	defer p.mu.Unlock()

	event := csvcalendar.RemoteEvent{
		ID:        fmt.Sprintf("mock-event-%d", p.nextID),
		Summary:   payload.Summary,
		Start:     payload.Start,
		End:       payload.End,
		Reminders: payload.Reminders,
		Status:    "confirmed",
		Created:   now,
		Updated:   now,
	}
	p.nextID++
	p.events = append(p.events, event)
	res := cloneEvent(event)
	return &res, nil
}

func cloneEvent(e csvcalendar.RemoteEvent) csvcalendar.RemoteEvent {
	e.Reminders.Overrides = append([]csvcalendar.Reminder(nil), e.Reminders.Overrides...)
	return e
}

func (p *Provider) IsAuthenticated() bool {
	return true
}

// Events returns a copy of the events created so far, oldest first.
func (p *Provider) Events() []csvcalendar.RemoteEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := make([]csvcalendar.RemoteEvent, len(p.events))
	for i, e := range p.events {
		events[i] = cloneEvent(e)
	}
	return events
}

func (p *Provider) EventsCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.events)
}

// ClearEvents drops every event and restarts ids at 1.
func (p *Provider) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
	p.nextID = 1
}

func (p *Provider) Info() csvcalendar.ProviderInfo {
	count := p.EventsCount()
	return csvcalendar.ProviderInfo{
		Name:          "MockCalendarProvider",
		Type:          "mock",
		Authenticated: true,
		EventsCount:   &count,
	}
}
