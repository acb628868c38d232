package csvcalendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoEvent              = errors.New("calendar event requires an event")
	ErrInvalidCalendarEvent = errors.New("invalid calendar event")
)

// CalendarEventData is the flat form of a processed event that providers
// receive. Instants are ISO 8601 in UTC.
type CalendarEventData struct {
	Name          string  `json:"nomeevento"`
	StartDateTime string  `json:"startDateTime"`
	EndDateTime   string  `json:"endDateTime"`
	Notification  Minutes `json:"notificacao"`
}

type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type Reminder struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type Reminders struct {
	UseDefault bool       `json:"useDefault"`
	Overrides  []Reminder `json:"overrides"`
}

// Payload is what gets submitted to the calendar backend.
type Payload struct {
	Summary   string        `json:"summary"`
	Start     EventDateTime `json:"start"`
	End       EventDateTime `json:"end"`
	Reminders Reminders     `json:"reminders"`
}

// NewPayload builds the provider payload with a single popup reminder.
// A NaN notification becomes a reminder at the start of the event.
func NewPayload(d *CalendarEventData, timezone string) *Payload {
	return &Payload{
		Summary: d.Name,
		Start: EventDateTime{
			DateTime: d.StartDateTime,
			TimeZone: timezone,
		},
		End: EventDateTime{
			DateTime: d.EndDateTime,
			TimeZone: timezone,
		},
		Reminders: Reminders{
			UseDefault: false,
			Overrides: []Reminder{{
				Method:  "popup",
				Minutes: d.Notification.Or(0),
			}},
		},
	}
}

// CalendarEvent is a validated event with its computed start and end.
type CalendarEvent struct {
	Event         *Event
	StartDateTime time.Time
	EndDateTime   time.Time
}

func NewCalendarEvent(e *Event, start, end time.Time) (*CalendarEvent, error) {
	if e == nil {
		return nil, ErrNoEvent
	}
	return &CalendarEvent{
		Event:         e,
		StartDateTime: start,
		EndDateTime:   end,
	}, nil
}

// IsValid requires a valid event and an end strictly after the start.
func (c *CalendarEvent) IsValid() bool {
	return c != nil &&
		c.Event.IsValid() &&
		IsValidDate(c.StartDateTime) &&
		IsValidDate(c.EndDateTime) &&
		c.EndDateTime.After(c.StartDateTime)
}

func (c *CalendarEvent) Payload(timezone string) (*Payload, error) {
	if !c.IsValid() {
		return nil, ErrInvalidCalendarEvent
	}
	return NewPayload(c.Data(), timezone), nil
}

func (c *CalendarEvent) Data() *CalendarEventData {
	return &CalendarEventData{
		Name:          c.Event.Name,
		StartDateTime: FormatISO(c.StartDateTime),
		EndDateTime:   FormatISO(c.EndDateTime),
		Notification:  c.Event.Notification,
	}
}

func (c *CalendarEvent) String() string {
	return fmt.Sprintf("CalendarEvent: %s - %s until %s",
		c.Event.Name, FormatISO(c.StartDateTime), FormatISO(c.EndDateTime))
}

// RemoteEvent is the event as returned by a provider after creation.
type RemoteEvent struct {
	ID        string        `json:"id"`
	Summary   string        `json:"summary"`
	Start     EventDateTime `json:"start"`
	End       EventDateTime `json:"end"`
	Reminders Reminders     `json:"reminders"`
	Status    string        `json:"status,omitempty"`
	HTMLLink  string        `json:"htmlLink,omitempty"`
	Created   string        `json:"created,omitempty"`
	Updated   string        `json:"updated,omitempty"`
}
