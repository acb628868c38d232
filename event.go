package csvcalendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column names of the input file, also used as field names on errors.
const (
	FieldTime          = "horario"
	FieldDuration      = "duracao"
	FieldName          = "nomeevento"
	FieldNotification  = "notificacao"
	FieldStartDateTime = "startDateTime"
	FieldEndDateTime   = "endDateTime"
)

// Minutes is an integer amount of minutes read from text. Text that is not
// an integer is kept as NaN, which never passes a numeric check.
type Minutes struct {
	n  int
	ok bool
}

var NaN = Minutes{}

func NewMinutes(n int) Minutes {
	return Minutes{n: n, ok: true}
}

func ParseMinutes(s string) Minutes {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return NaN
	}
	return NewMinutes(n)
}

func (m Minutes) Int() (int, bool) {
	return m.n, m.ok
}

func (m Minutes) IsNaN() bool {
	return !m.ok
}

// Or returns def when m is NaN.
func (m Minutes) Or(def int) int {
	if !m.ok {
		return def
	}
	return m.n
}

func (m Minutes) String() string {
	if !m.ok {
		return "NaN"
	}
	return strconv.Itoa(m.n)
}

// MarshalJSON encodes NaN as null.
func (m Minutes) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(m.n)), nil
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = NaN
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("minutes: %w", err)
	}
	*m = NewMinutes(n)
	return nil
}

// Event is one row of the input file.
type Event struct {
	Time         string  `json:"horario"`
	Duration     Minutes `json:"duracao"`
	Name         string  `json:"nomeevento"`
	Notification Minutes `json:"notificacao"`
}

func NewEvent(horario, duracao, nomeevento, notificacao string) *Event {
	return &Event{
		Time:         horario,
		Duration:     ParseMinutes(duracao),
		Name:         nomeevento,
		Notification: ParseMinutes(notificacao),
	}
}

// IsValid checks presence and ranges only, the format of Time is left
// to ValidateEvent.
func (e *Event) IsValid() bool {
	if e == nil || e.Time == "" || e.Name == "" {
		return false
	}
	d, ok := e.Duration.Int()
	if !ok || d <= 0 {
		return false
	}
	n, ok := e.Notification.Int()
	return ok && n >= 0
}

func (e Event) String() string {
	return fmt.Sprintf("Event: %s - %s (%smin)", e.Name, e.Time, e.Duration)
}
