package csvcalendar

import "time"

type ValidationResult struct {
	IsValid bool
	Event   *Event
	Errors  []string
}

type InvalidEvent struct {
	Event  *Event
	Errors []string
}

type BatchValidation struct {
	ValidEvents   []*Event
	InvalidEvents []InvalidEvent
	TotalValid    int
	TotalInvalid  int
}

// Validator splits events into valid and invalid ones using ValidateEvent.
type Validator struct {
	loc      *time.Location
	observer Observer
}

func NewValidator(loc *time.Location, observer Observer) *Validator {
	return &Validator{
		loc:      loc,
		observer: ObserverOrNop(observer),
	}
}

// ValidateEvent reports at most one error, the first rule e breaks.
func (v *Validator) ValidateEvent(e *Event) ValidationResult {
	err := ValidateEvent(e, v.loc)
	v.observer.RowValidated(e, err)
	if err != nil {
		return ValidationResult{
			IsValid: false,
			Event:   e,
			Errors:  []string{err.Error()},
		}
	}
	return ValidationResult{
		IsValid: true,
		Event:   e,
		Errors:  []string{},
	}
}

func (v *Validator) ValidateEvents(events []*Event) BatchValidation {
	res := BatchValidation{
		ValidEvents:   []*Event{},
		InvalidEvents: []InvalidEvent{},
	}
	for _, e := range events {
		r := v.ValidateEvent(e)
		if r.IsValid {
			res.ValidEvents = append(res.ValidEvents, r.Event)
			continue
		}
		res.InvalidEvents = append(res.InvalidEvents, InvalidEvent{
			Event:  r.Event,
			Errors: r.Errors,
		})
	}
	res.TotalValid = len(res.ValidEvents)
	res.TotalInvalid = len(res.InvalidEvents)
	return res
}
