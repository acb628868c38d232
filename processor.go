package csvcalendar

import "time"

type ProcessResult struct {
	Success       bool
	Data          *CalendarEventData
	CalendarEvent *CalendarEvent
	OriginalData  Event
	Error         string
}

// Result converts a failed processing into the final result of its row.
func (r ProcessResult) Result() Result {
	return Result{
		Success:      r.Success,
		Error:        r.Error,
		OriginalData: r.OriginalData,
	}
}

type BatchProcessing struct {
	ProcessedEvents  []ProcessResult
	SuccessfulEvents []ProcessResult
	FailedEvents     []ProcessResult
	TotalProcessed   int
	TotalSuccessful  int
	TotalFailed      int
}

// Processor turns events into calendar events. It validates again on its
// own, so it doesn't depend on a Validator having run first.
type Processor struct {
	loc      *time.Location
	observer Observer
}

func NewProcessor(loc *time.Location, observer Observer) *Processor {
	return &Processor{
		loc:      loc,
		observer: ObserverOrNop(observer),
	}
}

func (p *Processor) ProcessEvent(e *Event) ProcessResult {
	cal, err := p.calendarEvent(e)
	p.observer.RowProcessed(e, err)

	var original Event
	if e != nil {
		original = *e
	}
	if err != nil {
		return ProcessResult{
			Success:      false,
			OriginalData: original,
			Error:        err.Error(),
		}
	}
	return ProcessResult{
		Success:       true,
		Data:          cal.Data(),
		CalendarEvent: cal,
		OriginalData:  original,
	}
}

func (p *Processor) calendarEvent(e *Event) (*CalendarEvent, error) {
	if err := ValidateEvent(e, p.loc); err != nil {
		return nil, err
	}
	start, err := ParseDateTime(e.Time, p.loc)
	if err != nil {
		return nil, err
	}
	duration, _ := e.Duration.Int()
	end, err := CalculateEndTime(start, duration)
	if err != nil {
		return nil, err
	}
	return NewCalendarEvent(e, start, end)
}

func (p *Processor) ProcessEvents(events []*Event) BatchProcessing {
	res := BatchProcessing{
		ProcessedEvents:  make([]ProcessResult, 0, len(events)),
		SuccessfulEvents: []ProcessResult{},
		FailedEvents:     []ProcessResult{},
	}
	for _, e := range events {
		r := p.ProcessEvent(e)
		res.ProcessedEvents = append(res.ProcessedEvents, r)
		if r.Success {
			res.SuccessfulEvents = append(res.SuccessfulEvents, r)
		} else {
			res.FailedEvents = append(res.FailedEvents, r)
		}
	}
	res.TotalProcessed = len(res.ProcessedEvents)
	res.TotalSuccessful = len(res.SuccessfulEvents)
	res.TotalFailed = len(res.FailedEvents)
	return res
}
