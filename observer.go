package csvcalendar

// Observer receives what happens during an import. Implementations must not
// block, they're called inline.
type Observer interface {
	RowsRead(path string, n int)
	RowValidated(e *Event, err error)
	RowProcessed(e *Event, err error)
	EventCreated(e *Event, remote *RemoteEvent)
	EventFailed(e *Event, err error)
	TokenSaved(path string, err error)
	TokenRefreshed(err error)
	AuthorizationURL(url string)
}

type NopObserver struct{}

func (NopObserver) RowsRead(string, int) {}
func (NopObserver) RowValidated(*Event, error) {}
func (NopObserver) RowProcessed(*Event, error) {}
func (NopObserver) EventCreated(*Event, *RemoteEvent) {}
func (NopObserver) EventFailed(*Event, error) {}
func (NopObserver) TokenSaved(string, error) {}
func (NopObserver) TokenRefreshed(error) {}
func (NopObserver) AuthorizationURL(string) {}

// Observers fans every call out to each of its elements, in order.
type Observers []Observer

func (o Observers) RowsRead(path string, n int) {
	for _, obs := range o {
		obs.RowsRead(path, n)
	}
}

func (o Observers) RowValidated(e *Event, err error) {
	for _, obs := range o {
		obs.RowValidated(e, err)
	}
}

func (o Observers) RowProcessed(e *Event, err error) {
	for _, obs := range o {
		obs.RowProcessed(e, err)
	}
}

func (o Observers) EventCreated(e *Event, remote *RemoteEvent) {
	for _, obs := range o {
		obs.EventCreated(e, remote)
	}
}

func (o Observers) EventFailed(e *Event, err error) {
	for _, obs := range o {
		obs.EventFailed(e, err)
	}
}

func (o Observers) TokenSaved(path string, err error) {
	for _, obs := range o {
		obs.TokenSaved(path, err)
	}
}

func (o Observers) TokenRefreshed(err error) {
	for _, obs := range o {
		obs.TokenRefreshed(err)
	}
}

func (o Observers) AuthorizationURL(url string) {
	for _, obs := range o {
		obs.AuthorizationURL(url)
	}
}

func ObserverOrNop(o Observer) Observer {
	if o == nil {
		return NopObserver{}
	}
	return o
}
