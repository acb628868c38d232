package calendar

import (
	"fmt"
	"sync"

	"github.com/guilherme-santos/csvcalendar"
)

const (
	TypeMock   = "mock"
	TypeGoogle = "google"
)

// Mux keeps the providers available to an import, by type.
type Mux struct {
	mu        sync.Mutex
	providers map[string]csvcalendar.Provider
	order     []string
}

func NewMux() *Mux {
	return &Mux{
		providers: make(map[string]csvcalendar.Provider),
	}
}

func (m *Mux) Get(typ string) (csvcalendar.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	provider, ok := m.providers[typ]
	if !ok {
		return nil, fmt.Errorf("calendar %q is not implemented", typ)
	}
	return provider, nil
}

func (m *Mux) Register(typ string, provider csvcalendar.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[typ]; !ok {
		m.order = append(m.order, typ)
	}
	m.providers[typ] = provider
}

// Types lists the registered types in registration order.
func (m *Mux) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.order...)
}

func (m *Mux) Supports(typ string) bool {
	_, err := m.Get(typ)
	return err == nil
}
