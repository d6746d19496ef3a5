package turbine

import (
	"sync"

	"github.com/dm-vev/turbine/server/turbine/rotor"
	"github.com/google/uuid"
)

// Metrics tracks per-turbine counters for observability. A nil *Metrics
// discards all counters.
type Metrics struct {
	mu sync.Mutex

	renders  map[uuid.UUID]uint64
	resolves map[rotor.Kind]uint64
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{
		renders:  make(map[uuid.UUID]uint64),
		resolves: make(map[rotor.Kind]uint64),
	}
}

// IncRenderUpdates increments the render update counter of a turbine.
// Components without a turbine are counted under uuid.Nil.
func (m *Metrics) IncRenderUpdates(owner uuid.UUID) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.renders[owner]++
	m.mu.Unlock()
}

// IncResolves increments the state computation counter of a component kind.
func (m *Metrics) IncResolves(kind rotor.Kind) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.resolves[kind]++
	m.mu.Unlock()
}

// Snapshot returns copies of the current counters.
func (m *Metrics) Snapshot() (renders map[uuid.UUID]uint64, resolves map[rotor.Kind]uint64) {
	renders, resolves = make(map[uuid.UUID]uint64), make(map[rotor.Kind]uint64)
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.renders {
		renders[k] = v
	}
	for k, v := range m.resolves {
		resolves[k] = v
	}
	return
}
