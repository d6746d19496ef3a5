package turbine

import (
	"slices"

	"github.com/dm-vev/turbine/server/block/cube"
	"github.com/google/uuid"
)

// RenderQueue holds the positions of rotor components whose model must be
// recomputed. A position is queued at most once until the queue is drained.
type RenderQueue struct {
	pending map[cube.Pos]struct{}
	metrics *Metrics
}

func newRenderQueue(m *Metrics) *RenderQueue {
	return &RenderQueue{pending: make(map[cube.Pos]struct{}), metrics: m}
}

// Request queues a render update of the rotor component at pos, owned by the
// controller with the ID passed.
func (q *RenderQueue) Request(pos cube.Pos, owner uuid.UUID) {
	if _, ok := q.pending[pos]; ok {
		return
	}
	q.pending[pos] = struct{}{}
	q.metrics.IncRenderUpdates(owner)
}

// Pending reports if a render update of pos is queued.
func (q *RenderQueue) Pending(pos cube.Pos) bool {
	_, ok := q.pending[pos]
	return ok
}

// Len returns the number of queued positions.
func (q *RenderQueue) Len() int {
	return len(q.pending)
}

// Drain empties the queue and returns the queued positions sorted by x, then
// y, then z.
func (q *RenderQueue) Drain() []cube.Pos {
	positions := make([]cube.Pos, 0, len(q.pending))
	for pos := range q.pending {
		positions = append(positions, pos)
	}
	clear(q.pending)
	slices.SortFunc(positions, comparePos)
	return positions
}
