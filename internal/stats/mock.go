package stats

import (
	"context"
	"sync"
)

// MockStore is an in-memory Store for testing. Unless a spy is set it behaves like
// a real store: unknown players are rejected and match IDs are deduplicated.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	aggregates map[string]PlayerAggregate
	applied    map[string]bool

	// Spies for method calls
	GetAggregateFunc func(ctx context.Context, name, tag string) (PlayerAggregate, error)
	ApplyDeltasFunc  func(ctx context.Context, outcome Outcome, deltas []Delta) error

	// Call records
	GetAggregateCalls []Identity
	ApplyDeltasCalls  []struct {
		Outcome Outcome
		Deltas  []Delta
	}
}

var _ Store = (*MockStore)(nil)

// NewMock creates a new mock store holding a zero aggregate for each identity.
func NewMock(players ...Identity) *MockStore {
	m := &MockStore{
		aggregates: make(map[string]PlayerAggregate),
		applied:    make(map[string]bool),
	}
	for _, p := range players {
		m.aggregates[p.key()] = PlayerAggregate{Name: p.Name, Tag: p.Tag}
	}
	return m
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAggregateCalls = nil
	m.ApplyDeltasCalls = nil
}

// Aggregate returns the stored aggregate and whether it exists.
func (m *MockStore) Aggregate(id Identity) (PlayerAggregate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg, ok := m.aggregates[id.key()]
	return agg, ok
}

// Aggregates returns a copy of every stored aggregate.
func (m *MockStore) Aggregates() []PlayerAggregate {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PlayerAggregate, 0, len(m.aggregates))
	for _, agg := range m.aggregates {
		out = append(out, agg)
	}
	return out
}

func (m *MockStore) GetAggregate(ctx context.Context, name, tag string) (PlayerAggregate, error) {
	id := Identity{Name: name, Tag: tag}
	m.mu.Lock()
	m.GetAggregateCalls = append(m.GetAggregateCalls, id)
	spy := m.GetAggregateFunc
	m.mu.Unlock()
	if spy != nil {
		return spy(ctx, name, tag)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	agg, ok := m.aggregates[id.key()]
	if !ok {
		return PlayerAggregate{}, ErrPlayerNotFound
	}
	return agg, nil
}

func (m *MockStore) ApplyDeltas(ctx context.Context, outcome Outcome, deltas []Delta) error {
	m.mu.Lock()
	m.ApplyDeltasCalls = append(m.ApplyDeltasCalls, struct {
		Outcome Outcome
		Deltas  []Delta
	}{outcome, deltas})
	spy := m.ApplyDeltasFunc
	m.mu.Unlock()
	// Spies run unlocked so they may read the mock's state.
	if spy != nil {
		return spy(ctx, outcome, deltas)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.applied[outcome.MatchID] {
		return &DuplicateMatchError{MatchID: outcome.MatchID}
	}
	var missing []Identity
	for _, d := range deltas {
		if _, ok := m.aggregates[d.Identity().key()]; !ok {
			missing = append(missing, d.Identity())
		}
	}
	if len(missing) > 0 {
		return &NotFoundError{Players: missing}
	}

	for _, d := range deltas {
		k := d.Identity().key()
		m.aggregates[k] = m.aggregates[k].Add(d)
	}
	m.applied[outcome.MatchID] = true
	return nil
}
