package channels

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Provisioner interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	ProvisionFunc func(ctx context.Context, req Request, dryRun bool) (ChannelSet, error)
	TeardownFunc  func(ctx context.Context, set ChannelSet, dryRun bool) error

	ProvisionCalls []Request
	TeardownCalls  []ChannelSet
}

var _ Provisioner = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProvisionCalls = nil
	m.TeardownCalls = nil
}

func (m *Mock) Provision(ctx context.Context, req Request, dryRun bool) (ChannelSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProvisionCalls = append(m.ProvisionCalls, req)
	if m.ProvisionFunc != nil {
		return m.ProvisionFunc(ctx, req, dryRun)
	}
	return ChannelSet{TextChannelID: "text-" + req.MatchID, VoiceChannelID: "voice-" + req.MatchID}, nil
}

func (m *Mock) Teardown(ctx context.Context, set ChannelSet, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeardownCalls = append(m.TeardownCalls, set)
	if m.TeardownFunc != nil {
		return m.TeardownFunc(ctx, set, dryRun)
	}
	return nil
}
