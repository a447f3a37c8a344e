package notifier

import (
	"context"
	"sync"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendResultNotificationFunc    func(ctx context.Context, result MatchResult, dryRun bool) (string, error)
	SendLeaderboardFunc           func(ctx context.Context, rows []stats.LeaderboardRow, dryRun bool) error
	FormatLeaderboardResponseFunc func(rows []stats.LeaderboardRow) (any, error)

	// Call records
	SendResultNotificationCalls []MatchResult
	SendLeaderboardCalls        [][]stats.LeaderboardRow
	LastLeaderboardResponse     any
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
}

func (m *Mock) SendResultNotification(ctx context.Context, result MatchResult, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, result)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(ctx, result, dryRun)
	}
	return "mock-ref", nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, rows []stats.LeaderboardRow, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, rows)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(ctx, rows, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(rows []stats.LeaderboardRow) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(rows)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}
