package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                      sync.Mutex
	matchesApplied          int
	matchRejections         map[string]int
	leaderboardComputations int
	matchesProcessed        int
	processingDurations     []float64
	notifSent               map[string]int
	notifFailed             map[string]int
	channelOperations       map[string]int
	startupTime             float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchRejections:     make(map[string]int),
		processingDurations: make([]float64, 0),
		notifSent:           make(map[string]int),
		notifFailed:         make(map[string]int),
		channelOperations:   make(map[string]int),
	}
}

func (m *Mock) IncMatchesApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesApplied++
}

func (m *Mock) IncMatchRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchRejections[reason]++
}

func (m *Mock) IncLeaderboardComputations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardComputations++
}

func (m *Mock) IncMatchesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesProcessed++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncNotifSent(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent[provider]++
}

func (m *Mock) IncNotifFailed(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed[provider]++
}

func (m *Mock) IncChannelOperation(op, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelOperations[op+"/"+result]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesApplied returns the number of times IncMatchesApplied was called.
func (m *Mock) MatchesApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesApplied
}

// MatchRejections returns how often IncMatchRejected was called with reason.
func (m *Mock) MatchRejections(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchRejections[reason]
}

func (m *Mock) LeaderboardComputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardComputations
}

// MatchesProcessed returns the number of times IncMatchesProcessed was called.
func (m *Mock) MatchesProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesProcessed
}

// NotifSent returns the number of successful notifications for provider.
func (m *Mock) NotifSent(provider string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent[provider]
}

// NotifFailed returns the number of failed notifications for provider.
func (m *Mock) NotifFailed(provider string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed[provider]
}

// ChannelOperations returns the count recorded for an op/result pair.
func (m *Mock) ChannelOperations(op, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channelOperations[op+"/"+result]
}
