package league

import (
	"context"
	"sync"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// Methods without a spy return zero values. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterPlayerFunc          func(ctx context.Context, player Player) (Player, error)
	GetPlayerFunc               func(ctx context.Context, name, tag string) (*Player, error)
	ListPlayersFunc             func(ctx context.Context) ([]Player, error)
	RemovePlayerFunc            func(ctx context.Context, name, tag string) error
	GetAggregateFunc            func(ctx context.Context, name, tag string) (stats.PlayerAggregate, error)
	ApplyDeltasFunc             func(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error
	ListAggregatesFunc          func(ctx context.Context) ([]stats.PlayerAggregate, error)
	ListEventAggregatesFunc     func(ctx context.Context, eventID string) ([]stats.PlayerAggregate, error)
	CreateEventFunc             func(ctx context.Context, event Event) (Event, error)
	GetEventFunc                func(ctx context.Context, id string) (*Event, error)
	ListEventsFunc              func(ctx context.Context) ([]Event, error)
	CreateMatchFunc             func(ctx context.Context, match Match) (Match, error)
	GetMatchFunc                func(ctx context.Context, id string) (*Match, error)
	ListMatchesFunc             func(ctx context.Context) ([]*Match, error)
	SubmitRoomCodeFunc          func(ctx context.Context, id, roomCode string) (*Match, error)
	GetMatchesForProcessingFunc func(ctx context.Context) ([]*Match, error)
	UpdateProcessingStatusFunc  func(ctx context.Context, matchID string, status ProcessingStatus) error
	SetMatchChannelsFunc        func(ctx context.Context, matchID, textChannelID, voiceChannelID string) error
	GetMatchParticipantsFunc    func(ctx context.Context, matchID string) ([]Participant, error)

	// Call records
	RegisterPlayerCalls         []Player
	RemovePlayerCalls           []stats.Identity
	ApplyDeltasCalls            []stats.Outcome
	UpdateProcessingStatusCalls []struct {
		MatchID string
		Status  ProcessingStatus
	}
	SetMatchChannelsCalls []struct {
		MatchID        string
		TextChannelID  string
		VoiceChannelID string
	}
}

var _ LeagueStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = nil
	m.RemovePlayerCalls = nil
	m.ApplyDeltasCalls = nil
	m.UpdateProcessingStatusCalls = nil
	m.SetMatchChannelsCalls = nil
}

func (m *MockStore) RegisterPlayer(ctx context.Context, player Player) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, player)
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(ctx, player)
	}
	return player, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, name, tag string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, name, tag)
	}
	return nil, stats.ErrPlayerNotFound
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	return []Player{}, nil
}

func (m *MockStore) RemovePlayer(ctx context.Context, name, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, stats.Identity{Name: name, Tag: tag})
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(ctx, name, tag)
	}
	return nil
}

func (m *MockStore) GetAggregate(ctx context.Context, name, tag string) (stats.PlayerAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAggregateFunc != nil {
		return m.GetAggregateFunc(ctx, name, tag)
	}
	return stats.PlayerAggregate{Name: name, Tag: tag}, nil
}

func (m *MockStore) ApplyDeltas(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyDeltasCalls = append(m.ApplyDeltasCalls, outcome)
	if m.ApplyDeltasFunc != nil {
		return m.ApplyDeltasFunc(ctx, outcome, deltas)
	}
	return nil
}

func (m *MockStore) ListAggregates(ctx context.Context) ([]stats.PlayerAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListAggregatesFunc != nil {
		return m.ListAggregatesFunc(ctx)
	}
	return []stats.PlayerAggregate{}, nil
}

func (m *MockStore) ListEventAggregates(ctx context.Context, eventID string) ([]stats.PlayerAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEventAggregatesFunc != nil {
		return m.ListEventAggregatesFunc(ctx, eventID)
	}
	return []stats.PlayerAggregate{}, nil
}

func (m *MockStore) CreateEvent(ctx context.Context, event Event) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, event)
	}
	return event, nil
}

func (m *MockStore) GetEvent(ctx context.Context, id string) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEventFunc != nil {
		return m.GetEventFunc(ctx, id)
	}
	return nil, ErrEventNotFound
}

func (m *MockStore) ListEvents(ctx context.Context) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx)
	}
	return []Event{}, nil
}

func (m *MockStore) CreateMatch(ctx context.Context, match Match) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(ctx, match)
	}
	return match, nil
}

func (m *MockStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, id)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) ListMatches(ctx context.Context) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	return []*Match{}, nil
}

func (m *MockStore) SubmitRoomCode(ctx context.Context, id, roomCode string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmitRoomCodeFunc != nil {
		return m.SubmitRoomCodeFunc(ctx, id, roomCode)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) GetMatchesForProcessing(ctx context.Context) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForProcessingFunc != nil {
		return m.GetMatchesForProcessingFunc(ctx)
	}
	return []*Match{}, nil
}

func (m *MockStore) UpdateProcessingStatus(ctx context.Context, matchID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		MatchID string
		Status  ProcessingStatus
	}{matchID, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(ctx, matchID, status)
	}
	return nil
}

func (m *MockStore) SetMatchChannels(ctx context.Context, matchID, textChannelID, voiceChannelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetMatchChannelsCalls = append(m.SetMatchChannelsCalls, struct {
		MatchID        string
		TextChannelID  string
		VoiceChannelID string
	}{matchID, textChannelID, voiceChannelID})
	if m.SetMatchChannelsFunc != nil {
		return m.SetMatchChannelsFunc(ctx, matchID, textChannelID, voiceChannelID)
	}
	return nil
}

func (m *MockStore) GetMatchParticipants(ctx context.Context, matchID string) ([]Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchParticipantsFunc != nil {
		return m.GetMatchParticipantsFunc(ctx, matchID)
	}
	return []Participant{}, nil
}
