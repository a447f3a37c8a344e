package league

import (
	"context"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	// Players
	RegisterPlayer(ctx context.Context, player Player) (Player, error)
	GetPlayer(ctx context.Context, name, tag string) (*Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	RemovePlayer(ctx context.Context, name, tag string) error

	// Aggregates
	GetAggregate(ctx context.Context, name, tag string) (stats.PlayerAggregate, error)
	ApplyDeltas(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error
	ListAggregates(ctx context.Context) ([]stats.PlayerAggregate, error)
	ListEventAggregates(ctx context.Context, eventID string) ([]stats.PlayerAggregate, error)

	// Events
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)

	// Matches
	CreateMatch(ctx context.Context, match Match) (Match, error)
	GetMatch(ctx context.Context, id string) (*Match, error)
	ListMatches(ctx context.Context) ([]*Match, error)
	SubmitRoomCode(ctx context.Context, id, roomCode string) (*Match, error)
	GetMatchesForProcessing(ctx context.Context) ([]*Match, error)
	UpdateProcessingStatus(ctx context.Context, matchID string, status ProcessingStatus) error
	SetMatchChannels(ctx context.Context, matchID, textChannelID, voiceChannelID string) error
	GetMatchParticipants(ctx context.Context, matchID string) ([]Participant, error)
}

var _ stats.Store = (LeagueStore)(nil)
