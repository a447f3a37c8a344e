package processor

import (
	"context"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetMatch(ctx context.Context, id string) (*league.Match, error)
	GetMatchesForProcessing(ctx context.Context) ([]*league.Match, error)
	UpdateProcessingStatus(ctx context.Context, matchID string, status league.ProcessingStatus) error
	SetMatchChannels(ctx context.Context, matchID, textChannelID, voiceChannelID string) error
	GetMatchParticipants(ctx context.Context, matchID string) ([]league.Participant, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
