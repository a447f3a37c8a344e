package notifier

import (
	"context"
	"errors"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific provider (Slack, Discord).
type Notifier interface {
	// For completed matches. Returns a provider reference for the posted message.
	SendResultNotification(ctx context.Context, result MatchResult, dryRun bool) (string, error)
	// For announcements and slash commands
	SendLeaderboard(ctx context.Context, rows []stats.LeaderboardRow, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(rows []stats.LeaderboardRow) (any, error)
}

// MatchResult is a completed match together with its stored lines.
type MatchResult struct {
	Match        *league.Match
	Participants []league.Participant
}

// Team returns the participants of one side in position order.
func (r MatchResult) Team(team stats.Team) []league.Participant {
	var out []league.Participant
	for _, p := range r.Participants {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// Multi sends every notification through all notifiers. Formatting uses the first one.
type Multi []Notifier

var _ Notifier = Multi(nil)

func (m Multi) SendResultNotification(ctx context.Context, result MatchResult, dryRun bool) (string, error) {
	var ref string
	var errs []error
	for _, n := range m {
		r, err := n.SendResultNotification(ctx, result, dryRun)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ref == "" {
			ref = r
		}
	}
	return ref, errors.Join(errs...)
}

func (m Multi) SendLeaderboard(ctx context.Context, rows []stats.LeaderboardRow, dryRun bool) error {
	var errs []error
	for _, n := range m {
		if err := n.SendLeaderboard(ctx, rows, dryRun); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) FormatLeaderboardResponse(rows []stats.LeaderboardRow) (any, error) {
	if len(m) == 0 {
		return nil, errors.New("no notifier configured")
	}
	return m[0].FormatLeaderboardResponse(rows)
}
