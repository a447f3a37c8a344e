package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/slack-go/slack"
)

const provider = "slack"

// maxLeaderboardRows keeps a leaderboard message under Slack's 50 block limit.
const maxLeaderboardRows = 25

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed(provider)
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent(provider)
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(ctx context.Context, result notifier.MatchResult, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(ctx, formatResultNotification(result), dryRun)
	return ts, err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, rows []stats.LeaderboardRow, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, LeaderboardMessage(rows), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(rows []stats.LeaderboardRow) (any, error) {
	return LeaderboardMessage(rows), nil
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func formatResultNotification(result notifier.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Match finished!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	m := result.Match
	details := fmt.Sprintf("Winner: Team %s", m.WinnerTeam)
	if m.Map != "" {
		details = fmt.Sprintf("Map: %s\n%s", m.Map, details)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	var fields []*slack.TextBlockObject
	for _, team := range []stats.Team{stats.TeamA, stats.TeamB} {
		players := result.Team(team)
		if len(players) == 0 {
			continue
		}
		lines := []string{teamTitle(team, m.WinnerTeam)}
		for _, p := range players {
			lines = append(lines, fmt.Sprintf("• %s#%s  %d/%d/%d  ACS %d", p.Name, p.Tag, p.Kills, p.Deaths, p.Assists, p.ACS))
		}
		fields = append(fields, slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Match "+m.ID, false, false)))
	return slack.NewBlockMessage(blocks...)
}

func teamTitle(team, winner stats.Team) string {
	if team == winner {
		return fmt.Sprintf("Team %s (won)", team)
	}
	return fmt.Sprintf("Team %s", team)
}

// LeaderboardMessage creates a Slack message to display the ranked leaderboard.
func LeaderboardMessage(rows []stats.LeaderboardRow) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Leaderboard", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	shown := rows
	if len(shown) > maxLeaderboardRows {
		shown = shown[:maxLeaderboardRows]
	}
	for _, row := range shown {
		var medal string
		switch row.Rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}

		text := fmt.Sprintf("%d. %s%s#%s: %d\n> ACS %.1f | KDA %.2f | HS %.1f%% | Win %.1f%% (%d matches)",
			row.Rank, medal, row.Name, row.Tag, row.Score,
			row.AvgACS, row.AvgKDA, row.HSPercent, row.Winrate, row.MatchesPlayed)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}

	if len(rows) > len(shown) {
		more := fmt.Sprintf("and %d more", len(rows)-len(shown))
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", more, false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}
