package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

const provider = "discord"

// Embed colors.
const (
	colorRed  = 0xFF4655
	colorGold = 0xF1C40F
)

// Discord allows at most 25 fields per embed.
const maxFields = 25

// discordClient is the subset of *discordgo.Session used to post messages.
type discordClient interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts match results and leaderboards as embeds to one Discord channel.
type Notifier struct {
	api       discordClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a Notifier with a bot token.
func NewNotifier(token, channelID string, metrics metrics.Metrics) (*Notifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewNotifierWithAPI(session, channelID, metrics), nil
}

// NewNotifierWithAPI creates a Notifier with a specific client. Useful for tests.
func NewNotifierWithAPI(api discordClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (n *Notifier) sendEmbed(ctx context.Context, embed *discordgo.MessageEmbed, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(embed, "", "  ")
		log.Info("[Dry Run] Would send Discord embed", "channel", n.channelID, "embed", string(jsonMsg))
		return "dry-run-message", nil
	}

	msg, err := n.api.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		n.metrics.IncNotifFailed(provider)
		log.Error("Failed to send Discord message", "error", err, "channel", n.channelID)
		return "", fmt.Errorf("failed to post embed: %w", err)
	}

	n.metrics.IncNotifSent(provider)
	log.Info("Successfully sent Discord message", "channel", n.channelID, "message_id", msg.ID)
	return msg.ID, nil
}

func (n *Notifier) SendResultNotification(ctx context.Context, result notifier.MatchResult, dryRun bool) (string, error) {
	return n.sendEmbed(ctx, ResultEmbed(result), dryRun)
}

func (n *Notifier) SendLeaderboard(ctx context.Context, rows []stats.LeaderboardRow, dryRun bool) error {
	_, err := n.sendEmbed(ctx, LeaderboardEmbed(rows), dryRun)
	return err
}

func (n *Notifier) FormatLeaderboardResponse(rows []stats.LeaderboardRow) (any, error) {
	return LeaderboardEmbed(rows), nil
}

// ResultEmbed renders a finished match with one field per team.
func ResultEmbed(result notifier.MatchResult) *discordgo.MessageEmbed {
	m := result.Match
	desc := fmt.Sprintf("Team %s won", m.WinnerTeam)
	if m.Map != "" {
		desc += " on " + m.Map
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Match finished",
		Description: desc,
		Color:       colorRed,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Match " + m.ID},
	}
	for _, team := range []stats.Team{stats.TeamA, stats.TeamB} {
		players := result.Team(team)
		if len(players) == 0 {
			continue
		}
		lines := make([]string, len(players))
		for i, p := range players {
			lines[i] = fmt.Sprintf("%s#%s `%d/%d/%d` ACS %d", p.Name, p.Tag, p.Kills, p.Deaths, p.Assists, p.ACS)
		}
		name := "Team " + string(team)
		if team == m.WinnerTeam {
			name += " 🏆"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: strings.Join(lines, "\n"), Inline: true})
	}
	return embed
}

// LeaderboardEmbed renders the top rows of the leaderboard.
func LeaderboardEmbed(rows []stats.LeaderboardRow) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Leaderboard",
		Color: colorGold,
	}
	if len(rows) == 0 {
		embed.Description = "No players registered yet."
		return embed
	}

	for i, row := range rows {
		if i == maxFields {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("and %d more", len(rows)-maxFields)}
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%d. %s%s#%s: %d", row.Rank, medal(row.Rank), row.Name, row.Tag, row.Score),
			Value: fmt.Sprintf("ACS %.1f | KDA %.2f | HS %.1f%% | Win %.1f%% (%d)",
				row.AvgACS, row.AvgKDA, row.HSPercent, row.Winrate, row.MatchesPlayed),
		})
	}
	return embed
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇 "
	case 2:
		return "🥈 "
	case 3:
		return "🥉 "
	}
	return ""
}
