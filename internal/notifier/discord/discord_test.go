package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDiscordAPI struct {
	sent []*discordgo.MessageEmbed
	err  error
}

func (m *mockDiscordAPI) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, embed)
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

func TestSendResultNotification(t *testing.T) {
	api := &mockDiscordAPI{}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "chan", m)

	result := notifier.MatchResult{
		Match: &league.Match{ID: "m-1", Map: "Split", WinnerTeam: stats.TeamA},
		Participants: []league.Participant{
			{Position: 0, Name: "Sage", Tag: "EUW", Team: stats.TeamA, Kills: 12, Deaths: 8, Assists: 9, ACS: 190},
			{Position: 5, Name: "Reyna", Tag: "EUW", Team: stats.TeamB, Kills: 25, Deaths: 14, Assists: 1, ACS: 310},
		},
	}
	ref, err := n.SendResultNotification(context.Background(), result, false)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", ref)
	assert.Equal(t, 1, m.NotifSent(provider))

	require.Len(t, api.sent, 1)
	embed := api.sent[0]
	assert.Equal(t, "Team A won on Split", embed.Description)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Team A 🏆", embed.Fields[0].Name)
	assert.Equal(t, "Sage#EUW `12/8/9` ACS 190", embed.Fields[0].Value)
}

func TestSendEmbed_FailureAndDryRun(t *testing.T) {
	api := &mockDiscordAPI{err: errors.New("missing access")}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "chan", m)

	err := n.SendLeaderboard(context.Background(), nil, false)
	require.Error(t, err)
	assert.Equal(t, 1, m.NotifFailed(provider))

	require.NoError(t, n.SendLeaderboard(context.Background(), nil, true))
	assert.Equal(t, 0, m.NotifSent(provider))
}

func TestLeaderboardEmbed(t *testing.T) {
	assert.Equal(t, "No players registered yet.", LeaderboardEmbed(nil).Description)

	rows := make([]stats.LeaderboardRow, 30)
	for i := range rows {
		rows[i] = stats.LeaderboardRow{Rank: i + 1, Name: fmt.Sprintf("p%d", i), Tag: "1", Score: 100 - i}
	}
	embed := LeaderboardEmbed(rows)
	assert.Len(t, embed.Fields, maxFields)
	assert.Equal(t, "1. 🥇 p0#1: 100", embed.Fields[0].Name)
	assert.Equal(t, "4. p3#1: 97", embed.Fields[3].Name)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "and 5 more", embed.Footer.Text)
}
