package slack

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent(provider))
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, ts, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.Equal(t, "ts123", ts)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent(provider))
	assert.Equal(t, 0, metrics.NotifFailed(provider))
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent(provider))
	assert.Equal(t, 1, metrics.NotifFailed(provider))
}

func sampleResult() notifier.MatchResult {
	participants := make([]league.Participant, stats.MatchSize)
	for i := range participants {
		participants[i] = league.Participant{
			Position: i,
			Name:     fmt.Sprintf("player%d", i),
			Tag:      "EUW",
			Team:     stats.TeamForPosition(i),
			Won:      i >= stats.TeamSize,
			Kills:    20, Deaths: 10, Assists: 5, ACS: 240,
		}
	}
	return notifier.MatchResult{
		Match:        &league.Match{ID: "m-1", Map: "Lotus", WinnerTeam: stats.TeamB},
		Participants: participants,
	}
}

func TestSendResultNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	ref, err := notifier.SendResultNotification(context.Background(), sampleResult(), false)
	require.NoError(t, err)
	assert.Equal(t, "ts123", ref)
	assert.True(t, postMessageCalled)
}

func TestFormatResultNotification(t *testing.T) {
	msg := formatResultNotification(sampleResult())
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "Match finished!", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Map: Lotus\nWinner: Team B", details.Text.Text)

	teams, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, teams.Fields, 2)
	assert.Contains(t, teams.Fields[0].Text, "Team A\n• player0#EUW  20/10/5  ACS 240")
	assert.Contains(t, teams.Fields[1].Text, "Team B (won)")
}

func TestLeaderboardMessage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		msg := LeaderboardMessage(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "No players registered yet.", section.Text.Text)
	})

	t.Run("ranked rows", func(t *testing.T) {
		rows := []stats.LeaderboardRow{
			{Rank: 1, Name: "Sova", Tag: "EUW", Score: 459, AvgACS: 220, AvgKDA: 1.5, HSPercent: 26.7, Winrate: 60, MatchesPlayed: 5},
			{Rank: 2, Name: "Jett", Tag: "NA1", Score: 300},
		}
		msg := LeaderboardMessage(rows)
		require.Len(t, msg.Blocks.BlockSet, 3)
		first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. 🥇 Sova#EUW: 459\n> ACS 220.0 | KDA 1.50 | HS 26.7% | Win 60.0% (5 matches)", first.Text.Text)
	})

	t.Run("long boards are truncated", func(t *testing.T) {
		rows := make([]stats.LeaderboardRow, 30)
		for i := range rows {
			rows[i] = stats.LeaderboardRow{Rank: i + 1, Name: fmt.Sprintf("p%d", i), Tag: "1"}
		}
		msg := LeaderboardMessage(rows)
		// header + 25 rows + context
		assert.Len(t, msg.Blocks.BlockSet, 27)
	})
}
