package channels

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	created   []discordgo.GuildChannelCreateData
	deleted   []string
	messages  []string
	createErr map[discordgo.ChannelType]error
	deleteErr error
}

func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if err := f.createErr[data.Type]; err != nil {
		return nil, err
	}
	f.created = append(f.created, data)
	id := "text-1"
	if data.Type == discordgo.ChannelTypeGuildVoice {
		id = "voice-1"
	}
	return &discordgo.Channel{ID: id, GuildID: guildID, Name: data.Name, Type: data.Type}, nil
}

func (f *fakeSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.deleted = append(f.deleted, channelID)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.messages = append(f.messages, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "match-3f2a9c1b", ChannelName("3f2a9c1b-0000-4000-8000-000000000000"))
	assert.Equal(t, "match-abc", ChannelName("abc"))
}

func TestProvision(t *testing.T) {
	session := &fakeSession{}
	m := metrics.NewMock()
	p := NewDiscordProvisionerWithSession(session, "guild", "category", m)

	set, err := p.Provision(context.Background(), Request{MatchID: "3f2a9c1b-1111", Map: "Haven", RoomCode: "XYZ"}, false)
	require.NoError(t, err)

	assert.Equal(t, ChannelSet{TextChannelID: "text-1", VoiceChannelID: "voice-1"}, set)
	require.Len(t, session.created, 2)
	assert.Equal(t, "category", session.created[0].ParentID)
	assert.Contains(t, session.created[0].Topic, "Haven")
	assert.Equal(t, []string{"Room code: **XYZ**"}, session.messages)
	assert.Equal(t, 1, m.ChannelOperations(OpProvision, ResultSuccess))
}

func TestProvision_VoiceFailureRollsBackText(t *testing.T) {
	session := &fakeSession{createErr: map[discordgo.ChannelType]error{
		discordgo.ChannelTypeGuildVoice: errors.New("missing permissions"),
	}}
	m := metrics.NewMock()
	p := NewDiscordProvisionerWithSession(session, "guild", "", m)

	_, err := p.Provision(context.Background(), Request{MatchID: "m1"}, false)
	require.Error(t, err)
	assert.Equal(t, []string{"text-1"}, session.deleted)
	assert.Equal(t, 1, m.ChannelOperations(OpProvision, ResultFailure))
}

func TestProvision_DryRun(t *testing.T) {
	session := &fakeSession{}
	m := metrics.NewMock()
	p := NewDiscordProvisionerWithSession(session, "guild", "", m)

	set, err := p.Provision(context.Background(), Request{MatchID: "m1"}, true)
	require.NoError(t, err)
	assert.True(t, set.Empty())
	assert.Empty(t, session.created)
	assert.Equal(t, 1, m.ChannelOperations(OpProvision, ResultSkipped))
}

func TestTeardown_IgnoresMissingChannels(t *testing.T) {
	session := &fakeSession{deleteErr: &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
	}}
	m := metrics.NewMock()
	p := NewDiscordProvisionerWithSession(session, "guild", "", m)

	err := p.Teardown(context.Background(), ChannelSet{TextChannelID: "t", VoiceChannelID: "v"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "v"}, session.deleted)
	assert.Equal(t, 1, m.ChannelOperations(OpTeardown, ResultSuccess))
}

func TestTeardown_ReportsOtherErrors(t *testing.T) {
	session := &fakeSession{deleteErr: errors.New("rate limited")}
	m := metrics.NewMock()
	p := NewDiscordProvisionerWithSession(session, "guild", "", m)

	err := p.Teardown(context.Background(), ChannelSet{TextChannelID: "t"}, false)
	require.Error(t, err)
	assert.Equal(t, 1, m.ChannelOperations(OpTeardown, ResultFailure))
}
