package channels

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
)

// discordSession is the subset of *discordgo.Session the provisioner needs.
type discordSession interface {
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordProvisioner creates a text and a voice channel per match under one category.
type DiscordProvisioner struct {
	session    discordSession
	guildID    string
	categoryID string
	metrics    metrics.Metrics
}

var _ Provisioner = (*DiscordProvisioner)(nil)

// NewDiscordProvisioner creates a provisioner authenticated with a bot token.
func NewDiscordProvisioner(token, guildID, categoryID string, m metrics.Metrics) (*DiscordProvisioner, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewDiscordProvisionerWithSession(session, guildID, categoryID, m), nil
}

// NewDiscordProvisionerWithSession is used by tests to inject a fake session.
func NewDiscordProvisionerWithSession(session discordSession, guildID, categoryID string, m metrics.Metrics) *DiscordProvisioner {
	return &DiscordProvisioner{
		session:    session,
		guildID:    guildID,
		categoryID: categoryID,
		metrics:    m,
	}
}

// Provision creates both channels. If the voice channel fails the text channel is
// deleted again so a retry starts clean.
func (p *DiscordProvisioner) Provision(ctx context.Context, req Request, dryRun bool) (ChannelSet, error) {
	name := ChannelName(req.MatchID)
	if dryRun {
		log.Info("[Dry Run] Would create match channels", "match_id", req.MatchID, "name", name)
		p.metrics.IncChannelOperation(OpProvision, ResultSkipped)
		return ChannelSet{}, nil
	}

	text, err := p.session.GuildChannelCreateComplex(p.guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    topic(req),
		ParentID: p.categoryID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		p.metrics.IncChannelOperation(OpProvision, ResultFailure)
		return ChannelSet{}, fmt.Errorf("failed to create text channel: %w", err)
	}

	voice, err := p.session.GuildChannelCreateComplex(p.guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: p.categoryID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		if _, delErr := p.session.ChannelDelete(text.ID, discordgo.WithContext(ctx)); delErr != nil {
			log.Error("Failed to roll back text channel", "channel_id", text.ID, "error", delErr)
		}
		p.metrics.IncChannelOperation(OpProvision, ResultFailure)
		return ChannelSet{}, fmt.Errorf("failed to create voice channel: %w", err)
	}

	if req.RoomCode != "" {
		msg := fmt.Sprintf("Room code: **%s**", req.RoomCode)
		if _, err := p.session.ChannelMessageSend(text.ID, msg, discordgo.WithContext(ctx)); err != nil {
			log.Warn("Failed to post room code", "match_id", req.MatchID, "error", err)
		}
	}

	p.metrics.IncChannelOperation(OpProvision, ResultSuccess)
	log.Info("Created match channels", "match_id", req.MatchID, "text", text.ID, "voice", voice.ID)
	return ChannelSet{TextChannelID: text.ID, VoiceChannelID: voice.ID}, nil
}

// Teardown deletes the channels. A channel that is already gone counts as deleted.
func (p *DiscordProvisioner) Teardown(ctx context.Context, set ChannelSet, dryRun bool) error {
	if dryRun {
		log.Info("[Dry Run] Would delete match channels", "text", set.TextChannelID, "voice", set.VoiceChannelID)
		p.metrics.IncChannelOperation(OpTeardown, ResultSkipped)
		return nil
	}

	var errs []error
	for _, id := range []string{set.TextChannelID, set.VoiceChannelID} {
		if id == "" {
			continue
		}
		if _, err := p.session.ChannelDelete(id, discordgo.WithContext(ctx)); err != nil && !isNotFound(err) {
			errs = append(errs, fmt.Errorf("failed to delete channel %s: %w", id, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		p.metrics.IncChannelOperation(OpTeardown, ResultFailure)
		return err
	}

	p.metrics.IncChannelOperation(OpTeardown, ResultSuccess)
	log.Info("Deleted match channels", "text", set.TextChannelID, "voice", set.VoiceChannelID)
	return nil
}

// ChannelName is the Discord channel name used for a match.
func ChannelName(matchID string) string {
	short := matchID
	if len(short) > 8 {
		short = short[:8]
	}
	return "match-" + short
}

func topic(req Request) string {
	if req.Map == "" {
		return "Custom match " + req.MatchID
	}
	return fmt.Sprintf("Custom match %s on %s", req.MatchID, req.Map)
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
