package processor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/channels"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
)

// New creates a new Processor. A nil pubsub client makes channel jobs run inline.
func New(store Store, notifier Notifier, provisioner channels.Provisioner, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:       store,
		pubsub:      pubsub,
		notifier:    notifier,
		provisioner: provisioner,
		metrics:     metrics,
		now:         time.Now,
	}
}

// ProcessMatches fetches matches that need processing and advances them through the state machine.
func (p *Processor) ProcessMatches(ctx context.Context, dryRun bool) error {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing(ctx)
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return err
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return nil
	}

	log.Info("Found matches to process", "count", len(matches))
	for _, match := range matches {
		startTime := time.Now()
		p.processMatch(ctx, match, dryRun)
		p.metrics.ObserveProcessingDuration(time.Since(startTime).Seconds())
		p.metrics.IncMatchesProcessed()
	}
	log.Info("Match processing finished.")
	return nil
}

func (p *Processor) processMatch(ctx context.Context, match *league.Match, dryRun bool) {
	log.Info("Processing match", "matchID", match.ID, "initial_status", match.ProcessingStatus, "status", match.Status)
	for {
		currentState := match.ProcessingStatus
		log.Debug("Evaluating match state", "matchID", match.ID, "status", currentState)

		switch currentState {
		case league.StatusNew:
			switch match.Status {
			case league.MatchStatusCompleted:
				log.Info("Match completed before channels were requested.", "matchID", match.ID)
				p.updateStatus(ctx, match, league.StatusResultAvailable, dryRun)
			case league.MatchStatusLive:
				log.Info("Match is live. Requesting channels.", "matchID", match.ID)
				if err := p.dispatch(ctx, pubsub.EventProvisionChannels, match, dryRun); err != nil {
					log.Error("Failed to request channels", "error", err, "matchID", match.ID)
					return
				}
				p.updateStatus(ctx, match, league.StatusChannelsRequested, dryRun)
			}

		case league.StatusChannelsRequested:
			if match.Status == league.MatchStatusCompleted {
				log.Info("Match has been played. Marking as result available.", "matchID", match.ID)
				p.updateStatus(ctx, match, league.StatusResultAvailable, dryRun)
			}

		case league.StatusResultAvailable:
			completed := time.Unix(match.CompletedAt, 0)
			if p.now().Sub(completed) < resultWindow {
				log.Info("Match result is available. Sending result notification.", "matchID", match.ID)
				if err := p.notifyResult(ctx, match, dryRun); err != nil {
					log.Error("Failed to send result notification", "error", err, "matchID", match.ID)
					return
				}
			} else {
				log.Info("Match result is too old to announce.", "matchID", match.ID, "completed_at", completed)
			}
			p.updateStatus(ctx, match, league.StatusResultNotified, dryRun)

		case league.StatusResultNotified:
			if !match.HasChannels() {
				p.updateStatus(ctx, match, league.StatusCompleted, dryRun)
				break
			}
			log.Info("Result notified. Requesting channel teardown.", "matchID", match.ID)
			if err := p.dispatch(ctx, pubsub.EventTeardownChannels, match, dryRun); err != nil {
				log.Error("Failed to request channel teardown", "error", err, "matchID", match.ID)
				return
			}
			p.updateStatus(ctx, match, league.StatusTeardownRequested, dryRun)

		case league.StatusTeardownRequested:
			log.Info("Channel teardown requested. Marking match as complete.", "matchID", match.ID)
			p.updateStatus(ctx, match, league.StatusCompleted, dryRun)

		case league.StatusCompleted:
			log.Debug("Match is complete. No further processing needed.", "matchID", match.ID)
			return

		default:
			log.Warn("Unknown processing status", "status", currentState, "matchID", match.ID)
			return
		}

		// If the status hasn't changed, we're done with this match for now.
		if match.ProcessingStatus == currentState {
			log.Debug("Match state did not change. Finished processing for now.", "matchID", match.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing match", "matchID", match.ID, "final_status", match.ProcessingStatus)
}

// dispatch publishes a channel job, or runs it inline when Pub/Sub is disabled.
func (p *Processor) dispatch(ctx context.Context, event pubsub.EventType, match *league.Match, dryRun bool) error {
	if p.pubsub != nil {
		if dryRun {
			log.Info("[Dry Run] Would publish event", "event", event, "matchID", match.ID)
			return nil
		}
		return p.pubsub.SendMessage(ctx, event, match)
	}

	switch event {
	case pubsub.EventProvisionChannels:
		return p.ProvisionChannels(ctx, match, dryRun)
	case pubsub.EventTeardownChannels:
		return p.TeardownChannels(ctx, match, dryRun)
	}
	return nil
}

func (p *Processor) notifyResult(ctx context.Context, match *league.Match, dryRun bool) error {
	participants, err := p.store.GetMatchParticipants(ctx, match.ID)
	if err != nil {
		return err
	}
	_, err = p.notifier.SendResultNotification(ctx, notifier.MatchResult{Match: match, Participants: participants}, dryRun)
	return err
}

// ProvisionChannels creates the channels of a live match and stores their IDs.
// The match is reloaded from the store, so a redelivered or stale job sees the
// channels created by an earlier delivery and does nothing.
func (p *Processor) ProvisionChannels(ctx context.Context, match *league.Match, dryRun bool) error {
	p.jobMu.Lock()
	defer p.jobMu.Unlock()

	stored, err := p.loadMatch(ctx, match.ID)
	if err != nil || stored == nil {
		return err
	}
	if stored.HasChannels() {
		log.Debug("Channels already exist", "matchID", stored.ID)
		syncChannels(match, stored.TextChannelID, stored.VoiceChannelID)
		return nil
	}
	if stored.Status != league.MatchStatusLive {
		log.Warn("Ignoring channel request for a match that is not live", "matchID", stored.ID, "status", stored.Status)
		return nil
	}

	set, err := p.provisioner.Provision(ctx, channels.Request{
		MatchID:  stored.ID,
		Map:      stored.Map,
		RoomCode: stored.RoomCode,
	}, dryRun)
	if err != nil {
		return err
	}
	if dryRun || set.Empty() {
		return nil
	}

	if err := p.store.SetMatchChannels(ctx, stored.ID, set.TextChannelID, set.VoiceChannelID); err != nil {
		return err
	}
	syncChannels(match, set.TextChannelID, set.VoiceChannelID)
	return nil
}

// TeardownChannels deletes the channels recorded for a completed match and clears their IDs.
// Only the stored channel IDs are used; the ones carried by the job are ignored.
func (p *Processor) TeardownChannels(ctx context.Context, match *league.Match, dryRun bool) error {
	p.jobMu.Lock()
	defer p.jobMu.Unlock()

	stored, err := p.loadMatch(ctx, match.ID)
	if err != nil || stored == nil {
		return err
	}
	if !stored.HasChannels() {
		syncChannels(match, "", "")
		return nil
	}
	if stored.Status != league.MatchStatusCompleted {
		log.Warn("Ignoring teardown for a match that is still running", "matchID", stored.ID, "status", stored.Status)
		return nil
	}

	set := channels.ChannelSet{TextChannelID: stored.TextChannelID, VoiceChannelID: stored.VoiceChannelID}
	if err := p.provisioner.Teardown(ctx, set, dryRun); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	if err := p.store.SetMatchChannels(ctx, stored.ID, "", ""); err != nil {
		return err
	}
	syncChannels(match, "", "")
	return nil
}

// loadMatch returns the stored match, or nil when it no longer exists.
func (p *Processor) loadMatch(ctx context.Context, id string) (*league.Match, error) {
	stored, err := p.store.GetMatch(ctx, id)
	if errors.Is(err, league.ErrMatchNotFound) {
		log.Warn("Dropping channel job for unknown match", "matchID", id)
		return nil, nil
	}
	return stored, err
}

func syncChannels(match *league.Match, textChannelID, voiceChannelID string) {
	match.TextChannelID = textChannelID
	match.VoiceChannelID = voiceChannelID
}

func (p *Processor) updateStatus(ctx context.Context, match *league.Match, newStatus league.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update match status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(ctx, match.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "matchID", match.ID)
	} else {
		log.Debug("Successfully updated status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
