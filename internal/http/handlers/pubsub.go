package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
)

// ChannelJobs runs the channel side effects delivered through Pub/Sub.
type ChannelJobs interface {
	ProvisionChannels(ctx context.Context, match *league.Match, dryRun bool) error
	TeardownChannels(ctx context.Context, match *league.Match, dryRun bool) error
}

func ProvisionChannelsHandler(jobs ChannelJobs, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return pushHandler(pubsub.EventProvisionChannels, pubsubClient, jobs.ProvisionChannels)
}

func TeardownChannelsHandler(jobs ChannelJobs, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return pushHandler(pubsub.EventTeardownChannels, pubsubClient, jobs.TeardownChannels)
}

// pushHandler unwraps a Pub/Sub push envelope into a match and runs job on it.
// A non-2xx answer makes Pub/Sub redeliver the message.
func pushHandler(event pubsub.EventType, pubsubClient pubsub.PubSubClient, job func(context.Context, *league.Match, bool) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "event", event, "body", string(bodyBytes))

		// encoding/json decodes the base64 "data" field into bytes.
		var push pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal push envelope", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		var match league.Match
		if err := pubsubClient.ProcessMessage(push.Message.Data, &match); err != nil {
			log.Error("Failed to decode message data", "event", event, "messageID", push.Message.ID, "error", err)
			http.Error(w, "Invalid message data", http.StatusBadRequest)
			return
		}
		if match.ID == "" {
			http.Error(w, "Message has no match id", http.StatusBadRequest)
			return
		}

		if err := job(r.Context(), &match, IsDryRunFromContext(r)); err != nil {
			log.Error("Channel job failed", "event", event, "matchID", match.ID, "error", err)
			http.Error(w, "Channel job failed", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
