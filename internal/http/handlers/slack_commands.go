package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	slacknotifier "github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier/slack"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler answers /leaderboard. An event ID in the command text
// selects that event's leaderboard. The Slack rendering is used when the
// configured notifier cannot format for Slack.
func LeaderboardCommandHandler(store league.LeagueStore, n notifier.Notifier, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form body", http.StatusBadRequest)
			return
		}

		eventID := strings.TrimSpace(r.PostForm.Get("text"))
		rows, err := Leaderboard(r.Context(), store, eventID, m)
		if errors.Is(err, league.ErrEventNotFound) {
			respondWithSlackMsg(w, slack.Message{Msg: slack.Msg{
				ResponseType: slack.ResponseTypeEphemeral,
				Text:         "No event with id " + eventID,
			}})
			return
		}
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard", "error", err)
			return
		}

		msg, err := n.FormatLeaderboardResponse(rows)
		slackMsg, ok := msg.(slack.Message)
		if err != nil || !ok {
			log.Debug("Notifier gave no Slack message, using Block Kit fallback", "error", err)
			slackMsg = slacknotifier.LeaderboardMessage(rows)
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
