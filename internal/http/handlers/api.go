package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/report"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ListPlayersHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.ListPlayers(r.Context())
		if err != nil {
			WriteError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, players)
	}
}

func ListEventsHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := store.ListEvents(r.Context())
		if err != nil {
			WriteError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, events)
	}
}

func ListMatchesHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.ListMatches(r.Context())
		if err != nil {
			WriteError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, matches)
	}
}

// matchDetail is a match together with the lines recorded when it was applied.
type matchDetail struct {
	*league.Match
	Participants []league.Participant `json:"participants"`
}

func GetMatchHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		match, err := store.GetMatch(r.Context(), id)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		participants, err := store.GetMatchParticipants(r.Context(), id)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, matchDetail{Match: match, Participants: participants})
	}
}

// LeaderboardHandler serves the overall leaderboard, ranked by score.
func LeaderboardHandler(store league.LeagueStore, m metrics.Metrics, counters metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := Leaderboard(r.Context(), store, "", m)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		counters.Increment(metrics.CounterLeaderboardViews)
		RespondJSON(w, http.StatusOK, rows)
	}
}

// EventLeaderboardHandler ranks players by their results within a single event.
func EventLeaderboardHandler(store league.LeagueStore, m metrics.Metrics, counters metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := Leaderboard(r.Context(), store, r.PathValue("id"), m)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		counters.Increment(metrics.CounterLeaderboardViews)
		RespondJSON(w, http.StatusOK, rows)
	}
}

// LeaderboardWorkbookHandler serves the leaderboard as an Excel download.
// The optional "event" query parameter restricts it to one event.
func LeaderboardWorkbookHandler(store league.LeagueStore, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := Leaderboard(r.Context(), store, r.URL.Query().Get("event"), m)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		data, err := report.LeaderboardWorkbook(rows)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Error("Failed to write workbook", "error", err)
		}
	}
}

// Leaderboard loads the aggregates for an event, or all of them when eventID is empty, and ranks them.
func Leaderboard(ctx context.Context, store league.LeagueStore, eventID string, m metrics.Metrics) ([]stats.LeaderboardRow, error) {
	var (
		aggregates []stats.PlayerAggregate
		err        error
	)
	if eventID == "" {
		aggregates, err = store.ListAggregates(ctx)
	} else {
		aggregates, err = store.ListEventAggregates(ctx, eventID)
	}
	if err != nil {
		return nil, err
	}
	m.IncLeaderboardComputations()
	return stats.ComputeLeaderboard(aggregates), nil
}
