package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/http/handlers"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// maxBodyBytes caps admin request bodies. A full match record is well under 8 KiB.
const maxBodyBytes = 64 << 10

// decodeJSON reads a JSON body and answers 400 when it is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		log.Debug("Rejected request body", "path", r.URL.Path, "error", err)
		handlers.BadRequest(w, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPlayerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		player, err := s.Store.RegisterPlayer(r.Context(), league.Player{Name: req.Name, Tag: req.Tag, DiscordID: req.DiscordID})
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		s.MetricsStore.Increment(metrics.CounterPlayersRegistered)
		handlers.RespondJSON(w, http.StatusCreated, player)
	}
}

// RemovePlayerHandler deletes a player together with their stats and match history.
func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, tag := r.PathValue("name"), r.PathValue("tag")
		if err := s.Store.RemovePlayer(r.Context(), name, tag); err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		s.MetricsStore.Increment(metrics.CounterPlayersRemoved)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) CreateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		event, err := s.Store.CreateEvent(r.Context(), league.Event{Name: req.Name, StartsAt: req.StartsAt})
		if err != nil {
			handlers.BadRequest(w, err.Error())
			return
		}
		handlers.RespondJSON(w, http.StatusCreated, event)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ID != "" {
			if _, err := uuid.Parse(req.ID); err != nil {
				handlers.BadRequest(w, "id must be a UUID")
				return
			}
		}
		match, err := s.Store.CreateMatch(r.Context(), league.Match{ID: req.ID, EventID: req.EventID, Map: req.Map})
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		handlers.RespondJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) SubmitRoomCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req roomCodeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.RoomCode == "" {
			handlers.BadRequest(w, "roomCode is required")
			return
		}
		match, err := s.Store.SubmitRoomCode(r.Context(), r.PathValue("id"), req.RoomCode)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, match)
	}
}

// CompleteMatchHandler applies the final scoreboard of a scheduled match.
// The match ID is the idempotency key, so a second submission answers 409.
func (s *Server) CompleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchResultRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		match, err := s.Store.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}

		rec := stats.MatchRecord{
			MatchID:    match.ID,
			EventID:    match.EventID,
			Players:    req.Players,
			WinnerTeam: req.WinnerTeam,
		}
		s.applyMatch(w, r, rec)
	}
}

// SubmitResultHandler applies a match that was played without being scheduled.
// Records without a matchId get a fresh one and cannot be deduplicated.
func (s *Server) SubmitResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec stats.MatchRecord
		if !decodeJSON(w, r, &rec) {
			return
		}
		if rec.MatchID == "" {
			rec.MatchID = uuid.NewString()
			log.Info("Generated match id for direct submission", "matchID", rec.MatchID)
		}
		s.applyMatch(w, r, rec)
	}
}

func (s *Server) applyMatch(w http.ResponseWriter, r *http.Request, rec stats.MatchRecord) {
	s.MetricsStore.Increment(metrics.CounterMatchesSubmitted)
	if err := s.Updater.ApplyMatch(r.Context(), rec); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, appliedResponse{MatchID: rec.MatchID, Status: "applied"})
}

// AnnounceLeaderboardHandler posts the current leaderboard through the notifier.
func (s *Server) AnnounceLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := handlers.Leaderboard(r.Context(), s.Store, r.URL.Query().Get("event"), s.Metrics)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		if err := s.Notifier.SendLeaderboard(r.Context(), rows, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce leaderboard", "error", err)
			http.Error(w, "Failed to announce leaderboard", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Leaderboard announced.")
	}
}

func (s *Server) ProcessMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match processing...")
		isDryRun := isDryRunFromContext(r)

		if err := s.Processor.ProcessMatches(r.Context(), isDryRun); err != nil {
			log.Error("Match processing failed", "error", err)
			http.Error(w, "Match processing failed", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match processing completed.")
		log.Info("Match processing finished.")
	}
}

// CountersHandler returns the durable counters kept in the database.
func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, counters)
	}
}
