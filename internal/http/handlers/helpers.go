package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey    ContextKey = "dryRun"
	RequestIDKey ContextKey = "requestID"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// RequestIDFromContext returns the ID assigned to the request, or "".
func RequestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error    string           `json:"error"`
	Problems []stats.Problem  `json:"problems,omitempty"`
	Players  []stats.Identity `json:"players,omitempty"`
	MatchID  string           `json:"matchId,omitempty"`
}

// RespondJSON writes v with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// WriteError maps domain errors to status codes. Unknown errors are logged and
// reported as 500 without their message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *stats.ValidationError
		nf   *stats.NotFoundError
		dup  *stats.DuplicateMatchError
	)
	switch {
	case errors.As(err, &verr):
		RespondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid match", Problems: verr.Problems})
	case errors.As(err, &nf):
		RespondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown players", Players: nf.Players})
	case errors.As(err, &dup):
		RespondJSON(w, http.StatusConflict, errorResponse{Error: "match already applied", MatchID: dup.MatchID})
	case errors.Is(err, league.ErrInvalidPlayer):
		RespondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, stats.ErrPlayerNotFound),
		errors.Is(err, league.ErrEventNotFound),
		errors.Is(err, league.ErrMatchNotFound):
		RespondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, league.ErrPlayerExists),
		errors.Is(err, league.ErrMatchExists),
		errors.Is(err, league.ErrMatchClosed):
		RespondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "requestID", RequestIDFromContext(r), "error", err)
		RespondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// BadRequest reports a body that could not be decoded.
func BadRequest(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
