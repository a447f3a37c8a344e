package stats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPlayerNotFound is returned by stores when no aggregate exists for an identity.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrDuplicateMatch is returned when a match ID has already been applied.
	ErrDuplicateMatch = errors.New("match already applied")
)

// Problem is a single reason a match record was rejected.
type Problem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (p Problem) String() string {
	return p.Field + ": " + p.Reason
}

// ValidationError reports a malformed match record. Nothing has been written when it is returned.
type ValidationError struct {
	Problems []Problem `json:"problems"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "invalid match: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Problems = append(e.Problems, Problem{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// NotFoundError lists every participant without an aggregate.
type NotFoundError struct {
	Players []Identity `json:"players"`
}

func (e *NotFoundError) Error() string {
	names := make([]string, len(e.Players))
	for i, p := range e.Players {
		names[i] = p.String()
	}
	return "unknown players: " + strings.Join(names, ", ")
}

func (e *NotFoundError) Unwrap() error {
	return ErrPlayerNotFound
}

// DuplicateMatchError is returned when the same match ID is submitted twice.
type DuplicateMatchError struct {
	MatchID string `json:"matchId"`
}

func (e *DuplicateMatchError) Error() string {
	return fmt.Sprintf("match %s already applied", e.MatchID)
}

func (e *DuplicateMatchError) Unwrap() error {
	return ErrDuplicateMatch
}
