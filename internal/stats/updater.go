package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
)

// Store is the storage capability the updater depends on.
//
// ApplyDeltas must apply every delta or none of them. It returns a *NotFoundError
// when a participant disappears between the pre-check and the write, a
// *DuplicateMatchError when the outcome's match ID was applied before, and a
// *ValidationError when the outcome contradicts the scheduled match.
type Store interface {
	GetAggregate(ctx context.Context, name, tag string) (PlayerAggregate, error)
	ApplyDeltas(ctx context.Context, outcome Outcome, deltas []Delta) error
}

// Updater folds completed matches into player aggregates.
type Updater struct {
	store   Store
	metrics metrics.Metrics
	now     func() time.Time
}

// NewUpdater creates an Updater.
func NewUpdater(store Store, metrics metrics.Metrics) *Updater {
	return &Updater{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// ApplyMatch validates a record and applies it to all ten participants atomically.
// It returns *ValidationError, *NotFoundError or *DuplicateMatchError for rejected
// records, and a wrapped storage error otherwise. Nothing is retried.
func (u *Updater) ApplyMatch(ctx context.Context, rec MatchRecord) error {
	if err := ValidateMatch(rec); err != nil {
		log.Warn("Rejected invalid match", "matchID", rec.MatchID, "error", err)
		u.metrics.IncMatchRejected(metrics.ReasonValidation)
		return err
	}

	deltas := Deltas(rec)

	// The pre-check only rejects unknown players before a write transaction is
	// opened. ApplyDeltas repeats the lookup inside the transaction and its answer
	// is the one that counts.
	var missing []Identity
	for _, d := range deltas {
		_, err := u.store.GetAggregate(ctx, d.Name, d.Tag)
		if errors.Is(err, ErrPlayerNotFound) {
			missing = append(missing, d.Identity())
			continue
		}
		if err != nil {
			u.metrics.IncMatchRejected(metrics.ReasonStorage)
			return fmt.Errorf("failed to load aggregate for %s: %w", d.Identity(), err)
		}
	}
	if len(missing) > 0 {
		err := &NotFoundError{Players: missing}
		log.Warn("Rejected match with unknown players", "matchID", rec.MatchID, "error", err)
		u.metrics.IncMatchRejected(metrics.ReasonNotFound)
		return err
	}

	outcome := Outcome{
		MatchID: rec.MatchID,
		EventID: rec.EventID,
		Winner:  rec.WinnerTeam,
		At:      u.now(),
	}
	if err := u.store.ApplyDeltas(ctx, outcome, deltas); err != nil {
		var nf *NotFoundError
		var dup *DuplicateMatchError
		var invalid *ValidationError
		switch {
		case errors.As(err, &invalid):
			u.metrics.IncMatchRejected(metrics.ReasonValidation)
			return err
		case errors.As(err, &dup):
			u.metrics.IncMatchRejected(metrics.ReasonDuplicate)
			return err
		case errors.As(err, &nf):
			u.metrics.IncMatchRejected(metrics.ReasonNotFound)
			return err
		default:
			u.metrics.IncMatchRejected(metrics.ReasonStorage)
			return fmt.Errorf("failed to apply match %s: %w", rec.MatchID, err)
		}
	}

	u.metrics.IncMatchesApplied()
	log.Info("Applied match", "matchID", rec.MatchID, "eventID", rec.EventID, "winner", rec.WinnerTeam)
	return nil
}
