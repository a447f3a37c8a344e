package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(store *stats.MockStore, roster []stats.Identity) map[stats.Identity]stats.PlayerAggregate {
	out := make(map[stats.Identity]stats.PlayerAggregate, len(roster))
	for _, id := range roster {
		agg, _ := store.Aggregate(id)
		out[id] = agg
	}
	return out
}

func TestApplyMatch_Properties(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		f := gofakeit.New(seed)
		roster := fakeRoster(f, 16)
		store := stats.NewMock(roster...)
		updater := stats.NewUpdater(store, metrics.NewMock())

		for round := 0; round < 5; round++ {
			rec := fakeMatch(t, f, roster)
			before := snapshot(store, roster)

			require.NoError(t, updater.ApplyMatch(context.Background(), rec), "seed %d", seed)
			after := snapshot(store, roster)

			team := make(map[stats.Identity]stats.Team, stats.MatchSize)
			for i, p := range rec.Players {
				team[p.Identity()] = stats.TeamForPosition(i)
			}

			winners := 0
			for _, id := range roster {
				playedDelta := after[id].MatchesPlayed - before[id].MatchesPlayed
				winDelta := after[id].Wins - before[id].Wins

				side, played := team[id]
				if !played {
					assert.Equal(t, before[id], after[id], "seed %d: %s was not in the match", seed, id)
					continue
				}
				assert.Equal(t, 1, playedDelta, "seed %d: %s", seed, id)
				if side == rec.WinnerTeam {
					assert.Equal(t, 1, winDelta, "seed %d: %s won", seed, id)
					winners++
				} else {
					assert.Equal(t, 0, winDelta, "seed %d: %s lost", seed, id)
				}

				agg := after[id]
				assert.LessOrEqual(t, agg.Wins, agg.MatchesPlayed)
				assert.LessOrEqual(t, agg.TotalHeadshotKills, agg.TotalKills)
			}
			assert.Equal(t, stats.TeamSize, winners, "seed %d", seed)
		}
	}
}

func TestApplyMatch_NineParticipantsIsRejected(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	m := metrics.NewMock()
	updater := stats.NewUpdater(store, m)
	before := snapshot(store, roster)

	rec := validMatch(roster)
	rec.Players = rec.Players[:9]

	err := updater.ApplyMatch(context.Background(), rec)

	var verr *stats.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, snapshot(store, roster), "no aggregate may change")
	assert.Empty(t, store.ApplyDeltasCalls)
	assert.Equal(t, 1, m.MatchRejections(metrics.ReasonValidation))
	assert.Equal(t, 0, m.MatchesApplied())
}

func TestApplyMatch_UnknownPlayerIsAtomic(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster[:9]...)
	m := metrics.NewMock()
	updater := stats.NewUpdater(store, m)
	before := snapshot(store, roster)

	err := updater.ApplyMatch(context.Background(), validMatch(roster))

	var nf *stats.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.True(t, errors.Is(err, stats.ErrPlayerNotFound))
	assert.Equal(t, []stats.Identity{roster[9]}, nf.Players)
	assert.Equal(t, before, snapshot(store, roster), "no aggregate may change")
	assert.Empty(t, store.ApplyDeltasCalls)
	assert.Equal(t, 1, m.MatchRejections(metrics.ReasonNotFound))
}

func TestApplyMatch_DuplicateMatchID(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	m := metrics.NewMock()
	updater := stats.NewUpdater(store, m)

	rec := validMatch(roster)
	require.NoError(t, updater.ApplyMatch(context.Background(), rec))
	afterFirst := snapshot(store, roster)

	err := updater.ApplyMatch(context.Background(), rec)

	var dup *stats.DuplicateMatchError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, rec.MatchID, dup.MatchID)
	assert.True(t, errors.Is(err, stats.ErrDuplicateMatch))
	assert.Equal(t, afterFirst, snapshot(store, roster))
	assert.Equal(t, 1, m.MatchesApplied())
	assert.Equal(t, 1, m.MatchRejections(metrics.ReasonDuplicate))
}

func TestApplyMatch_PassesOutcomeToStore(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	updater := stats.NewUpdater(store, metrics.NewMock())

	rec := validMatch(roster)
	rec.EventID = "event-1"
	rec.WinnerTeam = stats.TeamB
	require.NoError(t, updater.ApplyMatch(context.Background(), rec))

	require.Len(t, store.ApplyDeltasCalls, 1)
	call := store.ApplyDeltasCalls[0]
	assert.Equal(t, rec.MatchID, call.Outcome.MatchID)
	assert.Equal(t, "event-1", call.Outcome.EventID)
	assert.Equal(t, stats.TeamB, call.Outcome.Winner)
	assert.False(t, call.Outcome.At.IsZero())
	assert.Len(t, call.Deltas, stats.MatchSize)
}

func TestApplyMatch_StorageFailureIsWrapped(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	storageErr := errors.New("database is locked")
	store.ApplyDeltasFunc = func(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error {
		return storageErr
	}
	m := metrics.NewMock()
	updater := stats.NewUpdater(store, m)

	err := updater.ApplyMatch(context.Background(), validMatch(roster))
	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, 1, m.MatchRejections(metrics.ReasonStorage))
}

func TestApplyMatch_StoreDecidesMissingPlayers(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	// The player passes the pre-check and is gone by the time the write runs.
	store.ApplyDeltasFunc = func(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error {
		_, ok := store.Aggregate(roster[3])
		require.True(t, ok)
		return &stats.NotFoundError{Players: []stats.Identity{roster[3]}}
	}
	m := metrics.NewMock()
	updater := stats.NewUpdater(store, m)

	err := updater.ApplyMatch(context.Background(), validMatch(roster))

	var nf *stats.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []stats.Identity{roster[3]}, nf.Players)
	assert.Len(t, store.GetAggregateCalls, stats.MatchSize)
	assert.Equal(t, 1, m.MatchRejections(metrics.ReasonNotFound))
	assert.Zero(t, m.MatchesApplied())
}

func TestApplyMatch_StoreValidationIsNotWrapped(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	rejected := &stats.ValidationError{Problems: []stats.Problem{{Field: "eventId", Reason: "belongs to another event"}}}
	store.ApplyDeltasFunc = func(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error {
		return rejected
	}
	m := metrics.NewMock()
	updater := stats.NewUpdater(store, m)

	err := updater.ApplyMatch(context.Background(), validMatch(roster))

	assert.Same(t, rejected, err)
	assert.Equal(t, 1, m.MatchRejections(metrics.ReasonValidation))
	assert.Zero(t, m.MatchRejections(metrics.ReasonStorage))
}

func TestMockStore_SpiesMayReadState(t *testing.T) {
	roster := fixedRoster(10)
	store := stats.NewMock(roster...)
	store.GetAggregateFunc = func(ctx context.Context, name, tag string) (stats.PlayerAggregate, error) {
		agg, ok := store.Aggregate(stats.Identity{Name: name, Tag: tag})
		if !ok {
			return stats.PlayerAggregate{}, stats.ErrPlayerNotFound
		}
		return agg, nil
	}
	store.ApplyDeltasFunc = func(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error {
		assert.Len(t, store.Aggregates(), len(roster))
		return nil
	}

	require.NoError(t, stats.NewUpdater(store, metrics.NewMock()).ApplyMatch(context.Background(), validMatch(roster)))
	assert.Len(t, store.ApplyDeltasCalls, 1)
}
