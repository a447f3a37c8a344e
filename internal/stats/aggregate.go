package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// maxCounter bounds a single per-match counter so that sums stay inside an int64 column.
const maxCounter = math.MaxInt32

// HeadshotKills derives the whole number of headshot kills from a percentage.
// Halves round away from zero.
func HeadshotKills(hsPercent float64, kills int) int {
	return int(math.Round(hsPercent / 100 * float64(kills)))
}

// TeamForPosition maps a record position to its side.
func TeamForPosition(position int) Team {
	if position < TeamSize {
		return TeamA
	}
	return TeamB
}

// NewDelta converts a validated stat line into an increment.
func NewDelta(stat PlayerMatchStat, won bool) Delta {
	kills := int(stat.Kills)
	return Delta{
		Name:          strings.TrimSpace(stat.Name),
		Tag:           strings.TrimSpace(stat.Tag),
		Won:           won,
		Kills:         kills,
		Deaths:        int(stat.Deaths),
		Assists:       int(stat.Assists),
		ACS:           int(stat.ACS),
		FirstBloods:   int(stat.FirstBloods),
		HeadshotKills: HeadshotKills(stat.HSPercent, kills),
		HSPercent:     stat.HSPercent,
	}
}

// Add returns the aggregate with the delta applied.
func (a PlayerAggregate) Add(d Delta) PlayerAggregate {
	a.MatchesPlayed++
	a.Wins += d.WinIncrement()
	a.TotalKills += d.Kills
	a.TotalDeaths += d.Deaths
	a.TotalAssists += d.Assists
	a.TotalACS += d.ACS
	a.TotalFirstBloods += d.FirstBloods
	a.TotalHeadshotKills += d.HeadshotKills
	return a
}

// Apply folds one participant's stat line into their aggregate.
func Apply(agg PlayerAggregate, stat PlayerMatchStat, isWinningTeam bool) PlayerAggregate {
	return agg.Add(NewDelta(stat, isWinningTeam))
}

// ValidateMatch checks a record before anything is written.
// All problems are collected into a single *ValidationError.
func ValidateMatch(rec MatchRecord) error {
	verr := &ValidationError{}

	if _, err := uuid.Parse(rec.MatchID); err != nil {
		verr.add("matchId", "must be a UUID")
	}
	if rec.WinnerTeam != TeamA && rec.WinnerTeam != TeamB {
		verr.add("winnerTeam", "must be %q or %q, got %q", TeamA, TeamB, rec.WinnerTeam)
	}
	if len(rec.Players) != MatchSize {
		verr.add("players", "expected %d entries, got %d", MatchSize, len(rec.Players))
	}

	seen := make(map[string]int, len(rec.Players))
	for i, p := range rec.Players {
		field := func(name string) string { return fmt.Sprintf("players[%d].%s", i, name) }

		id := Identity{Name: strings.TrimSpace(p.Name), Tag: strings.TrimSpace(p.Tag)}
		if id.Name == "" {
			verr.add(field("name"), "must not be empty")
		}
		if id.Tag == "" {
			verr.add(field("tag"), "must not be empty")
		}
		if id.Name != "" && id.Tag != "" {
			if prev, ok := seen[id.key()]; ok {
				verr.add(field("name"), "%s already appears at position %d", id, prev)
			} else {
				seen[id.key()] = i
			}
		}

		counters := []struct {
			name  string
			value float64
		}{
			{"kills", p.Kills},
			{"deaths", p.Deaths},
			{"assists", p.Assists},
			{"acs", p.ACS},
			{"firstBloods", p.FirstBloods},
		}
		for _, c := range counters {
			switch {
			case math.IsNaN(c.value) || math.IsInf(c.value, 0):
				verr.add(field(c.name), "must be finite")
			case c.value < 0:
				verr.add(field(c.name), "must not be negative")
			case c.value != math.Trunc(c.value):
				verr.add(field(c.name), "must be a whole number")
			case c.value > maxCounter:
				verr.add(field(c.name), "must be at most %d", maxCounter)
			}
		}

		switch {
		case math.IsNaN(p.HSPercent) || math.IsInf(p.HSPercent, 0):
			verr.add(field("hsPercent"), "must be finite")
		case p.HSPercent < 0 || p.HSPercent > 100:
			verr.add(field("hsPercent"), "must be between 0 and 100")
		}
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// Deltas expands a validated record into one increment per participant.
func Deltas(rec MatchRecord) []Delta {
	deltas := make([]Delta, len(rec.Players))
	for i, p := range rec.Players {
		team := TeamForPosition(i)
		d := NewDelta(p, team == rec.WinnerTeam)
		d.Position = i
		d.Team = team
		deltas[i] = d
	}
	return deltas
}
