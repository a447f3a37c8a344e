package stats_test

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// fakeRoster returns n distinct identities.
func fakeRoster(f *gofakeit.Faker, n int) []stats.Identity {
	roster := make([]stats.Identity, n)
	for i := range roster {
		roster[i] = stats.Identity{
			Name: fmt.Sprintf("%s%d", f.Username(), i),
			Tag:  fmt.Sprintf("%04d", f.Number(0, 9999)),
		}
	}
	return roster
}

// fakeMatch draws ten distinct players from the roster and gives them plausible stats.
func fakeMatch(t *testing.T, f *gofakeit.Faker, roster []stats.Identity) stats.MatchRecord {
	t.Helper()
	if len(roster) < stats.MatchSize {
		t.Fatalf("roster too small: %d", len(roster))
	}

	picked := make([]stats.Identity, len(roster))
	copy(picked, roster)
	for i := len(picked) - 1; i > 0; i-- {
		j := f.Number(0, i)
		picked[i], picked[j] = picked[j], picked[i]
	}

	players := make([]stats.PlayerMatchStat, stats.MatchSize)
	for i := range players {
		kills := f.Number(0, 40)
		players[i] = stats.PlayerMatchStat{
			Name:        picked[i].Name,
			Tag:         picked[i].Tag,
			Kills:       float64(kills),
			Deaths:      float64(f.Number(0, 30)),
			Assists:     float64(f.Number(0, 20)),
			ACS:         float64(f.Number(50, 450)),
			FirstBloods: float64(f.Number(0, min(kills, 8))),
			HSPercent:   f.Float64Range(0, 100),
		}
	}

	return stats.MatchRecord{
		MatchID:    uuid.NewString(),
		Players:    players,
		WinnerTeam: stats.Team(f.RandomString([]string{"A", "B"})),
	}
}

// validMatch is a fixed record where every player has the same line.
func validMatch(roster []stats.Identity) stats.MatchRecord {
	players := make([]stats.PlayerMatchStat, stats.MatchSize)
	for i := range players {
		players[i] = stats.PlayerMatchStat{
			Name: roster[i].Name, Tag: roster[i].Tag,
			Kills: 20, Deaths: 15, Assists: 5, ACS: 250, FirstBloods: 3, HSPercent: 25,
		}
	}
	return stats.MatchRecord{
		MatchID:    uuid.NewString(),
		Players:    players,
		WinnerTeam: stats.TeamA,
	}
}

func fixedRoster(n int) []stats.Identity {
	roster := make([]stats.Identity, n)
	for i := range roster {
		roster[i] = stats.Identity{Name: fmt.Sprintf("player%d", i), Tag: "EUW"}
	}
	return roster
}
