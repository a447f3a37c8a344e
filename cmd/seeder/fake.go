package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// registerPlayers registers n fake players. Names already taken are skipped over.
func registerPlayers(ctx context.Context, store league.LeagueStore, f *gofakeit.Faker, n int) ([]stats.Identity, error) {
	roster := make([]stats.Identity, 0, n)
	for len(roster) < n {
		p, err := store.RegisterPlayer(ctx, league.Player{
			Name: f.Username(),
			Tag:  fmt.Sprintf("%04d", f.Number(0, 9999)),
		})
		if errors.Is(err, league.ErrPlayerExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		roster = append(roster, stats.Identity{Name: p.Name, Tag: p.Tag})
	}
	log.Info("Registered players", "count", len(roster))
	return roster, nil
}

// fakeMatch draws ten distinct players and gives them a plausible scoreboard.
// The winning side gets a small ACS edge.
func fakeMatch(f *gofakeit.Faker, roster []stats.Identity) stats.MatchRecord {
	picked := make([]stats.Identity, len(roster))
	copy(picked, roster)
	f.ShuffleAnySlice(picked)

	winner := stats.Team(f.RandomString([]string{string(stats.TeamA), string(stats.TeamB)}))
	players := make([]stats.PlayerMatchStat, stats.MatchSize)
	for i := range players {
		kills := f.Number(2, 35)
		acs := f.Number(80, 380)
		if stats.TeamForPosition(i) == winner {
			acs += 20
		}
		players[i] = stats.PlayerMatchStat{
			Name:        picked[i].Name,
			Tag:         picked[i].Tag,
			Kills:       float64(kills),
			Deaths:      float64(f.Number(5, 25)),
			Assists:     float64(f.Number(0, 15)),
			ACS:         float64(acs),
			FirstBloods: float64(f.Number(0, min(kills, 6))),
			HSPercent:   f.Float64Range(5, 45),
		}
	}

	return stats.MatchRecord{
		MatchID:    uuid.NewString(),
		Players:    players,
		WinnerTeam: winner,
	}
}
