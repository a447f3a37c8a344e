package stats

import (
	"math"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Scoring weights.
const (
	acsWeight        = 1.5
	impactWeight     = 1.2
	assistWeight     = 0.8
	firstBloodWeight = 1.5
	killCap          = 30.0
	reliableMatches  = 5.0
	consistencyCap   = 20.0
)

// Score derives the leaderboard row for one aggregate. It never fails:
// every division is guarded and a player without matches scores 0.
func Score(agg PlayerAggregate) LeaderboardRow {
	m := float64(agg.MatchesPlayed)

	avgKills, avgDeaths, avgACS, avgAssists, avgFirstBloods, winrate := 0.0, 1.0, 0.0, 0.0, 0.0, 0.0
	if agg.MatchesPlayed > 0 {
		avgKills = float64(agg.TotalKills) / m
		avgDeaths = float64(agg.TotalDeaths) / m
		avgACS = float64(agg.TotalACS) / m
		avgAssists = float64(agg.TotalAssists) / m
		avgFirstBloods = float64(agg.TotalFirstBloods) / m
		winrate = float64(agg.Wins) / m * 100
	}

	hsPercent := 0.0
	if agg.TotalKills > 0 {
		hsPercent = float64(agg.TotalHeadshotKills) / float64(agg.TotalKills) * 100
	}

	avgKDA := avgKills
	if avgDeaths != 0 {
		avgKDA = avgKills / avgDeaths
	}

	// The first-blood term mixes the lifetime sum with a per-match average.
	// Changing it would reorder the existing ranking.
	firstBloods := float64(agg.TotalFirstBloods)
	cappedKills := math.Min(avgKills, killCap)
	impactKillsScore := firstBloods*firstBloodWeight + (cappedKills - firstBloods)

	scoreRaw := avgACS*acsWeight +
		impactKillsScore*impactWeight +
		avgAssists*assistWeight +
		hsPercent +
		winrate -
		avgDeaths

	reliability := math.Min(m/reliableMatches, 1)
	consistency := 1 + math.Min(m, consistencyCap)/100

	return LeaderboardRow{
		Name:           agg.Name,
		Tag:            agg.Tag,
		AvgACS:         avgACS,
		AvgKDA:         avgKDA,
		HSPercent:      hsPercent,
		AvgFirstBloods: avgFirstBloods,
		Winrate:        winrate,
		Score:          int(math.Round(scoreRaw * consistency * reliability)),
		MatchesPlayed:  agg.MatchesPlayed,
	}
}

// ComputeLeaderboard scores every aggregate and returns the rows ranked.
// Rows are scored concurrently. Ordering is score descending, then name, then tag.
func ComputeLeaderboard(aggregates []PlayerAggregate) []LeaderboardRow {
	rows := make([]LeaderboardRow, len(aggregates))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, agg := range aggregates {
		g.Go(func() error {
			rows[i] = Score(agg)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(rows, func(i, j int) bool {
		return rowLess(rows[i], rows[j])
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func rowLess(a, b LeaderboardRow) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if c := compareFold(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return compareFold(a.Tag, b.Tag) < 0
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
