package stats

import (
	"strings"
	"time"
)

// Team is one side of a 5v5 match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// TeamSize is the number of players per side. A match always has two full teams.
const TeamSize = 5

// MatchSize is the number of participants in a match record.
const MatchSize = 2 * TeamSize

// Identity is the unique key of a player.
type Identity struct {
	Name string `json:"name" msgpack:"name"`
	Tag  string `json:"tag" msgpack:"tag"`
}

func (i Identity) String() string {
	return i.Name + "#" + i.Tag
}

// key folds case so that "Foo#EUW" and "foo#euw" are the same player.
func (i Identity) key() string {
	return strings.ToLower(i.Name) + "#" + strings.ToLower(i.Tag)
}

// PlayerMatchStat is one participant's line in a submitted match.
// Counters arrive as JSON numbers and are validated to be whole and non-negative.
type PlayerMatchStat struct {
	Name        string  `json:"name" msgpack:"name"`
	Tag         string  `json:"tag" msgpack:"tag"`
	Kills       float64 `json:"kills" msgpack:"kills"`
	Deaths      float64 `json:"deaths" msgpack:"deaths"`
	Assists     float64 `json:"assists" msgpack:"assists"`
	ACS         float64 `json:"acs" msgpack:"acs"`
	FirstBloods float64 `json:"firstBloods" msgpack:"first_bloods"`
	HSPercent   float64 `json:"hsPercent" msgpack:"hs_percent"`
}

func (s PlayerMatchStat) Identity() Identity {
	return Identity{Name: s.Name, Tag: s.Tag}
}

// MatchRecord is a completed match as submitted by an admin.
// Positions 0-4 are Team A and 5-9 are Team B.
type MatchRecord struct {
	MatchID    string            `json:"matchId" msgpack:"match_id"`
	EventID    string            `json:"eventId,omitempty" msgpack:"event_id"`
	Players    []PlayerMatchStat `json:"players" msgpack:"players"`
	WinnerTeam Team              `json:"winnerTeam" msgpack:"winner_team"`
}

// PlayerAggregate holds a player's lifetime running sums.
type PlayerAggregate struct {
	Name               string `json:"name"`
	Tag                string `json:"tag"`
	MatchesPlayed      int    `json:"matchesPlayed"`
	Wins               int    `json:"wins"`
	TotalKills         int    `json:"totalKills"`
	TotalDeaths        int    `json:"totalDeaths"`
	TotalAssists       int    `json:"totalAssists"`
	TotalACS           int    `json:"totalACS"`
	TotalFirstBloods   int    `json:"totalFirstBloods"`
	TotalHeadshotKills int    `json:"totalHeadshotKills"`
}

func (a PlayerAggregate) Identity() Identity {
	return Identity{Name: a.Name, Tag: a.Tag}
}

// Delta is the increment one match contributes to one player's aggregate.
type Delta struct {
	Name          string
	Tag           string
	Position      int
	Team          Team
	Won           bool
	Kills         int
	Deaths        int
	Assists       int
	ACS           int
	FirstBloods   int
	HeadshotKills int
	HSPercent     float64
}

func (d Delta) Identity() Identity {
	return Identity{Name: d.Name, Tag: d.Tag}
}

// WinIncrement is 1 for a win and 0 otherwise.
func (d Delta) WinIncrement() int {
	if d.Won {
		return 1
	}
	return 0
}

// Outcome identifies the match a batch of deltas belongs to.
type Outcome struct {
	MatchID string
	EventID string
	Winner  Team
	At      time.Time
}

// LeaderboardRow is the display row derived from an aggregate. It is never stored.
type LeaderboardRow struct {
	Rank           int     `json:"rank"`
	Name           string  `json:"name"`
	Tag            string  `json:"tag"`
	AvgACS         float64 `json:"avgACS"`
	AvgKDA         float64 `json:"avgKDA"`
	HSPercent      float64 `json:"hsPercent"`
	AvgFirstBloods float64 `json:"avgFirstBloods"`
	Winrate        float64 `json:"winrate"`
	Score          int     `json:"score"`
	MatchesPlayed  int     `json:"matchesPlayed"`
}
