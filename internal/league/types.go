package league

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	ErrInvalidPlayer = errors.New("player name and tag are required")
	ErrPlayerExists  = errors.New("player already registered")
	ErrEventNotFound = errors.New("event not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match already exists")
	ErrMatchClosed   = errors.New("match is already completed")
)

// Player is a registered member of the community.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	DiscordID string `json:"discordId,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Event groups matches into a tournament or league night.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartsAt  int64  `json:"startsAt"`
	CreatedAt int64  `json:"createdAt"`
}

// MatchStatus is the lifecycle of a match as seen by players.
type MatchStatus string

const (
	MatchStatusOpen      MatchStatus = "OPEN"
	MatchStatusLive      MatchStatus = "LIVE"
	MatchStatusCompleted MatchStatus = "COMPLETED"
)

// ProcessingStatus tracks the match through the side-effect state machine.
type ProcessingStatus string

const (
	StatusNew               ProcessingStatus = "NEW"
	StatusChannelsRequested ProcessingStatus = "CHANNELS_REQUESTED"
	StatusResultAvailable   ProcessingStatus = "RESULT_AVAILABLE"
	StatusResultNotified    ProcessingStatus = "RESULT_NOTIFIED"
	StatusTeardownRequested ProcessingStatus = "TEARDOWN_REQUESTED"
	StatusCompleted         ProcessingStatus = "COMPLETED"
)

// Match is a scheduled or played custom game.
type Match struct {
	ID               string           `json:"id" msgpack:"id"`
	EventID          string           `json:"eventId,omitempty" msgpack:"event_id"`
	Map              string           `json:"map" msgpack:"map"`
	RoomCode         string           `json:"roomCode,omitempty" msgpack:"room_code"`
	Status           MatchStatus      `json:"status" msgpack:"status"`
	ProcessingStatus ProcessingStatus `json:"processingStatus" msgpack:"processing_status"`
	WinnerTeam       stats.Team       `json:"winnerTeam,omitempty" msgpack:"winner_team"`
	TextChannelID    string           `json:"textChannelId,omitempty" msgpack:"text_channel_id"`
	VoiceChannelID   string           `json:"voiceChannelId,omitempty" msgpack:"voice_channel_id"`
	CreatedAt        int64            `json:"createdAt" msgpack:"created_at"`
	CompletedAt      int64            `json:"completedAt,omitempty" msgpack:"completed_at"`
}

// HasChannels reports whether Discord channels were created for the match.
func (m *Match) HasChannels() bool {
	return m.TextChannelID != "" || m.VoiceChannelID != ""
}

// Participant is one player's stored line for an applied match.
type Participant struct {
	Position      int        `json:"position"`
	Name          string     `json:"name"`
	Tag           string     `json:"tag"`
	Team          stats.Team `json:"team"`
	Won           bool       `json:"won"`
	Kills         int        `json:"kills"`
	Deaths        int        `json:"deaths"`
	Assists       int        `json:"assists"`
	ACS           int        `json:"acs"`
	FirstBloods   int        `json:"firstBloods"`
	HSPercent     float64    `json:"hsPercent"`
	HeadshotKills int        `json:"headshotKills"`
}
