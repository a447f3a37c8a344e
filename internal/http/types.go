package http

import (
	"net/http"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/config"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/processor"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

type Server struct {
	Store          league.LeagueStore
	Updater        *stats.Updater
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// Request bodies of the admin API.
type (
	registerPlayerRequest struct {
		Name      string `json:"name"`
		Tag       string `json:"tag"`
		DiscordID string `json:"discordId"`
	}

	createEventRequest struct {
		Name     string `json:"name"`
		StartsAt int64  `json:"startsAt"`
	}

	createMatchRequest struct {
		ID      string `json:"id"`
		EventID string `json:"eventId"`
		Map     string `json:"map"`
	}

	roomCodeRequest struct {
		RoomCode string `json:"roomCode"`
	}

	// matchResultRequest completes a scheduled match. The match ID comes from the path.
	matchResultRequest struct {
		Players    []stats.PlayerMatchStat `json:"players"`
		WinnerTeam stats.Team              `json:"winnerTeam"`
	}
)

type appliedResponse struct {
	MatchID string `json:"matchId"`
	Status  string `json:"status"`
}
