package http

import (
	"net/http"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/config"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/http/handlers"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/processor"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// NewServer wires the HTTP API. A nil pubsub client leaves the push routes unregistered.
func NewServer(store league.LeagueStore, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Updater:        stats.NewUpdater(store, metricsSvc),
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// Every route goes through paramsMiddleware; admin routes add the bearer check.
	admin := adminMiddleware(s.Cfg.AdminToken)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.Store), paramsMiddleware))

	// Public
	s.Router.Handle("GET /leaderboard", Chain(handlers.LeaderboardHandler(s.Store, s.Metrics, s.MetricsStore), paramsMiddleware))
	s.Router.Handle("GET /leaderboard.xlsx", Chain(handlers.LeaderboardWorkbookHandler(s.Store, s.Metrics), paramsMiddleware))
	s.Router.Handle("GET /events/{id}/leaderboard", Chain(handlers.EventLeaderboardHandler(s.Store, s.Metrics, s.MetricsStore), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /events", Chain(handlers.ListEventsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(handlers.GetMatchHandler(s.Store), paramsMiddleware))

	// Admin
	s.Router.Handle("POST /players", Chain(s.RegisterPlayerHandler(), paramsMiddleware, admin))
	s.Router.Handle("DELETE /players/{name}/{tag}", Chain(s.RemovePlayerHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /events", Chain(s.CreateEventHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /matches/{id}/room-code", Chain(s.SubmitRoomCodeHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /matches/{id}/result", Chain(s.CompleteMatchHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /results", Chain(s.SubmitResultHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /leaderboard/announce", Chain(s.AnnounceLeaderboardHandler(), paramsMiddleware, admin))
	s.Router.Handle("POST /process", Chain(s.ProcessMatchesHandler(), paramsMiddleware, admin))
	s.Router.Handle("GET /admin/counters", Chain(s.CountersHandler(), paramsMiddleware, admin))

	if s.pubsub != nil {
		s.Router.Handle("POST /pubsub/provision-channels", Chain(handlers.ProvisionChannelsHandler(s.Processor, s.pubsub), paramsMiddleware))
		s.Router.Handle("POST /pubsub/teardown-channels", Chain(handlers.TeardownChannelsHandler(s.Processor, s.pubsub), paramsMiddleware))
	}

	if s.Cfg.Slack.SigningSecret != "" {
		s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Store, s.Notifier, s.Metrics), paramsMiddleware, slackVerifier(s.Cfg.Slack.SigningSecret)))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
