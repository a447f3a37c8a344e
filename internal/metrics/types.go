package metrics

import "github.com/prometheus/client_golang/prometheus"

// Rejection reasons used as the "reason" label.
const (
	ReasonValidation = "validation"
	ReasonNotFound   = "not_found"
	ReasonDuplicate  = "duplicate"
	ReasonStorage    = "storage"
)

// Durable counter keys.
const (
	CounterMatchesSubmitted  = "matches_submitted"
	CounterPlayersRegistered = "players_registered"
	CounterPlayersRemoved    = "players_removed"
	CounterLeaderboardViews  = "leaderboard_views"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesApplied          prometheus.Counter
	MatchRejections         *prometheus.CounterVec
	LeaderboardComputations prometheus.Counter
	MatchesProcessed        prometheus.Counter
	ProcessingDuration      prometheus.Histogram
	NotifSent               *prometheus.CounterVec
	NotifFailed             *prometheus.CounterVec
	ChannelOperations       *prometheus.CounterVec
	StartupTimeSeconds      prometheus.Gauge
}
