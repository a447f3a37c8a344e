package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_matches_applied_total",
			Help: "The total number of match records folded into player aggregates.",
		}),
		MatchRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_match_rejections_total",
			Help: "The total number of match records rejected, by reason.",
		}, []string{"reason"}),
		LeaderboardComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_leaderboard_computations_total",
			Help: "The total number of leaderboard computations.",
		}),
		MatchesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_matches_processed_total",
			Help: "The total number of matches processed by the state machine.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "valorant_match_processing_duration_seconds",
			Help:    "The duration of individual match processing.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NotifSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}, []string{"provider"}),
		NotifFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}, []string{"provider"}),
		ChannelOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_channel_operations_total",
			Help: "The total number of match channel provision and teardown attempts.",
		}, []string{"op", "result"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "valorant_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesApplied,
		s.MatchRejections,
		s.LeaderboardComputations,
		s.MatchesProcessed,
		s.ProcessingDuration,
		s.NotifSent,
		s.NotifFailed,
		s.ChannelOperations,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesApplied() {
	s.MatchesApplied.Inc()
}

func (s *Service) IncMatchRejected(reason string) {
	s.MatchRejections.WithLabelValues(reason).Inc()
}

func (s *Service) IncLeaderboardComputations() {
	s.LeaderboardComputations.Inc()
}

func (s *Service) IncMatchesProcessed() {
	s.MatchesProcessed.Inc()
}

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) IncNotifSent(provider string) {
	s.NotifSent.WithLabelValues(provider).Inc()
}

func (s *Service) IncNotifFailed(provider string) {
	s.NotifFailed.WithLabelValues(provider).Inc()
}

func (s *Service) IncChannelOperation(op, result string) {
	s.ChannelOperations.WithLabelValues(op, result).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
