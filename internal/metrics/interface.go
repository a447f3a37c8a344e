package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesApplied()
	IncMatchRejected(reason string)
	IncLeaderboardComputations()
	IncMatchesProcessed()
	ObserveProcessingDuration(duration float64)
	IncNotifSent(provider string)
	IncNotifFailed(provider string)
	IncChannelOperation(op, result string)
	SetStartupTime(duration float64)
}

// MetricsStore keeps durable counters in the database. They survive restarts,
// unlike the Prometheus series.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
