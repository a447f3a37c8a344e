package processor

import (
	"sync"
	"time"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/channels"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
)

// resultWindow is how long after completion a result is still announced.
// Older matches are advanced silently, e.g. after a backfill.
const resultWindow = 24 * time.Hour

// Processor handles the side effects of the match lifecycle.
type Processor struct {
	store       Store
	pubsub      pubsub.PubSubClient
	notifier    Notifier
	provisioner channels.Provisioner
	metrics     metrics.Metrics
	now         func() time.Time

	// jobMu serializes channel jobs so concurrent deliveries see each other's writes.
	jobMu sync.Mutex
}
