package processor

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/rating"
)

// notifyWindow is how old a match may be and still get a result notification.
// Older matches are rated silently so history can be imported.
const notifyWindow = 24 * time.Hour

// Processor handles the business logic of processing matches.
type Processor struct {
	store    Store
	engine   rating.Engine
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	clock    clockwork.Clock

	mu       sync.Mutex
	inFlight map[string]struct{}
}
