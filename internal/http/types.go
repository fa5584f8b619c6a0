package http

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/inngest"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/ranking"
)

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Store          club.ClubStore
	Invitations    invitation.Store
	Challenges     challenge.Store
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      handlers.MatchProcessor
	Importer       handlers.MatchImporter
	PubSub         pubsub.PubSubClient
	Aggregator     *ranking.Aggregator
	Clock          clockwork.Clock
	// InngestClient is optional; /api/inngest is only mounted when it is set.
	InngestClient inngest.InngestClient
}

type Server struct {
	Deps
	Router *http.ServeMux
}
