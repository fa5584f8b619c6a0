package http

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/ranking"
)

func NewServer(deps Deps) *Server {
	if deps.Aggregator == nil {
		deps.Aggregator = ranking.NewAggregator(ranking.DefaultScoring)
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	server := &Server{
		Deps:   deps,
		Router: http.NewServeMux(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slack := slackVerifierMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(handlers.StatsHandler(s.MetricsStore), paramsMiddleware))
	s.Router.Handle("GET /tiers", Chain(handlers.TiersHandler(), paramsMiddleware))

	s.Router.Handle("POST /clubs/{clubID}", Chain(handlers.UpsertClubHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /clubs/{clubID}/members", Chain(handlers.ListMembersHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /clubs/{clubID}/members", Chain(handlers.AddMemberHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /clubs/{clubID}/matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /clubs/{clubID}/matches", Chain(handlers.RecordMatchHandler(s.Store, s.PubSub, s.MetricsStore, s.Clock), paramsMiddleware))
	s.Router.Handle("GET /clubs/{clubID}/leaderboard", Chain(handlers.LeaderboardHandler(s.Store, s.Aggregator, s.Metrics, s.MetricsStore), paramsMiddleware))
	s.Router.Handle("GET /clubs/{clubID}/ratings", Chain(handlers.RatingsHandler(s.Store), paramsMiddleware))

	s.Router.Handle("GET /clubs/{clubID}/invitations", Chain(handlers.ListInvitationsHandler(s.Invitations), paramsMiddleware))
	s.Router.Handle("POST /clubs/{clubID}/invitations", Chain(handlers.CreateInvitationHandler(s.Store, s.Invitations, s.MetricsStore), paramsMiddleware))
	s.Router.Handle("GET /invitations/{id}", Chain(handlers.GetInvitationHandler(s.Invitations), paramsMiddleware))
	s.Router.Handle("POST /invitations/{id}/responses", Chain(handlers.RespondInvitationHandler(s.Invitations, s.Notifier, s.Metrics, s.PubSub), paramsMiddleware))
	s.Router.Handle("POST /invitations/{id}/cancel", Chain(handlers.CancelInvitationHandler(s.Invitations), paramsMiddleware))

	s.Router.Handle("POST /clubs/{clubID}/challenges", Chain(handlers.CreateChallengeHandler(s.Store, s.Challenges, s.Notifier, s.Metrics, s.MetricsStore, s.PubSub), paramsMiddleware))
	s.Router.Handle("GET /clubs/{clubID}/players/{playerID}/opponents", Chain(handlers.OpponentsHandler(s.Store, s.Challenges), paramsMiddleware))
	s.Router.Handle("POST /challenges/{id}/respond", Chain(handlers.RespondChallengeHandler(s.Challenges), paramsMiddleware))

	s.Router.Handle("POST /process", Chain(handlers.ProcessMatchesHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /import", Chain(handlers.ImportMatchesHandler(s.Importer, s.MetricsStore), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-recorded", Chain(handlers.MatchRecordedHandler(s.Store, s.Processor, s.PubSub), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Store, s.Aggregator, s.Notifier, s.Metrics, s.MetricsStore, s.Cfg.Slack.ClubID), paramsMiddleware, slack))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Store, s.Aggregator, s.Notifier, s.MetricsStore, s.Cfg.Slack.ClubID), paramsMiddleware, slack))

	if s.InngestClient != nil {
		s.Router.Handle("/api/inngest", s.InngestClient.Serve())
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
