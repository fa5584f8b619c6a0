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
		ImportRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_import_runs_total",
			Help: "The total number of Playtomic import runs.",
		}),
		MatchesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_matches_processed_total",
			Help: "The total number of matches processed by the state machine.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtside_match_processing_duration_seconds",
			Help:    "The duration of individual match processing.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		InvitationsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_invitations_matched_total",
			Help: "The total number of invitations whose roster filled.",
		}),
		ChallengesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_challenges_created_total",
			Help: "The total number of challenges issued.",
		}),
		LeaderboardBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_leaderboard_builds_total",
			Help: "The total number of leaderboards aggregated.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ImportRuns,
		s.MatchesProcessed,
		s.ProcessingDuration,
		s.InvitationsMatched,
		s.ChallengesCreated,
		s.LeaderboardBuilds,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncImportRuns()                            { s.ImportRuns.Inc() }
func (s *Service) IncMatchesProcessed()                      { s.MatchesProcessed.Inc() }
func (s *Service) ObserveProcessingDuration(seconds float64) { s.ProcessingDuration.Observe(seconds) }
func (s *Service) IncInvitationsMatched()                    { s.InvitationsMatched.Inc() }
func (s *Service) IncChallengesCreated()                     { s.ChallengesCreated.Inc() }
func (s *Service) IncLeaderboardBuilds()                     { s.LeaderboardBuilds.Inc() }
func (s *Service) IncSlackNotifSent()                        { s.SlackNotifSent.Inc() }
func (s *Service) IncSlackNotifFailed()                      { s.SlackNotifFailed.Inc() }
func (s *Service) SetStartupTime(duration float64)           { s.StartupTimeSeconds.Set(duration) }
