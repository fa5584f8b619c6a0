package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	ImportRuns         prometheus.Counter
	MatchesProcessed   prometheus.Counter
	ProcessingDuration prometheus.Histogram
	InvitationsMatched prometheus.Counter
	ChallengesCreated  prometheus.Counter
	LeaderboardBuilds  prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
