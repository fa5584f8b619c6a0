package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncImportRuns()
	IncMatchesProcessed()
	ObserveProcessingDuration(seconds float64)
	IncInvitationsMatched()
	IncChallengesCreated()
	IncLeaderboardBuilds()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps usage counters that survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}

// Keys of the persistent usage counters.
const (
	KeyMatchesRecorded     = "matches_recorded"
	KeyInvitationsCreated  = "invitations_created"
	KeyChallengesCreated   = "challenges_created"
	KeyLeaderboardRequests = "leaderboard_requests"
	KeySlackCommands       = "slack_commands"
	KeyImportRuns          = "import_runs"
)

// UsageKeys lists every counter reported on /stats.
var UsageKeys = []string{
	KeyMatchesRecorded,
	KeyInvitationsCreated,
	KeyChallengesCreated,
	KeyLeaderboardRequests,
	KeySlackCommands,
	KeyImportRuns,
}
