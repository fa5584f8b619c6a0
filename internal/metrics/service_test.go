package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchesProcessed()
	s.IncMatchesProcessed()
	s.IncInvitationsMatched()
	s.IncChallengesCreated()
	s.IncLeaderboardBuilds()
	s.IncImportRuns()
	s.IncSlackNotifSent()
	s.IncSlackNotifFailed()
	s.ObserveProcessingDuration(0.02)
	s.SetStartupTime(1.5)

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "courtside_matches_processed_total 2")
	assert.Contains(t, body, "courtside_invitations_matched_total 1")
	assert.Contains(t, body, "courtside_challenges_created_total 1")
	assert.Contains(t, body, "courtside_leaderboard_builds_total 1")
	assert.Contains(t, body, "courtside_startup_duration_seconds 1.5")
	assert.Contains(t, body, "courtside_match_processing_duration_seconds_count 1")
}
