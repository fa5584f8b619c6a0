package handlers

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/ranking"
)

// LeaderboardHandler ranks a club's members on their recorded matches.
func LeaderboardHandler(store club.ClubStore, aggregator *ranking.Aggregator, m metrics.Metrics, usage metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("clubID")
		entries, err := buildLeaderboard(store, aggregator, clubID)
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		m.IncLeaderboardBuilds()
		usage.Increment(metrics.KeyLeaderboardRequests)
		writeJSON(w, http.StatusOK, entries)
	}
}

// RatingsHandler serves the club's rating table.
func RatingsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.GetRatingLeaderboard(r.PathValue("clubID"))
		if err != nil {
			writeError(w, "Failed to get ratings", err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func buildLeaderboard(store club.ClubStore, aggregator *ranking.Aggregator, clubID string) ([]ranking.Entry, error) {
	matches, err := store.GetMatches(clubID)
	if err != nil {
		return nil, err
	}
	return aggregator.BuildLeaderboard(matches, clubID)
}
