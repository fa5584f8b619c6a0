package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/ranking"
)

// LeaderboardCommandHandler answers /leaderboard. The command text may name
// a club; otherwise defaultClubID is used.
func LeaderboardCommandHandler(store club.ClubStore, aggregator *ranking.Aggregator, n notifier.Notifier, m metrics.Metrics, usage metrics.MetricsStore, defaultClubID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		clubID := strings.TrimSpace(r.FormValue("text"))
		if clubID == "" {
			clubID = defaultClubID
		}
		usage.Increment(metrics.KeySlackCommands)

		entries, err := buildLeaderboard(store, aggregator, clubID)
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "clubID", clubID, "error", err)
			return
		}
		m.IncLeaderboardBuilds()

		msg, err := n.FormatLeaderboardResponse(entries)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PlayerStatsCommandHandler answers /player-stats <name or id> for the default club.
func PlayerStatsCommandHandler(store club.ClubStore, aggregator *ranking.Aggregator, n notifier.Notifier, usage metrics.MetricsStore, clubID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		usage.Increment(metrics.KeySlackCommands)
		log.Info("Received player stats command", "player", query, "clubID", clubID)

		entries, err := buildLeaderboard(store, aggregator, clubID)
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "clubID", clubID, "error", err)
			return
		}

		var msg any
		entry, ok := ranking.FindEntry(entries, query)
		if !ok {
			log.Warn("Could not find player stats", "player", query)
			msg, err = n.FormatPlayerNotFoundResponse(query)
		} else {
			ratings, rerr := store.GetRatings(clubID, []string{entry.PlayerID})
			if rerr != nil {
				http.Error(w, "Failed to get rating", http.StatusInternalServerError)
				log.Error("Failed to get rating", "playerID", entry.PlayerID, "error", rerr)
				return
			}
			playerRating := ratings[entry.PlayerID]
			msg, err = n.FormatPlayerStatsResponse(entry, &playerRating)
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
