package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
)

func ListMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.GetMatches(r.PathValue("clubID"))
		if err != nil {
			writeError(w, "Failed to get matches", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// RecordMatchHandler stores a reported result and announces it on the
// match-recorded topic so the processor can rate it.
func RecordMatchHandler(store club.ClubStore, pubsubClient pubsub.PubSubClient, usage metrics.MetricsStore, clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordMatchRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid match", err)
			return
		}
		match, err := req.toMatchResult(r.PathValue("clubID"), clock.Now())
		if err != nil {
			writeError(w, "Invalid match", err)
			return
		}

		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have recorded match", "matchID", match.MatchID)
			writeJSON(w, http.StatusOK, match)
			return
		}
		if err := store.RecordMatch(match); err != nil {
			writeError(w, "Failed to record match", err)
			return
		}
		usage.Increment(metrics.KeyMatchesRecorded)

		if err := pubsubClient.SendMessage(pubsub.EventMatchRecorded, match); err != nil {
			// The match stays NEW and is picked up by the next /process run.
			log.Error("Failed to publish recorded match", "matchID", match.MatchID, "error", err)
		}
		writeJSON(w, http.StatusCreated, match)
	}
}
