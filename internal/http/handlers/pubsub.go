package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/tennis"
)

// MatchRecordedHandler handles push deliveries of the match-recorded topic.
// The payload is stored if it is new, then processed from its stored state.
func MatchRecordedHandler(store club.ClubStore, processor MatchProcessor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match recorded message", "body", string(bodyBytes))

		rawData, envelope, err := pubsub.DecodePush(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		var published tennis.MatchResult
		if err := pubsubClient.ProcessMessage(rawData, &published); err != nil {
			// Acknowledge so Pub/Sub does not redeliver a payload that can never decode.
			log.Error("Dropping undecodable match", "subscription", envelope.Subscription, "error", err)
			w.WriteHeader(http.StatusOK)
			return
		}

		match, err := store.GetMatch(published.MatchID)
		if errors.Is(err, tennis.ErrNotFound) {
			if err := store.RecordMatch(&published); err != nil {
				writeError(w, "Failed to record match", err)
				return
			}
			match = &published
		} else if err != nil {
			writeError(w, "Failed to load match", err)
			return
		}

		status := processor.ProcessMatch(match, IsDryRunFromContext(r))
		log.Info("Processed pushed match", "matchID", match.MatchID, "status", status)
		if status != tennis.StatusCompleted {
			// Non-2xx makes Pub/Sub redeliver; the stored state lets processing resume.
			http.Error(w, "Match processing incomplete", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
