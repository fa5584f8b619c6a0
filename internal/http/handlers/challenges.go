package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/tennis"
)

// CreateChallengeHandler issues a challenge between two club members.
func CreateChallengeHandler(clubs club.ClubStore, store challenge.Store, n notifier.Notifier, m metrics.Metrics, usage metrics.MetricsStore, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("clubID")
		var req createChallengeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid challenge", err)
			return
		}
		matchType := tennis.MatchTypeSingles
		if req.MatchType != "" {
			parsed, err := tennis.ParseMatchType(req.MatchType)
			if err != nil {
				writeError(w, "Invalid challenge", err)
				return
			}
			matchType = parsed
		}
		for _, id := range []string{req.ChallengerID, req.ChallengedID} {
			if id == "" {
				continue
			}
			ok, err := clubs.IsMember(clubID, id)
			if err != nil {
				writeError(w, "Failed to check membership", err)
				return
			}
			if !ok {
				writeError(w, "Invalid challenge", fmt.Errorf("%w: %s is not a member of club %s", tennis.ErrNotFound, id, clubID))
				return
			}
		}

		c, err := store.Create(clubID, req.ChallengerID, req.ChallengedID, matchType, req.ProposedDate)
		if err != nil {
			writeError(w, "Failed to create challenge", err)
			return
		}
		m.IncChallengesCreated()
		usage.Increment(metrics.KeyChallengesCreated)

		dryRun := IsDryRunFromContext(r)
		if _, err := n.SendChallengeCreated(c, dryRun); err != nil {
			log.Error("Failed to send challenge notification", "challengeID", c.ID, "error", err)
		}
		if !dryRun {
			if err := pubsubClient.SendMessage(pubsub.EventChallengeCreated, c); err != nil {
				log.Error("Failed to publish challenge", "challengeID", c.ID, "error", err)
			}
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

// OpponentsHandler lists the members a player may challenge right now.
func OpponentsHandler(clubs club.ClubStore, store challenge.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("clubID")
		playerID := r.PathValue("playerID")

		members, err := clubs.GetMembers(clubID)
		if err != nil {
			writeError(w, "Failed to get members", err)
			return
		}
		names := make(map[string]string, len(members))
		candidates := make([]string, 0, len(members))
		for _, m := range members {
			names[m.PlayerID] = m.Name
			candidates = append(candidates, m.PlayerID)
		}
		if _, ok := names[playerID]; !ok {
			writeError(w, "Unknown player", fmt.Errorf("%w: %s is not a member of club %s", tennis.ErrNotFound, playerID, clubID))
			return
		}

		pending, err := store.ListPendingByChallenger(playerID)
		if err != nil {
			writeError(w, "Failed to get pending challenges", err)
			return
		}
		eligible := challenge.EligibleOpponents(playerID, candidates, challenge.PendingOpponents(playerID, pending))

		resp := opponentsResponse{PlayerID: playerID, Opponents: make([]playerDTO, 0, len(eligible))}
		for _, id := range eligible {
			resp.Opponents = append(resp.Opponents, playerDTO{ID: id, Name: names[id]})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func RespondChallengeHandler(store challenge.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req respondChallengeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid response", err)
			return
		}
		if req.Accept == nil {
			writeError(w, "Invalid response", fmt.Errorf("%w: accept is required", tennis.ErrInvalidArgument))
			return
		}
		c, err := store.Respond(r.PathValue("id"), req.UserID, *req.Accept)
		if err != nil {
			writeError(w, "Failed to respond to challenge", err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}
