package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/tennis"
)

// CreateInvitationHandler opens an invitation on behalf of a club member.
func CreateInvitationHandler(clubs club.ClubStore, store invitation.Store, usage metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("clubID")
		var req createInvitationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid invitation", err)
			return
		}
		matchType, err := tennis.ParseMatchType(req.MatchType)
		if err != nil {
			writeError(w, "Invalid invitation", err)
			return
		}
		if req.CreatorID != "" {
			ok, err := clubs.IsMember(clubID, req.CreatorID)
			if err != nil {
				writeError(w, "Failed to check membership", err)
				return
			}
			if !ok {
				writeError(w, "Invalid invitation", fmt.Errorf("%w: %s is not a member of club %s", tennis.ErrNotFound, req.CreatorID, clubID))
				return
			}
		}
		inv, err := store.Create(clubID, req.CreatorID, req.CreatorName, matchType, req.Message)
		if err != nil {
			writeError(w, "Failed to create invitation", err)
			return
		}
		usage.Increment(metrics.KeyInvitationsCreated)
		writeJSON(w, http.StatusCreated, inv)
	}
}

func ListInvitationsHandler(store invitation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invs, err := store.ListActive(r.PathValue("clubID"))
		if err != nil {
			writeError(w, "Failed to list invitations", err)
			return
		}
		writeJSON(w, http.StatusOK, invs)
	}
}

func GetInvitationHandler(store invitation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get invitation", err)
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}

// RespondInvitationHandler adds a player to an invitation. When the roster
// fills up the club is notified.
func RespondInvitationHandler(store invitation.Store, n notifier.Notifier, m metrics.Metrics, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req respondInvitationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid response", err)
			return
		}
		inv, err := store.Respond(r.PathValue("id"), req.UserID, req.UserName)
		if err != nil {
			writeError(w, "Failed to respond to invitation", err)
			return
		}

		if inv.State == invitation.StateMatched {
			m.IncInvitationsMatched()
			dryRun := IsDryRunFromContext(r)
			if _, err := n.SendInvitationMatched(inv, dryRun); err != nil {
				log.Error("Failed to send invitation matched notification", "invitationID", inv.ID, "error", err)
			}
			if !dryRun {
				if err := pubsubClient.SendMessage(pubsub.EventInvitationMatched, inv); err != nil {
					log.Error("Failed to publish matched invitation", "invitationID", inv.ID, "error", err)
				}
			}
		}
		writeJSON(w, http.StatusOK, inv)
	}
}

func CancelInvitationHandler(store invitation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cancelInvitationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid cancellation", err)
			return
		}
		inv, err := store.Cancel(r.PathValue("id"), req.UserID)
		if err != nil {
			writeError(w, "Failed to cancel invitation", err)
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}
