package invitation

import (
	"time"

	"github.com/mauv0809/courtside/internal/tennis"
)

// State is the lifecycle state of an invitation.
type State string

const (
	StateActive    State = "active"
	StateMatched   State = "matched"
	StateCancelled State = "cancelled"
	StateExpired   State = "expired"
)

// Terminal reports whether no transition leaves the state.
func (s State) Terminal() bool {
	return s == StateMatched || s == StateCancelled || s == StateExpired
}

// ResponseStatus is the status a responding player is recorded with.
type ResponseStatus string

const (
	ResponseAccepted ResponseStatus = "accepted"
)

// Response is one player joining an invitation.
type Response struct {
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name"`
	Status      ResponseStatus `json:"status"`
	RespondedAt time.Time      `json:"responded_at"`
}

// Invitation is an open request for co-players to fill a match roster.
type Invitation struct {
	ID          string           `json:"id"`
	ClubID      string           `json:"club_id"`
	CreatorID   string           `json:"creator_id"`
	CreatorName string           `json:"creator_name"`
	MatchType   tennis.MatchType `json:"match_type"`
	Responses   []Response       `json:"responses"`
	State       State            `json:"state"`
	Message     string           `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Roster returns the user ids on the invitation, creator first.
func (inv *Invitation) Roster() []string {
	ids := make([]string, 0, len(inv.Responses)+1)
	ids = append(ids, inv.CreatorID)
	for _, r := range inv.Responses {
		ids = append(ids, r.UserID)
	}
	return ids
}
