package challenge

import (
	"time"

	"github.com/mauv0809/courtside/internal/tennis"
)

// Status is the lifecycle state of a challenge.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusExpired  Status = "expired"
)

// Challenge is a direct match proposal from one player to another.
type Challenge struct {
	ID           string           `json:"id"`
	ClubID       string           `json:"club_id"`
	ChallengerID string           `json:"challenger_id"`
	ChallengedID string           `json:"challenged_id"`
	Status       Status           `json:"status"`
	MatchType    tennis.MatchType `json:"match_type"`
	ProposedDate *time.Time       `json:"proposed_date,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	RespondedAt  *time.Time       `json:"responded_at,omitempty"`
}
