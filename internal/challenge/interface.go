package challenge

import (
	"time"

	"github.com/mauv0809/courtside/internal/tennis"
)

// Store persists challenges and applies the eligibility rule on creation.
type Store interface {
	Create(clubID, challengerID, challengedID string, matchType tennis.MatchType, proposedDate *time.Time) (*Challenge, error)
	Get(id string) (*Challenge, error)
	ListPendingByChallenger(challengerID string) ([]Challenge, error)
	// Respond accepts or declines a challenge on behalf of the challenged player.
	Respond(id, userID string, accept bool) (*Challenge, error)
	ExpireStale() (int, error)
}
