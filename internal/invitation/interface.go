package invitation

import "github.com/mauv0809/courtside/internal/tennis"

// Store persists invitations and applies the transition rules to them.
type Store interface {
	// Create opens a new invitation with the creator as the first player.
	Create(clubID, creatorID, creatorName string, matchType tennis.MatchType, message string) (*Invitation, error)

	// Get returns an invitation with its responses.
	Get(id string) (*Invitation, error)

	// ListActive returns the club's invitations that can still be joined.
	ListActive(clubID string) ([]Invitation, error)

	// Respond adds a player to the invitation's roster.
	Respond(id, userID, userName string) (*Invitation, error)

	// Cancel cancels the invitation on behalf of its creator.
	Cancel(id, userID string) (*Invitation, error)

	// ExpireStale moves every active invitation past its expiry to expired
	// and returns how many were changed.
	ExpireStale() (int, error)
}
