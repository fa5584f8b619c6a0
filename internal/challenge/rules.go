package challenge

import (
	"fmt"
	"time"

	"github.com/mauv0809/courtside/internal/tennis"
)

// PendingSet holds the ids of players a challenger already has a pending
// challenge against.
type PendingSet map[string]struct{}

// NewPendingSet builds a PendingSet from opponent ids.
func NewPendingSet(ids ...string) PendingSet {
	set := make(PendingSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id has a pending challenge in the set.
func (p PendingSet) Has(id string) bool {
	_, ok := p[id]
	return ok
}

// CanChallenge reports whether challengerID may challenge candidateID.
// Nobody can challenge themselves, and a candidate with a pending challenge
// from the same challenger cannot be challenged again.
func CanChallenge(challengerID, candidateID string, pending PendingSet) (bool, error) {
	if challengerID == "" || candidateID == "" {
		return false, fmt.Errorf("%w: challenger and candidate ids are required", tennis.ErrInvalidArgument)
	}
	if challengerID == candidateID {
		return false, nil
	}
	return !pending.Has(candidateID), nil
}

// PendingOpponents collects the opponents challengerID has pending
// challenges against.
func PendingOpponents(challengerID string, challenges []Challenge) PendingSet {
	set := NewPendingSet()
	for _, c := range challenges {
		if c.ChallengerID == challengerID && c.Status == StatusPending {
			set[c.ChallengedID] = struct{}{}
		}
	}
	return set
}

// EligibleOpponents filters candidates down to the ones challengerID may
// challenge, keeping their order and dropping duplicates.
func EligibleOpponents(challengerID string, candidates []string, pending PendingSet) []string {
	eligible := []string{}
	seen := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		if seen[id] {
			continue
		}
		seen[id] = true
		ok, err := CanChallenge(challengerID, id, pending)
		if err != nil || !ok {
			continue
		}
		eligible = append(eligible, id)
	}
	return eligible
}

func respond(c *Challenge, userID string, status Status, now time.Time) (*Challenge, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: challenge is nil", tennis.ErrInvalidArgument)
	}
	if userID != c.ChallengedID {
		return nil, fmt.Errorf("%w: user %s on challenge %s", ErrNotChallenged, userID, c.ID)
	}
	if c.Status != StatusPending {
		return nil, fmt.Errorf("%w: challenge %s is %s", ErrNotPending, c.ID, c.Status)
	}
	next := *c
	next.Status = status
	next.RespondedAt = &now
	return &next, nil
}

// Accept moves a pending challenge to accepted.
func Accept(c *Challenge, userID string, now time.Time) (*Challenge, error) {
	return respond(c, userID, StatusAccepted, now)
}

// Decline moves a pending challenge to declined.
func Decline(c *Challenge, userID string, now time.Time) (*Challenge, error) {
	return respond(c, userID, StatusDeclined, now)
}

// Expire moves a pending challenge older than ttl to expired. It returns
// false when the challenge is left as it was.
func Expire(c *Challenge, now time.Time, ttl time.Duration) (*Challenge, bool) {
	if c.Status != StatusPending || now.Before(c.CreatedAt.Add(ttl)) {
		return c, false
	}
	next := *c
	next.Status = StatusExpired
	return &next, true
}
