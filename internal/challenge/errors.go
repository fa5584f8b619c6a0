package challenge

import "errors"

var (
	// ErrCannotChallenge is returned when a challenge targets oneself or an
	// opponent already pending from the same challenger.
	ErrCannotChallenge = errors.New("player cannot be challenged")
	// ErrNotChallenged is returned when someone other than the challenged
	// player answers a challenge.
	ErrNotChallenged = errors.New("only the challenged player can respond")
	// ErrNotPending is returned when answering a challenge that was already
	// answered or has expired.
	ErrNotPending = errors.New("challenge is not pending")
)
