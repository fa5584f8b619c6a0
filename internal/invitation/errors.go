package invitation

import "errors"

var (
	// ErrCannotRespond is returned when a user may not join the invitation.
	ErrCannotRespond = errors.New("user cannot respond to invitation")
	// ErrNotCreator is returned when someone other than the creator cancels.
	ErrNotCreator = errors.New("only the creator can cancel an invitation")
	// ErrNotActive is returned for transitions out of a terminal state.
	ErrNotActive = errors.New("invitation is not active")
)
