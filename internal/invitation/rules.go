package invitation

import (
	"fmt"
	"slices"
	"time"

	"github.com/mauv0809/courtside/internal/tennis"
)

// RequiredPlayers is the roster size a match type needs.
func RequiredPlayers(matchType tennis.MatchType) (int, error) {
	switch matchType {
	case tennis.MatchTypeSingles:
		return 2, nil
	case tennis.MatchTypeDoubles:
		return 4, nil
	}
	return 0, fmt.Errorf("%w: unknown match type %q", tennis.ErrInvalidArgument, matchType)
}

// CurrentPlayers counts the creator plus every recorded response.
func CurrentPlayers(inv *Invitation) int {
	return len(inv.Responses) + 1
}

func validate(inv *Invitation) error {
	if inv == nil {
		return fmt.Errorf("%w: invitation is nil", tennis.ErrInvalidArgument)
	}
	if inv.CreatorID == "" {
		return fmt.Errorf("%w: invitation %s has no creator", tennis.ErrInvalidArgument, inv.ID)
	}
	return inv.MatchType.Validate()
}

// MatchStatus derives active or matched from the roster alone.
func MatchStatus(inv *Invitation) (State, error) {
	if err := validate(inv); err != nil {
		return "", err
	}
	required, err := RequiredPlayers(inv.MatchType)
	if err != nil {
		return "", err
	}
	if CurrentPlayers(inv) >= required {
		return StateMatched, nil
	}
	return StateActive, nil
}

// EffectiveState combines the stored lifecycle state with the roster status.
// A terminal state stays that way whatever the roster says.
func EffectiveState(inv *Invitation) (State, error) {
	status, err := MatchStatus(inv)
	if err != nil {
		return "", err
	}
	if inv.State.Terminal() {
		return inv.State, nil
	}
	return status, nil
}

func hasResponded(inv *Invitation, userID string) bool {
	return slices.ContainsFunc(inv.Responses, func(r Response) bool {
		return r.UserID == userID
	})
}

// CanRespond reports whether userID may join the invitation.
func CanRespond(inv *Invitation, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: user id is required", tennis.ErrInvalidArgument)
	}
	state, err := EffectiveState(inv)
	if err != nil {
		return false, err
	}
	if userID == inv.CreatorID || hasResponded(inv, userID) {
		return false, nil
	}
	if state != StateActive {
		return false, nil
	}
	required, _ := RequiredPlayers(inv.MatchType)
	return CurrentPlayers(inv) < required, nil
}

// Respond adds userID to the roster and moves the invitation to matched
// when the roster fills. The input is not modified.
func Respond(inv *Invitation, userID, userName string, now time.Time) (*Invitation, error) {
	ok, err := CanRespond(inv, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %s on invitation %s", ErrCannotRespond, userID, inv.ID)
	}

	next := *inv
	next.Responses = append(slices.Clone(inv.Responses), Response{
		UserID:      userID,
		UserName:    userName,
		Status:      ResponseAccepted,
		RespondedAt: now,
	})
	next.State, _ = MatchStatus(&next)
	return &next, nil
}

// Cancel moves an active invitation to cancelled. Only the creator may do so.
func Cancel(inv *Invitation, userID string) (*Invitation, error) {
	state, err := EffectiveState(inv)
	if err != nil {
		return nil, err
	}
	if userID != inv.CreatorID {
		return nil, fmt.Errorf("%w: user %s on invitation %s", ErrNotCreator, userID, inv.ID)
	}
	if state != StateActive {
		return nil, fmt.Errorf("%w: invitation %s is %s", ErrNotActive, inv.ID, state)
	}
	next := *inv
	next.State = StateCancelled
	return &next, nil
}

// Expire moves an active invitation past its expiry time to expired. It
// returns false when the invitation is left as it was.
func Expire(inv *Invitation, now time.Time) (*Invitation, bool, error) {
	state, err := EffectiveState(inv)
	if err != nil {
		return nil, false, err
	}
	if state != StateActive || inv.ExpiresAt.IsZero() || now.Before(inv.ExpiresAt) {
		return inv, false, nil
	}
	next := *inv
	next.State = StateExpired
	return &next, true, nil
}
