package tennis

import (
	"fmt"
	"strings"
	"time"
)

// MatchType is the format of a tennis match.
type MatchType string

const (
	MatchTypeSingles MatchType = "singles"
	MatchTypeDoubles MatchType = "doubles"
)

// ParseMatchType accepts "singles" or "doubles" in any case.
func ParseMatchType(s string) (MatchType, error) {
	switch MatchType(strings.ToLower(strings.TrimSpace(s))) {
	case MatchTypeSingles:
		return MatchTypeSingles, nil
	case MatchTypeDoubles:
		return MatchTypeDoubles, nil
	}
	return "", fmt.Errorf("%w: unknown match type %q", ErrInvalidArgument, s)
}

// Validate reports whether the match type is one of the known formats.
func (m MatchType) Validate() error {
	_, err := ParseMatchType(string(m))
	return err
}

// PlayersPerSide returns 1 for singles and 2 for doubles.
func PlayersPerSide(m MatchType) (int, error) {
	switch m {
	case MatchTypeSingles:
		return 1, nil
	case MatchTypeDoubles:
		return 2, nil
	}
	return 0, fmt.Errorf("%w: unknown match type %q", ErrInvalidArgument, m)
}

// ProcessingStatus is the internal processing state of a recorded match.
type ProcessingStatus string

const (
	StatusNew       ProcessingStatus = "NEW"
	StatusRated     ProcessingStatus = "RATED"
	StatusNotified  ProcessingStatus = "NOTIFIED"
	StatusCompleted ProcessingStatus = "COMPLETED"
)

// Source tells where a match result came from.
type Source string

const (
	SourceApp       Source = "APP"
	SourcePlaytomic Source = "PLAYTOMIC"
)

// Player is a participant in a match.
type Player struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

// Side is one half of a match: one player in singles, two in doubles.
type Side struct {
	Players []Player `json:"players" msgpack:"players"`
}

// SetScore holds the games won by each side in one set.
type SetScore struct {
	Side1 int `json:"side1" msgpack:"side1"`
	Side2 int `json:"side2" msgpack:"side2"`
}

// MatchResult is an immutable record of a played match.
type MatchResult struct {
	MatchID          string           `json:"match_id" msgpack:"match_id"`
	ClubID           string           `json:"club_id" msgpack:"club_id"`
	MatchType        MatchType        `json:"match_type" msgpack:"match_type"`
	Sides            [2]Side          `json:"sides" msgpack:"sides"`
	WinningSide      int              `json:"winning_side" msgpack:"winning_side"`
	Sets             []SetScore       `json:"sets" msgpack:"sets"`
	PlayedAt         time.Time        `json:"played_at" msgpack:"played_at"`
	ProcessingStatus ProcessingStatus `json:"processing_status" msgpack:"processing_status"`
	Source           Source           `json:"source" msgpack:"source"`
}

// Winners returns the players on the winning side.
func (m *MatchResult) Winners() []Player {
	return m.Sides[m.WinningSide].Players
}

// Losers returns the players on the losing side.
func (m *MatchResult) Losers() []Player {
	return m.Sides[1-m.WinningSide].Players
}

// Participants returns every player in side order.
func (m *MatchResult) Participants() []Player {
	players := make([]Player, 0, len(m.Sides[0].Players)+len(m.Sides[1].Players))
	players = append(players, m.Sides[0].Players...)
	return append(players, m.Sides[1].Players...)
}

// Validate checks the structural invariants of a match result.
func (m *MatchResult) Validate() error {
	if m.MatchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidArgument)
	}
	if m.ClubID == "" {
		return fmt.Errorf("%w: club id is required for match %s", ErrInvalidArgument, m.MatchID)
	}
	perSide, err := PlayersPerSide(m.MatchType)
	if err != nil {
		return fmt.Errorf("match %s: %w", m.MatchID, err)
	}
	if m.WinningSide != 0 && m.WinningSide != 1 {
		return fmt.Errorf("%w: winning side must be 0 or 1, got %d in match %s", ErrInvalidArgument, m.WinningSide, m.MatchID)
	}
	seen := make(map[string]struct{}, perSide*2)
	for i, side := range m.Sides {
		if len(side.Players) != perSide {
			return fmt.Errorf("%w: side %d of %s match %s has %d players, want %d", ErrInvalidArgument, i, m.MatchType, m.MatchID, len(side.Players), perSide)
		}
		for _, p := range side.Players {
			if p.ID == "" {
				return fmt.Errorf("%w: empty player id in match %s", ErrInvalidArgument, m.MatchID)
			}
			if _, dup := seen[p.ID]; dup {
				return fmt.Errorf("%w: player %s appears twice in match %s", ErrInvalidArgument, p.ID, m.MatchID)
			}
			seen[p.ID] = struct{}{}
		}
	}
	for _, set := range m.Sets {
		if set.Side1 < 0 || set.Side2 < 0 {
			return fmt.Errorf("%w: negative set score in match %s", ErrInvalidArgument, m.MatchID)
		}
	}
	return nil
}
