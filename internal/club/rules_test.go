package club

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mauv0809/courtside/internal/tennis"
)

func TestIsClubMatch(t *testing.T) {
	match := &tennis.MatchResult{
		MatchID:   "m1",
		ClubID:    "club-1",
		MatchType: tennis.MatchTypeDoubles,
		Sides: [2]tennis.Side{
			{Players: []tennis.Player{{ID: "a"}, {ID: "b"}}},
			{Players: []tennis.Player{{ID: "c"}, {ID: "d"}}},
		},
	}
	members := []Member{{PlayerID: "a"}, {PlayerID: "b"}, {PlayerID: "c"}, {PlayerID: "d"}, {PlayerID: "e"}}

	assert.True(t, IsClubMatch(match, members))
	assert.False(t, IsClubMatch(match, members[:3]), "one outsider excludes the match")
	assert.False(t, IsClubMatch(match, nil))
	assert.False(t, IsClubMatch(nil, members))
	assert.False(t, IsClubMatch(&tennis.MatchResult{}, members))
}
