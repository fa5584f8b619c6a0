package tennis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singles(id string, winner, loser string) MatchResult {
	return MatchResult{
		MatchID:   id,
		ClubID:    "club1",
		MatchType: MatchTypeSingles,
		Sides: [2]Side{
			{Players: []Player{{ID: winner, Name: winner}}},
			{Players: []Player{{ID: loser, Name: loser}}},
		},
	}
}

func TestParseMatchType(t *testing.T) {
	mt, err := ParseMatchType(" Doubles ")
	require.NoError(t, err)
	assert.Equal(t, MatchTypeDoubles, mt)

	_, err = ParseMatchType("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseMatchType("mixed")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMatchResultValidate(t *testing.T) {
	t.Run("valid singles", func(t *testing.T) {
		m := singles("m1", "a", "b")
		require.NoError(t, m.Validate())
		assert.Equal(t, []Player{{ID: "a", Name: "a"}}, m.Winners())
		assert.Equal(t, []Player{{ID: "b", Name: "b"}}, m.Losers())
	})

	t.Run("losers follow winning side", func(t *testing.T) {
		m := singles("m1", "a", "b")
		m.WinningSide = 1
		assert.Equal(t, "b", m.Winners()[0].ID)
		assert.Equal(t, "a", m.Losers()[0].ID)
	})

	tests := []struct {
		name   string
		mutate func(m *MatchResult)
	}{
		{"missing match id", func(m *MatchResult) { m.MatchID = "" }},
		{"missing club id", func(m *MatchResult) { m.ClubID = "" }},
		{"missing match type", func(m *MatchResult) { m.MatchType = "" }},
		{"winning side out of range", func(m *MatchResult) { m.WinningSide = 2 }},
		{"doubles with singles roster", func(m *MatchResult) { m.MatchType = MatchTypeDoubles }},
		{"same player on both sides", func(m *MatchResult) { m.Sides[1].Players[0].ID = "a" }},
		{"empty player id", func(m *MatchResult) { m.Sides[0].Players[0].ID = "" }},
		{"negative set score", func(m *MatchResult) { m.Sets = []SetScore{{Side1: -1, Side2: 6}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := singles("m1", "a", "b")
			tt.mutate(&m)
			assert.ErrorIs(t, m.Validate(), ErrInvalidArgument)
		})
	}
}
