package playtomic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/courtside/internal/tennis"
)

func finishedMatch(id string, teams ...Team) Match {
	return Match{
		MatchID:       id,
		OwnerID:       teams[0].Players[0].UserID,
		Start:         time.Date(2025, 7, 9, 18, 0, 0, 0, time.UTC),
		GameStatus:    GameStatusPlayed,
		ResultsStatus: ResultsStatusConfirmed,
		Teams:         teams,
	}
}

func team(id, result string, players ...string) Team {
	t := Team{ID: id, TeamResult: result}
	for _, p := range players {
		t.Players = append(t.Players, Player{UserID: p, Name: "Player " + p})
	}
	return t
}

func TestToMatchResult_Singles(t *testing.T) {
	m := finishedMatch("m1", team("a", "", "p1"), team("b", TeamResultWon, "p2"))
	m.Results = []SetResult{
		{Name: "Set 1", Scores: map[string]int{"a": 4, "b": 6}},
		{Name: "Set 2", Scores: map[string]int{"a": 3, "b": 6}},
	}

	result, err := ToMatchResult(m, "club-1")
	require.NoError(t, err)
	assert.Equal(t, "club-1", result.ClubID)
	assert.Equal(t, tennis.MatchTypeSingles, result.MatchType)
	assert.Equal(t, tennis.SourcePlaytomic, result.Source)
	assert.Equal(t, tennis.StatusNew, result.ProcessingStatus)
	assert.Equal(t, 1, result.WinningSide)
	assert.Equal(t, []tennis.SetScore{{Side1: 4, Side2: 6}, {Side1: 3, Side2: 6}}, result.Sets)
	assert.Equal(t, "p2", result.Winners()[0].ID)
	assert.True(t, m.Start.Equal(result.PlayedAt))
}

func TestToMatchResult_DoublesWinnerFromSets(t *testing.T) {
	m := finishedMatch("m2", team("a", "", "p1", "p2"), team("b", "", "p3", "p4"))
	m.Results = []SetResult{
		{Scores: map[string]int{"a": 6, "b": 2}},
		{Scores: map[string]int{"a": 4, "b": 6}},
		{Scores: map[string]int{"a": 7, "b": 5}},
	}

	result, err := ToMatchResult(m, "club-1")
	require.NoError(t, err)
	assert.Equal(t, tennis.MatchTypeDoubles, result.MatchType)
	assert.Equal(t, 0, result.WinningSide)
	assert.Len(t, result.Participants(), 4)
}

func TestToMatchResult_Errors(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		wantErr error
	}{
		{
			name: "not played",
			match: func() Match {
				m := finishedMatch("m", team("a", TeamResultWon, "p1"), team("b", "", "p2"))
				m.GameStatus = GameStatusPending
				return m
			}(),
			wantErr: ErrNotFinished,
		},
		{
			name: "result not confirmed",
			match: func() Match {
				m := finishedMatch("m", team("a", TeamResultWon, "p1"), team("b", "", "p2"))
				m.ResultsStatus = ResultsStatusValidating
				return m
			}(),
			wantErr: ErrNotFinished,
		},
		{
			name:    "single team",
			match:   finishedMatch("m", team("a", TeamResultWon, "p1")),
			wantErr: tennis.ErrInvalidArgument,
		},
		{
			name:    "three players per team",
			match:   finishedMatch("m", team("a", TeamResultWon, "p1", "p2", "p3"), team("b", "", "p4", "p5", "p6")),
			wantErr: tennis.ErrInvalidArgument,
		},
		{
			name:    "uneven teams",
			match:   finishedMatch("m", team("a", TeamResultWon, "p1"), team("b", "", "p2", "p3")),
			wantErr: tennis.ErrInvalidArgument,
		},
		{
			name:    "no winner",
			match:   finishedMatch("m", team("a", "", "p1"), team("b", "", "p2")),
			wantErr: ErrNoWinner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToMatchResult(tt.match, "club-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
