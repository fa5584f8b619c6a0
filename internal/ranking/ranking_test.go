package ranking

import (
	"fmt"
	"testing"

	"github.com/mauv0809/courtside/internal/tennis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var matchSeq int

func singlesWin(club, winner, loser string) tennis.MatchResult {
	matchSeq++
	return tennis.MatchResult{
		MatchID:   fmt.Sprintf("m%d", matchSeq),
		ClubID:    club,
		MatchType: tennis.MatchTypeSingles,
		Sides: [2]tennis.Side{
			{Players: []tennis.Player{{ID: winner, Name: winner}}},
			{Players: []tennis.Player{{ID: loser, Name: loser}}},
		},
	}
}

func doublesWin(club string, winners, losers [2]string) tennis.MatchResult {
	matchSeq++
	return tennis.MatchResult{
		MatchID:   fmt.Sprintf("m%d", matchSeq),
		ClubID:    club,
		MatchType: tennis.MatchTypeDoubles,
		Sides: [2]tennis.Side{
			{Players: []tennis.Player{{ID: winners[0], Name: winners[0]}, {ID: winners[1], Name: winners[1]}}},
			{Players: []tennis.Player{{ID: losers[0], Name: losers[0]}, {ID: losers[1], Name: losers[1]}}},
		},
		WinningSide: 0,
	}
}

func TestBuildLeaderboard_Example(t *testing.T) {
	matches := []tennis.MatchResult{
		singlesWin("c1", "A", "B"),
		singlesWin("c1", "A", "B"),
		singlesWin("c1", "B", "A"),
	}

	entries, err := BuildLeaderboard(matches, "c1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{PlayerID: "A", PlayerName: "A", Wins: 2, Losses: 1, WinPercentage: 67, Points: 2, Ranking: 1, IsProvisional: true}, entries[0])
	assert.Equal(t, Entry{PlayerID: "B", PlayerName: "B", Wins: 1, Losses: 2, WinPercentage: 33, Points: 1, Ranking: 2, IsProvisional: true}, entries[1])
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	entries, err := BuildLeaderboard(nil, "c1")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	entries, err = BuildLeaderboard([]tennis.MatchResult{singlesWin("other", "A", "B")}, "c1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildLeaderboard_TalliesBalance(t *testing.T) {
	t.Run("singles", func(t *testing.T) {
		matches := []tennis.MatchResult{
			singlesWin("c1", "A", "B"),
			singlesWin("c1", "C", "A"),
			singlesWin("c1", "B", "C"),
			singlesWin("c1", "D", "A"),
		}
		entries, err := BuildLeaderboard(matches, "c1")
		require.NoError(t, err)
		total := 0
		for _, e := range entries {
			total += e.Wins + e.Losses
		}
		assert.Equal(t, 2*len(matches), total)
	})

	t.Run("doubles", func(t *testing.T) {
		matches := []tennis.MatchResult{
			doublesWin("c1", [2]string{"A", "B"}, [2]string{"C", "D"}),
			doublesWin("c1", [2]string{"A", "C"}, [2]string{"B", "D"}),
			doublesWin("c1", [2]string{"B", "D"}, [2]string{"A", "C"}),
		}
		entries, err := BuildLeaderboard(matches, "c1")
		require.NoError(t, err)
		total := 0
		for _, e := range entries {
			total += e.Wins + e.Losses
		}
		assert.Equal(t, 2*len(matches)*2, total)
	})
}

func TestBuildLeaderboard_Idempotent(t *testing.T) {
	matches := []tennis.MatchResult{
		singlesWin("c1", "A", "B"),
		singlesWin("c1", "C", "D"),
		singlesWin("c1", "B", "C"),
	}
	first, err := BuildLeaderboard(matches, "c1")
	require.NoError(t, err)
	second, err := BuildLeaderboard(matches, "c1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildLeaderboard_TieBreaks(t *testing.T) {
	// Bob and Cat are level on points and percentage and fall back to name.
	matches := []tennis.MatchResult{
		singlesWin("c1", "Zed", "Bob"),
		singlesWin("c1", "Amy", "Cat"),
		singlesWin("c1", "Bob", "Amy"),
		singlesWin("c1", "Cat", "Zed"),
		singlesWin("c1", "Zed", "Amy"),
	}
	entries, err := BuildLeaderboard(matches, "c1")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.PlayerName)
	}
	// Zed 2-1, Bob 1-1, Cat 1-1, Amy 1-2
	assert.Equal(t, []string{"Zed", "Bob", "Cat", "Amy"}, names)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Ranking)
	}
}

func TestAggregator_Scoring(t *testing.T) {
	agg := NewAggregator(Scoring{WinPoints: 3, LossPoints: 1})
	matches := []tennis.MatchResult{
		singlesWin("c1", "A", "B"),
		singlesWin("c1", "B", "A"),
		singlesWin("c1", "B", "C"),
	}
	entries, err := agg.BuildLeaderboard(matches, "c1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "B", entries[0].PlayerID)
	assert.Equal(t, 5, entries[0].Points) // 2*3 - 1*1
	assert.Equal(t, 2, entries[1].Points) // A: 3 - 1
	assert.Equal(t, -1, entries[2].Points)
}

func TestBuildLeaderboard_Provisional(t *testing.T) {
	var matches []tennis.MatchResult
	for i := 0; i < 5; i++ {
		matches = append(matches, singlesWin("c1", "A", fmt.Sprintf("opp%d", i)))
	}
	entries, err := BuildLeaderboard(matches, "c1")
	require.NoError(t, err)
	require.Equal(t, "A", entries[0].PlayerID)
	assert.False(t, entries[0].IsProvisional)
	assert.Equal(t, 100, entries[0].WinPercentage)
	assert.True(t, entries[1].IsProvisional)
	assert.Equal(t, 0, entries[1].WinPercentage)
}

func TestBuildLeaderboard_InvalidInput(t *testing.T) {
	_, err := BuildLeaderboard(nil, "")
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)

	bad := singlesWin("c1", "A", "B")
	bad.MatchType = ""
	_, err = BuildLeaderboard([]tennis.MatchResult{bad}, "c1")
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)
}

func TestFindEntry(t *testing.T) {
	entries := []Entry{{PlayerName: "Morten Voss"}, {PlayerName: "Anna Berg"}}
	e, ok := FindEntry(entries, "morten")
	require.True(t, ok)
	assert.Equal(t, "Morten Voss", e.PlayerName)

	_, ok = FindEntry(entries, "nobody")
	assert.False(t, ok)
	_, ok = FindEntry(entries, "  ")
	assert.False(t, ok)
}
