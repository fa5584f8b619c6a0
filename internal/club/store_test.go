package club_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func singlesMatch(id, clubID, winner, loser string, playedAt time.Time) *tennis.MatchResult {
	return &tennis.MatchResult{
		MatchID:   id,
		ClubID:    clubID,
		MatchType: tennis.MatchTypeSingles,
		Sides: [2]tennis.Side{
			{Players: []tennis.Player{{ID: winner, Name: winner + " name"}}},
			{Players: []tennis.Player{{ID: loser, Name: loser + " name"}}},
		},
		WinningSide: 0,
		Sets:        []tennis.SetScore{{Side1: 6, Side2: 3}, {Side1: 7, Side2: 5}},
		PlayedAt:    playedAt,
	}
}

func TestUpsertClub(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	c, err := store.UpsertClub("club-1", "Riverside TC")
	require.NoError(t, err)
	assert.Equal(t, "Riverside TC", c.Name)

	c, err = store.UpsertClub("club-1", "Riverside Tennis Club")
	require.NoError(t, err)
	assert.Equal(t, "Riverside Tennis Club", c.Name)

	c, err = store.UpsertClub("club-2", "")
	require.NoError(t, err)
	assert.Equal(t, "club-2", c.Name)

	_, err = store.UpsertClub(" ", "x")
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)
}

func TestMembers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)

	require.NoError(t, store.AddMember("club-1", tennis.Player{ID: "p2", Name: "Bob"}))
	require.NoError(t, store.AddMember("club-1", tennis.Player{ID: "p1", Name: "Alice"}))
	require.NoError(t, store.AddMember("club-1", tennis.Player{ID: "p1", Name: "Alice"}), "adding twice is a no-op")

	members, err := store.GetMembers("club-1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice", members[0].Name)
	assert.Equal(t, "Bob", members[1].Name)

	ok, err := store.IsMember("club-1", "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsMember("club-1", "p3")
	require.NoError(t, err)
	assert.False(t, ok)

	err = store.AddMember("missing", tennis.Player{ID: "p1", Name: "Alice"})
	assert.ErrorIs(t, err, tennis.ErrNotFound)

	err = store.AddMember("club-1", tennis.Player{Name: "Nobody"})
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)
}

func TestRecordMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)

	playedAt := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)
	match := singlesMatch("m1", "club-1", "p1", "p2", playedAt)
	require.NoError(t, store.RecordMatch(match))
	assert.Equal(t, tennis.StatusNew, match.ProcessingStatus)
	assert.Equal(t, tennis.SourceApp, match.Source)

	matches, err := store.GetMatches("club-1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, "m1", got.MatchID)
	assert.Equal(t, tennis.MatchTypeSingles, got.MatchType)
	assert.Equal(t, match.Sides, got.Sides)
	assert.Equal(t, match.Sets, got.Sets)
	assert.True(t, playedAt.Equal(got.PlayedAt))

	single, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, got, *single)

	_, err = store.GetMatch("missing")
	assert.ErrorIs(t, err, tennis.ErrNotFound)

	// Re-recording keeps the processing status.
	require.NoError(t, store.UpdateProcessingStatus("m1", tennis.StatusNew, tennis.StatusRated))
	match.Sets = []tennis.SetScore{{Side1: 6, Side2: 0}}
	match.ProcessingStatus = tennis.StatusNew
	require.NoError(t, store.RecordMatch(match))

	matches, err = store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, tennis.StatusRated, matches[0].ProcessingStatus)
	assert.Equal(t, []tennis.SetScore{{Side1: 6, Side2: 0}}, matches[0].Sets)
}

func TestRecordMatch_Invalid(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.RecordMatch(singlesMatch("m1", "missing", "p1", "p2", time.Now()))
	assert.ErrorIs(t, err, tennis.ErrNotFound)

	_, err = store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)

	err = store.RecordMatch(singlesMatch("m1", "club-1", "p1", "p1", time.Now()))
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)

	err = store.RecordMatch(nil)
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)
}

func TestGetMatchesForProcessing(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)

	base := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordMatch(singlesMatch("late", "club-1", "p1", "p2", base.Add(time.Hour))))
	require.NoError(t, store.RecordMatch(singlesMatch("early", "club-1", "p2", "p1", base)))
	require.NoError(t, store.RecordMatch(singlesMatch("done", "club-1", "p2", "p1", base.Add(-time.Hour))))
	require.NoError(t, store.UpdateProcessingStatus("done", tennis.StatusNew, tennis.StatusCompleted))

	matches, err := store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "early", matches[0].MatchID)
	assert.Equal(t, "late", matches[1].MatchID)

	err = store.UpdateProcessingStatus("unknown", tennis.StatusNew, tennis.StatusRated)
	assert.ErrorIs(t, err, tennis.ErrNotFound)

	err = store.UpdateProcessingStatus("done", tennis.StatusNew, tennis.StatusRated)
	assert.ErrorIs(t, err, tennis.ErrStatusChanged)
	single, err := store.GetMatch("done")
	require.NoError(t, err)
	assert.Equal(t, tennis.StatusCompleted, single.ProcessingStatus)
}

func TestRatings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)
	require.NoError(t, store.AddMember("club-1", tennis.Player{ID: "p1", Name: "Alice"}))
	require.NoError(t, store.AddMember("club-1", tennis.Player{ID: "p2", Name: "Bob"}))

	ratings, err := store.GetRatings("club-1", []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, rating.NewPlayerRating("p1"), ratings["p1"])
	assert.Equal(t, rating.NewPlayerRating("p2"), ratings["p2"])

	played := singlesMatch("m1", "club-1", "p1", "p2", time.Now())
	played.Sides[0].Players[0].Name = "Alice"
	played.Sides[1].Players[0].Name = "Bob"
	require.NoError(t, store.RecordMatch(played))
	require.NoError(t, store.RateMatch(played, fixedRatings(
		rating.PlayerRating{PlayerID: "p1", Rating: 1420, GamesPlayed: 6},
		rating.PlayerRating{PlayerID: "p2", Rating: 1180, GamesPlayed: 2},
	)))

	ratings, err = store.GetRatings("club-1", []string{"p1", "p3"})
	require.NoError(t, err)
	assert.Equal(t, 1420, ratings["p1"].Rating)
	assert.Equal(t, 6, ratings["p1"].GamesPlayed)
	assert.Equal(t, rating.InitialRating, ratings["p3"].Rating)

	other, err := store.GetRatings("club-2", []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, rating.InitialRating, other["p1"].Rating, "ratings are per club")

	leaderboard, err := store.GetRatingLeaderboard("club-1")
	require.NoError(t, err)
	require.Len(t, leaderboard, 2)
	assert.Equal(t, club.RatingEntry{
		Ranking: 1, PlayerID: "p1", Name: "Alice", Rating: 1420, GamesPlayed: 6,
		Tier: "Expert", TierColor: "#9C27B0", IsProvisional: false,
	}, leaderboard[0])
	assert.Equal(t, 2, leaderboard[1].Ranking)
	assert.Equal(t, "Intermediate", leaderboard[1].Tier)
	assert.True(t, leaderboard[1].IsProvisional)

}

func fixedRatings(ratings ...rating.PlayerRating) func(map[string]rating.PlayerRating) ([]rating.PlayerRating, error) {
	return func(map[string]rating.PlayerRating) ([]rating.PlayerRating, error) {
		return ratings, nil
	}
}

func TestRateMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)
	require.NoError(t, store.RecordMatch(singlesMatch("m1", "club-1", "p1", "p2", time.Now())))

	engine := rating.NewEngine(0, 0)
	apply := func(current map[string]rating.PlayerRating) ([]rating.PlayerRating, error) {
		w, l, err := engine.Apply(current["p1"], current["p2"])
		return []rating.PlayerRating{w, l}, err
	}

	t.Run("two copies of a new match are rated once", func(t *testing.T) {
		first, err := store.GetMatch("m1")
		require.NoError(t, err)
		second, err := store.GetMatch("m1")
		require.NoError(t, err)

		require.NoError(t, store.RateMatch(first, apply))
		err = store.RateMatch(second, apply)
		assert.ErrorIs(t, err, tennis.ErrStatusChanged)

		ratings, err := store.GetRatings("club-1", []string{"p1", "p2"})
		require.NoError(t, err)
		assert.Equal(t, rating.PlayerRating{PlayerID: "p1", Rating: 1220, GamesPlayed: 1}, ratings["p1"])
		assert.Equal(t, rating.PlayerRating{PlayerID: "p2", Rating: 1180, GamesPlayed: 1}, ratings["p2"])

		stored, err := store.GetMatch("m1")
		require.NoError(t, err)
		assert.Equal(t, tennis.StatusRated, stored.ProcessingStatus)
	})

	t.Run("failed rating write keeps the match new", func(t *testing.T) {
		require.NoError(t, store.RecordMatch(singlesMatch("m2", "club-1", "p1", "p2", time.Now())))

		err := store.RateMatch(singlesMatch("m2", "club-1", "p1", "p2", time.Now()), fixedRatings(rating.PlayerRating{PlayerID: ""}))
		assert.ErrorIs(t, err, tennis.ErrInvalidArgument)

		stored, err := store.GetMatch("m2")
		require.NoError(t, err)
		assert.Equal(t, tennis.StatusNew, stored.ProcessingStatus)
		ratings, err := store.GetRatings("club-1", []string{"p1"})
		require.NoError(t, err)
		assert.Equal(t, 1, ratings["p1"].GamesPlayed)
	})

	t.Run("unknown match", func(t *testing.T) {
		err := store.RateMatch(singlesMatch("missing", "club-1", "p1", "p2", time.Now()), apply)
		assert.ErrorIs(t, err, tennis.ErrNotFound)
	})
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)
	require.NoError(t, store.RecordMatch(singlesMatch("m1", "club-1", "p1", "p2", time.Now())))

	store.Clear()

	matches, err := store.GetMatches("club-1")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
