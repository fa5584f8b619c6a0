package processor

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

var now = time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC)

type fixture struct {
	store    *club.MockStore
	notifier *notifier.Mock
	metrics  *metrics.Mock
	pubsub   *pubsub.MockPubSubClient
	p        *Processor
}

func newFixture(matches ...tennis.MatchResult) *fixture {
	f := &fixture{
		store:    club.NewMock(),
		notifier: notifier.NewMock(),
		metrics:  metrics.NewMock(),
		pubsub:   pubsub.NewMock(),
	}
	f.store.GetMatchesForProcessingFunc = func() ([]tennis.MatchResult, error) {
		return matches, nil
	}
	f.p = New(f.store, rating.NewEngine(0, 0), f.notifier, f.metrics, f.pubsub, clockwork.NewFakeClockAt(now))
	return f
}

func singles(id string, status tennis.ProcessingStatus, playedAt time.Time) tennis.MatchResult {
	return tennis.MatchResult{
		MatchID:   id,
		ClubID:    "club-1",
		MatchType: tennis.MatchTypeSingles,
		Sides: [2]tennis.Side{
			{Players: []tennis.Player{{ID: "a", Name: "Alice"}}},
			{Players: []tennis.Player{{ID: "b", Name: "Bob"}}},
		},
		WinningSide:      0,
		PlayedAt:         playedAt,
		ProcessingStatus: status,
	}
}

func statuses(store *club.MockStore) []tennis.ProcessingStatus {
	var out []tennis.ProcessingStatus
	for _, c := range store.UpdateProcessingStatusCalls {
		out = append(out, c.Status)
	}
	return out
}

func TestProcessor_ProcessMatches(t *testing.T) {
	t.Run("new recent match is rated, announced and published", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-time.Hour)))

		completed, err := f.p.ProcessMatches(false)
		require.NoError(t, err)
		assert.Equal(t, 1, completed)

		require.Len(t, f.store.RateMatchCalls, 1)
		call := f.store.RateMatchCalls[0]
		assert.Equal(t, "club-1", call.ClubID)
		assert.Equal(t, []rating.PlayerRating{
			{PlayerID: "a", Rating: 1220, GamesPlayed: 1},
			{PlayerID: "b", Rating: 1180, GamesPlayed: 1},
		}, call.Ratings)

		require.Len(t, f.notifier.SendResultNotificationCalls, 1)
		sent := f.notifier.SendResultNotificationCalls[0]
		assert.Equal(t, "m1", sent.Match.MatchID)
		assert.Equal(t, []rating.Change{
			{PlayerID: "a", Before: 1200, After: 1220, Delta: 20},
			{PlayerID: "b", Before: 1200, After: 1180, Delta: -20},
		}, sent.Changes)

		require.Len(t, f.pubsub.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventLeaderboardChanged, f.pubsub.SendMessageCalls[0].Topic)
		event, ok := f.pubsub.SendMessageCalls[0].Data.(pubsub.LeaderboardChanged)
		require.True(t, ok)
		assert.Equal(t, "club-1", event.ClubID)
		assert.Len(t, event.Changes, 2)

		assert.Equal(t, []tennis.ProcessingStatus{tennis.StatusNotified, tennis.StatusCompleted}, statuses(f.store))
		assert.Equal(t, tennis.StatusRated, f.store.UpdateProcessingStatusCalls[0].From)
		assert.Equal(t, 1, f.metrics.MatchesProcessed())
		assert.Len(t, f.metrics.ProcessingDurations(), 1)
	})

	t.Run("old match is rated without a notification", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-48*time.Hour)))

		_, err := f.p.ProcessMatches(false)
		require.NoError(t, err)

		assert.Len(t, f.store.RateMatchCalls, 1)
		assert.Empty(t, f.notifier.SendResultNotificationCalls)
		assert.Len(t, f.pubsub.SendMessageCalls, 1)
		assert.Equal(t, []tennis.ProcessingStatus{tennis.StatusNotified, tennis.StatusCompleted}, statuses(f.store))
	})

	t.Run("rated match resumes without rating again", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusRated, now.Add(-time.Hour)))

		_, err := f.p.ProcessMatches(false)
		require.NoError(t, err)

		assert.Empty(t, f.store.RateMatchCalls)
		require.Len(t, f.notifier.SendResultNotificationCalls, 1)
		assert.Empty(t, f.notifier.SendResultNotificationCalls[0].Changes)
		assert.Equal(t, []tennis.ProcessingStatus{tennis.StatusNotified, tennis.StatusCompleted}, statuses(f.store))
	})

	t.Run("existing ratings feed the engine", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-time.Hour)))
		f.store.GetRatingsFunc = func(clubID string, ids []string) (map[string]rating.PlayerRating, error) {
			return map[string]rating.PlayerRating{
				"a": {PlayerID: "a", Rating: 1400, GamesPlayed: 10},
				"b": {PlayerID: "b", Rating: 1200, GamesPlayed: 10},
			}, nil
		}

		_, err := f.p.ProcessMatches(false)
		require.NoError(t, err)

		require.Len(t, f.store.RateMatchCalls, 1)
		assert.Equal(t, 1408, f.store.RateMatchCalls[0].Ratings[0].Rating)
		assert.Equal(t, 1192, f.store.RateMatchCalls[0].Ratings[1].Rating)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-time.Hour)))

		completed, err := f.p.ProcessMatches(true)
		require.NoError(t, err)
		assert.Equal(t, 1, completed)

		assert.Empty(t, f.store.RateMatchCalls)
		assert.Empty(t, f.store.UpdateProcessingStatusCalls)
		assert.Empty(t, f.pubsub.SendMessageCalls)
		require.Len(t, f.notifier.SendResultNotificationCalls, 1)
		assert.True(t, f.notifier.SendResultNotificationCalls[0].DryRun)
	})

	t.Run("failed status update stops the match", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-time.Hour)))
		f.store.UpdateProcessingStatusFunc = func(matchID string, from, to tennis.ProcessingStatus) error {
			return errors.New("database is locked")
		}

		completed, err := f.p.ProcessMatches(false)
		require.NoError(t, err)
		assert.Equal(t, 0, completed)
		assert.Len(t, f.store.RateMatchCalls, 1)
		assert.Len(t, f.store.UpdateProcessingStatusCalls, 1)
		assert.Empty(t, f.pubsub.SendMessageCalls)
	})

	t.Run("rating failure leaves the match new", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-time.Hour)))
		f.store.RateMatchFunc = func(match *tennis.MatchResult) error {
			return errors.New("disk full")
		}

		completed, err := f.p.ProcessMatches(false)
		require.NoError(t, err)
		assert.Equal(t, 0, completed)
		assert.Empty(t, f.store.RateMatchCalls)
		assert.Empty(t, f.store.UpdateProcessingStatusCalls)
		assert.Empty(t, f.notifier.SendResultNotificationCalls)
	})

	t.Run("match rated by another run is left alone", func(t *testing.T) {
		f := newFixture(singles("m1", tennis.StatusNew, now.Add(-time.Hour)))
		f.store.RateMatchFunc = func(match *tennis.MatchResult) error {
			return fmt.Errorf("%w: match m1 is RATED, expected NEW", tennis.ErrStatusChanged)
		}

		completed, err := f.p.ProcessMatches(false)
		require.NoError(t, err)
		assert.Equal(t, 0, completed)
		assert.Empty(t, f.store.UpdateProcessingStatusCalls)
		assert.Empty(t, f.notifier.SendResultNotificationCalls)
		assert.Empty(t, f.pubsub.SendMessageCalls)
	})

	t.Run("match already in flight is skipped", func(t *testing.T) {
		f := newFixture()
		require.True(t, f.p.claim("m1"))

		match := singles("m1", tennis.StatusNew, now.Add(-time.Hour))
		assert.Equal(t, tennis.StatusNew, f.p.ProcessMatch(&match, false))
		assert.Empty(t, f.store.RateMatchCalls)

		f.p.release("m1")
		assert.Equal(t, tennis.StatusCompleted, f.p.ProcessMatch(&match, false))
		assert.Len(t, f.store.RateMatchCalls, 1)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		f := newFixture()
		f.store.GetMatchesForProcessingFunc = func() ([]tennis.MatchResult, error) {
			return nil, errors.New("boom")
		}

		_, err := f.p.ProcessMatches(false)
		assert.Error(t, err)
	})

	t.Run("no matches", func(t *testing.T) {
		f := newFixture()

		completed, err := f.p.ProcessMatches(false)
		require.NoError(t, err)
		assert.Equal(t, 0, completed)
	})
}

func TestProcessor_SameMatchTwice(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := club.New(db)
	_, err = store.UpsertClub("club-1", "Riverside")
	require.NoError(t, err)
	recorded := singles("m1", tennis.StatusNew, now.Add(-time.Hour))
	require.NoError(t, store.RecordMatch(&recorded))

	n := notifier.NewMock()
	ps := pubsub.NewMock()
	p := New(store, rating.NewEngine(0, 0), n, metrics.NewMock(), ps, clockwork.NewFakeClockAt(now))

	t.Run("sequential copies", func(t *testing.T) {
		first, err := store.GetMatch("m1")
		require.NoError(t, err)
		second, err := store.GetMatch("m1")
		require.NoError(t, err)

		assert.Equal(t, tennis.StatusCompleted, p.ProcessMatch(first, false))
		assert.Equal(t, tennis.StatusCompleted, p.ProcessMatch(second, false), "the stale copy picks up the stored status")

		ratings, err := store.GetRatings("club-1", []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, rating.PlayerRating{PlayerID: "a", Rating: 1220, GamesPlayed: 1}, ratings["a"])
		assert.Equal(t, rating.PlayerRating{PlayerID: "b", Rating: 1180, GamesPlayed: 1}, ratings["b"])
		assert.Len(t, n.SendResultNotificationCalls, 1)
		assert.Len(t, ps.SendMessageCalls, 1)
	})

	t.Run("concurrent copies", func(t *testing.T) {
		again := singles("m2", tennis.StatusNew, now.Add(-time.Hour))
		require.NoError(t, store.RecordMatch(&again))

		var wg sync.WaitGroup
		results := make([]tennis.ProcessingStatus, 4)
		for i := range results {
			stale, err := store.GetMatch("m2")
			require.NoError(t, err)
			wg.Add(1)
			go func(i int, m *tennis.MatchResult) {
				defer wg.Done()
				results[i] = p.ProcessMatch(m, false)
			}(i, stale)
		}
		wg.Wait()

		assert.Contains(t, results, tennis.StatusCompleted)
		ratings, err := store.GetRatings("club-1", []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, 2, ratings["a"].GamesPlayed)
		stored, err := store.GetMatch("m2")
		require.NoError(t, err)
		assert.Equal(t, tennis.StatusCompleted, stored.ProcessingStatus)
		assert.Len(t, n.SendResultNotificationCalls, 2, "one announcement per match")
	})
}
