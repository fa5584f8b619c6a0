package playtomic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/tennis"
)

func strPtr(s string) *string { return &s }

func setupImporter(t *testing.T, matches map[string]Match) (*Importer, *MockClient, *club.MockStore, *metrics.Mock) {
	t.Helper()

	client := NewMockClient()
	client.GetMatchesFunc = func(params *SearchMatchesParams) ([]MatchSummary, error) {
		summaries := make([]MatchSummary, 0, len(matches))
		for id, m := range matches {
			summaries = append(summaries, MatchSummary{MatchID: id, OwnerID: strPtr(m.OwnerID)})
		}
		return summaries, nil
	}
	client.GetSpecificMatchFunc = func(matchID string) (Match, error) {
		m, ok := matches[matchID]
		if !ok {
			return Match{}, errors.New("not found")
		}
		return m, nil
	}

	store := club.NewMock()
	store.GetMembersFunc = func(clubID string) ([]club.Member, error) {
		return []club.Member{
			{PlayerID: "p1", Name: "Alice"},
			{PlayerID: "p2", Name: "Bob"},
			{PlayerID: "p3", Name: "Carol"},
		}, nil
	}

	m := metrics.NewMock()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC))
	return NewImporter(client, store, m, "tenant-1", clock), client, store, m
}

func TestImport(t *testing.T) {
	clubMatch := finishedMatch("club", team("a", TeamResultWon, "p1"), team("b", "", "p2"))
	outsider := finishedMatch("outsider", team("a", TeamResultWon, "p1"), team("b", "", "x9"))
	unfinished := finishedMatch("unfinished", team("a", "", "p2"), team("b", "", "p3"))
	unfinished.GameStatus = GameStatusPending
	foreignOwner := finishedMatch("foreign", team("a", TeamResultWon, "x1"), team("b", "", "p3"))

	importer, client, store, m := setupImporter(t, map[string]Match{
		"club":       clubMatch,
		"outsider":   outsider,
		"unfinished": unfinished,
		"foreign":    foreignOwner,
	})

	summary, err := importer.Import(context.Background(), "club-1", 3, false)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Fetched: 4, Imported: 1, Skipped: 3}, summary)
	assert.Equal(t, 1, m.ImportRuns())

	require.Len(t, client.GetMatchesCalls, 1)
	params := client.GetMatchesCalls[0]
	assert.Equal(t, SportTennis, params.SportID)
	assert.Equal(t, []string{"tenant-1"}, params.TenantIDs)
	assert.Equal(t, "2025-07-07T00:00:00", params.FromStartDate)
	assert.NotContains(t, client.GetSpecificMatchCalls, "foreign", "matches owned by outsiders are not fetched")

	require.Len(t, store.RecordMatchCalls, 1)
	recorded := store.RecordMatchCalls[0]
	assert.Equal(t, "club", recorded.MatchID)
	assert.Equal(t, "club-1", recorded.ClubID)
	assert.Equal(t, tennis.SourcePlaytomic, recorded.Source)
}

func TestImport_DryRun(t *testing.T) {
	importer, _, store, _ := setupImporter(t, map[string]Match{
		"club": finishedMatch("club", team("a", TeamResultWon, "p1"), team("b", "", "p2")),
	})

	summary, err := importer.Import(context.Background(), "club-1", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Empty(t, store.RecordMatchCalls)
}

func TestImport_RecordFailureIsSkipped(t *testing.T) {
	importer, _, store, _ := setupImporter(t, map[string]Match{
		"club": finishedMatch("club", team("a", TeamResultWon, "p1"), team("b", "", "p2")),
	})
	store.RecordMatchFunc = func(match *tennis.MatchResult) error {
		return errors.New("disk full")
	}

	summary, err := importer.Import(context.Background(), "club-1", 0, false)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Fetched: 1, Imported: 0, Skipped: 1}, summary)
}

func TestImport_Errors(t *testing.T) {
	importer, client, store, _ := setupImporter(t, nil)

	_, err := importer.Import(context.Background(), "", 0, false)
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)

	store.GetMembersFunc = func(clubID string) ([]club.Member, error) {
		return nil, tennis.ErrNotFound
	}
	_, err = importer.Import(context.Background(), "club-1", 0, false)
	assert.ErrorIs(t, err, tennis.ErrNotFound)

	store.GetMembersFunc = nil
	client.GetMatchesFunc = func(params *SearchMatchesParams) ([]MatchSummary, error) {
		return nil, errors.New("timeout")
	}
	_, err = importer.Import(context.Background(), "club-1", 0, false)
	assert.ErrorContains(t, err, "timeout")

	unconfigured := NewImporter(client, store, metrics.NewMock(), "", clockwork.NewFakeClock())
	_, err = unconfigured.Import(context.Background(), "club-1", 0, false)
	assert.ErrorIs(t, err, tennis.ErrInvalidArgument)
}
