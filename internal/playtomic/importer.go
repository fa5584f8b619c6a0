package playtomic

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/tennis"
)

// Importer pulls finished tennis matches for a tenant and records the ones
// played entirely between club members.
type Importer struct {
	client   PlaytomicClient
	store    MatchStore
	metrics  metrics.Metrics
	tenantID string
	clock    clockwork.Clock
}

// NewImporter creates an importer for the given Playtomic tenant.
func NewImporter(client PlaytomicClient, store MatchStore, metrics metrics.Metrics, tenantID string, clock clockwork.Clock) *Importer {
	return &Importer{
		client:   client,
		store:    store,
		metrics:  metrics,
		tenantID: tenantID,
		clock:    clock,
	}
}

// Import fetches matches started within the last days and records the club
// matches among them. Re-importing a match never resets its processing state.
func (i *Importer) Import(ctx context.Context, clubID string, days int, dryRun bool) (ImportSummary, error) {
	if clubID == "" {
		return ImportSummary{}, fmt.Errorf("%w: club id is required", tennis.ErrInvalidArgument)
	}
	if i.tenantID == "" {
		return ImportSummary{}, fmt.Errorf("%w: playtomic tenant is not configured", tennis.ErrInvalidArgument)
	}
	if days < 0 {
		days = 0
	}
	i.metrics.IncImportRuns()

	members, err := i.store.GetMembers(clubID)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to load members of club %s: %w", clubID, err)
	}
	known := make(map[string]struct{}, len(members))
	for _, m := range members {
		known[m.PlayerID] = struct{}{}
	}

	startDate := i.clock.Now().UTC().AddDate(0, 0, -days)
	params := &SearchMatchesParams{
		SportID:       SportTennis,
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{i.tenantID},
		FromStartDate: startDate.Format(time.DateOnly) + "T00:00:00",
	}
	log.Info("Fetching matches from", "startDate", startDate, "club", clubID)
	summaries, err := i.client.GetMatches(ctx, params)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to fetch playtomic matches: %w", err)
	}

	var (
		results []*tennis.MatchResult
		mu      sync.Mutex
		wg      sync.WaitGroup
	)
	for _, summary := range summaries {
		if summary.OwnerID == nil {
			continue
		}
		if _, ok := known[*summary.OwnerID]; !ok {
			log.Debug("Skipping match with unknown owner", "matchID", summary.MatchID)
			continue
		}
		wg.Add(1)
		go func(matchID string) {
			defer wg.Done()
			result, err := i.fetchResult(ctx, matchID, clubID, members)
			if err != nil || result == nil {
				return
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(summary.MatchID)
	}
	wg.Wait()
	sort.Slice(results, func(a, b int) bool {
		if !results[a].PlayedAt.Equal(results[b].PlayedAt) {
			return results[a].PlayedAt.Before(results[b].PlayedAt)
		}
		return results[a].MatchID < results[b].MatchID
	})

	summary := ImportSummary{Fetched: len(summaries)}
	for _, result := range results {
		if dryRun {
			log.Info("[Dry Run] Would have recorded imported match", "matchID", result.MatchID)
			summary.Imported++
			continue
		}
		if err := i.store.RecordMatch(result); err != nil {
			log.Error("Failed to record imported match", "matchID", result.MatchID, "error", err)
			continue
		}
		summary.Imported++
	}
	summary.Skipped = summary.Fetched - summary.Imported
	log.Info("Match import finished", "club", clubID, "fetched", summary.Fetched, "imported", summary.Imported)
	return summary, nil
}

func (i *Importer) fetchResult(ctx context.Context, matchID, clubID string, members []club.Member) (*tennis.MatchResult, error) {
	match, err := i.client.GetSpecificMatch(ctx, matchID)
	if err != nil {
		log.Error("Error fetching specific match", "matchID", matchID, "error", err)
		return nil, err
	}
	result, err := ToMatchResult(match, clubID)
	if err != nil {
		if errors.Is(err, ErrNotFinished) {
			log.Debug("Skipping unfinished match", "matchID", matchID)
		} else {
			log.Warn("Skipping unmappable match", "matchID", matchID, "error", err)
		}
		return nil, err
	}
	if !club.IsClubMatch(result, members) {
		log.Debug("Skipping non-club match", "matchID", matchID)
		return nil, nil
	}
	return result, nil
}
