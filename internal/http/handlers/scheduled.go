package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/playtomic"
	"github.com/mauv0809/courtside/internal/tennis"
)

// MatchProcessor advances recorded matches through rating and notification.
type MatchProcessor interface {
	ProcessMatches(dryRun bool) (int, error)
	ProcessMatch(match *tennis.MatchResult, dryRun bool) tennis.ProcessingStatus
}

// MatchImporter pulls club matches from Playtomic.
type MatchImporter interface {
	Import(ctx context.Context, clubID string, days int, dryRun bool) (playtomic.ImportSummary, error)
}

func ProcessMatchesHandler(processor MatchProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		completed, err := processor.ProcessMatches(IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to process matches", err)
			return
		}
		writeJSON(w, http.StatusOK, processResponse{Completed: completed})
	}
}

// ImportMatchesHandler imports the last ?days=N days of Playtomic matches
// for ?club=ID.
func ImportMatchesHandler(importer MatchImporter, usage metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.URL.Query().Get("club")
		if clubID == "" {
			writeError(w, "Invalid import", fmt.Errorf("%w: club query parameter is required", tennis.ErrInvalidArgument))
			return
		}

		days := 0
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err == nil && parsed > 0 {
				days = parsed
				log.Info("Importing historical matches", "days", days)
			} else {
				log.Warn("Invalid 'days' parameter provided. Defaulting to 0.", "days_param", daysStr)
			}
		}

		summary, err := importer.Import(r.Context(), clubID, days, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to import matches", err)
			return
		}
		usage.Increment(metrics.KeyImportRuns)
		writeJSON(w, http.StatusOK, summary)
	}
}
