package processor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// New creates a new Processor.
func New(store Store, engine rating.Engine, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, clock clockwork.Clock) *Processor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Processor{
		store:    store,
		engine:   engine,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		clock:    clock,
		inFlight: make(map[string]struct{}),
	}
}

// ProcessMatches fetches matches that need processing and advances them through
// the state machine. It returns how many matches reached the completed state.
func (p *Processor) ProcessMatches(dryRun bool) (int, error) {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return 0, fmt.Errorf("failed to get matches for processing: %w", err)
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return 0, nil
	}

	log.Info("Found matches to process", "count", len(matches))
	completed := 0
	for i := range matches {
		if p.ProcessMatch(&matches[i], dryRun) == tennis.StatusCompleted {
			completed++
		}
	}
	log.Info("Match processing finished.", "completed", completed)
	return completed, nil
}

// ProcessMatch advances one match as far as it can go and returns the status
// it ended in. A match already being processed by another caller is skipped.
func (p *Processor) ProcessMatch(match *tennis.MatchResult, dryRun bool) tennis.ProcessingStatus {
	if !p.claim(match.MatchID) {
		log.Info("Match is already being processed", "matchID", match.MatchID)
		return match.ProcessingStatus
	}
	defer p.release(match.MatchID)

	start := p.clock.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(p.clock.Since(start).Seconds())
	}()

	// The copy may predate a run that finished while it waited.
	if stored, err := p.store.GetMatch(match.MatchID); err == nil {
		match.ProcessingStatus = stored.ProcessingStatus
	} else if !errors.Is(err, tennis.ErrNotFound) {
		log.Warn("Failed to reload match status", "error", err, "matchID", match.MatchID)
	}
	if match.ProcessingStatus == "" {
		match.ProcessingStatus = tennis.StatusNew
	}
	log.Info("Processing match", "matchID", match.MatchID, "clubID", match.ClubID, "initial_status", match.ProcessingStatus)

	var changes []rating.Change
	for {
		currentState := match.ProcessingStatus
		log.Debug("Evaluating match state", "matchID", match.MatchID, "status", currentState)

		switch currentState {
		case tennis.StatusNew:
			var err error
			changes, err = p.rate(match, dryRun)
			if errors.Is(err, tennis.ErrStatusChanged) {
				log.Info("Match was already rated by another run", "matchID", match.MatchID)
				return match.ProcessingStatus
			}
			if err != nil {
				log.Error("Failed to rate match", "error", err, "matchID", match.MatchID)
				return match.ProcessingStatus
			}
			match.ProcessingStatus = tennis.StatusRated

		case tennis.StatusRated:
			// Matches older than a day are rated without announcing them.
			if p.clock.Since(match.PlayedAt) < notifyWindow {
				log.Info("Sending result notification", "matchID", match.MatchID)
				if _, err := p.notifier.SendResultNotification(match, changes, dryRun); err != nil {
					log.Error("Failed to send result notification", "error", err, "matchID", match.MatchID)
				}
			} else {
				log.Debug("Match is too old to announce", "matchID", match.MatchID, "playedAt", match.PlayedAt)
			}
			p.updateStatus(match, tennis.StatusNotified, dryRun)

		case tennis.StatusNotified:
			event := pubsub.LeaderboardChanged{
				ClubID:    match.ClubID,
				MatchID:   match.MatchID,
				Changes:   changes,
				ChangedAt: p.clock.Now().UTC(),
			}
			if dryRun {
				log.Info("[Dry Run] Would publish leaderboard change", "clubID", match.ClubID, "matchID", match.MatchID)
			} else if err := p.pubsub.SendMessage(pubsub.EventLeaderboardChanged, event); err != nil {
				log.Error("Failed to publish leaderboard change", "error", err, "matchID", match.MatchID)
			}
			p.updateStatus(match, tennis.StatusCompleted, dryRun)

		case tennis.StatusCompleted:
			log.Debug("Match is complete. No further processing needed.", "matchID", match.MatchID)
			p.metrics.IncMatchesProcessed()
			return tennis.StatusCompleted

		default:
			log.Warn("Unknown processing status", "status", currentState, "matchID", match.MatchID)
			return currentState
		}

		// If the status hasn't changed, we're done with this match for now.
		if match.ProcessingStatus == currentState {
			log.Debug("Match state did not change. Finished processing for now.", "matchID", match.MatchID, "status", currentState)
			return currentState
		}
	}
}

func (p *Processor) claim(matchID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[matchID]; busy {
		return false
	}
	p.inFlight[matchID] = struct{}{}
	return true
}

func (p *Processor) release(matchID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, matchID)
}

// rate applies the match to the stored ratings of its participants and
// returns the resulting changes. Outside a dry run the new ratings and the
// move to RATED are written together, so a match is only ever rated once.
func (p *Processor) rate(match *tennis.MatchResult, dryRun bool) ([]rating.Change, error) {
	if err := match.Validate(); err != nil {
		return nil, err
	}

	if dryRun {
		ids := make([]string, 0, 4)
		for _, player := range match.Participants() {
			ids = append(ids, player.ID)
		}
		current, err := p.store.GetRatings(match.ClubID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load ratings: %w", err)
		}
		_, changes, err := p.apply(match, current)
		if err != nil {
			return nil, err
		}
		log.Info("[Dry Run] Would update ratings", "matchID", match.MatchID, "changes", changes)
		return changes, nil
	}

	var changes []rating.Change
	err := p.store.RateMatch(match, func(current map[string]rating.PlayerRating) ([]rating.PlayerRating, error) {
		after, c, err := p.apply(match, current)
		changes = c
		return after, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store ratings: %w", err)
	}
	log.Info("Updated ratings", "matchID", match.MatchID, "players", len(changes))
	return changes, nil
}

func (p *Processor) apply(match *tennis.MatchResult, current map[string]rating.PlayerRating) ([]rating.PlayerRating, []rating.Change, error) {
	lookup := func(players []tennis.Player) []rating.PlayerRating {
		out := make([]rating.PlayerRating, 0, len(players))
		for _, player := range players {
			r, ok := current[player.ID]
			if !ok {
				r = rating.NewPlayerRating(player.ID)
			}
			out = append(out, r)
		}
		return out
	}
	winnersBefore := lookup(match.Winners())
	losersBefore := lookup(match.Losers())

	winnersAfter, losersAfter, err := p.engine.ApplyTeams(winnersBefore, losersBefore)
	if err != nil {
		return nil, nil, err
	}

	before := append(append([]rating.PlayerRating{}, winnersBefore...), losersBefore...)
	after := append(append([]rating.PlayerRating{}, winnersAfter...), losersAfter...)
	return after, rating.Changes(before, after), nil
}

func (p *Processor) updateStatus(match *tennis.MatchResult, newStatus tennis.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update match status", "matchID", match.MatchID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(match.MatchID, match.ProcessingStatus, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "matchID", match.MatchID)
	} else {
		log.Debug("Successfully updated status", "matchID", match.MatchID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
