package processor

import (
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetMatchesForProcessing() ([]tennis.MatchResult, error)
	GetMatch(matchID string) (*tennis.MatchResult, error)
	UpdateProcessingStatus(matchID string, from, to tennis.ProcessingStatus) error
	GetRatings(clubID string, playerIDs []string) (map[string]rating.PlayerRating, error)
	RateMatch(match *tennis.MatchResult, apply func(current map[string]rating.PlayerRating) ([]rating.PlayerRating, error)) error
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	SendResultNotification(match *tennis.MatchResult, changes []rating.Change, dryRun bool) (string, error)
}
