package club

import (
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertClub(clubID, name string) (*Club, error)
	AddMember(clubID string, player tennis.Player) error
	GetMembers(clubID string) ([]Member, error)
	IsMember(clubID, playerID string) (bool, error)
	// RecordMatch stores the match, filling in status, source and play time
	// when they are unset.
	RecordMatch(match *tennis.MatchResult) error
	GetMatches(clubID string) ([]tennis.MatchResult, error)
	GetMatch(matchID string) (*tennis.MatchResult, error)
	GetMatchesForProcessing() ([]tennis.MatchResult, error)
	// UpdateProcessingStatus fails with tennis.ErrStatusChanged when the match
	// is not in status from.
	UpdateProcessingStatus(matchID string, from, to tennis.ProcessingStatus) error
	// GetRatings returns the current rating of each player. Players without a
	// stored rating get the initial rating.
	GetRatings(clubID string, playerIDs []string) (map[string]rating.PlayerRating, error)
	RateMatch(match *tennis.MatchResult, apply func(current map[string]rating.PlayerRating) ([]rating.PlayerRating, error)) error
	GetRatingLeaderboard(clubID string) ([]RatingEntry, error)
	Clear()
}
