package playtomic

import (
	"context"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/tennis"
)

// PlaytomicClient defines the interface for interacting with the Playtomic API.
// This allows for mock implementations to be used in tests.
type PlaytomicClient interface {
	GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatch(ctx context.Context, matchID string) (Match, error)
}

// MatchStore is the part of the club store the importer writes to.
type MatchStore interface {
	GetMembers(clubID string) ([]club.Member, error)
	RecordMatch(match *tennis.MatchResult) error
}
