package notifier

import (
	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/ranking"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches, with the rating movement they caused
	SendResultNotification(match *tennis.MatchResult, changes []rating.Change, dryRun bool) (string, error)
	// For invitations whose roster filled
	SendInvitationMatched(inv *invitation.Invitation, dryRun bool) (string, error)
	// For newly issued challenges
	SendChallengeCreated(c *challenge.Challenge, dryRun bool) (string, error)

	// For formatting responses for slash commands
	FormatLeaderboardResponse(entries []ranking.Entry) (any, error)
	FormatPlayerStatsResponse(entry *ranking.Entry, playerRating *rating.PlayerRating) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
