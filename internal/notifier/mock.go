package notifier

import (
	"sync"

	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/ranking"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []struct {
		Match   *tennis.MatchResult
		Changes []rating.Change
		DryRun  bool
	}
	SendInvitationMatchedCalls []*invitation.Invitation
	SendChallengeCreatedCalls  []*challenge.Challenge

	// Spies
	SendResultNotificationFunc       func(match *tennis.MatchResult, changes []rating.Change, dryRun bool) (string, error)
	FormatLeaderboardResponseFunc    func(entries []ranking.Entry) (any, error)
	FormatPlayerStatsResponseFunc    func(entry *ranking.Entry, playerRating *rating.PlayerRating) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastLeaderboardResponse    []ranking.Entry
	LastPlayerStatsResponse    *ranking.Entry
	LastPlayerNotFoundResponse string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendInvitationMatchedCalls = nil
	m.SendChallengeCreatedCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = ""
}

func (m *Mock) SendResultNotification(match *tennis.MatchResult, changes []rating.Change, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match   *tennis.MatchResult
		Changes []rating.Change
		DryRun  bool
	}{match, changes, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, changes, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendInvitationMatched(inv *invitation.Invitation, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInvitationMatchedCalls = append(m.SendInvitationMatchedCalls, inv)
	return "mock-ts", nil
}

func (m *Mock) SendChallengeCreated(c *challenge.Challenge, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChallengeCreatedCalls = append(m.SendChallengeCreatedCalls, c)
	return "mock-ts", nil
}

func (m *Mock) FormatLeaderboardResponse(entries []ranking.Entry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastLeaderboardResponse = entries
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(entries)
	}
	return map[string]any{"entries": len(entries)}, nil
}

func (m *Mock) FormatPlayerStatsResponse(entry *ranking.Entry, playerRating *rating.PlayerRating) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerStatsResponse = entry
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(entry, playerRating)
	}
	return map[string]any{"player": entry.PlayerName}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerNotFoundResponse = query
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return map[string]any{"not_found": query}, nil
}
