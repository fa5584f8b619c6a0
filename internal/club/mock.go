package club

import (
	"sync"

	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertClubFunc              func(clubID, name string) (*Club, error)
	AddMemberFunc               func(clubID string, player tennis.Player) error
	GetMembersFunc              func(clubID string) ([]Member, error)
	IsMemberFunc                func(clubID, playerID string) (bool, error)
	RecordMatchFunc             func(match *tennis.MatchResult) error
	GetMatchesFunc              func(clubID string) ([]tennis.MatchResult, error)
	GetMatchFunc                func(matchID string) (*tennis.MatchResult, error)
	GetMatchesForProcessingFunc func() ([]tennis.MatchResult, error)
	UpdateProcessingStatusFunc  func(matchID string, from, to tennis.ProcessingStatus) error
	GetRatingsFunc              func(clubID string, playerIDs []string) (map[string]rating.PlayerRating, error)
	RateMatchFunc               func(match *tennis.MatchResult) error
	GetRatingLeaderboardFunc    func(clubID string) ([]RatingEntry, error)
	ClearFunc                   func()

	// Call records
	RecordMatchCalls            []*tennis.MatchResult
	UpdateProcessingStatusCalls []struct {
		MatchID string
		From    tennis.ProcessingStatus
		Status  tennis.ProcessingStatus
	}
	RateMatchCalls []struct {
		MatchID string
		ClubID  string
		Ratings []rating.PlayerRating
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchCalls = nil
	m.UpdateProcessingStatusCalls = nil
	m.RateMatchCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) UpsertClub(clubID, name string) (*Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertClubFunc != nil {
		return m.UpsertClubFunc(clubID, name)
	}
	return &Club{ID: clubID, Name: name}, nil
}

func (m *MockStore) AddMember(clubID string, player tennis.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(clubID, player)
	}
	return nil
}

func (m *MockStore) GetMembers(clubID string) ([]Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMembersFunc != nil {
		return m.GetMembersFunc(clubID)
	}
	return []Member{}, nil
}

func (m *MockStore) IsMember(clubID, playerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsMemberFunc != nil {
		return m.IsMemberFunc(clubID, playerID)
	}
	return false, nil
}

func (m *MockStore) RecordMatch(match *tennis.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, match)
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(match)
	}
	return nil
}

func (m *MockStore) GetMatches(clubID string) ([]tennis.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc(clubID)
	}
	return []tennis.MatchResult{}, nil
}

func (m *MockStore) GetMatch(matchID string) (*tennis.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, tennis.ErrNotFound
}

func (m *MockStore) GetMatchesForProcessing() ([]tennis.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForProcessingFunc != nil {
		return m.GetMatchesForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(matchID string, from, to tennis.ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		MatchID string
		From    tennis.ProcessingStatus
		Status  tennis.ProcessingStatus
	}{matchID, from, to})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(matchID, from, to)
	}
	return nil
}

func (m *MockStore) GetRatings(clubID string, playerIDs []string) (map[string]rating.PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getRatings(clubID, playerIDs)
}

func (m *MockStore) getRatings(clubID string, playerIDs []string) (map[string]rating.PlayerRating, error) {
	if m.GetRatingsFunc != nil {
		return m.GetRatingsFunc(clubID, playerIDs)
	}
	ratings := make(map[string]rating.PlayerRating, len(playerIDs))
	for _, id := range playerIDs {
		ratings[id] = rating.NewPlayerRating(id)
	}
	return ratings, nil
}

// RateMatch runs RateMatchFunc first, so it can reject the transition before
// apply sees any ratings. Current ratings come from GetRatingsFunc.
func (m *MockStore) RateMatch(match *tennis.MatchResult, apply func(current map[string]rating.PlayerRating) ([]rating.PlayerRating, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RateMatchFunc != nil {
		if err := m.RateMatchFunc(match); err != nil {
			return err
		}
	}
	ids := make([]string, 0, 4)
	for _, p := range match.Participants() {
		ids = append(ids, p.ID)
	}
	current, err := m.getRatings(match.ClubID, ids)
	if err != nil {
		return err
	}
	updated, err := apply(current)
	if err != nil {
		return err
	}
	m.RateMatchCalls = append(m.RateMatchCalls, struct {
		MatchID string
		ClubID  string
		Ratings []rating.PlayerRating
	}{match.MatchID, match.ClubID, updated})
	return nil
}

func (m *MockStore) GetRatingLeaderboard(clubID string) ([]RatingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRatingLeaderboardFunc != nil {
		return m.GetRatingLeaderboardFunc(clubID)
	}
	return []RatingEntry{}, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
