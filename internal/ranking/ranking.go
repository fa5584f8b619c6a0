package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// Scoring weights wins and losses into leaderboard points.
type Scoring struct {
	WinPoints  int
	LossPoints int
}

// DefaultScoring ranks on wins alone.
var DefaultScoring = Scoring{WinPoints: 1, LossPoints: 0}

// Entry is a player's row on a club leaderboard.
type Entry struct {
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	WinPercentage int    `json:"win_percentage"`
	Points        int    `json:"points"`
	Ranking       int    `json:"ranking"`
	IsProvisional bool   `json:"is_provisional"`
}

// Played returns the number of matches counted for the entry.
func (e Entry) Played() int {
	return e.Wins + e.Losses
}

// Aggregator turns match history into a leaderboard. It holds no state
// besides its scoring weights.
type Aggregator struct {
	Scoring Scoring
}

func NewAggregator(scoring Scoring) *Aggregator {
	return &Aggregator{Scoring: scoring}
}

// BuildLeaderboard tallies every match of clubID and returns the sorted
// leaderboard. Matches of other clubs are ignored.
func (a *Aggregator) BuildLeaderboard(matches []tennis.MatchResult, clubID string) ([]Entry, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", tennis.ErrInvalidArgument)
	}

	index := make(map[string]*Entry)
	tally := func(p tennis.Player, won bool) {
		entry, ok := index[p.ID]
		if !ok {
			entry = &Entry{PlayerID: p.ID, PlayerName: p.Name}
			index[p.ID] = entry
		}
		if entry.PlayerName == "" {
			entry.PlayerName = p.Name
		}
		if won {
			entry.Wins++
		} else {
			entry.Losses++
		}
	}

	for i := range matches {
		match := &matches[i]
		if match.ClubID != clubID {
			continue
		}
		if err := match.Validate(); err != nil {
			return nil, err
		}
		for _, p := range match.Winners() {
			tally(p, true)
		}
		for _, p := range match.Losers() {
			tally(p, false)
		}
	}

	entries := make([]Entry, 0, len(index))
	for _, entry := range index {
		entry.WinPercentage = winPercentage(entry.Wins, entry.Losses)
		entry.Points = entry.Wins*a.Scoring.WinPoints - entry.Losses*a.Scoring.LossPoints
		entry.IsProvisional = entry.Played() < rating.ProvisionalGames
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		x, y := entries[i], entries[j]
		if x.Points != y.Points {
			return x.Points > y.Points
		}
		if x.WinPercentage != y.WinPercentage {
			return x.WinPercentage > y.WinPercentage
		}
		if x.PlayerName != y.PlayerName {
			return x.PlayerName < y.PlayerName
		}
		return x.PlayerID < y.PlayerID
	})
	for i := range entries {
		entries[i].Ranking = i + 1
	}
	return entries, nil
}

// BuildLeaderboard ranks clubID's matches with DefaultScoring.
func BuildLeaderboard(matches []tennis.MatchResult, clubID string) ([]Entry, error) {
	return NewAggregator(DefaultScoring).BuildLeaderboard(matches, clubID)
}

func winPercentage(wins, losses int) int {
	played := wins + losses
	if played == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(played) * 100))
}

// FindEntry returns the first entry whose name contains query, ignoring case.
func FindEntry(entries []Entry, query string) (*Entry, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, false
	}
	for i := range entries {
		if strings.Contains(strings.ToLower(entries[i].PlayerName), query) {
			return &entries[i], true
		}
	}
	return nil, false
}
