package playtomic

import (
	"fmt"

	"github.com/mauv0809/courtside/internal/tennis"
)

// ToMatchResult maps a finished Playtomic match onto a club match result.
// Team order is kept: the first team becomes side 1.
func ToMatchResult(m Match, clubID string) (*tennis.MatchResult, error) {
	if m.GameStatus != GameStatusPlayed || m.ResultsStatus != ResultsStatusConfirmed {
		return nil, fmt.Errorf("%w: match %s is %s/%s", ErrNotFinished, m.MatchID, m.GameStatus, m.ResultsStatus)
	}
	if len(m.Teams) != 2 {
		return nil, fmt.Errorf("%w: match %s has %d teams", tennis.ErrInvalidArgument, m.MatchID, len(m.Teams))
	}

	var matchType tennis.MatchType
	switch len(m.Teams[0].Players) {
	case 1:
		matchType = tennis.MatchTypeSingles
	case 2:
		matchType = tennis.MatchTypeDoubles
	default:
		return nil, fmt.Errorf("%w: match %s has %d players per team", tennis.ErrInvalidArgument, m.MatchID, len(m.Teams[0].Players))
	}

	result := &tennis.MatchResult{
		MatchID:          m.MatchID,
		ClubID:           clubID,
		MatchType:        matchType,
		PlayedAt:         m.Start,
		ProcessingStatus: tennis.StatusNew,
		Source:           tennis.SourcePlaytomic,
	}
	for i, team := range m.Teams {
		for _, p := range team.Players {
			result.Sides[i].Players = append(result.Sides[i].Players, tennis.Player{ID: p.UserID, Name: p.Name})
		}
	}
	for _, set := range m.Results {
		result.Sets = append(result.Sets, tennis.SetScore{
			Side1: set.Scores[m.Teams[0].ID],
			Side2: set.Scores[m.Teams[1].ID],
		})
	}

	winner, err := winningSide(m, result.Sets)
	if err != nil {
		return nil, err
	}
	result.WinningSide = winner

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// winningSide prefers the team result and falls back to counting sets.
func winningSide(m Match, sets []tennis.SetScore) (int, error) {
	for i, team := range m.Teams {
		if team.TeamResult == TeamResultWon {
			return i, nil
		}
	}
	var won [2]int
	for _, s := range sets {
		switch {
		case s.Side1 > s.Side2:
			won[0]++
		case s.Side2 > s.Side1:
			won[1]++
		}
	}
	switch {
	case won[0] > won[1]:
		return 0, nil
	case won[1] > won[0]:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: match %s", ErrNoWinner, m.MatchID)
}
