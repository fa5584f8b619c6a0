package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mauv0809/courtside/internal/tennis"
)

type upsertClubRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

func (r addMemberRequest) toPlayer() (tennis.Player, error) {
	if strings.TrimSpace(r.PlayerID) == "" {
		return tennis.Player{}, fmt.Errorf("%w: player_id is required", tennis.ErrInvalidArgument)
	}
	return tennis.Player{ID: r.PlayerID, Name: strings.TrimSpace(r.Name)}, nil
}

type playerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type setDTO struct {
	Side1 int `json:"side1"`
	Side2 int `json:"side2"`
}

type recordMatchRequest struct {
	MatchID     string        `json:"match_id"`
	MatchType   string        `json:"match_type"`
	Sides       [][]playerDTO `json:"sides"`
	WinningSide int           `json:"winning_side"`
	Sets        []setDTO      `json:"sets"`
	PlayedAt    *time.Time    `json:"played_at"`
}

// toMatchResult maps the request onto a validated match result. A missing
// match id is generated and a missing play time defaults to now.
func (r recordMatchRequest) toMatchResult(clubID string, now time.Time) (*tennis.MatchResult, error) {
	matchType, err := tennis.ParseMatchType(r.MatchType)
	if err != nil {
		return nil, err
	}
	if len(r.Sides) != 2 {
		return nil, fmt.Errorf("%w: a match has exactly two sides, got %d", tennis.ErrInvalidArgument, len(r.Sides))
	}

	match := &tennis.MatchResult{
		MatchID:          r.MatchID,
		ClubID:           clubID,
		MatchType:        matchType,
		WinningSide:      r.WinningSide,
		PlayedAt:         now.UTC().Truncate(time.Second),
		ProcessingStatus: tennis.StatusNew,
		Source:           tennis.SourceApp,
		Sets:             make([]tennis.SetScore, 0, len(r.Sets)),
	}
	if match.MatchID == "" {
		match.MatchID = uuid.NewString()
	}
	if r.PlayedAt != nil {
		match.PlayedAt = r.PlayedAt.UTC().Truncate(time.Second)
	}
	for i, side := range r.Sides {
		for _, p := range side {
			match.Sides[i].Players = append(match.Sides[i].Players, tennis.Player{ID: p.ID, Name: p.Name})
		}
	}
	for _, s := range r.Sets {
		match.Sets = append(match.Sets, tennis.SetScore{Side1: s.Side1, Side2: s.Side2})
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}
	return match, nil
}

type createInvitationRequest struct {
	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	MatchType   string `json:"match_type"`
	Message     string `json:"message"`
}

type respondInvitationRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type cancelInvitationRequest struct {
	UserID string `json:"user_id"`
}

type createChallengeRequest struct {
	ChallengerID string     `json:"challenger_id"`
	ChallengedID string     `json:"challenged_id"`
	MatchType    string     `json:"match_type"`
	ProposedDate *time.Time `json:"proposed_date"`
}

type respondChallengeRequest struct {
	UserID string `json:"user_id"`
	Accept *bool  `json:"accept"`
}

type opponentsResponse struct {
	PlayerID  string      `json:"player_id"`
	Opponents []playerDTO `json:"opponents"`
}

type processResponse struct {
	Completed int `json:"completed"`
}
