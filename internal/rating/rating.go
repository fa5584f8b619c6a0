package rating

import (
	"fmt"
	"math"

	"github.com/mauv0809/courtside/internal/tennis"
)

const (
	// InitialRating is assigned to every player before their first match.
	InitialRating = 1200
	// ProvisionalGames is the number of matches below which a rating is provisional.
	ProvisionalGames = 5

	DefaultKFactor            = 32
	DefaultProvisionalKFactor = 40
)

// PlayerRating is a player's current rating within a club.
type PlayerRating struct {
	PlayerID    string `json:"player_id"`
	Rating      int    `json:"rating"`
	GamesPlayed int    `json:"games_played"`
}

// NewPlayerRating returns the starting rating for a player.
func NewPlayerRating(playerID string) PlayerRating {
	return PlayerRating{PlayerID: playerID, Rating: InitialRating}
}

// IsProvisional reports whether the player has played fewer than ProvisionalGames matches.
func (p PlayerRating) IsProvisional() bool {
	return p.GamesPlayed < ProvisionalGames
}

// Tier returns the tier the rating falls in.
func (p PlayerRating) Tier() Tier {
	return ComputeTier(p.Rating)
}

func (p PlayerRating) Validate() error {
	if p.PlayerID == "" {
		return fmt.Errorf("%w: player id is required", tennis.ErrInvalidArgument)
	}
	if p.GamesPlayed < 0 {
		return fmt.Errorf("%w: games played for %s is negative (%d)", tennis.ErrInvalidArgument, p.PlayerID, p.GamesPlayed)
	}
	return nil
}

// Change records how one match moved a player's rating.
type Change struct {
	PlayerID string `json:"player_id"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Delta    int    `json:"delta"`
}

// ExpectedScore is the probability that a player rated ra beats one rated rb.
func ExpectedScore(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/400))
}

// Engine applies ELO updates. It holds configuration only and is safe to share.
type Engine struct {
	KFactor            int
	ProvisionalKFactor int
}

// NewEngine returns an engine with the given K factors. Non-positive values
// fall back to the defaults.
func NewEngine(kFactor, provisionalKFactor int) Engine {
	if kFactor <= 0 {
		kFactor = DefaultKFactor
	}
	if provisionalKFactor <= 0 {
		provisionalKFactor = DefaultProvisionalKFactor
	}
	return Engine{KFactor: kFactor, ProvisionalKFactor: provisionalKFactor}
}

func (e Engine) kFor(p PlayerRating) int {
	if p.IsProvisional() {
		return e.ProvisionalKFactor
	}
	return e.KFactor
}

func (e Engine) delta(p PlayerRating, own, opponent int, won bool) int {
	score := 0.0
	if won {
		score = 1.0
	}
	return int(math.Round(float64(e.kFor(p)) * (score - ExpectedScore(own, opponent))))
}

// Apply updates a singles winner and loser.
func (e Engine) Apply(winner, loser PlayerRating) (PlayerRating, PlayerRating, error) {
	winners, losers, err := e.ApplyTeams([]PlayerRating{winner}, []PlayerRating{loser})
	if err != nil {
		return PlayerRating{}, PlayerRating{}, err
	}
	return winners[0], losers[0], nil
}

// ApplyTeams updates every player of both sides. Sides are compared on their
// mean rating and each player moves by the delta computed with their own K.
func (e Engine) ApplyTeams(winners, losers []PlayerRating) ([]PlayerRating, []PlayerRating, error) {
	if len(winners) == 0 || len(losers) == 0 {
		return nil, nil, fmt.Errorf("%w: both sides need at least one player", tennis.ErrInvalidArgument)
	}
	if len(winners) != len(losers) {
		return nil, nil, fmt.Errorf("%w: uneven sides (%d vs %d)", tennis.ErrInvalidArgument, len(winners), len(losers))
	}
	for _, p := range append(append([]PlayerRating{}, winners...), losers...) {
		if err := p.Validate(); err != nil {
			return nil, nil, err
		}
	}

	winMean := meanRating(winners)
	loseMean := meanRating(losers)

	newWinners := make([]PlayerRating, len(winners))
	for i, p := range winners {
		p.Rating += e.delta(p, winMean, loseMean, true)
		p.GamesPlayed++
		newWinners[i] = p
	}
	newLosers := make([]PlayerRating, len(losers))
	for i, p := range losers {
		p.Rating += e.delta(p, loseMean, winMean, false)
		p.GamesPlayed++
		newLosers[i] = p
	}
	return newWinners, newLosers, nil
}

func meanRating(players []PlayerRating) int {
	sum := 0
	for _, p := range players {
		sum += p.Rating
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}

// Changes pairs before and after ratings by position.
func Changes(before, after []PlayerRating) []Change {
	changes := make([]Change, 0, len(before))
	for i := range before {
		if i >= len(after) {
			break
		}
		changes = append(changes, Change{
			PlayerID: before[i].PlayerID,
			Before:   before[i].Rating,
			After:    after[i].Rating,
			Delta:    after[i].Rating - before[i].Rating,
		})
	}
	return changes
}
