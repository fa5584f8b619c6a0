package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Club is a tennis club whose members share a leaderboard.
type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is a player belonging to a club.
type Member struct {
	PlayerID string    `json:"player_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// RatingEntry is one row of the rating leaderboard.
type RatingEntry struct {
	Ranking       int    `json:"ranking"`
	PlayerID      string `json:"player_id"`
	Name          string `json:"name"`
	Rating        int    `json:"rating"`
	GamesPlayed   int    `json:"games_played"`
	Tier          string `json:"tier"`
	TierColor     string `json:"tier_color"`
	IsProvisional bool   `json:"is_provisional"`
}
