package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/tennis"
)

// seederConfig is the subset of the server configuration the seeder needs.
type seederConfig struct {
	DBName        string `env:"DB_NAME" envDefault:"courtside.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"./migrations"`
	PrimaryURL    string `env:"TURSO_PRIMARY_URL"`
	AuthToken     string `env:"TURSO_AUTH_TOKEN"`
	ClubID        string `env:"SEED_CLUB_ID" envDefault:"seed-club"`
	NumMatches    int    `env:"SEED_MATCHES" envDefault:"200"`
}

func loadConfig() seederConfig {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	cfg, err := env.ParseAs[seederConfig]()
	if err != nil {
		log.Fatalf("Failed to parse seeder config: %s", err)
	}
	return cfg
}

var dummyPlayers = []tennis.Player{
	{ID: "player-1", Name: "Seeder Player A"},
	{ID: "player-2", Name: "Seeder Player B"},
	{ID: "player-3", Name: "Seeder Player C"},
	{ID: "player-4", Name: "Seeder Player D"},
	{ID: "player-5", Name: "Seeder Player E"},
	{ID: "player-6", Name: "Seeder Player F"},
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.PrimaryURL, cfg.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	startTime := time.Now()
	store := club.New(db)
	rng := rand.New(rand.NewSource(startTime.UnixNano()))
	inserted, err := seed(store, cfg.ClubID, cfg.NumMatches, rng, startTime)
	if err != nil {
		log.Fatalf("Seeding failed after %d matches: %s", inserted, err)
	}
	log.Info("Successfully inserted all dummy matches.", "club", cfg.ClubID, "matches", inserted, "duration", time.Since(startTime))
}

// seed creates the club with the dummy players as members and records
// numMatches random matches played during the year before now. Matches are
// left NEW so the next processing run rates them.
func seed(store club.ClubStore, clubID string, numMatches int, rng *rand.Rand, now time.Time) (int, error) {
	if _, err := store.UpsertClub(clubID, "Seeded Tennis Club"); err != nil {
		return 0, fmt.Errorf("failed to create club: %w", err)
	}
	for _, p := range dummyPlayers {
		if err := store.AddMember(clubID, p); err != nil {
			return 0, fmt.Errorf("failed to add member %s: %w", p.ID, err)
		}
	}
	log.Info("Ensured dummy players exist.", "count", len(dummyPlayers))

	for i := 0; i < numMatches; i++ {
		match := randomMatch(clubID, rng, now)
		if err := store.RecordMatch(match); err != nil {
			return i, fmt.Errorf("failed to record match %s: %w", match.MatchID, err)
		}
		if (i+1)%100 == 0 {
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}
	return numMatches, nil
}

func randomMatch(clubID string, rng *rand.Rand, now time.Time) *tennis.MatchResult {
	matchType := tennis.MatchTypeSingles
	if rng.Intn(3) == 0 {
		matchType = tennis.MatchTypeDoubles
	}
	perSide, _ := tennis.PlayersPerSide(matchType)
	order := rng.Perm(len(dummyPlayers))

	match := &tennis.MatchResult{
		MatchID:     uuid.NewString(),
		ClubID:      clubID,
		MatchType:   matchType,
		WinningSide: rng.Intn(2),
		PlayedAt:    now.Add(-time.Duration(rng.Intn(365*24)) * time.Hour).UTC().Truncate(time.Second),
		Source:      tennis.SourceApp,
	}
	for i := 0; i < perSide; i++ {
		match.Sides[0].Players = append(match.Sides[0].Players, dummyPlayers[order[i]])
		match.Sides[1].Players = append(match.Sides[1].Players, dummyPlayers[order[perSide+i]])
	}
	for set := 0; set < 2; set++ {
		loserGames := rng.Intn(5)
		if match.WinningSide == 0 {
			match.Sets = append(match.Sets, tennis.SetScore{Side1: 6, Side2: loserGames})
		} else {
			match.Sets = append(match.Sets, tennis.SetScore{Side1: loserGames, Side2: 6})
		}
	}
	return match
}
