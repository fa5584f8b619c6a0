package playtomic

import "time"

// SportTennis is the Playtomic sport id for tennis.
const SportTennis = "TENNIS"

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// ResultsStatus defines the status of the match results.
type ResultsStatus string

const (
	ResultsStatusPending    ResultsStatus = "PENDING"
	ResultsStatusConfirmed  ResultsStatus = "CONFIRMED"
	ResultsStatusInvalid    ResultsStatus = "INVALID"
	ResultsStatusValidating ResultsStatus = "VALIDATING"
)

// TeamResultWon marks the winning team in a finished match.
const TeamResultWon = "WON"

// Match is a single Playtomic match with the details needed to record it.
type Match struct {
	MatchID       string
	OwnerID       string
	Start         time.Time
	GameStatus    GameStatus
	ResultsStatus ResultsStatus
	Teams         []Team
	Results       []SetResult
	ResourceName  string
	Tenant        Tenant
}

// Team represents a team in a match.
type Team struct {
	ID         string
	Players    []Player
	TeamResult string
}

// Player represents a player in a match.
type Player struct {
	UserID string
	Name   string
}

// SetResult represents the result of a single set, keyed by team id.
type SetResult struct {
	Name   string
	Scores map[string]int
}

// Tenant represents a Playtomic tenant (club).
type Tenant struct {
	ID   string
	Name string
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// matchResponse is the JSON body of GET /v1/matches/{id}.
type matchResponse struct {
	OwnerID       string           `json:"owner_id"`
	StartDate     string           `json:"start_date"`
	GameStatus    string           `json:"game_status"`
	ResultsStatus string           `json:"results_status"`
	Teams         []teamResponse   `json:"teams"`
	Results       []resultResponse `json:"results"`
	ResourceName  string           `json:"resource_name"`
	Tenant        tenantResponse   `json:"tenant"`
}

type resultResponse struct {
	Name   string              `json:"name"`
	Scores []teamScoreResponse `json:"scores"`
}

type teamScoreResponse struct {
	TeamID string `json:"team_id"`
	Score  int    `json:"score"`
}

type tenantResponse struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

type teamResponse struct {
	TeamID     string           `json:"team_id"`
	Players    []playerResponse `json:"players"`
	TeamResult *string          `json:"team_result"`
}

type playerResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
