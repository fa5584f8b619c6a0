package playtomic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/rafa-garcia/go-playtomic-api/models"
)

const (
	defaultBaseURL = "https://api.playtomic.io"
	pageSize       = 300
	dateLayout     = "2006-01-02T15:04:05"
)

// APIClient implements PlaytomicClient. Searches go through go-playtomic-api,
// match details are read from the public REST endpoint.
type APIClient struct {
	httpClient *http.Client
	apiClient  *client.Client
	BaseURL    string
}

// NewClient creates a new Playtomic client.
func NewClient() PlaytomicClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiClient: client.NewClient(
			client.WithTimeout(10*time.Second),
			client.WithRetries(3),
		),
		BaseURL: defaultBaseURL,
	}
}

var _ PlaytomicClient = (*APIClient)(nil)

// GetMatches pages through the search endpoint until a short page is returned.
func (c *APIClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	var (
		allMatches []MatchSummary
		page       = 0
	)

	for {
		externalParams := &models.SearchMatchesParams{
			SportID:       params.SportID,
			HasPlayers:    params.HasPlayers,
			Sort:          params.Sort,
			TenantIDs:     params.TenantIDs,
			FromStartDate: params.FromStartDate,
			Size:          pageSize,
			Page:          page,
		}

		log.Debug("Fetching matches from Playtomic API", "params", externalParams)
		matches, err := c.apiClient.GetMatches(ctx, externalParams)
		if err != nil {
			return nil, fmt.Errorf("error fetching matches from playtomic api: %w", err)
		}

		log.Debug("Fetched match page", "count", len(matches), "page", page)
		for _, m := range matches {
			allMatches = append(allMatches, MatchSummary{
				MatchID: m.MatchID,
				OwnerID: m.OwnerID,
			})
		}

		if len(matches) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched all matches", "count", len(allMatches), "sport", params.SportID)
	return allMatches, nil
}

// GetSpecificMatch fetches a single match with teams and set results.
func (c *APIClient) GetSpecificMatch(ctx context.Context, matchID string) (Match, error) {
	url := fmt.Sprintf("%s/v1/matches/%s", c.BaseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Match{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CourtsideGoClient/1.0")

	log.Debug("Requesting specific match from Playtomic API", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Playtomic API", "status", resp.StatusCode, "body", string(body))
		return Match{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var body matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Match{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return toMatch(matchID, body)
}

func toMatch(matchID string, body matchResponse) (Match, error) {
	start, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		return Match{}, fmt.Errorf("failed to parse start time: %w", err)
	}

	match := Match{
		MatchID:       matchID,
		OwnerID:       body.OwnerID,
		Start:         start.UTC(),
		GameStatus:    GameStatus(body.GameStatus),
		ResultsStatus: ResultsStatus(body.ResultsStatus),
		ResourceName:  body.ResourceName,
		Tenant:        Tenant{ID: body.Tenant.ID, Name: body.Tenant.Name},
	}
	for _, t := range body.Teams {
		team := Team{ID: t.TeamID}
		if t.TeamResult != nil {
			team.TeamResult = *t.TeamResult
		}
		for _, p := range t.Players {
			team.Players = append(team.Players, Player{UserID: p.UserID, Name: p.Name})
		}
		match.Teams = append(match.Teams, team)
	}
	for _, r := range body.Results {
		set := SetResult{Name: r.Name, Scores: make(map[string]int, len(r.Scores))}
		for _, score := range r.Scores {
			set.Scores[score.TeamID] = score.Score
		}
		match.Results = append(match.Results, set)
	}
	return match, nil
}
