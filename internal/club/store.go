package club

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertClub(clubID, name string) (*Club, error) {
	if strings.TrimSpace(clubID) == "" {
		return nil, fmt.Errorf("%w: club id is required", tennis.ErrInvalidArgument)
	}
	if strings.TrimSpace(name) == "" {
		name = clubID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO clubs (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		clubID, name, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert club: %w", err)
	}

	club := Club{}
	var createdAt int64
	err = s.db.QueryRow("SELECT id, name, created_at FROM clubs WHERE id = ?", clubID).Scan(&club.ID, &club.Name, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read club: %w", err)
	}
	club.CreatedAt = time.Unix(createdAt, 0).UTC()
	log.Info("Upserted club", "clubID", clubID, "name", name)
	return &club, nil
}

func (s *store) AddMember(clubID string, player tennis.Player) error {
	if player.ID == "" {
		return fmt.Errorf("%w: player id is required", tennis.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clubExists(tx, clubID); err != nil {
		return err
	}
	if err := upsertPlayer(tx, player); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT OR IGNORE INTO club_members (club_id, player_id, joined_at) VALUES (?, ?, ?)`,
		clubID, player.ID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Added club member", "clubID", clubID, "playerID", player.ID, "name", player.Name)
	return nil
}

func (s *store) GetMembers(clubID string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT m.player_id, p.name, m.joined_at
		FROM club_members m
		JOIN players p ON p.id = m.player_id
		WHERE m.club_id = ?
		ORDER BY p.name COLLATE NOCASE, m.player_id`, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		var joinedAt int64
		if err := rows.Scan(&m.PlayerID, &m.Name, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.JoinedAt = time.Unix(joinedAt, 0).UTC()
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *store) IsMember(clubID, playerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id = ? AND player_id = ?)", clubID, playerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// RecordMatch inserts a match result or updates an existing one. It is "dumb"
// and does not change the processing status of an existing match.
func (s *store) RecordMatch(match *tennis.MatchResult) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", tennis.ErrInvalidArgument)
	}
	if err := match.Validate(); err != nil {
		return err
	}
	if match.ProcessingStatus == "" {
		match.ProcessingStatus = tennis.StatusNew
	}
	if match.Source == "" {
		match.Source = tennis.SourceApp
	}
	if match.PlayedAt.IsZero() {
		match.PlayedAt = time.Now().UTC().Truncate(time.Second)
	}

	sidesJSON, err := json.Marshal(match.Sides)
	if err != nil {
		return fmt.Errorf("failed to encode sides: %w", err)
	}
	setsJSON, err := json.Marshal(match.Sets)
	if err != nil {
		return fmt.Errorf("failed to encode sets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clubExists(tx, match.ClubID); err != nil {
		return err
	}
	for _, p := range match.Participants() {
		if err := upsertPlayer(tx, p); err != nil {
			return err
		}
	}

	// ON CONFLICT every field except processing_status is refreshed.
	_, err = tx.Exec(`
		INSERT INTO match_results (id, club_id, match_type, sides_json, winning_side, sets_json, played_at, processing_status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			club_id = excluded.club_id,
			match_type = excluded.match_type,
			sides_json = excluded.sides_json,
			winning_side = excluded.winning_side,
			sets_json = excluded.sets_json,
			played_at = excluded.played_at,
			source = excluded.source`,
		match.MatchID, match.ClubID, string(match.MatchType), string(sidesJSON), match.WinningSide,
		string(setsJSON), match.PlayedAt.Unix(), string(match.ProcessingStatus), string(match.Source),
	)
	if err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Recorded match", "matchID", match.MatchID, "clubID", match.ClubID, "type", match.MatchType, "source", match.Source)
	return nil
}

func (s *store) GetMatches(clubID string) ([]tennis.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`WHERE club_id = ? ORDER BY played_at ASC, id ASC`, clubID)
}

// GetMatch returns a single recorded match.
func (s *store) GetMatch(matchID string) (*tennis.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches, err := s.queryMatches(`WHERE id = ?`, matchID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: match %s", tennis.ErrNotFound, matchID)
	}
	return &matches[0], nil
}

// GetMatchesForProcessing retrieves all matches that are not yet in a completed
// state, oldest first so ratings are applied in play order.
func (s *store) GetMatchesForProcessing() ([]tennis.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`WHERE processing_status != ? ORDER BY played_at ASC, id ASC`, string(tennis.StatusCompleted))
}

// UpdateProcessingStatus moves a match from one processing status to the next.
func (s *store) UpdateProcessingStatus(matchID string, from, to tennis.ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return advanceStatus(s.db, matchID, from, to)
}

func (s *store) GetRatings(clubID string, playerIDs []string) (map[string]rating.PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return loadRatings(s.db, clubID, playerIDs)
}

// RateMatch moves a NEW match to RATED and stores the ratings computed by
// apply in the same transaction. apply receives the current ratings of the
// participants. A match that is no longer NEW is left alone and
// tennis.ErrStatusChanged is returned.
func (s *store) RateMatch(match *tennis.MatchResult, apply func(current map[string]rating.PlayerRating) ([]rating.PlayerRating, error)) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", tennis.ErrInvalidArgument)
	}
	ids := make([]string, 0, 4)
	for _, p := range match.Participants() {
		ids = append(ids, p.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := advanceStatus(tx, match.MatchID, tennis.StatusNew, tennis.StatusRated); err != nil {
		return err
	}
	current, err := loadRatings(tx, match.ClubID, ids)
	if err != nil {
		return err
	}
	updated, err := apply(current)
	if err != nil {
		return err
	}
	if err := upsertRatings(tx, match.ClubID, updated); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Debug("Rated match", "matchID", match.MatchID, "clubID", match.ClubID, "count", len(updated))
	return nil
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func advanceStatus(q dbtx, matchID string, from, to tennis.ProcessingStatus) error {
	res, err := q.Exec(
		"UPDATE match_results SET processing_status = ? WHERE id = ? AND processing_status = ?",
		string(to), matchID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update processing status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update processing status: %w", err)
	}
	if n == 1 {
		return nil
	}

	var current string
	err = q.QueryRow("SELECT processing_status FROM match_results WHERE id = ?", matchID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: match %s", tennis.ErrNotFound, matchID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up processing status: %w", err)
	}
	return fmt.Errorf("%w: match %s is %s, expected %s", tennis.ErrStatusChanged, matchID, current, from)
}

func loadRatings(q dbtx, clubID string, playerIDs []string) (map[string]rating.PlayerRating, error) {
	ratings := make(map[string]rating.PlayerRating, len(playerIDs))
	if len(playerIDs) == 0 {
		return ratings, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	args := append([]any{clubID}, ToAnySlice(playerIDs)...)
	rows, err := q.Query(`
		SELECT player_id, rating, games_played
		FROM player_ratings
		WHERE club_id = ? AND player_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r rating.PlayerRating
		if err := rows.Scan(&r.PlayerID, &r.Rating, &r.GamesPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings[r.PlayerID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range playerIDs {
		if _, ok := ratings[id]; !ok {
			ratings[id] = rating.NewPlayerRating(id)
		}
	}
	return ratings, nil
}

func upsertRatings(tx *sql.Tx, clubID string, ratings []rating.PlayerRating) error {
	for _, r := range ratings {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO player_ratings (club_id, player_id, rating, games_played, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(club_id, player_id) DO UPDATE SET
			rating = excluded.rating,
			games_played = excluded.games_played,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare rating statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range ratings {
		if _, err := stmt.Exec(clubID, r.PlayerID, r.Rating, r.GamesPlayed, now); err != nil {
			return fmt.Errorf("failed to upsert rating for %s: %w", r.PlayerID, err)
		}
	}
	return nil
}

func (s *store) GetRatingLeaderboard(clubID string) ([]RatingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT r.player_id, COALESCE(p.name, r.player_id), r.rating, r.games_played
		FROM player_ratings r
		LEFT JOIN players p ON p.id = r.player_id
		WHERE r.club_id = ?
		ORDER BY r.rating DESC, r.games_played DESC, COALESCE(p.name, r.player_id) ASC, r.player_id ASC`, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []RatingEntry{}
	for rows.Next() {
		var r rating.PlayerRating
		var name string
		if err := rows.Scan(&r.PlayerID, &name, &r.Rating, &r.GamesPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan rating entry: %w", err)
		}
		tier := r.Tier()
		entries = append(entries, RatingEntry{
			Ranking:       len(entries) + 1,
			PlayerID:      r.PlayerID,
			Name:          name,
			Rating:        r.Rating,
			GamesPlayed:   r.GamesPlayed,
			Tier:          tier.Name,
			TierColor:     tier.Color,
			IsProvisional: r.IsProvisional(),
		})
	}
	return entries, rows.Err()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}
	defer tx.Rollback()

	for _, table := range []string{"player_ratings", "match_results", "club_members", "players", "clubs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) queryMatches(where string, args ...any) ([]tennis.MatchResult, error) {
	rows, err := s.db.Query(`
		SELECT id, club_id, match_type, sides_json, winning_side, sets_json, played_at, processing_status, source
		FROM match_results `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []tennis.MatchResult{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*tennis.MatchResult, error) {
	var match tennis.MatchResult
	var matchType, sidesJSON, status, source string
	var setsJSON sql.NullString
	var playedAt int64

	err := scanner.Scan(&match.MatchID, &match.ClubID, &matchType, &sidesJSON, &match.WinningSide,
		&setsJSON, &playedAt, &status, &source)
	if err != nil {
		return nil, err
	}
	match.MatchType = tennis.MatchType(matchType)
	match.ProcessingStatus = tennis.ProcessingStatus(status)
	match.Source = tennis.Source(source)
	match.PlayedAt = time.Unix(playedAt, 0).UTC()

	if err := json.Unmarshal([]byte(sidesJSON), &match.Sides); err != nil {
		return nil, fmt.Errorf("failed to decode sides of match %s: %w", match.MatchID, err)
	}
	match.Sets = []tennis.SetScore{}
	if setsJSON.Valid && setsJSON.String != "" && setsJSON.String != "null" {
		if err := json.Unmarshal([]byte(setsJSON.String), &match.Sets); err != nil {
			log.Error("Failed to unmarshal sets_json", "error", err, "matchID", match.MatchID)
		}
	}
	return &match, nil
}

func clubExists(tx *sql.Tx, clubID string) error {
	var id string
	err := tx.QueryRow("SELECT id FROM clubs WHERE id = ?", clubID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: club %s", tennis.ErrNotFound, clubID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up club: %w", err)
	}
	return nil
}

// upsertPlayer keeps the stored name unless a non-empty one is supplied.
func upsertPlayer(tx *sql.Tx, p tennis.Player) error {
	_, err := tx.Exec(`
		INSERT INTO players (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE players.name END`,
		p.ID, p.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
	}
	return nil
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
