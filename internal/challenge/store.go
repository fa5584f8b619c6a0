package challenge

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/tennis"
)

// DefaultTTL is how long a challenge waits for an answer when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

const selectChallenge = `
	SELECT id, club_id, challenger_id, challenged_id, status, match_type, proposed_date, created_at, responded_at
	FROM challenges`

type store struct {
	db    *sql.DB
	clock clockwork.Clock
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewStore creates a new challenge store
func NewStore(db *sql.DB, clock clockwork.Clock, ttl time.Duration) Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &store{db: db, clock: clock, ttl: ttl}
}

func (s *store) Create(clubID, challengerID, challengedID string, matchType tennis.MatchType, proposedDate *time.Time) (*Challenge, error) {
	if strings.TrimSpace(clubID) == "" {
		return nil, fmt.Errorf("%w: club id is required", tennis.ErrInvalidArgument)
	}
	if err := matchType.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pending, err := s.listPending(tx, challengerID)
	if err != nil {
		return nil, err
	}
	ok, err := CanChallenge(challengerID, challengedID, PendingOpponents(challengerID, pending))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s by %s", ErrCannotChallenge, challengedID, challengerID)
	}

	c := &Challenge{
		ID:           uuid.New().String(),
		ClubID:       clubID,
		ChallengerID: challengerID,
		ChallengedID: challengedID,
		Status:       StatusPending,
		MatchType:    matchType,
		ProposedDate: proposedDate,
		CreatedAt:    s.clock.Now().UTC().Truncate(time.Second),
	}
	var proposed sql.NullInt64
	if proposedDate != nil {
		proposed = sql.NullInt64{Int64: proposedDate.Unix(), Valid: true}
	}
	_, err = tx.Exec(`
		INSERT INTO challenges (id, club_id, challenger_id, challenged_id, status, match_type, proposed_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClubID, c.ChallengerID, c.ChallengedID, string(c.Status), string(c.MatchType), proposed, c.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Created challenge", "id", c.ID, "club", clubID, "challenger", challengerID, "challenged", challengedID)
	return c, nil
}

func (s *store) Get(id string) (*Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.db, id)
}

func (s *store) ListPendingByChallenger(challengerID string) ([]Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listPending(s.db, challengerID)
}

func (s *store) Respond(id, userID string, accept bool) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := get(tx, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC().Truncate(time.Second)
	if _, expired := Expire(current, now, s.ttl); expired {
		return nil, fmt.Errorf("%w: challenge %s has expired", ErrNotPending, id)
	}

	var next *Challenge
	if accept {
		next, err = Accept(current, userID, now)
	} else {
		next, err = Decline(current, userID, now)
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`UPDATE challenges SET status = ?, responded_at = ? WHERE id = ?`,
		string(next.Status), now.Unix(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Challenge answered", "id", id, "user", userID, "status", next.Status)
	return next, nil
}

func (s *store) ExpireStale() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.clock.Now()
	pending, err := queryChallenges(tx, selectChallenge+` WHERE status = ?`, string(StatusPending))
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range pending {
		next, changed := Expire(&pending[i], now, s.ttl)
		if !changed {
			continue
		}
		if _, err := tx.Exec(`UPDATE challenges SET status = ? WHERE id = ?`, string(next.Status), next.ID); err != nil {
			return 0, fmt.Errorf("failed to expire challenge: %w", err)
		}
		expired++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if expired > 0 {
		log.Info("Expired stale challenges", "count", expired)
	}
	return expired, nil
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func get(q querier, id string) (*Challenge, error) {
	challenges, err := queryChallenges(q, selectChallenge+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(challenges) == 0 {
		return nil, fmt.Errorf("%w: challenge %s", tennis.ErrNotFound, id)
	}
	return &challenges[0], nil
}

// listPending returns the challenger's pending challenges that are still
// inside the TTL. Overdue rows keep their stored status until ExpireStale.
func (s *store) listPending(q querier, challengerID string) ([]Challenge, error) {
	stored, err := queryChallenges(q,
		selectChallenge+` WHERE challenger_id = ? AND status = ? ORDER BY created_at ASC, id ASC`,
		challengerID, string(StatusPending))
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	live := stored[:0]
	for _, c := range stored {
		if _, expired := Expire(&c, now, s.ttl); !expired {
			live = append(live, c)
		}
	}
	return live, nil
}

func queryChallenges(q querier, query string, args ...any) ([]Challenge, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenges: %w", err)
	}
	defer rows.Close()

	challenges := []Challenge{}
	for rows.Next() {
		var c Challenge
		var status, matchType string
		var proposed, responded sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.ClubID, &c.ChallengerID, &c.ChallengedID, &status, &matchType,
			&proposed, &createdAt, &responded); err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		c.Status = Status(status)
		c.MatchType = tennis.MatchType(matchType)
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		c.ProposedDate = unixPtr(proposed)
		c.RespondedAt = unixPtr(responded)
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate challenges: %w", err)
	}
	return challenges, nil
}

func unixPtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}
