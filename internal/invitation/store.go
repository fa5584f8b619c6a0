package invitation

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mauv0809/courtside/internal/tennis"
)

// DefaultTTL is how long an invitation stays open when no TTL is configured.
const DefaultTTL = 72 * time.Hour

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

// store handles database operations for invitations
type store struct {
	db    *sql.DB
	clock clockwork.Clock
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewStore creates a new invitation store
func NewStore(db *sql.DB, clock clockwork.Clock, ttl time.Duration) Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &store{
		db:    db,
		clock: clock,
		ttl:   ttl,
	}
}

func (s *store) Create(clubID, creatorID, creatorName string, matchType tennis.MatchType, message string) (*Invitation, error) {
	if strings.TrimSpace(clubID) == "" {
		return nil, fmt.Errorf("%w: club id is required", tennis.ErrInvalidArgument)
	}
	now := s.clock.Now().UTC().Truncate(time.Second)
	inv := &Invitation{
		ID:          uuid.New().String(),
		ClubID:      clubID,
		CreatorID:   creatorID,
		CreatorName: creatorName,
		MatchType:   matchType,
		Responses:   []Response{},
		State:       StateActive,
		Message:     message,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := validate(inv); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO invitations (id, club_id, creator_id, creator_name, match_type, state, message, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.ClubID, inv.CreatorID, inv.CreatorName, string(inv.MatchType),
		string(inv.State), inv.Message, inv.CreatedAt.Unix(), inv.ExpiresAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	log.Info("Created invitation", "id", inv.ID, "club", clubID, "creator", creatorID, "type", matchType)
	return inv, nil
}

func (s *store) Get(id string) (*Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.db, id)
}

func (s *store) ListActive(clubID string) ([]Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, club_id, creator_id, creator_name, match_type, state, message, created_at, expires_at
		FROM invitations
		WHERE club_id = ? AND state = ? AND expires_at > ?
		ORDER BY created_at ASC, id ASC`,
		clubID, string(StateActive), s.clock.Now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query active invitations: %w", err)
	}
	invitations := []Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		invitations = append(invitations, *inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}

	// Responses are loaded once the invitation cursor is closed.
	for i := range invitations {
		responses, err := loadResponses(s.db, invitations[i].ID)
		if err != nil {
			return nil, err
		}
		invitations[i].Responses = responses
	}
	return invitations, nil
}

func (s *store) Respond(id, userID, userName string) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.clock.Now().UTC().Truncate(time.Second)
	current, err := expireDue(tx, id, now)
	if err != nil {
		return nil, err
	}
	if current.State == StateExpired {
		// Keep the expiry even though the response is rejected.
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, fmt.Errorf("%w: invitation %s expired at %s", ErrCannotRespond, id, current.ExpiresAt.Format(time.RFC3339))
	}
	next, err := Respond(current, userID, userName, now)
	if err != nil {
		return nil, err
	}
	added := next.Responses[len(next.Responses)-1]

	_, err = tx.Exec(`
		INSERT INTO invitation_responses (invitation_id, user_id, user_name, status, responded_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, added.UserID, added.UserName, string(added.Status), added.RespondedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record response: %w", err)
	}
	if err := updateState(tx, id, next.State); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Recorded invitation response", "id", id, "user", userID, "state", next.State)
	return next, nil
}

func (s *store) Cancel(id, userID string) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := expireDue(tx, id, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	if current.State == StateExpired {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, fmt.Errorf("%w: invitation %s is expired", ErrNotActive, id)
	}
	next, err := Cancel(current, userID)
	if err != nil {
		return nil, err
	}
	if err := updateState(tx, id, next.State); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Cancelled invitation", "id", id, "user", userID)
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
	rows, err := tx.Query(`SELECT id FROM invitations WHERE state = ? AND expires_at <= ?`,
		string(StateActive), now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to query stale invitations: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan invitation id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate stale invitations: %w", err)
	}

	expired := 0
	for _, id := range ids {
		current, err := get(tx, id)
		if err != nil {
			return 0, err
		}
		next, changed, err := Expire(current, now)
		if err != nil {
			log.Warn("Skipping malformed invitation", "id", id, "error", err)
			continue
		}
		if !changed {
			continue
		}
		if err := updateState(tx, id, next.State); err != nil {
			return 0, err
		}
		expired++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if expired > 0 {
		log.Info("Expired stale invitations", "count", expired)
	}
	return expired, nil
}

func get(q querier, id string) (*Invitation, error) {
	row := q.QueryRow(`
		SELECT id, club_id, creator_id, creator_name, match_type, state, message, created_at, expires_at
		FROM invitations
		WHERE id = ?`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: invitation %s", tennis.ErrNotFound, id)
		}
		return nil, err
	}
	inv.Responses, err = loadResponses(q, id)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row scanner) (*Invitation, error) {
	var inv Invitation
	var matchType, state string
	var createdAt, expiresAt int64
	err := row.Scan(
		&inv.ID,
		&inv.ClubID,
		&inv.CreatorID,
		&inv.CreatorName,
		&matchType,
		&state,
		&inv.Message,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}
	inv.MatchType = tennis.MatchType(matchType)
	inv.State = State(state)
	inv.CreatedAt = time.Unix(createdAt, 0).UTC()
	inv.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	return &inv, nil
}

func loadResponses(q querier, invitationID string) ([]Response, error) {
	rows, err := q.Query(`
		SELECT user_id, user_name, status, responded_at
		FROM invitation_responses
		WHERE invitation_id = ?
		ORDER BY responded_at ASC, rowid ASC`, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []Response{}
	for rows.Next() {
		var r Response
		var status string
		var respondedAt int64
		if err := rows.Scan(&r.UserID, &r.UserName, &status, &respondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		r.Status = ResponseStatus(status)
		r.RespondedAt = time.Unix(respondedAt, 0).UTC()
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// expireDue loads an invitation and marks it expired when it is still active
// past its expiry time.
func expireDue(tx *sql.Tx, id string, now time.Time) (*Invitation, error) {
	current, err := get(tx, id)
	if err != nil {
		return nil, err
	}
	next, expired, err := Expire(current, now)
	if err != nil || !expired {
		return current, err
	}
	if err := updateState(tx, id, next.State); err != nil {
		return nil, err
	}
	log.Info("Expired invitation", "id", id, "expiresAt", current.ExpiresAt)
	return next, nil
}

func updateState(tx *sql.Tx, id string, state State) error {
	if _, err := tx.Exec(`UPDATE invitations SET state = ? WHERE id = ?`, string(state), id); err != nil {
		return fmt.Errorf("failed to update invitation state: %w", err)
	}
	return nil
}
