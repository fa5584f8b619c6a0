package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles metric-related database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new metrics Store.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment bumps a usage counter by one. Unknown keys are ignored.
func (s *store) Increment(key string) {
	if !isUsageKey(key) {
		log.Warn("Ignoring unknown usage counter", "key", key)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1`, key)
	if err != nil {
		log.Error("Failed to increment metric", "error", err, "key", key)
		return
	}
	log.Debug("Incremented metric", "key", key)
}

// GetAll returns every usage counter. Counters never incremented read as zero.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make(map[string]int, len(UsageKeys))
	for _, key := range UsageKeys {
		metrics[key] = 0
	}
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metrics[key] = value
	}
	return metrics, rows.Err()
}

func isUsageKey(key string) bool {
	for _, k := range UsageKeys {
		if k == key {
			return true
		}
	}
	return false
}
