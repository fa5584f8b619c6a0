package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/courtside/internal/database"
)

func setupTestDB(t *testing.T) MetricsStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return New(db)
}

func TestGetAll_ReportsEveryCounter(t *testing.T) {
	store := setupTestDB(t)

	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Len(t, metrics, len(UsageKeys))
	for _, key := range UsageKeys {
		assert.Zero(t, metrics[key], key)
	}
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	store.Increment(KeyMatchesRecorded)
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, metrics[KeyMatchesRecorded])

	store.Increment(KeyMatchesRecorded)
	store.Increment(KeySlackCommands)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, metrics[KeyMatchesRecorded])
	assert.Equal(t, 1, metrics[KeySlackCommands])
	assert.Equal(t, 0, metrics[KeyImportRuns])
}

func TestIncrement_IgnoresUnknownKey(t *testing.T) {
	store := setupTestDB(t)

	store.Increment("bookings")
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.NotContains(t, metrics, "bookings")
}
