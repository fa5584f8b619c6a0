package inngest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	count int
	err   error
	calls int
}

func (f *fakeExpirer) ExpireStale() (int, error) {
	f.calls++
	return f.count, f.err
}

func TestExpireStep(t *testing.T) {
	store := &fakeExpirer{count: 3}

	n, err := expireStep("invitations", store)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, store.calls)
}

func TestExpireStep_Error(t *testing.T) {
	store := &fakeExpirer{err: errors.New("database is locked")}

	n, err := expireStep("challenges", store)(context.Background())
	assert.Zero(t, n)
	assert.ErrorContains(t, err, "failed to expire challenges")
	assert.ErrorIs(t, err, store.err)
}
