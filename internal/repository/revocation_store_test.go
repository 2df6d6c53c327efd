package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memoryRevocationStore{now: func() time.Time { return now }, revoked: map[string]time.Time{}}

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token")
	assert.Empty(t, store.revoked)
}

func TestMemoryRevocationStore_PurgesOnRevoke(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := &memoryRevocationStore{now: func() time.Time { return now }, revoked: map[string]time.Time{}}

	require.NoError(t, store.Revoke(ctx, "old", now.Add(-time.Second)))
	require.NoError(t, store.Revoke(ctx, "new", now.Add(time.Minute)))
	assert.NotContains(t, store.revoked, "old")
	assert.Contains(t, store.revoked, "new")
}
