package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
)

func TestNewRedis(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	disabled, err := NewRedis(ctx, config.RedisConfig{}, logger)
	require.NoError(t, err)
	assert.Nil(t, disabled)
	assert.Error(t, disabled.Ping(ctx))
	disabled.Close()

	server := miniredis.RunT(t)
	rdb, err := NewRedis(ctx, config.RedisConfig{Addr: server.Addr()}, logger)
	require.NoError(t, err)
	require.NotNil(t, rdb)
	t.Cleanup(rdb.Close)
	assert.NoError(t, rdb.Ping(ctx))

	server.Close()
	_, err = NewRedis(ctx, config.RedisConfig{Addr: server.Addr()}, logger)
	assert.Error(t, err)
}
