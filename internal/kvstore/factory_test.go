package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByEngine(t *testing.T) {
	ctx := context.Background()

	store, err := NewByEngine(ctx, Params{Engine: EngineMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewByEngine(ctx, Params{Engine: EngineSQLite, SQLitePath: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.NoError(t, store.Close())

	db, _ := redismock.NewClientMock()
	store, err = NewByEngine(ctx, Params{Engine: EngineRedis, Redis: db, KeyPrefix: "getfit:"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)

	_, err = NewByEngine(ctx, Params{Engine: EngineRedis})
	assert.ErrorContains(t, err, "redis client missing")
	_, err = NewByEngine(ctx, Params{Engine: EnginePostgres})
	assert.ErrorContains(t, err, "db pool missing")
	_, err = NewByEngine(ctx, Params{Engine: "mongo"})
	assert.EqualError(t, err, "unknown store engine: mongo")
}
