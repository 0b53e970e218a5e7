package kvstore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	EngineRedis    = "redis"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
	EngineMemory   = "memory"
)

type Params struct {
	Engine     string
	KeyPrefix  string
	Redis      *redis.Client
	Postgres   *pgxpool.Pool
	SQLitePath string
}

func NewByEngine(ctx context.Context, params Params) (Store, error) {
	switch params.Engine {
	case EngineRedis:
		if params.Redis == nil {
			return nil, fmt.Errorf("engine %s: redis client missing", params.Engine)
		}
		return NewRedisStore(params.Redis, params.KeyPrefix), nil
	case EnginePostgres:
		if params.Postgres == nil {
			return nil, fmt.Errorf("engine %s: db pool missing", params.Engine)
		}
		return NewPostgresStore(ctx, params.Postgres)
	case EngineSQLite:
		return NewSQLiteStore(params.SQLitePath)
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store engine: %s", params.Engine)
	}
}
