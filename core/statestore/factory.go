package statestore

import (
	"context"
	"errors"
	"fmt"

	"stock-matcher/core/storage"

	"gorm.io/gorm"
)

// ErrMissingDependency is returned when the configured driver lacks its backing client.
var ErrMissingDependency = errors.New("state driver dependency not available")

// Deps carries the optional clients a backend may need.
type Deps struct {
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
	Redis   RedisClient
}

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg Config, deps Deps) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverSQL:
		if deps.DB == nil {
			return nil, fmt.Errorf("%w: sql driver needs a database connection", ErrMissingDependency)
		}
		s := NewSQLStore(deps.DB)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case DriverObject:
		if deps.Storage == nil {
			return nil, fmt.Errorf("%w: object driver needs a storage client", ErrMissingDependency)
		}
		return NewObjectStore(deps.Storage, deps.Bucket, cfg.ObjectPrefix), nil
	case DriverRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("%w: redis driver needs a redis client", ErrMissingDependency)
		}
		return NewRedisStore(deps.Redis, cfg.Key), nil
	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.Driver)
	}
}
