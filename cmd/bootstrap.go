package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"stock-matcher/core/catalog"
	"stock-matcher/core/config"
	"stock-matcher/core/database"
	"stock-matcher/core/ledger"
	"stock-matcher/core/logger"
	"stock-matcher/core/metrics"
	"stock-matcher/core/session"
	"stock-matcher/core/statestore"
	"stock-matcher/core/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment is everything a command needs, built from configuration.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	storage  storage.Client
	redis    *redis.Client
	metrics  *metrics.Metrics
	catalogs *catalog.Store
	syncer   *catalog.Syncer
	session  *session.Session
}

// bootstrap loads configuration and wires the session. The database and redis
// are only required when the state driver needs them.
func bootstrap(ctx context.Context) (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	env := &environment{
		cfg:      cfg,
		logger:   logg,
		metrics:  metrics.New(),
		catalogs: catalog.NewStore(),
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	env.storage = client

	deps := statestore.Deps{Storage: client, Bucket: cfg.Storage.Bucket}

	// Connect to Database (Optional unless state lives there)
	if conn, err := database.Connect(cfg.Database); err != nil {
		if cfg.State.Driver == statestore.DriverSQL {
			return nil, err
		}
		logg.Debug("Optional database connection failed", zap.Error(err))
	} else {
		env.db = conn
		deps.DB = conn
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	if cfg.State.Driver == statestore.DriverRedis {
		rdb, err := statestore.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		env.redis = rdb
		deps.Redis = rdb
	}

	store, err := statestore.New(ctx, cfg.State, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	env.syncer = catalog.NewSyncer(catalogSource(cfg, client), env.catalogs, logg, env.metrics)
	env.session = session.New(env.catalogs, ledger.NewRackStore(), store, logg, env.metrics)
	if err := env.session.Load(ctx); err != nil {
		return nil, err
	}
	return env, nil
}

// catalogSource prefers the published URL over the bucket object.
func catalogSource(cfg *config.Config, client storage.Client) catalog.Source {
	timeout := time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second
	switch {
	case cfg.Catalog.URL != "":
		return catalog.NewHTTPSource(cfg.Catalog.URL, timeout)
	case cfg.Catalog.Object != "":
		return catalog.NewObjectSource(client, cfg.Storage.Bucket, cfg.Catalog.Object)
	default:
		return nil
	}
}

// bucketPrefixes lists the folders the bucket is expected to hold.
func bucketPrefixes(cfg *config.Config) []string {
	var prefixes []string
	if cfg.Catalog.URL == "" && cfg.Catalog.Object != "" {
		if dir := path.Dir(cfg.Catalog.Object); dir != "." {
			prefixes = append(prefixes, dir)
		}
	}
	if cfg.State.Driver == statestore.DriverObject {
		prefixes = append(prefixes, path.Clean(cfg.State.ObjectPrefix))
	}
	return append(prefixes, path.Clean(cfg.Server.ExportPrefix))
}

// syncCatalog loads the master list, which most commands need before they can work.
func (env *environment) syncCatalog(ctx context.Context) error {
	_, err := env.syncer.Sync(ctx)
	return err
}

func (env *environment) close() {
	if env.redis != nil {
		_ = env.redis.Close()
	}
	if env.db != nil {
		if sqlDB, err := env.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = env.logger.Sync()
}
