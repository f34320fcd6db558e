package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-matcher/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNoSource is returned when no catalog source is configured.
var ErrNoSource = errors.New("no master list source configured")

// Syncer refreshes a Store from a Source.
type Syncer struct {
	source  Source
	store   *Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	sf      singleflight.Group
}

// NewSyncer creates a syncer. source may be nil, in which case Sync fails with ErrNoSource.
func NewSyncer(source Source, store *Store, logger *zap.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{
		source:  source,
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Sync fetches the master list and replaces the stored catalog on success.
// Concurrent callers share a single fetch. On any failure the existing catalog is kept.
func (s *Syncer) Sync(ctx context.Context) (*Catalog, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	result, err, shared := s.sf.Do("sync", func() (any, error) {
		return s.sync(ctx)
	})
	if shared {
		s.logger.Debug("Joined in-flight catalog sync")
	}
	if err != nil {
		return nil, err
	}
	return result.(*Catalog), nil
}

func (s *Syncer) sync(ctx context.Context) (*Catalog, error) {
	start := s.now()
	s.logger.Info("Syncing master list", zap.String("source", s.source.Name()))

	rows, err := s.source.Fetch(ctx)
	if err != nil {
		s.metrics.ObserveSync(metrics.ResultFailure, 0)
		return nil, fmt.Errorf("could not fetch master data: %w", err)
	}

	cat, err := Normalize(rows, s.now().UTC())
	if err != nil {
		s.metrics.ObserveSync(metrics.ResultFailure, 0)
		return nil, fmt.Errorf("could not process master data: %w", err)
	}

	s.store.Replace(cat)
	s.metrics.ObserveSync(metrics.ResultSuccess, cat.Len())
	s.logger.Info("Master list synced",
		zap.Int("rows", len(rows)),
		zap.Int("items", cat.Len()),
		zap.Duration("duration", s.now().Sub(start)),
	)
	return cat, nil
}
