package integrity

import (
	"context"

	"stock-matcher/core/catalog"
	"stock-matcher/core/statestore"
	"stock-matcher/core/storage"
	"stock-matcher/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options locates what the checks inspect.
type Options struct {
	// Bucket is the storage bucket shared by the catalog, state and exports.
	Bucket string
	// Prefixes are the folders that must exist in the bucket.
	Prefixes []string
	// CatalogObject is the master list object, empty when it is fetched by URL.
	CatalogObject string
}

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	db       *gorm.DB
	catalogs *catalog.Store
	opts     Options
	logger   *zap.Logger
}

// NewService creates a new integrity service. db may be nil.
func NewService(client storage.Client, db *gorm.DB, catalogs *catalog.Store, opts Options, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		db:       db,
		catalogs: catalogs,
		opts:     opts,
		logger:   logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.opts.Bucket, s.opts.Prefixes)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.opts.Bucket, s.logger, missing)
}

// CheckCatalog reports on the master list source and snapshot.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalog(ctx, s.client, s.opts.Bucket, s.opts.CatalogObject, s.catalogs)
}

// CheckSchema verifies the state tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, statestore.Models()...)
}
