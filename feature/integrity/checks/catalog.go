package checks

import (
	"context"
	"time"

	"stock-matcher/core/catalog"
	"stock-matcher/core/storage"

	"github.com/minio/minio-go/v7"
)

// CatalogReport describes the master list source and the loaded snapshot.
type CatalogReport struct {
	Source        string     `json:"source"`
	ObjectPresent *bool      `json:"object_present,omitempty"`
	Loaded        bool       `json:"loaded"`
	ItemCount     int        `json:"item_count"`
	SyncedAt      *time.Time `json:"synced_at,omitempty"`
}

// CheckCatalog reports on the loaded catalog. When object is set, it also checks
// that the master list object exists in the bucket.
func CheckCatalog(ctx context.Context, client storage.Client, bucket, object string, store *catalog.Store) (*CatalogReport, error) {
	report := &CatalogReport{Source: "url"}

	if object != "" {
		report.Source = bucket + "/" + object
		if err := requireBucket(ctx, client, bucket); err != nil {
			return nil, err
		}

		present := false
		opts := minio.ListObjectsOptions{Prefix: object, Recursive: false, MaxKeys: 1}
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == object {
				present = true
			}
			break
		}
		report.ObjectPresent = &present
	}

	if cat := store.Snapshot(); cat != nil {
		syncedAt := cat.SyncedAt()
		report.Loaded = true
		report.ItemCount = cat.Len()
		report.SyncedAt = &syncedAt
	}
	return report, nil
}
