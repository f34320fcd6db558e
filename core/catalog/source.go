package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stock-matcher/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source produces the raw master list.
type Source interface {
	// Name describes the source for logs.
	Name() string
	// Fetch retrieves and parses the full dataset.
	Fetch(ctx context.Context) ([]Row, error)
}

// HTTPSource downloads a published spreadsheet as CSV.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for a CSV export URL.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

// Name returns the URL.
func (s *HTTPSource) Name() string {
	return s.url
}

// Fetch downloads and parses the sheet.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch master list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server responded with status: %d", resp.StatusCode)
	}
	return ParseCSV(resp.Body)
}

// ObjectSource reads the master list from a CSV object in the bucket.
type ObjectSource struct {
	client     storage.Client
	bucket     string
	objectName string
}

// NewObjectSource creates a source for bucket/objectName.
func NewObjectSource(client storage.Client, bucket, objectName string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, objectName: objectName}
}

// Name returns the object path.
func (s *ObjectSource) Name() string {
	return s.bucket + "/" + s.objectName
}

// Fetch downloads and parses the object.
func (s *ObjectSource) Fetch(ctx context.Context) ([]Row, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.objectName, err)
	}
	defer obj.Close()

	rows, err := ParseCSV(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.objectName, err)
	}
	return rows, nil
}
