package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"stock-matcher/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ErrPublishingDisabled is returned by a nil Publisher.
var ErrPublishingDisabled = errors.New("publishing exports is not configured")

// Publisher uploads rendered exports to the bucket.
type Publisher struct {
	client storage.Client
	bucket string
	prefix string
}

// NewPublisher creates a publisher writing under prefix in bucket.
func NewPublisher(client storage.Client, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Publish uploads data as prefix/<uuid>/fileName and returns the object name.
func (p *Publisher) Publish(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if p == nil {
		return "", ErrPublishingDisabled
	}
	objectName := path.Join(p.prefix, uuid.NewString(), fileName)

	_, err := p.client.PutObject(ctx, p.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return objectName, nil
}
