package statestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"stock-matcher/core/storage"

	"github.com/minio/minio-go/v7"
)

const objectFileName = "session.json"

// ObjectStore keeps the state as a JSON object in the bucket.
type ObjectStore struct {
	client     storage.Client
	bucket     string
	objectName string
}

// NewObjectStore creates a store writing prefix/session.json in bucket.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{
		client:     client,
		bucket:     bucket,
		objectName: path.Join(prefix, objectFileName),
	}
}

// Load downloads the state. A missing object yields an empty state.
func (o *ObjectStore) Load(ctx context.Context) (State, error) {
	obj, err := o.client.GetObject(ctx, o.bucket, o.objectName, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return emptyState(), nil
		}
		return State{}, fmt.Errorf("failed to get %s: %w", o.objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return emptyState(), nil
		}
		return State{}, fmt.Errorf("failed to read %s: %w", o.objectName, err)
	}
	return decode(data)
}

// Save uploads the state.
func (o *ObjectStore) Save(ctx context.Context, state State) error {
	data, err := encode(state)
	if err != nil {
		return err
	}

	_, err = o.client.PutObject(ctx, o.bucket, o.objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", o.objectName, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
