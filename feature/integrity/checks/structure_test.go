package checks

import (
	"context"
	"errors"
	"testing"

	"stock-matcher/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testPrefixes = []string{"catalog", "state/", "exports"}

func objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "inventory", testPrefixes)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Check Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(false, errors.New("dial tcp: refused"))

		_, err := CheckStructure(context.Background(), mockClient, "inventory", testPrefixes)
		assert.ErrorContains(t, err, "refused")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return(objects())

		missing, err := CheckStructure(context.Background(), mockClient, "inventory", testPrefixes)
		assert.NoError(t, err)
		assert.Equal(t, testPrefixes, missing)
	})

	t.Run("Some Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "state/"
		})).Return(objects("state/session.json"))
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return(objects())

		missing, err := CheckStructure(context.Background(), mockClient, "inventory", testPrefixes)
		assert.NoError(t, err)
		assert.Equal(t, []string{"catalog", "exports"}, missing)
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()
	mockClient := new(mocks.Client)

	mockClient.On("PutObject", mock.Anything, "inventory", "exports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "inventory", logger, []string{"exports"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestFixStructure_Fails(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "inventory", mock.Anything, mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	err := FixStructure(context.Background(), mockClient, "inventory", zap.NewNop(), []string{"catalog", "exports"})
	assert.ErrorContains(t, err, "access denied")
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}
