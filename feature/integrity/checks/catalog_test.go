package checks

import (
	"context"
	"testing"
	"time"

	"stock-matcher/core/catalog"
	"stock-matcher/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Object Present And Loaded", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return(objects("catalog/master.csv"))

		store := catalog.NewStore()
		store.Replace(catalog.New([]catalog.MasterItem{{Barcode: "T00001"}}, time.Now()))

		report, err := CheckCatalog(ctx, mockClient, "inventory", "catalog/master.csv", store)
		require.NoError(t, err)
		assert.Equal(t, "inventory/catalog/master.csv", report.Source)
		require.NotNil(t, report.ObjectPresent)
		assert.True(t, *report.ObjectPresent)
		assert.True(t, report.Loaded)
		assert.Equal(t, 1, report.ItemCount)
		assert.NotNil(t, report.SyncedAt)
	})

	t.Run("Object Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return(objects("catalog/master.csv.bak"))

		report, err := CheckCatalog(ctx, mockClient, "inventory", "catalog/master.csv", catalog.NewStore())
		require.NoError(t, err)
		assert.False(t, *report.ObjectPresent)
		assert.False(t, report.Loaded)
		assert.Nil(t, report.SyncedAt)
	})

	t.Run("URL Source", func(t *testing.T) {
		mockClient := new(mocks.Client)
		report, err := CheckCatalog(ctx, mockClient, "inventory", "", catalog.NewStore())
		require.NoError(t, err)
		assert.Equal(t, "url", report.Source)
		assert.Nil(t, report.ObjectPresent)
		mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
	})
}
