package catalog_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock-matcher/core/catalog"
	"stock-matcher/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Barcode,Rack\nT00001,A1\n"))
		}))
		defer srv.Close()

		src := catalog.NewHTTPSource(srv.URL, time.Second)
		assert.Equal(t, srv.URL, src.Name())

		rows, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "A1", rows[0]["Rack"])
	})

	t.Run("BadStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := catalog.NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}

func TestObjectSource(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "inventory", "catalog/master.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("Barcode,ExpectedQty\nT00001,5\n")), nil)

		src := catalog.NewObjectSource(mockClient, "inventory", "catalog/master.csv")
		assert.Equal(t, "inventory/catalog/master.csv", src.Name())

		rows, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "5", rows[0]["ExpectedQty"])
		mockClient.AssertExpectations(t)
	})

	t.Run("GetFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "inventory", "catalog/master.csv", mock.Anything).
			Return(nil, errors.New("no such key"))

		_, err := catalog.NewObjectSource(mockClient, "inventory", "catalog/master.csv").Fetch(context.Background())
		assert.ErrorContains(t, err, "no such key")
	})
}
