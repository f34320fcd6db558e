package statestore_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"stock-matcher/core/database"
	"stock-matcher/core/ledger"
	"stock-matcher/core/statestore"
	"stock-matcher/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func sampleState() statestore.State {
	at := time.Date(2026, 2, 3, 4, 5, 6, 789123456, time.UTC)
	return statestore.State{
		Racks: map[string]ledger.Ledger{
			"A1": {
				"T00001": {Barcode: "T00001", Name: "Widget", Quantity: 3, LastScannedAt: at},
				"T99999": {Barcode: "T99999", Name: "Unknown: T99999", Quantity: 1, LastScannedAt: at.Add(time.Nanosecond)},
			},
			"EMPTY": {},
		},
		SelectedScope: "A1",
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := statestore.NewMemoryStore()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Racks)
	assert.Empty(t, empty.Racks)

	state := sampleState()
	require.NoError(t, store.Save(ctx, state))
	state.Racks["A1"]["T00001"] = ledger.ScanRecord{Quantity: 99}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), loaded)
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store, err := statestore.New(ctx, statestore.Config{Driver: statestore.DriverSQL}, statestore.Deps{DB: db})
	require.NoError(t, err)

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Racks)
	assert.Empty(t, empty.SelectedScope)

	require.NoError(t, store.Save(ctx, sampleState()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), loaded)

	next := statestore.State{Racks: map[string]ledger.Ledger{"B1": {
		"T00002": {Barcode: "T00002", Name: "Gadget", Quantity: 1, LastScannedAt: time.Unix(0, 5).UTC()},
	}}}
	require.NoError(t, store.Save(ctx, next))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next.Racks, loaded.Racks)
	assert.Empty(t, loaded.SelectedScope)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mockDB
}

func TestSQLStore_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("LoadQueryFails", func(t *testing.T) {
		db, mockDB := newMockDB(t)
		mockDB.ExpectQuery("SELECT \\* FROM `rack_ids`").WillReturnError(errors.New("connection reset"))

		_, err := statestore.NewSQLStore(db).Load(ctx)
		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("SaveRollsBack", func(t *testing.T) {
		db, mockDB := newMockDB(t)
		mockDB.ExpectBegin()
		mockDB.ExpectExec("DELETE FROM `rack_scans`").WillReturnResult(sqlmock.NewResult(0, 2))
		mockDB.ExpectExec("DELETE FROM `rack_ids`").WillReturnError(errors.New("lock wait timeout"))
		mockDB.ExpectRollback()

		err := statestore.NewSQLStore(db).Save(ctx, sampleState())
		assert.ErrorContains(t, err, "lock wait timeout")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestObjectStore(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		mockClient := new(mocks.Client)
		var saved []byte
		mockClient.On("PutObject", mock.Anything, "inventory", "state/session.json", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved, _ = io.ReadAll(args.Get(3).(io.Reader))
			}).
			Return(minio.UploadInfo{}, nil)

		store := statestore.NewObjectStore(mockClient, "inventory", "state/")
		require.NoError(t, store.Save(ctx, sampleState()))
		require.NotEmpty(t, saved)

		mockClient.On("GetObject", mock.Anything, "inventory", "state/session.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(saved)), nil)

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleState(), loaded)
	})

	t.Run("MissingObject", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "inventory", "state/session.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		loaded, err := statestore.NewObjectStore(mockClient, "inventory", "state").Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded.Racks)
	})

	t.Run("UploadFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket gone"))

		err := statestore.NewObjectStore(mockClient, "inventory", "state").Save(ctx, sampleState())
		assert.ErrorContains(t, err, "bucket gone")
	})
}

// fakeRedis keeps values in a map and answers with pre-built command results.
type fakeRedis struct {
	values map[string]string
	err    error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		client := &fakeRedis{values: map[string]string{}}
		store, err := statestore.New(ctx, statestore.Config{Driver: statestore.DriverRedis, Key: "stockmatch:state"}, statestore.Deps{Redis: client})
		require.NoError(t, err)

		empty, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty.Racks)

		require.NoError(t, store.Save(ctx, sampleState()))
		assert.Contains(t, client.values, "stockmatch:state")

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleState(), loaded)
	})

	t.Run("ServerDown", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr: "localhost:0",
			Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return nil, errors.New("redis disabled in tests")
			},
		})
		defer client.Close()

		store := statestore.NewRedisStore(client, "stockmatch:state")
		_, err := store.Load(ctx)
		assert.Error(t, err)
		assert.Error(t, store.Save(ctx, sampleState()))
	})

	t.Run("CorruptValue", func(t *testing.T) {
		client := &fakeRedis{values: map[string]string{"k": "{not json"}}
		_, err := statestore.NewRedisStore(client, "k").Load(ctx)
		assert.ErrorContains(t, err, "failed to decode state")
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	store, err := statestore.New(ctx, statestore.Config{}, statestore.Deps{})
	require.NoError(t, err)
	assert.IsType(t, &statestore.MemoryStore{}, store)

	for _, driver := range []string{statestore.DriverSQL, statestore.DriverObject, statestore.DriverRedis} {
		_, err := statestore.New(ctx, statestore.Config{Driver: driver}, statestore.Deps{})
		assert.ErrorIs(t, err, statestore.ErrMissingDependency, driver)
	}

	_, err = statestore.New(ctx, statestore.Config{Driver: "etcd"}, statestore.Deps{})
	assert.ErrorContains(t, err, "unknown state driver")
}
