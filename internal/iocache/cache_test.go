package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals makes the once-guarded manager reusable between tests.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
	t.Cleanup(func() {
		CloseStores()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &CacheStoreManager{}
	})
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite cache and history", func(t *testing.T) {
		resetGlobals(t)
		tmpDir := t.TempDir()

		err := InitStores(StoreOptions{
			CacheBackend:     schema.SQLiteBackend,
			CacheDBConnect:   filepath.Join(tmpDir, "cache.db"),
			HistoryBackend:   schema.SQLiteBackend,
			HistoryDBConnect: filepath.Join(tmpDir, "history.db"),
		})
		require.NoError(t, err)

		assert.NotNil(t, Manager.GetResultStore())
		assert.NotNil(t, Manager.GetHistoryStore())

		CloseStores()
		_, err = os.Stat(filepath.Join(tmpDir, "cache.db"))
		assert.NoError(t, err, "cache database file should exist")
		_, err = os.Stat(filepath.Join(tmpDir, "history.db"))
		assert.NoError(t, err, "history database file should exist")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)
		opts := StoreOptions{CacheBackend: schema.SQLiteBackend, CacheDBConnect: ":memory:"}

		assert.NoError(t, InitStores(opts))
		first := Manager.GetResultStore()
		assert.NoError(t, InitStores(opts))
		assert.Same(t, first, Manager.GetResultStore(), "second init should be a no-op")
	})

	t.Run("empty backends skip stores", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(StoreOptions{}))
		assert.Nil(t, Manager.GetResultStore())
		assert.Nil(t, Manager.GetHistoryStore())
	})

	t.Run("none backends", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(StoreOptions{CacheBackend: schema.NoneBackend, HistoryBackend: schema.NoneBackend}))

		status, err := Manager.GetResultStore().GetStatus()
		require.NoError(t, err)
		assert.False(t, status.Connected)

		hs, err := Manager.GetHistoryStore().GetStatus()
		require.NoError(t, err)
		assert.False(t, hs.Connected)
	})

	t.Run("invalid mysql connection", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(StoreOptions{CacheBackend: schema.MySQLBackend, CacheDBConnect: "invalid://connection"})
		assert.Error(t, err, "Expected error for invalid MySQL connection string")
	})

	t.Run("history failure closes cache", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(StoreOptions{
			CacheBackend:   schema.SQLiteBackend,
			CacheDBConnect: ":memory:",
			HistoryBackend: schema.ValkeyBackend,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "history store")
		assert.Nil(t, Manager.GetResultStore())
	})
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "commentiq_cache", false},
		{"leading underscore", "_cache", false},
		{"digits after first", "cache2", false},
		{"empty", "", true},
		{"leading digit", "2cache", true},
		{"hyphen", "comment-cache", true},
		{"injection", "cache; DROP TABLE users", true},
		{"quote", "cache\"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, `"commentiq_cache"`},
		{schema.PostgreSQLBackend, `"commentiq_cache"`},
		{schema.MySQLBackend, "`commentiq_cache`"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTableName("commentiq_cache", tt.backend))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 1))
	assert.Equal(t, "$1", placeholder(schema.PostgreSQLBackend, 1))
	assert.Equal(t, "$16", placeholder(schema.PostgreSQLBackend, 16))
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains string
	}{
		{schema.SQLiteBackend, "INSERT OR REPLACE"},
		{schema.MySQLBackend, "ON DUPLICATE KEY UPDATE"},
		{schema.PostgreSQLBackend, "ON CONFLICT (cache_key)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: resultTable, backend: tt.backend}
			query := store.getUpsertQuery()
			assert.Contains(t, query, tt.contains)
			assert.Contains(t, query, resultTable)
		})
	}
}

func TestGetCreateTableQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains []string
	}{
		{schema.SQLiteBackend, []string{"cache_key TEXT PRIMARY KEY", "cache_value BLOB"}},
		{schema.MySQLBackend, []string{"cache_key VARCHAR(255)", "`test_table`"}},
		{schema.PostgreSQLBackend, []string{"cache_value BYTEA", "BIGINT"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			query := getCreateTableQuery("test_table", tt.backend)
			assert.True(t, strings.Contains(query, "CREATE TABLE IF NOT EXISTS"))
			for _, want := range tt.contains {
				assert.Contains(t, query, want)
			}
		})
	}
}

func TestSQLiteBackendOperations(t *testing.T) {
	t.Run("set and get operations", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		err = store.Set("test_key", []byte(`{"sentiment":{}}`), 1, 1234567890)
		assert.NoError(t, err, "Set should not fail")

		value, version, timestamp, err := store.Get("test_key")
		assert.NoError(t, err, "Get should not fail")
		assert.Equal(t, `{"sentiment":{}}`, string(value))
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1234567890), timestamp)
	})

	t.Run("upsert behavior", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Set("upsert_key", []byte("initial_value"), 1, 1000))
		require.NoError(t, store.Set("upsert_key", []byte("updated_value"), 2, 2000))

		value, version, timestamp, err := store.Get("upsert_key")
		assert.NoError(t, err)
		assert.Equal(t, "updated_value", string(value), "After upsert, value mismatch")
		assert.Equal(t, 2, version, "After upsert, version mismatch")
		assert.Equal(t, int64(2000), timestamp, "After upsert, timestamp mismatch")
	})

	t.Run("get non-existent key", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		_, _, _, err = store.Get("non_existent_key")
		assert.Equal(t, sql.ErrNoRows, err, "Get non-existent key should return sql.ErrNoRows")
	})
}

func TestNewCacheStoreErrors(t *testing.T) {
	t.Run("invalid table name", func(t *testing.T) {
		_, err := NewCacheStore("bad-name", schema.SQLiteBackend, ":memory:")
		assert.Error(t, err)
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, err := NewCacheStore("test_table", schema.DynamoDBBackend, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported cache backend")
	})
}

func TestNoneCacheStore(t *testing.T) {
	store, err := NewCacheStore("test_none", schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("anything")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, store.Set("anything", []byte("v"), 1, 1))
	assert.NoError(t, store.Close())
}

func TestCacheStoreGetStatus(t *testing.T) {
	t.Run("SQLite backend with data", func(t *testing.T) {
		store, err := NewCacheStore("test_status_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		for _, data := range []struct {
			key string
			ts  int64
		}{
			{"key1", 1000},
			{"key2", 2000},
			{"key3", 1500},
		} {
			require.NoError(t, store.Set(data.key, []byte("value"), 1, data.ts))
		}

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 3, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})

	t.Run("SQLite backend empty", func(t *testing.T) {
		store, err := NewCacheStore("test_empty_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		assert.NoError(t, err)
		assert.Equal(t, 0, status.TotalEntries)
		assert.True(t, status.LastEntryTime.IsZero())
		assert.Equal(t, int64(0), status.TableSizeBytes)
	})

	t.Run("None backend", func(t *testing.T) {
		store, err := NewCacheStore("test_none", schema.NoneBackend, "")
		require.NoError(t, err)

		status, err := store.GetStatus()
		assert.NoError(t, err)
		assert.Equal(t, "none", status.Backend)
		assert.False(t, status.Connected)
	})
}

func TestClearCache(t *testing.T) {
	t.Run("SQLite backend", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test_clear.db")

		store, err := NewCacheStore(resultTable, schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		_, err = os.Stat(dbPath)
		require.NoError(t, err, "Database file should exist before ClearCache")

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed after ClearCache")
	})

	t.Run("SQLite backend - non-existent file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "non_existent.db")
		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("NoneBackend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("empty dbFilePath for SQLite", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache("unsupported", "", ""))
	})
}

func TestClearHistory(t *testing.T) {
	t.Run("SQLite backend", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, "", ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("NoneBackend", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.ValkeyBackend, "", "", ""))
	})
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, InitStores(StoreOptions{CacheBackend: schema.SQLiteBackend, CacheDBConnect: ":memory:"}))

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			store := Manager.GetResultStore()
			if store == nil {
				t.Errorf("Goroutine %d: GetResultStore returned nil", i)
				return
			}
			if err := store.Set("concurrent_key", []byte("value"), 1, int64(1000+i)); err != nil {
				t.Errorf("Goroutine %d: Set failed: %v", i, err)
			}
		})
	}
	wg.Wait()
}
