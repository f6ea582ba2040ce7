package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
)

// Table names for results and history.
const (
	resultTable     = "commentiq_cache"
	historyTable    = "commentiq_history"
	migrationsTable = "commentiq_schema_migrations"
)

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// StoreOptions describes which backends to open for the global manager.
// An empty backend skips that store entirely.
type StoreOptions struct {
	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string
	AWSRegion        string
}

// InitStores initializes the global manager with separate result and history stores.
func InitStores(opts StoreOptions) error {
	var initErr error

	initOnce.Do(func() {
		var err error

		var resultStore contract.CacheStore
		if opts.CacheBackend != "" {
			resultStore, err = newResultStore(opts.CacheBackend, opts.CacheDBConnect)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize result caching: %w", err)
				return
			}
		}

		var historyStore contract.HistoryStore
		if opts.HistoryBackend != "" {
			historyStore, err = newHistoryStore(opts.HistoryBackend, opts.HistoryDBConnect, opts.AWSRegion)
			if err != nil {
				if resultStore != nil {
					_ = resultStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize history store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.results = resultStore
		Manager.history = historyStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.results != nil {
			_ = Manager.results.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

func newResultStore(backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if backend == schema.ValkeyBackend {
		return NewValkeyCacheStore(resultTable, connStr)
	}
	return NewCacheStore(resultTable, backend, connStr)
}

func newHistoryStore(backend schema.DatabaseBackend, connStr, awsRegion string) (contract.HistoryStore, error) {
	if backend == schema.DynamoDBBackend {
		return NewDynamoHistoryStore(historyTable, awsRegion, connStr)
	}
	return NewHistoryStore(backend, connStr)
}

// ClearCache clears the result cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For Valkey, it deletes the cache hash.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTable(backend, connStr, resultTable)

	case schema.ValkeyBackend:
		store, err := NewValkeyCacheStore(resultTable, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.clear()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearHistory removes every history record for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the history and migration tables.
// For DynamoDB, it deletes the table.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr, awsRegion string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range []string{historyTable, migrationsTable} {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.DynamoDBBackend:
		client, err := newDynamoClient(awsRegion, connStr)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), dynamoSetupTimeout)
		defer cancel()
		return deleteDynamoTable(ctx, client, historyTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// removeSQLiteFile deletes a SQLite database file, ignoring a missing one.
func removeSQLiteFile(dbFilePath string) error {
	if dbFilePath == "" {
		return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
	}
	if dbFilePath == ":memory:" {
		return nil
	}
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}
	driverName, err := sqlDriverName(backend)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
