package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
	"github.com/valkey-io/valkey-go"
)

const valkeyCommandTimeout = 5 * time.Second

// valkeyEntry is the envelope stored per field of the cache hash.
type valkeyEntry struct {
	Value     []byte `json:"v"`
	Version   int    `json:"ver"`
	Timestamp int64  `json:"ts"`
}

// ValkeyCacheStore keeps cached results in a single Valkey hash.
type ValkeyCacheStore struct {
	client valkey.Client
	key    string
	addr   string
}

var _ contract.CacheStore = &ValkeyCacheStore{} // Compile-time check

// NewValkeyCacheStore connects to the Valkey server at addr (host:port) and verifies it with PING.
func NewValkeyCacheStore(hashKey, addr string) (*ValkeyCacheStore, error) {
	if err := validateTableName(hashKey); err != nil {
		return nil, err
	}
	if addr == "" {
		return nil, fmt.Errorf("valkey backend requires an address (host:port)")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{addr},
		ConnWriteTimeout: valkeyCommandTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client for %s: %w", addr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey at %s: %w", addr, err)
	}
	slog.Debug("Connected to valkey", "addr", addr)

	return &ValkeyCacheStore{client: client, key: hashKey, addr: addr}, nil
}

// Get retrieves a value by key. A missing key yields sql.ErrNoRows like the SQL stores.
func (vs *ValkeyCacheStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyCommandTimeout)
	defer cancel()

	raw, err := vs.client.Do(ctx, vs.client.B().Hget().Key(vs.key).Field(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, 0, 0, sql.ErrNoRows
	}
	if err != nil {
		return nil, 0, 0, err
	}

	var entry valkeyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return entry.Value, entry.Version, entry.Timestamp, nil
}

// Set stores a value envelope under key.
func (vs *ValkeyCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	raw, err := json.Marshal(valkeyEntry{Value: value, Version: version, Timestamp: timestamp})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), valkeyCommandTimeout)
	defer cancel()
	cmd := vs.client.B().Hset().Key(vs.key).FieldValue().FieldValue(key, string(raw)).Build()
	return vs.client.Do(ctx, cmd).Error()
}

// GetStatus returns status information about the cache hash.
func (vs *ValkeyCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.ValkeyBackend),
		Connected: vs.client != nil,
	}

	ctx, cancel := context.WithTimeout(context.Background(), valkeyCommandTimeout)
	defer cancel()

	values, err := vs.client.Do(ctx, vs.client.B().Hvals().Key(vs.key).Build()).AsStrSlice()
	if err != nil {
		return status, fmt.Errorf("failed to read cache entries: %w", err)
	}

	var lastTs, oldestTs int64
	for _, raw := range values {
		var entry valkeyEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		status.TotalEntries++
		status.TableSizeBytes += int64(len(raw))
		if lastTs == 0 || entry.Timestamp > lastTs {
			lastTs = entry.Timestamp
		}
		if oldestTs == 0 || entry.Timestamp < oldestTs {
			oldestTs = entry.Timestamp
		}
	}
	if status.TotalEntries > 0 {
		status.LastEntryTime = time.Unix(lastTs, 0)
		status.OldestEntryTime = time.Unix(oldestTs, 0)
	}
	return status, nil
}

// clear deletes the whole cache hash.
func (vs *ValkeyCacheStore) clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyCommandTimeout)
	defer cancel()
	if err := vs.client.Do(ctx, vs.client.B().Del().Key(vs.key).Build()).Error(); err != nil {
		return fmt.Errorf("failed to clear valkey cache at %s: %w", vs.addr, err)
	}
	return nil
}

// Close closes the Valkey client.
func (vs *ValkeyCacheStore) Close() error {
	if vs.client != nil {
		vs.client.Close()
	}
	return nil
}
