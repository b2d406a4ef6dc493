// Package cache stores parsed spending exports keyed by file digest.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

const keyPrefix = "spending:table:"

// cachedRow and cachedTable are the msgpack wire form of a spending table.
// Amounts travel as strings to keep decimal precision.
type cachedRow struct {
	Name   string   `msgpack:"n"`
	Depth  int      `msgpack:"d"`
	Values []string `msgpack:"v"`
}

type cachedTable struct {
	Periods []string    `msgpack:"p"`
	Rows    []cachedRow `msgpack:"r"`
}

func encodeTable(table *entity.SpendingTable) ([]byte, error) {
	wire := cachedTable{Periods: table.Periods, Rows: make([]cachedRow, len(table.Rows))}
	for i, row := range table.Rows {
		values := make([]string, len(row.Values))
		for j, v := range row.Values {
			values[j] = v.String()
		}
		wire.Rows[i] = cachedRow{Name: row.Name, Depth: row.Depth, Values: values}
	}
	return msgpack.Marshal(&wire)
}

func decodeTable(data []byte) (*entity.SpendingTable, error) {
	var wire cachedTable
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	rows := make([]entity.SpendingRow, len(wire.Rows))
	for i, row := range wire.Rows {
		values := make([]decimal.Decimal, len(row.Values))
		for j, v := range row.Values {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("row %q: %w", row.Name, err)
			}
			values[j] = d
		}
		rows[i] = entity.SpendingRow{Name: row.Name, Depth: row.Depth, Values: values}
	}
	return entity.NewSpendingTable(wire.Periods, rows), nil
}

// redisSpendingCache implements adapter.SpendingTableCache on Redis.
type redisSpendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSpendingCache creates a Redis-backed spending table cache.
func NewRedisSpendingCache(client *redis.Client, ttl time.Duration) adapter.SpendingTableCache {
	return &redisSpendingCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached table or nil on a miss.
func (c *redisSpendingCache) Get(ctx context.Context, digest string) (*entity.SpendingTable, error) {
	data, err := c.client.Get(ctx, keyPrefix+digest).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached table: %w", err)
	}

	table, err := decodeTable(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached table: %w", err)
	}
	return table, nil
}

// Set stores a table under its digest.
func (c *redisSpendingCache) Set(ctx context.Context, digest string, table *entity.SpendingTable) error {
	data, err := encodeTable(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+digest, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache table: %w", err)
	}
	return nil
}

// memorySpendingCache keeps encoded tables in process memory. Entries are
// encoded so callers never share a table with the cache.
type memorySpendingCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	limit   int
}

// NewMemorySpendingCache creates an in-process cache holding at most limit tables.
func NewMemorySpendingCache(limit int) adapter.SpendingTableCache {
	return &memorySpendingCache{
		entries: make(map[string][]byte),
		limit:   limit,
	}
}

// Get returns the cached table or nil on a miss.
func (c *memorySpendingCache) Get(ctx context.Context, digest string) (*entity.SpendingTable, error) {
	c.mu.RLock()
	data, ok := c.entries[digest]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeTable(data)
}

// Set stores a table, dropping everything once the limit is reached.
func (c *memorySpendingCache) Set(ctx context.Context, digest string, table *entity.SpendingTable) error {
	data, err := encodeTable(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit > 0 && len(c.entries) >= c.limit {
		c.entries = make(map[string][]byte)
	}
	c.entries[digest] = data
	return nil
}
