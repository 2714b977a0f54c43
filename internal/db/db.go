package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	CounterStore
	TxStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	// HSetNX sets field only when it is absent and reports whether it did.
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// CounterStore provides atomic counters.
type CounterStore interface {
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
}

// SetAddItem holds a set key and the members to add.
type SetAddItem struct {
	Key     string
	Members []string
}

// TxBatch is a group of writes applied atomically with MULTI/EXEC.
// Deletes run first, then hash writes, then set additions.
type TxBatch struct {
	Del  []string
	HSet []HashSetItem
	SAdd []SetAddItem
}

// IsEmpty reports whether the batch holds no writes.
func (b *TxBatch) IsEmpty() bool {
	return b == nil || (len(b.Del) == 0 && len(b.HSet) == 0 && len(b.SAdd) == 0)
}

// TxStore runs optimistic transactions.
type TxStore interface {
	// Transact watches setKey, passes its current members to build and commits the
	// returned batch atomically. It fails with ErrTxAborted when setKey changed meanwhile.
	Transact(ctx context.Context, setKey string, build func(members []string) (*TxBatch, error)) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchList(ctx context.Context, q *ListQuery) (*SearchResult, error)
	SearchCount(ctx context.Context, q *ListQuery) (int, error)
}
