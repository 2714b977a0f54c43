package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/dlfindex/internal/db"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

// defaultTxRetries bounds retries after a concurrent writer touched the same document.
const defaultTxRetries = 3

// store is the consumer interface for records (ISP).
type store interface {
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Transact(ctx context.Context, setKey string, build func(members []string) (*db.TxBatch, error)) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.ListQuery) (int, error)
}

// Repo implements the record contracts of usecase/indexer and usecase/query.
type Repo struct {
	store   store
	retries int
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s, retries: defaultTxRetries}
}

// Replace supersedes every record of document uid in core with records.
// It bumps the document generation, then deletes the previous generation's keys and
// writes the new records in one MULTI/EXEC. Returns the new generation.
func (r *Repo) Replace(ctx context.Context, core string, uid int64, records []record.Record) (int64, error) {
	gen, err := r.store.IncrBy(ctx, generationKey(core, uid), 1)
	if err != nil {
		return 0, fmt.Errorf("incr generation %d: %w", uid, err)
	}

	items := make([]db.HashSetItem, 0, len(records))
	keys := make([]string, 0, len(records))
	for i := range records {
		records[i].Generation = gen
		fields, err := buildHashFields(&records[i])
		if err != nil {
			return 0, fmt.Errorf("encode record %s: %w", records[i].ID, err)
		}
		key := recordKey(core, uid, records[i].ID)
		items = append(items, db.HashSetItem{Key: key, Fields: fields})
		keys = append(keys, key)
	}

	setKey := docSetKey(core, uid)
	err = r.transact(ctx, setKey, func(old []string) (*db.TxBatch, error) {
		return &db.TxBatch{
			Del:  append(old, setKey),
			HSet: items,
			SAdd: []db.SetAddItem{{Key: setKey, Members: keys}},
		}, nil
	})
	if err != nil {
		return 0, fmt.Errorf("replace records %d: %w", uid, err)
	}
	return gen, nil
}

// Remove deletes every record of document uid in core.
func (r *Repo) Remove(ctx context.Context, core string, uid int64) error {
	setKey := docSetKey(core, uid)
	err := r.transact(ctx, setKey, func(old []string) (*db.TxBatch, error) {
		if len(old) == 0 {
			return nil, nil
		}
		return &db.TxBatch{Del: append(old, setKey)}, nil
	})
	if err != nil {
		return fmt.Errorf("remove records %d: %w", uid, err)
	}
	return nil
}

// Search returns one page of records of core in engine order.
func (r *Repo) Search(ctx context.Context, core string, q record.Query) (record.Page, error) {
	res, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    indexName(core),
		Text:         q.Text,
		Filters:      q.Filters,
		Offset:       q.Offset,
		Limit:        q.Limit,
		ReturnFields: hitFields,
	})
	if err != nil {
		return record.Page{}, fmt.Errorf("search %s: %w", core, err)
	}
	if res == nil {
		return record.Page{}, nil
	}

	hits := make([]record.Hit, 0, len(res.Entries))
	for _, e := range res.Entries {
		hits = append(hits, parseHashFields(e.Key, e.Fields))
	}
	return record.Page{Total: res.Total, Hits: hits}, nil
}

// Count returns the number of records of core matching q. Paging fields are ignored.
func (r *Repo) Count(ctx context.Context, core string, q record.Query) (int, error) {
	n, err := r.store.SearchCount(ctx, &db.ListQuery{
		IndexName: indexName(core),
		Text:      q.Text,
		Filters:   q.Filters,
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", core, err)
	}
	return n, nil
}

func (r *Repo) transact(ctx context.Context, setKey string, build func([]string) (*db.TxBatch, error)) error {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		err = r.store.Transact(ctx, setKey, build)
		if !errors.Is(err, db.ErrTxAborted) {
			return err
		}
	}
	return err
}
