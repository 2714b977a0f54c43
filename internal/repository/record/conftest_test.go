package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/dlfindex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	incrByFn      func(ctx context.Context, key string, val int64) (int64, error)
	transactFn    func(ctx context.Context, setKey string, build func([]string) (*db.TxBatch, error)) error
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, q *db.ListQuery) (int, error)
}

func (m *mockStore) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	if m.incrByFn != nil {
		return m.incrByFn(ctx, key, val)
	}
	return 1, nil
}

func (m *mockStore) Transact(
	ctx context.Context, setKey string, build func(members []string) (*db.TxBatch, error),
) error {
	if m.transactFn != nil {
		return m.transactFn(ctx, setKey, build)
	}
	_, err := build(nil)
	return err
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, q *db.ListQuery) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, q)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
