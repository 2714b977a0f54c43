package query

import (
	"context"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

// RecordSearcher runs queries against one core.
type RecordSearcher interface {
	Search(ctx context.Context, core string, q record.Query) (record.Page, error)
	Count(ctx context.Context, core string, q record.Query) (int, error)
}

// DocumentFinder hydrates hits from the relational store with one bulk lookup.
type DocumentFinder interface {
	FindManyByPrimaryKey(ctx context.Context, uids []int64) (map[int64]catalog.Document, error)
}
