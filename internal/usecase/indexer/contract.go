package indexer

import (
	"context"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

// RecordWriter swaps the record set of one document inside a core.
type RecordWriter interface {
	Replace(ctx context.Context, core string, uid int64, records []record.Record) (generation int64, err error)
	Remove(ctx context.Context, core string, uid int64) error
}

// DocumentReader reads relational rows. A missing row is (nil, nil).
type DocumentReader interface {
	FindByPrimaryKey(ctx context.Context, uid int64) (*catalog.Document, error)
}

// CoreResolver resolves core names to live indexes.
type CoreResolver interface {
	Resolve(ctx context.Context, name string) (domcore.Handle, error)
}

// DocumentLoader parses the descriptor stored at a location.
type DocumentLoader interface {
	Parse(ctx context.Context, location, format string) (*mets.Document, error)
}

// CacheInvalidator forgets a cached descriptor once a fresh parse has been indexed.
type CacheInvalidator interface {
	Invalidate(location, format string)
}
