package media

import (
	"context"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
)

// DocumentReader reads relational rows. A missing row is (nil, nil).
type DocumentReader interface {
	FindByPrimaryKey(ctx context.Context, uid int64) (*catalog.Document, error)
}

// DocumentLoader parses the descriptor stored at a location.
type DocumentLoader interface {
	Parse(ctx context.Context, location, format string) (*mets.Document, error)
}
