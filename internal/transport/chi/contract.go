package chi

import (
	"context"

	dombatch "github.com/kailas-cloud/dlfindex/internal/domain/batch"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
	healthuc "github.com/kailas-cloud/dlfindex/internal/usecase/health"
	mediauc "github.com/kailas-cloud/dlfindex/internal/usecase/media"
	queryuc "github.com/kailas-cloud/dlfindex/internal/usecase/query"
)

// CoreManager creates and resolves search cores.
type CoreManager interface {
	GetInstance(ctx context.Context, name string) (domcore.Handle, error)
	CreateCore(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]domcore.Info, error)
}

// Indexer writes and removes the records of stored documents.
type Indexer interface {
	AddByUID(ctx context.Context, uid int64, coreName string) (bool, error)
	AddMany(ctx context.Context, uids []int64, coreName string) []dombatch.Result
	Delete(ctx context.Context, uid int64, coreName string) error
}

// QueryEngine searches a core and hydrates toplevel hits.
type QueryEngine interface {
	FindByCollection(
		ctx context.Context, collections []string, settings queryuc.CoreSettings, opts queryuc.Options,
	) (queryuc.Result, error)
}

// MediaResolver picks the file of a page.
type MediaResolver interface {
	Resolve(ctx context.Context, uid int64, rawPage string, groups []string) (mediauc.Item, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
