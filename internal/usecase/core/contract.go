package core

import (
	"context"

	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
)

// Repository defines the storage contract for search cores.
type Repository interface {
	Create(ctx context.Context, name string) error
	Resolve(ctx context.Context, name string) (domcore.Handle, error)
	List(ctx context.Context) ([]domcore.Info, error)
}
