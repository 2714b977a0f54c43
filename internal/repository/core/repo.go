package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/dlfindex/internal/db"
	"github.com/kailas-cloud/dlfindex/internal/domain"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
)

// store is the consumer interface for cores (ISP).
//
//nolint:interfacebloat // core repo needs hash + index management operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/core.Repository.
type Repo struct {
	store store
	now   func() time.Time
}

// New creates a core repository.
func New(s store) *Repo {
	return &Repo{store: s, now: time.Now}
}

// Create claims the core name with HSETNX, completes the metadata and runs FT.CREATE.
// Only the caller that claimed the name rolls the metadata back when FT.CREATE fails.
func (r *Repo) Create(ctx context.Context, name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: core name %q may only contain letters, digits, '_' and '-'",
			domain.ErrInvalidArgument, name)
	}

	def, err := buildIndex(name)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	key := metaKey(name)
	info := domcore.Info{Name: name, Index: def.Name, CreatedAt: r.now().UnixMilli()}
	fields := infoToHash(info)

	claimed, err := r.store.HSetNX(ctx, key, fieldCreatedAt, fields[fieldCreatedAt])
	if err != nil {
		return fmt.Errorf("claim core %s: %w", name, err)
	}
	if !claimed {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, key, fields); err != nil {
		return errors.Join(fmt.Errorf("hset core %s: %w", name, err), r.store.Del(ctx, key))
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			err = domain.ErrAlreadyExists
		}
		return errors.Join(err, r.store.Del(ctx, key))
	}

	return nil
}

// Resolve probes the engine for the core's index. A missing index yields an empty handle.
func (r *Repo) Resolve(ctx context.Context, name string) (domcore.Handle, error) {
	if !validName(name) {
		return domcore.Handle{Name: name}, nil
	}

	idx := indexName(name)
	ok, err := r.store.IndexExists(ctx, idx)
	if err != nil {
		return domcore.Handle{}, fmt.Errorf("probe core %s: %w", name, err)
	}
	if !ok {
		return domcore.Handle{Name: name}, nil
	}
	return domcore.Handle{Name: name, Core: idx}, nil
}

// List returns all stored cores sorted by creation time.
func (r *Repo) List(ctx context.Context) ([]domcore.Info, error) {
	keys, err := r.store.Scan(ctx, metaKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan cores: %w", err)
	}
	if len(keys) == 0 {
		return []domcore.Info{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi cores: %w", err)
	}

	cores := make([]domcore.Info, 0, len(results))
	for i, m := range results {
		// Gone, or claimed by a creation that has not completed.
		if m[fieldIndex] == "" {
			continue
		}
		info, err := infoFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse core %s: %w", keys[i], err)
		}
		cores = append(cores, info)
	}

	sort.Slice(cores, func(i, j int) bool {
		return cores[i].CreatedAt < cores[j].CreatedAt
	})

	return cores, nil
}

// Drop removes the index with its records and the core metadata. Used by admin tooling and tests.
func (r *Repo) Drop(ctx context.Context, name string) error {
	if err := r.store.DropIndex(ctx, indexName(name), true); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("drop index %s: %w", name, err)
	}
	if err := r.store.Del(ctx, metaKey(name)); err != nil {
		return fmt.Errorf("del core %s: %w", name, err)
	}
	return nil
}

// validName rejects ':' on top of the identifier rules. Record keys are laid out as
// <prefix><core>:rec:, so a name with ':' could fall under another core's prefix.
func validName(name string) bool {
	return db.IsValidIdentifier(name) && !strings.Contains(name, ":")
}
