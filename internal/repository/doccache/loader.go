// Package doccache keeps parsed documents in a bounded LRU so that repeated
// media lookups and re-indexing of the same location skip the fetch and parse.
package doccache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/metrics"
)

// DefaultSize is the default number of parsed documents kept in memory.
const DefaultSize = 256

type parser interface {
	Parse(ctx context.Context, location, format string) (*mets.Document, error)
}

// Loader wraps a parser with an LRU of immutable documents.
// Concurrent loads of the same key share one parse.
type Loader struct {
	inner parser
	cache *lru.Cache[string, *mets.Document]
	group singleflight.Group
}

// New creates a loader keeping at most size documents.
func New(inner parser, size int) *Loader {
	if size <= 0 {
		size = DefaultSize
	}
	cache, _ := lru.New[string, *mets.Document](size)
	return &Loader{inner: inner, cache: cache}
}

func cacheKey(location, format string) string {
	return location + "\x00" + format
}

// Parse returns the cached document or parses and caches it. Failures are not cached.
func (l *Loader) Parse(ctx context.Context, location, format string) (*mets.Document, error) {
	key := cacheKey(location, format)
	if doc, ok := l.cache.Get(key); ok {
		metrics.DocumentCacheTotal.WithLabelValues("hit").Inc()
		return doc, nil
	}
	metrics.DocumentCacheTotal.WithLabelValues("miss").Inc()

	v, err, _ := l.group.Do(key, func() (any, error) {
		doc, err := l.inner.Parse(ctx, location, format)
		if err != nil {
			return nil, err
		}
		l.cache.Add(key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // parser errors are already wrapped with the location
	}
	return v.(*mets.Document), nil
}

// Invalidate drops one cached document.
func (l *Loader) Invalidate(location, format string) {
	l.cache.Remove(cacheKey(location, format))
}

// Purge drops every cached document.
func (l *Loader) Purge() {
	l.cache.Purge()
}

// Len returns the number of cached documents.
func (l *Loader) Len() int {
	return l.cache.Len()
}
