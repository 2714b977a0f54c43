package dlfindex

import (
	"context"
	"log/slog"
	"time"

	dombatch "github.com/kailas-cloud/dlfindex/internal/domain/batch"
	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
)

// Relational rows written with SaveLibrary, SaveCollection and SaveDocument.
type (
	Library    = catalog.Library
	Collection = catalog.Collection
	Document   = catalog.Document
)

// ItemStatus is the outcome of one IndexMany item.
type ItemStatus = dombatch.ItemStatus

// IndexMany item outcomes.
const (
	StatusOK       = dombatch.StatusOK
	StatusRejected = dombatch.StatusRejected
	StatusError    = dombatch.StatusError
)

// IndexResult is the outcome of indexing one uid in IndexMany.
type IndexResult struct {
	ID     string
	Status ItemStatus
	Err    error
}

type catalogStore interface {
	SaveLibrary(ctx context.Context, lib catalog.Library) error
	SaveCollection(ctx context.Context, c catalog.Collection) error
	SaveDocument(ctx context.Context, doc *catalog.Document) error
	DeleteDocument(ctx context.Context, uid int64) error
	FindByPrimaryKey(ctx context.Context, uid int64) (*catalog.Document, error)
	Close() error
}

// SaveLibrary inserts or updates a rights owner.
func (c *Client) SaveLibrary(ctx context.Context, lib Library) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog.save_library", start, err) }()
	return c.catalog.SaveLibrary(ctx, lib)
}

// SaveCollection inserts or updates a collection.
func (c *Client) SaveCollection(ctx context.Context, col Collection) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog.save_collection", start, err) }()
	return c.catalog.SaveCollection(ctx, col)
}

// SaveDocument inserts or updates a document row. Index it afterwards to make it searchable.
func (c *Client) SaveDocument(ctx context.Context, doc *Document) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog.save_document", start, err) }()
	return c.catalog.SaveDocument(ctx, doc)
}

// GetDocument returns the row of uid, or ErrNotFound.
func (c *Client) GetDocument(ctx context.Context, uid int64) (_ *Document, err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog.get_document", start, err, slog.Int64("uid", uid)) }()

	doc, err := c.catalog.FindByPrimaryKey(ctx, uid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Index projects the descriptor of document uid into core. It returns false with a nil
// error when the search engine rejected the write.
func (c *Client) Index(ctx context.Context, uid int64, core string) (_ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("document.index", start, err, slog.Int64("uid", uid), slog.String("core", core)) }()
	return c.indexSvc.AddByUID(ctx, uid, core)
}

// IndexMany indexes several documents concurrently and reports each outcome in input order.
func (c *Client) IndexMany(ctx context.Context, uids []int64, core string) []IndexResult {
	start := time.Now()
	results := c.indexSvc.AddMany(ctx, uids, core)

	out := make([]IndexResult, len(results))
	var failed error
	for i, r := range results {
		out[i] = IndexResult{ID: r.ID(), Status: r.Status(), Err: r.Err()}
		if failed == nil && r.Err() != nil {
			failed = r.Err()
		}
	}
	c.obs.observe("document.index_many", start, failed, slog.Int("count", len(uids)), slog.String("core", core))
	return out
}

// Unindex removes every record of document uid from core. The relational row stays.
func (c *Client) Unindex(ctx context.Context, uid int64, core string) (err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("document.unindex", start, err, slog.Int64("uid", uid), slog.String("core", core))
	}()
	return c.indexSvc.Delete(ctx, uid, core)
}

// DeleteDocument removes document uid from core and then deletes its relational row.
func (c *Client) DeleteDocument(ctx context.Context, uid int64, core string) (err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("document.delete", start, err, slog.Int64("uid", uid), slog.String("core", core))
	}()

	if err = c.indexSvc.Delete(ctx, uid, core); err != nil {
		return err
	}
	return c.catalog.DeleteDocument(ctx, uid)
}
