package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dlfindex/internal/db"
	"github.com/kailas-cloud/dlfindex/internal/domain"
	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
	"github.com/kailas-cloud/dlfindex/internal/domain/search/filter"
	"github.com/kailas-cloud/dlfindex/internal/metrics"
)

// Filterable record fields.
const (
	fieldPid        = "pid"
	fieldCollection = "collection"
	fieldToplevel   = "toplevel"
)

// MatchAll is the query that selects every record.
const MatchAll = "*"

// CoreSettings selects the core and the storage partition to search.
type CoreSettings struct {
	Core       string
	StoragePid int64 // 0 searches every partition
}

// Options controls the query text and the page of raw hits.
type Options struct {
	Query  string
	Offset int
	Rows   int
}

// Result is one page of hits reconciled against the relational store.
type Result struct {
	// NumberOfToplevels counts every matching toplevel record, not only this page.
	NumberOfToplevels int
	// Hits are the raw records of this page in engine order, children included.
	Hits []record.Hit
	// Documents holds the relational rows of toplevel hits that still exist.
	Documents map[int64]catalog.Document
	// Misses lists toplevel uids whose row no longer exists.
	Misses []int64
}

// Service queries cores and hydrates toplevel hits.
type Service struct {
	records     RecordSearcher
	docs        DocumentFinder
	defaultRows int
	maxRows     int
	logger      *zap.Logger
}

// New creates a query engine.
func New(records RecordSearcher, docs DocumentFinder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records:     records,
		docs:        docs,
		defaultRows: 20,
		maxRows:     500,
		logger:      logger,
	}
}

// WithPagination configures row limits.
func (s *Service) WithPagination(defaultRows, maxRows int) *Service {
	if defaultRows > 0 {
		s.defaultRows = defaultRows
	}
	if maxRows > 0 {
		s.maxRows = maxRows
	}
	return s
}

// FindByCollection searches a core scoped to a storage partition and, when collections is
// non-empty, to any of those collections. Toplevel hits are hydrated in one bulk lookup;
// rows deleted since indexing stay in Hits and are reported in Misses.
func (s *Service) FindByCollection(
	ctx context.Context, collections []string, settings CoreSettings, opts Options,
) (Result, error) {
	if settings.Core == "" {
		return Result{}, fmt.Errorf("core is required: %w", domain.ErrInvalidArgument)
	}
	if opts.Offset < 0 {
		return Result{}, fmt.Errorf("offset must not be negative: %w", domain.ErrInvalidArgument)
	}

	rows := opts.Rows
	if rows <= 0 {
		rows = s.defaultRows
	}
	if rows > s.maxRows {
		rows = s.maxRows
	}

	text := strings.TrimSpace(opts.Query)
	if text == "" {
		text = MatchAll
	}

	must, err := scopeConditions(collections, settings.StoragePid)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	defer func() {
		metrics.QueryDuration.WithLabelValues(settings.Core).Observe(time.Since(start).Seconds())
	}()

	filters, err := filter.NewExpression(must...)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	page, err := s.records.Search(ctx, settings.Core, record.Query{
		Text: text, Filters: filters, Offset: opts.Offset, Limit: rows,
	})
	if err != nil {
		return Result{}, engineErr(settings.Core, err)
	}

	toplevelOnly, err := withToplevel(must)
	if err != nil {
		return Result{}, err
	}
	total, err := s.records.Count(ctx, settings.Core, record.Query{Text: text, Filters: toplevelOnly})
	if err != nil {
		return Result{}, engineErr(settings.Core, err)
	}

	uids := toplevelUIDs(page.Hits)
	docs := map[int64]catalog.Document{}
	if len(uids) > 0 {
		docs, err = s.docs.FindManyByPrimaryKey(ctx, uids)
		if err != nil {
			return Result{}, fmt.Errorf("hydrate: %w", err)
		}
	}

	var misses []int64
	for _, uid := range uids {
		if _, ok := docs[uid]; !ok {
			misses = append(misses, uid)
		}
	}
	if len(misses) > 0 {
		metrics.HydrationMissesTotal.WithLabelValues(settings.Core).Add(float64(len(misses)))
		s.logger.Debug("toplevel hits without relational row",
			zap.String("core", settings.Core),
			zap.Int64s("uids", misses),
		)
	}

	return Result{
		NumberOfToplevels: total,
		Hits:              page.Hits,
		Documents:         docs,
		Misses:            misses,
	}, nil
}

func scopeConditions(collections []string, pid int64) ([]filter.Condition, error) {
	var must []filter.Condition
	if pid > 0 {
		c, err := filter.NewMatch(fieldPid, strconv.FormatInt(pid, 10))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
		}
		must = append(must, c)
	}

	var labels []string
	for _, c := range collections {
		if c = strings.TrimSpace(c); c != "" {
			labels = append(labels, c)
		}
	}
	if len(labels) > 0 {
		c, err := filter.NewMatchAny(fieldCollection, labels...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
		}
		must = append(must, c)
	}
	return must, nil
}

func withToplevel(must []filter.Condition) (filter.Expression, error) {
	top, err := filter.NewMatch(fieldToplevel, "true")
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	conds := append(append([]filter.Condition(nil), must...), top)
	expr, err := filter.NewExpression(conds...)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	return expr, nil
}

// toplevelUIDs returns the distinct uids of toplevel hits in hit order.
func toplevelUIDs(hits []record.Hit) []int64 {
	seen := make(map[int64]struct{}, len(hits))
	var out []int64
	for _, h := range hits {
		if !h.Toplevel || h.UID <= 0 {
			continue
		}
		if _, dup := seen[h.UID]; dup {
			continue
		}
		seen[h.UID] = struct{}{}
		out = append(out, h.UID)
	}
	return out
}

// engineErr classifies a search failure. Only transport failures mean the engine is
// unavailable; a missing core is not found and a rejected query is an invalid argument.
func engineErr(core string, err error) error {
	switch {
	case errors.Is(err, db.ErrIndexNotFound):
		return fmt.Errorf("core %s: %w: %w", core, domain.ErrNotFound, err)
	case errors.Is(err, db.ErrRejected):
		return fmt.Errorf("%w: query rejected: %w", domain.ErrInvalidArgument, err)
	case errors.Is(err, db.ErrUnavailable):
		return fmt.Errorf("%w: %w", domain.ErrSearchEngineUnavailable, err)
	default:
		return fmt.Errorf("search %s: %w", core, err)
	}
}
