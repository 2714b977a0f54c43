package indexer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/dlfindex/internal/db"
	"github.com/kailas-cloud/dlfindex/internal/domain"
	dombatch "github.com/kailas-cloud/dlfindex/internal/domain/batch"
	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/metrics"
)

// Defaults for bulk indexing.
const (
	DefaultConcurrency = 4
	MaxBatchSize       = 500
)

// DefaultFileGroups are indexed when no groups are configured.
var DefaultFileGroups = []string{"DEFAULT", "AUDIO", "FULLTEXT"}

// Service projects parsed documents into search cores.
type Service struct {
	records     RecordWriter
	docs        DocumentReader
	cores       CoreResolver
	loader      DocumentLoader
	cache       CacheInvalidator
	fileGroups  []string
	concurrency int
	locks       *keyedMutex
	logger      *zap.Logger
}

// New creates an indexer service.
func New(
	records RecordWriter, docs DocumentReader, cores CoreResolver, loader DocumentLoader, logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records:     records,
		docs:        docs,
		cores:       cores,
		loader:      loader,
		fileGroups:  DefaultFileGroups,
		concurrency: DefaultConcurrency,
		locks:       newKeyedMutex(),
		logger:      logger,
	}
}

// WithFileGroups configures the file groups whose references are indexed.
func (s *Service) WithFileGroups(groups []string) *Service {
	if len(groups) > 0 {
		s.fileGroups = groups
	}
	return s
}

// WithCacheInvalidator drops cached descriptors of documents after they are reindexed.
func (s *Service) WithCacheInvalidator(c CacheInvalidator) *Service {
	s.cache = c
	return s
}

// WithConcurrency bounds parallel documents in AddMany.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Add indexes doc under databaseID into the named core, superseding any earlier generation.
// It returns false with a nil error when the engine rejects the write; the caller may retry.
func (s *Service) Add(ctx context.Context, doc *mets.Document, databaseID int64, coreName string) (bool, error) {
	if doc == nil || len(doc.PhysicalStructure()) == 0 {
		return false, fmt.Errorf("document %d has no physical structure: %w", databaseID, domain.ErrInvalidDocument)
	}

	row, err := s.findRow(ctx, databaseID)
	if err != nil {
		return false, err
	}
	return s.add(ctx, doc, row, coreName)
}

// AddByUID loads the relational row, parses its descriptor and indexes it.
func (s *Service) AddByUID(ctx context.Context, uid int64, coreName string) (bool, error) {
	row, err := s.findRow(ctx, uid)
	if err != nil {
		return false, err
	}

	doc, err := s.loader.Parse(ctx, row.Location, row.Format)
	if err != nil {
		return false, fmt.Errorf("load document %d: %w", uid, err)
	}
	if len(doc.PhysicalStructure()) == 0 {
		return false, fmt.Errorf("document %d has no physical structure: %w", uid, domain.ErrInvalidDocument)
	}

	ok, err := s.add(ctx, doc, row, coreName)
	if ok && s.cache != nil {
		s.cache.Invalidate(row.Location, row.Format)
	}
	return ok, err
}

// AddMany indexes documents concurrently and reports one result per uid, in input order.
func (s *Service) AddMany(ctx context.Context, uids []int64, coreName string) []dombatch.Result {
	results := make([]dombatch.Result, len(uids))

	if len(uids) > MaxBatchSize {
		for i, uid := range uids {
			results[i] = dombatch.NewError(strconv.FormatInt(uid, 10),
				fmt.Errorf("batch size exceeds %d: %w", MaxBatchSize, domain.ErrInvalidArgument))
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, uid := range uids {
		g.Go(func() error {
			id := strconv.FormatInt(uid, 10)
			ok, err := s.AddByUID(gctx, uid, coreName)
			switch {
			case err != nil:
				results[i] = dombatch.NewError(id, err)
			case !ok:
				results[i] = dombatch.NewRejected(id)
			default:
				results[i] = dombatch.NewOK(id)
			}
			return nil
		})
	}
	_ = g.Wait()

	counts := dombatch.Count(results)
	s.logger.Info("bulk indexing finished",
		zap.String("core", coreName),
		zap.Int("ok", counts[dombatch.StatusOK]),
		zap.Int("rejected", counts[dombatch.StatusRejected]),
		zap.Int("failed", counts[dombatch.StatusError]),
	)
	return results
}

// Delete removes every record of a document from the core.
func (s *Service) Delete(ctx context.Context, databaseID int64, coreName string) error {
	if _, err := s.resolve(ctx, coreName); err != nil {
		return err
	}

	unlock := s.locks.Lock(databaseID)
	defer unlock()

	if err := s.records.Remove(ctx, coreName, databaseID); err != nil {
		return engineErr(fmt.Errorf("remove document %d: %w", databaseID, err))
	}
	s.logger.Info("document removed from index", zap.Int64("uid", databaseID), zap.String("core", coreName))
	return nil
}

func (s *Service) add(ctx context.Context, doc *mets.Document, row *catalog.Document, coreName string) (bool, error) {
	if _, err := s.resolve(ctx, coreName); err != nil {
		return false, err
	}

	start := time.Now()
	records := Project(doc, row, s.fileGroups)

	unlock := s.locks.Lock(row.UID)
	gen, err := s.records.Replace(ctx, coreName, row.UID, records)
	unlock()

	metrics.IndexingDuration.WithLabelValues(coreName).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, db.ErrRejected) || errors.Is(err, db.ErrTxAborted) {
			metrics.IndexingTotal.WithLabelValues(coreName, "rejected").Inc()
			s.logger.Warn("index write rejected",
				zap.Int64("uid", row.UID),
				zap.String("core", coreName),
				zap.Error(err),
			)
			return false, nil
		}
		metrics.IndexingTotal.WithLabelValues(coreName, "error").Inc()
		return false, engineErr(fmt.Errorf("index document %d: %w", row.UID, err))
	}

	metrics.IndexingTotal.WithLabelValues(coreName, "indexed").Inc()
	metrics.IndexedRecordsTotal.WithLabelValues(coreName).Add(float64(len(records)))
	s.logger.Info("document indexed",
		zap.Int64("uid", row.UID),
		zap.String("core", coreName),
		zap.Int("records", len(records)),
		zap.Int64("generation", gen),
	)
	return true, nil
}

// findRow requires the relational row to exist before indexing.
func (s *Service) findRow(ctx context.Context, uid int64) (*catalog.Document, error) {
	row, err := s.docs.FindByPrimaryKey(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("find document %d: %w", uid, err)
	}
	if row == nil {
		return nil, fmt.Errorf("document %d not in storage: %w", uid, domain.ErrInvalidDocument)
	}
	return row, nil
}

func (s *Service) resolve(ctx context.Context, coreName string) (string, error) {
	if coreName == "" {
		return "", fmt.Errorf("core name is required: %w", domain.ErrInvalidDocument)
	}
	h, err := s.cores.Resolve(ctx, coreName)
	if err != nil {
		return "", engineErr(fmt.Errorf("resolve core %s: %w", coreName, err))
	}
	if !h.Exists() {
		return "", fmt.Errorf("core %s does not exist: %w", coreName, domain.ErrInvalidDocument)
	}
	return h.Core, nil
}

func engineErr(err error) error {
	if errors.Is(err, domain.ErrSearchEngineUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrSearchEngineUnavailable, err)
}
