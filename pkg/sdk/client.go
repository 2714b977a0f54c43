package dlfindex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dbRedis "github.com/kailas-cloud/dlfindex/internal/db/redis"
	"github.com/kailas-cloud/dlfindex/internal/domain"
	dombatch "github.com/kailas-cloud/dlfindex/internal/domain/batch"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
	corerepo "github.com/kailas-cloud/dlfindex/internal/repository/core"
	"github.com/kailas-cloud/dlfindex/internal/repository/doccache"
	recordrepo "github.com/kailas-cloud/dlfindex/internal/repository/record"
	"github.com/kailas-cloud/dlfindex/internal/repository/sqlite"
	metsTransport "github.com/kailas-cloud/dlfindex/internal/transport/mets"
	coreuc "github.com/kailas-cloud/dlfindex/internal/usecase/core"
	healthuc "github.com/kailas-cloud/dlfindex/internal/usecase/health"
	"github.com/kailas-cloud/dlfindex/internal/usecase/indexer"
	mediauc "github.com/kailas-cloud/dlfindex/internal/usecase/media"
	queryuc "github.com/kailas-cloud/dlfindex/internal/usecase/query"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultRelationalPath   = "data/dlfindex.db"
)

// Internal interfaces, replaced by mocks in tests.
type coreUseCase interface {
	CreateCore(ctx context.Context, name string) (string, error)
	GetInstance(ctx context.Context, name string) (domcore.Handle, error)
	List(ctx context.Context) ([]domcore.Info, error)
}

type indexUseCase interface {
	AddByUID(ctx context.Context, uid int64, coreName string) (bool, error)
	AddMany(ctx context.Context, uids []int64, coreName string) []dombatch.Result
	Delete(ctx context.Context, databaseID int64, coreName string) error
}

type queryUseCase interface {
	FindByCollection(
		ctx context.Context, collections []string, settings queryuc.CoreSettings, opts queryuc.Options,
	) (queryuc.Result, error)
}

type mediaUseCase interface {
	Resolve(ctx context.Context, uid int64, rawPage string, groups []string) (mediauc.Item, error)
}

type engineConn interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the dlfindex SDK entry point.
type Client struct {
	engine    engineConn
	catalog   catalogStore
	coreSvc   coreUseCase
	indexSvc  indexUseCase
	querySvc  queryUseCase
	mediaSvc  mediaUseCase
	healthSvc healthUseCase
	cached    func() int
	obs       *observer
}

// New connects to the search engine, opens the relational store and wires the services.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{relationalPath: defaultRelationalPath}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("dlfindex: search engine address required (use WithRedis)")
	}
	if cfg.keyPrefix != "" {
		if !strings.HasSuffix(cfg.keyPrefix, ":") {
			return nil, fmt.Errorf("dlfindex: key prefix %q must end with ':'", cfg.keyPrefix)
		}
		domain.KeyPrefix = cfg.keyPrefix
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	engine, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("dlfindex: create search engine store: %w", err)
	}
	if err := engine.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		engine.Close()
		return nil, fmt.Errorf("dlfindex: search engine not ready: %w", err)
	}

	docs, err := sqlite.Open(cfg.relationalPath)
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("dlfindex: open relational store: %w", err)
	}

	return wireClient(engine, docs, cfg, obs), nil
}

func wireClient(engine *dbRedis.Store, docs *sqlite.Store, cfg *clientConfig, obs *observer) *Client {
	parser := metsTransport.NewParser(&metsTransport.Config{
		Fetcher:  metsTransport.NewFetcher(cfg.fetchTimeout),
		MaxBytes: cfg.maxBytes,
	})
	loader := doccache.New(parser, cfg.cacheSize)

	records := recordrepo.New(engine)
	cores := corerepo.New(engine)

	return &Client{
		engine:  engine,
		catalog: docs,
		coreSvc: coreuc.New(cores, nil),
		indexSvc: indexer.New(records, docs, cores, parser, nil).
			WithFileGroups(cfg.fileGroups).
			WithConcurrency(cfg.concurrency).
			WithCacheInvalidator(loader),
		querySvc: queryuc.New(records, docs, nil).
			WithPagination(cfg.defaultRows, cfg.maxRows),
		mediaSvc:  mediauc.New(docs, loader, cfg.mediaGroups, nil),
		healthSvc: healthuc.New(engine, docs),
		cached:    loader.Len,
		obs:       obs,
	}
}

// Close releases the search engine connection and the relational store.
func (c *Client) Close() error {
	if c.engine != nil {
		c.engine.Close()
	}
	if c.catalog != nil {
		return c.catalog.Close()
	}
	return nil
}

// Ping checks search engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// CachedDocuments reports how many parsed descriptors Media keeps in memory.
func (c *Client) CachedDocuments() int {
	if c.cached == nil {
		return 0
	}
	return c.cached()
}
