package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dlfindex/internal/config"
	dbRedis "github.com/kailas-cloud/dlfindex/internal/db/redis"
	"github.com/kailas-cloud/dlfindex/internal/domain"
	logpkg "github.com/kailas-cloud/dlfindex/internal/logger"
	"github.com/kailas-cloud/dlfindex/internal/metrics"
	corerepo "github.com/kailas-cloud/dlfindex/internal/repository/core"
	"github.com/kailas-cloud/dlfindex/internal/repository/doccache"
	recordrepo "github.com/kailas-cloud/dlfindex/internal/repository/record"
	"github.com/kailas-cloud/dlfindex/internal/repository/sqlite"
	chiTransport "github.com/kailas-cloud/dlfindex/internal/transport/chi"
	metsTransport "github.com/kailas-cloud/dlfindex/internal/transport/mets"
	coreuc "github.com/kailas-cloud/dlfindex/internal/usecase/core"
	healthuc "github.com/kailas-cloud/dlfindex/internal/usecase/health"
	"github.com/kailas-cloud/dlfindex/internal/usecase/indexer"
	mediauc "github.com/kailas-cloud/dlfindex/internal/usecase/media"
	queryuc "github.com/kailas-cloud/dlfindex/internal/usecase/query"
	"github.com/kailas-cloud/dlfindex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dlfindex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("relational_path", cfg.Relational.Path),
	)

	domain.KeyPrefix = cfg.Storage.KeyPrefix

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create search engine store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	docs, err := sqlite.Open(cfg.Relational.Path)
	if err != nil {
		logger.Fatal("Failed to open relational store", zap.Error(err))
	}
	defer func() { _ = docs.Close() }()
	logger.Info("Opened relational store", zap.String("path", docs.Path()))

	// Registered explicitly, not from init.
	metrics.RegisterDomainMetrics()

	// Indexing always reads the descriptor fresh and then evicts it from the media cache.
	parser := metsTransport.NewParser(&metsTransport.Config{
		Fetcher:  metsTransport.NewFetcher(time.Duration(cfg.Documents.FetchTimeoutSec) * time.Second),
		MaxBytes: cfg.Documents.MaxBytes,
		Logger:   logger,
	})
	loader := doccache.New(parser, cfg.Documents.CacheSize)

	records := recordrepo.New(store)
	cores := corerepo.New(store)

	coreSvc := coreuc.New(cores, logger)
	indexSvc := indexer.New(records, docs, cores, parser, logger).
		WithFileGroups(cfg.Documents.FileGroups).
		WithConcurrency(cfg.Index.BulkConcurrency).
		WithCacheInvalidator(loader)
	querySvc := queryuc.New(records, docs, logger).
		WithPagination(cfg.Index.DefaultRows, cfg.Index.MaxRows)
	mediaSvc := mediauc.New(docs, loader, cfg.Documents.MediaGroups, logger)
	healthSvc := healthuc.New(store, docs)

	server := chiTransport.NewServer(coreSvc, indexSvc, querySvc, mediaSvc, healthSvc, logger).
		WithMaxBulk(cfg.Index.MaxBatchSize)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.AccessLog(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.Handler(server, chiTransport.HandlerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeBadRequest(w, err)
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully", zap.Int("cached_documents", loader.Len()))
}

func writeBadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
		Code:    chiTransport.CodeBadRequest,
		Message: err.Error(),
	})
}
