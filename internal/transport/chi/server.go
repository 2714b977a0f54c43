package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dlfindex/internal/domain"
	dombatch "github.com/kailas-cloud/dlfindex/internal/domain/batch"
	logpkg "github.com/kailas-cloud/dlfindex/internal/logger"
	healthuc "github.com/kailas-cloud/dlfindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/dlfindex/internal/usecase/query"
	"github.com/kailas-cloud/dlfindex/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface over the indexing and query services.
type Server struct {
	cores         CoreManager
	indexer       Indexer
	query         QueryEngine
	media         MediaResolver
	health        HealthChecker
	maxBulk       int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	cores CoreManager,
	indexer Indexer,
	query QueryEngine,
	media MediaResolver,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cores:   cores,
		indexer: indexer,
		query:   query,
		media:   media,
		health:  health,
		maxBulk: 500,
		logger:  logger,
	}
	// Order matters: a core creation error caused by an outage reports the outage.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeCoreExists),
		sentinelHandler(domain.ErrSearchEngineUnavailable, http.StatusServiceUnavailable, CodeEngineUnavailable),
		sentinelHandler(domain.ErrStorageUnavailable, http.StatusServiceUnavailable, CodeStorageUnavailable),
		sentinelHandler(domain.ErrCoreCreation, http.StatusUnprocessableEntity, CodeCoreCreationFailed),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrPageNotFound, http.StatusNotFound, CodePageNotFound),
		sentinelHandler(domain.ErrNoMedia, http.StatusNotFound, CodeNoMedia),
		sentinelHandler(domain.ErrInvalidDocument, http.StatusUnprocessableEntity, CodeInvalidDocument),
		sentinelHandler(domain.ErrMalformedDocument, http.StatusUnprocessableEntity, CodeInvalidDocument),
		sentinelHandler(domain.ErrUnsupportedFormat, http.StatusUnprocessableEntity, CodeInvalidDocument),
	}
	return s
}

// WithMaxBulk caps the number of uids of one bulk index request.
func (s *Server) WithMaxBulk(n int) *Server {
	if n > 0 {
		s.maxBulk = n
	}
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ListCores handles GET /cores.
func (s *Server) ListCores(w http.ResponseWriter, r *http.Request) {
	infos, err := s.cores.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]CoreResponse, len(infos))
	for i, info := range infos {
		created := time.UnixMilli(info.CreatedAt).UTC()
		items[i] = CoreResponse{Name: info.Name, Exists: true, CreatedAt: &created}
	}
	writeJSON(w, http.StatusOK, CoreListResponse{Items: items})
}

// CreateCore handles POST /cores. An empty body or name creates a core with a generated name.
func (s *Server) CreateCore(w http.ResponseWriter, r *http.Request) {
	var req CreateCoreRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	name, err := s.cores.CreateCore(r.Context(), req.Name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CoreResponse{Name: name, Exists: true})
}

// GetCore handles GET /cores/{name}.
func (s *Server) GetCore(w http.ResponseWriter, r *http.Request, name string) {
	h, err := s.cores.GetInstance(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CoreResponse{Name: name, Exists: h.Exists()})
}

// IndexDocument handles POST /documents/{uid}/index.
func (s *Server) IndexDocument(w http.ResponseWriter, r *http.Request, uid int64, params IndexParams) {
	r = r.WithContext(logpkg.With(r.Context(), zap.Int64("uid", uid), zap.String("core", params.Core)))
	ok, err := s.indexer.AddByUID(r.Context(), uid, params.Core)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusBadGateway, CodeIndexRejected,
			fmt.Sprintf("search engine rejected document %d", uid))
		return
	}
	writeJSON(w, http.StatusOK, IndexResponse{UID: uid, Indexed: true})
}

// DeleteDocumentIndex handles DELETE /documents/{uid}/index.
func (s *Server) DeleteDocumentIndex(w http.ResponseWriter, r *http.Request, uid int64, params IndexParams) {
	r = r.WithContext(logpkg.With(r.Context(), zap.Int64("uid", uid), zap.String("core", params.Core)))
	if err := s.indexer.Delete(r.Context(), uid, params.Core); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkIndex handles POST /documents/index.
func (s *Server) BulkIndex(w http.ResponseWriter, r *http.Request) {
	var req BulkIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Core == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "core is required")
		return
	}
	if len(req.UIDs) == 0 || len(req.UIDs) > s.maxBulk {
		writeError(w, http.StatusBadRequest, CodeBadRequest,
			fmt.Sprintf("uids count must be between 1 and %d", s.maxBulk))
		return
	}

	results := s.indexer.AddMany(r.Context(), req.UIDs, req.Core)

	items := make([]BulkIndexItem, len(results))
	for i, res := range results {
		items[i] = batchResultToResponse(res)
	}
	counts := dombatch.Count(results)
	writeJSON(w, http.StatusOK, BulkIndexResponse{
		Items:     items,
		Succeeded: counts[dombatch.StatusOK],
		Failed:    len(results) - counts[dombatch.StatusOK],
	})
}

// GetMedia handles GET /documents/{uid}/media.
func (s *Server) GetMedia(w http.ResponseWriter, r *http.Request, uid int64, params MediaParams) {
	var page string
	if params.Page != nil {
		page = *params.Page
	}
	var groups []string
	if params.Groups != nil {
		groups = *params.Groups
	}

	item, err := s.media.Resolve(r.Context(), uid, page, groups)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params SearchParams) {
	settings := queryuc.CoreSettings{Core: params.Core}
	if params.Pid != nil {
		settings.StoragePid = *params.Pid
	}
	var collections []string
	if params.Collection != nil {
		collections = *params.Collection
	}

	res, err := s.query.FindByCollection(r.Context(), collections, settings, queryuc.Options{
		Query:  deref(params.Q),
		Offset: deref(params.Offset),
		Rows:   deref(params.Rows),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultToResponse(res))
}

func searchResultToResponse(res queryuc.Result) SearchResponse {
	hits := make([]SearchHit, len(res.Hits))
	for i, h := range res.Hits {
		hits[i] = hitToResponse(h)
	}

	// Documents follow hit order so clients can render them directly.
	docs := make([]SearchDocument, 0, len(res.Documents))
	seen := make(map[int64]struct{}, len(res.Documents))
	for _, h := range res.Hits {
		d, ok := res.Documents[h.UID]
		if !ok || !h.Toplevel {
			continue
		}
		if _, dup := seen[d.UID]; dup {
			continue
		}
		seen[d.UID] = struct{}{}
		docs = append(docs, documentToResponse(d))
	}

	return SearchResponse{
		NumberOfToplevels: res.NumberOfToplevels,
		Hits:              hits,
		Documents:         docs,
		Misses:            res.Misses,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrAlreadyExists,
		domain.ErrSearchEngineUnavailable,
		domain.ErrStorageUnavailable,
		domain.ErrCoreCreation,
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
		domain.ErrPageNotFound,
		domain.ErrNoMedia,
		domain.ErrInvalidDocument,
		domain.ErrMalformedDocument,
		domain.ErrUnsupportedFormat,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// requestLogger prefers the request-scoped logger placed by the access log middleware.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

func batchResultToResponse(r dombatch.Result) BulkIndexItem {
	item := BulkIndexItem{
		ID:     r.ID(),
		Status: string(r.Status()),
	}
	if r.Err() != nil {
		item.Error = &ErrorInfo{
			Code:    batchErrorCode(r.Err()),
			Message: safeDomainMessage(r.Err()),
		}
	}
	return item
}

func batchErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, domain.ErrSearchEngineUnavailable):
		return CodeEngineUnavailable
	case errors.Is(err, domain.ErrStorageUnavailable):
		return CodeStorageUnavailable
	case errors.Is(err, domain.ErrInvalidArgument):
		return CodeBadRequest
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrMalformedDocument),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return CodeInvalidDocument
	default:
		return CodeInternalError
	}
}
