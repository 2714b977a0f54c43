package chi

import (
	"time"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeNotFound           ErrorCode = "not_found"
	CodeCoreExists         ErrorCode = "core_already_exists"
	CodeCoreCreationFailed ErrorCode = "core_creation_failed"
	CodeInvalidDocument    ErrorCode = "invalid_document"
	CodePageNotFound       ErrorCode = "page_not_found"
	CodeNoMedia            ErrorCode = "no_media"
	CodeIndexRejected      ErrorCode = "index_rejected"
	CodeEngineUnavailable  ErrorCode = "search_engine_unavailable"
	CodeStorageUnavailable ErrorCode = "storage_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

// CreateCoreRequest is the body of POST /cores.
type CreateCoreRequest struct {
	Name string `json:"name,omitempty"`
}

// CoreResponse describes one core.
type CoreResponse struct {
	Name      string     `json:"name"`
	Exists    bool       `json:"exists"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CoreListResponse is the body of GET /cores.
type CoreListResponse struct {
	Items []CoreResponse `json:"items"`
}

// IndexResponse reports whether a document was written to the core.
type IndexResponse struct {
	UID     int64 `json:"uid"`
	Indexed bool  `json:"indexed"`
}

// BulkIndexRequest is the body of POST /documents/index.
type BulkIndexRequest struct {
	Core string  `json:"core"`
	UIDs []int64 `json:"uids"`
}

// BulkIndexItem is the outcome for one uid of a bulk request.
type BulkIndexItem struct {
	ID     string     `json:"id"`
	Status string     `json:"status"`
	Error  *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo is an inline error of a bulk item.
type ErrorInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// BulkIndexResponse is the body of POST /documents/index.
type BulkIndexResponse struct {
	Items     []BulkIndexItem `json:"items"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// SearchHit is one raw record of a search page.
type SearchHit struct {
	ID          string              `json:"id"`
	UID         int64               `json:"uid"`
	Toplevel    bool                `json:"toplevel"`
	Type        string              `json:"type,omitempty"`
	Title       string              `json:"title,omitempty"`
	LogicalID   string              `json:"logical_id,omitempty"`
	Page        int                 `json:"page,omitempty"`
	Collections []string            `json:"collections,omitempty"`
	Files       map[string][]string `json:"files,omitempty"`
}

// SearchDocument is the relational row of a toplevel hit.
type SearchDocument struct {
	UID         int64     `json:"uid"`
	Pid         int64     `json:"pid"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Owner       string    `json:"owner,omitempty"`
	Collections []string  `json:"collections"`
	Tstamp      time.Time `json:"tstamp"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	NumberOfToplevels int              `json:"number_of_toplevels"`
	Hits              []SearchHit      `json:"hits"`
	Documents         []SearchDocument `json:"documents"`
	Misses            []int64          `json:"misses,omitempty"`
}

func hitToResponse(h record.Hit) SearchHit {
	return SearchHit{
		ID:          h.ID,
		UID:         h.UID,
		Toplevel:    h.Toplevel,
		Type:        h.Type,
		Title:       h.Title,
		LogicalID:   h.LogicalID,
		Page:        h.Page,
		Collections: h.Collections,
		Files:       h.Files,
	}
}

func documentToResponse(d catalog.Document) SearchDocument {
	return SearchDocument{
		UID:         d.UID,
		Pid:         d.Pid,
		Title:       d.Title,
		Location:    d.Location,
		Owner:       d.Owner.Label,
		Collections: d.CollectionLabels(),
		Tstamp:      d.Tstamp.UTC(),
	}
}
