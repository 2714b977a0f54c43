package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Core       string    `form:"core" json:"core"`
	Pid        *int64    `form:"pid,omitempty" json:"pid,omitempty"`
	Collection *[]string `form:"collection,omitempty" json:"collection,omitempty"`
	Q          *string   `form:"q,omitempty" json:"q,omitempty"`
	Offset     *int      `form:"offset,omitempty" json:"offset,omitempty"`
	Rows       *int      `form:"rows,omitempty" json:"rows,omitempty"`
}

// IndexParams select the target core of single-document index operations.
type IndexParams struct {
	Core string `form:"core" json:"core"`
}

// MediaParams are the query parameters of GET /documents/{uid}/media.
type MediaParams struct {
	Page   *string   `form:"page,omitempty" json:"page,omitempty"`
	Groups *[]string `form:"groups,omitempty" json:"groups,omitempty"`
}

// ServerInterface lists every handler of the API.
type ServerInterface interface {
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
	// (GET /cores)
	ListCores(w http.ResponseWriter, r *http.Request)
	// (POST /cores)
	CreateCore(w http.ResponseWriter, r *http.Request)
	// (GET /cores/{name})
	GetCore(w http.ResponseWriter, r *http.Request, name string)
	// (POST /documents/index)
	BulkIndex(w http.ResponseWriter, r *http.Request)
	// (POST /documents/{uid}/index)
	IndexDocument(w http.ResponseWriter, r *http.Request, uid int64, params IndexParams)
	// (DELETE /documents/{uid}/index)
	DeleteDocumentIndex(w http.ResponseWriter, r *http.Request, uid int64, params IndexParams)
	// (GET /documents/{uid}/media)
	GetMedia(w http.ResponseWriter, r *http.Request, uid int64, params MediaParams)
	// (GET /search)
	Search(w http.ResponseWriter, r *http.Request, params SearchParams)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// HandlerOptions configures Handler.
type HandlerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler mounts si on a router and binds path and query parameters.
func Handler(si ServerInterface, opts HandlerOptions) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if opts.ErrorHandlerFunc == nil {
		opts.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		}
	}
	wrapper := &serverWrapper{handler: si, errorHandler: opts.ErrorHandlerFunc}

	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)
	r.Get("/cores", si.ListCores)
	r.Post("/cores", si.CreateCore)
	r.Get("/cores/{name}", wrapper.GetCore)
	r.Post("/documents/index", si.BulkIndex)
	r.Post("/documents/{uid}/index", wrapper.IndexDocument)
	r.Delete("/documents/{uid}/index", wrapper.DeleteDocumentIndex)
	r.Get("/documents/{uid}/media", wrapper.GetMedia)
	r.Get("/search", wrapper.Search)
	return r
}

type serverWrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw *serverWrapper) GetCore(w http.ResponseWriter, r *http.Request) {
	var name string
	if err := bindPath(r, "name", &name); err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	sw.handler.GetCore(w, r, name)
}

func (sw *serverWrapper) IndexDocument(w http.ResponseWriter, r *http.Request) {
	uid, params, err := bindIndex(r)
	if err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	sw.handler.IndexDocument(w, r, uid, params)
}

func (sw *serverWrapper) DeleteDocumentIndex(w http.ResponseWriter, r *http.Request) {
	uid, params, err := bindIndex(r)
	if err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	sw.handler.DeleteDocumentIndex(w, r, uid, params)
}

func (sw *serverWrapper) GetMedia(w http.ResponseWriter, r *http.Request) {
	var uid int64
	if err := bindPath(r, "uid", &uid); err != nil {
		sw.errorHandler(w, r, err)
		return
	}

	var params MediaParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &params.Page); err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "page", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "groups", q, &params.Groups); err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "groups", Err: err})
		return
	}
	sw.handler.GetMedia(w, r, uid, params)
}

func (sw *serverWrapper) Search(w http.ResponseWriter, r *http.Request) {
	var params SearchParams
	q := r.URL.Query()

	bindings := []struct {
		name     string
		explode  bool
		required bool
		dest     any
	}{
		{"core", true, true, &params.Core},
		{"pid", true, false, &params.Pid},
		{"collection", true, false, &params.Collection},
		{"q", true, false, &params.Q},
		{"offset", true, false, &params.Offset},
		{"rows", true, false, &params.Rows},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", b.explode, b.required, b.name, q, b.dest); err != nil {
			sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: b.name, Err: err})
			return
		}
	}
	sw.handler.Search(w, r, params)
}

func bindIndex(r *http.Request) (int64, IndexParams, error) {
	var uid int64
	if err := bindPath(r, "uid", &uid); err != nil {
		return 0, IndexParams{}, err
	}
	var params IndexParams
	if err := runtime.BindQueryParameter("form", true, true, "core", r.URL.Query(), &params.Core); err != nil {
		return 0, IndexParams{}, &InvalidParamFormatError{ParamName: "core", Err: err}
	}
	return uid, params, nil
}

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}
