package dlfindex

import (
	"context"

	dombatch "github.com/kailas-cloud/dlfindex/internal/domain/batch"
	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
	healthuc "github.com/kailas-cloud/dlfindex/internal/usecase/health"
	mediauc "github.com/kailas-cloud/dlfindex/internal/usecase/media"
	queryuc "github.com/kailas-cloud/dlfindex/internal/usecase/query"
)

// --- coreUseCase mock ---

type mockCoreUC struct {
	createFn func(ctx context.Context, name string) (string, error)
	getFn    func(ctx context.Context, name string) (domcore.Handle, error)
	listFn   func(ctx context.Context) ([]domcore.Info, error)
}

func (m *mockCoreUC) CreateCore(ctx context.Context, name string) (string, error) {
	return m.createFn(ctx, name)
}

func (m *mockCoreUC) GetInstance(ctx context.Context, name string) (domcore.Handle, error) {
	return m.getFn(ctx, name)
}

func (m *mockCoreUC) List(ctx context.Context) ([]domcore.Info, error) {
	return m.listFn(ctx)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	addFn     func(ctx context.Context, uid int64, core string) (bool, error)
	addManyFn func(ctx context.Context, uids []int64, core string) []dombatch.Result
	deleteFn  func(ctx context.Context, uid int64, core string) error
}

func (m *mockIndexUC) AddByUID(ctx context.Context, uid int64, core string) (bool, error) {
	return m.addFn(ctx, uid, core)
}

func (m *mockIndexUC) AddMany(ctx context.Context, uids []int64, core string) []dombatch.Result {
	return m.addManyFn(ctx, uids, core)
}

func (m *mockIndexUC) Delete(ctx context.Context, uid int64, core string) error {
	return m.deleteFn(ctx, uid, core)
}

// --- queryUseCase mock ---

type mockQueryUC struct {
	findFn func(
		ctx context.Context, collections []string, settings queryuc.CoreSettings, opts queryuc.Options,
	) (queryuc.Result, error)
}

func (m *mockQueryUC) FindByCollection(
	ctx context.Context, collections []string, settings queryuc.CoreSettings, opts queryuc.Options,
) (queryuc.Result, error) {
	return m.findFn(ctx, collections, settings, opts)
}

// --- mediaUseCase mock ---

type mockMediaUC struct {
	resolveFn func(ctx context.Context, uid int64, page string, groups []string) (mediauc.Item, error)
}

func (m *mockMediaUC) Resolve(ctx context.Context, uid int64, page string, groups []string) (mediauc.Item, error) {
	return m.resolveFn(ctx, uid, page, groups)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- catalogStore mock ---

type mockCatalog struct {
	rows    map[int64]*catalog.Document
	deleted []int64
	err     error
	closed  bool
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{rows: map[int64]*catalog.Document{}}
}

func (m *mockCatalog) SaveLibrary(context.Context, catalog.Library) error       { return m.err }
func (m *mockCatalog) SaveCollection(context.Context, catalog.Collection) error { return m.err }

func (m *mockCatalog) SaveDocument(_ context.Context, doc *catalog.Document) error {
	if m.err != nil {
		return m.err
	}
	m.rows[doc.UID] = doc
	return nil
}

func (m *mockCatalog) DeleteDocument(_ context.Context, uid int64) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, uid)
	delete(m.rows, uid)
	return nil
}

func (m *mockCatalog) FindByPrimaryKey(_ context.Context, uid int64) (*catalog.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[uid], nil
}

func (m *mockCatalog) Close() error {
	m.closed = true
	return nil
}

// --- engineConn mock ---

type mockEngine struct {
	pingErr error
	closed  bool
}

func (m *mockEngine) Ping(context.Context) error { return m.pingErr }
func (m *mockEngine) Close()                     { m.closed = true }
