package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

type mockRecords struct {
	replaceFn func(ctx context.Context, core string, uid int64, records []record.Record) (int64, error)
	removeFn  func(ctx context.Context, core string, uid int64) error
}

func (m *mockRecords) Replace(ctx context.Context, core string, uid int64, records []record.Record) (int64, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, core, uid, records)
	}
	return 1, nil
}

func (m *mockRecords) Remove(ctx context.Context, core string, uid int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, core, uid)
	}
	return nil
}

type mockDocs struct {
	rows map[int64]*catalog.Document
	err  error
}

func (m *mockDocs) FindByPrimaryKey(_ context.Context, uid int64) (*catalog.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[uid], nil
}

type mockCores struct {
	resolveFn func(ctx context.Context, name string) (domcore.Handle, error)
}

func (m *mockCores) Resolve(ctx context.Context, name string) (domcore.Handle, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, name)
	}
	return domcore.Handle{Name: name, Core: "dlf:" + name + ":idx"}, nil
}

type mockLoader struct {
	parseFn func(ctx context.Context, location, format string) (*mets.Document, error)
}

func (m *mockLoader) Parse(ctx context.Context, location, format string) (*mets.Document, error) {
	if m.parseFn != nil {
		return m.parseFn(ctx, location, format)
	}
	return nil, nil
}

// sampleRow is the relational row of the sample document.
func sampleRow() *catalog.Document {
	return &catalog.Document{
		UID: 1001, Pid: 20000, Location: "/data/1001.xml", Format: mets.FormatMETS,
		Title: "Sonaten", Owner: catalog.Library{UID: 1, Label: "Default Library"},
		Collections: []catalog.Collection{{UID: 1, Label: "Musik"}, {UID: 3, Label: "Digitalisate"}},
		Tstamp:      time.Unix(1700000000, 0),
	}
}

// newSampleDocument has three pages; page 2 lacks an AUDIO file. LOG_0001 spans pages 2 and 1,
// LOG_0002 nests below it without pages and LOG_0003 covers page 3.
func newSampleDocument(t *testing.T) *mets.Document {
	t.Helper()

	page := func(id string, order int, groups map[string]string) mets.PhysicalUnit {
		u := mets.PhysicalUnit{ID: id, Type: "page", Order: order}
		for _, g := range []string{"DEFAULT", "AUDIO"} {
			if f, ok := groups[g]; ok {
				u.Files.Set(g, f)
			}
		}
		return u
	}

	b := mets.NewBuilder("/data/1001.xml", mets.FormatMETS).
		Owner("Default Library").
		File(mets.File{ID: "IMG_1", Group: "DEFAULT", Location: "https://example.org/1.jpg"}).
		File(mets.File{ID: "IMG_2", Group: "DEFAULT", Location: "https://example.org/2.jpg"}).
		File(mets.File{ID: "IMG_3", Group: "DEFAULT", Location: "https://example.org/3.jpg"}).
		File(mets.File{ID: "AUD_1", Group: "AUDIO", Location: "https://example.org/1.mp3"}).
		File(mets.File{ID: "AUD_3", Group: "AUDIO", Location: "https://example.org/3.mp3"}).
		FileGroup("FULLTEXT").
		Root(mets.PhysicalUnit{ID: "PHYS_0000", Type: "physSequence"}).
		Page(page("PHYS_0001", 1, map[string]string{"DEFAULT": "IMG_1", "AUDIO": "AUD_1"})).
		Page(page("PHYS_0002", 2, map[string]string{"DEFAULT": "IMG_2"})).
		Page(page("PHYS_0003", 3, map[string]string{"DEFAULT": "IMG_3", "AUDIO": "AUD_3"})).
		Metadata("DMD_0", mets.Metadata{}.
			Add(mets.FieldTitle, "Sonaten").
			Add(mets.FieldCollection, "Musik", "Drucke")).
		Metadata("DMD_1", mets.Metadata{}.Add(mets.FieldTitle, "Erster Satz"))

	b.Logical("", mets.LogicalUnit{ID: "LOG_0000", Type: "musical_work", MetadataIDs: []string{"DMD_0"}})
	b.Logical("LOG_0000", mets.LogicalUnit{ID: "LOG_0001", Type: "movement", MetadataIDs: []string{"DMD_1"}})
	b.Logical("LOG_0001", mets.LogicalUnit{ID: "LOG_0002", Type: "section", Label: "Adagio"})
	b.Logical("LOG_0000", mets.LogicalUnit{ID: "LOG_0003", Type: "movement", Label: "Zweiter Satz"})
	b.LinkPages("LOG_0000", "PHYS_0000").
		LinkPages("LOG_0001", "PHYS_0002", "PHYS_0001").
		LinkPages("LOG_0003", "PHYS_0003")

	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build sample document: %v", err)
	}
	return doc
}

func newTestService(t *testing.T) (*Service, *mockRecords, *mockDocs, *mockCores, *mockLoader) {
	t.Helper()
	records := &mockRecords{}
	docs := &mockDocs{rows: map[int64]*catalog.Document{1001: sampleRow()}}
	cores := &mockCores{}
	loader := &mockLoader{}
	svc := New(records, docs, cores, loader, nil).WithFileGroups([]string{"DEFAULT", "AUDIO", "FULLTEXT"})
	return svc, records, docs, cores, loader
}

// newBareDocument has one page and no logical structure or metadata.
func newBareDocument(t *testing.T) *mets.Document {
	t.Helper()
	doc, err := mets.NewBuilder("/data/bare.xml", mets.FormatMETS).
		Root(mets.PhysicalUnit{ID: "PHYS_0000"}).
		Page(mets.PhysicalUnit{ID: "PHYS_0001", Order: 1}).
		Build()
	if err != nil {
		t.Fatalf("build bare document: %v", err)
	}
	return doc
}
