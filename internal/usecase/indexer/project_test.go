package indexer

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

func TestProject_ToplevelFirst(t *testing.T) {
	records := Project(newSampleDocument(t), sampleRow(), []string{"DEFAULT", "AUDIO"})

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	top := records[0]
	if !top.Toplevel || top.ID != "1001" || top.UID != 1001 || top.Pid != 20000 {
		t.Errorf("unexpected toplevel: %+v", top)
	}
	if top.Type != "musical_work" || top.Title != "Sonaten" || top.Owner != "Default Library" {
		t.Errorf("unexpected toplevel fields: %+v", top)
	}
	if want := []string{"Musik", "Drucke", "Digitalisate"}; !slices.Equal(top.Collections, want) {
		t.Errorf("collections = %v, want %v", top.Collections, want)
	}
	if top.Page != 1 || !slices.Equal(top.Files["AUDIO"], []string{"https://example.org/1.mp3"}) {
		t.Errorf("unexpected toplevel page files: %d %v", top.Page, top.Files)
	}

	toplevels := 0
	for _, r := range records {
		if r.Toplevel {
			toplevels++
		}
		if r.UID != 1001 {
			t.Errorf("record %s has uid %d", r.ID, r.UID)
		}
	}
	if toplevels != 1 {
		t.Errorf("expected exactly one toplevel, got %d", toplevels)
	}
}

func TestProject_ChildrenPreOrder(t *testing.T) {
	records := Project(newSampleDocument(t), sampleRow(), []string{"DEFAULT"})

	var ids []string
	for _, r := range records[1:] {
		ids = append(ids, r.ID)
	}
	want := []string{record.ChildID(1001, "LOG_0001"), record.ChildID(1001, "LOG_0002"), record.ChildID(1001, "LOG_0003")}
	if !slices.Equal(ids, want) {
		t.Errorf("child order = %v, want %v", ids, want)
	}

	adagio := records[2]
	if adagio.Title != "Adagio" {
		t.Errorf("expected label fallback, got %q", adagio.Title)
	}
	if adagio.Page != 0 || adagio.Files != nil {
		t.Errorf("unit without pages must carry no files: %+v", adagio)
	}
	if !slices.Equal(adagio.Collections, records[0].Collections) {
		t.Errorf("expected inherited collections, got %v", adagio.Collections)
	}
}

func TestProject_SkipsAbsentGroups(t *testing.T) {
	records := Project(newSampleDocument(t), sampleRow(), []string{"DEFAULT", "AUDIO", "FULLTEXT", "SCORE"})

	movement := records[1]
	if movement.Title != "Erster Satz" || movement.Page != 1 {
		t.Errorf("unexpected movement: %+v", movement)
	}
	wantDefault := []string{"https://example.org/1.jpg", "https://example.org/2.jpg"}
	if !slices.Equal(movement.Files["DEFAULT"], wantDefault) {
		t.Errorf("DEFAULT = %v, want %v", movement.Files["DEFAULT"], wantDefault)
	}
	if !slices.Equal(movement.Files["AUDIO"], []string{"https://example.org/1.mp3"}) {
		t.Errorf("AUDIO = %v", movement.Files["AUDIO"])
	}
	if _, ok := movement.Files["FULLTEXT"]; ok {
		t.Error("empty group must not appear")
	}
	if _, ok := movement.Files["SCORE"]; ok {
		t.Error("unknown group must not appear")
	}
}

func TestProject_FallsBackToRelationalFields(t *testing.T) {
	b := newBareDocument(t)
	row := sampleRow()

	records := Project(b, row, nil)
	if len(records) != 1 {
		t.Fatalf("expected only the toplevel, got %d", len(records))
	}
	top := records[0]
	if top.Title != "Sonaten" || top.Owner != "Default Library" || top.Type != record.TypeRoot {
		t.Errorf("unexpected fallback fields: %+v", top)
	}
	if !slices.Equal(top.Collections, []string{"Musik", "Digitalisate"}) {
		t.Errorf("collections = %v", top.Collections)
	}
}

func TestProject_ChildMergesOwnCollections(t *testing.T) {
	b := mets.NewBuilder("/data/1001.xml", mets.FormatMETS).
		Root(mets.PhysicalUnit{ID: "PHYS_0000"}).
		Page(mets.PhysicalUnit{ID: "PHYS_0001", Order: 1}).
		Metadata("DMD_0", mets.Metadata{}.Add(mets.FieldCollection, "Musik")).
		Metadata("DMD_1", mets.Metadata{}.Add(mets.FieldCollection, "Kammermusik", "Musik"))
	b.Logical("", mets.LogicalUnit{ID: "LOG_0000", Type: "musical_work", MetadataIDs: []string{"DMD_0"}})
	b.Logical("LOG_0000", mets.LogicalUnit{ID: "LOG_0001", Type: "movement", MetadataIDs: []string{"DMD_1"}})
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build document: %v", err)
	}

	records := Project(doc, sampleRow(), nil)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	want := []string{"Kammermusik", "Musik", "Digitalisate"}
	if got := records[1].Collections; !slices.Equal(got, want) {
		t.Errorf("child collections = %v, want %v", got, want)
	}
}
