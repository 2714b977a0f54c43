package indexer

import (
	"slices"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

// Project maps a parsed document and its relational row onto index records.
// The toplevel record comes first, followed by one record per other logical unit
// in depth-first pre-order. File references are collected for every group in
// fileGroups the page actually has.
func Project(doc *mets.Document, row *catalog.Document, fileGroups []string) []record.Record {
	top := doc.Toplevel()

	toplevel := record.Record{
		ID:          record.ToplevelID(row.UID),
		UID:         row.UID,
		Pid:         row.Pid,
		Toplevel:    true,
		Type:        record.TypeRoot,
		Title:       doc.Title(),
		Owner:       doc.Owner(),
		Collections: mergeCollections(doc.Collections(), row.CollectionLabels()),
		Location:    doc.Location(),
	}
	if toplevel.Title == "" {
		toplevel.Title = row.Title
	}
	if toplevel.Owner == "" {
		toplevel.Owner = row.Owner.Label
	}
	if top >= 0 {
		unit := doc.Logical(top)
		if unit.Type != "" {
			toplevel.Type = unit.Type
		}
		toplevel.LogicalID = unit.ID
		toplevel.Metadata = doc.UnitMetadata(top)
	}
	if doc.NumPages() > 0 {
		toplevel.Page = 1
		pageID, _ := doc.PageID(1)
		toplevel.Files = filesFor(doc, []string{pageID}, fileGroups)
	}

	records := make([]record.Record, 0, doc.NumLogical()+1)
	records = append(records, toplevel)

	doc.Walk(func(i, _ int) bool {
		if i == top {
			return true
		}
		unit := doc.Logical(i)
		md := doc.UnitMetadata(i)

		child := record.Record{
			ID:          record.ChildID(row.UID, unit.ID),
			UID:         row.UID,
			Pid:         row.Pid,
			Type:        unit.Type,
			Title:       md.First(mets.FieldTitle),
			Owner:       toplevel.Owner,
			Collections: mergeCollections(md.Values(mets.FieldCollection), toplevel.Collections),
			Location:    doc.Location(),
			LogicalID:   unit.ID,
			Metadata:    md,
		}
		if child.Title == "" {
			child.Title = unit.Label
		}

		pages := sortedPages(doc, unit.Pages)
		if len(pages) > 0 {
			child.Page = doc.PageNumber(pages[0])
			child.Files = filesFor(doc, pages, fileGroups)
		}
		records = append(records, child)
		return true
	})

	return records
}

// mergeCollections keeps the order of first and appends the entries of second not yet present.
func mergeCollections(first, second []string) []string {
	out := append([]string(nil), first...)
	for _, c := range second {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// sortedPages returns the real pages among ids in physical order. The sequence root is dropped.
func sortedPages(doc *mets.Document, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if doc.PageNumber(id) > 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return doc.PageNumber(a) - doc.PageNumber(b)
	})
	return out
}

// filesFor collects file locations per group over pages. Groups a page lacks are skipped.
func filesFor(doc *mets.Document, pages, groups []string) map[string][]string {
	var files map[string][]string
	for _, g := range groups {
		for _, p := range pages {
			f, presence := doc.FileFor(p, g)
			if presence != mets.PresenceFound {
				continue
			}
			if files == nil {
				files = make(map[string][]string, len(groups))
			}
			files[g] = append(files[g], f.Location)
		}
	}
	return files
}
