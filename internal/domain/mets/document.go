// Package mets holds the normalized in-memory model of a parsed archival document:
// the physical page sequence, the logical structure tree, per-page file groups and
// descriptive metadata records.
package mets

import (
	"fmt"

	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// FormatMETS is the format tag of METS/MODS descriptors.
const FormatMETS = "METS"

// File is a single file of the file section.
type File struct {
	ID       string
	Group    string
	MimeType string
	Location string
}

// PhysicalUnit describes one page or surface of the physical sequence.
type PhysicalUnit struct {
	ID         string
	Type       string
	Label      string
	OrderLabel string
	Order      int
	Files      FileGroups
}

// LogicalUnit is one node of the logical structure arena.
type LogicalUnit struct {
	ID          string
	Type        string
	Label       string
	Parent      int // -1 for roots
	Children    []int
	MetadataIDs []string
	Pages       []string
}

// Document is an immutable parsed descriptor. Build it with a Builder.
// Use accessors; callers must not mutate returned slices of logical units.
type Document struct {
	location string
	format   string
	owner    string

	physicalStructure     []string
	physicalStructureInfo map[string]PhysicalUnit
	files                 map[string]File
	fileGroups            map[string]struct{}
	logical               []LogicalUnit
	metadata              map[string]Metadata
}

// Location returns the location reference the document was loaded from.
func (d *Document) Location() string { return d.location }

// Format returns the document format tag.
func (d *Document) Format() string { return d.format }

// Owner returns the rights owner declared in the administrative metadata.
func (d *Document) Owner() string { return d.owner }

// PhysicalStructure returns a copy of the physical sequence; index 0 is the sequence root.
func (d *Document) PhysicalStructure() []string {
	out := make([]string, len(d.physicalStructure))
	copy(out, d.physicalStructure)
	return out
}

// PhysicalUnit returns the physical unit with the given identifier.
func (d *Document) PhysicalUnit(id string) (PhysicalUnit, bool) {
	u, ok := d.physicalStructureInfo[id]
	return u, ok
}

// PageID returns the physical identifier of page n (1-based). n=0 yields the root.
func (d *Document) PageID(n int) (string, bool) {
	if n < 0 || n >= len(d.physicalStructure) {
		return "", false
	}
	return d.physicalStructure[n], true
}

// PageNumber returns the 1-based position of a physical identifier, 0 if unknown or root.
func (d *Document) PageNumber(id string) int {
	for i := 1; i < len(d.physicalStructure); i++ {
		if d.physicalStructure[i] == id {
			return i
		}
	}
	return 0
}

// NumPages returns the number of pages, root excluded.
func (d *Document) NumPages() int {
	if len(d.physicalStructure) == 0 {
		return 0
	}
	return len(d.physicalStructure) - 1
}

// File returns a file of the file section by identifier.
func (d *Document) File(id string) (File, bool) {
	f, ok := d.files[id]
	return f, ok
}

// HasFileGroup reports whether the file section declares the group.
func (d *Document) HasFileGroup(group string) bool {
	_, ok := d.fileGroups[group]
	return ok
}

// Logical returns the logical unit at arena index i.
func (d *Document) Logical(i int) LogicalUnit { return d.logical[i] }

// NumLogical returns the number of logical units.
func (d *Document) NumLogical() int { return len(d.logical) }

// Roots returns the arena indexes of the top-level logical units in source order.
func (d *Document) Roots() []int {
	var roots []int
	for i := range d.logical {
		if d.logical[i].Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// Toplevel returns the arena index of the unit representing the whole document, -1 if none.
func (d *Document) Toplevel() int {
	roots := d.Roots()
	if len(roots) == 0 {
		return -1
	}
	return roots[0]
}

// Metadata returns the descriptive metadata record with the given section id.
func (d *Document) Metadata(id string) (Metadata, bool) {
	m, ok := d.metadata[id]
	return m, ok
}

// UnitMetadata merges every metadata record referenced by a logical unit, in reference order.
func (d *Document) UnitMetadata(i int) Metadata {
	var out Metadata
	for _, id := range d.logical[i].MetadataIDs {
		if m, ok := d.metadata[id]; ok {
			out = out.Merge(m)
		}
	}
	return out
}

// Title returns the document title taken from the toplevel unit's metadata.
func (d *Document) Title() string {
	top := d.Toplevel()
	if top < 0 {
		return ""
	}
	return d.UnitMetadata(top).First(FieldTitle)
}

// Collections returns the toplevel collections in source order.
func (d *Document) Collections() []string {
	top := d.Toplevel()
	if top < 0 {
		return nil
	}
	return d.UnitMetadata(top).Values(FieldCollection)
}

// Walk visits every logical unit depth-first in pre-order with an explicit stack.
// Returning false from fn stops the walk.
func (d *Document) Walk(fn func(index, depth int) bool) {
	type frame struct{ index, depth int }

	roots := d.Roots()
	stack := make([]frame, 0, len(d.logical))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.index, f.depth) {
			return
		}
		children := d.logical[f.index].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], f.depth + 1})
		}
	}
}

// Validate checks the structural invariants of the document.
func (d *Document) Validate() error {
	seq := make(map[string]struct{}, len(d.physicalStructure))
	for _, id := range d.physicalStructure {
		seq[id] = struct{}{}
	}
	for id, u := range d.physicalStructureInfo {
		if _, ok := seq[id]; !ok {
			return fmt.Errorf("physical unit %q not in physical sequence: %w", id, domain.ErrMalformedDocument)
		}
		for _, name := range u.Files.Names() {
			fileID, _ := u.Files.Get(name)
			if _, ok := d.files[fileID]; !ok {
				return fmt.Errorf("page %q points to unknown file %q: %w", id, fileID, domain.ErrMalformedDocument)
			}
		}
	}
	for i := range d.logical {
		for _, p := range d.logical[i].Pages {
			if _, ok := seq[p]; !ok {
				return fmt.Errorf("logical unit %q links unknown page %q: %w",
					d.logical[i].ID, p, domain.ErrMalformedDocument)
			}
		}
	}
	return nil
}
