package mets

import (
	"fmt"

	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// Builder assembles a Document. It is not safe for concurrent use.
type Builder struct {
	doc   Document
	index map[string]int
	err   error
}

// NewBuilder starts a document for location in the given format.
func NewBuilder(location, format string) *Builder {
	return &Builder{
		doc: Document{
			location:              location,
			format:                format,
			physicalStructureInfo: make(map[string]PhysicalUnit),
			files:                 make(map[string]File),
			fileGroups:            make(map[string]struct{}),
			metadata:              make(map[string]Metadata),
		},
		index: make(map[string]int),
	}
}

// Owner sets the rights owner.
func (b *Builder) Owner(owner string) *Builder {
	b.doc.owner = owner
	return b
}

// File registers a file of the file section.
func (b *Builder) File(f File) *Builder {
	b.doc.files[f.ID] = f
	b.doc.fileGroups[f.Group] = struct{}{}
	return b
}

// FileGroup declares a group that may have no files.
func (b *Builder) FileGroup(name string) *Builder {
	b.doc.fileGroups[name] = struct{}{}
	return b
}

// Root sets the physical sequence root. It must be called before any Page.
func (b *Builder) Root(u PhysicalUnit) *Builder {
	if len(b.doc.physicalStructure) > 0 {
		b.fail(fmt.Errorf("physical root %q set twice", u.ID))
		return b
	}
	b.doc.physicalStructure = append(b.doc.physicalStructure, u.ID)
	b.doc.physicalStructureInfo[u.ID] = u
	return b
}

// Page appends a page to the physical sequence.
func (b *Builder) Page(u PhysicalUnit) *Builder {
	if len(b.doc.physicalStructure) == 0 {
		b.fail(fmt.Errorf("page %q added before physical root", u.ID))
		return b
	}
	if _, dup := b.doc.physicalStructureInfo[u.ID]; dup {
		b.fail(fmt.Errorf("duplicate physical unit %q", u.ID))
		return b
	}
	b.doc.physicalStructure = append(b.doc.physicalStructure, u.ID)
	b.doc.physicalStructureInfo[u.ID] = u
	return b
}

// Metadata registers a descriptive metadata record.
func (b *Builder) Metadata(id string, m Metadata) *Builder {
	b.doc.metadata[id] = m
	return b
}

// Logical appends a logical unit below parentID ("" for a root) and returns its arena index.
func (b *Builder) Logical(parentID string, u LogicalUnit) int {
	if _, dup := b.index[u.ID]; dup {
		b.fail(fmt.Errorf("duplicate logical unit %q", u.ID))
		return -1
	}
	u.Parent = -1
	u.Children = nil
	if parentID != "" {
		p, ok := b.index[parentID]
		if !ok {
			b.fail(fmt.Errorf("logical unit %q has unknown parent %q", u.ID, parentID))
			return -1
		}
		u.Parent = p
	}
	i := len(b.doc.logical)
	b.doc.logical = append(b.doc.logical, u)
	b.index[u.ID] = i
	if u.Parent >= 0 {
		b.doc.logical[u.Parent].Children = append(b.doc.logical[u.Parent].Children, i)
	}
	return i
}

// LinkPages attaches physical pages to a logical unit.
func (b *Builder) LinkPages(logicalID string, pageIDs ...string) *Builder {
	i, ok := b.index[logicalID]
	if !ok {
		b.fail(fmt.Errorf("link from unknown logical unit %q", logicalID))
		return b
	}
	b.doc.logical[i].Pages = append(b.doc.logical[i].Pages, pageIDs...)
	return b
}

// Build validates and returns the document. The builder must not be reused afterwards.
func (b *Builder) Build() (*Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	doc := b.doc
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
}
