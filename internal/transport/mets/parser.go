// Package mets reads METS/MODS descriptors into the normalized document model.
package mets

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dlfindex/internal/domain"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
)

// DefaultMaxBytes caps the size of one descriptor.
const DefaultMaxBytes int64 = 32 << 20

const (
	structMapPhysical = "PHYSICAL"
	structMapLogical  = "LOGICAL"
)

type fetcher interface {
	Fetch(ctx context.Context, location string) (io.ReadCloser, error)
}

// Config holds the parser settings.
type Config struct {
	Fetcher  fetcher
	MaxBytes int64
	Logger   *zap.Logger
}

// Parser fetches and decodes descriptors.
type Parser struct {
	fetcher  fetcher
	maxBytes int64
	logger   *zap.Logger
}

// NewParser creates a parser.
func NewParser(cfg *Config) *Parser {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{fetcher: cfg.Fetcher, maxBytes: maxBytes, logger: logger}
}

// Parse loads the descriptor at location. Only the METS format is supported.
func (p *Parser) Parse(ctx context.Context, location, format string) (*mets.Document, error) {
	if format != mets.FormatMETS {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	rc, err := p.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrMalformedDocument, location, err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrMalformedDocument, location, p.maxBytes)
	}

	doc, err := Decode(location, data)
	if err != nil {
		p.logger.Warn("descriptor rejected", zap.String("location", location), zap.Error(err))
		return nil, err
	}
	p.logger.Debug("descriptor parsed",
		zap.String("location", location),
		zap.Int("pages", doc.NumPages()),
		zap.Int("logical_units", doc.NumLogical()),
	)
	return doc, nil
}

// Decode builds a document from raw METS XML.
func Decode(location string, data []byte) (*mets.Document, error) {
	var x xmlMets
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedDocument, location, err)
	}

	b := mets.NewBuilder(location, mets.FormatMETS)

	files := make(map[string]mets.File)
	for _, grp := range x.FileGrps {
		b.FileGroup(grp.Use)
		for _, f := range grp.Files {
			file := mets.File{ID: f.ID, Group: grp.Use, MimeType: f.MimeType}
			if len(f.FLocats) > 0 {
				file.Location = strings.TrimSpace(f.FLocats[0].Href)
			}
			files[f.ID] = file
			b.File(file)
		}
	}

	for _, dmd := range x.DmdSecs {
		if dmd.MdWrap.XMLData.MODS != nil {
			b.Metadata(dmd.ID, modsMetadata(dmd.MdWrap.XMLData.MODS))
		}
	}
	b.Owner(owner(x.AmdSecs))

	if phys := findStructMap(x.StructMaps, structMapPhysical); phys != nil && len(phys.Divs) > 0 {
		if err := addPhysical(b, &phys.Divs[0], files); err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
	}
	if logical := findStructMap(x.StructMaps, structMapLogical); logical != nil {
		addLogical(b, logical.Divs)
	}
	for _, link := range x.SmLinks {
		b.LinkPages(link.From, link.To)
	}

	doc, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return doc, nil
}

func findStructMap(maps []xmlStructMap, typ string) *xmlStructMap {
	for i := range maps {
		if strings.EqualFold(maps[i].Type, typ) {
			return &maps[i]
		}
	}
	return nil
}

func owner(amds []xmlAmdSec) string {
	for _, amd := range amds {
		for _, r := range amd.RightsMD {
			for _, o := range r.MdWrap.XMLData.Owners {
				if o = strings.TrimSpace(o); o != "" {
					return o
				}
			}
		}
	}
	return ""
}

// addPhysical adds the sequence root and its pages. Pages are ordered by ORDER when every
// page carries one, by document order otherwise.
func addPhysical(b *mets.Builder, root *xmlDiv, files map[string]mets.File) error {
	rootUnit, err := physicalUnit(root, files)
	if err != nil {
		return err
	}
	b.Root(rootUnit)

	pages := make([]mets.PhysicalUnit, 0, len(root.Divs))
	ordered := true
	for i := range root.Divs {
		u, err := physicalUnit(&root.Divs[i], files)
		if err != nil {
			return err
		}
		if u.Order <= 0 {
			ordered = false
		}
		pages = append(pages, u)
	}
	if ordered {
		sort.SliceStable(pages, func(i, j int) bool { return pages[i].Order < pages[j].Order })
	}
	for i := range pages {
		if pages[i].Order <= 0 {
			pages[i].Order = i + 1
		}
		b.Page(pages[i])
	}
	return nil
}

func physicalUnit(div *xmlDiv, files map[string]mets.File) (mets.PhysicalUnit, error) {
	u := mets.PhysicalUnit{
		ID:         div.ID,
		Type:       div.Type,
		Label:      div.Label,
		OrderLabel: div.OrderLabel,
	}
	if div.Order != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(div.Order)); err == nil {
			u.Order = n
		}
	}

	for _, fptr := range div.Fptrs {
		ids := []string{fptr.FileID}
		for _, a := range fptr.Areas {
			ids = append(ids, a.FileID)
		}
		for _, id := range ids {
			if id == "" {
				continue
			}
			f, ok := files[id]
			if !ok {
				return u, fmt.Errorf("%w: page %q points to unknown file %q",
					domain.ErrMalformedDocument, div.ID, id)
			}
			u.Files.Set(f.Group, id)
		}
	}
	return u, nil
}

// addLogical registers the logical tree in pre-order so parents precede children.
func addLogical(b *mets.Builder, roots []xmlDiv) {
	type frame struct {
		div    *xmlDiv
		parent string
	}

	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{div: &roots[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b.Logical(f.parent, mets.LogicalUnit{
			ID:          f.div.ID,
			Type:        f.div.Type,
			Label:       f.div.Label,
			MetadataIDs: strings.Fields(f.div.DmdID),
		})
		for i := len(f.div.Divs) - 1; i >= 0; i-- {
			stack = append(stack, frame{div: &f.div.Divs[i], parent: f.div.ID})
		}
	}
}
