package mets

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// PageRef addresses a page either by 1-based position or by physical identifier.
type PageRef interface {
	// Resolve returns the 1-based page number within doc.
	Resolve(doc *Document) (int, error)
	fmt.Stringer
}

// PageIndex is a 1-based page position. Out-of-range values are clamped.
type PageIndex int

// Resolve clamps the index into [1, NumPages].
func (p PageIndex) Resolve(doc *Document) (int, error) {
	n := doc.NumPages()
	if n < 1 {
		return 0, fmt.Errorf("document has no pages: %w", domain.ErrPageNotFound)
	}
	i := int(p)
	if i < 1 {
		i = 1
	}
	if i > n {
		i = n
	}
	return i, nil
}

func (p PageIndex) String() string { return strconv.Itoa(int(p)) }

// PageID is a physical unit identifier.
type PageID string

// Resolve looks the identifier up in the physical sequence.
func (p PageID) Resolve(doc *Document) (int, error) {
	if n := doc.PageNumber(string(p)); n > 0 {
		return n, nil
	}
	return 0, fmt.Errorf("page %q: %w", string(p), domain.ErrPageNotFound)
}

func (p PageID) String() string { return string(p) }

// ParsePageRef converts a raw request value. Positive integers are indexes, "" and "0"
// mean the first page and anything else is a physical identifier.
func ParsePageRef(raw string) PageRef {
	if raw == "" || raw == "0" {
		return PageIndex(1)
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return PageIndex(n)
	}
	return PageID(raw)
}
