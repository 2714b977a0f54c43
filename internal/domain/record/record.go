// Package record defines the search-engine projection of an indexed document.
package record

import (
	"strconv"

	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/domain/search/filter"
)

// TypeRoot marks the structural type of a toplevel record whose unit carries no type.
const TypeRoot = "root"

// Record is one indexed unit of a document. Exactly one record per document is toplevel;
// every record of a document shares its UID.
type Record struct {
	ID          string
	UID         int64
	Pid         int64
	Toplevel    bool
	Type        string
	Title       string
	Owner       string
	Collections []string
	Location    string
	LogicalID   string
	Page        int
	Files       map[string][]string
	Metadata    mets.Metadata
	Generation  int64
}

// ToplevelID returns the record id of a document's toplevel record.
func ToplevelID(uid int64) string {
	return strconv.FormatInt(uid, 10)
}

// ChildID returns the record id of a structural unit of a document.
func ChildID(uid int64, logicalID string) string {
	return strconv.FormatInt(uid, 10) + "-" + logicalID
}

// Hit is a record returned by a search, in engine order.
type Hit struct {
	Key string
	Record
}

// Query selects records within one core.
type Query struct {
	// Text is a query in the engine's syntax; "" and "*" match every record.
	Text    string
	Filters filter.Expression
	Offset  int
	Limit   int
}

// Page is one page of hits.
type Page struct {
	Total int
	Hits  []Hit
}
