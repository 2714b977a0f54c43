// Package catalog holds the relational system-of-record view of documents.
package catalog

import "time"

// Library is the rights owner of documents.
type Library struct {
	UID   int64
	Label string
}

// Collection groups documents for browsing and faceting.
type Collection struct {
	UID   int64
	Pid   int64
	Label string
}

// Document is the authoritative relational row of an indexed document.
// Its UID is the primary key shared with every search record of the document.
type Document struct {
	UID         int64
	Pid         int64
	Location    string
	Format      string
	Title       string
	Owner       Library // zero value when the document has no owner
	Collections []Collection
	Tstamp      time.Time
	Crdate      time.Time
}

// CollectionLabels returns the labels of the document's collections in stored order.
func (d *Document) CollectionLabels() []string {
	out := make([]string, 0, len(d.Collections))
	for _, c := range d.Collections {
		out = append(out, c.Label)
	}
	return out
}
