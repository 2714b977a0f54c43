package dlfindex

import (
	"context"
	"log/slog"
	"time"

	queryuc "github.com/kailas-cloud/dlfindex/internal/usecase/query"
)

// SearchRequest selects a core, an optional partition and collection scope, and a page.
type SearchRequest struct {
	Core        string
	Query       string // empty matches every record
	StoragePid  int64  // 0 searches every partition
	Collections []string
	Offset      int
	Rows        int // 0 uses the default page size
}

// Hit is one raw search record.
type Hit struct {
	ID          string
	UID         int64
	Pid         int64
	Toplevel    bool
	Type        string
	Title       string
	LogicalID   string
	Page        int
	Collections []string
	Files       map[string][]string
}

// SearchResult is one page of hits with the relational rows of their toplevel documents.
type SearchResult struct {
	NumberOfToplevels int
	Hits              []Hit
	// Documents holds the rows of toplevel hits in hit order; rows deleted since indexing are skipped.
	Documents []Document
	Misses    []int64
}

// Search runs a query and hydrates toplevel hits from the relational store.
func (c *Client) Search(ctx context.Context, req SearchRequest) (_ SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, slog.String("core", req.Core)) }()

	res, err := c.querySvc.FindByCollection(ctx, req.Collections,
		queryuc.CoreSettings{Core: req.Core, StoragePid: req.StoragePid},
		queryuc.Options{Query: req.Query, Offset: req.Offset, Rows: req.Rows},
	)
	if err != nil {
		return SearchResult{}, err
	}
	return toSearchResult(res), nil
}

func toSearchResult(res queryuc.Result) SearchResult {
	out := SearchResult{
		NumberOfToplevels: res.NumberOfToplevels,
		Hits:              make([]Hit, 0, len(res.Hits)),
		Misses:            res.Misses,
	}
	seen := make(map[int64]struct{}, len(res.Documents))
	for _, h := range res.Hits {
		r := h.Record
		out.Hits = append(out.Hits, Hit{
			ID:          r.ID,
			UID:         r.UID,
			Pid:         r.Pid,
			Toplevel:    r.Toplevel,
			Type:        r.Type,
			Title:       r.Title,
			LogicalID:   r.LogicalID,
			Page:        r.Page,
			Collections: r.Collections,
			Files:       r.Files,
		})
		if !r.Toplevel {
			continue
		}
		if _, dup := seen[r.UID]; dup {
			continue
		}
		if doc, ok := res.Documents[r.UID]; ok {
			seen[r.UID] = struct{}{}
			out.Documents = append(out.Documents, doc)
		}
	}
	return out
}
