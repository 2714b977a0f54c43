package db

import "github.com/kailas-cloud/dlfindex/internal/domain/search/filter"

// ListQuery is the input for a paginated FT.SEARCH.
type ListQuery struct {
	IndexName string
	// Text is a query in the engine's syntax; "" and "*" match every document.
	Text    string
	Filters filter.Expression
	Offset  int
	Limit   int
	// ReturnFields limits the hash fields loaded per entry; empty loads all.
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
