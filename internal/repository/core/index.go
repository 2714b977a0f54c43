package core

import (
	"fmt"

	"github.com/kailas-cloud/dlfindex/internal/db"
	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// buildIndex creates the record schema of a core. Records are hashes under recordPrefix.
func buildIndex(name string) (*db.IndexDefinition, error) {
	return db.NewIndex(indexName(name)).
		Prefix(recordPrefix(name)).
		Language("german").
		NoStopWords().
		Tag("uid").
		Tag("pid").
		Tag("toplevel").
		Tag("type").
		Tag("owner").
		TagWithOpts("collection", "|", false).
		WeightedText("title", 2).
		Text("text").
		SortableNumeric("page").
		Numeric("generation").
		Build()
}

func indexName(name string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, name)
}

func recordPrefix(name string) string {
	return fmt.Sprintf("%s%s:rec:", domain.KeyPrefix, name)
}

// metaKey uses '#', which core names cannot contain, so it never collides with record keys.
func metaKey(name string) string {
	return fmt.Sprintf("%s#core:%s", domain.KeyPrefix, name)
}
