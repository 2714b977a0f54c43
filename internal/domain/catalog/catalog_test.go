package catalog

import (
	"slices"
	"testing"
)

func TestCollectionLabels(t *testing.T) {
	doc := Document{Collections: []Collection{{UID: 1, Label: "Musik"}, {UID: 2, Label: "Drucke"}}}
	if got := doc.CollectionLabels(); !slices.Equal(got, []string{"Musik", "Drucke"}) {
		t.Errorf("labels = %v", got)
	}

	empty := Document{}
	if got := empty.CollectionLabels(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
