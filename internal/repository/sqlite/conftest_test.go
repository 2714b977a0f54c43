package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
)

// setupTestStore opens a fresh database in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "dlf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// seedFixtures loads the library, collections and documents most tests share.
// Document 1002 is the oldest; 1001 belongs to "Default Library" and "Musik".
func seedFixtures(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SaveLibrary(ctx, catalog.Library{UID: 1, Label: "Default Library"}))
	require.NoError(t, store.SaveCollection(ctx, catalog.Collection{UID: 1, Pid: 20000, Label: "Musik"}))
	require.NoError(t, store.SaveCollection(ctx, catalog.Collection{UID: 2, Pid: 20000, Label: "Drucke"}))

	docs := []*catalog.Document{
		{
			UID: 1001, Pid: 20000, Location: "/data/1001.xml", Format: "METS",
			Title: "6 Sonaten für Flöte", Owner: catalog.Library{UID: 1},
			Collections: []catalog.Collection{{UID: 1}, {UID: 2}},
			Tstamp:      time.Unix(1700000200, 0),
		},
		{
			UID: 1002, Pid: 20000, Location: "/data/1002.xml", Format: "METS",
			Title: "Zeitung", Tstamp: time.Unix(1700000100, 0),
		},
		{
			UID: 1003, Pid: 30000, Location: "/data/1003.xml", Format: "METS",
			Title: "Karte", Tstamp: time.Unix(1700000300, 0),
		},
	}
	for _, d := range docs {
		require.NoError(t, store.SaveDocument(ctx, d))
	}
}
