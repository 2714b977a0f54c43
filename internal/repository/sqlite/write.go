package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
)

// SaveLibrary inserts or updates a library.
func (s *Store) SaveLibrary(ctx context.Context, lib catalog.Library) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO libraries (uid, label) VALUES (?, ?)
		ON CONFLICT(uid) DO UPDATE SET label = excluded.label`,
		lib.UID, lib.Label,
	)
	if err != nil {
		return storageErr("save library", err)
	}
	return nil
}

// SaveCollection inserts or updates a collection.
func (s *Store) SaveCollection(ctx context.Context, c catalog.Collection) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (uid, pid, label) VALUES (?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET pid = excluded.pid, label = excluded.label`,
		c.UID, c.Pid, c.Label,
	)
	if err != nil {
		return storageErr("save collection", err)
	}
	return nil
}

// SaveDocument upserts a document and replaces its collection links.
// Zero Tstamp is set to now; zero Crdate is set to Tstamp on insert and kept on update.
// Referenced owner and collections must already exist.
func (s *Store) SaveDocument(ctx context.Context, doc *catalog.Document) error {
	if doc.UID <= 0 {
		return fmt.Errorf("document uid must be positive")
	}
	if doc.Tstamp.IsZero() {
		doc.Tstamp = s.now().UTC()
	}
	if doc.Crdate.IsZero() {
		doc.Crdate = doc.Tstamp
	}
	if doc.Format == "" {
		doc.Format = "METS"
	}

	var owner sql.NullInt64
	if doc.Owner.UID != 0 {
		owner = sql.NullInt64{Int64: doc.Owner.UID, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (uid, pid, location, document_format, title, owner, tstamp, crdate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			pid = excluded.pid,
			location = excluded.location,
			document_format = excluded.document_format,
			title = excluded.title,
			owner = excluded.owner,
			tstamp = excluded.tstamp`,
		doc.UID, doc.Pid, doc.Location, doc.Format, doc.Title, owner,
		doc.Tstamp.Unix(), doc.Crdate.Unix(),
	)
	if err != nil {
		return storageErr("save document", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM document_collections WHERE document_uid = ?", doc.UID,
	); err != nil {
		return storageErr("clear collections", err)
	}
	for i, c := range doc.Collections {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO document_collections (document_uid, collection_uid, sorting)
			VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
			doc.UID, c.UID, i,
		); err != nil {
			return storageErr("link collection", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// DeleteDocument removes a document and its collection links. Deleting a missing row is a no-op.
func (s *Store) DeleteDocument(ctx context.Context, uid int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE uid = ?", uid); err != nil {
		return storageErr("delete document", err)
	}
	return nil
}
