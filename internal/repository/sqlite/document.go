package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
)

const selectDocuments = `
	SELECT d.uid, d.pid, d.location, d.document_format, d.title, d.tstamp, d.crdate,
	       COALESCE(l.uid, 0), COALESCE(l.label, ''),
	       COALESCE(c.uid, 0), COALESCE(c.pid, 0), COALESCE(c.label, '')
	FROM documents d
	LEFT JOIN libraries l ON l.uid = d.owner
	LEFT JOIN document_collections dc ON dc.document_uid = d.uid
	LEFT JOIN collections c ON c.uid = dc.collection_uid`

// FindByPrimaryKey returns the document with uid, or nil when no such row exists.
func (s *Store) FindByPrimaryKey(ctx context.Context, uid int64) (*catalog.Document, error) {
	docs, err := s.FindManyByPrimaryKey(ctx, []int64{uid})
	if err != nil {
		return nil, err
	}
	doc, ok := docs[uid]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// FindManyByPrimaryKey loads every existing document among uids with one query.
// Missing uids are absent from the result.
func (s *Store) FindManyByPrimaryKey(ctx context.Context, uids []int64) (map[int64]catalog.Document, error) {
	out := make(map[int64]catalog.Document, len(uids))
	if len(uids) == 0 {
		return out, nil
	}

	seen := make(map[int64]struct{}, len(uids))
	args := make([]any, 0, len(uids))
	for _, uid := range uids {
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		args = append(args, uid)
	}

	query := selectDocuments +
		" WHERE d.uid IN (?" + strings.Repeat(",?", len(args)-1) + ")" +
		" ORDER BY d.uid, dc.sorting, c.uid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("find documents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			doc            catalog.Document
			tstamp, crdate int64
			col            catalog.Collection
		)
		if err := rows.Scan(
			&doc.UID, &doc.Pid, &doc.Location, &doc.Format, &doc.Title, &tstamp, &crdate,
			&doc.Owner.UID, &doc.Owner.Label,
			&col.UID, &col.Pid, &col.Label,
		); err != nil {
			return nil, storageErr("scan document", err)
		}

		if existing, ok := out[doc.UID]; ok {
			doc = existing
		} else {
			doc.Tstamp = time.Unix(tstamp, 0).UTC()
			doc.Crdate = time.Unix(crdate, 0).UTC()
		}
		if col.UID != 0 {
			doc.Collections = append(doc.Collections, col)
		}
		out[doc.UID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate documents", err)
	}
	return out, nil
}

// FindOldest returns the document with the lowest tstamp (ties: lowest uid), nil when empty.
func (s *Store) FindOldest(ctx context.Context) (*catalog.Document, error) {
	var uid int64
	err := s.db.QueryRowContext(ctx,
		"SELECT uid FROM documents ORDER BY tstamp, uid LIMIT 1",
	).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find oldest document", err)
	}
	return s.FindByPrimaryKey(ctx, uid)
}

// FindUIDsByPid lists the uids of a storage partition in ascending order.
func (s *Store) FindUIDsByPid(ctx context.Context, pid int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT uid FROM documents WHERE pid = ? ORDER BY uid", pid)
	if err != nil {
		return nil, storageErr("list documents", err)
	}
	defer rows.Close()

	var uids []int64
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, storageErr("scan uid", err)
		}
		uids = append(uids, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate uids", err)
	}
	return uids, nil
}
