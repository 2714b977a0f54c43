package query

import (
	"context"
	"testing"

	"github.com/kailas-cloud/dlfindex/internal/domain/catalog"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

type mockSearcher struct {
	searchFn func(ctx context.Context, core string, q record.Query) (record.Page, error)
	countFn  func(ctx context.Context, core string, q record.Query) (int, error)
}

func (m *mockSearcher) Search(ctx context.Context, core string, q record.Query) (record.Page, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, core, q)
	}
	return record.Page{}, nil
}

func (m *mockSearcher) Count(ctx context.Context, core string, q record.Query) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, core, q)
	}
	return 0, nil
}

type mockFinder struct {
	rows  map[int64]catalog.Document
	err   error
	calls [][]int64
}

func (m *mockFinder) FindManyByPrimaryKey(_ context.Context, uids []int64) (map[int64]catalog.Document, error) {
	m.calls = append(m.calls, append([]int64(nil), uids...))
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[int64]catalog.Document)
	for _, uid := range uids {
		if d, ok := m.rows[uid]; ok {
			out[uid] = d
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *mockSearcher, *mockFinder) {
	t.Helper()
	searcher := &mockSearcher{}
	finder := &mockFinder{rows: map[int64]catalog.Document{
		1001: {UID: 1001, Pid: 20000, Title: "6 Sonaten für Flöte"},
		1003: {UID: 1003, Pid: 20000, Title: "Karte"},
	}}
	return New(searcher, finder, nil), searcher, finder
}

func hit(uid int64, toplevel bool, logicalID string) record.Hit {
	id := record.ToplevelID(uid)
	if !toplevel {
		id = record.ChildID(uid, logicalID)
	}
	return record.Hit{
		Key:    "dlf:music:rec:{" + id + "}",
		Record: record.Record{ID: id, UID: uid, Toplevel: toplevel, LogicalID: logicalID},
	}
}
