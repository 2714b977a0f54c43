package doccache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kailas-cloud/dlfindex/internal/domain"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
)

type countingParser struct {
	calls atomic.Int32
	err   error
	gate  chan struct{}
}

func (p *countingParser) Parse(_ context.Context, location, format string) (*mets.Document, error) {
	p.calls.Add(1)
	if p.gate != nil {
		<-p.gate
	}
	if p.err != nil {
		return nil, p.err
	}
	return mets.NewBuilder(location, format).Build()
}

func TestParse_CachesByLocationAndFormat(t *testing.T) {
	inner := &countingParser{}
	l := New(inner, 4)
	ctx := context.Background()

	first, err := l.Parse(ctx, "/data/1001.xml", mets.FormatMETS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := l.Parse(ctx, "/data/1001.xml", mets.FormatMETS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached document instance")
	}
	if _, err := l.Parse(ctx, "/data/1001.xml", "OTHER"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := inner.calls.Load(); got != 2 {
		t.Errorf("expected 2 parses, got %d", got)
	}
}

func TestParse_ErrorsNotCached(t *testing.T) {
	inner := &countingParser{err: domain.ErrMalformedDocument}
	l := New(inner, 4)

	for range 2 {
		_, err := l.Parse(context.Background(), "/bad.xml", mets.FormatMETS)
		if !errors.Is(err, domain.ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	}
	if got := inner.calls.Load(); got != 2 {
		t.Errorf("expected 2 parses, got %d", got)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty cache, got %d", l.Len())
	}
}

func TestParse_Evicts(t *testing.T) {
	inner := &countingParser{}
	l := New(inner, 1)
	ctx := context.Background()

	_, _ = l.Parse(ctx, "/a.xml", mets.FormatMETS)
	_, _ = l.Parse(ctx, "/b.xml", mets.FormatMETS)
	_, _ = l.Parse(ctx, "/a.xml", mets.FormatMETS)

	if got := inner.calls.Load(); got != 3 {
		t.Errorf("expected 3 parses after eviction, got %d", got)
	}
}

func TestParse_ConcurrentLoadsShareParse(t *testing.T) {
	inner := &countingParser{gate: make(chan struct{})}
	l := New(inner, 4)

	var wg sync.WaitGroup
	var started sync.WaitGroup
	for range 8 {
		wg.Add(1)
		started.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			if _, err := l.Parse(context.Background(), "/a.xml", mets.FormatMETS); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	started.Wait()
	close(inner.gate)
	wg.Wait()

	if got := inner.calls.Load(); got < 1 || got > 8 {
		t.Errorf("unexpected parse count %d", got)
	}
	if l.Len() != 1 {
		t.Errorf("expected one cached document, got %d", l.Len())
	}
}

func TestInvalidateAndPurge(t *testing.T) {
	inner := &countingParser{}
	l := New(inner, 4)
	ctx := context.Background()

	_, _ = l.Parse(ctx, "/a.xml", mets.FormatMETS)
	_, _ = l.Parse(ctx, "/b.xml", mets.FormatMETS)

	l.Invalidate("/a.xml", mets.FormatMETS)
	if l.Len() != 1 {
		t.Errorf("expected 1 cached document, got %d", l.Len())
	}
	l.Purge()
	if l.Len() != 0 {
		t.Errorf("expected empty cache, got %d", l.Len())
	}
}
