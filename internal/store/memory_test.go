package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec := Record{URL: "https://example.com/a", Summary: "s", Link: "https://example.com/a"}
	if err := m.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := m.FindByURL(ctx, rec.URL)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != rec {
		t.Fatalf("expected %+v, got %+v", rec, got)
	}
}

func TestMemory_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rec := Record{URL: "https://example.com/a", Summary: "s", Link: "https://example.com/a"}

	if err := m.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := m.Insert(ctx, rec); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemory_ListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	urls := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	for _, u := range urls {
		if err := m.Insert(ctx, Record{URL: u, Link: u}); err != nil {
			t.Fatalf("insert %s: %v", u, err)
		}
	}

	got, err := m.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(urls) {
		t.Fatalf("expected %d records, got %d", len(urls), len(got))
	}
	for i, u := range urls {
		if got[i].URL != u {
			t.Fatalf("position %d: expected %s, got %s", i, u, got[i].URL)
		}
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := "https://example.com/a"

	if err := m.Delete(ctx, u); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Insert(ctx, Record{URL: u, Link: u}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := m.Delete(ctx, u); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.FindByURL(ctx, u); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}
