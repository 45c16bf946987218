package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Store used by tests and credential-free runs.
// Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
	order   []string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (m *Memory) Insert(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.URL]; ok {
		return ErrDuplicate
	}
	m.records[rec.URL] = rec
	m.order = append(m.order, rec.URL)
	return nil
}

func (m *Memory) FindByURL(_ context.Context, url string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[url]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, len(m.order))
	for _, url := range m.order {
		if rec, ok := m.records[url]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[url]; !ok {
		return ErrNotFound
	}
	delete(m.records, url)
	for i, u := range m.order {
		if u == url {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
