package store

import (
	"context"
	"sync"

	"resumescore/internal/resume"
)

// Memory keeps documents in process. Documents are cloned on the way in
// and out so callers never share state with the store.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*resume.Document
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*resume.Document)}
}

func (m *Memory) Load(_ context.Context, key string) (*resume.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	if !ok {
		return nil, notLoaded(key)
	}
	return doc.Clone(), nil
}

func (m *Memory) Save(_ context.Context, key string, doc *resume.Document) error {
	if err := checkSave(key, doc); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = doc.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[key]; !ok {
		return notFound(key)
	}
	delete(m.docs, key)
	return nil
}

func (m *Memory) Stats() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]any{"documents": len(m.docs)}
}
