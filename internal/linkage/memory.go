package linkage

import (
	"context"
	"sync"
	"time"

	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/stores"
)

// Memory keeps links in a map, for tests and one-shot runs that do not need
// the pairing to survive the process.
type Memory struct {
	mu    sync.RWMutex
	links map[memoryKey]stores.Link
}

type memoryKey struct {
	kind    string
	localID string
}

var _ stores.Linkages = (*Memory)(nil)

// NewMemory creates an empty in-memory linkage store.
func NewMemory() *Memory {
	return &Memory{links: make(map[memoryKey]stores.Link)}
}

// Get looks up a link by kind and local id.
func (m *Memory) Get(_ context.Context, kind, localID string) (stores.Link, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[memoryKey{kind: kind, localID: localID}]
	return link, ok, nil
}

// GetByRemote looks up a link by kind and remote id.
func (m *Memory) GetByRemote(_ context.Context, kind, remoteID string) (stores.Link, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, link := range m.links {
		if link.Kind == kind && link.RemoteID == remoteID {
			return link, true, nil
		}
	}
	return stores.Link{}, false, nil
}

// Put inserts or replaces a link.
func (m *Memory) Put(_ context.Context, link stores.Link) error {
	if link.Kind == "" || link.LocalID == "" {
		return errors.NewValidationError("link", link, "missing kind or local id")
	}
	if link.UpdatedAt.IsZero() {
		link.UpdatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[memoryKey{kind: link.Kind, localID: link.LocalID}] = link
	return nil
}

// Delete removes a link.
func (m *Memory) Delete(_ context.Context, kind, localID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, memoryKey{kind: kind, localID: localID})
	return nil
}
