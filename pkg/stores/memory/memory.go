// Package memory provides an in-memory Store, used in tests and as the
// reference implementation of store semantics.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/stores"
)

// Store holds records in maps guarded by a mutex. Records are copied on the
// way in and out so callers cannot mutate store state behind its back.
type Store struct {
	mu       sync.RWMutex
	name     string
	contacts map[string]*records.ContactRecord
	events   map[string]*records.EventRecord
	groups   []records.Group
	photos   map[string][]byte
}

// New creates an empty in-memory store with the given name.
func New(name string) *Store {
	return &Store{
		name:     name,
		contacts: make(map[string]*records.ContactRecord),
		events:   make(map[string]*records.EventRecord),
		photos:   make(map[string][]byte),
	}
}

var _ stores.Store = (*Store)(nil)

// Name identifies the store in logs and results.
func (s *Store) Name() string {
	return s.name
}

// ListContacts returns all contacts in the store.
func (s *Store) ListContacts(_ context.Context) ([]*records.ContactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*records.ContactRecord, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c.Clone())
	}
	sortContacts(out)
	return out, nil
}

// ListEvents returns events within the given window.
func (s *Store) ListEvents(_ context.Context, from, to time.Time) ([]*records.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*records.EventRecord, 0, len(s.events))
	for _, e := range s.events {
		if !from.IsZero() && !e.Start.IsZero() && e.Start.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Start.IsZero() && e.Start.After(to) {
			continue
		}
		out = append(out, e.Clone())
	}
	sortEvents(out)
	return out, nil
}

// CreateContact adds a new contact and assigns it an id.
func (s *Store) CreateContact(_ context.Context, c *records.ContactRecord) (*records.ContactRecord, error) {
	if c == nil {
		return nil, errors.NewValidationError("contact", nil, "nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := c.Clone()
	if stored.LocalID == "" {
		stored.LocalID = uuid.NewString()
	}
	if _, ok := s.contacts[stored.LocalID]; ok {
		return nil, errors.ErrAlreadyExists
	}
	if stored.ModifiedAt.IsZero() {
		stored.ModifiedAt = time.Now().UTC()
	}
	s.contacts[stored.LocalID] = stored
	return stored.Clone(), nil
}

// CreateEvent adds a new event and assigns it an id.
func (s *Store) CreateEvent(_ context.Context, e *records.EventRecord) (*records.EventRecord, error) {
	if e == nil {
		return nil, errors.NewValidationError("event", nil, "nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := e.Clone()
	if stored.LocalID == "" {
		stored.LocalID = uuid.NewString()
	}
	if _, ok := s.events[stored.LocalID]; ok {
		return nil, errors.ErrAlreadyExists
	}
	if stored.ModifiedAt.IsZero() {
		stored.ModifiedAt = time.Now().UTC()
	}
	s.events[stored.LocalID] = stored
	return stored.Clone(), nil
}

// SaveContact persists changes to an existing contact.
func (s *Store) SaveContact(_ context.Context, c *records.ContactRecord) error {
	if c == nil || c.LocalID == "" {
		return errors.NewValidationError("contact", c, "missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[c.LocalID]; !ok {
		return errors.NewNotFoundError("contact", c.LocalID)
	}
	s.contacts[c.LocalID] = c.Clone()
	return nil
}

// SaveEvent persists changes to an existing event.
func (s *Store) SaveEvent(_ context.Context, e *records.EventRecord) error {
	if e == nil || e.LocalID == "" {
		return errors.NewValidationError("event", e, "missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.LocalID]; !ok {
		return errors.NewNotFoundError("event", e.LocalID)
	}
	s.events[e.LocalID] = e.Clone()
	return nil
}

// Groups returns the store's contact groups.
func (s *Store) Groups(_ context.Context) ([]records.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]records.Group, len(s.groups))
	copy(out, s.groups)
	return out, nil
}

// SetGroups replaces the store's group list.
func (s *Store) SetGroups(groups []records.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = make([]records.Group, len(groups))
	copy(s.groups, groups)
}

// FetchPhoto returns the raw photo bytes for a contact.
func (s *Store) FetchPhoto(_ context.Context, contactID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.photos[contactID]
	if !ok {
		return nil, errors.NewNotFoundError("photo", contactID)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// StorePhoto attaches photo bytes to a contact.
func (s *Store) StorePhoto(_ context.Context, contactID string, data []byte) error {
	if contactID == "" {
		return errors.NewValidationError("contactID", contactID, "empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.photos[contactID] = stored
	return nil
}
