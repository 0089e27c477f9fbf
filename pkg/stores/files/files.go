// Package files provides a Store backed by YAML snapshots on disk. Each
// record kind lives in its own file under the store directory; photos are
// stored as raw files in a photos/ subdirectory.
package files

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/stores"
)

const (
	contactsFile = "contacts.yaml"
	eventsFile   = "events.yaml"
	groupsFile   = "groups.yaml"
	photosDir    = "photos"

	filePermissions = 0o644
	dirPermissions  = 0o755
)

// Store persists records as YAML under a directory. All mutations rewrite
// the affected snapshot file, so the on-disk state always reflects the last
// completed operation.
type Store struct {
	mu   sync.Mutex
	name string
	dir  string

	contacts []*records.ContactRecord
	events   []*records.EventRecord
	groups   []records.Group
	loaded   bool
}

// New creates a file store rooted at dir. The directory is created on first
// write; a missing directory reads as an empty store.
func New(name, dir string) *Store {
	return &Store{name: name, dir: dir}
}

var _ stores.Store = (*Store)(nil)

// Name identifies the store in logs and results.
func (s *Store) Name() string {
	return s.name
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	if err := readYAML(filepath.Join(s.dir, contactsFile), &s.contacts); err != nil {
		return errors.WrapStore(s.name, "load", err)
	}
	if err := readYAML(filepath.Join(s.dir, eventsFile), &s.events); err != nil {
		return errors.WrapStore(s.name, "load", err)
	}
	if err := readYAML(filepath.Join(s.dir, groupsFile), &s.groups); err != nil {
		return errors.WrapStore(s.name, "load", err)
	}
	s.loaded = true
	return nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

func (s *Store) writeYAML(file string, value any) error {
	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return errors.WrapStore(s.name, "save", err)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return errors.WrapStore(s.name, "save", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, file), data, filePermissions); err != nil {
		return errors.WrapStore(s.name, "save", err)
	}
	return nil
}

// ListContacts returns all contacts in the store.
func (s *Store) ListContacts(_ context.Context) ([]*records.ContactRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]*records.ContactRecord, len(s.contacts))
	for i, c := range s.contacts {
		out[i] = c.Clone()
	}
	return out, nil
}

// ListEvents returns events within the given window.
func (s *Store) ListEvents(_ context.Context, from, to time.Time) ([]*records.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	var out []*records.EventRecord
	for _, e := range s.events {
		if !from.IsZero() && !e.Start.IsZero() && e.Start.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Start.IsZero() && e.Start.After(to) {
			continue
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

// CreateContact adds a new contact and assigns it an id.
func (s *Store) CreateContact(_ context.Context, c *records.ContactRecord) (*records.ContactRecord, error) {
	if c == nil {
		return nil, errors.NewValidationError("contact", nil, "nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	stored := c.Clone()
	if stored.LocalID == "" {
		stored.LocalID = uuid.NewString()
	}
	if stored.ModifiedAt.IsZero() {
		stored.ModifiedAt = time.Now().UTC()
	}
	s.contacts = append(s.contacts, stored)
	if err := s.writeYAML(contactsFile, s.contacts); err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

// CreateEvent adds a new event and assigns it an id.
func (s *Store) CreateEvent(_ context.Context, e *records.EventRecord) (*records.EventRecord, error) {
	if e == nil {
		return nil, errors.NewValidationError("event", nil, "nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	stored := e.Clone()
	if stored.LocalID == "" {
		stored.LocalID = uuid.NewString()
	}
	if stored.ModifiedAt.IsZero() {
		stored.ModifiedAt = time.Now().UTC()
	}
	s.events = append(s.events, stored)
	if err := s.writeYAML(eventsFile, s.events); err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

// SaveContact persists changes to an existing contact.
func (s *Store) SaveContact(_ context.Context, c *records.ContactRecord) error {
	if c == nil || c.LocalID == "" {
		return errors.NewValidationError("contact", c, "missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	for i, existing := range s.contacts {
		if existing.LocalID == c.LocalID {
			s.contacts[i] = c.Clone()
			return s.writeYAML(contactsFile, s.contacts)
		}
	}
	return errors.NewNotFoundError("contact", c.LocalID)
}

// SaveEvent persists changes to an existing event.
func (s *Store) SaveEvent(_ context.Context, e *records.EventRecord) error {
	if e == nil || e.LocalID == "" {
		return errors.NewValidationError("event", e, "missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	for i, existing := range s.events {
		if existing.LocalID == e.LocalID {
			s.events[i] = e.Clone()
			return s.writeYAML(eventsFile, s.events)
		}
	}
	return errors.NewNotFoundError("event", e.LocalID)
}

// Groups returns the store's contact groups.
func (s *Store) Groups(_ context.Context) ([]records.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]records.Group, len(s.groups))
	copy(out, s.groups)
	return out, nil
}

// SetGroups replaces the group list and rewrites its snapshot.
func (s *Store) SetGroups(groups []records.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	s.groups = make([]records.Group, len(groups))
	copy(s.groups, groups)
	return s.writeYAML(groupsFile, s.groups)
}

// FetchPhoto returns the raw photo bytes for a contact.
func (s *Store) FetchPhoto(_ context.Context, contactID string) ([]byte, error) {
	data, err := os.ReadFile(s.photoPath(contactID))
	if os.IsNotExist(err) {
		return nil, errors.NewNotFoundError("photo", contactID)
	}
	if err != nil {
		return nil, errors.WrapStore(s.name, "fetch photo", err)
	}
	return data, nil
}

// StorePhoto attaches photo bytes to a contact.
func (s *Store) StorePhoto(_ context.Context, contactID string, data []byte) error {
	if contactID == "" {
		return errors.NewValidationError("contactID", contactID, "empty")
	}
	if err := os.MkdirAll(filepath.Join(s.dir, photosDir), dirPermissions); err != nil {
		return errors.WrapStore(s.name, "store photo", err)
	}
	if err := os.WriteFile(s.photoPath(contactID), data, filePermissions); err != nil {
		return errors.WrapStore(s.name, "store photo", err)
	}
	return nil
}

func (s *Store) photoPath(contactID string) string {
	return filepath.Join(s.dir, photosDir, contactID+".jpg")
}
