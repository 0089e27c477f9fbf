// Package stores defines the storage abstraction the reconciliation engine
// runs against. A Store is one side of the sync: it lists, creates, and
// saves canonical records and exposes the side data the engine needs
// (groups, contact photos).
package stores

import (
	"context"
	"time"

	"github.com/pimsync/pimsync/pkg/records"
)

// Store is one side of a reconciliation. Implementations are expected to be
// safe for use from a single sync pass at a time; the engine never calls a
// store concurrently.
type Store interface {
	// Name identifies the store in logs and results.
	Name() string

	// ListContacts returns all contacts in the store.
	ListContacts(ctx context.Context) ([]*records.ContactRecord, error)

	// ListEvents returns events within the given window. A zero from/to
	// means unbounded on that side.
	ListEvents(ctx context.Context, from, to time.Time) ([]*records.EventRecord, error)

	// CreateContact adds a new contact and returns it with the store's
	// native id filled in.
	CreateContact(ctx context.Context, c *records.ContactRecord) (*records.ContactRecord, error)

	// CreateEvent adds a new event and returns it with the store's native
	// id filled in.
	CreateEvent(ctx context.Context, e *records.EventRecord) (*records.EventRecord, error)

	// SaveContact persists changes to an existing contact.
	SaveContact(ctx context.Context, c *records.ContactRecord) error

	// SaveEvent persists changes to an existing event.
	SaveEvent(ctx context.Context, e *records.EventRecord) error

	// Groups returns the store's contact groups. Reconciliation resolves
	// category names against this list and never creates groups.
	Groups(ctx context.Context) ([]records.Group, error)

	// FetchPhoto returns the raw photo bytes for a contact, or
	// errors.ErrNotFound when the contact has none.
	FetchPhoto(ctx context.Context, contactID string) ([]byte, error)

	// StorePhoto attaches photo bytes to a contact.
	StorePhoto(ctx context.Context, contactID string, data []byte) error
}

// Link is one row of the cross-reference between the two stores: which
// local record corresponds to which remote record, and the fingerprint of
// the last photo that was copied across.
type Link struct {
	Kind             string    // "contact" or "event"
	LocalID          string
	RemoteID         string
	PhotoFingerprint string
	UpdatedAt        time.Time
}

// Linkages persists links across sync passes.
type Linkages interface {
	// Get looks up a link by kind and local id.
	Get(ctx context.Context, kind, localID string) (Link, bool, error)

	// GetByRemote looks up a link by kind and remote id.
	GetByRemote(ctx context.Context, kind, remoteID string) (Link, bool, error)

	// Put inserts or replaces a link.
	Put(ctx context.Context, link Link) error

	// Delete removes a link.
	Delete(ctx context.Context, kind, localID string) error
}

// Record kinds used in links.
const (
	KindContact = "contact"
	KindEvent   = "event"
)
