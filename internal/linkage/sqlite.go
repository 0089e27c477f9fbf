// Package linkage persists the cross-reference between the two stores so a
// pairing made in one pass survives into the next.
package linkage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/stores"
)

// Schema creates the links table. Applied on open; idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS links (
	kind              TEXT NOT NULL,
	local_id          TEXT NOT NULL,
	remote_id         TEXT NOT NULL,
	photo_fingerprint TEXT NOT NULL DEFAULT '',
	updated_at        TIMESTAMP NOT NULL,
	PRIMARY KEY (kind, local_id)
);
CREATE INDEX IF NOT EXISTS links_remote ON links (kind, remote_id);
`

// SQLite stores links in a single-file database.
type SQLite struct {
	db *sql.DB
}

var _ stores.Linkages = (*SQLite)(nil)

// Open opens (creating if needed) the linkage database at path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapLinkage("open", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, errors.WrapLinkage("init", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get looks up a link by kind and local id.
func (s *SQLite) Get(ctx context.Context, kind, localID string) (stores.Link, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT kind, local_id, remote_id, photo_fingerprint, updated_at
		 FROM links WHERE kind = ? AND local_id = ?`, kind, localID)
	return scanLink(row)
}

// GetByRemote looks up a link by kind and remote id.
func (s *SQLite) GetByRemote(ctx context.Context, kind, remoteID string) (stores.Link, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT kind, local_id, remote_id, photo_fingerprint, updated_at
		 FROM links WHERE kind = ? AND remote_id = ?`, kind, remoteID)
	return scanLink(row)
}

// Put inserts or replaces a link.
func (s *SQLite) Put(ctx context.Context, link stores.Link) error {
	if link.Kind == "" || link.LocalID == "" {
		return errors.NewValidationError("link", link, "missing kind or local id")
	}
	if link.UpdatedAt.IsZero() {
		link.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO links (kind, local_id, remote_id, photo_fingerprint, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		link.Kind, link.LocalID, link.RemoteID, link.PhotoFingerprint, link.UpdatedAt)
	if err != nil {
		return errors.WrapLinkage("put", err)
	}
	return nil
}

// Delete removes a link.
func (s *SQLite) Delete(ctx context.Context, kind, localID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM links WHERE kind = ? AND local_id = ?`, kind, localID)
	if err != nil {
		return errors.WrapLinkage("delete", err)
	}
	return nil
}

func scanLink(row *sql.Row) (stores.Link, bool, error) {
	var link stores.Link
	err := row.Scan(&link.Kind, &link.LocalID, &link.RemoteID, &link.PhotoFingerprint, &link.UpdatedAt)
	if err == sql.ErrNoRows {
		return stores.Link{}, false, nil
	}
	if err != nil {
		return stores.Link{}, false, errors.WrapLinkage("get", err)
	}
	return link, true, nil
}
