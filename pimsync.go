// Package pimsync reconciles contacts and calendar events between two
// independent stores. Each sync pass runs the two merge directions in
// sequence, pairing records through a persistent linkage table and
// field-level merging, and resolving concurrent edits per the configured
// conflict policy.
package pimsync

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pimsync/pimsync/pkg/conflict"
	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/stores"
)

// Engine reconciles two stores.
type Engine interface {
	// Sync runs a full pass over contacts and events in both directions.
	Sync(ctx context.Context) (*Result, error)

	// SyncContacts runs a pass over contacts only.
	SyncContacts(ctx context.Context) (*Result, error)

	// SyncEvents runs a pass over events only.
	SyncEvents(ctx context.Context) (*Result, error)

	// NotifyContactChanged syncs a single local contact to the remote
	// store, as triggered by a change notification. Returns ErrBusy while
	// a pass is running, which also keeps the engine's own writes from
	// re-triggering themselves. A no-op when the policy disables the
	// local-to-remote direction.
	NotifyContactChanged(ctx context.Context, localID string) error

	// NotifyEventChanged syncs a single local event to the remote store.
	NotifyEventChanged(ctx context.Context, localID string) error

	// Busy reports whether a pass is currently running.
	Busy() bool

	// OnContactSynced registers a callback for contact writes.
	OnContactSynced(hook ContactSyncedHook)

	// OnEventSynced registers a callback for event writes.
	OnEventSynced(hook EventSyncedHook)

	// OnError registers a callback for record-level errors.
	OnError(hook ErrorHook)
}

// engine is the internal implementation of the Engine interface.
type engine struct {
	cfg   *config
	busy  atomic.Bool
	hooks *hooks
}

// New creates an Engine with the given options. WithStores is required.
func New(opts ...Option) (Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.local == nil || cfg.remote == nil {
		return nil, errors.NewConfigError("stores", "both stores are required", nil)
	}

	return &engine{cfg: cfg, hooks: newHooks()}, nil
}

// Busy reports whether a pass is currently running.
func (e *engine) Busy() bool {
	return e.busy.Load()
}

// OnContactSynced registers a callback for contact writes.
func (e *engine) OnContactSynced(hook ContactSyncedHook) {
	e.hooks.onContactSynced(hook)
}

// OnEventSynced registers a callback for event writes.
func (e *engine) OnEventSynced(hook EventSyncedHook) {
	e.hooks.onEventSynced(hook)
}

// OnError registers a callback for record-level errors.
func (e *engine) OnError(hook ErrorHook) {
	e.hooks.onError(hook)
}

// Sync runs a full pass over contacts and events in both directions.
func (e *engine) Sync(ctx context.Context) (*Result, error) {
	return e.run(ctx, true, true)
}

// SyncContacts runs a pass over contacts only.
func (e *engine) SyncContacts(ctx context.Context) (*Result, error) {
	return e.run(ctx, true, false)
}

// SyncEvents runs a pass over events only.
func (e *engine) SyncEvents(ctx context.Context) (*Result, error) {
	return e.run(ctx, false, true)
}

func (e *engine) run(ctx context.Context, contacts, events bool) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, errors.ErrBusy
	}
	defer e.busy.Store(false)

	res := newResult()
	res.DryRun = e.cfg.dryRun
	for _, dir := range e.cfg.policy.Order() {
		if !e.directionEnabled(dir) {
			e.cfg.logger.Debug().
				Str("direction", string(dir)).
				Str("policy", string(e.cfg.policy)).
				Msg("Direction disabled by policy")
			continue
		}
		if err := ctx.Err(); err != nil {
			res.fail(err)
			break
		}
		if contacts {
			e.contactPass(ctx, dir, res, "")
		}
		if events {
			e.eventPass(ctx, dir, res, "")
		}
	}
	res.Duration = time.Since(res.StartedAt)

	e.cfg.logger.Info().
		Str("contacts", res.Contacts.String()).
		Str("events", res.Events.String()).
		Dur("duration", res.Duration).
		Msg("Sync pass complete")

	return res, nil
}

// NotifyContactChanged syncs a single local contact to the remote store. A
// policy that disables the local-to-remote direction disables notifications
// with it.
func (e *engine) NotifyContactChanged(ctx context.Context, localID string) error {
	if !e.directionEnabled(conflict.LocalToRemote) {
		e.cfg.logger.Debug().Str("id", localID).Msg("Change notification ignored by policy")
		return nil
	}
	if !e.busy.CompareAndSwap(false, true) {
		return errors.ErrBusy
	}
	defer e.busy.Store(false)

	res := newResult()
	e.contactPass(ctx, conflict.LocalToRemote, res, localID)
	return res.Err()
}

// NotifyEventChanged syncs a single local event to the remote store.
func (e *engine) NotifyEventChanged(ctx context.Context, localID string) error {
	if !e.directionEnabled(conflict.LocalToRemote) {
		e.cfg.logger.Debug().Str("id", localID).Msg("Change notification ignored by policy")
		return nil
	}
	if !e.busy.CompareAndSwap(false, true) {
		return errors.ErrBusy
	}
	defer e.busy.Store(false)

	res := newResult()
	e.eventPass(ctx, conflict.LocalToRemote, res, localID)
	return res.Err()
}

// directionEnabled reports whether the policy lets anything flow in dir at
// all. With a preference policy the disfavored direction is skipped
// wholesale rather than checked per record.
func (e *engine) directionEnabled(dir conflict.Direction) bool {
	var zero time.Time
	return e.cfg.policy.Allows(dir, zero, zero)
}

// oriented returns the source and destination stores for a direction.
func (e *engine) oriented(dir conflict.Direction) (src, dst stores.Store) {
	if dir == conflict.LocalToRemote {
		return e.cfg.local, e.cfg.remote
	}
	return e.cfg.remote, e.cfg.local
}

// link builds the canonical cross-reference for a src/dst pair in dir. The
// link always keys local-store id to remote-store id regardless of which
// direction produced it.
func link(dir conflict.Direction, kind, srcID, dstID, photoFingerprint string) stores.Link {
	l := stores.Link{Kind: kind, PhotoFingerprint: photoFingerprint}
	if dir == conflict.LocalToRemote {
		l.LocalID, l.RemoteID = srcID, dstID
	} else {
		l.LocalID, l.RemoteID = dstID, srcID
	}
	return l
}

// findLink resolves the stored cross-reference for a source record id and
// returns the destination-store id it names, if any.
func (e *engine) findLink(ctx context.Context, dir conflict.Direction, kind, srcID string) (stores.Link, string, bool, error) {
	if dir == conflict.LocalToRemote {
		l, ok, err := e.cfg.linkages.Get(ctx, kind, srcID)
		return l, l.RemoteID, ok, err
	}
	l, ok, err := e.cfg.linkages.GetByRemote(ctx, kind, srcID)
	return l, l.LocalID, ok, err
}
