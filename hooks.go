package pimsync

import (
	"sync"

	"github.com/pimsync/pimsync/pkg/conflict"
	"github.com/pimsync/pimsync/pkg/records"
)

// ContactSyncedHook is called after a contact has been created or updated in
// the destination of the given direction.
type ContactSyncedHook func(direction conflict.Direction, contact *records.ContactRecord)

// EventSyncedHook is called after an event has been created or updated in
// the destination of the given direction.
type EventSyncedHook func(direction conflict.Direction, event *records.EventRecord)

// ErrorHook is called for each record-level error during a pass.
type ErrorHook func(err error)

// hooks holds registered callbacks. Callbacks fire synchronously from the
// sync pass, after the destination write completed.
type hooks struct {
	mu            sync.RWMutex
	contactSynced []ContactSyncedHook
	eventSynced   []EventSyncedHook
	errors        []ErrorHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) onContactSynced(hook ContactSyncedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.contactSynced = append(h.contactSynced, hook)
}

func (h *hooks) onEventSynced(hook EventSyncedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.eventSynced = append(h.eventSynced, hook)
}

func (h *hooks) onError(hook ErrorHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, hook)
}

func (h *hooks) triggerContactSynced(direction conflict.Direction, contact *records.ContactRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.contactSynced {
		hook(direction, contact)
	}
}

func (h *hooks) triggerEventSynced(direction conflict.Direction, event *records.EventRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.eventSynced {
		hook(direction, event)
	}
}

func (h *hooks) triggerError(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.errors {
		hook(err)
	}
}
