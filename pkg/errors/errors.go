// Package errors provides custom error types for the pimsync system.
// These errors enable programmatic error checking across stores, linkage
// persistence, and the reconciliation engine.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the pimsync system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates that a store is temporarily unreachable
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrBusy indicates that a reconciliation pass is already running
	ErrBusy = errors.New("reconciliation in progress")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only store
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// StoreError represents an error from one of the two record stores
type StoreError struct {
	Store     string // store name as configured
	Operation string // "list", "create", "save", "fetch"
	Transient bool   // retrying the next pass may succeed
	Message   string
	Err       error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("store %s: %s failed: %s", e.Store, e.Operation, e.Message)
	}
	return fmt.Sprintf("store %s: %s", e.Store, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreError) Is(target error) bool {
	if e.Transient {
		return target == ErrStoreUnavailable
	}
	return false
}

// NewStoreError creates a new StoreError
func NewStoreError(store, operation string, transient bool, err error) *StoreError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &StoreError{
		Store:     store,
		Operation: operation,
		Transient: transient,
		Message:   message,
		Err:       err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// MergeError represents an error while merging a pair of linked records
type MergeError struct {
	Kind      string // "contact" or "event"
	Direction string
	LocalID   string
	RemoteID  string
	Err       error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s %s (local %s, remote %s): %v", e.Kind, e.Direction, e.LocalID, e.RemoteID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(kind, direction, localID, remoteID string, err error) *MergeError {
	return &MergeError{
		Kind:      kind,
		Direction: direction,
		LocalID:   localID,
		RemoteID:  remoteID,
		Err:       err,
	}
}

// LinkageError represents an error reading or writing the linkage database
type LinkageError struct {
	Operation string // "get", "put", "init"
	Message   string
	Err       error
}

// Error implements the error interface
func (e *LinkageError) Error() string {
	return fmt.Sprintf("linkage %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *LinkageError) Unwrap() error {
	return e.Err
}

// NewLinkageError creates a new LinkageError
func NewLinkageError(operation string, err error) *LinkageError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &LinkageError{Operation: operation, Message: message, Err: err}
}

// SyncError represents a failed reconciliation pass
type SyncError struct {
	Pass    string // "contacts" or "events"
	Failed  int    // records that could not be merged
	Err     error
	Message string
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.Failed > 0 {
		return fmt.Sprintf("sync error in %s pass (%d records failed): %v", e.Pass, e.Failed, e.Err)
	}
	return fmt.Sprintf("sync error in %s pass: %v", e.Pass, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError
func NewSyncError(pass string, failed int, err error) *SyncError {
	return &SyncError{Pass: pass, Failed: failed, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransient checks if an error is worth retrying on the next pass
func IsTransient(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrTimeout)
}

// IsBusy checks if an error means a pass was already running
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapStore wraps an error as a non-transient StoreError
func WrapStore(store, operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreError(store, operation, false, err)
}

// WrapLinkage wraps an error as a LinkageError
func WrapLinkage(operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewLinkageError(operation, err)
}
