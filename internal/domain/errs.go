package domain

import "fmt"

// Error taxonomy for the handler boundary. Each kind maps to exactly one HTTP
// status; the queue worker catches the same kinds per-message and turns them
// into batch-failure entries instead of responses.

// ValidationError means a malformed or missing required field (400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthenticationError means no resolvable caller identity (401).
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// AuthorizationError means a role or ownership check failed (403).
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError means the addressed record is absent (404).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// StorageError wraps a store I/O failure (500). The store adapters perform no
// retries; each failure surfaces directly to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// PublishError wraps a notification publish failure (500).
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string { return fmt.Sprintf("publish: %v", e.Err) }
func (e *PublishError) Unwrap() error { return e.Err }

// EnqueueError wraps a work-queue enqueue failure (500).
type EnqueueError struct {
	Err error
}

func (e *EnqueueError) Error() string { return fmt.Sprintf("enqueue: %v", e.Err) }
func (e *EnqueueError) Unwrap() error { return e.Err }
