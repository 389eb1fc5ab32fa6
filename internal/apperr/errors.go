package apperr

import (
	"errors"
	"fmt"
)

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness or state conflict (HTTP 409).
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// InvalidTransition is matched by every rejected status change.
var InvalidTransition = errors.New("invalid status transition")

// SchemaIncompatible means the live schema lacks columns the write cannot do without.
var SchemaIncompatible = errors.New("schema incompatible")

// TransientStore marks a store failure that survived every retry attempt.
var TransientStore = errors.New("transient store error")

// TransitionError describes a rejected status change.
type TransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot change status from %q to %q: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot change status from %q to %q", e.From, e.To)
}

// Is reports InvalidTransition.
func (e *TransitionError) Is(target error) bool { return target == InvalidTransition }

// StoreKind classifies a StoreError.
type StoreKind int

// Store error kinds.
const (
	KindTransient StoreKind = iota + 1
	KindSchema
)

// StoreError wraps the original driver error together with its classification.
type StoreError struct {
	Kind     StoreKind
	Op       string
	Attempts int
	Missing  []string
	Err      error
}

func (e *StoreError) Error() string {
	switch e.Kind {
	case KindSchema:
		if len(e.Missing) > 0 {
			return fmt.Sprintf("%s: schema incompatible, missing columns %v", e.Op, e.Missing)
		}
		return fmt.Sprintf("%s: schema incompatible: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
	}
}

// Unwrap returns the original error.
func (e *StoreError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error kind.
func (e *StoreError) Is(target error) bool {
	switch e.Kind {
	case KindTransient:
		return target == TransientStore
	case KindSchema:
		return target == SchemaIncompatible
	}
	return false
}

// Kind returns a short label for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, InvalidTransition):
		return "invalid_transition"
	case errors.Is(err, SchemaIncompatible):
		return "schema_incompatible"
	case errors.Is(err, TransientStore):
		return "transient_store"
	case errors.Is(err, NotFound):
		return "not_found"
	case errors.Is(err, Conflict):
		return "conflict"
	case errors.Is(err, Invalid):
		return "invalid"
	default:
		return "internal"
	}
}
