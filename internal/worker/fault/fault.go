// Package fault defines the typed failure taxonomy of the consumption
// pipeline. Every component below the acknowledgement layer returns one of
// these error types; the worker maps the kind to a broker action and never
// inspects error text.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind partitions pipeline failures by how the worker must acknowledge the
// message that caused them.
type Kind int

const (
	// KindTransient covers persistence I/O errors and anything else not
	// carrying an explicit kind. Transient failures are requeued.
	KindTransient Kind = iota

	// KindMalformedEnvelope marks envelopes that cannot be decoded.
	KindMalformedEnvelope

	// KindValidation marks payloads that failed field validation.
	KindValidation

	// KindNotFound marks updates referencing an id that does not exist.
	KindNotFound

	// KindUnroutable marks entity types with no registered handler.
	KindUnroutable
)

func (k Kind) String() string {
	switch k {
	case KindMalformedEnvelope:
		return "malformed_envelope"
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindUnroutable:
		return "unroutable"
	default:
		return "transient"
	}
}

// Terminal reports whether the failure can never resolve by redelivering the
// same message. Terminal failures are dead-lettered instead of retried.
// Unroutable is deliberately not terminal in this sense: it is dropped
// without a dead-letter record.
func (k Kind) Terminal() bool {
	switch k {
	case KindMalformedEnvelope, KindValidation, KindNotFound:
		return true
	default:
		return false
	}
}

// MalformedEnvelopeError wraps a wire message whose outer structure could
// not be decoded.
type MalformedEnvelopeError struct {
	Reason string
	Err    error
}

func (e *MalformedEnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed envelope: %s: %v", e.Reason, e.Err)
	}
	return "malformed envelope: " + e.Reason
}

func (e *MalformedEnvelopeError) Unwrap() error { return e.Err }

// ValidationError carries the ordered, human-readable field errors produced
// by a payload validator.
type ValidationError struct {
	EntityType string
	Errors     []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s payload failed validation: %s", e.EntityType, strings.Join(e.Errors, "; "))
}

// NotFoundError marks an update whose id resolves to no persisted entity.
type NotFoundError struct {
	EntityType string
	ID         int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d does not exist", e.EntityType, e.ID)
}

// UnroutableError marks an envelope whose entity type has no registered
// handler.
type UnroutableError struct {
	EntityType string
}

func (e *UnroutableError) Error() string {
	return fmt.Sprintf("no handler registered for entity type %q", e.EntityType)
}

// KindOf classifies an error into a Kind. Errors that carry no explicit
// fault type classify as transient, so unknown failures are always retried
// rather than dropped.
func KindOf(err error) Kind {
	if err == nil {
		return KindTransient
	}

	var malformed *MalformedEnvelopeError
	if errors.As(err, &malformed) {
		return KindMalformedEnvelope
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return KindNotFound
	}
	var unroutable *UnroutableError
	if errors.As(err, &unroutable) {
		return KindUnroutable
	}
	return KindTransient
}
