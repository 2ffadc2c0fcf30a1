// Package errors holds the sentinel errors shared by the worker runtime.
package errors

import sterrors "errors"

var (
	ErrServiceRequired    = sterrors.New("entitysync: service is required")
	ErrRegistryRequired   = sterrors.New("entitysync: handler registry is required")
	ErrEntityTypeRequired = sterrors.New("entitysync: entity type is required")
	ErrPublisherRequired  = sterrors.New("entitysync: publisher is required")
	ErrTopicRequired      = sterrors.New("entitysync: topic is required")
	ErrEnvelopeRequired   = sterrors.New("entitysync: envelope is required")
	ErrConfigRequired     = sterrors.New("entitysync: configuration is required")
	ErrLoggerRequired     = sterrors.New("entitysync: logger is required")
)
