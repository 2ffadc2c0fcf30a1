// Package domain holds the persisted entities managed by the sync worker.
// The structs double as GORM models; the relational schema follows the
// field limits enforced by the payload validators.
package domain

import "errors"

// ErrNotFound is returned by persistence gateways when a lookup by id
// matches no row.
var ErrNotFound = errors.New("entity not found")
