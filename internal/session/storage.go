// Package session holds the per-visitor session state: an opaque bearer token and the
// cached user record. The state lives in a pluggable Storage so it survives page reloads
// and gateway restarts when a persistent driver is configured.
package session

import (
	"context"
	"errors"
)

// ErrStorageUnavailable is returned by storages that cannot reach their backing service.
var ErrStorageUnavailable = errors.New("session storage unavailable")

// Storage is a flat string key/value space partitioned by namespace, one namespace per visitor.
// GetItem reports ok=false for a missing key; that is not an error.
type Storage interface {
	GetItem(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, namespace, key, value string) error
	RemoveItem(ctx context.Context, namespace, key string) error
}
