package ports

import "context"

// KeyValueStore is the persistence medium behind every store: a flat
// namespace of string slots holding JSON text.
type KeyValueStore interface {
	// Get returns the slot value and whether the slot exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
