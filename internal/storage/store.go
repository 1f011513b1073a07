// Package storage persists the set of currently authorized recipient
// identifiers. Presence in the store means authorized; absence means not.
package storage

import "context"

// RecipientStore is the durable set of authorized recipient identifiers.
// Add has upsert semantics (re-adding refreshes the authorization
// timestamp); Remove of an absent id is a no-op. Implementations must be
// safe for concurrent use.
type RecipientStore interface {
	// Add upserts an authorization record for id.
	Add(ctx context.Context, id string) error
	// Remove deletes the record for id if present.
	Remove(ctx context.Context, id string) error
	// Exists reports whether id is currently authorized.
	Exists(ctx context.Context, id string) (bool, error)
	// ListAll returns a snapshot of every authorized id, duplicate-free.
	ListAll(ctx context.Context) ([]string, error)
	// Close releases the underlying connection resources.
	Close()
}
