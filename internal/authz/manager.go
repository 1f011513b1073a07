// Package authz owns all reads and writes of recipient authorization state.
// No other component touches the store directly.
package authz

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sitecard/notify-relay/internal/storage"
)

// Manager applies the authorization business rules over a RecipientStore.
// Both transitions are idempotent: re-authorizing refreshes the timestamp,
// unauthorizing an absent id is a no-op. Store failures propagate to the
// caller untouched beyond wrapping; the manager never retries.
type Manager struct {
	store storage.RecipientStore
	log   zerolog.Logger
}

// NewManager creates a Manager over the given store.
func NewManager(store storage.RecipientStore, log zerolog.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// IsAuthorized reports whether id is currently authorized.
func (m *Manager) IsAuthorized(ctx context.Context, id string) (bool, error) {
	ok, err := m.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("storage: %w", err)
	}
	return ok, nil
}

// Authorize records id as authorized. Safe to call repeatedly.
func (m *Manager) Authorize(ctx context.Context, id string) error {
	if err := m.store.Add(ctx, id); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	m.log.Info().Str("recipient_id", id).Msg("recipient authorized")
	return nil
}

// Unauthorize removes id from the authorized set. Safe to call for ids
// that were never authorized.
func (m *Manager) Unauthorize(ctx context.Context, id string) error {
	if err := m.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	m.log.Info().Str("recipient_id", id).Msg("recipient unauthorized")
	return nil
}

// ListAuthorized returns a snapshot of all currently authorized ids.
func (m *Manager) ListAuthorized(ctx context.Context) ([]string, error) {
	ids, err := m.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return ids, nil
}
