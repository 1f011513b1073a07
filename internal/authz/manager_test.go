package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sitecard/notify-relay/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(storage.NewMemoryStore(), zerolog.Nop())
}

func TestManager_AuthorizeAndCheck(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	ok, err := m.IsAuthorized(ctx, "42")
	if err != nil {
		t.Fatalf("IsAuthorized: %v", err)
	}
	if ok {
		t.Error("expected unknown id to be unauthorized")
	}

	if err := m.Authorize(ctx, "42"); err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	ok, err = m.IsAuthorized(ctx, "42")
	if err != nil {
		t.Fatalf("IsAuthorized: %v", err)
	}
	if !ok {
		t.Error("expected id to be authorized after Authorize")
	}
}

func TestManager_AuthorizeIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Authorize(ctx, "42"); err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if err := m.Authorize(ctx, "42"); err != nil {
		t.Fatalf("second Authorize: %v", err)
	}

	ids, err := m.ListAuthorized(ctx)
	if err != nil {
		t.Fatalf("ListAuthorized: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected exactly one record after double authorize, got %v", ids)
	}
}

func TestManager_UnauthorizeAbsent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Unauthorize(ctx, "never-authorized"); err != nil {
		t.Errorf("unauthorizing an absent id should be a no-op, got %v", err)
	}

	ids, err := m.ListAuthorized(ctx)
	if err != nil {
		t.Fatalf("ListAuthorized: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no records created, got %v", ids)
	}
}

func TestManager_ListAfterTransitions(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Authorize(ctx, "A"); err != nil {
		t.Fatalf("Authorize(A): %v", err)
	}
	if err := m.Authorize(ctx, "B"); err != nil {
		t.Fatalf("Authorize(B): %v", err)
	}
	if err := m.Unauthorize(ctx, "A"); err != nil {
		t.Fatalf("Unauthorize(A): %v", err)
	}

	ids, err := m.ListAuthorized(ctx)
	if err != nil {
		t.Fatalf("ListAuthorized: %v", err)
	}
	if len(ids) != 1 || ids[0] != "B" {
		t.Errorf("expected exactly {B}, got %v", ids)
	}
}

// failingStore returns a fixed error from every operation.
type failingStore struct {
	err error
}

func (f *failingStore) Add(context.Context, string) error            { return f.err }
func (f *failingStore) Remove(context.Context, string) error         { return f.err }
func (f *failingStore) Exists(context.Context, string) (bool, error) { return false, f.err }
func (f *failingStore) ListAll(context.Context) ([]string, error)    { return nil, f.err }
func (f *failingStore) Close()                                       {}

func TestManager_PropagatesStoreFailures(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")
	m := NewManager(&failingStore{err: storeErr}, zerolog.Nop())

	if err := m.Authorize(ctx, "42"); !errors.Is(err, storeErr) {
		t.Errorf("Authorize: got %v, want wrapped store error", err)
	}
	if err := m.Unauthorize(ctx, "42"); !errors.Is(err, storeErr) {
		t.Errorf("Unauthorize: got %v, want wrapped store error", err)
	}
	if _, err := m.IsAuthorized(ctx, "42"); !errors.Is(err, storeErr) {
		t.Errorf("IsAuthorized: got %v, want wrapped store error", err)
	}
	if _, err := m.ListAuthorized(ctx); !errors.Is(err, storeErr) {
		t.Errorf("ListAuthorized: got %v, want wrapped store error", err)
	}
}
