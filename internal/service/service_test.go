package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartsplit/backend/internal/models"
	"github.com/smartsplit/backend/internal/storage"
	"github.com/smartsplit/backend/internal/storage/sqlite"
)

// newTestStore creates a temp-file SQLite store that is cleaned up with the
// test.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "smartsplit-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createUser(t *testing.T, store storage.Store, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

// threeMemberGroup creates a group with members alice (admin), bob and
// charlie, the fixture most scenario tests start from.
func threeMemberGroup(t *testing.T, store storage.Store) (*models.Group, *models.User, *models.User, *models.User) {
	t.Helper()
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	charlie := createUser(t, store, "charlie@example.com", "Charlie")

	groups := NewGroupService(store)
	group, err := groups.CreateGroup(ctx, "Flat 42", alice.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	for _, u := range []*models.User{bob, charlie} {
		if _, err := groups.AddMember(ctx, group.ID, u.ID); err != nil {
			t.Fatalf("AddMember(%s) failed: %v", u.Email, err)
		}
	}

	group, err = groups.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	return group, alice, bob, charlie
}
