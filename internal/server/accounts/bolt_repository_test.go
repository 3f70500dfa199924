package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"

	"github.com/prestoapp/presto-server/internal/common"
)

func newBoltRepo(t *testing.T) *BoltRepository {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "accounts.db"), 0600, nil)
	if err != nil {
		t.Fatalf("bolt.Open error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewBoltRepository(db)
	if err != nil {
		t.Fatalf("NewBoltRepository error: %v", err)
	}
	return repo
}

func TestBoltRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo := newBoltRepo(t)
	ctx := context.Background()

	account := &Account{Email: "a@x.com", Password: "pw1", Name: "Alice", Store: json.RawMessage(`{}`)}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if account.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set on create")
	}

	got, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if got.Email != "a@x.com" || got.Password != "pw1" || got.Name != "Alice" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if string(got.Store) != "{}" {
		t.Fatalf("store = %s, want {}", got.Store)
	}
}

func TestBoltRepository_FindByEmail_NotFound(t *testing.T) {
	t.Parallel()

	repo := newBoltRepo(t)

	_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestBoltRepository_Create_Duplicate(t *testing.T) {
	t.Parallel()

	repo := newBoltRepo(t)
	ctx := context.Background()

	first := &Account{Email: "a@x.com", Password: "pw1", Name: "Alice", Store: json.RawMessage(`{}`)}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	second := &Account{Email: "a@x.com", Password: "pw2", Name: "Bob", Store: json.RawMessage(`{}`)}
	if err := repo.Create(ctx, second); err == nil {
		t.Fatal("expected error on duplicate create")
	}
}

func TestBoltRepository_UpdateStore_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := newBoltRepo(t)
	ctx := context.Background()

	account := &Account{Email: "a@x.com", Password: "pw1", Name: "Alice", Store: json.RawMessage(`{}`)}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Compact document: the bolt value is re-marshalled as part of the
	// account record, which elides insignificant whitespace. Key order and
	// content come back verbatim.
	doc := json.RawMessage(`{"slides":[{"id":"s1","elements":[{"type":"text","body":"hi"}]}],"theme":"dark"}`)
	if err := repo.UpdateStore(ctx, "a@x.com", doc); err != nil {
		t.Fatalf("UpdateStore error: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if string(got.Store) != string(doc) {
		t.Fatalf("store not preserved byte-for-byte:\n got %s\nwant %s", got.Store, doc)
	}
}

func TestBoltRepository_UpdateStore_NotFound(t *testing.T) {
	t.Parallel()

	repo := newBoltRepo(t)

	err := repo.UpdateStore(context.Background(), "ghost@x.com", json.RawMessage(`{}`))
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
