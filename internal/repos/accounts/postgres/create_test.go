package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/playforge/casino-api/internal/infra/pgtestutil"
)

func TestAccounts_Create(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	id, err := repo.Create(ctx, 100_000)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if id == 0 {
		t.Fatal("create returned zero id")
	}

	got, err := repo.GetBalance(ctx, id)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if got != 100_000 {
		t.Fatalf("starting balance: want 100000, got %d", got)
	}
}
