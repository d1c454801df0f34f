package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playforge/casino-api/internal/infra/pgtestutil"
	"github.com/playforge/casino-api/internal/repos/accounts"
)

func TestAccounts_GetBalance(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedAccount(db, 11, 123_45, t)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	got, err := repo.GetBalance(ctx, 11)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if got != 123_45 {
		t.Fatalf("balance: want 12345, got %d", got)
	}

	_, err = repo.GetBalance(ctx, 999_999)
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}
}
