package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playforge/casino-api/internal/infra/pgtestutil"
	"github.com/playforge/casino-api/internal/repos/accounts"
)

func TestAccounts_LockAndGetBalance(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedAccount(db, 31, 4_200, t)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	balance, err := repo.LockAndGetBalance(tx, 31)
	if err != nil {
		t.Fatalf("lock seeded account: %v", err)
	}

	if balance != 4_200 {
		t.Fatalf("balance: want 4200, got %d", balance)
	}

	_, err = repo.LockAndGetBalance(tx, 999_999)
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}
}
