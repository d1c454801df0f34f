package wager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playforge/casino-api/internal/repos/accounts"
)

func TestService_History_NewestFirst(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t, &fakeRand{floats: []float64{0.75, 0.25}})
	seedAccount(db, 1, 10_000, t)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	_, _, err := svc.PlayDice(ctx, 1, 1_000, 50, true) // win
	if err != nil {
		t.Fatalf("first bet: %v", err)
	}

	_, _, err = svc.PlayDice(ctx, 1, 500, 50, true) // loss
	if err != nil {
		t.Fatalf("second bet: %v", err)
	}

	recs, err := svc.History(ctx, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records: want 2, got %d", len(recs))
	}
	if recs[0].StakeMinor != 500 || recs[1].StakeMinor != 1_000 {
		t.Fatalf("history not newest-first: %+v", recs)
	}
}

func TestService_History_UnknownAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeRand{})

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	_, err := svc.History(ctx, 999_999)
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}

	_, err = svc.Balance(ctx, 999_999)
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}
}
