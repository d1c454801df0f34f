package accounts

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Accounts mutates balances in minor units (cents). All balance writes
// take a *sql.Tx so the caller controls atomicity and row locking.
type Accounts interface {
	Create(ctx context.Context, startingMinor int64) (uint64, error)
	GetBalance(ctx context.Context, accountID uint64) (int64, error)
	LockAndGetBalance(tx *sql.Tx, accountID uint64) (int64, error)
	IncreaseBalance(tx *sql.Tx, accountID uint64, amountMinor int64) error
	DecreaseBalance(tx *sql.Tx, accountID uint64, amountMinor int64) error
}
