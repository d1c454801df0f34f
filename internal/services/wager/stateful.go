package wager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playforge/casino-api/internal/games"
	"github.com/playforge/casino-api/internal/infra/pgutils"
	"github.com/playforge/casino-api/internal/repos/accounts"
	"github.com/playforge/casino-api/internal/repos/transactions"
)

// debitStake takes the stake at session start. No transaction record
// is appended yet; that happens once at resolution.
func (s *Service) debitStake(ctx context.Context, accountID uint64, stakeMinor int64) (int64, error) {
	if stakeMinor <= 0 {
		return 0, ErrInvalidStake
	}

	var balanceAfter int64

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.accounts.LockAndGetBalance(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if balance < stakeMinor {
			return accounts.ErrInsufficientFunds
		}

		err = s.accounts.DecreaseBalance(tx, accountID, stakeMinor)
		if err != nil {
			return fmt.Errorf("debit stake: %w", err)
		}

		balanceAfter = balance - stakeMinor

		return nil
	})
	if err != nil {
		return 0, err
	}

	return balanceAfter, nil
}

// refundStake reverses a start-of-session debit when the session
// itself could not be stored. No transaction record is written; the
// bet never happened.
func (s *Service) refundStake(ctx context.Context, accountID uint64, stakeMinor int64) error {
	return pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.accounts.LockAndGetBalance(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		err = s.accounts.IncreaseBalance(tx, accountID, stakeMinor)
		if err != nil {
			return fmt.Errorf("refund stake: %w", err)
		}

		return nil
	})
}

// settleSession credits the payout (if any) and appends the
// transaction record in one database transaction, keyed on the
// session id so the session settles at most once. The caller deletes
// the session only after this returns; if an earlier attempt already
// committed but its cleanup failed, the duplicate key aborts the
// second credit and the settled balance is reported instead.
func (s *Service) settleSession(
	ctx context.Context,
	accountID uint64,
	game games.Game,
	sessionID string,
	stakeMinor, winMinor int64,
	multiplier float64,
) (int64, error) {
	var balanceAfter int64

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.accounts.LockAndGetBalance(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if winMinor > 0 {
			err = s.accounts.IncreaseBalance(tx, accountID, winMinor)
			if err != nil {
				return fmt.Errorf("credit win: %w", err)
			}
		}

		err = s.txns.Insert(tx, &transactions.Record{
			AccountID:  accountID,
			Game:       string(game),
			StakeMinor: stakeMinor,
			WinMinor:   winMinor,
			Multiplier: multiplier,
			SessionID:  sessionID,
		})
		if err != nil {
			return fmt.Errorf("record settlement: %w", err)
		}

		balanceAfter = balance + winMinor

		return nil
	})
	if err != nil {
		if errors.Is(err, transactions.ErrDuplicateSettlement) {
			return s.accounts.GetBalance(ctx, accountID)
		}

		return 0, err
	}

	observeSettlement(game, stakeMinor, winMinor)

	return balanceAfter, nil
}
