package wager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/playforge/casino-api/internal/games"
	"github.com/playforge/casino-api/internal/infra/pgutils"
	"github.com/playforge/casino-api/internal/repos/accounts"
	"github.com/playforge/casino-api/internal/repos/transactions"
)

// settleSingle runs a single-shot game end to end in one database
// transaction: lock the account row, check funds, draw the outcome,
// debit the stake, credit the payout and append the transaction
// record. Either all of it commits or none of it does.
func (s *Service) settleSingle(
	ctx context.Context,
	accountID uint64,
	game games.Game,
	stakeMinor int64,
	play func(games.Rand) (float64, error),
) (Receipt, error) {
	if stakeMinor <= 0 {
		return Receipt{}, ErrInvalidStake
	}

	var receipt Receipt

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.accounts.LockAndGetBalance(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if balance < stakeMinor {
			return accounts.ErrInsufficientFunds
		}

		multiplier, err := play(s.rng)
		if err != nil {
			return err
		}

		err = s.accounts.DecreaseBalance(tx, accountID, stakeMinor)
		if err != nil {
			return fmt.Errorf("debit stake: %w", err)
		}

		winMinor := winAmountMinor(stakeMinor, multiplier)
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
		})
		if err != nil {
			return fmt.Errorf("record settlement: %w", err)
		}

		receipt = Receipt{
			WinMinor:     winMinor,
			BalanceMinor: balance - stakeMinor + winMinor,
		}

		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	observeSettlement(game, stakeMinor, receipt.WinMinor)

	return receipt, nil
}

func (s *Service) PlayPlinko(ctx context.Context, accountID uint64, stakeMinor int64, tier games.RiskTier) (games.PlinkoResult, Receipt, error) {
	var res games.PlinkoResult

	receipt, err := s.settleSingle(ctx, accountID, games.Plinko, stakeMinor, func(r games.Rand) (float64, error) {
		var err error
		res, err = games.PlayPlinko(r, tier)

		return res.Multiplier, err
	})

	return res, receipt, err
}

func (s *Service) PlayCrash(ctx context.Context, accountID uint64, stakeMinor int64, autoCashout float64) (games.CrashResult, Receipt, error) {
	var res games.CrashResult

	receipt, err := s.settleSingle(ctx, accountID, games.Crash, stakeMinor, func(r games.Rand) (float64, error) {
		var err error
		res, err = games.PlayCrash(r, autoCashout)

		return res.Multiplier, err
	})

	return res, receipt, err
}

func (s *Service) PlayDice(ctx context.Context, accountID uint64, stakeMinor int64, target float64, over bool) (games.DiceResult, Receipt, error) {
	var res games.DiceResult

	receipt, err := s.settleSingle(ctx, accountID, games.Dice, stakeMinor, func(r games.Rand) (float64, error) {
		var err error
		res, err = games.PlayDice(r, target, over)

		return res.Multiplier, err
	})

	return res, receipt, err
}

func (s *Service) PlayLimbo(ctx context.Context, accountID uint64, stakeMinor int64, target float64) (games.LimboResult, Receipt, error) {
	var res games.LimboResult

	receipt, err := s.settleSingle(ctx, accountID, games.Limbo, stakeMinor, func(r games.Rand) (float64, error) {
		var err error
		res, err = games.PlayLimbo(r, target)

		return res.Multiplier, err
	})

	return res, receipt, err
}

func (s *Service) PlayRoulette(ctx context.Context, accountID uint64, stakeMinor int64, bet games.RouletteBet) (games.RouletteResult, Receipt, error) {
	var res games.RouletteResult

	receipt, err := s.settleSingle(ctx, accountID, games.Roulette, stakeMinor, func(r games.Rand) (float64, error) {
		var err error
		res, err = games.PlayRoulette(r, bet)

		return res.Multiplier, err
	})

	return res, receipt, err
}
