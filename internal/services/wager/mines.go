package wager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playforge/casino-api/internal/games"
)

type MinesStart struct {
	SessionID    string
	BalanceMinor int64
}

// StartMines deducts the stake and opens a fresh session. An existing
// mines session for the account is overwritten; its stake is neither
// refunded nor settled.
func (s *Service) StartMines(ctx context.Context, accountID uint64, stakeMinor int64, mineCount int) (MinesStart, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	state, err := games.NewMines(s.rng, stakeMinor, mineCount)
	if err != nil {
		return MinesStart{}, err
	}

	balance, err := s.debitStake(ctx, accountID, stakeMinor)
	if err != nil {
		return MinesStart{}, err
	}

	sess, err := newSession(accountID, games.Mines, state)
	if err != nil {
		return MinesStart{}, err
	}

	err = s.sessions.Put(ctx, sess)
	if err != nil {
		if rerr := s.refundStake(ctx, accountID, stakeMinor); rerr != nil {
			slog.Error("refund after session store failure",
				"error", rerr, "account_id", accountID, "stake", stakeMinor)
		}

		return MinesStart{}, fmt.Errorf("store session: %w", err)
	}

	return MinesStart{SessionID: sess.ID, BalanceMinor: balance}, nil
}

type MinesReveal struct {
	SessionID  string
	Hit        bool
	GameOver   bool
	GemsFound  int
	Multiplier float64

	// Mines and BalanceMinor are populated only when the round ends.
	Mines        []int
	BalanceMinor int64
}

// RevealMines uncovers one cell of the active session. A mine resolves
// the round as a total loss and discloses all mine positions; a safe
// cell updates the stored state and reports the new cashout multiplier.
func (s *Service) RevealMines(ctx context.Context, accountID uint64, position int) (MinesReveal, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	var state games.MinesState

	sess, err := s.loadState(ctx, accountID, games.Mines, &state)
	if err != nil {
		return MinesReveal{}, err
	}

	rev, err := state.Reveal(position)
	if err != nil {
		return MinesReveal{}, err
	}

	if rev.Hit {
		balance, err := s.settleSession(ctx, accountID, games.Mines, sess.ID, state.StakeMinor, 0, 0)
		if err != nil {
			return MinesReveal{}, err
		}

		err = s.sessions.Delete(ctx, accountID, string(games.Mines))
		if err != nil {
			return MinesReveal{}, fmt.Errorf("drop session: %w", err)
		}

		return MinesReveal{
			SessionID:    sess.ID,
			Hit:          true,
			GameOver:     true,
			GemsFound:    rev.GemsFound,
			Mines:        state.Mines,
			BalanceMinor: balance,
		}, nil
	}

	err = s.saveState(ctx, sess, &state)
	if err != nil {
		return MinesReveal{}, err
	}

	return MinesReveal{
		SessionID:  sess.ID,
		GemsFound:  rev.GemsFound,
		Multiplier: rev.Multiplier,
	}, nil
}

type MinesCashout struct {
	SessionID    string
	Multiplier   float64
	WinMinor     int64
	Mines        []int
	BalanceMinor int64
}

// CashoutMines settles the active session at its current multiplier.
func (s *Service) CashoutMines(ctx context.Context, accountID uint64) (MinesCashout, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	var state games.MinesState

	sess, err := s.loadState(ctx, accountID, games.Mines, &state)
	if err != nil {
		return MinesCashout{}, err
	}

	multiplier := state.Multiplier()
	winMinor := winAmountMinor(state.StakeMinor, multiplier)

	balance, err := s.settleSession(ctx, accountID, games.Mines, sess.ID, state.StakeMinor, winMinor, multiplier)
	if err != nil {
		return MinesCashout{}, err
	}

	err = s.sessions.Delete(ctx, accountID, string(games.Mines))
	if err != nil {
		return MinesCashout{}, fmt.Errorf("drop session: %w", err)
	}

	return MinesCashout{
		SessionID:    sess.ID,
		Multiplier:   multiplier,
		WinMinor:     winMinor,
		Mines:        state.Mines,
		BalanceMinor: balance,
	}, nil
}
