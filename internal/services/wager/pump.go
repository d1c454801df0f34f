package wager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playforge/casino-api/internal/games"
)

type PumpStart struct {
	SessionID    string
	BalanceMinor int64
}

// StartPump deducts the stake and samples the latent pop point. The
// pop point stays server-side until the round resolves.
func (s *Service) StartPump(ctx context.Context, accountID uint64, stakeMinor int64) (PumpStart, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := s.debitStake(ctx, accountID, stakeMinor)
	if err != nil {
		return PumpStart{}, err
	}

	state := games.NewPump(s.rng, stakeMinor)

	sess, err := newSession(accountID, games.Pump, state)
	if err != nil {
		return PumpStart{}, err
	}

	err = s.sessions.Put(ctx, sess)
	if err != nil {
		if rerr := s.refundStake(ctx, accountID, stakeMinor); rerr != nil {
			slog.Error("refund after session store failure",
				"error", rerr, "account_id", accountID, "stake", stakeMinor)
		}

		return PumpStart{}, fmt.Errorf("store session: %w", err)
	}

	return PumpStart{SessionID: sess.ID, BalanceMinor: balance}, nil
}

type PumpResult struct {
	SessionID    string
	Multiplier   float64
	WinMinor     int64
	PopPoint     float64
	BalanceMinor int64
}

// PopPump resolves the active session as a total loss.
func (s *Service) PopPump(ctx context.Context, accountID uint64) (PumpResult, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	var state games.PumpState

	sess, err := s.loadState(ctx, accountID, games.Pump, &state)
	if err != nil {
		return PumpResult{}, err
	}

	balance, err := s.settleSession(ctx, accountID, games.Pump, sess.ID, state.StakeMinor, 0, 0)
	if err != nil {
		return PumpResult{}, err
	}

	err = s.sessions.Delete(ctx, accountID, string(games.Pump))
	if err != nil {
		return PumpResult{}, fmt.Errorf("drop session: %w", err)
	}

	return PumpResult{
		SessionID:    sess.ID,
		PopPoint:     state.PopPoint,
		BalanceMinor: balance,
	}, nil
}

// CashoutPump settles at the caller-declared multiplier after
// validating it against the stored pop point.
func (s *Service) CashoutPump(ctx context.Context, accountID uint64, multiplier float64) (PumpResult, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	var state games.PumpState

	sess, err := s.loadState(ctx, accountID, games.Pump, &state)
	if err != nil {
		return PumpResult{}, err
	}

	payout, err := state.Cashout(multiplier)
	if err != nil {
		return PumpResult{}, err
	}

	winMinor := winAmountMinor(state.StakeMinor, payout)

	balance, err := s.settleSession(ctx, accountID, games.Pump, sess.ID, state.StakeMinor, winMinor, payout)
	if err != nil {
		return PumpResult{}, err
	}

	err = s.sessions.Delete(ctx, accountID, string(games.Pump))
	if err != nil {
		return PumpResult{}, fmt.Errorf("drop session: %w", err)
	}

	return PumpResult{
		SessionID:    sess.ID,
		Multiplier:   payout,
		WinMinor:     winMinor,
		PopPoint:     state.PopPoint,
		BalanceMinor: balance,
	}, nil
}
