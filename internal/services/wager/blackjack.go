package wager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playforge/casino-api/internal/games"
)

type BlackjackDeal struct {
	SessionID    string
	Player       []games.Card
	Dealer       []games.Card
	PlayerScore  int
	DealerScore  int // scores only the dealer's shown card
	BalanceMinor int64
}

// DealBlackjack deducts the stake, shuffles a fresh deck and deals the
// opening hands.
func (s *Service) DealBlackjack(ctx context.Context, accountID uint64, stakeMinor int64) (BlackjackDeal, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := s.debitStake(ctx, accountID, stakeMinor)
	if err != nil {
		return BlackjackDeal{}, err
	}

	state := games.NewBlackjack(s.rng, stakeMinor)

	sess, err := newSession(accountID, games.Blackjack, state)
	if err != nil {
		return BlackjackDeal{}, err
	}

	err = s.sessions.Put(ctx, sess)
	if err != nil {
		if rerr := s.refundStake(ctx, accountID, stakeMinor); rerr != nil {
			slog.Error("refund after session store failure",
				"error", rerr, "account_id", accountID, "stake", stakeMinor)
		}

		return BlackjackDeal{}, fmt.Errorf("store session: %w", err)
	}

	return BlackjackDeal{
		SessionID:    sess.ID,
		Player:       state.Player,
		Dealer:       state.Dealer,
		PlayerScore:  state.PlayerScore(),
		DealerScore:  state.UpcardScore(),
		BalanceMinor: balance,
	}, nil
}

type BlackjackTurn struct {
	SessionID   string
	Player      []games.Card
	Dealer      []games.Card
	PlayerScore int
	DealerScore int
	GameOver    bool
	Outcome     games.BlackjackOutcome
	Multiplier  float64
	WinMinor    int64

	// BalanceMinor is populated only when the round ends.
	BalanceMinor int64
}

// HitBlackjack draws one card to the player's hand; a bust settles the
// round as a total loss immediately.
func (s *Service) HitBlackjack(ctx context.Context, accountID uint64) (BlackjackTurn, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	var state games.BlackjackState

	sess, err := s.loadState(ctx, accountID, games.Blackjack, &state)
	if err != nil {
		return BlackjackTurn{}, err
	}

	score, bust := state.Hit()

	turn := BlackjackTurn{
		SessionID:   sess.ID,
		Player:      state.Player,
		Dealer:      state.Dealer,
		PlayerScore: score,
		DealerScore: state.UpcardScore(),
	}

	if !bust {
		err = s.saveState(ctx, sess, &state)
		if err != nil {
			return BlackjackTurn{}, err
		}

		return turn, nil
	}

	balance, err := s.settleSession(ctx, accountID, games.Blackjack, sess.ID, state.StakeMinor, 0, 0)
	if err != nil {
		return BlackjackTurn{}, err
	}

	err = s.sessions.Delete(ctx, accountID, string(games.Blackjack))
	if err != nil {
		return BlackjackTurn{}, fmt.Errorf("drop session: %w", err)
	}

	turn.GameOver = true
	turn.Outcome = games.BlackjackLose
	turn.BalanceMinor = balance

	return turn, nil
}

// StandBlackjack plays out the dealer and settles the round: 2x on a
// win, the stake back on a push, nothing on a loss.
func (s *Service) StandBlackjack(ctx context.Context, accountID uint64) (BlackjackTurn, error) {
	lock := s.locks.forAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	var state games.BlackjackState

	sess, err := s.loadState(ctx, accountID, games.Blackjack, &state)
	if err != nil {
		return BlackjackTurn{}, err
	}

	final := state.Stand()
	winMinor := winAmountMinor(state.StakeMinor, final.Multiplier)

	balance, err := s.settleSession(ctx, accountID, games.Blackjack, sess.ID, state.StakeMinor, winMinor, final.Multiplier)
	if err != nil {
		return BlackjackTurn{}, err
	}

	err = s.sessions.Delete(ctx, accountID, string(games.Blackjack))
	if err != nil {
		return BlackjackTurn{}, fmt.Errorf("drop session: %w", err)
	}

	return BlackjackTurn{
		SessionID:    sess.ID,
		Player:       state.Player,
		Dealer:       state.Dealer,
		PlayerScore:  final.PlayerScore,
		DealerScore:  final.DealerScore,
		GameOver:     true,
		Outcome:      final.Outcome,
		Multiplier:   final.Multiplier,
		WinMinor:     winMinor,
		BalanceMinor: balance,
	}, nil
}
