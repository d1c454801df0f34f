// Package wager is the settlement engine: it routes validated bets to
// the game engines, composes the atomic balance mutations that must
// accompany every resolution, and drives the multi-step game sessions.
package wager

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/playforge/casino-api/internal/games"
	"github.com/playforge/casino-api/internal/repos/accounts"
	pgaccounts "github.com/playforge/casino-api/internal/repos/accounts/postgres"
	"github.com/playforge/casino-api/internal/repos/sessions"
	"github.com/playforge/casino-api/internal/repos/transactions"
	pgtransactions "github.com/playforge/casino-api/internal/repos/transactions/postgres"
)

const historyLimit = 50

var ErrInvalidStake = errors.New("stake must be positive")

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	txns     transactions.Transactions
	sessions sessions.Store
	rng      games.Rand
	locks    accountLocks
}

func New(db *sql.DB, store sessions.Store, rng games.Rand) *Service {
	return &Service{
		db:       db,
		accounts: pgaccounts.New(db),
		txns:     pgtransactions.New(db),
		sessions: store,
		rng:      rng,
	}
}

// Receipt reports the money side of a resolved bet.
type Receipt struct {
	WinMinor     int64
	BalanceMinor int64
}

// winAmountMinor converts a multiplier into a payout in minor units.
// This is the single place float math touches money: one rounding per
// resolution, so balances stay integral across any number of bets.
func winAmountMinor(stakeMinor int64, multiplier float64) int64 {
	return int64(math.Round(float64(stakeMinor) * multiplier))
}

func newSession(accountID uint64, game games.Game, state any) (*sessions.Session, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode game state: %w", err)
	}

	return &sessions.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Game:      string(game),
		StartedAt: time.Now().UTC(),
		State:     raw,
	}, nil
}

// loadState fetches the account's session for game and decodes its
// state blob into dst.
func (s *Service) loadState(ctx context.Context, accountID uint64, game games.Game, dst any) (*sessions.Session, error) {
	sess, err := s.sessions.Get(ctx, accountID, string(game))
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(sess.State, dst)
	if err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}

	return sess, nil
}

func (s *Service) saveState(ctx context.Context, sess *sessions.Session, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}

	sess.State = raw

	return s.sessions.Put(ctx, sess)
}
