package wager

import (
	"context"

	"github.com/playforge/casino-api/internal/repos/transactions"
)

func (s *Service) Balance(ctx context.Context, accountID uint64) (int64, error) {
	return s.accounts.GetBalance(ctx, accountID)
}

// History returns the account's most recent settlements, newest first.
// An unknown account is an error, not an empty history.
func (s *Service) History(ctx context.Context, accountID uint64) ([]transactions.Record, error) {
	_, err := s.accounts.GetBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return s.txns.ListRecent(ctx, accountID, historyLimit)
}
