package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/playforge/casino-api/internal/repos/accounts"
	"github.com/playforge/casino-api/internal/repos/transactions"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

func (r *transactionsRepo) Insert(tx *sql.Tx, rec *transactions.Record) error {
	err := tx.QueryRow(`
		INSERT INTO transactions (account_id, game, stake, win_amount, multiplier, session_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at
	`, rec.AccountID, rec.Game, rec.StakeMinor, rec.WinMinor, rec.Multiplier, rec.SessionID).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503": // foreign_key_violation
				return accounts.ErrAccountNotFound
			case "23505": // unique_violation on session_id
				return transactions.ErrDuplicateSettlement
			}
		}

		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

func (r *transactionsRepo) ListRecent(ctx context.Context, accountID uint64, limit int) ([]transactions.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, game, stake, win_amount, multiplier,
		       COALESCE(session_id, ''), created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var recs []transactions.Record

	for rows.Next() {
		var rec transactions.Record

		err = rows.Scan(&rec.ID, &rec.AccountID, &rec.Game, &rec.StakeMinor,
			&rec.WinMinor, &rec.Multiplier, &rec.SessionID, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		recs = append(recs, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return recs, nil
}
