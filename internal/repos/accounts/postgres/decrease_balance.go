package accounts

import (
	"database/sql"
	"fmt"

	"github.com/playforge/casino-api/internal/repos/accounts"
)

// DecreaseBalance guards the subtraction in SQL so the balance can
// never go negative even without a prior read.
func (r *accountsRepo) DecreaseBalance(tx *sql.Tx, accountID uint64, amountMinor int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance - $2
		WHERE id = $1
		  AND balance >= $2
	`, accountID, amountMinor)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientFunds
	}

	return nil
}
