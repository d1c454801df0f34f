package accounts

import (
	"context"
	"fmt"
)

func (r *accountsRepo) Create(ctx context.Context, startingMinor int64) (uint64, error) {
	var id uint64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (balance)
		VALUES ($1)
		RETURNING id
	`, startingMinor).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}

	return id, nil
}
