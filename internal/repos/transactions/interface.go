package transactions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrDuplicateSettlement means a record with the same SessionID was
// already inserted: the session has been settled.
var ErrDuplicateSettlement = errors.New("session already settled")

// Record is one resolved bet: immutable once inserted, including total
// losses where WinMinor and Multiplier are zero. SessionID is set for
// multi-step games and unique per session, so a session can settle at
// most once; single-shot games leave it empty.
type Record struct {
	ID         uint64
	AccountID  uint64
	Game       string
	StakeMinor int64
	WinMinor   int64
	Multiplier float64
	SessionID  string
	CreatedAt  time.Time
}

type Transactions interface {
	Insert(tx *sql.Tx, rec *Record) error
	ListRecent(ctx context.Context, accountID uint64, limit int) ([]Record, error)
}
