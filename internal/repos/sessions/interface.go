package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrNoSession = errors.New("no active session")

// Session is one in-progress multi-step game, keyed by (account, game).
// State is the game-specific blob; the store never inspects it.
type Session struct {
	ID        string          `json:"id"`
	AccountID uint64          `json:"account_id"`
	Game      string          `json:"game"`
	StartedAt time.Time       `json:"started_at"`
	State     json.RawMessage `json:"state"`
}

// Store holds at most one session per (account, game) key. Put
// unconditionally replaces any existing session for the key.
type Store interface {
	Get(ctx context.Context, accountID uint64, game string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, accountID uint64, game string) error
}
