package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playforge/casino-api/internal/repos/sessions"
)

var _ sessions.Store = (*sessionsStore)(nil)

type sessionsStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration // 0 = sessions never expire
}

type Option func(*sessionsStore)

// WithTTL bounds abandoned sessions. Left unset, an Active session
// stays in the store indefinitely.
func WithTTL(ttl time.Duration) Option {
	return func(s *sessionsStore) { s.ttl = ttl }
}

// WithKeyPrefix namespaces all keys; used by tests to isolate runs.
func WithKeyPrefix(prefix string) Option {
	return func(s *sessionsStore) { s.prefix = prefix }
}

func New(client *redis.Client, opts ...Option) *sessionsStore {
	s := &sessionsStore{client: client, prefix: "casino:"}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *sessionsStore) key(accountID uint64, game string) string {
	return fmt.Sprintf("%ssession:%d:%s", s.prefix, accountID, game)
}

func (s *sessionsStore) Get(ctx context.Context, accountID uint64, game string) (*sessions.Session, error) {
	data, err := s.client.Get(ctx, s.key(accountID, game)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sessions.ErrNoSession
		}

		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess sessions.Session

	err = json.Unmarshal(data, &sess)
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &sess, nil
}

func (s *sessionsStore) Put(ctx context.Context, sess *sessions.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.client.Set(ctx, s.key(sess.AccountID, sess.Game), data, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}

	return nil
}

func (s *sessionsStore) Delete(ctx context.Context, accountID uint64, game string) error {
	err := s.client.Del(ctx, s.key(accountID, game)).Err()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
