// Package redistestutil hands tests a Redis client plus a unique key
// prefix, so parallel tests never see each other's keys and cleanup is
// a single prefixed scan-and-delete.
package redistestutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultAddr = "localhost:6379"

// Addr points tests at the local Redis instance; override with
// TEST_REDIS_ADDR.
func Addr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}

	return defaultAddr
}

// NewTestClient connects to the local Redis and returns the client, a
// key prefix unique to this test and a cleanup that removes every key
// under it.
func NewTestClient(t *testing.T) (*redis.Client, string, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: Addr()})

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		t.Fatalf("ping redis at %s: %v", Addr(), err)
	}

	var rnd [6]byte
	_, _ = rand.Read(rnd[:])
	prefix := fmt.Sprintf("test:%s:", hex.EncodeToString(rnd[:]))

	cleanup := func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer ccancel()

		iter := client.Scan(cctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(cctx) {
			_ = client.Del(cctx, iter.Val()).Err()
		}

		_ = client.Close()
	}

	return client, prefix, cleanup
}
