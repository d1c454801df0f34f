// End-to-end checks against a running API instance with seeded dev
// accounts. Opt in by exporting E2E_JWT_SECRET (the instance's
// APP_JWT_SECRET); E2E_BASE_URL overrides the default address.
package e2etests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/playforge/casino-api/internal/config"
	"github.com/playforge/casino-api/internal/services/auth"
)

const (
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

func baseURL() string {
	if u := os.Getenv("E2E_BASE_URL"); u != "" {
		return u
	}

	return "http://localhost:8080"
}

func e2eToken(t *testing.T, accountID uint64) string {
	t.Helper()

	secret := os.Getenv("E2E_JWT_SECRET")
	if secret == "" {
		t.Skip("E2E_JWT_SECRET not set; skipping e2e suite")
	}

	svc := auth.NewJWT(config.AuthConfig{JWTSecret: secret, TokenTTL: time.Hour})

	token, err := svc.IssueToken(accountID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	return token
}

func TestE2E_PlayFlow(t *testing.T) {
	token := e2eToken(t, 1)
	waitUntilReady(t)

	startBalance := getBalanceMinor(t, token)

	t.Run("dice_bet_settles_consistently", func(t *testing.T) {
		code, body := postPlay(t, token, "dice", map[string]any{
			"bet": 1.00, "target": 50, "over": true,
		})
		if code != http.StatusOK {
			t.Fatalf("dice: want 200, got %d (%s)", code, body)
		}

		var resp struct {
			Won     bool   `json:"won"`
			Win     string `json:"win"`
			Balance string `json:"balance"`
		}
		mustDecode(t, body, &resp)

		win := parseMoney(t, resp.Win)
		balance := parseMoney(t, resp.Balance)

		if balance != startBalance-100+win {
			t.Fatalf("balance mismatch: start %d, win %d, got %d", startBalance, win, balance)
		}
		if resp.Won && win == 0 {
			t.Fatal("won with zero payout")
		}
		if !resp.Won && win != 0 {
			t.Fatalf("lost with payout %d", win)
		}

		if got := getBalanceMinor(t, token); got != balance {
			t.Fatalf("stored balance %d != reported %d", got, balance)
		}
	})

	t.Run("mines_start_and_immediate_cashout", func(t *testing.T) {
		before := getBalanceMinor(t, token)

		code, body := postPlay(t, token, "mines", map[string]any{
			"action": "start", "bet": 1.00, "mines": 3,
		})
		if code != http.StatusOK {
			t.Fatalf("mines start: want 200, got %d (%s)", code, body)
		}

		code, body = postPlay(t, token, "mines", map[string]any{"action": "cashout"})
		if code != http.StatusOK {
			t.Fatalf("mines cashout: want 200, got %d (%s)", code, body)
		}

		var resp struct {
			Win     string `json:"win"`
			Balance string `json:"balance"`
		}
		mustDecode(t, body, &resp)

		// Zero gems revealed: multiplier is 1/0.97, so 1.00 pays 1.03.
		if win := parseMoney(t, resp.Win); win != 103 {
			t.Fatalf("cashout win: want 103, got %d", win)
		}
		if got := parseMoney(t, resp.Balance); got != before-100+103 {
			t.Fatalf("balance after cashout: want %d, got %d", before-100+103, got)
		}
	})

	t.Run("history_returns_rows", func(t *testing.T) {
		code, body := authedGet(t, token, "/history")
		if code != http.StatusOK {
			t.Fatalf("history: want 200, got %d (%s)", code, body)
		}

		var rows []struct {
			Game string `json:"game"`
			Bet  string `json:"bet"`
		}
		mustDecode(t, body, &rows)

		if len(rows) == 0 {
			t.Fatal("history empty after settled bets")
		}
		parseMoney(t, rows[0].Bet)
	})
}

func TestE2E_Validation(t *testing.T) {
	token := e2eToken(t, 2)
	waitUntilReady(t)

	t.Run("unauthenticated_rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, baseURL()+"/balance", nil)
		resp, err := httpClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("want 401, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown_game_rejected", func(t *testing.T) {
		code, _ := postPlay(t, token, "baccarat", map[string]any{"bet": 1.00})
		if code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", code)
		}
	})

	t.Run("zero_bet_rejected", func(t *testing.T) {
		code, _ := postPlay(t, token, "dice", map[string]any{
			"bet": 0, "target": 50, "over": true,
		})
		if code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", code)
		}
	})

	t.Run("stateful_action_without_session_rejected", func(t *testing.T) {
		code, body := postPlay(t, token, "pump", map[string]any{"action": "pop"})
		if code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d (%s)", code, body)
		}
	})
}

/* -------------------- helpers -------------------- */

func authedGet(t *testing.T, token, path string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL()+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func postPlay(t *testing.T, token, game string, body map[string]any) (int, string) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	u := fmt.Sprintf("%s/play/%s", baseURL(), game)
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func getBalanceMinor(t *testing.T, token string) int64 {
	t.Helper()

	code, body := authedGet(t, token, "/balance")
	if code != http.StatusOK {
		t.Fatalf("GET /balance: want 200, got %d (%s)", code, body)
	}

	var payload struct {
		Balance string `json:"balance"`
	}
	mustDecode(t, body, &payload)

	return parseMoney(t, payload.Balance)
}

func mustDecode(t *testing.T, body string, v any) {
	t.Helper()

	err := json.Unmarshal([]byte(body), v)
	if err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
}

// parseMoney converts a "12.34" style amount into minor units.
func parseMoney(t *testing.T, s string) int64 {
	t.Helper()

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) != 2 || len(parts[1]) != 2 {
		t.Fatalf("money %q is not a 2-decimal string", s)
	}

	intPart, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		t.Fatalf("money %q: %v", s, err)
	}
	fracPart, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		t.Fatalf("money %q: %v", s, err)
	}

	minor := intPart*100 + fracPart
	if neg {
		minor = -minor
	}

	return minor
}

// waitUntilReady polls /healthz until the instance answers.
func waitUntilReady(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitReady)
	defer cancel()

	u := baseURL() + "/healthz"

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service not ready at %s within %s", u, waitReady)
		case <-tick.C:
			resp, err := httpClient.Get(u)
			if err != nil {
				continue
			}
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
	}
}
