package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playforge/casino-api/internal/games"
	"github.com/playforge/casino-api/internal/repos/accounts"
	"github.com/playforge/casino-api/internal/repos/sessions"
	"github.com/playforge/casino-api/internal/services/wager"
)

// HandlerProvider wraps the wager service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *wager.Service
}

// NewHandler returns a new Handler provider.
func NewHandler(svc *wager.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// formatMinor renders minor units as a 2-decimal string, the only
// place integral money becomes a decimal.
func formatMinor(m int64) string {
	return fmt.Sprintf("%.2f", float64(m)/100.0)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// parseAmountMinor converts a decimal string with up to 2 fractional
// digits into minor units. Stakes must be strictly positive.
func parseAmountMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("bet required")
	}
	if s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("bet must be a plain positive amount")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid bet")
	}
	intPart := parts[0]
	frac := "00"
	if len(parts) == 2 {
		if len(parts[1]) > 2 {
			return 0, fmt.Errorf("bet supports up to 2 decimals")
		}
		frac = parts[1] + strings.Repeat("0", 2-len(parts[1]))
	}
	ip, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bet integer")
	}
	fp, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bet fractional")
	}
	total := ip*100 + fp
	if total <= 0 {
		return 0, fmt.Errorf("bet must be > 0")
	}
	return total, nil
}

// playRequest is the superset of all per-game request bodies; each
// game reads the fields it needs.
type playRequest struct {
	Bet         json.Number `json:"bet"`
	Risk        string      `json:"risk"`
	AutoCashout *float64    `json:"autoCashout"`
	Target      *float64    `json:"target"`
	Over        *bool       `json:"over"`
	BetType     string      `json:"betType"`
	Action      string      `json:"action"`
	Mines       *int        `json:"mines"`
	Position    *int        `json:"position"`
	Multiplier  *float64    `json:"multiplier"`
}

func (req playRequest) stakeMinor() (int64, error) {
	return parseAmountMinor(req.Bet.String())
}

// respondServiceError maps domain sentinels to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounts.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "insufficient balance")
	case errors.Is(err, sessions.ErrNoSession):
		writeError(w, http.StatusBadRequest, "no active game")
	case errors.Is(err, games.ErrAlreadyRevealed):
		writeError(w, http.StatusBadRequest, "already revealed")
	case errors.Is(err, games.ErrCashoutExceedsPop):
		writeError(w, http.StatusBadRequest, "invalid cashout multiplier")
	case errors.Is(err, games.ErrInvalidParams), errors.Is(err, wager.ErrInvalidStake):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, accounts.ErrAccountNotFound):
		writeError(w, http.StatusUnauthorized, "account not found")
	default:
		slog.Error("play request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Handlers ---

// GetBalanceHandler handles GET /balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	bal, err := h.svc.Balance(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"balance": formatMinor(bal),
	})
}

// GetHistoryHandler handles GET /history
func (h *HandlerProvider) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	records, err := h.svc.History(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		resp = append(resp, map[string]any{
			"game":       rec.Game,
			"bet":        formatMinor(rec.StakeMinor),
			"win":        formatMinor(rec.WinMinor),
			"multiplier": rec.Multiplier,
			"profit":     formatMinor(rec.WinMinor - rec.StakeMinor),
			"time":       rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// PlayHandler handles POST /play/{game}
func (h *HandlerProvider) PlayHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	game, err := games.Parse(chi.URLParam(r, "game"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown game")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	var req playRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx := r.Context()

	switch game {
	case games.Plinko:
		h.playPlinko(ctx, w, accountID, req)
	case games.Crash:
		h.playCrash(ctx, w, accountID, req)
	case games.Dice:
		h.playDice(ctx, w, accountID, req)
	case games.Limbo:
		h.playLimbo(ctx, w, accountID, req)
	case games.Roulette:
		h.playRoulette(ctx, w, accountID, req)
	case games.Mines:
		h.playMines(ctx, w, accountID, req)
	case games.Pump:
		h.playPump(ctx, w, accountID, req)
	case games.Blackjack:
		h.playBlackjack(ctx, w, accountID, req)
	default:
		writeError(w, http.StatusBadRequest, "unknown game")
	}
}

// --- Single-shot games ---

func (h *HandlerProvider) playPlinko(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	stake, err := req.stakeMinor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	risk := req.Risk
	if risk == "" {
		risk = string(games.RiskMedium)
	}

	tier, err := games.ParseRiskTier(risk)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid risk tier")
		return
	}

	res, receipt, err := h.svc.PlayPlinko(ctx, accountID, stake, tier)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"path":       res.Path,
		"multiplier": res.Multiplier,
		"win":        formatMinor(receipt.WinMinor),
		"balance":    formatMinor(receipt.BalanceMinor),
	})
}

func (h *HandlerProvider) playCrash(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	stake, err := req.stakeMinor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	autoCashout := 2.0
	if req.AutoCashout != nil {
		autoCashout = *req.AutoCashout
	}

	res, receipt, err := h.svc.PlayCrash(ctx, accountID, stake, autoCashout)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"crashPoint": res.CrashPoint,
		"path":       res.Path,
		"won":        res.Won,
		"multiplier": res.Multiplier,
		"win":        formatMinor(receipt.WinMinor),
		"balance":    formatMinor(receipt.BalanceMinor),
	})
}

func (h *HandlerProvider) playDice(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	stake, err := req.stakeMinor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Target == nil {
		writeError(w, http.StatusBadRequest, "target required")
		return
	}

	over := true
	if req.Over != nil {
		over = *req.Over
	}

	res, receipt, err := h.svc.PlayDice(ctx, accountID, stake, *req.Target, over)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"roll":       res.Roll,
		"won":        res.Won,
		"multiplier": round2(res.Multiplier),
		"win":        formatMinor(receipt.WinMinor),
		"balance":    formatMinor(receipt.BalanceMinor),
		"winChance":  round2(res.WinChance),
	})
}

func (h *HandlerProvider) playLimbo(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	stake, err := req.stakeMinor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Target == nil {
		writeError(w, http.StatusBadRequest, "target required")
		return
	}

	res, receipt, err := h.svc.PlayLimbo(ctx, accountID, stake, *req.Target)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":     res.Result,
		"won":        res.Won,
		"multiplier": res.Multiplier,
		"win":        formatMinor(receipt.WinMinor),
		"balance":    formatMinor(receipt.BalanceMinor),
	})
}

func (h *HandlerProvider) playRoulette(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	stake, err := req.stakeMinor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := games.ParseRouletteBet(req.BetType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bet type")
		return
	}

	res, receipt, err := h.svc.PlayRoulette(ctx, accountID, stake, bet)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"number":     res.Number,
		"won":        res.Won,
		"multiplier": res.Multiplier,
		"win":        formatMinor(receipt.WinMinor),
		"balance":    formatMinor(receipt.BalanceMinor),
	})
}

// --- Stateful games ---

func (h *HandlerProvider) playMines(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	switch req.Action {
	case "start":
		stake, err := req.stakeMinor()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		mineCount := 3
		if req.Mines != nil {
			mineCount = *req.Mines
		}

		res, err := h.svc.StartMines(ctx, accountID, stake, mineCount)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"balance": formatMinor(res.BalanceMinor),
		})

	case "reveal":
		if req.Position == nil {
			writeError(w, http.StatusBadRequest, "position required")
			return
		}

		res, err := h.svc.RevealMines(ctx, accountID, *req.Position)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		if res.Hit {
			writeJSON(w, http.StatusOK, map[string]any{
				"hit":      true,
				"gameOver": true,
				"mines":    res.Mines,
				"balance":  formatMinor(res.BalanceMinor),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"hit":        false,
			"multiplier": round2(res.Multiplier),
			"gemsFound":  res.GemsFound,
		})

	case "cashout":
		res, err := h.svc.CashoutMines(ctx, accountID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"win":        formatMinor(res.WinMinor),
			"multiplier": round2(res.Multiplier),
			"mines":      res.Mines,
			"balance":    formatMinor(res.BalanceMinor),
		})

	default:
		writeError(w, http.StatusBadRequest, "invalid action")
	}
}

func (h *HandlerProvider) playPump(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	switch req.Action {
	case "start":
		stake, err := req.stakeMinor()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := h.svc.StartPump(ctx, accountID, stake)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		// The pop point never leaves the server before resolution.
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"balance": formatMinor(res.BalanceMinor),
		})

	case "pop":
		res, err := h.svc.PopPump(ctx, accountID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"popPoint": res.PopPoint,
			"balance":  formatMinor(res.BalanceMinor),
		})

	case "cashout":
		if req.Multiplier == nil {
			writeError(w, http.StatusBadRequest, "multiplier required")
			return
		}

		res, err := h.svc.CashoutPump(ctx, accountID, *req.Multiplier)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"win":        formatMinor(res.WinMinor),
			"multiplier": res.Multiplier,
			"balance":    formatMinor(res.BalanceMinor),
		})

	default:
		writeError(w, http.StatusBadRequest, "invalid action")
	}
}

func (h *HandlerProvider) playBlackjack(ctx context.Context, w http.ResponseWriter, accountID uint64, req playRequest) {
	switch req.Action {
	case "deal":
		stake, err := req.stakeMinor()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := h.svc.DealBlackjack(ctx, accountID, stake)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"playerHand":  res.Player,
			"dealerHand":  res.Dealer,
			"playerScore": res.PlayerScore,
			"dealerScore": res.DealerScore,
			"balance":     formatMinor(res.BalanceMinor),
		})

	case "hit":
		res, err := h.svc.HitBlackjack(ctx, accountID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := map[string]any{
			"playerHand":  res.Player,
			"dealerHand":  res.Dealer,
			"playerScore": res.PlayerScore,
			"dealerScore": res.DealerScore,
			"gameOver":    res.GameOver,
		}
		if res.GameOver {
			resp["result"] = string(res.Outcome)
			resp["win"] = formatMinor(res.WinMinor)
			resp["balance"] = formatMinor(res.BalanceMinor)
		}

		writeJSON(w, http.StatusOK, resp)

	case "stand":
		res, err := h.svc.StandBlackjack(ctx, accountID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"playerHand":  res.Player,
			"dealerHand":  res.Dealer,
			"playerScore": res.PlayerScore,
			"dealerScore": res.DealerScore,
			"result":      string(res.Outcome),
			"win":         formatMinor(res.WinMinor),
			"multiplier":  res.Multiplier,
			"balance":     formatMinor(res.BalanceMinor),
			"gameOver":    true,
		})

	default:
		writeError(w, http.StatusBadRequest, "invalid action")
	}
}
