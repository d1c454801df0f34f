package wager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/playforge/casino-api/internal/games"
)

var (
	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_settlements_total",
		Help: "Resolved bets by game and profit sign",
	}, []string{"game", "result"})

	wageredMinorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_wagered_minor_total",
		Help: "Total stakes settled, in minor units",
	}, []string{"game"})

	paidOutMinorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_paid_out_minor_total",
		Help: "Total payouts settled, in minor units",
	}, []string{"game"})
)

func observeSettlement(game games.Game, stakeMinor, winMinor int64) {
	result := "loss"
	switch {
	case winMinor > stakeMinor:
		result = "win"
	case winMinor == stakeMinor:
		result = "push"
	}

	settlementsTotal.WithLabelValues(string(game), result).Inc()
	wageredMinorTotal.WithLabelValues(string(game)).Add(float64(stakeMinor))
	paidOutMinorTotal.WithLabelValues(string(game)).Add(float64(winMinor))
}
