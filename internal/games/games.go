// Package games holds the outcome math for every game variant: pure
// functions from a randomness source and validated parameters to a result
// and payout multiplier, plus the state machines for multi-step games.
// Nothing in this package touches storage or money directly; stakes are
// carried as int64 minor units (cents) and payouts are derived by the
// caller from the returned multiplier.
package games

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

type Game string

const (
	Plinko    Game = "plinko"
	Crash     Game = "crash"
	Dice      Game = "dice"
	Limbo     Game = "limbo"
	Roulette  Game = "roulette"
	Mines     Game = "mines"
	Pump      Game = "pump"
	Blackjack Game = "blackjack"
)

var ErrUnknownGame = errors.New("unknown game")

// ErrInvalidParams marks out-of-range or malformed game parameters.
// Details are wrapped around it so callers can match with errors.Is.
var ErrInvalidParams = errors.New("invalid game parameters")

func Parse(s string) (Game, error) {
	switch g := Game(s); g {
	case Plinko, Crash, Dice, Limbo, Roulette, Mines, Pump, Blackjack:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
	}
}

// Stateful reports whether a game resolves over multiple client
// interactions and therefore carries a session.
func (g Game) Stateful() bool {
	switch g {
	case Mines, Pump, Blackjack:
		return true
	default:
		return false
	}
}

// Rand is the slice of math/rand/v2 the games draw from. *rand.Rand
// satisfies it, as does the process-wide generator via SystemRand.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Perm(n int) []int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.IntN(n) }
func (systemRand) Perm(n int) []int { return rand.Perm(n) }

// SystemRand returns a goroutine-safe Rand backed by math/rand/v2's
// shared generator.
func SystemRand() Rand { return systemRand{} }

// round2 rounds to 2 decimal places. Applied to presented values
// (rolls, crash points) once at generation time, never repeatedly.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
