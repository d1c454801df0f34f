package games

import "fmt"

type RouletteBet string

const (
	BetRed   RouletteBet = "red"
	BetBlack RouletteBet = "black"
	BetEven  RouletteBet = "even"
	BetOdd   RouletteBet = "odd"
	BetLow   RouletteBet = "low"
	BetHigh  RouletteBet = "high"
)

const rouletteWin = 2.0

var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func ParseRouletteBet(s string) (RouletteBet, error) {
	switch b := RouletteBet(s); b {
	case BetRed, BetBlack, BetEven, BetOdd, BetLow, BetHigh:
		return b, nil
	default:
		return "", fmt.Errorf("%w: bet type %q", ErrInvalidParams, s)
	}
}

type RouletteResult struct {
	Number     int     `json:"number"`
	Won        bool    `json:"won"`
	Multiplier float64 `json:"multiplier"`
}

// PlayRoulette spins for a number in [0,36] and settles an even-money
// outside bet at 2x. Zero is green and counts as neither even nor odd,
// so every bet type loses on it.
func PlayRoulette(r Rand, bet RouletteBet) (RouletteResult, error) {
	number := r.IntN(37)

	var won bool
	switch bet {
	case BetRed:
		won = rouletteRed[number]
	case BetBlack:
		won = number > 0 && !rouletteRed[number]
	case BetEven:
		won = number > 0 && number%2 == 0
	case BetOdd:
		won = number%2 == 1
	case BetLow:
		won = number >= 1 && number <= 18
	case BetHigh:
		won = number >= 19 && number <= 36
	default:
		return RouletteResult{}, fmt.Errorf("%w: bet type %q", ErrInvalidParams, bet)
	}

	res := RouletteResult{Number: number, Won: won}
	if won {
		res.Multiplier = rouletteWin
	}

	return res, nil
}
