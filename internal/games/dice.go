package games

import "fmt"

// diceEdge is the house-edge constant: a fair game would divide 100 by
// the win chance, this divides 98.
const diceEdge = 98.0

type DiceResult struct {
	Roll       float64 `json:"roll"`
	Won        bool    `json:"won"`
	WinChance  float64 `json:"winChance"`
	Multiplier float64 `json:"multiplier"`
}

// PlayDice rolls uniformly in [0,100) at 2-decimal precision. The player
// declares a target and a direction; the payout multiplier is
// 98/win_chance on a win, 0 otherwise.
func PlayDice(r Rand, target float64, over bool) (DiceResult, error) {
	if target <= 0 || target >= 100 {
		return DiceResult{}, fmt.Errorf("%w: target must be in (0,100)", ErrInvalidParams)
	}

	roll := round2(r.Float64() * 100)

	var winChance float64
	var won bool

	if over {
		winChance = 100 - target
		won = roll > target
	} else {
		winChance = target
		won = roll < target
	}

	res := DiceResult{
		Roll:      roll,
		Won:       won,
		WinChance: winChance,
	}

	if won && winChance > 0 {
		res.Multiplier = diceEdge / winChance
	}

	return res, nil
}
