package games

import "fmt"

const limboCap = 100.0

type LimboResult struct {
	Result     float64 `json:"result"`
	Won        bool    `json:"won"`
	Multiplier float64 `json:"multiplier"`
}

// PlayLimbo samples a heavy-tailed result via a 4-piece inverse CDF:
// 50% of the mass lands in [1,2), 30% in [2,5), 15% in [5,20) and 5% in
// [20,100], capped at 100x. The player wins the declared target
// multiplier iff the result reaches it.
func PlayLimbo(r Rand, target float64) (LimboResult, error) {
	if target < 1 {
		return LimboResult{}, fmt.Errorf("%w: target must be >= 1", ErrInvalidParams)
	}

	u := r.Float64()

	var result float64
	switch {
	case u < 0.5:
		result = 1.0 + u*2
	case u < 0.8:
		result = 2.0 + (u-0.5)*10
	case u < 0.95:
		result = 5.0 + (u-0.8)*100
	default:
		result = 20.0 + (u-0.95)*1600
	}

	result = round2(result)
	if result > limboCap {
		result = limboCap
	}

	res := LimboResult{Result: result}
	if result >= target {
		res.Won = true
		res.Multiplier = target
	}

	return res, nil
}
