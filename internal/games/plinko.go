package games

import "fmt"

type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

const (
	plinkoRows      = 16
	plinkoLanes     = 13 // final lanes 0..12
	plinkoStartLane = 6  // center of the lane range
)

// Multiplier tables are symmetric with the peak at the center lane.
// Edge lanes pay below 1x, so every drop resolves but may be a partial loss.
var plinkoTables = map[RiskTier][plinkoLanes]float64{
	RiskLow:    {0.5, 0.7, 0.9, 1.0, 1.1, 1.3, 1.5, 1.3, 1.1, 1.0, 0.9, 0.7, 0.5},
	RiskMedium: {0.3, 0.5, 0.7, 1.0, 1.5, 2.0, 3.0, 2.0, 1.5, 1.0, 0.7, 0.5, 0.3},
	RiskHigh:   {0.2, 0.3, 0.5, 1.0, 2.0, 5.0, 10.0, 5.0, 2.0, 1.0, 0.5, 0.3, 0.2},
}

func ParseRiskTier(s string) (RiskTier, error) {
	switch t := RiskTier(s); t {
	case RiskLow, RiskMedium, RiskHigh:
		return t, nil
	default:
		return "", fmt.Errorf("%w: risk tier %q", ErrInvalidParams, s)
	}
}

type PlinkoResult struct {
	Path       []int   `json:"path"`
	Lane       int     `json:"lane"`
	Multiplier float64 `json:"multiplier"`
}

// PlayPlinko drops a ball through 16 rows of pegs. Each row nudges the
// lane one step left or right with equal probability, clamped to the
// lane bounds; the final lane indexes the tier's multiplier table.
func PlayPlinko(r Rand, tier RiskTier) (PlinkoResult, error) {
	table, ok := plinkoTables[tier]
	if !ok {
		return PlinkoResult{}, fmt.Errorf("%w: risk tier %q", ErrInvalidParams, tier)
	}

	path := make([]int, 0, plinkoRows)
	lane := plinkoStartLane

	for range plinkoRows {
		if r.IntN(2) == 0 {
			lane--
		} else {
			lane++
		}

		if lane < 0 {
			lane = 0
		}
		if lane > plinkoLanes-1 {
			lane = plinkoLanes - 1
		}

		path = append(path, lane)
	}

	return PlinkoResult{
		Path:       path,
		Lane:       lane,
		Multiplier: table[lane],
	}, nil
}
