package games

import "fmt"

const crashCap = 100.0

type CrashResult struct {
	CrashPoint float64   `json:"crashPoint"`
	Path       []float64 `json:"path"`
	Won        bool      `json:"won"`
	Multiplier float64   `json:"multiplier"`
}

// PlayCrash samples a crash point from 1/(1-U^2), capped at 100x, and
// settles against the pre-declared auto-cashout: the player wins the
// auto-cashout multiplier iff the curve reaches it before crashing.
func PlayCrash(r Rand, autoCashout float64) (CrashResult, error) {
	if autoCashout < 1 {
		return CrashResult{}, fmt.Errorf("%w: auto-cashout must be >= 1", ErrInvalidParams)
	}

	u := r.Float64()
	crashPoint := round2(1.0 / (1.0 - u*u))
	if crashPoint > crashCap {
		crashPoint = crashCap
	}

	res := CrashResult{
		CrashPoint: crashPoint,
		Path:       crashPath(crashPoint),
	}

	if autoCashout <= crashPoint {
		res.Won = true
		res.Multiplier = autoCashout
	}

	return res, nil
}

// crashPath builds the monotonically increasing multiplier curve from
// 1.0 to the crash point. Step size grows with the multiplier: 0.01
// below 2x, 0.05 up to 5x, 0.1 above.
func crashPath(crashPoint float64) []float64 {
	var path []float64

	current := 1.0
	step := 0.01

	// Compare rounded values so float drift near the crash point can't
	// duplicate the final entry.
	for round2(current) < crashPoint {
		path = append(path, round2(current))

		current += step
		if current > 2.0 {
			step = 0.05
		}
		if current > 5.0 {
			step = 0.1
		}
	}

	return append(path, crashPoint)
}
