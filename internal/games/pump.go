package games

import (
	"errors"
	"fmt"
	"math"
)

const (
	pumpRate = 0.5
	pumpCap  = 50.0
)

// ErrCashoutExceedsPop rejects a cashout multiplier above the latent
// pop point sampled at session start.
var ErrCashoutExceedsPop = errors.New("cashout multiplier exceeds pop point")

// PumpState holds a live pump round. PopPoint is sampled server-side at
// start and must never be disclosed before the round resolves.
type PumpState struct {
	StakeMinor int64   `json:"stake_minor"`
	PopPoint   float64 `json:"pop_point"`
}

// NewPump samples the pop point as 1 + Exp(rate 0.5), capped at 50x.
func NewPump(r Rand, stakeMinor int64) *PumpState {
	// Inverse-CDF sample of the exponential; Float64 < 1 keeps Log finite.
	pop := round2(1.0 - math.Log(1.0-r.Float64())/pumpRate)
	if pop > pumpCap {
		pop = pumpCap
	}

	return &PumpState{StakeMinor: stakeMinor, PopPoint: pop}
}

// Cashout validates the client-declared multiplier against the stored
// pop point and returns it as the payout multiplier. A declared value
// the balloon never reached pays nothing.
func (s *PumpState) Cashout(multiplier float64) (float64, error) {
	if multiplier < 1 {
		return 0, fmt.Errorf("%w: multiplier must be >= 1", ErrInvalidParams)
	}

	if multiplier > s.PopPoint {
		return 0, ErrCashoutExceedsPop
	}

	return multiplier, nil
}
