package games

import (
	"errors"
	"math"
	"testing"
)

func TestPlayDice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		u              float64
		target         float64
		over           bool
		wantWon        bool
		wantChance     float64
		wantMultiplier float64
	}{
		{
			name: "over_50_win_pays_196", u: 0.75, target: 50, over: true,
			wantWon: true, wantChance: 50, wantMultiplier: 1.96,
		},
		{
			name: "under_50_loss", u: 0.75, target: 50, over: false,
			wantWon: false, wantChance: 50, wantMultiplier: 0,
		},
		{
			name: "roll_equal_target_loses_over", u: 0.5, target: 50, over: true,
			wantWon: false, wantChance: 50, wantMultiplier: 0,
		},
		{
			name: "roll_equal_target_loses_under", u: 0.5, target: 50, over: false,
			wantWon: false, wantChance: 50, wantMultiplier: 0,
		},
		{
			name: "long_shot_over_90", u: 0.95, target: 90, over: true,
			wantWon: true, wantChance: 10, wantMultiplier: 9.8,
		},
		{
			name: "easy_under_90", u: 0.1, target: 90, over: false,
			wantWon: true, wantChance: 90, wantMultiplier: 98.0 / 90.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRand{floats: []float64{tt.u}}

			res, err := PlayDice(r, tt.target, tt.over)
			if err != nil {
				t.Fatalf("PlayDice: %v", err)
			}

			if res.Won != tt.wantWon {
				t.Fatalf("won = %v, want %v (roll %v)", res.Won, tt.wantWon, res.Roll)
			}
			if res.WinChance != tt.wantChance {
				t.Fatalf("win chance = %v, want %v", res.WinChance, tt.wantChance)
			}
			if math.Abs(res.Multiplier-tt.wantMultiplier) > 1e-9 {
				t.Fatalf("multiplier = %v, want %v", res.Multiplier, tt.wantMultiplier)
			}
		})
	}
}

func TestPlayDice_RollPrecisionAndRange(t *testing.T) {
	t.Parallel()

	r := seededRand(t)

	for range 1000 {
		res, err := PlayDice(r, 50, true)
		if err != nil {
			t.Fatalf("PlayDice: %v", err)
		}

		if res.Roll < 0 || res.Roll >= 100 {
			t.Fatalf("roll out of range: %v", res.Roll)
		}
		if res.Roll != round2(res.Roll) {
			t.Fatalf("roll not 2-decimal: %v", res.Roll)
		}
	}
}

func TestPlayDice_RejectsOutOfRangeTarget(t *testing.T) {
	t.Parallel()

	for _, target := range []float64{0, -1, 100, 150} {
		_, err := PlayDice(&fakeRand{floats: []float64{0.5}}, target, true)
		if !errors.Is(err, ErrInvalidParams) {
			t.Errorf("target %v: want ErrInvalidParams, got %v", target, err)
		}
	}
}
