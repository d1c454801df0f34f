package games

import (
	"errors"
	"math"
	"testing"
)

func TestPlayCrash_CrashPointCappedAt100(t *testing.T) {
	t.Parallel()

	r := &fakeRand{floats: []float64{0.999999}}

	res, err := PlayCrash(r, 2.0)
	if err != nil {
		t.Fatalf("PlayCrash: %v", err)
	}

	if res.CrashPoint != crashCap {
		t.Fatalf("crash point = %v, want %v", res.CrashPoint, crashCap)
	}
	if !res.Won || res.Multiplier != 2.0 {
		t.Fatalf("want win at 2.0x, got won=%v multiplier=%v", res.Won, res.Multiplier)
	}
}

func TestPlayCrash_Settlement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		u           float64
		autoCashout float64
		wantCrash   float64
		wantWon     bool
	}{
		{name: "instant_crash_loses", u: 0, autoCashout: 1.5, wantCrash: 1.0, wantWon: false},
		{name: "cashout_at_floor_wins", u: 0, autoCashout: 1.0, wantCrash: 1.0, wantWon: true},
		{name: "crash_below_cashout_loses", u: 0.57735, autoCashout: 2.0, wantCrash: 1.5, wantWon: false},
		{name: "crash_above_cashout_wins", u: 0.9, autoCashout: 2.0, wantCrash: 5.26, wantWon: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRand{floats: []float64{tt.u}}

			res, err := PlayCrash(r, tt.autoCashout)
			if err != nil {
				t.Fatalf("PlayCrash: %v", err)
			}

			if math.Abs(res.CrashPoint-tt.wantCrash) > 0.005 {
				t.Fatalf("crash point = %v, want %v", res.CrashPoint, tt.wantCrash)
			}
			if res.Won != tt.wantWon {
				t.Fatalf("won = %v, want %v", res.Won, tt.wantWon)
			}

			if tt.wantWon && res.Multiplier != tt.autoCashout {
				t.Fatalf("win multiplier = %v, want auto-cashout %v", res.Multiplier, tt.autoCashout)
			}
			if !tt.wantWon && res.Multiplier != 0 {
				t.Fatalf("loss multiplier = %v, want 0", res.Multiplier)
			}
		})
	}
}

func TestPlayCrash_PathMonotonicEndsAtCrashPoint(t *testing.T) {
	t.Parallel()

	r := seededRand(t)

	for range 200 {
		res, err := PlayCrash(r, 1.5)
		if err != nil {
			t.Fatalf("PlayCrash: %v", err)
		}

		if len(res.Path) == 0 {
			t.Fatal("empty path")
		}
		if got := res.Path[len(res.Path)-1]; got != res.CrashPoint {
			t.Fatalf("path end = %v, want crash point %v", got, res.CrashPoint)
		}

		for i := 1; i < len(res.Path); i++ {
			if res.Path[i] <= res.Path[i-1] {
				t.Fatalf("path not increasing at %d: %v -> %v", i, res.Path[i-1], res.Path[i])
			}
		}
	}
}

func TestPlayCrash_RejectsSubUnityAutoCashout(t *testing.T) {
	t.Parallel()

	_, err := PlayCrash(&fakeRand{floats: []float64{0.5}}, 0.99)
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("want ErrInvalidParams, got %v", err)
	}
}
