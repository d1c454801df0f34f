package games

import "testing"

func TestPlayPlinko_ClampsAtLaneBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		step     int // 0 = always left, 1 = always right
		wantLane int
	}{
		{name: "always_left_clamps_at_zero", step: 0, wantLane: 0},
		{name: "always_right_clamps_at_twelve", step: 1, wantLane: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRand{ints: repeatInts(tt.step, plinkoRows)}

			res, err := PlayPlinko(r, RiskHigh)
			if err != nil {
				t.Fatalf("PlayPlinko: %v", err)
			}

			if len(res.Path) != plinkoRows {
				t.Fatalf("path length = %d, want %d", len(res.Path), plinkoRows)
			}
			if res.Lane != tt.wantLane {
				t.Fatalf("lane = %d, want %d", res.Lane, tt.wantLane)
			}
			if res.Multiplier != plinkoTables[RiskHigh][tt.wantLane] {
				t.Fatalf("multiplier = %v, want %v", res.Multiplier, plinkoTables[RiskHigh][tt.wantLane])
			}
		})
	}
}

func TestPlayPlinko_LaneWithinBounds(t *testing.T) {
	t.Parallel()

	r := seededRand(t)

	for range 1000 {
		res, err := PlayPlinko(r, RiskMedium)
		if err != nil {
			t.Fatalf("PlayPlinko: %v", err)
		}

		if res.Lane < 0 || res.Lane > 12 {
			t.Fatalf("lane out of range: %d", res.Lane)
		}
		for _, lane := range res.Path {
			if lane < 0 || lane > 12 {
				t.Fatalf("path lane out of range: %d", lane)
			}
		}
		if res.Multiplier <= 0 {
			t.Fatalf("multiplier not positive: %v", res.Multiplier)
		}
	}
}

func TestPlinkoTables_SymmetricWithCenterPeak(t *testing.T) {
	t.Parallel()

	for tier, table := range plinkoTables {
		for i := range table {
			if table[i] != table[len(table)-1-i] {
				t.Errorf("%s: table not symmetric at lane %d", tier, i)
			}
		}

		for i := range table {
			if table[i] > table[plinkoStartLane] {
				t.Errorf("%s: lane %d pays more than center", tier, i)
			}
		}
	}
}

func TestParseRiskTier(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParseRiskTier(s); err != nil {
			t.Errorf("ParseRiskTier(%q): %v", s, err)
		}
	}

	if _, err := ParseRiskTier("extreme"); err == nil {
		t.Error("ParseRiskTier(extreme): want error")
	}
}
