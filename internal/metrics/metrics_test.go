package metrics

import "testing"

func TestLoadScoreWeightsTablesAboveRawResourceUsage(t *testing.T) {
	idle := Load{CPUUsage: 10, MemUsage: 10}
	busy := Load{CPUUsage: 10, MemUsage: 10, TableCount: 5, PlayerCount: 20}

	if busy.Score() <= idle.Score() {
		t.Fatalf("expected a table/player-heavy load to score higher: idle=%v busy=%v", idle.Score(), busy.Score())
	}
}

func TestClampPercentBoundsToUnitRange(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}
	for _, c := range cases {
		if got := clampPercent(c.in); got != c.want {
			t.Errorf("clampPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
