package tile

import "testing"

func TestNormalizeRedFive(t *testing.T) {
	red := Tile{Suit: Man, Number: 0}
	if !red.IsRed() {
		t.Fatalf("expected red five to report IsRed")
	}
	norm := red.Normalize()
	if norm.Number != 5 || norm.Suit != Man {
		t.Fatalf("expected normalize to 5m, got %v", norm)
	}
}

func TestIndex34RoundTrip(t *testing.T) {
	for idx := 0; idx < 34; idx++ {
		tl := FromIndex34(idx)
		if got := tl.Index34(); got != idx {
			t.Fatalf("round trip mismatch at %d: got %d (%v)", idx, got, tl)
		}
	}
}

func TestTableRedFiveInvariant(t *testing.T) {
	tb := NewTable(nil)
	tb.Add(Tile{Suit: Pin, Number: 0})
	if tb.Count(Tile{Suit: Pin, Number: 5}) != 1 {
		t.Fatalf("expected red five to count as a plain five")
	}
	if tb.RedCount(Pin) != 1 {
		t.Fatalf("expected red count to track separately")
	}
	if !tb.Remove(Tile{Suit: Pin, Number: 0}) {
		t.Fatalf("expected remove of red five to succeed")
	}
	if tb.Count(Tile{Suit: Pin, Number: 5}) != 0 {
		t.Fatalf("expected count to drop back to 0")
	}
}

func TestIsTerminalOrHonor(t *testing.T) {
	cases := []struct {
		tl   Tile
		want bool
	}{
		{Tile{Suit: Man, Number: 1}, true},
		{Tile{Suit: Man, Number: 9}, true},
		{Tile{Suit: Man, Number: 5}, false},
		{Tile{Suit: Honor, Number: East}, true},
	}
	for _, c := range cases {
		if got := c.tl.IsTerminalOrHonor(); got != c.want {
			t.Errorf("%v: got %v want %v", c.tl, got, c.want)
		}
	}
}
