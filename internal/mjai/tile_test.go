package mjai

import (
	"testing"

	"mahjongcore/internal/tile"
)

func TestToMjaiHonors(t *testing.T) {
	cases := map[tile.Tile]string{
		tile.New(tile.Honor, tile.East):  "E",
		tile.New(tile.Honor, tile.White): "P",
		tile.New(tile.Honor, tile.Red):   "C",
	}
	for tl, want := range cases {
		if got := ToMjai(tl); got != want {
			t.Fatalf("ToMjai(%v) = %q, want %q", tl, got, want)
		}
	}
}

func TestToMjaiRedFive(t *testing.T) {
	red := tile.New(tile.Pin, 0)
	if got, want := ToMjai(red), "5pr"; got != want {
		t.Fatalf("ToMjai(red 5p) = %q, want %q", got, want)
	}
}

func TestFromMjaiRoundTrips(t *testing.T) {
	for _, s := range []string{"1m", "9s", "5pr", "E", "C"} {
		tl, err := FromMjai(s)
		if err != nil {
			t.Fatalf("FromMjai(%q): %v", s, err)
		}
		if got := ToMjai(tl); got != s {
			t.Fatalf("round trip %q -> %v -> %q", s, tl, got)
		}
	}
}

func TestFromMjaiRejectsUnknownSentinel(t *testing.T) {
	if _, err := FromMjai("?"); err == nil {
		t.Fatalf("expected error for unknown tile sentinel")
	}
}

func TestFromMjaiRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "x", "10m", "8z"} {
		if _, err := FromMjai(s); err == nil {
			t.Fatalf("expected error for malformed tile %q", s)
		}
	}
}
