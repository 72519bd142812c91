package hand

import (
	"testing"

	"mahjongcore/internal/tile"
)

func idx(s tile.Suit, n int) int { return tile.Tile{Suit: s, Number: n}.Index34() }

func TestDecomposeStandardSimpleHand(t *testing.T) {
	// a clean 4-set+pair hand:
	var h Hand34
	// sets: 234m, 234p, 234s, 678p ; pair: 5s 5s
	for _, n := range []int{2, 3, 4} {
		h[idx(tile.Man, n)]++
		h[idx(tile.Pin, n)]++
		h[idx(tile.Sou, n)]++
	}
	for _, n := range []int{6, 7, 8} {
		h[idx(tile.Pin, n)]++
	}
	h[idx(tile.Sou, 5)] += 2

	decomps := DecomposeStandard(h, 0)
	if len(decomps) == 0 {
		t.Fatalf("expected at least one decomposition")
	}
	found := false
	for _, d := range decomps {
		if d.Pair34 == idx(tile.Sou, 5) && len(d.Sets) == 4 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a decomposition with 5s pair and 4 sets, got %+v", decomps)
	}
}

func TestDecomposeStandardMultipleInterpretations(t *testing.T) {
	// 111222333m reads either as three triplets or as three 123m runs;
	// with 234p and an EE pair that gives two decompositions.
	var h Hand34
	for _, n := range []int{1, 1, 1, 2, 2, 2, 3, 3, 3} {
		h[idx(tile.Man, n)]++
	}
	for _, n := range []int{2, 3, 4} {
		h[idx(tile.Pin, n)]++
	}
	h[idx(tile.Honor, tile.East)] += 2

	decomps := DecomposeStandard(h, 0)
	if len(decomps) < 2 {
		t.Fatalf("expected two interpretations, got %+v", decomps)
	}
}

func TestIsChiitoitsuRejectsFourOfAKind(t *testing.T) {
	var h Hand34
	h[idx(tile.Man, 1)] = 4
	for _, n := range []int{2, 3, 4, 5, 6, 7} {
		h[idx(tile.Man, n)] = 2
	}
	if IsChiitoitsu(h) {
		t.Fatalf("four-of-a-kind must not count as chiitoitsu")
	}
}

func TestIsKokushiRecognizesCompleteHand(t *testing.T) {
	var h Hand34
	for _, i := range kokushiIdx {
		h[i] = 1
	}
	h[kokushiIdx[0]] = 2
	if !IsKokushi(h) {
		t.Fatalf("expected kokushi to be recognized")
	}
}

func TestShantenTenpaiAgreesWithWaits(t *testing.T) {
	var h Hand34 // 13-tile tenpai shape: 234m 234p 234s 55s + 7p8p (ryanmen on 6p/9p)
	for _, n := range []int{2, 3, 4} {
		h[idx(tile.Man, n)]++
		h[idx(tile.Pin, n)]++
		h[idx(tile.Sou, n)]++
	}
	h[idx(tile.Sou, 5)] += 2
	h[idx(tile.Pin, 7)]++
	h[idx(tile.Pin, 8)]++

	if !IsTenpai(h, 0) {
		t.Fatalf("expected hand to be tenpai")
	}
	waits := Waits(h, 0)
	wantA, wantB := idx(tile.Pin, 6), idx(tile.Pin, 9)
	gotA, gotB := false, false
	for _, w := range waits {
		if w == wantA {
			gotA = true
		}
		if w == wantB {
			gotB = true
		}
	}
	if !gotA || !gotB {
		t.Fatalf("expected ryanmen wait on 6p/9p, got %v", waits)
	}
}

func TestClassifyWaitKanchan(t *testing.T) {
	d := Decomposition{
		Pair34: idx(tile.Sou, 5),
		Sets: []Set{
			{Kind: Sequence, Suit: tile.Man, Low: 2},
			{Kind: Sequence, Suit: tile.Pin, Low: 2},
			{Kind: Sequence, Suit: tile.Sou, Low: 2},
			{Kind: Sequence, Suit: tile.Pin, Low: 6}, // 6-7-8p, win on 7p = kanchan
		},
	}
	win := idx(tile.Pin, 7)
	if got := ClassifyWait(d, win); got != Kanchan {
		t.Fatalf("expected Kanchan, got %v", got)
	}
}

func TestClassifyWaitPenchan(t *testing.T) {
	d := Decomposition{
		Pair34: idx(tile.Sou, 5),
		Sets: []Set{
			{Kind: Sequence, Suit: tile.Man, Low: 2},
			{Kind: Sequence, Suit: tile.Pin, Low: 2},
			{Kind: Sequence, Suit: tile.Sou, Low: 2},
			{Kind: Sequence, Suit: tile.Pin, Low: 7}, // 7-8-9p, win on 7p = penchan
		},
	}
	win := idx(tile.Pin, 7)
	if got := ClassifyWait(d, win); got != Penchan {
		t.Fatalf("expected Penchan, got %v", got)
	}
}
