package yaku

import (
	"testing"

	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
)

func i34(s tile.Suit, n int) int { return tile.Tile{Suit: s, Number: n}.Index34() }

func names(results []Result) map[Name]bool {
	m := make(map[Name]bool, len(results))
	for _, r := range results {
		m[r.Name] = true
	}
	return m
}

// Open tanyao ron, dealer wins: m234 p234 s234 p55 concealed, pon s666
// exposed, ron on p5. Expected: yakus=[tanyao] only (spec.md §8 example 1).
func TestEvaluateOpenTanyaoRon(t *testing.T) {
	var concealed hand.Hand34
	for _, n := range []int{2, 3, 4} {
		concealed[i34(tile.Man, n)]++
		concealed[i34(tile.Pin, n)]++
		concealed[i34(tile.Sou, n)]++
	}
	concealed[i34(tile.Pin, 5)] += 2

	ctx := &Context{
		Concealed: concealed,
		Melds: []meld.Meld{
			{Kind: meld.Pon, Tiles: []tile.Tile{{Suit: tile.Sou, Number: 6}, {Suit: tile.Sou, Number: 6}, {Suit: tile.Sou, Number: 6}}, From: 1},
		},
		WinTile: tile.Tile{Suit: tile.Pin, Number: 5},
		Decomp: hand.Decomposition{
			Pair34: i34(tile.Pin, 5),
			Sets: []hand.Set{
				{Kind: hand.Sequence, Suit: tile.Man, Low: 2},
				{Kind: hand.Sequence, Suit: tile.Pin, Low: 2},
				{Kind: hand.Sequence, Suit: tile.Sou, Low: 2},
			},
		},
		Wait: hand.Tanki,
		Situation: Situation{
			RoundWind: East,
			SeatWind:  East,
			IsDealer:  true,
		},
	}

	got := names(Evaluate(ctx))
	if !got[Tanyao] {
		t.Fatalf("expected tanyao to fire, got %v", got)
	}
	if len(got) != 1 {
		t.Fatalf("expected only tanyao, got %v", got)
	}
}

// Riichi + pinfu + tsumo + 1 dora, non-dealer: m123 m456 p234 s567 s88,
// tsumo s5, dora indicator s4 (spec.md §8 example 2).
func TestEvaluateRiichiPinfuTsumoWithDora(t *testing.T) {
	var concealed hand.Hand34
	for _, n := range []int{1, 2, 3} {
		concealed[i34(tile.Man, n)]++
	}
	for _, n := range []int{4, 5, 6} {
		concealed[i34(tile.Man, n)]++
	}
	for _, n := range []int{2, 3, 4} {
		concealed[i34(tile.Pin, n)]++
	}
	for _, n := range []int{5, 6, 7} {
		concealed[i34(tile.Sou, n)]++
	}
	concealed[i34(tile.Sou, 8)] += 2

	ctx := &Context{
		Concealed: concealed,
		WinTile:   tile.Tile{Suit: tile.Sou, Number: 5},
		Decomp: hand.Decomposition{
			Pair34: i34(tile.Sou, 8),
			Sets: []hand.Set{
				{Kind: hand.Sequence, Suit: tile.Man, Low: 1},
				{Kind: hand.Sequence, Suit: tile.Man, Low: 4},
				{Kind: hand.Sequence, Suit: tile.Pin, Low: 2},
				{Kind: hand.Sequence, Suit: tile.Sou, Low: 5},
			},
		},
		Wait: hand.Ryanmen,
		Situation: Situation{
			RoundWind:      East,
			SeatWind:       South,
			Riichi:         true,
			IsTsumo:        true,
			DoraIndicators: []tile.Tile{{Suit: tile.Sou, Number: 4}},
		},
	}

	got := names(Evaluate(ctx))
	for _, want := range []Name{Riichi, Pinfu, MenzenTsumo} {
		if !got[want] {
			t.Fatalf("expected %s to fire, got %v", want, got)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected exactly riichi+pinfu+menzen_tsumo, got %v", got)
	}

	if dora := CountDora(ctx.Full34(), ctx.Situation.DoraIndicators); dora != 1 {
		t.Fatalf("expected 1 dora, got %d", dora)
	}
}

func TestExclusivePairPrefersRyanpeikouOverIipeikou(t *testing.T) {
	var concealed hand.Hand34
	for _, n := range []int{2, 3, 4} {
		concealed[i34(tile.Man, n)] += 2
	}
	for _, n := range []int{2, 3, 4} {
		concealed[i34(tile.Pin, n)] += 2
	}
	concealed[i34(tile.Honor, tile.East)] += 2

	ctx := &Context{
		Concealed: concealed,
		WinTile:   tile.Tile{Suit: tile.Honor, Number: tile.East},
		Decomp: hand.Decomposition{
			Pair34: i34(tile.Honor, tile.East),
			Sets: []hand.Set{
				{Kind: hand.Sequence, Suit: tile.Man, Low: 2},
				{Kind: hand.Sequence, Suit: tile.Man, Low: 2},
				{Kind: hand.Sequence, Suit: tile.Pin, Low: 2},
				{Kind: hand.Sequence, Suit: tile.Pin, Low: 2},
			},
		},
		Wait: hand.Tanki,
	}

	got := names(Evaluate(ctx))
	if !got[Ryanpeikou] {
		t.Fatalf("expected ryanpeikou, got %v", got)
	}
	if got[Iipeikou] {
		t.Fatalf("iipeikou must be excluded when ryanpeikou fires, got %v", got)
	}
}

func TestYakumanSuppressesNonYakuman(t *testing.T) {
	var concealed hand.Hand34
	concealed[i34(tile.Man, 1)] = 1
	concealed[i34(tile.Man, 9)] = 1
	concealed[i34(tile.Pin, 1)] = 1
	concealed[i34(tile.Pin, 9)] = 1
	concealed[i34(tile.Sou, 1)] = 1
	concealed[i34(tile.Sou, 9)] = 1
	concealed[i34(tile.Honor, tile.East)] = 1
	concealed[i34(tile.Honor, tile.South)] = 1
	concealed[i34(tile.Honor, tile.West)] = 1
	concealed[i34(tile.Honor, tile.North)] = 1
	concealed[i34(tile.Honor, tile.White)] = 2
	concealed[i34(tile.Honor, tile.Red)] = 1
	concealed[i34(tile.Honor, tile.Green)] = 1

	// pair already held on White before the win; the win tile (Red) fills
	// the last of the thirteen distinct orphan types, so this is the
	// ordinary 12-held-1-missing tenpai, not the thirteen-way wait. The win
	// is a tsumo, so menzen tsumo also qualifies and must be suppressed.
	ctx := &Context{
		Concealed: concealed,
		WinTile:   tile.Tile{Suit: tile.Honor, Number: tile.Red},
		Situation: Situation{IsTsumo: true},
	}

	got := Evaluate(ctx)
	if len(got) != 1 || got[0].Name != Kokushi {
		t.Fatalf("expected exactly kokushi, got %v", got)
	}
}
