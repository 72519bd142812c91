package score

import (
	"testing"

	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"
)

func i34(s tile.Suit, n int) int { return tile.Tile{Suit: s, Number: n}.Index34() }

// Example 1: open tanyao ron, dealer wins. Expected fan=1, fu=30,
// points=(1500,0,0) -- dealer ron total is 1500 (spec.md §8).
func TestEvaluateOpenTanyaoRonDealer(t *testing.T) {
	var concealed hand.Hand34
	for _, n := range []int{2, 3, 4} {
		concealed[i34(tile.Man, n)]++
		concealed[i34(tile.Pin, n)]++
		concealed[i34(tile.Sou, n)]++
	}
	concealed[i34(tile.Pin, 5)] += 2

	in := Input{
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
		Wait:     hand.Tanki,
		IsTsumo:  false,
		IsDealer: true,
		Situation: yaku.Situation{
			RoundWind: yaku.East,
			SeatWind:  yaku.East,
		},
	}

	got := Evaluate(in)
	if got.Fan != 1 {
		t.Fatalf("expected fan=1, got %d (%v)", got.Fan, got.Yakus)
	}
	if got.Fu != 30 {
		t.Fatalf("expected fu=30, got %d", got.Fu)
	}
	if got.Points.Ron != 1500 {
		t.Fatalf("expected ron points=1500, got %d", got.Points.Ron)
	}
}

// Example 2: riichi + pinfu + tsumo + 1 dora, non-dealer. fan=4, fu=20 per
// spec.md §8; the payout there (base=fu*2^(fan+2)=1280, rounded per payer)
// is the well-known 1300/2600 split, not the §8 prose's inexact figure.
func TestEvaluateRiichiPinfuTsumoDoraNonDealer(t *testing.T) {
	var concealed hand.Hand34
	for _, n := range []int{1, 2, 3, 4, 5, 6} {
		concealed[i34(tile.Man, n)]++
	}
	for _, n := range []int{2, 3, 4} {
		concealed[i34(tile.Pin, n)]++
	}
	for _, n := range []int{5, 6, 7} {
		concealed[i34(tile.Sou, n)]++
	}
	concealed[i34(tile.Sou, 8)] += 2

	in := Input{
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
		Wait:     hand.Ryanmen,
		IsTsumo:  true,
		IsDealer: false,
		Situation: yaku.Situation{
			RoundWind:      yaku.East,
			SeatWind:       yaku.South,
			Riichi:         true,
			IsTsumo:        true,
			DoraIndicators: []tile.Tile{{Suit: tile.Sou, Number: 4}},
		},
	}

	got := Evaluate(in)
	if got.Fan != 4 {
		t.Fatalf("expected fan=4, got %d (%v)", got.Fan, got.Yakus)
	}
	if got.Fu != 20 {
		t.Fatalf("expected fu=20, got %d", got.Fu)
	}
	if got.Points.DealerTsumo != 2600 || got.Points.NonDealerTsumo != 1300 {
		t.Fatalf("expected tsumo split (dealer=2600,nondealer=1300), got dealer=%d nondealer=%d",
			got.Points.DealerTsumo, got.Points.NonDealerTsumo)
	}
}
