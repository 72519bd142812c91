package engine

import (
	"testing"

	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/stage"
	"mahjongcore/internal/tile"
)

func TestHeadBumpOrdersAllWinnersByClockwiseDistance(t *testing.T) {
	rs := &roundState{}
	winners := rs.headBump(0, []int{3, 1, 2})
	if len(winners) != 3 || winners[0] != 1 || winners[1] != 2 || winners[2] != 3 {
		t.Fatalf("expected all three winners kept, ordered 1,2,3 (closest clockwise first), got %v", winners)
	}
}

func TestHeadBumpNoOpForASingleWinner(t *testing.T) {
	rs := &roundState{}
	winners := rs.headBump(2, []int{0})
	if len(winners) != 1 || winners[0] != 0 {
		t.Fatalf("expected the sole winner unchanged, got %v", winners)
	}
}

func newTestStage() *stage.Stage {
	hands := [4][]tile.Tile{}
	for s := 0; s < 4; s++ {
		h := make([]tile.Tile, 0, 13)
		for i := 0; i < 13; i++ {
			h = append(h, tile.Tile{Suit: tile.Man, Number: 1})
		}
		hands[s] = h
	}
	ev := eventschema.Event{
		Type: eventschema.EvNew, Round: 0, Dealer: 0, Honba: 0, Sticks: 0,
		Scores: [4]int{25000, 25000, 25000, 25000}, Hands: hands, WallCount: 70,
	}
	return stage.New(ev)
}

func TestNotenBappuSplitsPoolFromNotenToTenpai(t *testing.T) {
	st := newTestStage()
	st.Players[0].WinningTiles = []tile.Tile{{Suit: tile.Man, Number: 9}}
	st.Players[1].WinningTiles = []tile.Tile{{Suit: tile.Man, Number: 9}}
	// seats 2 and 3 stay noten (no WinningTiles)

	delta := notenBappu(st)
	if delta[0] != 1500 || delta[1] != 1500 {
		t.Fatalf("expected each tenpai seat to receive 1500, got %v", delta)
	}
	if delta[2] != -1500 || delta[3] != -1500 {
		t.Fatalf("expected each noten seat to pay 1500, got %v", delta)
	}
}

func TestNotenBappuNoOpWhenAllTenpaiOrAllNoten(t *testing.T) {
	st := newTestStage()
	if delta := notenBappu(st); delta != ([4]int{}) {
		t.Fatalf("expected no movement when every seat is noten, got %v", delta)
	}
	for _, p := range st.Players {
		p.WinningTiles = []tile.Tile{{Suit: tile.Man, Number: 9}}
	}
	if delta := notenBappu(st); delta != ([4]int{}) {
		t.Fatalf("expected no movement when every seat is tenpai, got %v", delta)
	}
}

func TestAllZero(t *testing.T) {
	if !allZero([4]int{0, 0, 0, 0}) {
		t.Fatalf("expected all-zero to report true")
	}
	if allZero([4]int{0, 1, 0, 0}) {
		t.Fatalf("expected a non-zero entry to report false")
	}
}
