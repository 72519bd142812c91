package stage

import (
	"testing"

	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/tile"
)

func man(n int) tile.Tile { return tile.Tile{Suit: tile.Man, Number: n} }

func pin(n int) tile.Tile { return tile.Tile{Suit: tile.Pin, Number: n} }
func sou(n int) tile.Tile { return tile.Tile{Suit: tile.Sou, Number: n} }

// newTestStage builds four disjoint 13-tile hands so no tile identity
// appears more than its real 4-copy maximum across the whole deal.
func newTestStage() *Stage {
	hands := [4][]tile.Tile{
		{man(1), man(1), man(2), man(3), man(4), man(5), man(6), man(7), man(8), pin(1), pin(1), pin(2), pin(3)},
		{man(2), man(3), man(4), man(5), man(6), man(7), man(8), man(9), pin(4), pin(4), pin(5), pin(6), pin(7)},
		{man(3), man(4), man(5), man(6), man(7), man(8), man(9), pin(2), pin(3), sou(1), sou(1), sou(2), sou(3)},
		{man(4), man(5), man(6), man(7), man(8), man(9), pin(8), pin(9), sou(4), sou(5), sou(6), sou(7), sou(8)},
	}
	ev := eventschema.Event{
		Type:      eventschema.EvNew,
		Round:     0,
		Dealer:    0,
		Honba:     0,
		Sticks:    0,
		WallCount: 70,
		Scores:    [4]int{25000, 25000, 25000, 25000},
		Hands:     hands,
	}
	return New(ev)
}

func TestNewInitializesPlayersAndTileStates(t *testing.T) {
	s := newTestStage()
	if s.Turn != s.Dealer {
		t.Fatalf("expected turn to start at dealer")
	}
	for seat, p := range s.Players {
		if p.Score != 25000 {
			t.Fatalf("seat %d: expected starting score 25000, got %d", seat, p.Score)
		}
		if !p.Menzen {
			t.Fatalf("seat %d: expected menzen at New", seat)
		}
	}
	idx := man(1).Index34()
	inHand, inHandSeat0 := 0, 0
	for _, st := range s.TileStates[idx] {
		if st.Loc == InHand {
			inHand++
			if st.Seat == 0 {
				inHandSeat0++
			}
		}
	}
	if inHand != 2 || inHandSeat0 != 2 {
		t.Fatalf("expected both 1m copies marked InHand at seat 0, got total=%d seat0=%d", inHand, inHandSeat0)
	}
}

func TestApplyDealDecrementsWallOnlyForFreshDraw(t *testing.T) {
	s := newTestStage()
	before := s.WallCount
	s.Apply(eventschema.Event{Type: eventschema.EvDeal, Seat: 0, Tile: sou(9)})
	if s.WallCount != before-1 {
		t.Fatalf("expected wall count to drop by 1 on a fresh draw")
	}

	before = s.WallCount
	s.Apply(eventschema.Event{Type: eventschema.EvDeal, Seat: 0, Tile: pin(9), IsReplacement: true})
	if s.WallCount != before {
		t.Fatalf("replacement draws must not decrement the live wall count")
	}
}

func TestApplyDiscardMarksFuritenOther(t *testing.T) {
	s := newTestStage()
	// give seat 1 a cached wait on 5m, as if mid-tenpai
	s.Players[1].WinningTiles = []tile.Tile{man(5)}

	s.Apply(eventschema.Event{Type: eventschema.EvDiscard, Seat: 2, Tile: man(5)})

	if !s.Players[1].FuritenOther {
		t.Fatalf("expected seat 1 to be temporarily furiten after missing its own wait")
	}
	if s.Players[1].Furiten {
		t.Fatalf("non-riichi missed ron must be temporary furiten, not permanent")
	}
}

func TestApplyDiscardMarksOwnDiscardFuriten(t *testing.T) {
	s := newTestStage()
	// seat 0 is tenpai waiting on 5m and then discards 5m itself.
	s.Players[0].WinningTiles = []tile.Tile{man(5)}

	s.Apply(eventschema.Event{Type: eventschema.EvDiscard, Seat: 0, Tile: man(5)})
	if !s.Players[0].Furiten {
		t.Fatalf("expected seat 0 permanently furiten after discarding its own winning tile")
	}

	// a later opponent discard of the same tile must stay unronnable.
	s.Apply(eventschema.Event{Type: eventschema.EvDiscard, Seat: 2, Tile: man(5)})
	if !s.Players[0].Furiten {
		t.Fatalf("own-discard furiten must persist across subsequent discards")
	}
}

func TestApplyDiscardRiichiSetsFlags(t *testing.T) {
	s := newTestStage()
	s.Apply(eventschema.Event{Type: eventschema.EvDiscard, Seat: 0, Tile: pin(3), IsRiichi: true})

	p := s.Players[0]
	if !p.Riichi || !p.Ippatsu {
		t.Fatalf("expected riichi+ippatsu flags set on the declaring discard")
	}
	if s.LastRiichi != 0 {
		t.Fatalf("expected LastRiichi to record the declaring seat")
	}
}

func TestDoraTileWrapsWithinSuit(t *testing.T) {
	got := DoraTile(man(9))
	if got != man(1) {
		t.Fatalf("expected 9m indicator to point to 1m dora, got %v", got)
	}
	gotHonor := DoraTile(tile.Tile{Suit: tile.Honor, Number: tile.North})
	if gotHonor.Number != tile.East {
		t.Fatalf("expected North indicator to wrap to East, got %v", gotHonor)
	}
}
