package action

import (
	"testing"

	"mahjongcore/internal/tile"
)

func tilesOfKind(s tile.Suit, n int, count int) []tile.Tile {
	out := make([]tile.Tile, count)
	for i := range out {
		out[i] = tile.Tile{Suit: s, Number: n}
	}
	return out
}

func TestCanAnkanRequiresFourCopies(t *testing.T) {
	tbl := tile.NewTable(tilesOfKind(tile.Man, 5, 3))
	v := HandView{Table: tbl}
	drawn := tile.Tile{Suit: tile.Man, Number: 5}
	if _, ok := canAnkan(v, drawn); ok {
		t.Fatalf("expected ankan to require 4 copies, had only 3")
	}

	tbl.Add(drawn)
	if _, ok := canAnkan(v, drawn); !ok {
		t.Fatalf("expected ankan to be legal with 4 copies")
	}
}

func TestPonOptionsDedupesPlainPairs(t *testing.T) {
	tbl := tile.NewTable(tilesOfKind(tile.Pin, 3, 3))
	v := HandView{Table: tbl}
	opts := ponOptions(v, tile.Tile{Suit: tile.Pin, Number: 3})
	if len(opts) != 1 {
		t.Fatalf("expected exactly one plain-pair pon combination, got %d", len(opts))
	}
}

func TestPonOptionsDistinguishesRedFive(t *testing.T) {
	tiles := append(tilesOfKind(tile.Sou, 5, 2), tile.Tile{Suit: tile.Sou, Number: 0})
	tbl := tile.NewTable(tiles)
	v := HandView{Table: tbl}
	opts := ponOptions(v, tile.Tile{Suit: tile.Sou, Number: 5})
	if len(opts) != 2 {
		t.Fatalf("expected 2 pon combinations (plain-plain, plain-red), got %d: %+v", len(opts), opts)
	}
}

func TestChiOptionsSingleCompletionAndNonHonor(t *testing.T) {
	tbl := tile.NewTable([]tile.Tile{{Suit: tile.Man, Number: 3}, {Suit: tile.Man, Number: 4}})
	v := HandView{Table: tbl}
	discard := tile.Tile{Suit: tile.Man, Number: 2}
	opts := chiOptions(v, discard)
	if len(opts) != 1 {
		t.Fatalf("expected exactly one chi completion (3-4), got %d", len(opts))
	}

	honorTbl := tile.NewTable(nil)
	honorOpts := chiOptions(HandView{Table: honorTbl}, tile.Tile{Suit: tile.Honor, Number: tile.East})
	if len(honorOpts) != 0 {
		t.Fatalf("honor tiles must never be chi-able")
	}
}

func TestCallOptionsRestrictsChiToDownstreamSeat(t *testing.T) {
	tbl := tile.NewTable([]tile.Tile{{Suit: tile.Man, Number: 3}, {Suit: tile.Man, Number: 4}})
	v := HandView{Table: tbl}
	discard := tile.Tile{Suit: tile.Man, Number: 2}

	// fromSeat=0, reacting seat=1 (downstream) -> chi allowed
	opts := CallOptions(v, 1, 0, discard, false)
	hasChi := false
	for _, o := range opts {
		if o.Kind == Chi {
			hasChi = true
		}
	}
	if !hasChi {
		t.Fatalf("expected downstream seat to see a chi option")
	}

	// fromSeat=0, reacting seat=2 (across the table) -> no chi
	opts2 := CallOptions(v, 2, 0, discard, false)
	for _, o := range opts2 {
		if o.Kind == Chi {
			t.Fatalf("non-downstream seat must not see chi options")
		}
	}
}

func TestIsKuikaeForbiddenSameTile(t *testing.T) {
	chi := Option{Kind: Chi, Tiles: []tile.Tile{{Suit: tile.Man, Number: 3}, {Suit: tile.Man, Number: 4}}}
	discarded := tile.Tile{Suit: tile.Man, Number: 2}
	if !IsKuikaeForbidden(chi, discarded, discarded) {
		t.Fatalf("discarding the identical tile just called must be forbidden")
	}
	other := tile.Tile{Suit: tile.Pin, Number: 7}
	if IsKuikaeForbidden(chi, discarded, other) {
		t.Fatalf("an unrelated discard must not be flagged as kuikae")
	}
}
