package persistence

import (
	"testing"

	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/tile"
)

func TestTenhouTileCodePlain(t *testing.T) {
	cases := map[tile.Tile]int{
		tile.New(tile.Man, 1):   11,
		tile.New(tile.Pin, 9):   29,
		tile.New(tile.Sou, 5):   35,
		tile.New(tile.Honor, 1): 41,
		tile.New(tile.Honor, 7): 47,
	}
	for tl, want := range cases {
		if got := tenhouTileCode(tl); got != want {
			t.Fatalf("tenhouTileCode(%v) = %d, want %d", tl, got, want)
		}
	}
}

func TestTenhouTileCodeRedFive(t *testing.T) {
	cases := map[tile.Tile]int{
		tile.New(tile.Man, 0): 51,
		tile.New(tile.Pin, 0): 52,
		tile.New(tile.Sou, 0): 53,
	}
	for tl, want := range cases {
		if got := tenhouTileCode(tl); got != want {
			t.Fatalf("tenhouTileCode(red %v) = %d, want %d", tl, got, want)
		}
	}
}

func TestTenhouDiscardEntryTsumogiriSentinel(t *testing.T) {
	ev := eventschema.Event{Type: eventschema.EvDiscard, Tile: tile.New(tile.Man, 3), IsDrawn: true}
	got := tenhouDiscardEntry(ev)
	if got != tenhouTsumogiriSentinel {
		t.Fatalf("got %v, want tsumogiri sentinel", got)
	}
}

func TestTenhouDiscardEntryRiichiPrefix(t *testing.T) {
	ev := eventschema.Event{Type: eventschema.EvDiscard, Tile: tile.New(tile.Man, 3), IsRiichi: true}
	got, ok := tenhouDiscardEntry(ev).(string)
	if !ok || got != "r13" {
		t.Fatalf("got %v, want \"r13\"", got)
	}
}
