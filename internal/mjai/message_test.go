package mjai

import (
	"testing"

	"mahjongcore/internal/action"
	"mahjongcore/internal/tile"
)

func TestMessageToOptionDahaiPicksDiscard(t *testing.T) {
	opts := []action.Option{{Kind: action.Discard}}
	got, err := MessageToOption(Message{Type: TypeDahai, Pai: "5m"}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != action.Discard || len(got.Tiles) != 1 || got.Tiles[0] != tile.New(tile.Man, 5) {
		t.Fatalf("got %+v", got)
	}
}

func TestMessageToOptionReachPicksBareRiichi(t *testing.T) {
	opts := []action.Option{{Kind: action.Discard}, {Kind: action.Riichi}}
	got, err := MessageToOption(Message{Type: TypeReach}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != action.Riichi || len(got.Tiles) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestMessageToOptionChiMatchesConsumed(t *testing.T) {
	want := action.Option{Kind: action.Chi, Tiles: []tile.Tile{tile.New(tile.Man, 2), tile.New(tile.Man, 3)}}
	other := action.Option{Kind: action.Chi, Tiles: []tile.Tile{tile.New(tile.Man, 5), tile.New(tile.Man, 6)}}
	opts := []action.Option{other, want}

	got, err := MessageToOption(Message{Type: TypeChi, Consumed: []string{"2m", "3m"}}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != action.Chi || len(got.Tiles) != 2 {
		t.Fatalf("got %+v", got)
	}
	if !sameMultiset(got.Tiles, want.Tiles) {
		t.Fatalf("expected to match %+v, got %+v", want, got)
	}
}

func TestMessageToOptionUnrecognizedTypeErrors(t *testing.T) {
	if _, err := MessageToOption(Message{Type: "bogus"}, nil); err == nil {
		t.Fatalf("expected error for unrecognized reply type")
	}
}

func TestActionToMessageRiichiBareIsReach(t *testing.T) {
	m := ActionToMessage(action.Option{Kind: action.Riichi}, 2)
	if m.Type != TypeReach || m.Actor != 2 {
		t.Fatalf("got %+v", m)
	}
}
