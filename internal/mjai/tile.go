// Package mjai bridges this module's internal/eventschema event/action
// wire shapes to the mjai dialect over a line-delimited JSON TCP socket,
// per spec.md §6's "mjai dialect bridge (external collaborator)". Grounded
// on internal/wsbridge's Connection/Hub split (a per-socket read/write pump
// plus a registry) but framed over a bufio.Scanner/net.Conn line protocol
// instead of gorilla/websocket frames, since mjai clients speak bare
// newline-delimited JSON rather than the websocket frame format.
package mjai

import (
	"fmt"
	"strconv"

	"mahjongcore/internal/tile"
)

// mjaiHonor maps this repo's honor numbering (tile.East..tile.Red) to the
// mjai dialect's letter tiles.
var mjaiHonor = map[int]string{
	tile.East:  "E",
	tile.South: "S",
	tile.West:  "W",
	tile.North: "N",
	tile.White: "P",
	tile.Green: "F",
	tile.Red:   "C",
}

var mjaiHonorRev = map[string]int{
	"E": tile.East,
	"S": tile.South,
	"W": tile.West,
	"N": tile.North,
	"P": tile.White,
	"F": tile.Green,
	"C": tile.Red,
}

// ToMjai renders t in the mjai dialect: honors as letters (E,S,W,N,P,F,C),
// red-5 as "<digit>r" rather than this repo's canonical digit-0 alias.
func ToMjai(t tile.Tile) string {
	if t.Suit == tile.Honor {
		return mjaiHonor[t.Number]
	}
	if t.IsRed() {
		return "5" + t.Suit.String() + "r"
	}
	return fmt.Sprintf("%d%s", t.Number, t.Suit)
}

// ToMjaiUnknown renders the mjai "unknown tile" sentinel, used for the
// other three players' concealed tiles in tsumo and start_kyoku messages.
func ToMjaiUnknown() string { return "?" }

// FromMjai parses the mjai dialect's tile encoding back into a tile.Tile.
func FromMjai(s string) (tile.Tile, error) {
	if s == "?" {
		return tile.Tile{}, fmt.Errorf("mjai: unknown tile sentinel")
	}
	if n, ok := mjaiHonorRev[s]; ok {
		return tile.New(tile.Honor, n), nil
	}
	if len(s) == 3 && s[2] == 'r' {
		d, err := strconv.Atoi(string(s[0]))
		if err != nil || d != 5 {
			return tile.Tile{}, fmt.Errorf("mjai: malformed red tile %q", s)
		}
		suit, err := suitFromByte(s[1])
		if err != nil {
			return tile.Tile{}, err
		}
		return tile.New(suit, 0), nil
	}
	if len(s) != 2 {
		return tile.Tile{}, fmt.Errorf("mjai: malformed tile %q", s)
	}
	d, err := strconv.Atoi(string(s[0]))
	if err != nil {
		return tile.Tile{}, fmt.Errorf("mjai: malformed tile %q", s)
	}
	suit, err := suitFromByte(s[1])
	if err != nil {
		return tile.Tile{}, err
	}
	return tile.New(suit, d), nil
}

func suitFromByte(b byte) (tile.Suit, error) {
	switch b {
	case 'm':
		return tile.Man, nil
	case 'p':
		return tile.Pin, nil
	case 's':
		return tile.Sou, nil
	default:
		return 0, fmt.Errorf("mjai: unknown suit byte %q", b)
	}
}

// ToMjaiSlice renders a slice of tiles, used for tehai/consumed arrays.
func ToMjaiSlice(ts []tile.Tile) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = ToMjai(t)
	}
	return out
}

// FromMjaiSlice parses a slice of mjai-encoded tile strings.
func FromMjaiSlice(ss []string) ([]tile.Tile, error) {
	out := make([]tile.Tile, len(ss))
	for i, s := range ss {
		t, err := FromMjai(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
