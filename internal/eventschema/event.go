// Package eventschema implements the tagged event/action wire types and
// their line-delimited JSON encoding, per spec.md §3/§6. Grounded on the
// teacher's push.go (JSON-marshaled PlayerReaction/operation payloads
// pushed to a connector) and material.go's Tile/Meld shapes, generalized
// from ad hoc per-call marshaling into a closed, discriminated Event/Action
// type suitable for round-trip persistence and the mjai bridge.
package eventschema

import (
	"encoding/json"
	"fmt"

	"mahjongcore/internal/tile"
)

// EventType is the `type` discriminant of a wire Event.
type EventType string

const (
	EvBegin     EventType = "Begin"
	EvNew       EventType = "New"
	EvDeal      EventType = "Deal"
	EvDiscard   EventType = "Discard"
	EvMeld      EventType = "Meld"
	EvNukidora  EventType = "Nukidora"
	EvDora      EventType = "Dora"
	EvWin       EventType = "Win"
	EvDraw      EventType = "Draw"
	EvEnd       EventType = "End"
)

// Event is a tagged variant carrying exactly the fields its Type uses; the
// rest are left at their zero value. A flat struct (rather than an
// interface-per-variant hierarchy) keeps the line-delimited JSON
// encoding/decoding trivial and matches the teacher's convention of
// marshaling a single concrete struct per message (push.go).
type Event struct {
	Type EventType `json:"type"`

	// New
	Rule      string     `json:"rule,omitempty"`
	Round     int        `json:"round,omitempty"`
	Dealer    int        `json:"dealer,omitempty"`
	Honba     int        `json:"honba,omitempty"`
	Sticks    int        `json:"sticks,omitempty"`
	Doras     []tile.Tile `json:"doras,omitempty"`
	Names     [4]string  `json:"names,omitempty"`
	Scores    [4]int     `json:"scores,omitempty"`
	Hands     [4][]tile.Tile `json:"hands,omitempty"`
	WallCount int        `json:"wall_count,omitempty"`

	// Deal
	Seat          int  `json:"seat"`
	Tile          tile.Tile `json:"tile,omitempty"`
	IsReplacement bool `json:"is_replacement,omitempty"`

	// Discard
	IsDrawn  bool `json:"is_drawn,omitempty"`
	IsRiichi bool `json:"is_riichi,omitempty"`

	// Meld
	MeldType string      `json:"meld_type,omitempty"`
	Consumed []tile.Tile `json:"consumed,omitempty"`
	IsPao    bool        `json:"is_pao,omitempty"`

	// Win
	UraDoras    []tile.Tile `json:"ura_doras,omitempty"`
	DeltaScores [4]int     `json:"delta_scores,omitempty"`
	Contexts    []WinContext `json:"contexts,omitempty"`

	// Draw
	DrawType            string `json:"draw_type,omitempty"`
	TenpaiMask          [4]bool `json:"hands_tenpai,omitempty"`
	NagashimanganScores [4]int  `json:"nagashimangan_scores,omitempty"`
}

// WinContext mirrors spec.md §3's per-winner WinContext/ScoreContext.
type WinContext struct {
	Seat        int        `json:"seat"`
	WinningTile tile.Tile  `json:"winning_tile"`
	IsDealer    bool       `json:"is_dealer"`
	IsDrawn     bool       `json:"is_drawn"`
	Riichi      bool       `json:"riichi"`
	PaoSeat     int        `json:"pao_seat"`
	HasPao      bool       `json:"has_pao"`
	Yakus       []YakuLine `json:"yakus"`
	Fu          int        `json:"fu"`
	Fan         int        `json:"fan"`
	Yakuman     int        `json:"yakuman"`
	Points      [3]int     `json:"points"` // ron, non-dealer tsumo, dealer tsumo
	Title       string     `json:"title"`
}

// YakuLine is one named, fan-valued yaku hit, as reported in a WinContext.
type YakuLine struct {
	Name string `json:"name"`
	Fan  int    `json:"fan"`
}

// ActionType is the `type` discriminant of a wire Action, per spec.md §3.
type ActionType string

const (
	ActNop          ActionType = "Nop"
	ActDiscard      ActionType = "Discard"
	ActRiichi       ActionType = "Riichi"
	ActAnkan        ActionType = "Ankan"
	ActKakan        ActionType = "Kakan"
	ActTsumo        ActionType = "Tsumo"
	ActKyushukyuhai ActionType = "Kyushukyuhai"
	ActNukidora     ActionType = "Nukidora"
	ActChi          ActionType = "Chi"
	ActPon          ActionType = "Pon"
	ActMinkan       ActionType = "Minkan"
	ActRon          ActionType = "Ron"
)

// Action is an agent's chosen (or engine-substituted Nop) response; Tiles'
// meaning depends on Type -- the discard tile, the meld's consumed tiles,
// or empty for Tsumo/Ron (the winning tile is already known to the caller).
type Action struct {
	Type  ActionType  `json:"type"`
	Tiles []tile.Tile `json:"tiles,omitempty"`
}

// Encode serializes one Event as a single line-delimited JSON record.
func Encode(ev Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("eventschema: encode %s: %w", ev.Type, err)
	}
	return append(b, '\n'), nil
}

// Decode parses one line-delimited JSON record back into an Event.
func Decode(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("eventschema: decode: %w", err)
	}
	return ev, nil
}
