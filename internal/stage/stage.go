// Package stage implements the canonical game-state reducer: the single
// source of truth for one round's Stage, mutated only by applying Events,
// per spec.md §4.6. Grounded on the teacher's
// framework/game/engines/mahjong/player_image.go (PlayerImage's per-seat
// hand/discard/meld/riichi bookkeeping) and riichi_mahjong_4p_engine.go's
// RiichiMahjong4p top-level fields (Players, Wall, DoraIndicators), merged
// into one Stage value the way spec.md §3 describes rather than the
// teacher's split Wall/engine/PlayerImage trio, since the reducer needs one
// coherent snapshot to diff invariants against after each event.
package stage

import (
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
)

// Location is one tile_states atom, per spec.md §3.
type Location int

const (
	Unknown Location = iota
	InHand
	InMeld
	InKita
	InDiscard
	IsDoraIndicator
	Unseen
)

// TileState records where one physical tile instance currently sits.
type TileState struct {
	Loc   Location
	Seat  int // meaningful for InHand/InMeld/InKita/InDiscard
	Index int // meld/discard slot index; the reducer does not fill it in (always 0)
}

// DiscardEntry is one per-seat discard-pile entry, per spec.md §3.
type DiscardEntry struct {
	Tile      tile.Tile
	IsDrawn   bool // tsumogiri
	IsClaimed bool // retroactively set when melded by another seat
	IsRiichi  bool // the riichi-declaration discard
	Step      int
}

// Player mirrors spec.md §3's Player record.
type Player struct {
	Seat          int
	Score         int
	Table         *tile.Table
	Drawn         *tile.Tile
	Melds         []meld.Meld
	NukidoraCount int
	Discards      []DiscardEntry
	RiichiDiscard int // index into Discards, -1 if not riichi

	Menzen        bool
	Riichi        bool
	DoubleRiichi  bool
	Ippatsu       bool
	Rinshan       bool
	Furiten       bool // own discard/passed-ron furiten (permanent this hand)
	FuritenOther  bool // temporary missed-ron furiten
	Nagashimangan bool // still eligible: every discard so far is yaochuu and uncalled

	WinningTiles []tile.Tile // cached waits, recomputed on hand shape change
	Pao          int         // liability seat, -1 if none
	Rank         int
}

// LastTile records the most recent discard/meld tile for ron/chankan/furiten
// resolution, per spec.md §3.
type LastTile struct {
	Seat  int
	Cause eventschema.ActionType // Discard, Kakan, Ankan (rinshan context)
	Tile  tile.Tile
}

// Stage is the canonical, reducer-owned game state for one round.
type Stage struct {
	Round      int
	Dealer     int
	Honba      int
	Sticks     int
	Turn       int
	Step       int
	WallCount  int
	Doras      []tile.Tile
	UraDoras   []tile.Tile
	LastTile   LastTile
	Players    [4]*Player
	LastRiichi int // seat with a pending (unresolved) riichi stick, -1 if none

	TileStates [34][4]TileState // [tileIdentity][copyOrdinal]
}

// New resets a Stage from a New event, per spec.md §3 lifecycle: "Stage is
// reset per round from the New event."
func New(ev eventschema.Event) *Stage {
	s := &Stage{
		Round:      ev.Round,
		Dealer:     ev.Dealer,
		Honba:      ev.Honba,
		Sticks:     ev.Sticks,
		Turn:       ev.Dealer,
		Step:       0,
		WallCount:  ev.WallCount,
		Doras:      append([]tile.Tile(nil), ev.Doras...),
		LastRiichi: -1,
	}
	for seat := 0; seat < 4; seat++ {
		p := &Player{
			Seat:          seat,
			Score:         ev.Scores[seat],
			Table:         tile.NewTable(ev.Hands[seat]),
			RiichiDiscard: -1,
			Menzen:        true,
			Pao:           -1,
			Rank:          seat,
		}
		s.Players[seat] = p
	}
	s.initTileStates(ev)
	return s
}

func (s *Stage) initTileStates(ev eventschema.Event) {
	for idx := range s.TileStates {
		for ord := range s.TileStates[idx] {
			s.TileStates[idx][ord] = TileState{Loc: Unseen}
		}
	}
	for seat, hand := range ev.Hands {
		for _, t := range hand {
			s.placeTile(t, TileState{Loc: InHand, Seat: seat})
		}
	}
	for _, d := range s.Doras {
		s.placeTile(d, TileState{Loc: IsDoraIndicator})
	}
}

// placeTile finds the first Unseen copy of t's identity and assigns it loc;
// this is the "strict old→new edit, every edit must find the exact prior
// state" mechanism spec.md §3 requires, specialized for the Unseen->located
// direction used at New/Deal.
func (s *Stage) placeTile(t tile.Tile, loc TileState) {
	idx := t.Normalize().Index34()
	for ord := range s.TileStates[idx] {
		if s.TileStates[idx][ord].Loc == Unseen {
			s.TileStates[idx][ord] = loc
			return
		}
	}
}

// NextSeat returns the seat clockwise of seat, the turn-order primitive
// used by both the reducer (ippatsu clearing) and the round engine (turn
// advancement, head-bump ordering).
func NextSeat(seat int) int { return (seat + 1) % 4 }

// Clone deep-copies the Stage, per spec.md §5's "Stage is shared read-only
// with agents through cloned handles" -- an Agent.Init/NotifyEvent
// implementation may hold onto this value without risking a data race
// against the reducer's subsequent in-place mutation.
func (s *Stage) Clone() *Stage {
	c := *s
	for seat, p := range s.Players {
		cp := *p
		cp.Table = p.Table.Clone()
		cp.Melds = append([]meld.Meld(nil), p.Melds...)
		cp.Discards = append([]DiscardEntry(nil), p.Discards...)
		cp.WinningTiles = append([]tile.Tile(nil), p.WinningTiles...)
		c.Players[seat] = &cp
	}
	c.Doras = append([]tile.Tile(nil), s.Doras...)
	c.UraDoras = append([]tile.Tile(nil), s.UraDoras...)
	return &c
}
