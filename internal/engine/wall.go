// Package engine implements the outer round state machine of spec.md §4.7:
// Begin → New → {Deal → Turn → Call → abortive-check}* → Win/Draw → End,
// wall/dead-wall management, dealer/honba advancement, and game-end
// detection. Grounded on the teacher's
// runtime/game/engines/mahjong/riichi_mahjong_4p_engine.go (distributeCard,
// DropTurn, LeadRonEnding/LeadTsumoEnding/LeadNormalDrawEnding,
// finalizeRound) and turn_manager.go's phase-state shape, generalized from
// a network-actor driven by share.GameEvent into a synchronous library
// loop driven directly by the Agent protocol of internal/agent.
package engine

import (
	"math/rand"

	"mahjongcore/internal/tile"
)

// Rule is the subset of rule variants spec.md's ambient config governs:
// red-5 count, 3-player toggle, busting option, agent timeout window,
// abortive-draw options -- loaded by internal/config and threaded through
// here rather than hard-coded, per SPEC_FULL.md's AMBIENT STACK.
type Rule struct {
	RedFivesPerSuit  int // typically 1
	ThreePlayer      bool
	BustingEnabled   bool
	AgentTimeoutMS   int
	SuufuurendaOn    bool
	SuukansanraOn    bool
	SuuchariichiOn   bool
	TripleRonAbortOn bool
	RequiredRounds   int // e.g. 8 for East+South (hanchan)
	SettlementScore  int // e.g. 30000
	MaxExtendedRound int
}

// DefaultRule matches the common 4-player hanchan ruleset.
func DefaultRule() Rule {
	return Rule{
		RedFivesPerSuit:  1,
		BustingEnabled:   true,
		AgentTimeoutMS:   5000,
		SuufuurendaOn:    true,
		SuukansanraOn:    true,
		SuuchariichiOn:   true,
		TripleRonAbortOn: true,
		RequiredRounds:   8,
		SettlementScore:  30000,
		MaxExtendedRound: 8,
	}
}

// Wall is the shuffled 136-tile supply split into the live wall (drawn in
// turn order) and the 14-tile dead wall (4 rinshan replacement tiles plus
// 5 dora-indicator/ura-dora indicator pairs), per spec.md §4.7.
type Wall struct {
	live  []tile.Tile
	dead  []tile.Tile // rinshan replacements, consumed front-to-back
	doraI []tile.Tile // revealed-so-far dora indicators
	uraI  []tile.Tile // corresponding ura-dora indicators (revealed only at Win)

	deadPos int
	doraPos int
}

const (
	deadWallSize      = 14
	rinshanCount      = 4
	indicatorPairsMax = 5
)

// NewWall builds and shuffles a fresh 136-tile wall, injecting rule.RedFivesPerSuit
// red-5 copies into each numbered suit (replacing a plain 5), per spec.md §4.7.
func NewWall(rule Rule, rng *rand.Rand) *Wall {
	tiles := make([]tile.Tile, 0, 136)
	for _, suit := range []tile.Suit{tile.Man, tile.Pin, tile.Sou} {
		for n := 1; n <= 9; n++ {
			for c := 0; c < 4; c++ {
				tiles = append(tiles, tile.Tile{Suit: suit, Number: n})
			}
		}
	}
	for _, h := range tile.Honors() {
		for c := 0; c < 4; c++ {
			tiles = append(tiles, h)
		}
	}

	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	for _, suit := range []tile.Suit{tile.Man, tile.Pin, tile.Sou} {
		injected := 0
		for i := range tiles {
			if injected >= rule.RedFivesPerSuit {
				break
			}
			if tiles[i].Suit == suit && tiles[i].Number == 5 {
				tiles[i].Number = 0
				injected++
			}
		}
	}

	w := &Wall{}
	w.dead = tiles[:deadWallSize]
	w.live = tiles[deadWallSize:]
	for i := 0; i < indicatorPairsMax; i++ {
		w.doraI = append(w.doraI, w.dead[rinshanCount+2*i])
		w.uraI = append(w.uraI, w.dead[rinshanCount+2*i+1])
	}
	// the first revealed dora indicator is turned immediately at round start
	w.doraPos = 1
	return w
}

// LiveCount reports the remaining drawable live-wall tiles.
func (w *Wall) LiveCount() int { return len(w.live) }

// DrawLive pops the next live-wall tile (normal turn draw). Returns false
// if the wall is exhausted -- the caller should end the round in
// exhaustive draw.
func (w *Wall) DrawLive() (tile.Tile, bool) {
	if len(w.live) == 0 {
		return tile.Tile{}, false
	}
	t := w.live[0]
	w.live = w.live[1:]
	return t, true
}

// DrawReplacement pops the next rinshan tile after a kan, per spec.md §4.7.
func (w *Wall) DrawReplacement() (tile.Tile, bool) {
	if w.deadPos >= rinshanCount {
		return tile.Tile{}, false
	}
	t := w.dead[w.deadPos]
	w.deadPos++
	return t, true
}

// RevealedDoraIndicators returns every dora indicator revealed so far.
func (w *Wall) RevealedDoraIndicators() []tile.Tile {
	return append([]tile.Tile(nil), w.doraI[:w.doraPos]...)
}

// UraDoraIndicators returns the ura-dora indicators lined up behind every
// revealed dora indicator, disclosed only to a winning riichi hand.
func (w *Wall) UraDoraIndicators() []tile.Tile {
	return append([]tile.Tile(nil), w.uraI[:w.doraPos]...)
}

// RevealNextDora turns the next kan-dora indicator, up to the 5-indicator
// maximum (spec.md §4.5: "Minkan: ... ≤ 4 dora indicators revealed").
func (w *Wall) RevealNextDora() (tile.Tile, bool) {
	if w.doraPos >= indicatorPairsMax {
		return tile.Tile{}, false
	}
	t := w.doraI[w.doraPos]
	w.doraPos++
	return t, true
}

// DealHands deals 13 tiles to each of the 4 seats, in the traditional
// 4-4-4-1 break, front of the live wall.
func (w *Wall) DealHands() [4][]tile.Tile {
	var hands [4][]tile.Tile
	for round := 0; round < 3; round++ {
		for seat := 0; seat < 4; seat++ {
			hands[seat] = append(hands[seat], w.live[:4]...)
			w.live = w.live[4:]
		}
	}
	for seat := 0; seat < 4; seat++ {
		hands[seat] = append(hands[seat], w.live[0])
		w.live = w.live[1:]
	}
	return hands
}
