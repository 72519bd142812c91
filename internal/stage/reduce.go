package stage

import (
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
)

// Apply reduces one Event into a Stage mutation. It does not check the event
// and reports no error: a tile the seat does not hold is skipped by
// Table.Remove, whose false result is ignored, and the rest of the event is
// still applied. Callers that accept external/bridged events should validate
// shape before calling Apply.
func (s *Stage) Apply(ev eventschema.Event) {
	s.Step++
	switch ev.Type {
	case eventschema.EvDeal:
		s.applyDeal(ev)
	case eventschema.EvDiscard:
		s.applyDiscard(ev)
	case eventschema.EvMeld:
		s.applyMeld(ev)
	case eventschema.EvNukidora:
		s.applyNukidora(ev)
	case eventschema.EvDora:
		s.Doras = append(s.Doras, ev.Tile)
		s.placeTile(ev.Tile, TileState{Loc: IsDoraIndicator})
	case eventschema.EvWin:
		s.applyWin(ev)
	case eventschema.EvDraw:
		s.applyDraw(ev)
	case eventschema.EvBegin, eventschema.EvNew, eventschema.EvEnd:
		// New is handled by the constructor New(); Begin/End carry no Stage
		// mutation of their own.
	}
}

func (s *Stage) applyDeal(ev eventschema.Event) {
	p := s.Players[ev.Seat]
	p.Table.Add(ev.Tile)
	drawn := ev.Tile
	p.Drawn = &drawn
	s.placeTile(ev.Tile, TileState{Loc: InHand, Seat: ev.Seat})
	if !ev.IsReplacement {
		s.WallCount--
	}
	s.Turn = ev.Seat
	if !p.Riichi {
		p.recomputeWaits()
	}
	s.clearFuritenOtherOnDraw(p)
}

func (s *Stage) applyDiscard(ev eventschema.Event) {
	p := s.Players[ev.Seat]

	if p.Drawn != nil && p.Drawn.Normalize() == ev.Tile.Normalize() && p.Drawn.IsRed() == ev.Tile.IsRed() {
		p.Drawn = nil
	}
	p.Table.Remove(ev.Tile)
	p.moveTileFromHand(s, ev.Tile, ev.Seat, InDiscard)

	entry := DiscardEntry{Tile: ev.Tile, IsDrawn: ev.IsDrawn, IsRiichi: ev.IsRiichi, Step: s.Step}
	p.Discards = append(p.Discards, entry)

	if ev.IsRiichi {
		p.RiichiDiscard = len(p.Discards) - 1
		if s.Step <= 4 && p.Menzen && len(p.Discards) == 1 {
			p.DoubleRiichi = true
		}
		p.Riichi = true
		p.Ippatsu = true
		p.Score -= 1000
		s.Sticks++
		s.LastRiichi = ev.Seat
	} else if p.Seat != ev.Seat {
		p.Ippatsu = false
	}

	if p.Nagashimangan && !ev.Tile.IsTerminalOrHonor() {
		p.Nagashimangan = false
	}

	s.LastTile = LastTile{Seat: ev.Seat, Cause: eventschema.ActDiscard, Tile: ev.Tile}

	if containsTile(p.WinningTiles, ev.Tile) {
		p.Furiten = true
	}

	for seat, other := range s.Players {
		if seat == ev.Seat {
			continue
		}
		other.Ippatsu = false
		if containsTile(other.WinningTiles, ev.Tile) {
			if other.Riichi {
				other.Furiten = true
			} else {
				other.FuritenOther = true
			}
		}
	}
	p.recomputeWaits()
}

// applyMeld consumes the tiles ev.Consumed lists from seat's own hand (for
// Ankan: all four copies; for Kakan: the upgrading fourth copy; for
// Chi/Pon/Minkan: every tile but the claimed discard itself, which is
// appended here from s.LastTile rather than duplicated in the wire event).
func (s *Stage) applyMeld(ev eventschema.Event) {
	p := s.Players[ev.Seat]
	kind := meldKindOf(ev.MeldType)

	for _, t := range ev.Consumed {
		p.Table.Remove(t)
		p.moveTileFromHand(s, t, ev.Seat, InMeld)
	}

	switch kind {
	case meld.Kakan:
		for i := range p.Melds {
			if p.Melds[i].Kind == meld.Pon && p.Melds[i].Low34() == ev.Tile.Normalize().Index34() {
				p.Melds[i].Kind = meld.Kakan
				p.Melds[i].Tiles = append(p.Melds[i].Tiles, ev.Tile)
			}
		}
	case meld.Ankan:
		m := meld.Meld{Kind: meld.Ankan, Tiles: append([]tile.Tile(nil), ev.Consumed...), From: ev.Seat}
		p.Melds = append(p.Melds, m)
	default: // Chi, Pon, Minkan: own tiles plus the claimed discard
		full := append(append([]tile.Tile(nil), ev.Consumed...), s.LastTile.Tile)
		m := meld.Meld{Kind: kind, Tiles: full, From: s.LastTile.Seat, IsPao: ev.IsPao}
		p.Menzen = false
		p.Melds = append(p.Melds, m)
		s.markDiscardClaimed(s.LastTile.Seat, s.LastTile.Tile)
	}

	if kind == meld.Pon || kind == meld.Chi || kind == meld.Minkan {
		for seat := range s.Players {
			s.Players[seat].Ippatsu = false
		}
	}
	p.recomputeWaits()
}

// markDiscardClaimed retroactively flags the discarder's most recent
// matching discard as claimed, per spec.md §3's Discard record shape.
func (s *Stage) markDiscardClaimed(seat int, t tile.Tile) {
	discards := s.Players[seat].Discards
	for i := len(discards) - 1; i >= 0; i-- {
		if discards[i].Tile.Normalize() == t.Normalize() && discards[i].Tile.IsRed() == t.IsRed() {
			discards[i].IsClaimed = true
			return
		}
	}
}

func meldKindOf(tag string) meld.Kind {
	switch tag {
	case "Chi":
		return meld.Chi
	case "Pon":
		return meld.Pon
	case "Minkan":
		return meld.Minkan
	case "Ankan":
		return meld.Ankan
	case "Kakan":
		return meld.Kakan
	default:
		return meld.Chi
	}
}

// applyNukidora handles the 3-player North-extraction action: ev.IsDrawn
// distinguishes extracting the just-drawn North (already added to the hand
// table by the preceding Deal) from extracting one held since a prior turn.
func (s *Stage) applyNukidora(ev eventschema.Event) {
	p := s.Players[ev.Seat]
	if p.Drawn != nil && p.Drawn.Suit == ev.Tile.Suit && p.Drawn.Number == ev.Tile.Number {
		p.Drawn = nil
	}
	p.Table.Remove(ev.Tile)
	p.moveTileFromHand(s, ev.Tile, ev.Seat, InKita)
	p.NukidoraCount++
}

func (s *Stage) applyWin(ev eventschema.Event) {
	for seat := 0; seat < 4; seat++ {
		s.Players[seat].Score += ev.DeltaScores[seat]
	}
	s.Sticks = ev.Sticks
	s.Honba = ev.Honba
	s.UraDoras = append([]tile.Tile(nil), ev.UraDoras...)
}

func (s *Stage) applyDraw(ev eventschema.Event) {
	for seat := 0; seat < 4; seat++ {
		s.Players[seat].Score += ev.DeltaScores[seat]
		s.Players[seat].Score += ev.NagashimanganScores[seat]
	}
}

// recomputeWaits refreshes a player's cached winning-tiles set from its
// current concealed shape, using the uncached hand.Waits search.
func (p *Player) recomputeWaits() {
	full := hand.FromTable(p.Table)
	meldsCount := len(p.Melds)
	idxs := hand.Waits(full, meldsCount)
	p.WinningTiles = p.WinningTiles[:0]
	for _, idx := range idxs {
		p.WinningTiles = append(p.WinningTiles, tile.FromIndex34(idx))
	}
}

// clearFuritenOtherOnDraw implements spec.md §4.6: "is_furiten_other clears
// on the next own draw if not under riichi."
func (s *Stage) clearFuritenOtherOnDraw(p *Player) {
	if !p.Riichi {
		p.FuritenOther = false
	}
}

func containsTile(ts []tile.Tile, t tile.Tile) bool {
	n := t.Normalize()
	for _, x := range ts {
		if x.Normalize() == n {
			return true
		}
	}
	return false
}

// moveTileFromHand transitions one physical copy of t out of seat's hand
// into the given destination location (InDiscard/InMeld/InKita).
func (p *Player) moveTileFromHand(s *Stage, t tile.Tile, seat int, to Location) {
	idx := t.Normalize().Index34()
	for ord := range s.TileStates[idx] {
		cur := s.TileStates[idx][ord]
		if cur.Loc == InHand && cur.Seat == seat {
			s.TileStates[idx][ord] = TileState{Loc: to, Seat: seat}
			return
		}
	}
}
