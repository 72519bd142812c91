package persistence

import (
	"encoding/json"
	"fmt"

	"mahjongcore/internal/engine"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/stage"
	"mahjongcore/internal/tile"
)

// tenhouTileCode renders t in the tenhou mjlog numeric dialect spec.md §6
// names: suit*10+number for a plain tile (11-47, honors 41-47 matching this
// module's East..Red = 1..7 numbering), 51/52/53 for a red-5 of
// man/pin/sou. There is no "unknown tile" sentinel in this encoding --
// every tile written to a finished log is fully known.
func tenhouTileCode(t tile.Tile) int {
	if t.IsRed() {
		switch t.Suit {
		case tile.Man:
			return 51
		case tile.Pin:
			return 52
		case tile.Sou:
			return 53
		}
	}
	base := map[tile.Suit]int{tile.Man: 10, tile.Pin: 20, tile.Sou: 30, tile.Honor: 40}[t.Suit]
	return base + t.Number
}

// tenhouTsumogiriSentinel is the "discarded the tile just drawn" marker
// that replaces a tile code in the discards array.
const tenhouTsumogiriSentinel = 60

// tenhouDiscardEntry renders one discard: the tsumogiri sentinel (60) for a
// same-tile discard, the tile code otherwise, "r"-prefixed as a string when
// the discard declared riichi (spec.md §6's `r<n>` prefix).
func tenhouDiscardEntry(ev eventschema.Event) any {
	code := tenhouTileCode(ev.Tile)
	if ev.IsDrawn {
		code = tenhouTsumogiriSentinel
	}
	if ev.IsRiichi {
		return fmt.Sprintf("r%d", code)
	}
	return code
}

// seatLog is one seat's per-round record: initial_hand (the 13 tiles dealt
// at New), draws_and_melds (every subsequent Deal/Meld affecting this
// seat, in order), and discards (every Discard this seat made).
type seatLog struct {
	InitialHand   []int `json:"initial_hand"`
	DrawsAndMelds []any `json:"draws_and_melds"`
	Discards      []any `json:"discards"`
}

// tenhouRound is one round's tenhou-format entry: [dealer/honba/sticks],
// [scores], [dora indicators], [ura indicators], four seatLogs, result tag.
type tenhouRound struct {
	entries []any // built by buildTenhouRound, marshaled via MarshalJSON
}

func (r tenhouRound) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.entries)
}

func buildTenhouRound(out *engine.Outcome) tenhouRound {
	st := out.Stage

	seats := [4]seatLog{}
	for seat := range seats {
		seats[seat] = seatLog{DrawsAndMelds: []any{}, Discards: []any{}}
	}

	for _, ev := range out.Events {
		switch ev.Type {
		case eventschema.EvNew:
			for seat := 0; seat < 4; seat++ {
				hand := make([]int, len(ev.Hands[seat]))
				for i, t := range ev.Hands[seat] {
					hand[i] = tenhouTileCode(t)
				}
				seats[seat].InitialHand = hand
			}
		case eventschema.EvDeal:
			seats[ev.Seat].DrawsAndMelds = append(seats[ev.Seat].DrawsAndMelds, tenhouTileCode(ev.Tile))
		case eventschema.EvDiscard:
			seats[ev.Seat].Discards = append(seats[ev.Seat].Discards, tenhouDiscardEntry(ev))
		case eventschema.EvMeld:
			tag := fmt.Sprintf("%s(%s)", ev.MeldType, tilesToCodes(ev.Consumed))
			seats[ev.Seat].DrawsAndMelds = append(seats[ev.Seat].DrawsAndMelds, tag)
		}
	}

	doraIndicators := tilesToCodes(st.Doras)
	uraIndicators := tilesToCodes(st.UraDoras)

	entries := []any{
		[3]int{st.Dealer, st.Honba, st.Sticks},
		scoresOf(st),
		doraIndicators,
		uraIndicators,
		seats[0], seats[1], seats[2], seats[3],
		resultTag(out),
	}
	return tenhouRound{entries: entries}
}

func tilesToCodes(ts []tile.Tile) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = tenhouTileCode(t)
	}
	return out
}

func scoresOf(st *stage.Stage) []int {
	out := make([]int, 4)
	for seat, p := range st.Players {
		out[seat] = p.Score
	}
	return out
}

func resultTag(out *engine.Outcome) []any {
	if out.IsWin {
		tag := []any{"和了"}
		for _, seat := range out.WinnerSeats {
			tag = append(tag, seat)
		}
		return tag
	}
	return []any{"流局", string(out.DrawType)}
}

// TenhouLog is a complete match rendered in the spec.md §6 tenhou-format
// log: a header (ruleset name, seat names, final ranks) plus one entry per
// played round.
type TenhouLog struct {
	Rule  string        `json:"rule"`
	Names [4]string     `json:"names"`
	Ranks [4]int        `json:"ranks"`
	Log   []tenhouRound `json:"log"`
}

// BuildTenhouLog renders a finished match's round history into the
// tenhou-format log, distinct from the Mongo-backed RoundRecord/GameRecord
// this package also persists: that history is queried by match/round id
// (internal/httpapi's routes), this is a portable single-file export meant
// for offline review or replay in third-party tenhou-log tooling.
func BuildTenhouLog(rule string, names [4]string, result *engine.MatchResult) *TenhouLog {
	rounds := make([]tenhouRound, len(result.Rounds))
	for i, out := range result.Rounds {
		rounds[i] = buildTenhouRound(out)
	}
	return &TenhouLog{Rule: rule, Names: names, Ranks: result.Ranks, Log: rounds}
}

// Marshal encodes the log as a single JSON document.
func (l *TenhouLog) Marshal() ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}
