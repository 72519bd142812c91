package mjai

import (
	"fmt"

	"mahjongcore/internal/action"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/tile"
)

// Message is one line of the mjai wire protocol. A single loosely-typed
// struct (rather than one Go type per mjai message) matches the dialect
// itself -- mjai's own reference client treats every line as a JSON object
// whose field set depends on `type` -- and keeps the encode/decode surface
// small enough to review against spec.md §6 in one place.
type Message struct {
	Type string `json:"type"`

	// hello/join
	Name string `json:"name,omitempty"`
	Room string `json:"room,omitempty"`

	// start_kyoku
	Bakaze     string     `json:"bakaze,omitempty"`
	Kyoku      int        `json:"kyoku,omitempty"`
	Honba      int        `json:"honba,omitempty"`
	Kyotaku    int        `json:"kyotaku,omitempty"`
	Oya        int        `json:"oya,omitempty"`
	DoraMarker string     `json:"dora_marker,omitempty"`
	Scores     []int      `json:"scores,omitempty"`
	Tehais     [][]string `json:"tehais,omitempty"`
	Names      []string   `json:"names,omitempty"`

	// tsumo/dahai/chi/pon/kakan/daiminkan/ankan/reach/dora/hora
	Actor     int      `json:"actor"`
	Target    int      `json:"target,omitempty"`
	Pai       string   `json:"pai,omitempty"`
	Consumed  []string `json:"consumed,omitempty"`
	Tsumogiri bool     `json:"tsumogiri,omitempty"`

	// hora/ryukyoku/end_kyoku
	Deltas  []int    `json:"deltas,omitempty"`
	Ura     []string `json:"ura_markers,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Tenpais []bool   `json:"tenpais,omitempty"`

	PossibleActions []Message `json:"possible_actions,omitempty"`
}

// Protocol message types per spec.md §6.
const (
	TypeHello         = "hello"
	TypeJoin          = "join"
	TypeStartGame     = "start_game"
	TypeStartKyoku    = "start_kyoku"
	TypeTsumo         = "tsumo"
	TypeDahai         = "dahai"
	TypeChi           = "chi"
	TypePon           = "pon"
	TypeKakan         = "kakan"
	TypeDaiminkan     = "daiminkan"
	TypeAnkan         = "ankan"
	TypeDora          = "dora"
	TypeReach         = "reach"
	TypeReachAccepted = "reach_accepted"
	TypeHora          = "hora"
	TypeRyukyoku      = "ryukyoku"
	TypeEndKyoku      = "end_kyoku"
	TypeEndGame       = "end_game"
	TypeNone          = "none"
)

// EventToMessage translates one applied eventschema.Event into the message
// a client sitting at `forSeat` should see, hiding any tile identity that
// seat is not privileged to know (the other three hands' draws/concealed
// tiles render as the "?" sentinel, matching real mjai servers).
func EventToMessage(ev eventschema.Event, forSeat int) (Message, bool) {
	switch ev.Type {
	case eventschema.EvNew:
		msg := newKyokuMessage(ev)
		for seat := range msg.Tehais {
			if seat != forSeat {
				for i := range msg.Tehais[seat] {
					msg.Tehais[seat][i] = ToMjaiUnknown()
				}
			}
		}
		return msg, true

	case eventschema.EvDeal:
		pai := ToMjaiUnknown()
		if ev.Seat == forSeat {
			pai = ToMjai(ev.Tile)
		}
		return Message{Type: TypeTsumo, Actor: ev.Seat, Pai: pai}, true

	case eventschema.EvDiscard:
		return Message{
			Type:      TypeDahai,
			Actor:     ev.Seat,
			Pai:       ToMjai(ev.Tile),
			Tsumogiri: ev.IsDrawn,
		}, true

	case eventschema.EvMeld:
		return meldMessage(ev), true

	case eventschema.EvNukidora:
		return Message{Type: "nukidora", Actor: ev.Seat, Pai: ToMjai(ev.Tile)}, true

	case eventschema.EvDora:
		marker := ""
		if len(ev.Doras) > 0 {
			marker = ToMjai(ev.Doras[len(ev.Doras)-1])
		}
		return Message{Type: TypeDora, DoraMarker: marker}, true

	case eventschema.EvWin:
		return winMessage(ev), true

	case eventschema.EvDraw:
		return drawMessage(ev), true

	case eventschema.EvEnd:
		return Message{Type: TypeEndGame, Scores: ev.Scores[:]}, true

	default:
		return Message{}, false
	}
}

func newKyokuMessage(ev eventschema.Event) Message {
	tehais := make([][]string, 4)
	for seat := 0; seat < 4; seat++ {
		tehais[seat] = ToMjaiSlice(ev.Hands[seat])
	}
	marker := ""
	if len(ev.Doras) > 0 {
		marker = ToMjai(ev.Doras[0])
	}
	return Message{
		Type:       TypeStartKyoku,
		Bakaze:     "E",
		Kyoku:      ev.Round,
		Honba:      ev.Honba,
		Kyotaku:    ev.Sticks,
		Oya:        ev.Dealer,
		DoraMarker: marker,
		Scores:     ev.Scores[:],
		Tehais:     tehais,
		Names:      ev.Names[:],
	}
}

func meldMessage(ev eventschema.Event) Message {
	t := map[string]string{"chi": TypeChi, "pon": TypePon, "kakan": TypeKakan, "minkan": TypeDaiminkan, "ankan": TypeAnkan}[ev.MeldType]
	if t == "" {
		t = TypePon
	}
	return Message{
		Type:     t,
		Actor:    ev.Seat,
		Pai:      ToMjai(ev.Tile),
		Consumed: ToMjaiSlice(ev.Consumed),
	}
}

func winMessage(ev eventschema.Event) Message {
	deltas := ev.DeltaScores
	actor := 0
	pai := ""
	if len(ev.Contexts) > 0 {
		actor = ev.Contexts[0].Seat
		pai = ToMjai(ev.Contexts[0].WinningTile)
	}
	return Message{
		Type:    TypeHora,
		Actor:   actor,
		Target:  actor,
		Pai:     pai,
		Deltas:  deltas[:],
		Ura:     ToMjaiSlice(ev.UraDoras),
		Scores:  ev.DeltaScores[:],
	}
}

func drawMessage(ev eventschema.Event) Message {
	return Message{
		Type:    TypeRyukyoku,
		Reason:  ev.DrawType,
		Deltas:  ev.NagashimanganScores[:],
		Tenpais: ev.TenpaiMask[:],
	}
}

// ActionToMessage renders one legal action.Option as a possible_actions
// entry, the shape the client must echo back (with any client-chosen
// fields such as which tile to discard) to accept it.
func ActionToMessage(opt action.Option, actor int) Message {
	switch opt.Kind {
	case action.Discard:
		return Message{Type: TypeDahai, Actor: actor}
	case action.Riichi:
		if len(opt.Tiles) == 1 {
			return Message{Type: TypeDahai, Actor: actor, Pai: ToMjai(opt.Tiles[0])}
		}
		return Message{Type: TypeReach, Actor: actor}
	case action.Tsumo:
		return Message{Type: TypeHora, Actor: actor, Target: actor, Pai: ToMjai(opt.Tiles[0])}
	case action.Ron:
		return Message{Type: TypeHora, Actor: actor, Pai: ToMjai(opt.Tiles[0])}
	case action.Ankan:
		return Message{Type: TypeAnkan, Actor: actor, Consumed: ToMjaiSlice(opt.Tiles)}
	case action.Kakan:
		return Message{Type: TypeKakan, Actor: actor, Pai: ToMjai(opt.Tiles[0])}
	case action.Chi:
		return Message{Type: TypeChi, Actor: actor, Consumed: ToMjaiSlice(opt.Tiles)}
	case action.Pon:
		return Message{Type: TypePon, Actor: actor, Consumed: ToMjaiSlice(opt.Tiles)}
	case action.Minkan:
		return Message{Type: TypeDaiminkan, Actor: actor, Consumed: ToMjaiSlice(opt.Tiles)}
	case action.Kyushukyuhai:
		return Message{Type: "kyushukyuhai", Actor: actor}
	case action.Nukidora:
		return Message{Type: "nukidora", Actor: actor, Pai: ToMjai(opt.Tiles[0])}
	default:
		return Message{Type: TypeNone, Actor: actor}
	}
}

// MessageToOption resolves a client's reply against the offered opts,
// matching by type and, where the option carries tiles, by the pai/
// consumed fields the client echoed back.
func MessageToOption(m Message, opts []action.Option) (action.Option, error) {
	switch m.Type {
	case TypeNone:
		return action.Option{Kind: action.Discard}, nil

	case TypeDahai:
		pai, err := FromMjai(m.Pai)
		if err != nil {
			return action.Option{}, fmt.Errorf("mjai: dahai: %w", err)
		}
		for _, o := range opts {
			if o.Kind == action.Discard {
				return action.Option{Kind: action.Discard, Tiles: []tile.Tile{pai}}, nil
			}
			if o.Kind == action.Riichi && len(o.Tiles) == 1 && tilesEqual(o.Tiles[0], pai) {
				return o, nil
			}
		}
		return action.Option{Kind: action.Discard, Tiles: []tile.Tile{pai}}, nil

	case TypeReach:
		return findByKind(opts, action.Riichi, nil)

	case TypeHora:
		if hasKind(opts, action.Tsumo) {
			return findByKind(opts, action.Tsumo, nil)
		}
		return findByKind(opts, action.Ron, nil)

	case TypeChi:
		return findByConsumed(opts, action.Chi, m.Consumed)

	case TypePon:
		return findByConsumed(opts, action.Pon, m.Consumed)

	case TypeDaiminkan:
		return findByConsumed(opts, action.Minkan, m.Consumed)

	case TypeAnkan:
		return findByConsumed(opts, action.Ankan, m.Consumed)

	case TypeKakan:
		return findByKind(opts, action.Kakan, nil)

	case "kyushukyuhai":
		return findByKind(opts, action.Kyushukyuhai, nil)

	case "nukidora":
		return findByKind(opts, action.Nukidora, nil)

	default:
		return action.Option{}, fmt.Errorf("mjai: unrecognized reply type %q", m.Type)
	}
}

func tilesEqual(a, b tile.Tile) bool { return a.Suit == b.Suit && a.Number == b.Number }

func hasKind(opts []action.Option, k action.Kind) bool {
	for _, o := range opts {
		if o.Kind == k {
			return true
		}
	}
	return false
}

func findByKind(opts []action.Option, k action.Kind, _ []string) (action.Option, error) {
	for _, o := range opts {
		if o.Kind == k {
			return o, nil
		}
	}
	return action.Option{}, fmt.Errorf("mjai: no offered option of kind %d", k)
}

func findByConsumed(opts []action.Option, k action.Kind, consumed []string) (action.Option, error) {
	want, err := FromMjaiSlice(consumed)
	if err != nil {
		return action.Option{}, err
	}
	for _, o := range opts {
		if o.Kind != k || len(o.Tiles) != len(want) {
			continue
		}
		if sameMultiset(o.Tiles, want) {
			return o, nil
		}
	}
	if len(opts) > 0 {
		for _, o := range opts {
			if o.Kind == k {
				return o, nil
			}
		}
	}
	return action.Option{}, fmt.Errorf("mjai: no offered option of kind %d matching consumed tiles", k)
}

func sameMultiset(a, b []tile.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ta := range a {
		found := false
		for i, tb := range b {
			if used[i] {
				continue
			}
			if tilesEqual(ta.Normalize(), tb.Normalize()) && ta.IsRed() == tb.IsRed() {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
