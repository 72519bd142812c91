// Package yaku enumerates winning-pattern yaku over a parsed hand, per
// spec.md §4.3. The registry shape (an ordered slice of named checkers,
// yakuman-first, each a (han, yakumanMultiplier) predicate over a shared
// context) is grounded on the teacher's
// runtime/game/engines/mahjong/yaku.go YakuChecker/yakuCheckerFunc/
// RiichiMahjong4pYakuRegistry, with real predicate bodies replacing the
// teacher's `return 0, 0` stubs.
package yaku

import (
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
)

// Wind identifies one of the four seat/round winds.
type Wind int

const (
	East Wind = iota
	South
	West
	North
)

func (w Wind) tileNumber() int { return int(w) + tile.East }

// Situation carries the table state a yaku predicate needs beyond the hand
// shape itself: wind context, situational flags, and revealed dora.
type Situation struct {
	RoundWind Wind
	SeatWind  Wind
	IsDealer  bool

	Riichi       bool
	DoubleRiichi bool
	Ippatsu      bool
	IsTsumo      bool

	Haitei  bool // tsumo on the last live wall tile
	Houtei  bool // ron on the last discard
	Rinshan bool // tsumo on a kan replacement tile
	Chankan bool // ron robbing another seat's kakan

	Tenhou  bool // dealer wins on their first, uncalled draw
	Chiihou bool // non-dealer wins on their first draw, no calls before it

	DoraIndicators    []tile.Tile
	UraDoraIndicators []tile.Tile // only scored when Riichi is set
}

// Context is everything a yaku predicate needs: the winning 14-tile hand
// (concealed portion + melds), which decomposition was chosen, and the wind
// and situational context of the win.
type Context struct {
	Concealed hand.Hand34 // concealed tiles only, including winning tile if tsumo/ron absorbed it
	Melds     []meld.Meld
	WinTile   tile.Tile // the winning tile, red status preserved
	Decomp    hand.Decomposition
	Wait      hand.WaitKind
	Situation Situation
}

func (c *Context) winIdx() int { return c.WinTile.Normalize().Index34() }

// IsMenzen reports a concealed hand: no melds, or melds that are all ankan.
func (c *Context) IsMenzen() bool {
	for _, m := range c.Melds {
		if !m.Kind.IsConcealed() {
			return false
		}
	}
	return true
}

// Full34 returns the complete 34-slot tile count of the 14-tile hand
// (concealed tiles plus every meld's members).
func (c *Context) Full34() hand.Hand34 {
	h := c.Concealed
	for _, m := range c.Melds {
		for _, t := range m.Tiles {
			h[t.Normalize().Index34()]++
		}
	}
	return h
}

// AllSets returns every set in the hand: the concealed decomposition's sets
// plus one synthesized Set per meld (Chi -> Sequence, everything else ->
// Triplet), so pattern yaku can treat concealed and open groups uniformly.
func (c *Context) AllSets() []hand.Set {
	out := append([]hand.Set(nil), c.Decomp.Sets...)
	for _, m := range c.Melds {
		low := tile.FromIndex34(m.Low34())
		if m.Kind == meld.Chi {
			out = append(out, hand.Set{Kind: hand.Sequence, Suit: low.Suit, Low: low.Number})
		} else {
			out = append(out, hand.Set{Kind: hand.Triplet, Suit: low.Suit, Low: low.Number})
		}
	}
	return out
}

// Name identifies a yaku for display and for the §9 exclusivity rules.
type Name string

const (
	Riichi          Name = "riichi"
	DoubleRiichi    Name = "double_riichi"
	Ippatsu         Name = "ippatsu"
	MenzenTsumo     Name = "menzen_tsumo"
	Pinfu           Name = "pinfu"
	Iipeikou        Name = "iipeikou"
	Ryanpeikou      Name = "ryanpeikou"
	Yakuhai         Name = "yakuhai"
	Tanyao          Name = "tanyao"
	Sanshoku        Name = "sanshoku_doujun"
	SanshokuDoukou  Name = "sanshoku_doukou"
	Ittsu           Name = "ikkitsuukan"
	Chanta          Name = "chanta"
	Junchan         Name = "junchan"
	Honroutou       Name = "honroutou"
	Chinroutou      Name = "chinroutou"
	Honitsu         Name = "honitsu"
	Chinitsu        Name = "chinitsu"
	Toitoi          Name = "toitoi"
	Sanankou        Name = "sanankou"
	Sankantsu       Name = "sankantsu"
	Chiitoitsu      Name = "chiitoitsu"
	Haitei          Name = "haitei"
	Houtei          Name = "houtei"
	Rinshan         Name = "rinshan"
	Chankan         Name = "chankan"
	Tenhou          Name = "tenhou"
	Chiihou         Name = "chiihou"
	Shousangen      Name = "shousangen"
	Daisangen       Name = "daisangen"
	Shousuushii     Name = "shousuushii"
	Daisuushii      Name = "daisuushii"
	Ryuuiisou       Name = "ryuuiisou"
	Tsuuiisou       Name = "tsuuiisou"
	Suuankou        Name = "suuankou"
	SuuankouTanki   Name = "suuankou_tanki"
	Suukantsu       Name = "suukantsu"
	Chuurenpoutou   Name = "chuurenpoutou"
	JunseiChuuren   Name = "junsei_chuurenpoutou"
	Kokushi         Name = "kokushi"
	Kokushi13       Name = "kokushi_13"
)

// Result is one realized yaku: its fan contribution, or a yakuman multiple.
type Result struct {
	Name     Name
	Han      int
	Yakuman  int // multiple of the yakuman base score; 0 if not a yakuman
}

type checker struct {
	name    Name
	check   func(ctx *Context) Result
	excludes []Name // lower-ranked yaku this one supersedes when both would fire
}

// exclusivePairs lists (lower, higher) yaku where only the higher scores if
// both predicates are true, per spec.md §4.3.
var exclusivePairs = map[Name]Name{
	Iipeikou:      Ryanpeikou,
	Chanta:        Junchan,
	Honroutou:     Chinroutou,
	Honitsu:       Chinitsu,
	Sanankou:      Suuankou,
	Suuankou:      SuuankouTanki,
	Sankantsu:     Suukantsu,
	Shousuushii:   Daisuushii,
	Chuurenpoutou: JunseiChuuren,
	Kokushi:       Kokushi13,
}

// registry is ordered yakuman-first, mirroring the teacher's registry so a
// reader scanning top-to-bottom sees the highest-value hands checked first.
var registry = []checker{
	{name: SuuankouTanki, check: checkSuuankouTanki},
	{name: Suuankou, check: checkSuuankou},
	{name: Daisuushii, check: checkDaisuushii},
	{name: Shousuushii, check: checkShousuushii},
	{name: Daisangen, check: checkDaisangen},
	{name: Shousangen, check: checkShousangen},
	{name: Tsuuiisou, check: checkTsuuiisou},
	{name: Ryuuiisou, check: checkRyuuiisou},
	{name: Chinroutou, check: checkChinroutou},
	{name: Suukantsu, check: checkSuukantsu},
	{name: JunseiChuuren, check: checkJunseiChuuren},
	{name: Chuurenpoutou, check: checkChuurenpoutou},
	{name: Kokushi13, check: checkKokushi13},
	{name: Kokushi, check: checkKokushi},
	{name: Tenhou, check: checkTenhou},
	{name: Chiihou, check: checkChiihou},

	{name: Riichi, check: checkRiichi},
	{name: DoubleRiichi, check: checkDoubleRiichi},
	{name: Ippatsu, check: checkIppatsu},
	{name: MenzenTsumo, check: checkMenzenTsumo},
	{name: Haitei, check: checkHaitei},
	{name: Houtei, check: checkHoutei},
	{name: Rinshan, check: checkRinshan},
	{name: Chankan, check: checkChankan},

	{name: Pinfu, check: checkPinfu},
	{name: Ryanpeikou, check: checkRyanpeikou},
	{name: Iipeikou, check: checkIipeikou},
	{name: Yakuhai, check: checkYakuhai},
	{name: Tanyao, check: checkTanyao},
	{name: Sanshoku, check: checkSanshoku},
	{name: SanshokuDoukou, check: checkSanshokuDoukou},
	{name: Ittsu, check: checkIttsu},
	{name: Junchan, check: checkJunchan},
	{name: Chanta, check: checkChanta},
	{name: Honroutou, check: checkHonroutou},
	{name: Chinitsu, check: checkChinitsu},
	{name: Honitsu, check: checkHonitsu},
	{name: Toitoi, check: checkToitoi},
	{name: Sankantsu, check: checkSankantsu},
	{name: Sanankou, check: checkSanankou},
	{name: Chiitoitsu, check: checkChiitoitsu},
}

// Evaluate runs every checker and applies the §4.3 combination rules:
// yakuman presence discards all non-yakuman yaku, and each exclusive pair
// keeps only the higher-ranked member.
func Evaluate(ctx *Context) []Result {
	hits := make(map[Name]Result, 8)
	for _, c := range registry {
		r := c.check(ctx)
		if r.Han > 0 || r.Yakuman > 0 {
			hits[c.name] = r
		}
	}

	anyYakuman := false
	for _, r := range hits {
		if r.Yakuman > 0 {
			anyYakuman = true
			break
		}
	}
	if anyYakuman {
		for name, r := range hits {
			if r.Yakuman == 0 {
				delete(hits, name)
			}
		}
	}

	for lower, higher := range exclusivePairs {
		if _, hasHigher := hits[higher]; hasHigher {
			delete(hits, lower)
		}
	}

	out := make([]Result, 0, len(hits))
	for _, c := range registry {
		if r, ok := hits[c.name]; ok {
			out = append(out, r)
		}
	}
	return out
}

// TotalFan sums han across results, treating yakuman specially (callers
// check HasYakuman first and route to the fixed yakuman payout instead).
func TotalFan(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.Han
	}
	return total
}

// HasYakuman reports whether any result is a yakuman, and the summed
// multiplier (counted yakuman, e.g. daisuushii=2, stack additively).
func HasYakuman(results []Result) (bool, int) {
	mult := 0
	for _, r := range results {
		mult += r.Yakuman
	}
	return mult > 0, mult
}

// CountDora counts how many hand tiles match a (normalized) dora-indicator
// successor, per spec.md §6's indicator-to-dora-tile rule.
func CountDora(full hand.Hand34, indicators []tile.Tile) int {
	n := 0
	for _, ind := range indicators {
		doraIdx := successorIdx(ind.Normalize().Index34())
		n += full[doraIdx]
	}
	return n
}

func successorIdx(idx int) int {
	switch {
	case idx < 9:
		return (idx+1)%9 + 0
	case idx < 18:
		return (idx-9+1)%9 + 9
	case idx < 27:
		return (idx-18+1)%9 + 18
	case idx < 31: // winds cycle E->S->W->N->E
		return (idx-27+1)%4 + 27
	default: // dragons cycle white->green->red->white
		return (idx-31+1)%3 + 31
	}
}
