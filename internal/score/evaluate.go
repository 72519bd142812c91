package score

import (
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"
)

// Detail is the full scoring breakdown for one winning hand, mirroring
// spec.md §3's score_context: {yakus, fu, fan, yakuman, score, points,
// title}. It is the single entry point the action/stage layer calls once a
// win is confirmed -- the teacher's callHuPoints equivalent, but with the
// yaku/fu bodies it only stubbed out.
type Detail struct {
	Yakus   []yaku.Result
	Fu      int
	Fan     int
	Yakuman int
	Points  Payout
}

// Input bundles everything Evaluate needs to score one win.
type Input struct {
	Concealed hand.Hand34 // 14-tile concealed hand (winning tile absorbed), red-5 normalized
	Melds     []meld.Meld
	WinTile   tile.Tile // red status preserved
	Decomp    hand.Decomposition // zero value if this is a chiitoitsu/kokushi win
	Wait      hand.WaitKind
	IsTsumo   bool
	IsDealer  bool
	IsChiitoitsu bool
	Situation yaku.Situation

	// RedFiveCount is the number of red-5 tiles anywhere in the 14-tile
	// hand (concealed + melds). Hand34 normalizes red status away, so the
	// caller supplies this from the original tile.Table/meld tiles.
	RedFiveCount int
}

// Evaluate runs the yaku catalog, computes fu, and resolves the final
// payout for one winning hand.
func Evaluate(in Input) Detail {
	ctx := &yaku.Context{
		Concealed: in.Concealed,
		Melds:     in.Melds,
		WinTile:   in.WinTile,
		Decomp:    in.Decomp,
		Wait:      in.Wait,
		Situation: in.Situation,
	}

	results := yaku.Evaluate(ctx)
	hasYakuman, yakumanMult := yaku.HasYakuman(results)
	fan := yaku.TotalFan(results)
	if !hasYakuman {
		fan += yaku.CountDora(ctx.Full34(), in.Situation.DoraIndicators)
		if in.Situation.Riichi {
			fan += yaku.CountDora(ctx.Full34(), in.Situation.UraDoraIndicators)
		}
		fan += in.RedFiveCount
	}

	var fu int
	switch {
	case hasYakuman:
		fu = 0
	case in.IsChiitoitsu:
		fu = FuChiitoitsu
	default:
		fu = Fu(FuInput{
			Decomp:    in.Decomp,
			Melds:     in.Melds,
			Wait:      in.Wait,
			WinIdx34:  in.WinTile.Normalize().Index34(),
			IsTsumo:   in.IsTsumo,
			IsMenzen:  ctx.IsMenzen(),
			RoundWind: in.Situation.RoundWind,
			SeatWind:  in.Situation.SeatWind,
		})
	}

	payout := Calculate(in.IsDealer, fu, fan, yakumanMult)

	return Detail{
		Yakus:   results,
		Fu:      fu,
		Fan:     fan,
		Yakuman: yakumanMult,
		Points:  payout,
	}
}
