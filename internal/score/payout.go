package score

// Payout is the three-way points a win resolves to: total paid on a ron
// (from the single discarder), or the two tsumo contributions (what a
// non-dealer and the dealer each pay). Only one of the pairs applies to any
// given win; the caller (action/stage layer) picks ron vs tsumo.
type Payout struct {
	Ron             int
	NonDealerTsumo  int // what each non-dealer pays on a dealer's or non-dealer's tsumo
	DealerTsumo     int // what the dealer pays on a non-dealer's tsumo (0 if winner is dealer)
	Title           string
}

// titles in ascending value order, per spec.md §4.4.
const (
	TitleNone    = ""
	TitleMangan  = "mangan"
	TitleHaneman = "haneman"
	TitleBaiman  = "baiman"
	TitleSanbaiman = "sanbaiman"
	TitleYakuman = "yakuman"
)

func roundUpTo100(x int) int { return (x + 99) / 100 * 100 }

// Calculate maps (isDealer, fu, fan, yakumanMultiplier) to a Payout, per
// spec.md §4.4: base = fu*2^(fan+2) capped at the mangan threshold (2000);
// dealer ron/tsumo multipliers 6/2, non-dealer 4/1/2; yakuman pays a fixed
// 8000*multiplier at the same multiplier schedule. honba and riichi sticks
// are NOT included here; the round engine adds 300/honba (ron) or 100/honba
// per payer (tsumo) and the riichi-stick pool on top.
func Calculate(isDealer bool, fu, fan, yakumanMult int) Payout {
	if yakumanMult > 0 {
		base := 8000 * yakumanMult
		return payoutFromBase(base, isDealer, TitleYakuman)
	}

	if fan >= 13 {
		return payoutFromBase(8000, isDealer, TitleYakuman)
	}

	title := TitleNone
	var base int
	switch {
	case fan >= 11:
		base = 6000
		title = TitleSanbaiman
	case fan >= 8:
		base = 4000
		title = TitleBaiman
	case fan >= 6:
		base = 3000
		title = TitleHaneman
	default:
		base = fu * (1 << uint(fan+2))
		if base > 2000 {
			base = 2000
			title = TitleMangan
		} else if fan >= 5 {
			base = 2000
			title = TitleMangan
		}
	}

	return payoutFromBase(base, isDealer, title)
}

func payoutFromBase(base int, isDealer bool, title string) Payout {
	if isDealer {
		return Payout{
			Ron:            roundUpTo100(base * 6),
			NonDealerTsumo: roundUpTo100(base * 2),
			Title:          title,
		}
	}
	return Payout{
		Ron:            roundUpTo100(base * 4),
		NonDealerTsumo: roundUpTo100(base * 1),
		DealerTsumo:    roundUpTo100(base * 2),
		Title:          title,
	}
}
