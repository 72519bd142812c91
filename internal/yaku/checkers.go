package yaku

import (
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
)

// -- situational yaku --

func checkRiichi(ctx *Context) Result {
	if ctx.Situation.Riichi && !ctx.Situation.DoubleRiichi {
		return Result{Name: Riichi, Han: 1}
	}
	return Result{}
}

func checkDoubleRiichi(ctx *Context) Result {
	if ctx.Situation.DoubleRiichi {
		return Result{Name: DoubleRiichi, Han: 2}
	}
	return Result{}
}

func checkIppatsu(ctx *Context) Result {
	if ctx.Situation.Ippatsu {
		return Result{Name: Ippatsu, Han: 1}
	}
	return Result{}
}

func checkMenzenTsumo(ctx *Context) Result {
	if ctx.IsMenzen() && ctx.Situation.IsTsumo {
		return Result{Name: MenzenTsumo, Han: 1}
	}
	return Result{}
}

func checkHaitei(ctx *Context) Result {
	if ctx.Situation.Haitei && ctx.Situation.IsTsumo {
		return Result{Name: Haitei, Han: 1}
	}
	return Result{}
}

func checkHoutei(ctx *Context) Result {
	if ctx.Situation.Houtei && !ctx.Situation.IsTsumo {
		return Result{Name: Houtei, Han: 1}
	}
	return Result{}
}

func checkRinshan(ctx *Context) Result {
	if ctx.Situation.Rinshan {
		return Result{Name: Rinshan, Han: 1}
	}
	return Result{}
}

func checkChankan(ctx *Context) Result {
	if ctx.Situation.Chankan {
		return Result{Name: Chankan, Han: 1}
	}
	return Result{}
}

func checkTenhou(ctx *Context) Result {
	if ctx.Situation.Tenhou {
		return Result{Name: Tenhou, Yakuman: 1}
	}
	return Result{}
}

func checkChiihou(ctx *Context) Result {
	if ctx.Situation.Chiihou {
		return Result{Name: Chiihou, Yakuman: 1}
	}
	return Result{}
}

// -- pattern yaku over the parsed decomposition --

// isPairYakuhai reports whether the pair tile would itself score yakuhai
// (dragon, or the seat/round wind), which disqualifies pinfu.
func isPairYakuhai(ctx *Context) bool {
	i := ctx.Decomp.Pair34
	if idxIsDragon(i) {
		return true
	}
	if i == windIdx(ctx.Situation.SeatWind) || i == windIdx(ctx.Situation.RoundWind) {
		return true
	}
	return false
}

func checkPinfu(ctx *Context) Result {
	if !hasStandardShape(ctx) || !ctx.IsMenzen() || len(ctx.Melds) != 0 {
		return Result{}
	}
	for _, s := range ctx.Decomp.Sets {
		if s.Kind != hand.Sequence {
			return Result{}
		}
	}
	if isPairYakuhai(ctx) {
		return Result{}
	}
	if ctx.Wait != hand.Ryanmen {
		return Result{}
	}
	return Result{Name: Pinfu, Han: 1}
}

func countDuplicateSequencePairs(ctx *Context) int {
	counts := map[[2]int]int{}
	for _, s := range ctx.Decomp.Sets {
		if s.Kind != hand.Sequence {
			continue
		}
		suit, low := sequenceKey(s)
		counts[[2]int{int(suit), low}]++
	}
	pairs := 0
	for _, n := range counts {
		pairs += n / 2
	}
	return pairs
}

func checkIipeikou(ctx *Context) Result {
	if !hasStandardShape(ctx) || !ctx.IsMenzen() || len(ctx.Melds) != 0 {
		return Result{}
	}
	if countDuplicateSequencePairs(ctx) >= 1 {
		return Result{Name: Iipeikou, Han: 1}
	}
	return Result{}
}

func checkRyanpeikou(ctx *Context) Result {
	if !hasStandardShape(ctx) || !ctx.IsMenzen() || len(ctx.Melds) != 0 {
		return Result{}
	}
	if countDuplicateSequencePairs(ctx) >= 2 {
		return Result{Name: Ryanpeikou, Han: 3}
	}
	return Result{}
}

func checkYakuhai(ctx *Context) Result {
	if !hasStandardShape(ctx) {
		return Result{}
	}
	han := 0
	for _, s := range ctx.AllSets() {
		if s.Kind != hand.Triplet {
			continue
		}
		idx := s.Indices34()[0]
		switch {
		case idxIsDragon(idx):
			han++
		default:
			if idx == windIdx(ctx.Situation.RoundWind) {
				han++
			}
			if idx == windIdx(ctx.Situation.SeatWind) {
				han++
			}
		}
	}
	if han > 0 {
		return Result{Name: Yakuhai, Han: han}
	}
	return Result{}
}

func checkTanyao(ctx *Context) Result {
	full := ctx.Full34()
	for i := 0; i < 34; i++ {
		if full[i] > 0 && idxIsTerminalOrHonor(i) {
			return Result{}
		}
	}
	return Result{Name: Tanyao, Han: 1}
}

func checkSanshoku(ctx *Context) Result {
	if !hasStandardShape(ctx) {
		return Result{}
	}
	present := map[int]uint8{} // low number -> bitmask of suits seen (1=man,2=pin,4=sou)
	for _, s := range ctx.AllSets() {
		if s.Kind != hand.Sequence {
			continue
		}
		var bit uint8
		switch s.Suit {
		case tile.Man:
			bit = 1
		case tile.Pin:
			bit = 2
		case tile.Sou:
			bit = 4
		default:
			continue
		}
		present[s.Low] |= bit
	}
	for _, mask := range present {
		if mask == 7 {
			return Result{Name: Sanshoku, Han: openAdjust(ctx, 2, 1)}
		}
	}
	return Result{}
}

func checkSanshokuDoukou(ctx *Context) Result {
	if !hasStandardShape(ctx) {
		return Result{}
	}
	present := map[int]uint8{}
	for _, s := range ctx.AllSets() {
		if s.Kind != hand.Triplet {
			continue
		}
		var bit uint8
		switch s.Suit {
		case tile.Man:
			bit = 1
		case tile.Pin:
			bit = 2
		case tile.Sou:
			bit = 4
		default:
			continue
		}
		present[s.Low] |= bit
	}
	for _, mask := range present {
		if mask == 7 {
			return Result{Name: SanshokuDoukou, Han: 2}
		}
	}
	return Result{}
}

func checkIttsu(ctx *Context) Result {
	if !hasStandardShape(ctx) {
		return Result{}
	}
	bySuit := map[tile.Suit]uint16{}
	for _, s := range ctx.AllSets() {
		if s.Kind != hand.Sequence {
			continue
		}
		bySuit[s.Suit] |= 1 << uint(s.Low)
	}
	need := uint16(1<<1 | 1<<4 | 1<<7)
	for _, mask := range bySuit {
		if mask&need == need {
			return Result{Name: Ittsu, Han: openAdjust(ctx, 2, 1)}
		}
	}
	return Result{}
}

func allGroupsHaveTerminalOrHonor(ctx *Context) bool {
	if !idxIsTerminalOrHonor(ctx.Decomp.Pair34) {
		return false
	}
	for _, s := range ctx.AllSets() {
		if !setHasTerminalOrHonor(s) {
			return false
		}
	}
	return true
}

func anyGroupHasHonor(ctx *Context) bool {
	if idxIsHonor(ctx.Decomp.Pair34) {
		return true
	}
	for _, s := range ctx.AllSets() {
		if setHasHonor(s) {
			return true
		}
	}
	return false
}

func checkChanta(ctx *Context) Result {
	if !hasStandardShape(ctx) || !allGroupsHaveTerminalOrHonor(ctx) {
		return Result{}
	}
	return Result{Name: Chanta, Han: openAdjust(ctx, 2, 1)}
}

func checkJunchan(ctx *Context) Result {
	if !hasStandardShape(ctx) || !allGroupsHaveTerminalOrHonor(ctx) || anyGroupHasHonor(ctx) {
		return Result{}
	}
	return Result{Name: Junchan, Han: openAdjust(ctx, 3, 2)}
}

func checkHonroutou(ctx *Context) Result {
	if !hasStandardShape(ctx) {
		return Result{}
	}
	full := ctx.Full34()
	for i := 0; i < 34; i++ {
		if full[i] > 0 && !idxIsTerminalOrHonor(i) {
			return Result{}
		}
	}
	return Result{Name: Honroutou, Han: 2}
}

func checkChinroutou(ctx *Context) Result {
	full := ctx.Full34()
	for i := 0; i < 34; i++ {
		if full[i] == 0 {
			continue
		}
		if idxIsHonor(i) || !idxIsTerminal(i) {
			return Result{}
		}
	}
	return Result{Name: Chinroutou, Yakuman: 1}
}

func checkHonitsu(ctx *Context) Result {
	suits, honors := suitsUsed(ctx.Full34())
	if len(suits) != 1 {
		return Result{}
	}
	if !honors {
		return Result{} // that's chinitsu
	}
	return Result{Name: Honitsu, Han: openAdjust(ctx, 3, 2)}
}

func checkChinitsu(ctx *Context) Result {
	suits, honors := suitsUsed(ctx.Full34())
	if len(suits) != 1 || honors {
		return Result{}
	}
	return Result{Name: Chinitsu, Han: openAdjust(ctx, 6, 5)}
}

func checkToitoi(ctx *Context) Result {
	if !hasStandardShape(ctx) {
		return Result{}
	}
	for _, s := range ctx.AllSets() {
		if s.Kind != hand.Triplet {
			return Result{}
		}
	}
	return Result{Name: Toitoi, Han: 2}
}

// concealedTripletCount counts ankou: triplets from the concealed
// decomposition plus ankan melds. A triplet completed by ron on a shanpon
// wait is demoted to counting as open, per spec.md §4.3.
func concealedTripletCount(ctx *Context) int {
	n := 0
	winIdx := ctx.winIdx()
	ronShanpon := !ctx.Situation.IsTsumo && ctx.Wait == hand.Shanpon
	for _, s := range ctx.Decomp.Sets {
		if s.Kind != hand.Triplet {
			continue
		}
		if ronShanpon && s.Indices34()[0] == winIdx {
			continue
		}
		n++
	}
	for _, m := range ctx.Melds {
		if m.Kind == meld.Ankan {
			n++
		}
	}
	return n
}

func checkSanankou(ctx *Context) Result {
	if concealedTripletCount(ctx) >= 3 {
		return Result{Name: Sanankou, Han: 2}
	}
	return Result{}
}

func checkSuuankou(ctx *Context) Result {
	if concealedTripletCount(ctx) == 4 && ctx.Wait != hand.Tanki {
		return Result{Name: Suuankou, Yakuman: 1}
	}
	return Result{}
}

func checkSuuankouTanki(ctx *Context) Result {
	if concealedTripletCount(ctx) == 4 && ctx.Wait == hand.Tanki {
		return Result{Name: SuuankouTanki, Yakuman: 2}
	}
	return Result{}
}

func kanMeldCount(ctx *Context) int {
	n := 0
	for _, m := range ctx.Melds {
		if m.Kind.IsKan() {
			n++
		}
	}
	return n
}

func checkSankantsu(ctx *Context) Result {
	if kanMeldCount(ctx) == 3 {
		return Result{Name: Sankantsu, Han: 2}
	}
	return Result{}
}

func checkSuukantsu(ctx *Context) Result {
	if kanMeldCount(ctx) == 4 {
		return Result{Name: Suukantsu, Yakuman: 1}
	}
	return Result{}
}

func checkChiitoitsu(ctx *Context) Result {
	if len(ctx.Melds) != 0 {
		return Result{}
	}
	if hand.IsChiitoitsu(ctx.Concealed) {
		return Result{Name: Chiitoitsu, Han: 2}
	}
	return Result{}
}

func preWinHand(ctx *Context) hand.Hand34 {
	h := ctx.Concealed
	h[ctx.winIdx()]--
	return h
}

func checkKokushi(ctx *Context) Result {
	if !hand.IsKokushi(ctx.Concealed) {
		return Result{}
	}
	_, thirteenWay := hand.KokushiWaits(preWinHand(ctx))
	if thirteenWay {
		return Result{}
	}
	return Result{Name: Kokushi, Yakuman: 1}
}

func checkKokushi13(ctx *Context) Result {
	if !hand.IsKokushi(ctx.Concealed) {
		return Result{}
	}
	_, thirteenWay := hand.KokushiWaits(preWinHand(ctx))
	if !thirteenWay {
		return Result{}
	}
	return Result{Name: Kokushi13, Yakuman: 2}
}

func checkShousangen(ctx *Context) Result {
	dragonTriplets := 0
	for _, s := range ctx.AllSets() {
		if s.Kind == hand.Triplet && idxIsDragon(s.Indices34()[0]) {
			dragonTriplets++
		}
	}
	if dragonTriplets == 2 && idxIsDragon(ctx.Decomp.Pair34) {
		return Result{Name: Shousangen, Han: 2}
	}
	return Result{}
}

func checkDaisangen(ctx *Context) Result {
	dragonTriplets := 0
	for _, s := range ctx.AllSets() {
		if s.Kind == hand.Triplet && idxIsDragon(s.Indices34()[0]) {
			dragonTriplets++
		}
	}
	if dragonTriplets == 3 {
		return Result{Name: Daisangen, Yakuman: 1}
	}
	return Result{}
}

func checkShousuushii(ctx *Context) Result {
	windTriplets := 0
	for _, s := range ctx.AllSets() {
		if s.Kind == hand.Triplet && idxIsWind(s.Indices34()[0]) {
			windTriplets++
		}
	}
	if windTriplets == 3 && idxIsWind(ctx.Decomp.Pair34) {
		return Result{Name: Shousuushii, Yakuman: 1}
	}
	return Result{}
}

func checkDaisuushii(ctx *Context) Result {
	windTriplets := 0
	for _, s := range ctx.AllSets() {
		if s.Kind == hand.Triplet && idxIsWind(s.Indices34()[0]) {
			windTriplets++
		}
	}
	if windTriplets == 4 {
		return Result{Name: Daisuushii, Yakuman: 2}
	}
	return Result{}
}

var greenIdx = map[int]bool{
	18 + 1: true, // 2s
	18 + 2: true, // 3s
	18 + 3: true, // 4s
	18 + 5: true, // 6s
	18 + 7: true, // 8s
	32:     true, // green dragon
}

func checkRyuuiisou(ctx *Context) Result {
	full := ctx.Full34()
	for i := 0; i < 34; i++ {
		if full[i] > 0 && !greenIdx[i] {
			return Result{}
		}
	}
	return Result{Name: Ryuuiisou, Yakuman: 1}
}

func checkTsuuiisou(ctx *Context) Result {
	full := ctx.Full34()
	for i := 0; i < 34; i++ {
		if full[i] > 0 && !idxIsHonor(i) {
			return Result{}
		}
	}
	return Result{Name: Tsuuiisou, Yakuman: 1}
}

// chuurenSuit returns the lone numbered suit used by the hand, or false if
// the hand spans more than one suit or includes any honor.
func chuurenSuit(full hand.Hand34) (tile.Suit, bool) {
	suits, honors := suitsUsed(full)
	if honors || len(suits) != 1 {
		return 0, false
	}
	for s := range suits {
		return s, true
	}
	return 0, false
}

func checkChuurenpoutou(ctx *Context) Result {
	if len(ctx.Melds) != 0 {
		return Result{}
	}
	full := ctx.Full34()
	suit, ok := chuurenSuit(full)
	if !ok {
		return Result{}
	}
	base := tile.Tile{Suit: suit, Number: 1}.Index34()
	counts := [9]int{}
	total := 0
	for n := 0; n < 9; n++ {
		counts[n] = full[base+n]
		total += counts[n]
	}
	if total != 14 || counts[0] < 3 || counts[8] < 3 {
		return Result{}
	}
	for n := 1; n < 8; n++ {
		if counts[n] < 1 {
			return Result{}
		}
	}
	if isJunseiPattern(counts, preWinChuurenCounts(ctx, suit)) {
		return Result{}
	}
	return Result{Name: Chuurenpoutou, Yakuman: 1}
}

func checkJunseiChuuren(ctx *Context) Result {
	if len(ctx.Melds) != 0 {
		return Result{}
	}
	full := ctx.Full34()
	suit, ok := chuurenSuit(full)
	if !ok {
		return Result{}
	}
	base := tile.Tile{Suit: suit, Number: 1}.Index34()
	counts := [9]int{}
	total := 0
	for n := 0; n < 9; n++ {
		counts[n] = full[base+n]
		total += counts[n]
	}
	if total != 14 || counts[0] < 3 || counts[8] < 3 {
		return Result{}
	}
	for n := 1; n < 8; n++ {
		if counts[n] < 1 {
			return Result{}
		}
	}
	if isJunseiPattern(counts, preWinChuurenCounts(ctx, suit)) {
		return Result{Name: JunseiChuuren, Yakuman: 2}
	}
	return Result{}
}

// preWinChuurenCounts returns the per-number counts of the 13-tile hand
// before the winning tile was absorbed, for the same suit.
func preWinChuurenCounts(ctx *Context, suit tile.Suit) [9]int {
	pre := preWinHand(ctx)
	base := tile.Tile{Suit: suit, Number: 1}.Index34()
	var counts [9]int
	for n := 0; n < 9; n++ {
		counts[n] = pre[base+n]
	}
	return counts
}

// isJunseiPattern reports whether the pre-win 13-tile counts already match
// the pure 3-1-1-1-1-1-1-1-3 template, meaning any of the nine tiles would
// complete it (the nine-sided wait).
func isJunseiPattern(_ [9]int, pre [9]int) bool {
	want := [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}
	return pre == want
}
