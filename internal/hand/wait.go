package hand

// WaitKind classifies how the winning tile completed the hand, used by
// the fu calculator (spec.md §4.3 wait bonuses) and by pinfu (which
// requires Ryanmen).
type WaitKind int

const (
	Ryanmen WaitKind = iota
	Kanchan
	Penchan
	Tanki
	Shanpon
)

// ClassifyWait determines the wait shape of a decomposition given the
// winning tile's normalized 34-index. It assumes d is a valid standard
// decomposition of the 14-tile hand (pair + concealed sets) that the
// winning tile participates in exactly one group of.
func ClassifyWait(d Decomposition, winIdx34 int) WaitKind {
	if d.Pair34 == winIdx34 {
		return Tanki
	}
	for _, s := range d.Sets {
		if !s.Contains(winIdx34) {
			continue
		}
		if s.Kind == Triplet {
			return Shanpon
		}
		low := lowIndex(s)
		switch winIdx34 - low {
		case 0: // winning tile is the low end
			if low%9 == 6 { // suit-relative number 7: 7-8-9 shape, edge wait
				return Penchan
			}
			return Ryanmen
		case 2: // winning tile is the high end
			if low%9 == 0 { // suit-relative number 1: 1-2-3 shape, edge wait
				return Penchan
			}
			return Ryanmen
		default: // middle tile
			return Kanchan
		}
	}
	return Ryanmen
}

func lowIndex(s Set) int {
	idxs := s.Indices34()
	return idxs[0]
}
