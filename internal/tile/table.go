package tile

// Table is a dense mapping tile -> count over the 34 distinct tile
// identities plus 3 red-5 slots (one per suit). The invariant
// count[0] <= count[5] per suit is maintained automatically: incrementing
// or decrementing a red-5 also increments/decrements the corresponding
// plain 5, per spec.md §3/§4.1.
type Table struct {
	counts [34]int
	red    [3]int // red-5 count, indexed by Suit (Man=0, Pin=1, Sou=2)
}

// NewTable builds a Table from a slice of concrete tiles (e.g. a dealt
// hand), honoring IsRed on each.
func NewTable(tiles []Tile) *Table {
	t := &Table{}
	for _, tl := range tiles {
		t.Add(tl)
	}
	return t
}

// Add increments the count for one instance of tile.
func (t *Table) Add(tl Tile) {
	idx := tl.Normalize().Index34()
	t.counts[idx]++
	if tl.IsRed() {
		t.red[tl.Suit]++
	}
}

// Remove decrements the count for one instance of tile. Returns false if
// no such tile was present (a caller bug, not a user-facing condition).
func (t *Table) Remove(tl Tile) bool {
	idx := tl.Normalize().Index34()
	if t.counts[idx] <= 0 {
		return false
	}
	if tl.IsRed() && t.red[tl.Suit] <= 0 {
		return false
	}
	if !tl.IsRed() && tl.IsSuit() && tl.Number == 5 && t.counts[idx] <= t.red[tl.Suit] {
		return false // only red 5s are left
	}
	t.counts[idx]--
	if tl.IsRed() {
		t.red[tl.Suit]--
	}
	return true
}

// Count34 returns the count at a normalized 34-index.
func (t *Table) Count34(idx int) int { return t.counts[idx] }

// Count returns the count of a tile identity (normalizing red-5).
func (t *Table) Count(tl Tile) int { return t.counts[tl.Normalize().Index34()] }

// RedCount returns how many of the counted 5s of a suit are red.
func (t *Table) RedCount(s Suit) int {
	if s == Honor {
		return 0
	}
	return t.red[s]
}

// Total sums all 34 slots.
func (t *Table) Total() int {
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}

// Snapshot34 copies the dense 34-length count array out.
func (t *Table) Snapshot34() [34]int { return t.counts }

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	c := *t
	return &c
}

// Tiles expands the table back into a concrete, sorted tile slice. Red-5s
// are emitted first among a suit's 5s up to RedCount, the rest as plain 5s.
func (t *Table) Tiles() []Tile {
	out := make([]Tile, 0, t.Total())
	for idx := 0; idx < 34; idx++ {
		n := t.counts[idx]
		if n == 0 {
			continue
		}
		base := FromIndex34(idx)
		reds := 0
		if base.IsSuit() && base.Number == 5 {
			reds = t.red[base.Suit]
		}
		for i := 0; i < n; i++ {
			if i < reds {
				out = append(out, Tile{Suit: base.Suit, Number: 0})
			} else {
				out = append(out, base)
			}
		}
	}
	return out
}

// TilesOf expands just one normalized 34-index back into its concrete
// tiles (red-5s first, up to the suit's red count), for callers that need
// to consume a specific meld's worth of physical tiles (pon/kan/chi
// selection).
func (t *Table) TilesOf(idx int) []Tile {
	n := t.counts[idx]
	if n == 0 {
		return nil
	}
	base := FromIndex34(idx)
	reds := 0
	if base.IsSuit() && base.Number == 5 {
		reds = t.red[base.Suit]
	}
	out := make([]Tile, 0, n)
	for i := 0; i < n; i++ {
		if i < reds {
			out = append(out, Tile{Suit: base.Suit, Number: 0})
		} else {
			out = append(out, base)
		}
	}
	return out
}

// Each is shorthand used by hand/yaku code to walk every populated slot.
func (t *Table) Each(fn func(idx34, count int)) {
	for idx, c := range t.counts {
		if c > 0 {
			fn(idx, c)
		}
	}
}
