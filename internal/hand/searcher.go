package hand

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// Searcher memoizes the expensive shanten/waits computations across a
// match. The teacher's framework/game/engines/mahjong/searcher.go used bare
// Go maps guarded by a mutex; per SPEC_FULL.md's domain-stack wiring this
// repo replaces that with a ristretto cache (the same library the teacher
// reaches for elsewhere, in common/cache/ristretto.go) so repeated calls
// during a round's many legality checks share one bounded, concurrent-safe
// cache instead of an unbounded map that every engine instance leaks for
// its own lifetime.
type Searcher struct {
	cache *ristretto.Cache
}

// NewSearcher builds a Searcher with a modest memory budget, sized for the
// lifetime of a single match rather than a long-running server process.
func NewSearcher() (*Searcher, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 22, // 4 MiB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("hand: create searcher cache: %w", err)
	}
	return &Searcher{cache: c}, nil
}

// Close releases the underlying cache.
func (s *Searcher) Close() {
	if s != nil && s.cache != nil {
		s.cache.Close()
	}
}

func handKey(prefix string, h Hand34, meldsCount int) string {
	b := make([]byte, 0, len(prefix)+35)
	b = append(b, prefix...)
	for i := 0; i < 34; i++ {
		b = append(b, byte(h[i]))
	}
	b = append(b, byte(meldsCount))
	return string(b)
}

// Shanten is the cached form of ShantenAll.
func (s *Searcher) Shanten(h Hand34, meldsCount int) int {
	if s == nil || s.cache == nil {
		return ShantenAll(h, meldsCount)
	}
	key := handKey("sh", h, meldsCount)
	if v, ok := s.cache.Get(key); ok {
		return v.(int)
	}
	v := ShantenAll(h, meldsCount)
	s.cache.Set(key, v, 1)
	return v
}

// WaitsCached is the cached form of Waits.
func (s *Searcher) WaitsCached(h Hand34, meldsCount int) []int {
	if s == nil || s.cache == nil {
		return Waits(h, meldsCount)
	}
	key := handKey("wa", h, meldsCount)
	if v, ok := s.cache.Get(key); ok {
		cached := v.([]int)
		out := make([]int, len(cached))
		copy(out, cached)
		return out
	}
	v := Waits(h, meldsCount)
	stored := make([]int, len(v))
	copy(stored, v)
	s.cache.Set(key, stored, int64(len(stored)+1))
	return v
}

// Ukeire counts how many live tiles (given what's visible elsewhere: own
// hand + discards + melds + dora indicators) would advance a tenpai hand,
// for each wait.
func Ukeire(h Hand34, waits []int, visible *[34]int) int {
	total := 0
	for _, idx := range waits {
		remaining := 4 - h[idx]
		if visible != nil {
			remaining -= visible[idx]
		}
		if remaining > 0 {
			total += remaining
		}
	}
	return total
}
