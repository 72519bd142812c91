package engine

import (
	"math/rand"
	"testing"
)

func TestNewWallHasStandardTileCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := NewWall(DefaultRule(), rng)
	if got := w.LiveCount() + len(w.dead); got != 136 {
		t.Fatalf("expected 136 total tiles, got %d", got)
	}
	if len(w.dead) != deadWallSize {
		t.Fatalf("expected %d dead-wall tiles, got %d", deadWallSize, len(w.dead))
	}
}

func TestNewWallRevealsOneDoraIndicatorUpFront(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := NewWall(DefaultRule(), rng)
	if got := len(w.RevealedDoraIndicators()); got != 1 {
		t.Fatalf("expected 1 revealed dora indicator at round start, got %d", got)
	}
}

func TestDealHandsDeals13PerSeatAndShrinksLiveWall(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	w := NewWall(DefaultRule(), rng)
	before := w.LiveCount()
	hands := w.DealHands()
	for seat, h := range hands {
		if len(h) != 13 {
			t.Fatalf("seat %d: expected 13 tiles, got %d", seat, len(h))
		}
	}
	if got, want := w.LiveCount(), before-52; got != want {
		t.Fatalf("expected live wall to shrink by 52, got %d want %d", got, want)
	}
}

func TestRevealNextDoraCapsAtFiveIndicators(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := NewWall(DefaultRule(), rng)
	revealed := 1
	for {
		if _, ok := w.RevealNextDora(); !ok {
			break
		}
		revealed++
	}
	if revealed != indicatorPairsMax {
		t.Fatalf("expected exactly %d indicators revealable, got %d", indicatorPairsMax, revealed)
	}
}

func TestDrawReplacementExhaustsAfterFourRinshanTiles(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	w := NewWall(DefaultRule(), rng)
	for i := 0; i < rinshanCount; i++ {
		if _, ok := w.DrawReplacement(); !ok {
			t.Fatalf("expected replacement #%d to succeed", i)
		}
	}
	if _, ok := w.DrawReplacement(); ok {
		t.Fatalf("expected the 5th replacement draw to fail")
	}
}
