package engine

import "testing"

func TestRanksOfBreaksTiesBySeatOrder(t *testing.T) {
	ranks := ranksOf([4]int{25000, 25000, 30000, 20000})
	want := [4]int{2, 3, 1, 4}
	if ranks != want {
		t.Fatalf("got %v want %v", ranks, want)
	}
}

func TestAnyBustDetectsNegativeScore(t *testing.T) {
	if anyBust([4]int{1000, 2000, 3000, 4000}) {
		t.Fatalf("expected no bust")
	}
	if !anyBust([4]int{1000, -500, 3000, 4000}) {
		t.Fatalf("expected a bust")
	}
}

func TestMatchCompleteRequiresBothRoundsAndSettlementScore(t *testing.T) {
	rule := DefaultRule()
	if matchComplete(rule, rule.RequiredRounds-1, [4]int{40000, 20000, 20000, 20000}) {
		t.Fatalf("expected match to continue before RequiredRounds elapses")
	}
	if matchComplete(rule, rule.RequiredRounds, [4]int{25000, 25000, 25000, 25000}) {
		t.Fatalf("expected match to continue past RequiredRounds without a settlement score")
	}
	if !matchComplete(rule, rule.RequiredRounds, [4]int{31000, 25000, 22000, 22000}) {
		t.Fatalf("expected match to end once a seat reaches the settlement score")
	}
}

func TestMatchCompleteCapsExtensionAtMaxExtendedRound(t *testing.T) {
	rule := DefaultRule()
	cap := rule.RequiredRounds + rule.MaxExtendedRound
	if !matchComplete(rule, cap, [4]int{25000, 25000, 25000, 25000}) {
		t.Fatalf("expected match to end once the maximum extension is reached")
	}
}
