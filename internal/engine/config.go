package engine

import "mahjongcore/internal/config"

// RuleFromConfig builds a Rule from the loaded configuration's rule
// section, the bridge SPEC_FULL.md's ambient config layer needs to drive
// NewWall/PlayRound/RunMatch off a config file instead of DefaultRule.
func RuleFromConfig(c config.RuleConf) Rule {
	return Rule{
		RedFivesPerSuit:  c.RedFivesPerSuit,
		ThreePlayer:      c.ThreePlayer,
		BustingEnabled:   c.BustingEnabled,
		AgentTimeoutMS:   c.AgentTimeoutMS,
		SuufuurendaOn:    c.SuufuurendaOn,
		SuukansanraOn:    c.SuukansanraOn,
		SuuchariichiOn:   c.SuuchariichiOn,
		TripleRonAbortOn: c.TripleRonAbortOn,
		RequiredRounds:   c.RequiredRounds,
		SettlementScore:  c.SettlementScore,
		MaxExtendedRound: c.MaxExtendedRound,
	}
}
