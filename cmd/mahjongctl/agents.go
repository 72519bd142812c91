package main

import (
	"fmt"

	"mahjongcore/internal/agent"
)

// buildAgents resolves the --agents flag (a comma-separated list of four
// kinds, e.g. "random,random,random,interactive") into four concrete
// agent.Agent values.
func buildAgents(kinds []string, seed int64) ([4]agent.Agent, error) {
	var out [4]agent.Agent
	if len(kinds) != 4 {
		return out, fmt.Errorf("mahjongctl: need exactly 4 agent kinds, got %d", len(kinds))
	}
	for seat, kind := range kinds {
		a, err := newAgent(kind, seed+int64(seat))
		if err != nil {
			return out, err
		}
		out[seat] = a
	}
	return out, nil
}

func newAgent(kind string, seed int64) (agent.Agent, error) {
	switch kind {
	case "null":
		return agent.NewNullAgent(), nil
	case "random":
		return agent.NewRandomAgent(seed), nil
	case "rule", "rulebased", "rule-based":
		return agent.NewRuleBasedAgent(), nil
	case "interactive":
		return agent.NewInteractiveAgent(), nil
	default:
		return nil, fmt.Errorf("mahjongctl: unknown agent kind %q (want null|random|rule|interactive)", kind)
	}
}
