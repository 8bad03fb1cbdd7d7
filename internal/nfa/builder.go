package nfa

import (
	"lr1cc/internal/grammar"
	"lr1cc/internal/symbol"
)

// namedStateKey identifies the single shared NFA fragment for a given
// (nonterminal, lookahead) pair. Memoizing on this pair — rather than on
// a closed LR(1) item set — is the compact encoding spec.md §4.3
// describes: every inbound epsilon for the same pair targets the same
// state, so shared sub-automata are never duplicated, and the pair
// space being finite guarantees the construction terminates.
type namedStateKey struct {
	lhs    *symbol.Symbol
	follow *symbol.Symbol
}

// Build converts a sealed, analyzed grammar into its canonical LR(1)
// NFA. Grounded on original_source/src/nfa.cc's grammar_to_nfa /
// get_named_state / grow_named_state / grow_named_state_by_production.
func Build(g *grammar.Grammar) *NFA {
	n := New()
	named := make(map[namedStateKey]*State)

	s1 := n.CreateState(Acceptance{Kind: Reject})
	s2 := n.CreateState(Acceptance{Kind: Reject})
	s3 := n.CreateState(Acceptance{Kind: Accept})
	s4 := getNamedState(g.Start, g.End, n, g, named)

	s1.AddTransition(g.Start, s2)
	s2.AddTransition(g.End, s3)
	s1.AddEpsilon(s4)

	n.Start = s1

	return n
}

func getNamedState(lhs, follow *symbol.Symbol, n *NFA, g *grammar.Grammar, named map[namedStateKey]*State) *State {
	key := namedStateKey{lhs, follow}

	if s, ok := named[key]; ok {
		return s
	}

	s := n.CreateState(Acceptance{Kind: Reject})
	named[key] = s

	growNamedState(s, lhs, follow, n, g, named)

	return s
}

func growNamedState(state *State, lhs, follow *symbol.Symbol, n *NFA, g *grammar.Grammar, named map[namedStateKey]*State) {
	for _, p := range g.Productions {
		if p.LHS == lhs {
			growNamedStateByProduction(state, p, follow, n, g, named)
		}
	}
}

func growNamedStateByProduction(state *State, p *grammar.Production, follow *symbol.Symbol, n *NFA, g *grammar.Grammar, named map[namedStateKey]*State) {
	prev := state

	for i, input := range p.RHS {
		rest := p.RHS[i+1:]

		curr := n.CreateState(Acceptance{Kind: Reject})
		prev.AddTransition(input, curr)

		if input.IsIntermediate() {
			for toFollow := range grammar.FirstSequence(rest, follow) {
				prev.AddEpsilon(getNamedState(input, toFollow, n, g, named))
			}
		}

		prev = curr
	}

	final := n.CreateState(Acceptance{Kind: Reduce, Production: p})
	prev.AddTransition(follow, final)
}
