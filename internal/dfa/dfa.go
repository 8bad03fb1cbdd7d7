// Package dfa implements subset construction from the canonical LR(1)
// NFA to a deterministic automaton of canonical LR(1) states. Grounded
// on original_source/dfa.hh and original_source/dfa.cc (project
// mpetx/lr1cc).
package dfa

import (
	"fmt"
	"sort"
	"strings"

	"lr1cc/internal/grammar"
	"lr1cc/internal/nfa"
	"lr1cc/internal/symbol"
)

// State is an identity-valued DFA node, owned by the DFA that created
// it. It rejects iff it neither accepts nor carries any reduction.
type State struct {
	Accepts     bool
	Reductions  map[*grammar.Production]struct{}
	Transitions map[*symbol.Symbol]*State
}

// Rejects reports whether the state has no accept or reduce
// disposition — i.e. parsing continues by shifting.
func (s *State) Rejects() bool {
	return !s.Accepts && len(s.Reductions) == 0
}

func newState(origin map[*nfa.State]struct{}) *State {
	s := &State{Transitions: make(map[*symbol.Symbol]*State)}
	s.Reductions = make(map[*grammar.Production]struct{})

	for n := range origin {
		switch n.Acceptance.Kind {
		case nfa.Accept:
			s.Accepts = true
		case nfa.Reduce:
			s.Reductions[n.Acceptance.Production] = struct{}{}
		}
	}

	return s
}

// DFA is an ordered set of states with a start state. It owns every
// state it creates.
type DFA struct {
	Start  *State
	States []*State
}

// nfaSetKey is an order-independent identity for a set of NFA states,
// used to memoize the subset construction. original_source/src/util.hh's
// SetHash combines unordered element hashes commutatively for the same
// purpose; Go has no hashable set type, so the equivalent here sorts
// each state's pointer-identity string and joins them into one key.
type nfaSetKey string

func keyOf(set map[*nfa.State]struct{}) nfaSetKey {
	ids := make([]string, 0, len(set))
	for s := range set {
		ids = append(ids, fmt.Sprintf("%p", s))
	}
	sort.Strings(ids)

	return nfaSetKey(strings.Join(ids, ","))
}

// Build runs subset construction over n, producing the canonical LR(1)
// DFA. Grounded on original_source/dfa.cc's nfa_to_dfa/get_dfa_state.
func Build(n *nfa.NFA) *DFA {
	d := &DFA{}
	memo := make(map[nfaSetKey]*State)

	initial := map[*nfa.State]struct{}{n.Start: {}}
	nfa.EpsilonClose(initial)

	d.Start = getDFAState(initial, d, memo)

	return d
}

func getDFAState(nstates map[*nfa.State]struct{}, d *DFA, memo map[nfaSetKey]*State) *State {
	key := keyOf(nstates)

	if s, ok := memo[key]; ok {
		return s
	}

	s := newState(nstates)
	d.States = append(d.States, s)
	memo[key] = s

	for _, input := range alphabetOf(nstates) {
		toNStates := nfa.Transit(nstates, input)
		toDState := getDFAState(toNStates, d, memo)
		s.Transitions[input] = toDState
	}

	return s
}

func alphabetOf(nstates map[*nfa.State]struct{}) []*symbol.Symbol {
	seen := make(map[*symbol.Symbol]struct{})
	for s := range nstates {
		for input := range s.Transitions {
			seen[input] = struct{}{}
		}
	}

	inputs := make([]*symbol.Symbol, 0, len(seen))
	for input := range seen {
		inputs = append(inputs, input)
	}
	// Stable iteration order so repeated builds are deterministic
	// regardless of Go's randomized map order.
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Index() < inputs[j].Index() })

	return inputs
}

// Run follows inputs from the DFA start state, returning nil if any
// symbol lacks a transition.
func (d *DFA) Run(inputs []*symbol.Symbol) *State {
	state := d.Start

	for _, input := range inputs {
		next, ok := state.Transitions[input]
		if !ok {
			return nil
		}
		state = next
	}

	return state
}
