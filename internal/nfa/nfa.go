// Package nfa builds and runs the nondeterministic automaton whose
// states are LR(1) items implicitly encoded as (nonterminal, lookahead)
// pairs, per spec.md §4.3. Grounded on original_source/nfa.hh and
// original_source/src/nfa.cc (project mpetx/lr1cc), adapted to two
// explicit transition maps (one keyed by symbol, one epsilon-only)
// rather than a single map keyed by an optional symbol — the shape the
// pack's own NFA builders use (app/nfa/nfa.go in
// mabhi256-codecrafters-grep-go, nfa/nfa.go in Toasa-regexp).
package nfa

import (
	"lr1cc/internal/grammar"
	"lr1cc/internal/symbol"
)

// AcceptanceKind is the terminal disposition of an NFA state.
type AcceptanceKind int

const (
	Reject AcceptanceKind = iota
	Accept
	Reduce
)

// Acceptance pairs a disposition with the production it reduces by,
// when Kind is Reduce.
type Acceptance struct {
	Kind       AcceptanceKind
	Production *grammar.Production
}

// State is an identity-valued NFA node, owned by the NFA that created
// it. Transitions holds one edge set per consuming symbol; Epsilon
// holds the state's epsilon-transition targets.
type State struct {
	Acceptance  Acceptance
	Transitions map[*symbol.Symbol]map[*State]struct{}
	Epsilon     map[*State]struct{}
}

func newState(acc Acceptance) *State {
	return &State{
		Acceptance:  acc,
		Transitions: make(map[*symbol.Symbol]map[*State]struct{}),
		Epsilon:     make(map[*State]struct{}),
	}
}

// AddTransition adds a transition on input from s to to.
func (s *State) AddTransition(input *symbol.Symbol, to *State) {
	set, ok := s.Transitions[input]
	if !ok {
		set = make(map[*State]struct{})
		s.Transitions[input] = set
	}
	set[to] = struct{}{}
}

// AddEpsilon adds an epsilon transition from s to to.
func (s *State) AddEpsilon(to *State) {
	s.Epsilon[to] = struct{}{}
}

// NFA is an ordered set of states with one designated start state. It
// owns every state it creates; references held elsewhere are
// non-owning and must not outlive the NFA.
type NFA struct {
	Start  *State
	States []*State
}

// New creates an empty NFA.
func New() *NFA {
	return &NFA{}
}

// CreateState allocates a new state owned by n and returns it.
func (n *NFA) CreateState(acc Acceptance) *State {
	s := newState(acc)
	n.States = append(n.States, s)
	return s
}

// EpsilonClose grows set in place with the epsilon-reachable closure,
// via a classical worklist algorithm. Idempotent.
func EpsilonClose(set map[*State]struct{}) {
	queue := make([]*State, 0, len(set))
	for s := range set {
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for to := range s.Epsilon {
			if _, seen := set[to]; !seen {
				set[to] = struct{}{}
				queue = append(queue, to)
			}
		}
	}
}

// Transit follows input from every state in states, then epsilon-closes
// the result. input must not be nil (epsilon is not a valid input).
func Transit(states map[*State]struct{}, input *symbol.Symbol) map[*State]struct{} {
	result := make(map[*State]struct{})

	for s := range states {
		for to := range s.Transitions[input] {
			result[to] = struct{}{}
		}
	}

	EpsilonClose(result)

	return result
}

// Run starts from the epsilon-closure of {n.Start} and folds Transit
// across inputs, yielding the reachable state set.
func (n *NFA) Run(inputs []*symbol.Symbol) map[*State]struct{} {
	states := map[*State]struct{}{n.Start: {}}
	EpsilonClose(states)

	for _, input := range inputs {
		states = Transit(states, input)
	}

	return states
}
