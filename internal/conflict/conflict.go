// Package conflict detects shift/reduce and reduce/reduce conflicts in
// a built DFA and reports each with a witness path from the start
// state. Grounded on original_source/src/conflict.cc and
// original_source/conflict.cc (project mpetx/lr1cc).
package conflict

import (
	"sort"

	"lr1cc/internal/dfa"
	"lr1cc/internal/symbol"
)

// Conflict records one ambiguous parsing decision. StartToFirst is the
// input that reaches FirstState from the DFA start. For a shift/reduce
// conflict, SecondState is a distinct accepting or reducing state and
// FirstToSecond is the input that reaches it from FirstState; for a
// reduce/reduce conflict, SecondState is FirstState and FirstToSecond is
// empty.
type Conflict struct {
	FirstState    *dfa.State
	SecondState   *dfa.State
	StartToFirst  []*symbol.Symbol
	FirstToSecond []*symbol.Symbol
}

// Detect walks d from its start state and returns every conflict found,
// in breadth-first discovery order of the first state and, for
// shift/reduce conflicts, breadth-first discovery order of the second
// state from first.
func Detect(d *dfa.DFA) []Conflict {
	var conflicts []Conflict

	forEachStateWithPath(d.Start, func(state *dfa.State, path []*symbol.Symbol) {
		conflicts = append(conflicts, conflictsOf(state, path)...)
	})

	return conflicts
}

func conflictsOf(first *dfa.State, firstPath []*symbol.Symbol) []Conflict {
	var conflicts []Conflict

	if hasReduceReduceConflict(first) {
		conflicts = append(conflicts, Conflict{
			FirstState:    first,
			SecondState:   first,
			StartToFirst:  firstPath,
			FirstToSecond: nil,
		})
	}

	if hasShiftReduceConflict(first) {
		forEachStateWithPath(first, func(second *dfa.State, secondPath []*symbol.Symbol) {
			if !second.Rejects() && first != second {
				conflicts = append(conflicts, Conflict{
					FirstState:    first,
					SecondState:   second,
					StartToFirst:  firstPath,
					FirstToSecond: secondPath,
				})
			}
		})
	}

	return conflicts
}

func hasReduceReduceConflict(state *dfa.State) bool {
	return state.Accepts && len(state.Reductions) > 0 || len(state.Reductions) > 1
}

func hasShiftReduceConflict(state *dfa.State) bool {
	return (state.Accepts || len(state.Reductions) > 0) && len(state.Transitions) > 0
}

// forEachStateWithPath visits every state reachable from start, each
// exactly once, breadth-first, invoking fn with the sequence of input
// symbols that reaches it from start. Transitions are visited in
// symbol creation order (Symbol.Index) so traversal is deterministic
// across runs.
func forEachStateWithPath(start *dfa.State, fn func(state *dfa.State, path []*symbol.Symbol)) {
	type item struct {
		state *dfa.State
		path  []*symbol.Symbol
	}

	visited := map[*dfa.State]struct{}{start: {}}
	queue := []item{{start, nil}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		fn(curr.state, curr.path)

		for _, input := range sortedInputs(curr.state) {
			to := curr.state.Transitions[input]
			if _, seen := visited[to]; seen {
				continue
			}
			visited[to] = struct{}{}

			path := make([]*symbol.Symbol, len(curr.path), len(curr.path)+1)
			copy(path, curr.path)
			path = append(path, input)

			queue = append(queue, item{to, path})
		}
	}
}

func sortedInputs(state *dfa.State) []*symbol.Symbol {
	inputs := make([]*symbol.Symbol, 0, len(state.Transitions))
	for input := range state.Transitions {
		inputs = append(inputs, input)
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Index() < inputs[j].Index() })
	return inputs
}
