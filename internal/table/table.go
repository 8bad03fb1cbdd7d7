// Package table emits a conflict-free DFA as a CSV action/goto table.
// Grounded on original_source/output.hh and original_source/src/output.cc
// (project mpetx/lr1cc).
package table

import (
	"io"
	"sort"
	"strconv"

	"lr1cc/internal/dfa"
	"lr1cc/internal/symbol"
)

// Columns orders a symbol catalog's terminals before its intermediates,
// the column order spec.md §4.7 and §6 require. Grounded on
// original_source/src/main.cc's calculate_columns.
func Columns(catalog *symbol.Catalog) []*symbol.Symbol {
	var columns []*symbol.Symbol

	for _, s := range catalog.All() {
		if s.IsTerminal() {
			columns = append(columns, s)
		}
	}
	for _, s := range catalog.All() {
		if s.IsIntermediate() {
			columns = append(columns, s)
		}
	}

	return columns
}

// nameStates assigns a 1-based name to every rejecting state, in
// breadth-first discovery order from d.Start.
func nameStates(d *dfa.DFA) map[*dfa.State]int {
	names := make(map[*dfa.State]int)

	forEachState(d.Start, func(state *dfa.State) {
		if state.Rejects() {
			names[state] = len(names) + 1
		}
	})

	return names
}

func forEachState(start *dfa.State, fn func(*dfa.State)) {
	visited := map[*dfa.State]struct{}{start: {}}
	queue := []*dfa.State{start}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		fn(state)

		for _, input := range sortedInputs(state) {
			to := state.Transitions[input]
			if _, seen := visited[to]; seen {
				continue
			}
			visited[to] = struct{}{}
			queue = append(queue, to)
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

// Emit writes d as a CSV action/goto table to out, using CRLF line
// endings and the given column order. d must be conflict-free: Emit
// does not itself detect conflicts.
func Emit(d *dfa.DFA, columns []*symbol.Symbol, out io.Writer) error {
	names := nameStates(d)

	if err := emitHeader(columns, out); err != nil {
		return err
	}

	var rowErr error
	forEachState(d.Start, func(state *dfa.State) {
		if rowErr != nil || !state.Rejects() {
			return
		}
		rowErr = emitRow(state, columns, names, out)
	})

	return rowErr
}

func emitHeader(columns []*symbol.Symbol, out io.Writer) error {
	for _, column := range columns {
		if _, err := io.WriteString(out, ","+column.Name()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "\r\n")
	return err
}

func emitRow(state *dfa.State, columns []*symbol.Symbol, names map[*dfa.State]int, out io.Writer) error {
	if _, err := io.WriteString(out, strconv.Itoa(names[state])); err != nil {
		return err
	}

	for _, column := range columns {
		if _, err := io.WriteString(out, ","); err != nil {
			return err
		}
		if err := emitCell(state, column, names, out); err != nil {
			return err
		}
	}

	_, err := io.WriteString(out, "\r\n")
	return err
}

func emitCell(state *dfa.State, column *symbol.Symbol, names map[*dfa.State]int, out io.Writer) error {
	to, ok := state.Transitions[column]
	if !ok {
		return nil
	}

	switch {
	case to.Accepts:
		_, err := io.WriteString(out, "A")
		return err
	case len(to.Reductions) > 0:
		_, err := io.WriteString(out, "R"+smallestReductionName(to))
		return err
	case column.IsTerminal():
		_, err := io.WriteString(out, "S"+strconv.Itoa(names[to]))
		return err
	default:
		_, err := io.WriteString(out, "G"+strconv.Itoa(names[to]))
		return err
	}
}

// smallestReductionName picks a deterministic production among a
// state's reductions (a conflict-free DFA has exactly one): the
// smallest name, since Go map iteration order is randomized and
// original_source/src/output.cc relies on the first element of an
// implementation-defined set ordering instead.
func smallestReductionName(state *dfa.State) string {
	var best string
	first := true

	for p := range state.Reductions {
		if first || p.Name < best {
			best = p.Name
			first = false
		}
	}

	return best
}
