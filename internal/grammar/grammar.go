// Package grammar computes the nullable and FIRST fixed points over a
// context-free grammar and validates it before the NFA builder consumes
// it. Grounded on original_source/grammar.hh, original_source/src/grammar.cc
// and original_source/symbol.hh's free first()/is_nullable() helpers
// (project mpetx/lr1cc).
package grammar

import (
	"fmt"

	"lr1cc/internal/symbol"

	"github.com/pkg/errors"
)

// Production is a single rewrite rule `LHS -> rhs`. Name is a
// catalog-unique human label used by the table emitter's R<name> cells.
type Production struct {
	Name string
	LHS  *symbol.Symbol
	RHS  []*symbol.Symbol
}

func (p *Production) String() string {
	if len(p.RHS) == 0 {
		return fmt.Sprintf("%s -> ε [%s]", p.LHS.Name(), p.Name)
	}
	s := p.LHS.Name() + " ->"
	for _, sym := range p.RHS {
		s += " " + sym.Name()
	}
	return s + " [" + p.Name + "]"
}

// Grammar is a sealed container: a start symbol, an end-of-input symbol,
// and an ordered list of productions. Production enumeration is
// insertion order.
type Grammar struct {
	Start       *symbol.Symbol
	End         *symbol.Symbol
	Productions []*Production
}

// New creates an empty grammar with no start or end symbol.
func New() *Grammar {
	return &Grammar{}
}

// AddProduction appends a production, preserving insertion order.
func (g *Grammar) AddProduction(p *Production) {
	g.Productions = append(g.Productions, p)
}

// IsNullable reports whether every symbol of seq is nullable, vacuously
// true for an empty sequence.
func IsNullable(seq []*symbol.Symbol) bool {
	for _, s := range seq {
		if !s.Nullable() {
			return false
		}
	}
	return true
}

// FirstSequence walks seq accumulating FIRST(s) for each prefix symbol,
// stopping at (and including) the first non-nullable symbol. If every
// symbol in seq is nullable and sentinel is non-nil, sentinel is added
// to the result. This is the FOLLOW-like helper used during NFA
// construction (spec §4.2's first_sequence).
func FirstSequence(seq []*symbol.Symbol, sentinel *symbol.Symbol) map[*symbol.Symbol]struct{} {
	result := make(map[*symbol.Symbol]struct{})

	for _, s := range seq {
		for t := range s.First() {
			result[t] = struct{}{}
		}
		if !s.Nullable() {
			return result
		}
	}

	if sentinel != nil {
		result[sentinel] = struct{}{}
	}

	return result
}

// Calculate runs the nullable and FIRST fixed points, mutating symbols
// in place. After Calculate (and EnsureSanity) return, every downstream
// component treats symbols, productions and the grammar as read-only.
func (g *Grammar) Calculate() {
	g.calculateNullable()
	g.calculateFirst()
}

func (g *Grammar) calculateNullable() {
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			if !p.LHS.Nullable() && IsNullable(p.RHS) {
				p.LHS.SetNullable()
				changed = true
			}
		}
	}
}

func (g *Grammar) calculateFirst() {
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			rhsFirst := FirstSequence(p.RHS, nil)
			if p.LHS.AddFirst(rhsFirst) {
				changed = true
			}
		}
	}
}

// EnsureSanity validates the invariants spec.md §3 requires of a sealed
// grammar: start and end must be set, every production's lhs must be
// intermediate, and no production's rhs may contain the end symbol.
func (g *Grammar) EnsureSanity() error {
	if g.Start == nil {
		return errors.New("start symbol is not provided")
	}
	if g.End == nil {
		return errors.New("end-of-input symbol is not provided")
	}

	for _, p := range g.Productions {
		if err := g.ensureProductionSanity(p); err != nil {
			return err
		}
	}

	return nil
}

func (g *Grammar) ensureProductionSanity(p *Production) error {
	if !p.LHS.IsIntermediate() {
		return errors.Errorf("invalid lhs symbol %q on [%s]: lhs must be intermediate", p.LHS.Name(), p.Name)
	}

	for _, s := range p.RHS {
		if s == g.End {
			return errors.Errorf("invalid rhs symbol %q on [%s]: end-of-input symbol may not appear in a production", s.Name(), p.Name)
		}
	}

	return nil
}
