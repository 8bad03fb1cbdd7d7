package table

import (
	"strings"
	"testing"

	"lr1cc/internal/dfa"
	"lr1cc/internal/grammar"
	"lr1cc/internal/symbol"

	"github.com/stretchr/testify/assert"
)

func newState(accepts bool, reductions ...*grammar.Production) *dfa.State {
	s := &dfa.State{Transitions: make(map[*symbol.Symbol]*dfa.State)}
	s.Accepts = accepts
	s.Reductions = make(map[*grammar.Production]struct{})
	for _, p := range reductions {
		s.Reductions[p] = struct{}{}
	}
	return s
}

// Test_Emit_ScenarioE reproduces spec.md's testable-properties Scenario
// E: three rejecting states numbered 1..3, producing an exact CSV byte
// sequence with CRLF line endings.
func Test_Emit_ScenarioE(t *testing.T) {
	assert := assert.New(t)

	c := symbol.NewCatalog()
	x, _ := c.Create("x", symbol.Terminal)
	y, _ := c.Create("y", symbol.Terminal)
	s, _ := c.Create("S", symbol.Intermediate)

	p := &grammar.Production{Name: "p", LHS: s, RHS: []*symbol.Symbol{x}}

	d1 := newState(false)
	d2 := newState(false)
	d3 := newState(false)

	d1.Transitions[x] = d2
	d1.Transitions[s] = d3
	d2.Transitions[y] = newState(true)
	d3.Transitions[x] = newState(false, p)

	d := &dfa.DFA{Start: d1}

	var out strings.Builder
	err := Emit(d, []*symbol.Symbol{x, y, s}, &out)
	assert.NoError(err)

	expected := ",x,y,S\r\n" +
		"1,S2,,G3\r\n" +
		"2,,A,\r\n" +
		"3,Rp,,\r\n"

	assert.Equal(expected, out.String())
}

func Test_Columns_TerminalsBeforeIntermediates(t *testing.T) {
	assert := assert.New(t)

	c := symbol.NewCatalog()
	s, _ := c.Create("S", symbol.Intermediate)
	x, _ := c.Create("x", symbol.Terminal)
	a, _ := c.Create("A", symbol.Intermediate)
	y, _ := c.Create("y", symbol.Terminal)

	columns := Columns(c)

	assert.Equal([]*symbol.Symbol{x, y, s, a}, columns)
}
