package nfa

import (
	"testing"

	"lr1cc/internal/grammar"
	"lr1cc/internal/symbol"

	"github.com/stretchr/testify/assert"
)

// buildScenarioA constructs S->aEc|aFd|bFc|bEd; E->x; F->x, end symbol
// `end` — the non-LALR grammar of spec.md's testable-properties
// Scenario A.
func buildScenarioA(t *testing.T) (*grammar.Grammar, map[string]*symbol.Symbol) {
	t.Helper()

	c := symbol.NewCatalog()
	s, _ := c.Create("S", symbol.Intermediate)
	e, _ := c.Create("E", symbol.Intermediate)
	f, _ := c.Create("F", symbol.Intermediate)
	a, _ := c.Create("a", symbol.Terminal)
	b, _ := c.Create("b", symbol.Terminal)
	cc, _ := c.Create("c", symbol.Terminal)
	d, _ := c.Create("d", symbol.Terminal)
	x, _ := c.Create("x", symbol.Terminal)
	end, _ := c.Create("end", symbol.Terminal)

	g := grammar.New()
	g.Start = s
	g.End = end

	g.AddProduction(&grammar.Production{Name: "1", LHS: s, RHS: []*symbol.Symbol{a, e, cc}})
	g.AddProduction(&grammar.Production{Name: "2", LHS: s, RHS: []*symbol.Symbol{a, f, d}})
	g.AddProduction(&grammar.Production{Name: "3", LHS: s, RHS: []*symbol.Symbol{b, f, cc}})
	g.AddProduction(&grammar.Production{Name: "4", LHS: s, RHS: []*symbol.Symbol{b, e, d}})
	g.AddProduction(&grammar.Production{Name: "5", LHS: e, RHS: []*symbol.Symbol{x}})
	g.AddProduction(&grammar.Production{Name: "6", LHS: f, RHS: []*symbol.Symbol{x}})

	g.Calculate()
	if err := g.EnsureSanity(); err != nil {
		t.Fatalf("grammar is not sane: %v", err)
	}

	symbols := map[string]*symbol.Symbol{
		"S": s, "E": e, "F": f, "a": a, "b": b, "c": cc, "d": d, "x": x, "end": end,
	}

	return g, symbols
}

func Test_Build_ScenarioA(t *testing.T) {
	assert := assert.New(t)

	g, sym := buildScenarioA(t)
	n := Build(g)

	result := n.Run([]*symbol.Symbol{sym["S"], sym["end"]})
	accepts := false
	for s := range result {
		if s.Acceptance.Kind == Accept {
			accepts = true
		}
	}
	assert.True(accepts, "run([S,end]) should accept")

	result = n.Run([]*symbol.Symbol{sym["a"], sym["x"], sym["c"]})
	assert.True(reducesBy(result, "5"), "run([a,x,c]) should reduce by E->x")

	result = n.Run([]*symbol.Symbol{sym["b"], sym["x"], sym["c"]})
	assert.True(reducesBy(result, "6"), "run([b,x,c]) should reduce by F->x")

	result = n.Run([]*symbol.Symbol{sym["a"], sym["x"], sym["c"], sym["end"]})
	assert.True(allReject(result), "run([a,x,c,end]) should reject")

	result = n.Run(nil)
	assert.True(allReject(result), "run([]) should reject")
}

func Test_Build_ScenarioB_NullablePropagation(t *testing.T) {
	assert := assert.New(t)

	c := symbol.NewCatalog()
	s, _ := c.Create("S", symbol.Intermediate)
	tt, _ := c.Create("T", symbol.Intermediate)
	xx, _ := c.Create("X", symbol.Intermediate)
	yy, _ := c.Create("Y", symbol.Intermediate)
	a, _ := c.Create("a", symbol.Terminal)
	b, _ := c.Create("b", symbol.Terminal)
	cc, _ := c.Create("c", symbol.Terminal)
	end, _ := c.Create("end", symbol.Terminal)

	g := grammar.New()
	g.Start = s
	g.End = end

	g.AddProduction(&grammar.Production{Name: "s1", LHS: s, RHS: []*symbol.Symbol{tt, xx, yy}})
	g.AddProduction(&grammar.Production{Name: "t1", LHS: tt, RHS: []*symbol.Symbol{a}})
	g.AddProduction(&grammar.Production{Name: "x1", LHS: xx, RHS: []*symbol.Symbol{b}})
	g.AddProduction(&grammar.Production{Name: "x2", LHS: xx, RHS: nil})
	g.AddProduction(&grammar.Production{Name: "y1", LHS: yy, RHS: []*symbol.Symbol{cc}})
	g.AddProduction(&grammar.Production{Name: "y2", LHS: yy, RHS: nil})

	g.Calculate()

	assert.True(xx.Nullable())
	assert.True(yy.Nullable())
	assert.False(s.Nullable())
	assert.False(tt.Nullable())

	n := Build(g)

	result := n.Run([]*symbol.Symbol{tt, xx, end})
	assert.True(reducesBy(result, "y2"), "run([T,X,end]) should reduce by Y->ε")

	result = n.Run([]*symbol.Symbol{a, cc})
	assert.True(reducesBy(result, "t1"), "run([a,c]) should reduce by T->a")
}

func reducesBy(states map[*State]struct{}, productionName string) bool {
	for s := range states {
		if s.Acceptance.Kind == Reduce && s.Acceptance.Production.Name == productionName {
			return true
		}
	}
	return false
}

func allReject(states map[*State]struct{}) bool {
	for s := range states {
		if s.Acceptance.Kind != Reject {
			return false
		}
	}
	return true
}
