// Package symbol implements the interned grammar-symbol catalog: the
// leaf-most component of the lr1cc pipeline. A Symbol is identity-valued
// (compared by pointer, never by name) and owned exclusively by the
// Catalog that created it.
package symbol

import "fmt"

// Kind distinguishes a terminal (an input token) from an intermediate
// (a grammar variable that rewrites to a symbol sequence).
type Kind int

const (
	Terminal Kind = iota
	Intermediate
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "intermediate"
}

// Symbol is an interned grammar atom. A terminal's FIRST set is always
// exactly {self} and it is never nullable; an intermediate's FIRST set
// only ever holds terminals, and both are mutated in place during
// grammar analysis and read-only afterward.
type Symbol struct {
	name     string
	kind     Kind
	index    int
	nullable bool
	first    map[*Symbol]struct{}
}

// Name returns the symbol's catalog-unique name.
func (s *Symbol) Name() string { return s.name }

// Index returns the symbol's position in its catalog's creation order.
// The source orders a DFA state's transitions by the originating
// symbols' pointer values, which for an arena-style allocator coincide
// with creation order; Index gives Go the same deterministic ordering
// without relying on pointer identity.
func (s *Symbol) Index() int { return s.index }

// Kind reports whether the symbol is a terminal or an intermediate.
func (s *Symbol) Kind() Kind { return s.kind }

// IsTerminal reports whether the symbol is a terminal.
func (s *Symbol) IsTerminal() bool { return s.kind == Terminal }

// IsIntermediate reports whether the symbol is an intermediate.
func (s *Symbol) IsIntermediate() bool { return s.kind == Intermediate }

// Nullable reports whether the symbol can derive the empty string.
// Always false for terminals.
func (s *Symbol) Nullable() bool { return s.nullable }

// SetNullable marks the symbol nullable. Only the grammar analyzer
// calls this, and only for intermediates.
func (s *Symbol) SetNullable() { s.nullable = true }

// First returns the symbol's FIRST set. Callers must not mutate the
// returned map except through AddFirst.
func (s *Symbol) First() map[*Symbol]struct{} { return s.first }

// AddFirst merges terminals into the symbol's FIRST set and reports
// whether the set grew.
func (s *Symbol) AddFirst(terminals map[*Symbol]struct{}) (grew bool) {
	before := len(s.first)
	for t := range terminals {
		s.first[t] = struct{}{}
	}
	return len(s.first) != before
}

func (s *Symbol) String() string { return s.name }

// Catalog interns symbols by name. It owns every Symbol it creates;
// nothing referencing a Symbol may outlive its Catalog.
type Catalog struct {
	byName  map[string]*Symbol
	ordered []*Symbol
}

// NewCatalog creates an empty symbol catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Symbol)}
}

// Create interns a new symbol. It returns an error if name is already
// declared, regardless of the prior declaration's kind.
func (c *Catalog) Create(name string, kind Kind) (*Symbol, error) {
	if _, exists := c.byName[name]; exists {
		return nil, fmt.Errorf("symbol %q redeclared", name)
	}

	s := &Symbol{name: name, kind: kind, index: len(c.ordered), first: make(map[*Symbol]struct{})}
	if kind == Terminal {
		s.first[s] = struct{}{}
	}

	c.byName[name] = s
	c.ordered = append(c.ordered, s)

	return s, nil
}

// Lookup returns the symbol named name, or nil if none was declared.
func (c *Catalog) Lookup(name string) *Symbol {
	return c.byName[name]
}

// All returns every interned symbol in insertion order. Callers must
// not mutate the returned slice.
func (c *Catalog) All() []*Symbol {
	return c.ordered
}
