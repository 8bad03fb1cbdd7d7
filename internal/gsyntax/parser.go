package gsyntax

import (
	"io"

	"lr1cc/internal/grammar"
	"lr1cc/internal/symbol"

	"github.com/pkg/errors"
)

// Parse reads a full grammar description from r, interning symbols into
// a fresh catalog and returning the resulting grammar. Grounded on
// original_source/input-parser.cc's parse_input and its section
// parsers.
func Parse(r io.Reader) (*grammar.Grammar, *symbol.Catalog, error) {
	lexer := NewLexer(r)
	catalog := symbol.NewCatalog()
	g := grammar.New()

	if err := parseLanguage(lexer, g, catalog); err != nil {
		return nil, nil, err
	}

	return g, catalog, nil
}

func unexpectedToken(tok Token, lexer *Lexer, expected string) error {
	return errors.Errorf("syntax error: unexpected token `%s' at line %d, expecting %s", tok.Value, lexer.Line(), expected)
}

func consumeToken(lexer *Lexer, typ TokenType, typeName string) error {
	tok, err := lexer.Front()
	if err != nil {
		return err
	}
	if tok.Type != typ {
		return unexpectedToken(tok, lexer, typeName)
	}
	lexer.Pop()
	return nil
}

func parseLanguage(lexer *Lexer, g *grammar.Grammar, catalog *symbol.Catalog) error {
	for {
		tok, err := lexer.Front()
		if err != nil {
			return err
		}

		switch tok.Type {
		case TokStartMarker:
			lexer.Pop()
			if err := parseStartSection(lexer, g, catalog); err != nil {
				return err
			}
		case TokEndMarker:
			lexer.Pop()
			if err := parseEndSection(lexer, g, catalog); err != nil {
				return err
			}
		case TokTerminalMarker:
			lexer.Pop()
			if err := parseTerminalSection(lexer, catalog); err != nil {
				return err
			}
		case TokIntermediateMarker:
			lexer.Pop()
			if err := parseIntermediateSection(lexer, catalog); err != nil {
				return err
			}
		case TokGrammarMarker:
			lexer.Pop()
			if err := parseGrammarSection(lexer, g, catalog); err != nil {
				return err
			}
		case TokEOF:
			return nil
		default:
			return unexpectedToken(tok, lexer, "section marker or EOF")
		}
	}
}

func parseStartSection(lexer *Lexer, g *grammar.Grammar, catalog *symbol.Catalog) error {
	if g.Start != nil {
		return errors.Errorf("error: start symbol redeclared at line %d", lexer.Line())
	}

	tok, err := lexer.Front()
	if err != nil {
		return err
	}
	if tok.Type != TokIdent {
		return unexpectedToken(tok, lexer, "an identifier")
	}

	s, err := catalog.Create(tok.Value, symbol.Intermediate)
	if err != nil {
		return errors.Errorf("error: symbol `%s' redeclared at line %d", tok.Value, lexer.Line())
	}

	g.Start = s
	lexer.Pop()

	return nil
}

func parseEndSection(lexer *Lexer, g *grammar.Grammar, catalog *symbol.Catalog) error {
	if g.End != nil {
		return errors.Errorf("error: end-of-input symbol redeclared at line %d", lexer.Line())
	}

	tok, err := lexer.Front()
	if err != nil {
		return err
	}
	if tok.Type != TokIdent {
		return unexpectedToken(tok, lexer, "an identifier")
	}

	s, err := catalog.Create(tok.Value, symbol.Terminal)
	if err != nil {
		return errors.Errorf("error: symbol `%s' redeclared at line %d", tok.Value, lexer.Line())
	}

	g.End = s
	lexer.Pop()

	return nil
}

func parseTerminalSection(lexer *Lexer, catalog *symbol.Catalog) error {
	for {
		tok, err := lexer.Front()
		if err != nil {
			return err
		}
		if tok.Type != TokIdent {
			return nil
		}

		if _, err := catalog.Create(tok.Value, symbol.Terminal); err != nil {
			return errors.Errorf("error: symbol `%s' redeclared at line %d", tok.Value, lexer.Line())
		}

		lexer.Pop()
	}
}

func parseIntermediateSection(lexer *Lexer, catalog *symbol.Catalog) error {
	for {
		tok, err := lexer.Front()
		if err != nil {
			return err
		}
		if tok.Type != TokIdent {
			return nil
		}

		if _, err := catalog.Create(tok.Value, symbol.Intermediate); err != nil {
			return errors.Errorf("error: symbol `%s' redeclared at line %d", tok.Value, lexer.Line())
		}

		lexer.Pop()
	}
}

func parseGrammarSection(lexer *Lexer, g *grammar.Grammar, catalog *symbol.Catalog) error {
	for {
		tok, err := lexer.Front()
		if err != nil {
			return err
		}
		if tok.Type != TokIdent {
			return nil
		}

		if err := parseProduction(lexer, g, catalog); err != nil {
			return err
		}
	}
}

func parseProduction(lexer *Lexer, g *grammar.Grammar, catalog *symbol.Catalog) error {
	lhsTok, err := lexer.Front()
	if err != nil {
		return err
	}

	lhs := catalog.Lookup(lhsTok.Value)
	if lhs == nil {
		return errors.Errorf("error: unknown symbol `%s' at line %d", lhsTok.Value, lexer.Line())
	}

	lexer.Pop()
	if err := consumeToken(lexer, TokColon, "`:'"); err != nil {
		return err
	}

	if err := parseRHS(lexer, lhs, g, catalog); err != nil {
		return err
	}

	for {
		tok, err := lexer.Front()
		if err != nil {
			return err
		}

		switch tok.Type {
		case TokBar:
			lexer.Pop()
			if err := parseRHS(lexer, lhs, g, catalog); err != nil {
				return err
			}
		case TokSemicolon:
			lexer.Pop()
			return nil
		default:
			return unexpectedToken(tok, lexer, "`|' or `;'")
		}
	}
}

func parseRHS(lexer *Lexer, lhs *symbol.Symbol, g *grammar.Grammar, catalog *symbol.Catalog) error {
	var rhs []*symbol.Symbol

	for {
		tok, err := lexer.Front()
		if err != nil {
			return err
		}

		if tok.Type == TokIdent {
			s := catalog.Lookup(tok.Value)
			if s == nil {
				return errors.Errorf("error: unknown symbol `%s' at line %d", tok.Value, lexer.Line())
			}
			rhs = append(rhs, s)
			lexer.Pop()
		} else if tok.Type == TokSquareStart {
			lexer.Pop()
			break
		} else {
			return unexpectedToken(tok, lexer, "an identifier or `['")
		}
	}

	nameTok, err := lexer.Front()
	if err != nil {
		return err
	}
	if nameTok.Type != TokIdent {
		return unexpectedToken(nameTok, lexer, "an identifier")
	}
	lexer.Pop()

	if err := consumeToken(lexer, TokSquareEnd, "`]'"); err != nil {
		return err
	}

	g.AddProduction(&grammar.Production{Name: nameTok.Value, LHS: lhs, RHS: rhs})

	return nil
}
