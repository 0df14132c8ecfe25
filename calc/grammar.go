package calc

import (
	_ "embed"
	"strings"

	"golang.org/x/exp/ebnf"
)

//go:embed grammar.ebnf
var grammarSrc string

// GrammarSource returns the surface syntax accepted by a calculator in EBNF.
// A bare term following another term is an implicit multiplication.
// Whitespace is insignificant between tokens.
func GrammarSource() string {
	return grammarSrc
}

// Grammar parses and verifies the surface syntax from its start production,
// Statement.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(grammarSrc))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, "Statement"); err != nil {
		return nil, err
	}
	return g, nil
}
