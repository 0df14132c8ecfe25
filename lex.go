package opparser

import (
	"strconv"
	"unicode/utf8"
)

// Lexer recognizes input at the cursor. Lexers are tried in registration order
// for the parser's current state until one accepts.
type Lexer interface {
	// Accept examines src, the unconsumed input, which is never empty. If the
	// lexer recognizes its start, it returns the number of bytes consumed and
	// true, pushing at most one token to p along the way. A lexer may accept
	// without consuming input if the token it pushes changes the parser
	// state. If the lexer declines, it returns false and the next lexer in the
	// chain is tried. A non-nil error aborts parsing.
	Accept(p *Parser, src string) (n int, ok bool, err error)
}

// LexFunc adapts a function to a Lexer.
type LexFunc func(p *Parser, src string) (n int, ok bool, err error)

// Accept calls f(p, src).
func (f LexFunc) Accept(p *Parser, src string) (int, bool, error) {
	return f(p, src)
}

// Register appends lexers to the chain for a state.
func (p *Parser) Register(s State, lexers ...Lexer) {
	if p.lexers == nil {
		p.lexers = make(map[State][]Lexer)
	}
	p.lexers[s] = append(p.lexers[s], lexers...)
}

// ClearLexers removes every lexer chain.
func (p *Parser) ClearLexers() {
	p.lexers = nil
}

// Chain returns a copy of the lexer chain for a state.
func (p *Parser) Chain(s State) []Lexer {
	return append(([]Lexer)(nil), p.lexers[s]...)
}

// scan runs the chain for the current state once and returns the number of
// bytes consumed.
func (p *Parser) scan(src string) (int, error) {
	before := p.state
	for _, lx := range p.lexers[p.state] {
		n, ok, err := lx.Accept(p, src)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		if n < 0 || n > len(src) {
			panic("opparser: lexer consumed out of range")
		}
		if n == 0 && p.state == before {
			// The same chain would run again on the same input.
			return 0, p.Fail(UnrecognizedInput, quoteStart(src))
		}
		return n, nil
	}
	return 0, p.Fail(UnrecognizedInput, quoteStart(src))
}

// quoteStart quotes the first character of src for error messages.
func quoteStart(src string) string {
	r, n := utf8.DecodeRuneInString(src)
	if r == utf8.RuneError && n <= 1 {
		return strconv.Quote(src[:1])
	}
	return strconv.QuoteRune(r)
}
