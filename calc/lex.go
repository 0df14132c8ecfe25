package calc

import (
	"errors"
	"strconv"

	"github.com/zephyrtronium/opparser"
)

// Operators contains the bytes lexed as binary operators where an operator is
// expected. ! is a postfix operator lexed in the same place.
const Operators = "+-*/%^"

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', 0:
		return true
	}
	return false
}

// scanIdent returns the length of the identifier at the start of src, or 0 if
// there is none.
func scanIdent(src string) int {
	if !isLetter(src[0]) {
		return 0
	}
	n := 1
	for n < len(src) && (isLetter(src[n]) || isDigit(src[n]) || src[n] == '_') {
		n++
	}
	return n
}

func isIdent(name string) bool {
	return name != "" && scanIdent(name) == len(name)
}

// lexNum scans a number literal: digits and decimal points, greedily.
func (c *Calculator) lexNum(p *opparser.Parser, src string) (int, bool, error) {
	n := 0
	for n < len(src) && (isDigit(src[n]) || src[n] == '.') {
		n++
	}
	if n == 0 {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(src[:n], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Out of range literals are infinite; anything else, e.g. 1.2.3 or a
		// lone point, is malformed.
		return 0, false, p.Fail(opparser.BadNumberFormat, strconv.Quote(src[:n]))
	}
	return n, true, p.Push(number(v))
}

// lexIdent scans a function or constant name.
func (c *Calculator) lexIdent(p *opparser.Parser, src string) (int, bool, error) {
	n := scanIdent(src)
	if n == 0 {
		return 0, false, nil
	}
	name := src[:n]
	if fn, ok := c.env.Func(name); ok {
		return n, true, p.Push(token{kind: tokenCall, name: name, fn: fn})
	}
	if v, ok := c.lookup(name); ok {
		return n, true, p.Push(token{kind: tokenNum, num: v, name: name})
	}
	return 0, false, p.Fail(opparser.UnknownIdentifier, strconv.Quote(name))
}

// lexUnary scans a prefix + or -.
func lexUnary(p *opparser.Parser, src string) (int, bool, error) {
	switch src[0] {
	case '+', '-':
		return 1, true, p.Push(token{kind: tokenUnary, op: src[0]})
	}
	return 0, false, nil
}

func (c *Calculator) lexOpen(p *opparser.Parser, src string) (int, bool, error) {
	if src[0] != '(' {
		return 0, false, nil
	}
	return 1, true, p.Push(token{kind: tokenOpen, strict: !c.lenient})
}

func lexClose(p *opparser.Parser, src string) (int, bool, error) {
	if src[0] != ')' {
		return 0, false, nil
	}
	return 1, true, p.Push(token{kind: tokenClose})
}

// lexSpace skips a run of whitespace.
func lexSpace(p *opparser.Parser, src string) (int, bool, error) {
	n := 0
	for n < len(src) && isSpace(src[n]) {
		n++
	}
	return n, n > 0, nil
}

// lexBinary scans a binary operator or the postfix !. It declines - when it
// begins ->.
func lexBinary(p *opparser.Parser, src string) (int, bool, error) {
	switch src[0] {
	case '-':
		if len(src) > 1 && src[1] == '>' {
			return 0, false, nil
		}
		fallthrough
	case '+', '*', '/', '%', '^':
		return 1, true, p.Push(token{kind: tokenBinary, op: src[0]})
	case '!':
		return 1, true, p.Push(token{kind: tokenUnary, op: '!'})
	}
	return 0, false, nil
}

func (c *Calculator) lexArrow(p *opparser.Parser, src string) (int, bool, error) {
	if len(src) < 2 || src[:2] != "->" {
		return 0, false, nil
	}
	return 2, true, p.Push(token{kind: tokenArrow, c: c})
}

// lexIMul always accepts without consuming input. It must be last in its
// chain.
func lexIMul(p *opparser.Parser, src string) (int, bool, error) {
	return 0, true, p.Push(token{kind: tokenIMul})
}

// lexTarget scans the name following ->.
func (c *Calculator) lexTarget(p *opparser.Parser, src string) (int, bool, error) {
	n := scanIdent(src)
	if n == 0 {
		return 0, false, nil
	}
	name := src[:n]
	if _, ok := c.env.Func(name); ok {
		return 0, false, p.Fail(opparser.AssignToFunction, strconv.Quote(name))
	}
	return n, true, p.Push(token{kind: tokenTarget, name: name})
}

// lexStatement finishes the buffered statement at a semicolon.
func (c *Calculator) lexStatement(p *opparser.Parser, src string) (int, bool, error) {
	if src[0] != ';' {
		return 0, false, nil
	}
	if p.Empty() {
		return 1, true, nil
	}
	v, err := c.Finish()
	if err != nil {
		return 0, false, err
	}
	c.onStmt(v)
	return 1, true, nil
}
