package opparser_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/opparser"
)

// A tiny integer instantiation for exercising the engine directly.

const (
	stNum  = opparser.StateInitial
	stOper = opparser.StateInitial + 1
)

type num int

func (num) LevelLeft() opparser.Level { return opparser.LevelConst }
func (num) LevelRight() opparser.Level { return opparser.LevelConst }
func (num) OnPush(p *opparser.Parser) { p.SetState(stOper) }
func (n num) OnPop(p *opparser.Parser) error {
	p.PushOut(n)
	return nil
}
func (n num) String() string { return strconv.Itoa(int(n)) }

// mark is an atom that is not a number.
type mark struct{}

func (mark) LevelLeft() opparser.Level { return opparser.LevelConst }
func (mark) LevelRight() opparser.Level { return opparser.LevelConst }
func (mark) OnPush(p *opparser.Parser) { p.SetState(stOper) }
func (m mark) OnPop(p *opparser.Parser) error {
	p.PushOut(m)
	return nil
}
func (mark) String() string { return "#" }

type binop byte

func (o binop) LevelLeft() opparser.Level {
	switch o {
	case '+', '-':
		return 11
	case '*':
		return 21
	case '^':
		return 31
	case ',':
		return 2
	}
	panic("bad op")
}

func (o binop) LevelRight() opparser.Level {
	switch o {
	case '+', '-':
		return 12
	case '*':
		return 22
	case '^':
		return 30
	case ',':
		return 3
	}
	panic("bad op")
}

func (binop) OnPush(p *opparser.Parser) { p.SetState(stNum) }

func (o binop) OnPop(p *opparser.Parser) error {
	if o == ',' {
		// Values on both sides are left on the out stack.
		return nil
	}
	r, err := popNum(p)
	if err != nil {
		return err
	}
	l, err := popNum(p)
	if err != nil {
		return err
	}
	switch o {
	case '+':
		p.PushOut(l + r)
	case '-':
		p.PushOut(l - r)
	case '*':
		p.PushOut(l * r)
	case '^':
		v := num(1)
		for i := num(0); i < r; i++ {
			v *= l
		}
		p.PushOut(v)
	}
	return nil
}

func (o binop) String() string { return string(rune(o)) }

type lbrack struct{}

func (lbrack) LevelLeft() opparser.Level { return opparser.LevelConst }
func (lbrack) LevelRight() opparser.Level { return opparser.LevelAcceptAll }
func (lbrack) OnPush(p *opparser.Parser) { p.SetState(stNum) }
func (lbrack) OnPop(p *opparser.Parser) error {
	return p.Fail(opparser.UnbalancedBracket, "(")
}
func (lbrack) String() string { return "(" }

type rbrack struct{}

func (rbrack) LevelLeft() opparser.Level { return opparser.LevelFlushAll }
func (rbrack) LevelRight() opparser.Level { return opparser.LevelConst }
func (rbrack) OnPush(p *opparser.Parser) { p.SetState(stOper) }
func (rbrack) OnPop(p *opparser.Parser) error {
	if t, ok := p.TopMid(); !ok || t != (lbrack{}) {
		return p.Fail(opparser.UnbalancedBracket, ")")
	}
	p.DropMid()
	return nil
}
func (rbrack) String() string { return ")" }

func popNum(p *opparser.Parser) (num, error) {
	t, ok := p.PopOut()
	if !ok {
		return 0, p.Fail(opparser.MissingOperand, "")
	}
	n, ok := t.(num)
	if !ok {
		return 0, p.Fail(opparser.TypeMismatch, t.String())
	}
	return n, nil
}

func single(tok opparser.Token, c byte) opparser.Lexer {
	return opparser.LexFunc(func(p *opparser.Parser, src string) (int, bool, error) {
		if src[0] != c {
			return 0, false, nil
		}
		return 1, true, p.Push(tok)
	})
}

var digit = opparser.LexFunc(func(p *opparser.Parser, src string) (int, bool, error) {
	if src[0] < '0' || src[0] > '9' {
		return 0, false, nil
	}
	return 1, true, p.Push(num(src[0] - '0'))
})

var space = opparser.LexFunc(func(p *opparser.Parser, src string) (int, bool, error) {
	return 1, src[0] == ' ', nil
})

func testParser(collide bool) *opparser.Parser {
	p := opparser.NewParser(zerolog.Nop())
	p.Register(stNum, digit, single(mark{}, '#'), single(lbrack{}, '('), space)
	p.Register(stOper, single(binop('+'), '+'), single(binop('-'), '-'), single(binop('*'), '*'), single(binop('^'), '^'), single(binop(','), ','), single(rbrack{}, ')'), space)
	if collide {
		p.Register(stOper, digit)
	}
	return p
}

func TestPushFinish(t *testing.T) {
	cases := []struct {
		name string
		src  []string
		r    num
	}{
		{"num", []string{"7"}, 7},
		{"add", []string{"1+2"}, 3},
		{"left-assoc", []string{"8-3-2"}, 3},
		{"prec", []string{"2+3*4"}, 14},
		{"prec-rev", []string{"3*4+2"}, 14},
		{"right-assoc", []string{"2^3^2"}, 512},
		{"brackets", []string{"(1+2)*3"}, 9},
		{"nested", []string{"((1))"}, 1},
		{"spaces", []string{" 1 + 2 "}, 3},
		{"continued", []string{"1+", "2*", "3"}, 7},
	}
	p := testParser(false)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, s := range c.src {
				if err := p.Parse(s); err != nil {
					t.Fatalf("parsing %q: %v", s, err)
				}
			}
			r, err := p.Finish()
			if err != nil {
				t.Fatalf("finishing %q: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("wrong result for %q: want %v, got %v", c.src, c.r, r)
			}
			if !p.Empty() || p.State() != opparser.StateInitial {
				t.Errorf("parser not reset after finishing %q", c.src)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		collide bool
		parse   bool
		kind    opparser.Kind
		col     int
	}{
		{"unrecognized", "1?", false, true, opparser.UnrecognizedInput, 2},
		{"unrecognized-start", "+", false, true, opparser.UnrecognizedInput, 1},
		{"collision", "1 2", true, true, opparser.TokenCollision, 3},
		{"empty", "", false, false, opparser.IncompleteExpression, 1},
		{"missing", "1+", false, false, opparser.MissingOperand, 3},
		{"mismatch", "#+1", false, false, opparser.TypeMismatch, 4},
		{"malformed", "1,2", false, false, opparser.MalformedResult, 4},
		{"unclosed", "(1", false, false, opparser.UnbalancedBracket, 3},
		{"unopened", "1)", false, false, opparser.UnbalancedBracket, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := testParser(c.collide)
			err := p.Parse(c.src)
			if c.parse {
				if err == nil {
					t.Fatalf("parsing %q succeeded", c.src)
				}
			} else {
				if err != nil {
					t.Fatalf("parsing %q: %v", c.src, err)
				}
				_, err = p.Finish()
			}
			if !errors.Is(err, c.kind) {
				t.Fatalf("wrong error for %q: want %v, got %v", c.src, c.kind, err)
			}
			var ie opparser.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("error %v is not an InputError", err)
			}
			if ie.Pos() != c.col {
				t.Errorf("wrong position for %q: want %d, got %d (%v)", c.src, c.col, ie.Pos(), err)
			}
			if !p.Empty() || p.State() != opparser.StateInitial {
				t.Errorf("parser not reset after error on %q", c.src)
			}
		})
	}
}

func TestRecoverAfterError(t *testing.T) {
	p := testParser(false)
	if err := p.Parse("1+?"); err == nil {
		t.Fatal("no error parsing 1+?")
	}
	if err := p.Parse("2*3"); err != nil {
		t.Fatal(err)
	}
	r, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if r != num(6) {
		t.Errorf("want 6, got %v", r)
	}
}

func TestStalledLexer(t *testing.T) {
	p := opparser.NewParser(zerolog.Nop())
	p.Register(stNum, opparser.LexFunc(func(p *opparser.Parser, src string) (int, bool, error) {
		return 0, true, nil
	}))
	err := p.Parse("x")
	if !errors.Is(err, opparser.UnrecognizedInput) {
		t.Errorf("want unrecognized input, got %v", err)
	}
}

func TestChain(t *testing.T) {
	p := testParser(false)
	if n := len(p.Chain(stNum)); n != 4 {
		t.Errorf("want 4 lexers for num state, got %d", n)
	}
	ch := p.Chain(stOper)
	ch[0] = nil
	if p.Chain(stOper)[0] == nil {
		t.Error("Chain returned the parser's own slice")
	}
	p.ClearLexers()
	if n := len(p.Chain(stNum)); n != 0 {
		t.Errorf("want no lexers after clear, got %d", n)
	}
}

func TestDepth(t *testing.T) {
	p := testParser(false)
	if err := p.Parse("1+2*"); err != nil {
		t.Fatal(err)
	}
	// 1 reduced by +; 2 reduced by *; + and * pending.
	mid, out := p.Depth()
	if mid != 2 || out != 2 {
		t.Errorf("want depth 2, 2; got %d, %d", mid, out)
	}
	if n := p.OutLen(); n != out {
		t.Errorf("OutLen %d disagrees with Depth %d", n, out)
	}
	if p.State() != stNum {
		t.Errorf("want num state, got %d", p.State())
	}
	if p.Empty() {
		t.Error("parser with pending tokens reports empty")
	}
}

func TestUnrecognizedText(t *testing.T) {
	cases := []struct {
		name string
		src  string
		text string
	}{
		{"ascii", "?", `'?'`},
		{"rune", "é1", `'é'`},
		{"invalid", "\xff", `"\xff"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := testParser(false)
			err := p.Parse(c.src)
			var e *opparser.Error
			if !errors.As(err, &e) {
				t.Fatalf("want *Error, got %v", err)
			}
			if e.Text != c.text {
				t.Errorf("wrong text: want %s, got %s", c.text, e.Text)
			}
		})
	}
}

func TestStatementLexerColumn(t *testing.T) {
	p := testParser(false)
	var results []opparser.Token
	end := opparser.LexFunc(func(p *opparser.Parser, src string) (int, bool, error) {
		if src[0] != ';' {
			return 0, false, nil
		}
		r, err := p.Finish()
		if err != nil {
			return 0, false, err
		}
		results = append(results, r)
		return 1, true, nil
	})
	p.Register(stOper, end)
	err := p.Parse("1+2;?")
	if len(results) != 1 || results[0] != num(3) {
		t.Errorf("want [3], got %v", results)
	}
	var ie opparser.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("want InputError, got %v", err)
	}
	if ie.Pos() != 1 {
		t.Errorf("wrong column after statement end: want 1, got %d", ie.Pos())
	}
}
