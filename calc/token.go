package calc

import (
	"math"
	"strconv"

	"github.com/zephyrtronium/opparser"
)

// Parser states.
const (
	// StateNum expects an operand: a number, name, unary operator, or open
	// bracket.
	StateNum = opparser.StateInitial
	// StateOper expects an operator, a close bracket, or an assignment.
	StateOper = opparser.StateInitial + 1
	// StateAssign expects the name following ->.
	StateAssign = opparser.StateInitial + 2
)

// Precedence levels. Binary tiers use an odd left level and the next even
// right level, which makes them left-associative. Exponentiation inverts the
// pair to associate to the right.
const (
	levelArrowL  opparser.Level = 2
	levelArrowR  opparser.Level = 3
	levelAddSubL opparser.Level = 255
	levelAddSubR opparser.Level = 256
	levelMulDivL opparser.Level = 511
	levelMulDivR opparser.Level = 512
	levelIMulL   opparser.Level = 639
	levelIMulR   opparser.Level = 640
	levelPosNegR opparser.Level = 700
	levelPowL    opparser.Level = 769
	levelPowR    opparser.Level = 768
	levelFacL    opparser.Level = 1023
	levelFuncR   opparser.Level = 1280
)

// token is a calculator token. Every token is one of the kinds below; fields
// not used by a kind are zero.
type token struct {
	kind tokenKind
	// num is the value of a number.
	num float64
	// op is the operator character of binary and unary operators.
	op byte
	// name is the function, constant, or assignment target name.
	name string
	// fn is the function to call.
	fn Func
	// strict makes an unclosed open bracket an error.
	strict bool
	// c receives the assignment of an arrow.
	c *Calculator
}

type tokenKind int8

const (
	tokenNone tokenKind = iota

	tokenNum    // push num to out
	tokenBinary // pop two numbers, push op applied to them
	tokenIMul   // multiplication implied by adjacent terms
	tokenUnary  // pop a number, push +x, -x, or x!
	tokenOpen   // (
	tokenClose  // ), drops the matching (
	tokenCall   // pop a number, push fn(x)
	tokenArrow  // pop a name and a number, stage the assignment
	tokenTarget // push the name to assign
	tokenName   // assignment target on the out stack
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenBinary:
		return "Binary"
	case tokenIMul:
		return "IMul"
	case tokenUnary:
		return "Unary"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenCall:
		return "Call"
	case tokenArrow:
		return "Arrow"
	case tokenTarget:
		return "Target"
	case tokenName:
		return "Name"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func number(v float64) token {
	return token{kind: tokenNum, num: v}
}

func (t token) LevelLeft() opparser.Level {
	switch t.kind {
	case tokenNum, tokenOpen, tokenCall, tokenTarget, tokenName:
		return opparser.LevelConst
	case tokenBinary:
		switch t.op {
		case '+', '-':
			return levelAddSubL
		case '*', '/', '%':
			return levelMulDivL
		case '^':
			return levelPowL
		}
	case tokenIMul:
		return levelIMulL
	case tokenUnary:
		if t.op == '!' {
			return levelFacL
		}
		return opparser.LevelConst
	case tokenClose:
		return opparser.LevelFlushAll
	case tokenArrow:
		return levelArrowL
	}
	panic("calc: no left level for " + t.String())
}

func (t token) LevelRight() opparser.Level {
	switch t.kind {
	case tokenNum, tokenClose, tokenTarget, tokenName:
		return opparser.LevelConst
	case tokenBinary:
		switch t.op {
		case '+', '-':
			return levelAddSubR
		case '*', '/', '%':
			return levelMulDivR
		case '^':
			return levelPowR
		}
	case tokenIMul:
		return levelIMulR
	case tokenUnary:
		if t.op == '!' {
			return opparser.LevelConst
		}
		return levelPosNegR
	case tokenOpen:
		return opparser.LevelAcceptAll
	case tokenCall:
		return levelFuncR
	case tokenArrow:
		return levelArrowR
	}
	panic("calc: no right level for " + t.String())
}

func (t token) OnPush(p *opparser.Parser) {
	switch t.kind {
	case tokenNum, tokenClose, tokenTarget, tokenName:
		p.SetState(StateOper)
	case tokenBinary, tokenIMul, tokenOpen, tokenCall:
		p.SetState(StateNum)
	case tokenUnary:
		if t.op == '!' {
			p.SetState(StateOper)
		} else {
			p.SetState(StateNum)
		}
	case tokenArrow:
		p.SetState(StateAssign)
	default:
		panic("calc: invalid token kind " + t.kind.String())
	}
}

func (t token) OnPop(p *opparser.Parser) error {
	switch t.kind {
	case tokenNum, tokenName:
		p.PushOut(t)
	case tokenBinary, tokenIMul:
		r, err := popNum(p, t)
		if err != nil {
			return err
		}
		l, err := popNum(p, t)
		if err != nil {
			return err
		}
		op := t.op
		if t.kind == tokenIMul {
			op = '*'
		}
		p.PushOut(number(binary(op, l, r)))
	case tokenUnary:
		x, err := popNum(p, t)
		if err != nil {
			return err
		}
		p.PushOut(number(unary(t.op, x)))
	case tokenOpen:
		// Only the end of input reduces an open bracket. Close brackets drop
		// their match without reducing it.
		if t.strict {
			return p.Fail(opparser.UnbalancedBracket, "open bracket ( with no close bracket")
		}
	case tokenClose:
		top, ok := p.TopMid()
		if !ok {
			return p.Fail(opparser.UnbalancedBracket, "close bracket ) with no open bracket")
		}
		if l, _ := top.(token); l.kind != tokenOpen {
			return p.Fail(opparser.UnbalancedBracket, "close bracket ) after "+top.String())
		}
		p.DropMid()
	case tokenCall:
		x, err := popNum(p, t)
		if err != nil {
			return err
		}
		p.PushOut(number(t.fn(x)))
	case tokenTarget:
		p.PushOut(token{kind: tokenName, name: t.name})
	case tokenArrow:
		name, ok := p.PopOut()
		if !ok {
			return p.Fail(opparser.MissingOperand, "assignment needs a name")
		}
		n, _ := name.(token)
		if n.kind != tokenName {
			return p.Fail(opparser.TypeMismatch, "cannot assign to "+name.String())
		}
		x, err := popNum(p, t)
		if err != nil {
			return err
		}
		t.c.stage(n.name, x)
	default:
		panic("calc: invalid token kind " + t.kind.String())
	}
	return nil
}

func (t token) String() string {
	switch t.kind {
	case tokenNum:
		if t.name != "" {
			return t.name
		}
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case tokenBinary:
		return string(rune(t.op))
	case tokenIMul:
		return "implicit *"
	case tokenUnary:
		if t.op == '!' {
			return "!"
		}
		return "unary " + string(rune(t.op))
	case tokenOpen:
		return "("
	case tokenClose:
		return ")"
	case tokenCall:
		return t.name
	case tokenArrow:
		return "->"
	case tokenTarget:
		return "-> " + t.name
	case tokenName:
		return t.name
	default:
		return "$" + t.kind.String() + "$"
	}
}

// popNum pops a number from the out stack for the reduction of by.
func popNum(p *opparser.Parser, by token) (float64, error) {
	v, ok := p.PopOut()
	if !ok {
		return 0, p.Fail(opparser.MissingOperand, by.String()+" needs an operand")
	}
	n, _ := v.(token)
	if n.kind != tokenNum {
		return 0, p.Fail(opparser.TypeMismatch, by.String()+" applied to "+v.String())
	}
	return n.num, nil
}

func binary(op byte, l, r float64) float64 {
	switch op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '%':
		return l - math.Trunc(l/r)*r
	case '^':
		return math.Pow(l, r)
	default:
		panic("calc: invalid binary operator " + strconv.QuoteRune(rune(op)))
	}
}

func unary(op byte, x float64) float64 {
	switch op {
	case '+':
		return x
	case '-':
		return -x
	case '!':
		// x! = Γ(x+1). Poles give ±Inf or NaN as math.Gamma does.
		return math.Gamma(x + 1)
	default:
		panic("calc: invalid unary operator " + strconv.QuoteRune(rune(op)))
	}
}
