package opparser

import (
	"math"
	"strconv"
)

// Level is a precedence level. When a token arrives, every pending token whose
// right level is greater than the new token's left level is reduced first.
type Level int

// Levels fixed by the engine. Instantiations choose their operator levels
// strictly between LevelFlushAll and LevelConst.
const (
	// LevelFinish is the left level of the end-of-input sentinel. It is lower
	// than every other level, so finishing reduces everything.
	LevelFinish Level = math.MinInt
	// LevelAcceptAll is the right level of an open bracket: nothing arriving
	// inside the bracket reduces it.
	LevelAcceptAll Level = 0
	// LevelFlushAll is the left level of a close bracket: everything down to
	// the matching open bracket reduces before it is pushed.
	LevelFlushAll Level = 1
	// LevelConst is the level of atoms such as numbers.
	LevelConst Level = 4095
)

func (l Level) String() string {
	switch l {
	case LevelFinish:
		return "finish"
	case LevelConst:
		return "const"
	default:
		return strconv.Itoa(int(l))
	}
}

// State selects the lexer chain consulted for the next token.
type State int

// StateInitial is the state of a freshly reset parser.
const StateInitial State = 0

// Token is a precedence-tagged token. Tokens are created by lexers, live on the
// mid stack until they are reduced, and may leave values on the out stack.
type Token interface {
	// LevelLeft is the precedence compared against the right levels of
	// pending tokens when this token arrives.
	LevelLeft() Level
	// LevelRight is the precedence compared against the left level of each
	// token that arrives while this token is pending.
	LevelRight() Level
	// OnPush is called once when the parser accepts the token, before any
	// reductions. It may only set the parser state that governs the next
	// lexer attempt.
	OnPush(p *Parser)
	// OnPop is called once when the token is reduced. It may consume values
	// from the out stack and push a result.
	OnPop(p *Parser) error
	// String describes the token for errors and logs.
	String() string
}

// finToken is the end-of-input sentinel.
type finToken struct{}

func (finToken) LevelLeft() Level { return LevelFinish }
func (finToken) LevelRight() Level { return LevelFinish }
func (finToken) OnPush(*Parser) {}
func (finToken) OnPop(*Parser) error { panic("opparser: reduced end of input") }
func (finToken) String() string { return "end of input" }
