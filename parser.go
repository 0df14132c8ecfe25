package opparser

import (
	"strconv"

	"github.com/rs/zerolog"
)

// Parser is an operator-precedence parser using a generalized shunting-yard
// algorithm. Tokens not yet reduced wait on the mid stack; reduced values
// collect on the out stack. A Parser must have lexers registered before use.
//
// A Parser is not safe for concurrent use. Its stacks and state are mutated in
// place by Parse, Push, and Finish.
type Parser struct {
	state  State
	mid    []Token
	out    []Token
	lexers map[State][]Lexer
	// col is the number of bytes consumed in the current statement.
	col int
	// resets counts calls to Reset, so Parse can tell that a lexer ended the
	// statement.
	resets int
	log zerolog.Logger
}

// NewParser creates a parser with no lexers. Pass zerolog.Nop() to disable
// logging.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{
		lexers: make(map[State][]Lexer),
		log:    log,
	}
}

// State returns the state that selects the next lexer chain.
func (p *Parser) State() State {
	return p.state
}

// SetState sets the state that selects the next lexer chain. Tokens call it
// from OnPush.
func (p *Parser) SetState(s State) {
	p.state = s
}

// Empty returns whether both stacks are empty, i.e. there is no pending
// statement to finish.
func (p *Parser) Empty() bool {
	return len(p.mid) == 0 && len(p.out) == 0
}

// Depth returns the sizes of the mid and out stacks.
func (p *Parser) Depth() (mid, out int) {
	return len(p.mid), len(p.out)
}

// Reset clears both stacks and returns to StateInitial. Registered lexers are
// kept.
func (p *Parser) Reset() {
	p.state = StateInitial
	for i := range p.mid {
		p.mid[i] = nil
	}
	for i := range p.out {
		p.out[i] = nil
	}
	p.mid = p.mid[:0]
	p.out = p.out[:0]
	p.col = 0
	p.resets++
}

// Fail creates an error of the given kind positioned at the cursor.
func (p *Parser) Fail(k Kind, text string) error {
	return &Error{Kind: k, Col: p.col + 1, Text: text}
}

// Push accepts a token. It calls t.OnPush, then reduces every pending token
// whose right level is greater than t's left level, then places t on the mid
// stack. Equal levels are a TokenCollision.
func (p *Parser) Push(t Token) error {
	t.OnPush(p)
	p.log.Debug().Stringer("token", t).Int("state", int(p.state)).Msg("push")
	for len(p.mid) > 0 {
		top := p.mid[len(p.mid)-1]
		r, l := top.LevelRight(), t.LevelLeft()
		if r < l {
			break
		}
		if r == l {
			return p.Fail(TokenCollision, top.String()+" then "+t.String()+" at level "+l.String())
		}
		if err := p.Reduce(); err != nil {
			return err
		}
	}
	p.mid = append(p.mid, t)
	return nil
}

// Reduce pops the top of the mid stack and calls its OnPop. Panics if the mid
// stack is empty.
func (p *Parser) Reduce() error {
	t, ok := p.DropMid()
	if !ok {
		panic("opparser: Reduce with empty mid stack")
	}
	p.log.Debug().Stringer("token", t).Int("out", len(p.out)).Msg("reduce")
	return t.OnPop(p)
}

// TopMid returns the top of the mid stack without removing it.
func (p *Parser) TopMid() (Token, bool) {
	if len(p.mid) == 0 {
		return nil, false
	}
	return p.mid[len(p.mid)-1], true
}

// DropMid removes the top of the mid stack without reducing it.
func (p *Parser) DropMid() (Token, bool) {
	if len(p.mid) == 0 {
		return nil, false
	}
	t := p.mid[len(p.mid)-1]
	p.mid[len(p.mid)-1] = nil
	p.mid = p.mid[:len(p.mid)-1]
	return t, true
}

// PushOut pushes a reduced value to the out stack.
func (p *Parser) PushOut(t Token) {
	p.out = append(p.out, t)
}

// PopOut removes the top of the out stack.
func (p *Parser) PopOut() (Token, bool) {
	if len(p.out) == 0 {
		return nil, false
	}
	t := p.out[len(p.out)-1]
	p.out[len(p.out)-1] = nil
	p.out = p.out[:len(p.out)-1]
	return t, true
}

// OutLen returns the number of values on the out stack.
func (p *Parser) OutLen() int {
	return len(p.out)
}

// Parse feeds input to the lexer chains. It may be called several times before
// Finish to continue a statement. On error, the parser is reset.
func (p *Parser) Parse(src string) error {
	for len(src) > 0 {
		r := p.resets
		n, err := p.scan(src)
		if err != nil {
			p.log.Debug().Err(err).Msg("parse failed")
			p.Reset()
			return err
		}
		src = src[n:]
		if r == p.resets {
			p.col += n
		}
		// Otherwise the lexer finished the statement, and the bytes it
		// consumed belong to the one that ended.
	}
	return nil
}

// Finish reduces every pending token and returns the single remaining value.
// The parser is reset afterward whether or not there is an error.
func (p *Parser) Finish() (Token, error) {
	defer p.Reset()
	if err := p.Push(finToken{}); err != nil {
		p.log.Debug().Err(err).Msg("finish failed")
		return nil, err
	}
	// Everything below the sentinel has been reduced.
	p.DropMid()
	switch len(p.out) {
	case 0:
		return nil, p.Fail(IncompleteExpression, "")
	case 1:
		r := p.out[0]
		p.log.Debug().Stringer("result", r).Msg("finish")
		return r, nil
	default:
		return nil, p.Fail(MalformedResult, strconv.Itoa(len(p.out))+" values")
	}
}
