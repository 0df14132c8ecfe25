package calc

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/opparser"
)

// Calculator evaluates arithmetic statements with an operator-precedence
// parser. Feed a statement with one or more calls to Parse, then evaluate it
// with Finish.
//
// A Calculator is not safe for concurrent use.
type Calculator struct {
	p   *opparser.Parser
	env *Env
	log zerolog.Logger

	lenient bool
	noimul  bool
	onStmt  func(float64)

	// staged holds assignments made by the current statement, in order. They
	// are committed to env only when the statement finishes successfully.
	staged []assignment
}

type assignment struct {
	name string
	val  float64
}

// New creates a calculator. The options are applied in order.
func New(opts ...Option) *Calculator {
	c := Calculator{log: zerolog.Nop()}
	for _, opt := range opts {
		opt.calcOption(&c)
	}
	if c.env == nil {
		c.env = NewEnv()
	}
	c.p = opparser.NewParser(c.log)
	c.register()
	return &c
}

// Init resets any pending statement and restores the default functions and
// constants in the environment, including those changed by assignment. Other
// constants are kept. Calling Init more than once is harmless.
//
// New does not call Init, so an environment given with WithEnv keeps the
// values set on it.
func (c *Calculator) Init() {
	c.register()
	c.env.populate()
}

// register resets the parser and registers the lexer chains.
func (c *Calculator) register() {
	c.Reset()
	c.p.ClearLexers()

	if c.onStmt != nil {
		stmt := opparser.LexFunc(c.lexStatement)
		c.p.Register(StateNum, stmt)
		c.p.Register(StateOper, stmt)
	}
	c.p.Register(StateNum,
		opparser.LexFunc(c.lexNum),
		opparser.LexFunc(c.lexIdent),
		opparser.LexFunc(lexUnary),
		opparser.LexFunc(c.lexOpen),
		opparser.LexFunc(lexSpace),
	)
	c.p.Register(StateOper,
		opparser.LexFunc(lexBinary),
		opparser.LexFunc(c.lexArrow),
		opparser.LexFunc(lexClose),
		opparser.LexFunc(lexSpace),
	)
	if !c.noimul {
		c.p.Register(StateOper, opparser.LexFunc(lexIMul))
	}
	c.p.Register(StateAssign,
		opparser.LexFunc(c.lexTarget),
		opparser.LexFunc(lexSpace),
	)
}

// Parse feeds input to the current statement. On error, the statement is
// discarded.
func (c *Calculator) Parse(src string) error {
	if err := c.p.Parse(src); err != nil {
		c.staged = c.staged[:0]
		return err
	}
	return nil
}

// Finish evaluates the current statement and starts a new one. The result is
// also stored as the constant ans. A statement whose only effect is
// assignment, like "5 -> x", results in the last value assigned. If there is
// an error, no assignments from the statement take effect.
func (c *Calculator) Finish() (float64, error) {
	if c.Pending() && c.p.State() != StateOper {
		// The statement ended after an operator, bracket, function, or ->.
		err := c.p.Fail(opparser.IncompleteExpression, "statement ends where a term is expected")
		c.Reset()
		return 0, err
	}
	r, err := c.p.Finish()
	var v float64
	switch {
	case err == nil:
		t, _ := r.(token)
		if t.kind != tokenNum {
			panic("calc: statement finished with non-number " + r.String())
		}
		v = t.num
	case len(c.staged) > 0 && errors.Is(err, opparser.IncompleteExpression):
		v = c.staged[len(c.staged)-1].val
	default:
		c.staged = c.staged[:0]
		c.log.Debug().Err(err).Msg("statement failed")
		return 0, err
	}
	for _, a := range c.staged {
		c.env.consts[a.name] = a.val
		c.log.Debug().Str("name", a.name).Float64("value", a.val).Msg("assign")
	}
	c.staged = c.staged[:0]
	c.env.consts["ans"] = v
	return v, nil
}

// Eval parses and finishes a single statement.
func (c *Calculator) Eval(src string) (float64, error) {
	if err := c.Parse(src); err != nil {
		return 0, err
	}
	return c.Finish()
}

// Reset discards the pending statement and its assignments.
func (c *Calculator) Reset() {
	c.p.Reset()
	c.staged = c.staged[:0]
}

// Pending returns whether there is a statement to finish.
func (c *Calculator) Pending() bool {
	return !c.p.Empty()
}

// State returns the parser state, which tells whether the current statement
// is waiting for an operand.
func (c *Calculator) State() opparser.State {
	return c.p.State()
}

// Env returns the calculator's environment.
func (c *Calculator) Env() *Env {
	return c.env
}

// Parser returns the underlying parser.
func (c *Calculator) Parser() *opparser.Parser {
	return c.p
}

// stage records an assignment to commit when the statement finishes.
func (c *Calculator) stage(name string, val float64) {
	c.staged = append(c.staged, assignment{name, val})
}

// lookup finds a constant, preferring assignments staged by the current
// statement.
func (c *Calculator) lookup(name string) (float64, bool) {
	for i := len(c.staged) - 1; i >= 0; i-- {
		if c.staged[i].name == name {
			return c.staged[i].val, true
		}
	}
	return c.env.Const(name)
}

// EvalString is a shortcut to evaluate a statement with a new calculator and
// the default environment.
func EvalString(src string, opts ...Option) (float64, error) {
	return New(opts...).Eval(src)
}
