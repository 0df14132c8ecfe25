package calc

import "github.com/rs/zerolog"

// Option is an option for creating a calculator.
type Option interface {
	calcOption(*Calculator)
}

type (
	envopt  struct{ env *Env }
	logopt  struct{ log zerolog.Logger }
	stmtopt struct{ fn func(float64) }
	flagopt int8
)

const (
	lenientopt flagopt = iota
	noimulopt
)

// WithEnv uses env for functions and constants instead of a new default
// environment. Assignments made by the calculator modify env.
func WithEnv(env *Env) Option {
	return envopt{env}
}

func (o envopt) calcOption(c *Calculator) {
	c.env = o.env
}

// WithLogger logs parser activity to log at debug level. The default is
// zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return logopt{log}
}

func (o logopt) calcOption(c *Calculator) {
	c.log = o.log
}

// OnStatement makes a semicolon end a statement in the middle of input. When
// a statement ends, it is finished, and fn is called with its result. An error
// finishing the statement is returned from Parse.
func OnStatement(fn func(float64)) Option {
	return stmtopt{fn}
}

func (o stmtopt) calcOption(c *Calculator) {
	c.onStmt = o.fn
}

// LenientBrackets allows open brackets that are never closed, so that "(1+2"
// is 3. By default, it is an error.
func LenientBrackets() Option {
	return lenientopt
}

// NoImplicitMul disables multiplication by juxtaposition. With it, "3 pi" is
// an error rather than 3*pi.
func NoImplicitMul() Option {
	return noimulopt
}

func (o flagopt) calcOption(c *Calculator) {
	switch o {
	case lenientopt:
		c.lenient = true
	case noimulopt:
		c.noimul = true
	default:
		panic("calc: unknown option")
	}
}
