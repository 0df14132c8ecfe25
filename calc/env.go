package calc

import (
	"slices"
	"strconv"

	"github.com/zephyrtronium/opparser"
)

// Env holds the function and constant tables used by a calculator. It is not
// safe to use an Env concurrently; give each session its own, or use Clone.
type Env struct {
	funcs  map[string]Func
	consts map[string]float64
}

// NewEnv creates an environment holding the default functions and constants.
func NewEnv() *Env {
	e := Env{
		funcs:  make(map[string]Func, len(globalfuncs)),
		consts: make(map[string]float64, len(globalconsts)),
	}
	e.populate()
	return &e
}

// populate restores the default functions and constants. Other names and ans
// are kept.
func (e *Env) populate() {
	for k, v := range globalfuncs {
		e.funcs[k] = v
	}
	for k, v := range globalconsts {
		if _, ok := e.consts[k]; ok && k == "ans" {
			continue
		}
		e.consts[k] = v
	}
}

// Func returns the function with the given name.
func (e *Env) Func(name string) (Func, bool) {
	f, ok := e.funcs[name]
	return f, ok
}

// Const returns the value of the constant with the given name.
func (e *Env) Const(name string) (float64, bool) {
	v, ok := e.consts[name]
	return v, ok
}

// SetConst sets the value of a constant. The name must be an identifier that
// is not a function name.
func (e *Env) SetConst(name string, value float64) error {
	if !isIdent(name) {
		return &NameError{Name: name, Kind: opparser.UnrecognizedInput}
	}
	if _, ok := e.funcs[name]; ok {
		return &NameError{Name: name, Kind: opparser.AssignToFunction}
	}
	e.consts[name] = value
	return nil
}

// SetFunc sets a function. A nil fn removes the function. Function names shadow
// constants of the same name.
func (e *Env) SetFunc(name string, fn Func) error {
	if !isIdent(name) {
		return &NameError{Name: name, Kind: opparser.UnrecognizedInput}
	}
	if fn == nil {
		delete(e.funcs, name)
		return nil
	}
	e.funcs[name] = fn
	return nil
}

// Consts returns the sorted names of all constants.
func (e *Env) Consts() []string {
	names := make([]string, 0, len(e.consts))
	for k := range e.consts {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Funcs returns the sorted names of all functions.
func (e *Env) Funcs() []string {
	names := make([]string, 0, len(e.funcs))
	for k := range e.funcs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Clone creates a copy of the environment. Assignments to either do not
// affect the other.
func (e *Env) Clone() *Env {
	n := Env{
		funcs:  make(map[string]Func, len(e.funcs)),
		consts: make(map[string]float64, len(e.consts)),
	}
	for k, v := range e.funcs {
		n.funcs[k] = v
	}
	for k, v := range e.consts {
		n.consts[k] = v
	}
	return &n
}

// NameError is an error from defining a name in an environment. It unwraps to
// its Kind.
type NameError struct {
	// Name is the rejected name.
	Name string
	// Kind is the reason for rejecting it.
	Kind opparser.Kind
}

func (err *NameError) Error() string {
	return err.Kind.String() + ": " + strconv.Quote(err.Name)
}

func (err *NameError) Unwrap() error {
	return err.Kind
}
