package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/opparser"
	"github.com/zephyrtronium/opparser/calc"
)

func TestEnvSetConst(t *testing.T) {
	env := calc.NewEnv()
	require.NoError(t, env.SetConst("x1_y", 2))
	v, ok := env.Const("x1_y")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	err := env.SetConst("sin", 1)
	assert.True(t, errors.Is(err, opparser.AssignToFunction), "want assign to function, got %v", err)
	var ne *calc.NameError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "sin", ne.Name)

	for _, name := range []string{"", "1x", "_x", "x-y", "x y"} {
		err := env.SetConst(name, 1)
		assert.True(t, errors.Is(err, opparser.UnrecognizedInput), "%q: want unrecognized input, got %v", name, err)
	}
}

func TestEnvSetFunc(t *testing.T) {
	env := calc.NewEnv()
	require.NoError(t, env.SetFunc("half", func(x float64) float64 { return x / 2 }))
	c := calc.New(calc.WithEnv(env))
	r, err := c.Eval("half 9")
	require.NoError(t, err)
	assert.Equal(t, 4.5, r)

	// A function shadows a constant of the same name.
	require.NoError(t, env.SetFunc("e", math.Exp))
	r, err = c.Eval("e 0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)

	require.NoError(t, env.SetFunc("half", nil))
	_, err = c.Eval("half 9")
	assert.True(t, errors.Is(err, opparser.UnknownIdentifier), "want unknown identifier, got %v", err)

	err = env.SetFunc("2x", math.Abs)
	assert.True(t, errors.Is(err, opparser.UnrecognizedInput), "want unrecognized input, got %v", err)
}

func TestEnvNames(t *testing.T) {
	env := calc.NewEnv()
	consts := env.Consts()
	assert.Subset(t, consts, []string{"ans", "e", "inf", "nan", "phi", "pi", "tau"})
	assert.IsIncreasing(t, consts)
	funcs := env.Funcs()
	assert.Contains(t, funcs, "sin")
	assert.Contains(t, funcs, "lgamma")
	assert.IsIncreasing(t, funcs)
}

func TestEnvClone(t *testing.T) {
	env := calc.NewEnv()
	require.NoError(t, env.SetConst("a", 1))
	cl := env.Clone()
	require.NoError(t, cl.SetConst("a", 2))
	require.NoError(t, cl.SetFunc("f", math.Abs))
	a, _ := env.Const("a")
	assert.Equal(t, 1.0, a)
	_, ok := env.Func("f")
	assert.False(t, ok)
	a, _ = cl.Const("a")
	assert.Equal(t, 2.0, a)
}
