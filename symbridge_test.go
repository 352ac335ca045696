package symbridge_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbridge/symbridge"
	"github.com/symbridge/symbridge/engine"
)

func TestGetAttr_KnownName(t *testing.T) {
	fn, err := symbridge.GetAttr("solve")
	require.NoError(t, err)
	require.NotNil(t, fn)
}

func TestGetAttr_UnknownName(t *testing.T) {
	_, err := symbridge.GetAttr("simplify")
	require.Error(t, err)
	assert.True(t, errors.Is(err, symbridge.ErrAttributeNotFound))
	assert.Contains(t, err.Error(), "simplify")
}

func TestGetAttr_DunderExcluded(t *testing.T) {
	for _, name := range []string{"__init__", "__all__", "__getattr__"} {
		_, err := symbridge.GetAttr(name)
		assert.ErrorIs(t, err, symbridge.ErrAttributeNotFound, name)
	}
}

func TestAlias_SharesFunction(t *testing.T) {
	alias, err := symbridge.GetAttr("convert_rationals_to_floats")
	require.NoError(t, err)
	target, err := symbridge.GetAttr("nfloat")
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(target).Pointer(), reflect.ValueOf(alias).Pointer(),
		"alias must bind the identical function value")
}

func TestNames_SortedAndResolvable(t *testing.T) {
	names := symbridge.Names()
	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "solve")
	assert.Contains(t, names, "convert_rationals_to_floats")
	for _, name := range names {
		_, err := symbridge.GetAttr(name)
		assert.NoError(t, err, name)
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	names := symbridge.Names()
	names[0] = "mutated"
	assert.NotEqual(t, "mutated", symbridge.Names()[0])
}

func TestHas(t *testing.T) {
	assert.True(t, symbridge.Has("sqrt_depth"))
	assert.False(t, symbridge.Has("__init__"))
	assert.False(t, symbridge.Has("eval"))
}

func TestSolve_Quadratic(t *testing.T) {
	fn, err := symbridge.GetAttr("solve")
	require.NoError(t, err)

	x := engine.Var("x")
	recv := engine.Sum(engine.Power(x, engine.Int(2)), engine.Int(-4))
	out, err := fn(recv, nil)
	require.NoError(t, err)

	roots, ok := out.([]engine.Expr)
	require.True(t, ok, "solve should return a root list")
	require.Len(t, roots, 2)
	assert.Equal(t, "-2", roots[0].String())
	assert.Equal(t, "2", roots[1].String())
}

func TestSolve_AmbiguousSymbol(t *testing.T) {
	fn, err := symbridge.GetAttr("solve")
	require.NoError(t, err)

	recv := engine.Sum(engine.Var("x"), engine.Var("y"))
	_, err = fn(recv, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestSqrtDepth_Single(t *testing.T) {
	fn, err := symbridge.GetAttr("sqrt_depth")
	require.NoError(t, err)

	out, err := fn(engine.Sqrt(engine.Int(2)), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out)
}

func TestSqrtDepth_Nested(t *testing.T) {
	fn, err := symbridge.GetAttr("sqrt_depth")
	require.NoError(t, err)

	inner := engine.Sum(engine.Int(1), engine.Sqrt(engine.Int(2)))
	out, err := fn(engine.Sqrt(inner), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestIsSqrt_ReturnsBool(t *testing.T) {
	fn, err := symbridge.GetAttr("is_sqrt")
	require.NoError(t, err)

	out, err := fn(engine.Sqrt(engine.Var("x")), nil)
	require.NoError(t, err)
	assert.Equal(t, true, out)

	out, err = fn(engine.Var("x"), nil)
	require.NoError(t, err)
	assert.Equal(t, false, out)
}

func TestNFloat_DefaultsThroughAlias(t *testing.T) {
	fn, err := symbridge.GetAttr("convert_rationals_to_floats")
	require.NoError(t, err)

	out, err := fn(engine.Rat(1, 2), symbridge.Args{})
	require.NoError(t, err)
	e, ok := out.(engine.Expr)
	require.True(t, ok)
	assert.Equal(t, "0.5", e.String())
}

func TestNFloat_PrecisionArg(t *testing.T) {
	fn, err := symbridge.GetAttr("nfloat")
	require.NoError(t, err)

	// JSON-decoded numbers arrive as float64.
	out, err := fn(engine.Rat(1, 3), symbridge.Args{"n": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, "0.33333", out.(engine.Expr).String())
}

func TestSqrtDenest_Classic(t *testing.T) {
	fn, err := symbridge.GetAttr("sqrtdenest")
	require.NoError(t, err)

	inner := engine.Sum(engine.Int(5), engine.Prod(engine.Int(2), engine.Sqrt(engine.Int(6))))
	out, err := fn(engine.Sqrt(inner), nil)
	require.NoError(t, err)
	assert.Equal(t, "2^(1/2) + 3^(1/2)", out.(engine.Expr).String())
}

func TestRadRationalize_ReturnsPair(t *testing.T) {
	fn, err := symbridge.GetAttr("rad_rationalize")
	require.NoError(t, err)

	den := engine.Sum(engine.Int(1), engine.Sqrt(engine.Int(2)))
	out, err := fn(engine.Int(1), symbridge.Args{"den": den})
	require.NoError(t, err)

	pair, ok := out.([]engine.Expr)
	require.True(t, ok)
	require.Len(t, pair, 2)
	assert.Equal(t, "1", pair[1].String())
}

func TestRadRationalize_AcceptsJSONExpr(t *testing.T) {
	fn, err := symbridge.GetAttr("rad_rationalize")
	require.NoError(t, err)

	out, err := fn(engine.Var("x"), symbridge.Args{
		"den": map[string]any{"type": "num", "value": "3"},
	})
	require.NoError(t, err)
	pair := out.([]engine.Expr)
	assert.Equal(t, "x", pair[0].String())
	assert.Equal(t, "3", pair[1].String())
}

func TestNSolve_RequiresStartingPoint(t *testing.T) {
	fn, err := symbridge.GetAttr("nsolve")
	require.NoError(t, err)

	x := engine.Var("x")
	recv := engine.Sum(engine.Power(x, engine.Int(2)), engine.Int(-2))
	_, err = fn(recv, symbridge.Args{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x0")
}

func TestHyperSimp_RequiresSymbol(t *testing.T) {
	fn, err := symbridge.GetAttr("hypersimp")
	require.NoError(t, err)

	_, err = fn(engine.Factorial(engine.Var("k")), symbridge.Args{})
	require.Error(t, err)
}

func TestHyperSimp_Factorial(t *testing.T) {
	fn, err := symbridge.GetAttr("hypersimp")
	require.NoError(t, err)

	out, err := fn(engine.Factorial(engine.Var("k")), symbridge.Args{"k": "k"})
	require.NoError(t, err)
	assert.Equal(t, "k + 1", out.(engine.Expr).String())
}

func TestSymmetrize_ReturnsPair(t *testing.T) {
	fn, err := symbridge.GetAttr("symmetrize")
	require.NoError(t, err)

	x, y := engine.Var("x"), engine.Var("y")
	recv := engine.Sum(engine.Power(x, engine.Int(2)), engine.Power(y, engine.Int(2)))
	out, err := fn(recv, symbridge.Args{"vars": []string{"x", "y"}})
	require.NoError(t, err)

	pair, ok := out.([]engine.Expr)
	require.True(t, ok)
	require.Len(t, pair, 2)
	assert.Equal(t, "0", pair[1].String())
}
