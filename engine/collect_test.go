package engine_test

import (
	"testing"

	"github.com/symbridge/symbridge/engine"
)

func TestCollectSqrt_GroupsByRadical(t *testing.T) {
	a, b := engine.Var("a"), engine.Var("b")
	sqrt2 := engine.Sqrt(engine.Int(2))
	e := engine.Sum(engine.Prod(a, sqrt2), engine.Prod(b, sqrt2))
	result := engine.CollectSqrt(e)
	if result.String() != "2^(1/2)*(a + b)" {
		t.Errorf("want 2^(1/2)*(a + b), got %s", result.String())
	}
}

func TestCollectConst_GroupsByCoefficient(t *testing.T) {
	x, y, z := engine.Var("x"), engine.Var("y"), engine.Var("z")
	e := engine.Sum(
		engine.Prod(engine.Int(2), x),
		engine.Prod(engine.Int(2), y),
		engine.Prod(engine.Int(3), z),
	)
	result := engine.CollectConst(e)
	if result.String() != "2*(x + y) + 3*z" {
		t.Errorf("want 2*(x + y) + 3*z, got %s", result.String())
	}
}

func TestGCDTerms_NumericAndSymbolic(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(engine.Prod(engine.Int(4), x), engine.Prod(engine.Int(8), x, y))
	result := engine.GCDTerms(e)
	if result.String() != "4*(2*y + 1)*x" {
		t.Errorf("want 4*(2*y + 1)*x, got %s", result.String())
	}
}

func TestGCDTerms_NothingInCommon(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(x, y)
	result := engine.GCDTerms(e)
	if !result.Equal(e) {
		t.Errorf("x + y has no common factor, got %s", result.String())
	}
}

func TestFactorTerms_PullsNegativeSign(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(engine.Prod(engine.Int(-2), x), engine.Prod(engine.Int(-4), y))
	result := engine.FactorTerms(e)
	if result.String() != "-2*(x + 2*y)" {
		t.Errorf("want -2*(x + 2*y), got %s", result.String())
	}
}

func TestSeparateVars_FactorsOutVariable(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(x, engine.Prod(x, y))
	result := engine.SeparateVars(e)
	if result.String() != "x*(y + 1)" {
		t.Errorf("want x*(y + 1), got %s", result.String())
	}
}

func TestFactorNC_MatchesFactorTerms(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(engine.Prod(engine.Int(4), x), engine.Prod(engine.Int(8), x, y))
	if !engine.FactorNC(e).Equal(engine.FactorTerms(e)) {
		t.Errorf("factor_nc should agree with factor_terms on commutative input")
	}
}

func TestLogCombine_MergesSum(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(engine.Ln(x), engine.Ln(y))
	result := engine.LogCombine(e, false)
	if result.String() != "ln(x*y)" {
		t.Errorf("want ln(x*y), got %s", result.String())
	}
}

func TestLogCombine_FoldsIntegerCoefficient(t *testing.T) {
	x := engine.Var("x")
	e := engine.Prod(engine.Int(2), engine.Ln(x))
	result := engine.LogCombine(e, false)
	if result.String() != "ln(x^2)" {
		t.Errorf("want ln(x^2), got %s", result.String())
	}
}

func TestLogCombine_SymbolicCoefficientNeedsForce(t *testing.T) {
	x, a := engine.Var("x"), engine.Var("a")
	e := engine.Prod(a, engine.Ln(x))
	if got := engine.LogCombine(e, false); !got.Equal(e) {
		t.Errorf("a*ln(x) should stay put without force, got %s", got.String())
	}
	if got := engine.LogCombine(e, true); got.String() != "ln(x^a)" {
		t.Errorf("want ln(x^a) with force, got %s", got.String())
	}
}

func TestPowDenest_Force(t *testing.T) {
	x, a, b := engine.Var("x"), engine.Var("a"), engine.Var("b")
	e := engine.Power(engine.Power(x, a), b)
	result := engine.PowDenest(e, true)
	if result.String() != "x^(a*b)" {
		t.Errorf("want x^(a*b), got %s", result.String())
	}
}

func TestPowDenest_NoForceKeepsSymbolicOuter(t *testing.T) {
	x, a, b := engine.Var("x"), engine.Var("a"), engine.Var("b")
	e := engine.Power(engine.Power(x, a), b)
	if got := engine.PowDenest(e, false); !got.Equal(e) {
		t.Errorf("(x^a)^b should stay put without force, got %s", got.String())
	}
}

func TestHyperSimp_Factorial(t *testing.T) {
	k := engine.Var("k")
	ratio, err := engine.HyperSimp(engine.Factorial(k), "k")
	if err != nil {
		t.Fatalf("hypersimp failed: %v", err)
	}
	if ratio.String() != "k + 1" {
		t.Errorf("want k + 1, got %s", ratio.String())
	}
}

func TestHyperSimp_GammaRatio(t *testing.T) {
	k := engine.Var("k")
	ratio, err := engine.HyperSimp(engine.Gamma(engine.Sum(k, engine.Int(2))), "k")
	if err != nil {
		t.Fatalf("hypersimp failed: %v", err)
	}
	if ratio.String() != "k + 2" {
		t.Errorf("want k + 2, got %s", ratio.String())
	}
}

func TestHyperSimp_NotHypergeometric(t *testing.T) {
	k := engine.Var("k")
	if _, err := engine.HyperSimp(engine.Gamma(engine.Power(k, engine.Int(2))), "k"); err == nil {
		t.Errorf("gamma(k^2) is not hypergeometric, expected an error")
	}
}
