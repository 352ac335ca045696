package engine_test

import (
	"math"
	"testing"

	"github.com/symbridge/symbridge/engine"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := engine.Int(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := engine.Rat(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_ApproxRendering(t *testing.T) {
	n := engine.Rat(1, 2).Approx(15)
	if n.String() != "0.5" {
		t.Errorf("want 0.5, got %s", n.String())
	}
}

func TestNum_ApproxKeepsExactValue(t *testing.T) {
	n := engine.Rat(1, 3).Approx(5)
	if n.Rational().RatString() != "1/3" {
		t.Errorf("approx display should not lose the rational value, got %s", n.Rational().RatString())
	}
}

func TestNum_Eval(t *testing.T) {
	n, ok := engine.Int(7).Eval()
	if !ok || n.String() != "7" {
		t.Errorf("Num.Eval() should succeed with same value")
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub_Match(t *testing.T) {
	x := engine.Var("x")
	result := x.Sub("x", engine.Int(3))
	if result.String() != "3" {
		t.Errorf("want 3, got %s", result.String())
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	x := engine.Var("x")
	result := x.Sub("y", engine.Int(3))
	if result.String() != "x" {
		t.Errorf("want x, got %s", result.String())
	}
}

// ============================================================
// Add tests
// ============================================================

func TestSum_GroupsLikeTerms(t *testing.T) {
	x := engine.Var("x")
	result := engine.Sum(x, x)
	if result.String() != "2*x" {
		t.Errorf("want 2*x, got %s", result.String())
	}
}

func TestSum_FoldsConstants(t *testing.T) {
	x := engine.Var("x")
	result := engine.Sum(engine.Int(2), x, engine.Int(3))
	if result.String() != "x + 5" {
		t.Errorf("want x + 5, got %s", result.String())
	}
}

func TestSum_CancellingTerms(t *testing.T) {
	x := engine.Var("x")
	result := engine.Sum(x, engine.Prod(engine.Int(-1), x))
	if result.String() != "0" {
		t.Errorf("want 0, got %s", result.String())
	}
}

// ============================================================
// Mul tests
// ============================================================

func TestProd_Zero(t *testing.T) {
	result := engine.Prod(engine.Int(0), engine.Var("x"))
	if result.String() != "0" {
		t.Errorf("want 0, got %s", result.String())
	}
}

func TestProd_MergesRepeatedFactors(t *testing.T) {
	x := engine.Var("x")
	result := engine.Prod(x, x)
	if result.String() != "x^2" {
		t.Errorf("want x^2, got %s", result.String())
	}
}

func TestProd_MergesSquareRoots(t *testing.T) {
	result := engine.Prod(engine.Sqrt(engine.Int(2)), engine.Sqrt(engine.Int(2)))
	if result.String() != "2" {
		t.Errorf("sqrt(2)*sqrt(2) should be 2, got %s", result.String())
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPower_IntegerFold(t *testing.T) {
	result := engine.Power(engine.Int(2), engine.Int(10))
	if result.String() != "1024" {
		t.Errorf("want 1024, got %s", result.String())
	}
}

func TestPower_ExactSquareRoot(t *testing.T) {
	result := engine.Sqrt(engine.Int(4))
	if result.String() != "2" {
		t.Errorf("sqrt(4) should be 2, got %s", result.String())
	}
}

func TestPower_IrrationalStaysSymbolic(t *testing.T) {
	result := engine.Sqrt(engine.Int(2))
	if result.String() != "2^(1/2)" {
		t.Errorf("want 2^(1/2), got %s", result.String())
	}
}

func TestPower_ExactCubeRoot(t *testing.T) {
	result := engine.Power(engine.Int(27), engine.Rat(1, 3))
	if result.String() != "3" {
		t.Errorf("27^(1/3) should be 3, got %s", result.String())
	}
}

// ============================================================
// Diff / Eval tests
// ============================================================

func TestDiff_Power(t *testing.T) {
	x := engine.Var("x")
	result := engine.Power(x, engine.Int(3)).Diff("x").Simplify()
	if result.String() != "3*x^2" {
		t.Errorf("d/dx(x^3) should be 3*x^2, got %s", result.String())
	}
}

func TestEval_Sin(t *testing.T) {
	e := engine.Sin(engine.Var("x")).Sub("x", engine.Float(math.Pi/2))
	n, ok := e.Eval()
	if !ok {
		t.Fatalf("sin(pi/2) should evaluate")
	}
	if math.Abs(n.Float64()-1) > 1e-9 {
		t.Errorf("sin(pi/2) should be 1, got %g", n.Float64())
	}
}

func TestEval_ExpOverflowFails(t *testing.T) {
	if n, ok := engine.Exp(engine.Int(1000)).Eval(); ok {
		t.Errorf("exp(1000) overflows, Eval should fail, got %s", n.String())
	}
}

// ============================================================
// Func folding tests
// ============================================================

func TestFactorial_Folds(t *testing.T) {
	result := engine.Factorial(engine.Int(5))
	if result.String() != "120" {
		t.Errorf("5! should be 120, got %s", result.String())
	}
}

func TestGamma_Folds(t *testing.T) {
	result := engine.Gamma(engine.Int(5))
	if result.String() != "24" {
		t.Errorf("gamma(5) should be 24, got %s", result.String())
	}
}

func TestLn_One(t *testing.T) {
	result := engine.Ln(engine.Int(1))
	if result.String() != "0" {
		t.Errorf("ln(1) should be 0, got %s", result.String())
	}
}

func TestLn_SymbolicStays(t *testing.T) {
	result := engine.Ln(engine.Int(2))
	if result.String() != "ln(2)" {
		t.Errorf("ln(2) should stay exact, got %s", result.String())
	}
}
