package engine_test

import (
	"testing"

	"github.com/symbridge/symbridge/engine"
)

func TestDegree(t *testing.T) {
	x := engine.Var("x")
	e := engine.Sum(engine.Power(x, engine.Int(3)), x, engine.Int(7))
	if d := engine.Degree(e, "x"); d != 3 {
		t.Errorf("want degree 3, got %d", d)
	}
	if d := engine.Degree(e, "y"); d != 0 {
		t.Errorf("want degree 0 in y, got %d", d)
	}
}

func TestPolyCoeffs(t *testing.T) {
	x := engine.Var("x")
	e := engine.Sum(
		engine.Prod(engine.Int(2), engine.Power(x, engine.Int(2))),
		engine.Prod(engine.Int(-3), x),
		engine.Int(5),
	)
	coeffs := engine.PolyCoeffs(e, "x")
	if coeffs[2].String() != "2" || coeffs[1].String() != "-3" || coeffs[0].String() != "5" {
		t.Errorf("unexpected coefficients: %v", coeffs)
	}
}

func TestCollect_GroupsByPower(t *testing.T) {
	x, a, b := engine.Var("x"), engine.Var("a"), engine.Var("b")
	e := engine.Sum(engine.Prod(a, x), engine.Prod(b, x))
	result := engine.Collect(e, "x")
	if result.String() != "(a + b)*x" {
		t.Errorf("want (a + b)*x, got %s", result.String())
	}
}

func TestHorner_Cubic(t *testing.T) {
	x := engine.Var("x")
	e := engine.Sum(
		engine.Power(x, engine.Int(3)),
		engine.Prod(engine.Int(2), engine.Power(x, engine.Int(2))),
		engine.Prod(engine.Int(3), x),
		engine.Int(4),
	)
	result, err := engine.Horner(e, "x")
	if err != nil {
		t.Fatalf("horner failed: %v", err)
	}
	if result.String() != "x*(x*(x + 2) + 3) + 4" {
		t.Errorf("want x*(x*(x + 2) + 3) + 4, got %s", result.String())
	}
}

func TestHorner_RoundTripsThroughExpand(t *testing.T) {
	x := engine.Var("x")
	e := engine.Sum(
		engine.Prod(engine.Int(5), engine.Power(x, engine.Int(2))),
		engine.Prod(engine.Int(-1), x),
		engine.Int(9),
	)
	nested, err := engine.Horner(e, "x")
	if err != nil {
		t.Fatalf("horner failed: %v", err)
	}
	if !engine.Expand(nested).Simplify().Equal(engine.Expand(e).Simplify()) {
		t.Errorf("horner form should expand back to the input, got %s", nested.String())
	}
}

func TestHorner_NonPolynomialFails(t *testing.T) {
	x := engine.Var("x")
	if _, err := engine.Horner(engine.Sin(x), "x"); err != nil {
		// sin(x) has degree 0 in x, so it passes through unchanged.
		t.Fatalf("degree-0 input should pass through: %v", err)
	}
}

func TestHorner_MixedTranscendentalFails(t *testing.T) {
	x := engine.Var("x")
	if _, err := engine.Horner(engine.Sum(engine.Sin(x), x), "x"); err == nil {
		t.Errorf("sin(x) + x is not polynomial in x, expected an error")
	}
}

func TestSymmetrize_SumOfSquares(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(engine.Power(x, engine.Int(2)), engine.Power(y, engine.Int(2)))
	sym, rem, err := engine.Symmetrize(e, []string{"x", "y"})
	if err != nil {
		t.Fatalf("symmetrize failed: %v", err)
	}
	if rem.String() != "0" {
		t.Errorf("x^2 + y^2 is symmetric, remainder should be 0, got %s", rem.String())
	}
	if !engine.Expand(sym).Simplify().Equal(engine.Expand(e).Simplify()) {
		t.Errorf("symmetrized form should expand back to the input, got %s", sym.String())
	}
}

func TestSymmetrize_LeavesAsymmetricRemainder(t *testing.T) {
	x, y := engine.Var("x"), engine.Var("y")
	e := engine.Sum(x, y, engine.Power(x, engine.Int(2)))
	sym, rem, err := engine.Symmetrize(e, []string{"x", "y"})
	if err != nil {
		t.Fatalf("symmetrize failed: %v", err)
	}
	if rem.String() != "x^2" {
		t.Errorf("want remainder x^2, got %s", rem.String())
	}
	if sym.String() != "x + y" {
		t.Errorf("want symmetric part x + y, got %s", sym.String())
	}
}

func TestSymmetrize_NeedsTwoVariables(t *testing.T) {
	if _, _, err := engine.Symmetrize(engine.Var("x"), []string{"x"}); err == nil {
		t.Errorf("symmetrize with one variable should fail")
	}
}
