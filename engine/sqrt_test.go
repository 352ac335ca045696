package engine_test

import (
	"testing"

	"github.com/symbridge/symbridge/engine"
)

func TestIsSqrt(t *testing.T) {
	x := engine.Var("x")
	if !engine.IsSqrt(engine.Sqrt(x)) {
		t.Errorf("sqrt(x) should be a square root")
	}
	if engine.IsSqrt(engine.Power(x, engine.Int(2))) {
		t.Errorf("x^2 should not be a square root")
	}
	if engine.IsSqrt(x) {
		t.Errorf("x should not be a square root")
	}
}

func TestSqrtDepth_Atom(t *testing.T) {
	if d := engine.SqrtDepth(engine.Var("x")); d != 0 {
		t.Errorf("depth of x should be 0, got %d", d)
	}
}

func TestSqrtDepth_Single(t *testing.T) {
	if d := engine.SqrtDepth(engine.Sqrt(engine.Int(2))); d != 1 {
		t.Errorf("depth of sqrt(2) should be 1, got %d", d)
	}
}

func TestSqrtDepth_Nested(t *testing.T) {
	inner := engine.Sum(engine.Int(1), engine.Sqrt(engine.Int(2)))
	if d := engine.SqrtDepth(engine.Sqrt(inner)); d != 2 {
		t.Errorf("depth of sqrt(1+sqrt(2)) should be 2, got %d", d)
	}
}

func TestSqrtDepth_ProductTakesMax(t *testing.T) {
	e := engine.Prod(engine.Var("x"), engine.Sqrt(engine.Int(2)))
	if d := engine.SqrtDepth(e); d != 1 {
		t.Errorf("depth of x*sqrt(2) should be 1, got %d", d)
	}
}

func TestSqrtDenest_Classic(t *testing.T) {
	// sqrt(5 + 2*sqrt(6)) = sqrt(2) + sqrt(3)
	inner := engine.Sum(engine.Int(5), engine.Prod(engine.Int(2), engine.Sqrt(engine.Int(6))))
	result := engine.SqrtDenest(engine.Sqrt(inner), 3)
	if result.String() != "2^(1/2) + 3^(1/2)" {
		t.Errorf("want 2^(1/2) + 3^(1/2), got %s", result.String())
	}
}

func TestSqrtDenest_NotDenestable(t *testing.T) {
	inner := engine.Sum(engine.Int(1), engine.Sqrt(engine.Int(2)))
	e := engine.Sqrt(inner)
	result := engine.SqrtDenest(e, 3)
	if !result.Equal(e) {
		t.Errorf("sqrt(1+sqrt(2)) should stay put, got %s", result.String())
	}
}

func TestNthRoot_ExactInteger(t *testing.T) {
	root, err := engine.NthRoot(engine.Int(27), 3)
	if err != nil {
		t.Fatalf("nthroot failed: %v", err)
	}
	if root.String() != "3" {
		t.Errorf("want 3, got %s", root.String())
	}
}

func TestNthRoot_ExactRational(t *testing.T) {
	root, err := engine.NthRoot(engine.Rat(8, 27), 3)
	if err != nil {
		t.Fatalf("nthroot failed: %v", err)
	}
	if root.String() != "2/3" {
		t.Errorf("want 2/3, got %s", root.String())
	}
}

func TestNthRoot_SymbolicFallback(t *testing.T) {
	root, err := engine.NthRoot(engine.Int(2), 2)
	if err != nil {
		t.Fatalf("nthroot failed: %v", err)
	}
	if root.String() != "2^(1/2)" {
		t.Errorf("want 2^(1/2), got %s", root.String())
	}
}

func TestNthRoot_EvenRootOfNegativeFails(t *testing.T) {
	if _, err := engine.NthRoot(engine.Int(-4), 2); err == nil {
		t.Errorf("even root of a negative value should fail")
	}
}

func TestRadRationalize_SingleSurd(t *testing.T) {
	den := engine.Sum(engine.Int(1), engine.Sqrt(engine.Int(2)))
	num, newDen := engine.RadRationalize(engine.Int(1), den)
	if newDen.String() != "1" {
		t.Errorf("denominator should clear to 1, got %s", newDen.String())
	}
	want := engine.Sum(engine.Sqrt(engine.Int(2)), engine.Int(-1))
	if !num.Equal(want) {
		t.Errorf("want sqrt(2) - 1, got %s", num.String())
	}
}

func TestRadRationalize_NoSurd(t *testing.T) {
	num, den := engine.RadRationalize(engine.Var("x"), engine.Int(3))
	if num.String() != "x" || den.String() != "3" {
		t.Errorf("rational denominator should pass through, got %s / %s", num.String(), den.String())
	}
}
