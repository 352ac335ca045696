package engine

import (
	"math"
	"sort"
)

// Solve finds the roots of expr = 0 in varName. Linear and quadratic
// equations with rational coefficients solve exactly; quadratics with
// irrational roots and cubics fall back to floats; higher degrees use a
// Newton scan. Solutions are sorted ascending.
func Solve(expr Expr, varName string) ([]Expr, error) {
	poly := Expand(expr).Simplify()
	coeffs := PolyCoeffs(poly, varName)
	deg := Degree(poly, varName)

	nums := make(map[int]*Num, len(coeffs))
	numeric := true
	for d, c := range coeffs {
		n, ok := c.Eval()
		if !ok {
			numeric = false
			break
		}
		nums[d] = n
	}
	if !numeric {
		return nil, errorf("solve: non-numeric coefficients in %s", poly.String())
	}
	coeffAt := func(d int) *Num {
		if n, ok := nums[d]; ok {
			return n
		}
		return Int(0)
	}

	switch deg {
	case 0:
		if coeffAt(0).IsZero() {
			return nil, errorf("solve: identity 0 = 0 has infinitely many solutions")
		}
		return nil, errorf("solve: no solution")
	case 1:
		return []Expr{numDiv(numNeg(coeffAt(0)), coeffAt(1))}, nil
	case 2:
		return solveQuadratic(coeffAt(2), coeffAt(1), coeffAt(0))
	case 3:
		return solveCubic(coeffAt(3).Float64(), coeffAt(2).Float64(), coeffAt(1).Float64(), coeffAt(0).Float64())
	}
	return newtonScan(poly, varName, 100, 1e-10, 100)
}

// solveQuadratic solves a*x^2 + b*x + c = 0, exactly when the discriminant
// is a perfect rational square.
func solveQuadratic(a, b, c *Num) ([]Expr, error) {
	if a.IsZero() {
		if b.IsZero() {
			return nil, errorf("solve: no solution")
		}
		return []Expr{numDiv(numNeg(c), b)}, nil
	}
	disc := numSub(numMul(b, b), numMul(Int(4), numMul(a, c)))
	if disc.IsNegative() {
		return nil, errorf("solve: complex roots (discriminant %s < 0)", disc.String())
	}
	twoA := numMul(Int(2), a)
	if root, ok := exactRatRoot(disc.val, 2); ok {
		sq := numFromRat(root)
		x1 := numDiv(numSub(numNeg(b), sq), twoA)
		x2 := numDiv(numAdd(numNeg(b), sq), twoA)
		return sortedRoots(x1, x2), nil
	}
	sq := math.Sqrt(disc.Float64())
	af, bf := a.Float64(), b.Float64()
	return sortedRoots(Float((-bf-sq)/(2*af)), Float((-bf+sq)/(2*af))), nil
}

// solveCubic applies the trigonometric/Cardano method on floats.
func solveCubic(a, b, c, d float64) ([]Expr, error) {
	if a == 0 {
		return solveQuadratic(Float(b), Float(c), Float(d))
	}
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	offset := b / (3 * a)
	disc := -(4*p*p*p + 27*q*q)

	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		roots := make([]*Num, 3)
		for k := 0; k < 3; k++ {
			roots[k] = Float(m*math.Cos(theta-2*math.Pi*float64(k)/3) - offset)
		}
		return sortedRoots(roots...), nil
	case disc == 0:
		if q == 0 {
			return []Expr{Float(-offset)}, nil
		}
		return sortedRoots(Float(3*q/p-offset), Float(-3*q/(2*p)-offset)), nil
	default:
		shift := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		var back float64
		if shift != 0 {
			back = -p / (3 * shift)
		}
		return []Expr{Float(shift + back - offset)}, nil
	}
}

// sortedRoots orders roots ascending and collapses repeated roots, so a
// zero discriminant yields the double root once.
func sortedRoots(roots ...*Num) []Expr {
	sort.Slice(roots, func(i, j int) bool { return numCmp(roots[i], roots[j]) < 0 })
	out := make([]Expr, 0, len(roots))
	for i, r := range roots {
		if i > 0 && numCmp(r, roots[i-1]) == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// NSolve runs Newton's method on expr = 0 from the starting point x0.
func NSolve(expr Expr, varName string, x0, tol float64, maxIter int) (Expr, error) {
	if tol <= 0 {
		tol = 1e-12
	}
	if maxIter <= 0 {
		maxIter = 50
	}
	deriv := expr.Diff(varName).Simplify()
	evalAt := func(e Expr, x float64) (float64, bool) {
		v := e.Sub(varName, Float(x)).Simplify()
		n, ok := v.Eval()
		if !ok {
			return 0, false
		}
		return n.Float64(), true
	}

	x := x0
	for i := 0; i < maxIter; i++ {
		fx, ok := evalAt(expr, x)
		if !ok {
			return nil, errorf("nsolve: expression is not numeric at %g", x)
		}
		if math.Abs(fx) < tol {
			return Float(x), nil
		}
		dfx, ok := evalAt(deriv, x)
		if !ok || math.Abs(dfx) < 1e-300 {
			return nil, errorf("nsolve: derivative vanished near %g", x)
		}
		x -= fx / dfx
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errorf("nsolve: iteration diverged")
		}
	}
	return nil, errorf("nsolve: no convergence after %d iterations from %g", maxIter, x0)
}

// newtonScan sweeps a range of starting points and collects distinct roots.
func newtonScan(expr Expr, varName string, searchRange, tol float64, maxIter int) ([]Expr, error) {
	var roots []float64
	for i := 0; i <= 200; i++ {
		x0 := -searchRange + 2*searchRange*float64(i)/200
		r, err := NSolve(expr, varName, x0, tol, maxIter)
		if err != nil {
			continue
		}
		n, _ := r.Eval()
		x := n.Float64()
		dup := false
		for _, seen := range roots {
			if math.Abs(seen-x) < tol*100 {
				dup = true
				break
			}
		}
		if !dup {
			roots = append(roots, x)
		}
	}
	if len(roots) == 0 {
		return nil, errorf("solve: no real roots found in [%g, %g]", -searchRange, searchRange)
	}
	sort.Float64s(roots)
	out := make([]Expr, len(roots))
	for i, r := range roots {
		out[i] = Float(r)
	}
	return out, nil
}
