package engine

import "sort"

// Degree returns the degree of expr viewed as a polynomial in varName.
func Degree(expr Expr, varName string) int {
	switch v := expr.Simplify().(type) {
	case *Num:
		return 0
	case *Sym:
		if v.name == varName {
			return 1
		}
		return 0
	case *Pow:
		if s, ok := v.base.(*Sym); ok && s.name == varName {
			if k, isI := intExponent(v.exp); isI && k > 0 {
				return int(k)
			}
		}
		return 0
	case *Add:
		max := 0
		for _, t := range v.terms {
			if d := Degree(t, varName); d > max {
				max = d
			}
		}
		return max
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += Degree(f, varName)
		}
		return total
	}
	return 0
}

// PolyCoeffs maps degree -> coefficient for expr as a polynomial in varName.
// Coefficients may be symbolic.
func PolyCoeffs(expr Expr, varName string) map[int]Expr {
	out := map[int]Expr{}
	gatherCoeffs(expr.Simplify(), varName, out)
	return out
}

func gatherCoeffs(e Expr, varName string, out map[int]Expr) {
	switch v := e.(type) {
	case *Num:
		accumCoeff(out, 0, v)
	case *Sym:
		if v.name == varName {
			accumCoeff(out, 1, Int(1))
		} else {
			accumCoeff(out, 0, v)
		}
	case *Pow:
		if s, ok := v.base.(*Sym); ok && s.name == varName {
			if k, isI := intExponent(v.exp); isI && k > 0 {
				accumCoeff(out, int(k), Int(1))
				return
			}
		}
		accumCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if d := Degree(f, varName); d > 0 {
				deg += d
			} else {
				coeffFactors = append(coeffFactors, f)
			}
		}
		accumCoeff(out, deg, Prod(append([]Expr{Int(1)}, coeffFactors...)...))
	case *Add:
		for _, t := range v.terms {
			gatherCoeffs(t, varName, out)
		}
	}
}

func accumCoeff(out map[int]Expr, deg int, val Expr) {
	if prev, ok := out[deg]; ok {
		out[deg] = Sum(prev, val).Simplify()
	} else {
		out[deg] = val.Simplify()
	}
}

// Collect groups terms of expr by powers of varName, highest degree first.
func Collect(expr Expr, varName string) Expr {
	coeffs := PolyCoeffs(expr, varName)
	if len(coeffs) == 0 {
		return Int(0)
	}
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		if n, ok := c.(*Num); ok && n.IsZero() {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, Prod(c, Var(varName)))
		default:
			terms = append(terms, Prod(c, Power(Var(varName), Int(int64(d)))))
		}
	}
	return Sum(terms...).Simplify()
}

// Horner rewrites a polynomial in varName in nested Horner form:
// x^3 + 2x^2 + 3x + 4 becomes ((x + 2)*x + 3)*x + 4. Returns an error when
// expr is not polynomial in varName.
func Horner(expr Expr, varName string) (Expr, error) {
	poly := Expand(expr).Simplify()
	deg := Degree(poly, varName)
	coeffs := PolyCoeffs(poly, varName)
	if deg == 0 {
		return poly, nil
	}
	// Reject non-polynomial leftovers: the collected form must reproduce
	// the expanded input.
	if !Expand(Collect(poly, varName)).Simplify().Equal(poly) {
		return nil, errorf("horner: %s is not a polynomial in %s", expr.String(), varName)
	}
	coeffAt := func(d int) Expr {
		if c, ok := coeffs[d]; ok {
			return c
		}
		return Int(0)
	}
	x := Var(varName)
	out := coeffAt(deg)
	for d := deg - 1; d >= 0; d-- {
		out = Sum(Prod(out, x), coeffAt(d))
	}
	return out.Simplify(), nil
}

// Symmetrize rewrites a symmetric polynomial over vars in terms of the
// elementary symmetric polynomials, using Newton's identities for power
// sums up to degree 4. It returns the rewritten symmetric part and the
// remainder that could not be expressed.
func Symmetrize(expr Expr, vars []string) (sym Expr, rem Expr, err error) {
	if len(vars) < 2 {
		return nil, nil, errorf("symmetrize: need at least two variables")
	}
	poly := Expand(expr).Simplify()
	terms := addTerms(poly)

	// Bucket c*x_i^k monomials per (k, var); everything else is remainder.
	type bucket map[string]*Num
	powerSums := map[int]bucket{}
	constant := Int(0)
	var leftover []Expr

	inVars := func(name string) bool {
		for _, v := range vars {
			if v == name {
				return true
			}
		}
		return false
	}

	for _, t := range terms {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		coeff, rest := SplitCoeff(t)
		name, k := "", 0
		switch v := rest.(type) {
		case *Sym:
			name, k = v.name, 1
		case *Pow:
			if s, ok := v.base.(*Sym); ok {
				if e, isI := intExponent(v.exp); isI && e >= 1 && e <= 4 {
					name, k = s.name, int(e)
				}
			}
		}
		if name == "" || !inVars(name) {
			leftover = append(leftover, t)
			continue
		}
		if powerSums[k] == nil {
			powerSums[k] = bucket{}
		}
		if powerSums[k][name] == nil {
			powerSums[k][name] = Int(0)
		}
		powerSums[k][name] = numAdd(powerSums[k][name], coeff)
	}

	// A power sum contributes only when every variable carries the same
	// coefficient; otherwise its terms go back to the remainder.
	symParts := []Expr{}
	degrees := make([]int, 0, len(powerSums))
	for k := range powerSums {
		degrees = append(degrees, k)
	}
	sort.Ints(degrees)
	for _, k := range degrees {
		b := powerSums[k]
		uniform := len(b) == len(vars)
		var c *Num
		for _, name := range vars {
			got, ok := b[name]
			if !ok {
				uniform = false
				break
			}
			if c == nil {
				c = got
			} else if numCmp(c, got) != 0 {
				uniform = false
				break
			}
		}
		if !uniform {
			for _, name := range vars {
				if got, ok := b[name]; ok && !got.IsZero() {
					leftover = append(leftover, Prod(got, Power(Var(name), Int(int64(k)))))
				}
			}
			continue
		}
		symParts = append(symParts, Prod(c, newtonPowerSum(k, vars)))
	}

	if len(symParts) == 0 && constant.IsZero() {
		return Int(0), poly, nil
	}
	if !constant.IsZero() {
		symParts = append(symParts, constant)
	}
	return Sum(symParts...), Sum(append([]Expr{Int(0)}, leftover...)...), nil
}

// newtonPowerSum expresses p_k = sum x_i^k via elementary symmetric
// polynomials e1..e4 (Newton's identities).
func newtonPowerSum(k int, vars []string) Expr {
	e1 := elemSym(vars, 1)
	e2 := elemSym(vars, 2)
	e3 := elemSym(vars, 3)
	e4 := elemSym(vars, 4)
	switch k {
	case 1:
		return e1
	case 2:
		return Sum(Power(e1, Int(2)), Prod(Int(-2), e2))
	case 3:
		return Sum(Power(e1, Int(3)), Prod(Int(-3), e1, e2), Prod(Int(3), e3))
	default: // k == 4 by construction
		return Sum(
			Power(e1, Int(4)),
			Prod(Int(-4), Power(e1, Int(2)), e2),
			Prod(Int(2), Power(e2, Int(2))),
			Prod(Int(4), e1, e3),
			Prod(Int(-4), e4),
		)
	}
}

// elemSym builds the k-th elementary symmetric polynomial of vars.
func elemSym(vars []string, k int) Expr {
	if k > len(vars) {
		return Int(0)
	}
	var terms []Expr
	var build func(start int, picked []Expr)
	build = func(start int, picked []Expr) {
		if len(picked) == k {
			terms = append(terms, Prod(append([]Expr{}, picked...)...))
			return
		}
		for i := start; i < len(vars); i++ {
			build(i+1, append(picked, Var(vars[i])))
		}
	}
	build(0, nil)
	return Sum(terms...)
}

// addTerms flattens e into its top-level sum terms.
func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}
