package engine

// IsSqrt reports whether expr is a square root, i.e. a power with
// exponent 1/2.
func IsSqrt(expr Expr) bool {
	p, ok := expr.Simplify().(*Pow)
	if !ok {
		return false
	}
	n, ok := p.exp.(*Num)
	return ok && numCmp(n, Rat(1, 2)) == 0
}

// SqrtDepth returns the maximum nesting level of square roots in expr.
// Atoms have depth 0, sqrt(2) has depth 1, sqrt(1+sqrt(2)) has depth 2.
// Sums and products take the maximum over their parts; an integer power
// inherits the depth of its base.
func SqrtDepth(expr Expr) int {
	switch v := expr.Simplify().(type) {
	case *Num, *Sym:
		return 0
	case *Add:
		max := 0
		for _, t := range v.terms {
			if d := SqrtDepth(t); d > max {
				max = d
			}
		}
		return max
	case *Mul:
		max := 0
		for _, f := range v.factors {
			if d := SqrtDepth(f); d > max {
				max = d
			}
		}
		return max
	case *Pow:
		if IsSqrt(v) {
			return SqrtDepth(v.base) + 1
		}
		if _, ok := intExponent(v.exp); ok {
			return SqrtDepth(v.base)
		}
		return 0
	case *Func:
		return 0
	}
	return 0
}

// SqrtDenest denests square roots of the form sqrt(a + b*sqrt(r)) with
// rational a, b, r whenever sqrt(a^2 - b^2*r) is rational, rewriting
// them as sqrt((a+d)/2) + sign(b)*sqrt((a-d)/2). maxIter bounds the
// number of passes over the tree; expressions that cannot be denested
// are returned unchanged.
func SqrtDenest(expr Expr, maxIter int) Expr {
	if maxIter < 1 {
		maxIter = 1
	}
	out := expr.Simplify()
	for i := 0; i < maxIter; i++ {
		next := denestWalk(out).Simplify()
		if next.Equal(out) {
			return out
		}
		out = next
	}
	return out
}

func denestWalk(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = denestWalk(t)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = denestWalk(f)
		}
		return Prod(factors...)
	case *Pow:
		base := denestWalk(v.base)
		if IsSqrt(v) {
			if d, ok := denestOnce(base); ok {
				return d
			}
		}
		return Power(base, v.exp)
	case *Func:
		return fnOf(v.name, denestWalk(v.arg))
	}
	return e
}

// denestOnce tries the classical two-term denesting of sqrt(inner)
// where inner = a + b*sqrt(r).
func denestOnce(inner Expr) (Expr, bool) {
	a, b, r, ok := splitSurd(inner)
	if !ok {
		return nil, false
	}
	// d^2 = a^2 - b^2*r must be a perfect rational square.
	d2 := numSub(numMul(a, a), numMul(numMul(b, b), r))
	if numCmp(d2, Int(0)) < 0 {
		return nil, false
	}
	droot, exact := exactRatRoot(d2.val, 2)
	if !exact {
		return nil, false
	}
	d := numFromRat(droot)
	half := Rat(1, 2)
	hi := Sqrt(numMul(numAdd(a, d), half))
	lo := Sqrt(numMul(numSub(a, d), half))
	if numCmp(b, Int(0)) < 0 {
		lo = Prod(Int(-1), lo)
	}
	out := Sum(hi, lo).Simplify()
	if SqrtDepth(out) >= SqrtDepth(Sqrt(inner)) {
		return nil, false
	}
	return out, true
}

// splitSurd decomposes e as a + b*sqrt(r) with rational a, b, r and b != 0.
func splitSurd(e Expr) (a, b, r *Num, ok bool) {
	a = Int(0)
	terms := addTerms(e.Simplify())
	found := false
	for _, t := range terms {
		if n, isNum := t.(*Num); isNum {
			a = numAdd(a, n)
			continue
		}
		coeff, rest := SplitCoeff(t)
		p, isPow := rest.(*Pow)
		if !isPow || !IsSqrt(p) {
			return nil, nil, nil, false
		}
		rn, isNum := p.base.(*Num)
		if !isNum || found {
			return nil, nil, nil, false
		}
		b, r, found = coeff, rn, true
	}
	if !found || b.IsZero() {
		return nil, nil, nil, false
	}
	return a, b, r, true
}

// NthRoot returns the n-th root of expr, evaluated exactly when expr is
// rational with an exact rational root, otherwise left as expr^(1/n).
func NthRoot(expr Expr, n int64) (Expr, error) {
	if n < 1 {
		return nil, errorf("nthroot: order must be >= 1, got %d", n)
	}
	e := expr.Simplify()
	if n == 1 {
		return e, nil
	}
	if num, ok := e.(*Num); ok && !num.IsApprox() {
		if num.val.Sign() < 0 && n%2 == 0 {
			return nil, errorf("nthroot: even root of negative value %s", num.String())
		}
		if root, exact := exactRatRoot(num.val, n); exact {
			return numFromRat(root), nil
		}
	}
	return Power(e, Rat(1, n)).Simplify(), nil
}

// RadRationalize clears square roots from a denominator of the form
// a + b*sqrt(c) by multiplying through by the conjugate, recursing while
// the denominator still contains surds. It returns the new numerator
// and denominator.
func RadRationalize(num, den Expr) (Expr, Expr) {
	num, den = num.Simplify(), den.Simplify()
	for i := 0; i < 8; i++ {
		conj, ok := surdConjugate(den)
		if !ok {
			break
		}
		num = Expand(Prod(num, conj)).Simplify()
		den = Expand(Prod(den, conj)).Simplify()
	}
	if n, ok := den.(*Num); ok && n.IsNegative() {
		num = Expand(Prod(Int(-1), num)).Simplify()
		den = numNeg(n)
	}
	return num, den
}

// surdConjugate returns the conjugate of den when den is a sum with
// exactly one surd term, flipping that term's sign.
func surdConjugate(den Expr) (Expr, bool) {
	terms := addTerms(den)
	surdAt := -1
	for i, t := range terms {
		if termHasSurd(t) {
			if surdAt >= 0 {
				return nil, false
			}
			surdAt = i
		}
	}
	if surdAt < 0 {
		return nil, false
	}
	conj := make([]Expr, len(terms))
	for i, t := range terms {
		if i == surdAt {
			conj[i] = Prod(Int(-1), t)
		} else {
			conj[i] = t
		}
	}
	return Sum(conj...).Simplify(), true
}

func termHasSurd(t Expr) bool {
	switch v := t.(type) {
	case *Pow:
		return IsSqrt(v)
	case *Mul:
		for _, f := range v.factors {
			if termHasSurd(f) {
				return true
			}
		}
	}
	return false
}
