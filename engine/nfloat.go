package engine

// NFloat converts every rational literal in expr to a floating-point
// approximation rendered with prec significant digits. Exponents keep
// their exact form unless exponent is true, so x^(1/2) stays a square
// root by default.
func NFloat(expr Expr, prec int, exponent bool) Expr {
	if prec < 1 {
		prec = 15
	}
	return nfloatWalk(expr.Simplify(), prec, exponent).Simplify()
}

func nfloatWalk(e Expr, prec int, exponent bool) Expr {
	switch v := e.(type) {
	case *Num:
		return v.Approx(prec)
	case *Sym:
		return v
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = nfloatWalk(t, prec, exponent)
		}
		return &Add{terms: terms}
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = nfloatWalk(f, prec, exponent)
		}
		return &Mul{factors: factors}
	case *Pow:
		base := nfloatWalk(v.base, prec, exponent)
		exp := v.exp
		if exponent {
			exp = nfloatWalk(v.exp, prec, exponent)
		}
		return &Pow{base: base, exp: exp}
	case *Func:
		return fnOf(v.name, nfloatWalk(v.arg, prec, exponent))
	}
	return e
}
