package engine

// Expansion hints. Each walks the tree and applies exactly one kind of
// rewrite, mirroring the upstream expand_* family: products over sums,
// integer powers of sums, split exponents, split bases, logarithms,
// trigonometric sums, complex powers, and special functions.

// Expand distributes products and integer powers of sums until stable.
func Expand(e Expr) Expr { return ExpandMul(ExpandMultinomial(e)) }

// ExpandMul distributes multiplication over addition. Powers are left
// untouched; see ExpandMultinomial for (a+b)^n.
func ExpandMul(e Expr) Expr { return expandMul(e.Simplify()).Simplify() }

func expandMul(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandMul(f)
		}
		for i, f := range factors {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(factors)-1)
			for j, other := range factors {
				if j != i {
					rest = append(rest, other)
				}
			}
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = expandMul(Prod(append([]Expr{t}, rest...)...))
			}
			return Sum(terms...)
		}
		return Prod(factors...)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandMul(t)
		}
		return Sum(terms...)
	case *Pow:
		return Power(expandMul(v.base), expandMul(v.exp))
	case *Func:
		return fnOf(v.name, expandMul(v.arg)).Simplify()
	}
	return e
}

// ExpandMultinomial expands positive integer powers of sums, (a+b)^n.
func ExpandMultinomial(e Expr) Expr { return expandMultinomial(e.Simplify()).Simplify() }

func expandMultinomial(e Expr) Expr {
	switch v := e.(type) {
	case *Pow:
		base := expandMultinomial(v.base)
		if _, isAdd := base.(*Add); isAdd {
			if n, ok := v.exp.(*Num); ok {
				if k, isI := n.Int64(); isI && k >= 2 && k <= 16 {
					out := Expr(Int(1))
					for i := int64(0); i < k; i++ {
						out = expandMul(Prod(out, base))
					}
					return out
				}
			}
		}
		return Power(base, expandMultinomial(v.exp))
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandMultinomial(t)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandMultinomial(f)
		}
		return Prod(factors...)
	case *Func:
		return fnOf(v.name, expandMultinomial(v.arg)).Simplify()
	}
	return e
}

// ExpandPowerExp rewrites b^(x+y) as b^x * b^y.
func ExpandPowerExp(e Expr) Expr { return expandPowerExp(e.Simplify()).Simplify() }

func expandPowerExp(e Expr) Expr {
	switch v := e.(type) {
	case *Pow:
		base := expandPowerExp(v.base)
		exp := expandPowerExp(v.exp)
		if a, ok := exp.(*Add); ok {
			factors := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				factors[i] = Power(base, t)
			}
			return Prod(factors...)
		}
		return Power(base, exp)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandPowerExp(t)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandPowerExp(f)
		}
		return Prod(factors...)
	case *Func:
		return fnOf(v.name, expandPowerExp(v.arg)).Simplify()
	}
	return e
}

// ExpandPowerBase rewrites (x*y)^z as x^z * y^z. Without assumptions the
// rewrite is only sound for integer exponents; force applies it always.
func ExpandPowerBase(e Expr, force bool) Expr {
	return expandPowerBase(e.Simplify(), force).Simplify()
}

func expandPowerBase(e Expr, force bool) Expr {
	switch v := e.(type) {
	case *Pow:
		base := expandPowerBase(v.base, force)
		exp := expandPowerBase(v.exp, force)
		if m, ok := base.(*Mul); ok {
			_, expIsInt := intExponent(exp)
			if force || expIsInt {
				factors := make([]Expr, len(m.factors))
				for i, f := range m.factors {
					factors[i] = Power(f, exp)
				}
				return Prod(factors...)
			}
		}
		return Power(base, exp)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandPowerBase(t, force)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandPowerBase(f, force)
		}
		return Prod(factors...)
	case *Func:
		return fnOf(v.name, expandPowerBase(v.arg, force)).Simplify()
	}
	return e
}

func intExponent(e Expr) (int64, bool) {
	n, ok := e.(*Num)
	if !ok {
		return 0, false
	}
	return n.Int64()
}

// ExpandLog splits logarithms of products and powers. Without assumptions
// only numerically positive arguments are split; force splits always.
func ExpandLog(e Expr, force bool) Expr { return expandLog(e.Simplify(), force).Simplify() }

func expandLog(e Expr, force bool) Expr {
	switch v := e.(type) {
	case *Func:
		arg := expandLog(v.arg, force)
		if v.name != "ln" {
			return fnOf(v.name, arg).Simplify()
		}
		switch inner := arg.(type) {
		case *Mul:
			if force || allPositiveNums(inner.factors) {
				terms := make([]Expr, len(inner.factors))
				for i, f := range inner.factors {
					terms[i] = expandLog(Ln(f), force)
				}
				return Sum(terms...)
			}
		case *Pow:
			if _, isInt := intExponent(inner.exp); force || isInt {
				return Prod(inner.exp, expandLog(Ln(inner.base), force))
			}
		}
		return Ln(arg)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandLog(t, force)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandLog(f, force)
		}
		return Prod(factors...)
	case *Pow:
		return Power(expandLog(v.base, force), expandLog(v.exp, force))
	}
	return e
}

func allPositiveNums(list []Expr) bool {
	for _, e := range list {
		n, ok := e.(*Num)
		if !ok || !n.IsPositive() {
			return false
		}
	}
	return true
}

// ExpandTrig applies the angle-addition identities to sin and cos.
// Integer multiples of an angle are unrolled into repeated sums first.
func ExpandTrig(e Expr) Expr { return expandTrig(e.Simplify()).Simplify() }

func expandTrig(e Expr) Expr {
	switch v := e.(type) {
	case *Func:
		arg := expandTrig(v.arg)
		if v.name != "sin" && v.name != "cos" {
			return fnOf(v.name, arg).Simplify()
		}
		arg = unrollAngle(arg)
		a, ok := arg.(*Add)
		if !ok || len(a.terms) < 2 {
			return fnOf(v.name, arg).Simplify()
		}
		head := a.terms[0]
		rest := Sum(a.terms[1:]...)
		sinRest := expandTrig(fnOf("sin", rest).Simplify())
		cosRest := expandTrig(fnOf("cos", rest).Simplify())
		if v.name == "sin" {
			// sin(a+r) = sin a cos r + cos a sin r
			return Sum(Prod(Sin(head), cosRest), Prod(Cos(head), sinRest))
		}
		// cos(a+r) = cos a cos r - sin a sin r
		return Sum(Prod(Cos(head), cosRest), Prod(Int(-1), Sin(head), sinRest))
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandTrig(t)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandTrig(f)
		}
		return Prod(factors...)
	case *Pow:
		return Power(expandTrig(v.base), expandTrig(v.exp))
	}
	return e
}

// unrollAngle turns n*x (small positive integer n) into x + x + ... + x so
// the addition identities apply.
func unrollAngle(e Expr) Expr {
	m, ok := e.(*Mul)
	if !ok {
		return e
	}
	coeff, rest := SplitCoeff(m)
	k, isI := coeff.Int64()
	if !isI || k < 2 || k > 8 {
		return e
	}
	terms := make([]Expr, k)
	for i := range terms {
		terms[i] = rest
	}
	return &Add{terms: terms}
}

// ExpandComplex expands e fully and reduces powers and repeated factors of
// the imaginary unit I (I^2 -> -1).
func ExpandComplex(e Expr) Expr {
	return reduceImaginary(Expand(e).Simplify()).Simplify()
}

func reduceImaginary(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = reduceImaginary(t)
		}
		return Sum(terms...)
	case *Mul:
		count := int64(0)
		rest := []Expr{}
		for _, f := range v.factors {
			switch {
			case f.Equal(I):
				count++
			default:
				if p, ok := f.(*Pow); ok && p.base.Equal(I) {
					if k, isI := intExponent(p.exp); isI && k >= 0 {
						count += k
						continue
					}
				}
				rest = append(rest, reduceImaginary(f))
			}
		}
		if count == 0 {
			return Prod(rest...)
		}
		return Prod(append(rest, imaginaryUnitPow(count))...)
	case *Pow:
		if v.base.Equal(I) {
			if k, isI := intExponent(v.exp); isI && k >= 0 {
				return imaginaryUnitPow(k)
			}
		}
		return Power(reduceImaginary(v.base), reduceImaginary(v.exp))
	case *Func:
		return fnOf(v.name, reduceImaginary(v.arg)).Simplify()
	}
	return e
}

func imaginaryUnitPow(k int64) Expr {
	switch k % 4 {
	case 0:
		return Int(1)
	case 1:
		return I
	case 2:
		return Int(-1)
	default:
		return Prod(Int(-1), I)
	}
}

// ExpandFunc expands special functions with known functional equations.
// Currently: gamma(x+n) -> (x+n-1)...(x)*gamma(x) for integer n >= 1, and
// factorial(x) -> gamma(x+1) shifts via the same rule.
func ExpandFunc(e Expr) Expr { return expandFunc(e.Simplify()).Simplify() }

func expandFunc(e Expr) Expr {
	switch v := e.(type) {
	case *Func:
		arg := expandFunc(v.arg)
		if v.name == "gamma" {
			if shifted, ok := peelGammaShift(arg); ok {
				return shifted
			}
		}
		return fnOf(v.name, arg).Simplify()
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandFunc(t)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandFunc(f)
		}
		return Prod(factors...)
	case *Pow:
		return Power(expandFunc(v.base), expandFunc(v.exp))
	}
	return e
}

// peelGammaShift rewrites gamma(y+n) with integer n in [1,8] as
// (y+n-1)(y+n-2)...(y) * gamma(y).
func peelGammaShift(arg Expr) (Expr, bool) {
	a, ok := arg.(*Add)
	if !ok {
		return nil, false
	}
	shift := int64(0)
	rest := []Expr{}
	for _, t := range a.terms {
		if n, isNum := t.(*Num); isNum {
			if k, isI := n.Int64(); isI {
				shift += k
				continue
			}
		}
		rest = append(rest, t)
	}
	if shift < 1 || shift > 8 || len(rest) == 0 {
		return nil, false
	}
	y := Sum(rest...)
	factors := []Expr{}
	for i := shift - 1; i >= 0; i-- {
		factors = append(factors, Sum(y, Int(i)))
	}
	factors = append(factors, fnOf("gamma", y))
	return Prod(factors...), true
}
