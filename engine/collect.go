package engine

import (
	"math/big"
	"sort"
)

// RCollect collects expr with respect to each variable in turn, left to
// right, so nested coefficients end up grouped as well.
func RCollect(expr Expr, vars ...string) Expr {
	out := expr.Simplify()
	for _, v := range vars {
		out = Collect(out, v)
	}
	return out
}

// CollectSqrt groups the terms of a sum by their square-root factor, so
// a*sqrt(2) + b*sqrt(2) becomes (a+b)*sqrt(2). Terms without a surd are
// summed separately.
func CollectSqrt(expr Expr) Expr {
	terms := addTerms(Expand(expr).Simplify())
	groups := map[string][]Expr{}
	keys := map[string]Expr{}
	var plain []Expr
	for _, t := range terms {
		surd, rest, ok := splitSurdFactor(t)
		if !ok {
			plain = append(plain, t)
			continue
		}
		k := surd.String()
		groups[k] = append(groups[k], rest)
		keys[k] = surd
	}
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]Expr, 0, len(names)+len(plain))
	for _, k := range names {
		coeff := Sum(groups[k]...).Simplify()
		out = append(out, Prod(coeff, keys[k]))
	}
	out = append(out, plain...)
	return Sum(append([]Expr{Int(0)}, out...)...).Simplify()
}

// splitSurdFactor splits a term into its single sqrt factor and the rest.
func splitSurdFactor(t Expr) (surd, rest Expr, ok bool) {
	switch v := t.(type) {
	case *Pow:
		if IsSqrt(v) {
			return v, Int(1), true
		}
	case *Mul:
		var others []Expr
		for _, f := range v.factors {
			if p, isPow := f.(*Pow); isPow && IsSqrt(p) && surd == nil {
				surd = p
				continue
			}
			others = append(others, f)
		}
		if surd != nil {
			return surd, Prod(append([]Expr{Int(1)}, others...)...), true
		}
	}
	return nil, nil, false
}

// CollectConst groups the terms of a sum that share a numeric
// coefficient: 2*x + 2*y + 3*z becomes 2*(x + y) + 3*z.
func CollectConst(expr Expr) Expr {
	terms := addTerms(expr.Simplify())
	groups := map[string][]Expr{}
	coeffs := map[string]*Num{}
	var plain []Expr
	for _, t := range terms {
		if _, isNum := t.(*Num); isNum {
			plain = append(plain, t)
			continue
		}
		coeff, rest := SplitCoeff(t)
		if coeff.IsOne() {
			plain = append(plain, t)
			continue
		}
		k := coeff.String()
		groups[k] = append(groups[k], rest)
		coeffs[k] = coeff
	}
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]Expr, 0, len(names)+len(plain))
	for _, k := range names {
		parts := groups[k]
		if len(parts) == 1 {
			out = append(out, Prod(coeffs[k], parts[0]))
			continue
		}
		group := &Mul{factors: []Expr{coeffs[k], Sum(parts...)}}
		out = append(out, group)
	}
	out = append(out, plain...)
	if len(out) == 1 {
		return out[0]
	}
	return &Add{terms: out}
}

// GCDTerms pulls the greatest common numeric and symbolic factor out of
// a sum: 4*x + 8*x*y becomes 4*x*(1 + 2*y).
func GCDTerms(expr Expr) Expr {
	e := expr.Simplify()
	terms := addTerms(e)
	if len(terms) < 2 {
		return e
	}
	gcd, common := commonFactor(terms)
	if gcd.IsOne() && len(common) == 0 {
		return e
	}
	inner := make([]Expr, len(terms))
	for i, t := range terms {
		inner[i] = divideOut(t, gcd, common)
	}
	factors := append([]Expr{gcd}, common...)
	factors = append(factors, Sum(inner...).Simplify())
	return (&Mul{factors: factors}).Simplify()
}

// commonFactor computes the rational gcd of the coefficients and the
// symbolic factors shared by every term.
func commonFactor(terms []Expr) (*Num, []Expr) {
	var gcd *big.Rat
	shared := map[string]Expr{}
	for i, t := range terms {
		coeff, rest := SplitCoeff(t)
		gcd = ratGCD(gcd, coeff.val)
		parts := map[string]Expr{}
		for _, f := range mulFactors(rest) {
			if _, isNum := f.(*Num); isNum {
				continue
			}
			parts[f.String()] = f
		}
		if i == 0 {
			shared = parts
			continue
		}
		for k := range shared {
			if _, ok := parts[k]; !ok {
				delete(shared, k)
			}
		}
	}
	keys := make([]string, 0, len(shared))
	for k := range shared {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	common := make([]Expr, 0, len(keys))
	for _, k := range keys {
		common = append(common, shared[k])
	}
	if gcd == nil || gcd.Sign() == 0 {
		return Int(1), common
	}
	return numFromRat(gcd), common
}

// ratGCD folds a rational gcd: gcd(a/b, c/d) = gcd(a,c)/lcm(b,d).
func ratGCD(acc, next *big.Rat) *big.Rat {
	n := new(big.Rat).Abs(next)
	if acc == nil {
		return n
	}
	num := new(big.Int).GCD(nil, nil, acc.Num(), n.Num())
	lcm := new(big.Int).Mul(acc.Denom(), n.Denom())
	g := new(big.Int).GCD(nil, nil, acc.Denom(), n.Denom())
	lcm.Div(lcm, g)
	return new(big.Rat).SetFrac(num, lcm)
}

func mulFactors(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}

// divideOut removes the shared numeric gcd and symbolic factors from t.
func divideOut(t Expr, gcd *Num, common []Expr) Expr {
	coeff, rest := SplitCoeff(t)
	coeff = numDiv(coeff, gcd)
	drop := map[string]int{}
	for _, c := range common {
		drop[c.String()]++
	}
	var kept []Expr
	for _, f := range mulFactors(rest) {
		if drop[f.String()] > 0 {
			drop[f.String()]--
			continue
		}
		kept = append(kept, f)
	}
	return Prod(append([]Expr{coeff}, kept...)...)
}

// FactorTerms is GCDTerms with sign normalization: when every term of
// the sum is negative the minus sign is pulled out first.
func FactorTerms(expr Expr) Expr {
	e := expr.Simplify()
	terms := addTerms(e)
	allNeg := len(terms) > 1
	for _, t := range terms {
		coeff, _ := SplitCoeff(t)
		if !coeff.IsNegative() {
			allNeg = false
			break
		}
	}
	if allNeg {
		flipped := make([]Expr, len(terms))
		for i, t := range terms {
			flipped[i] = Prod(Int(-1), t)
		}
		inner := GCDTerms(Sum(flipped...))
		return (&Mul{factors: []Expr{Int(-1), inner}}).Simplify()
	}
	return GCDTerms(e)
}

// FactorNC factors out common terms. Every expression here commutes, so
// this reduces to FactorTerms.
func FactorNC(expr Expr) Expr { return FactorTerms(expr) }

// SeparateVars tries to write expr as a product of factors each
// depending on fewer variables, e.g. x + x*y becomes x*(1 + y). It
// returns the factored form, unchanged when no separation exists.
func SeparateVars(expr Expr) Expr {
	return FactorTerms(Expand(expr).Simplify())
}

// LogCombine merges logarithms: ln(a) + ln(b) becomes ln(a*b) and
// c*ln(a) becomes ln(a^c). Without force, coefficients are only folded
// into the logarithm when they are integers.
func LogCombine(expr Expr, force bool) Expr {
	e := expr.Simplify()
	switch v := e.(type) {
	case *Add:
		var logArgs []Expr
		var rest []Expr
		for _, t := range v.terms {
			c := LogCombine(t, force)
			if arg, ok := asLog(c, force); ok {
				logArgs = append(logArgs, arg)
				continue
			}
			rest = append(rest, c)
		}
		if len(logArgs) < 2 {
			return e
		}
		merged := Ln(Prod(logArgs...))
		return Sum(append(rest, merged)...).Simplify()
	case *Mul:
		if arg, ok := asLog(v, force); ok {
			return Ln(arg)
		}
		return e
	}
	return e
}

// asLog recognizes ln(a) and c*ln(a), returning the argument with the
// coefficient folded in as a power.
func asLog(e Expr, force bool) (Expr, bool) {
	if f, ok := e.(*Func); ok && f.name == "ln" {
		return f.arg, true
	}
	m, ok := e.(*Mul)
	if !ok {
		return nil, false
	}
	var log *Func
	var coeff []Expr
	for _, fac := range m.factors {
		if f, isFn := fac.(*Func); isFn && f.name == "ln" && log == nil {
			log = f
			continue
		}
		coeff = append(coeff, fac)
	}
	if log == nil {
		return nil, false
	}
	c := Prod(append([]Expr{Int(1)}, coeff...)...)
	if !force {
		n, isNum := c.(*Num)
		if !isNum || !n.IsInteger() || !n.IsPositive() {
			return nil, false
		}
	}
	return Power(log.arg, c), true
}

// PowDenest collapses nested powers: (b^e1)^e2 becomes b^(e1*e2) when
// e2 is an integer, or unconditionally with force.
func PowDenest(expr Expr, force bool) Expr {
	switch v := expr.Simplify().(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = PowDenest(t, force)
		}
		return Sum(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = PowDenest(f, force)
		}
		return Prod(factors...)
	case *Pow:
		base := PowDenest(v.base, force)
		exp := PowDenest(v.exp, force)
		if inner, ok := base.(*Pow); ok {
			_, expInt := intExponent(exp)
			if expInt || force {
				return Power(inner.base, Prod(inner.exp, exp).Simplify())
			}
		}
		return Power(base, exp)
	case *Func:
		return fnOf(v.name, PowDenest(v.arg, force)).Simplify()
	default:
		return v
	}
}

// HyperSimp simplifies the term ratio f(k+1)/f(k) of a hypergeometric
// term, rewriting factorials as gammas and cancelling integer-shifted
// gamma pairs. It returns the simplified ratio, or an error when the
// ratio is not rational in k.
func HyperSimp(f Expr, varName string) (Expr, error) {
	g := factorialToGamma(f.Simplify())
	shifted := g.Sub(varName, Sum(Var(varName), Int(1)))
	num, den := gammaCancel(shifted, g, varName)
	ratio := Prod(num, Power(den, Int(-1))).Simplify()
	ratio = Expand(ratio).Simplify()
	if containsFunc(ratio, "gamma") || containsFunc(ratio, "factorial") {
		return nil, errorf("hypersimp: %s is not hypergeometric in %s", f.String(), varName)
	}
	return ratio, nil
}

// factorialToGamma rewrites factorial(x) as gamma(x+1) throughout.
func factorialToGamma(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = factorialToGamma(t)
		}
		return &Add{terms: terms}
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = factorialToGamma(f)
		}
		return &Mul{factors: factors}
	case *Pow:
		return &Pow{base: factorialToGamma(v.base), exp: factorialToGamma(v.exp)}
	case *Func:
		arg := factorialToGamma(v.arg)
		if v.name == "factorial" {
			return fnOf("gamma", &Add{terms: []Expr{arg, Int(1)}})
		}
		return fnOf(v.name, arg)
	}
	return e
}

// gammaCancel rewrites num/den so that each gamma(x)/gamma(y) pair with
// integer difference x-y = n > 0 collapses to (y)(y+1)...(y+n-1).
func gammaCancel(num, den Expr, varName string) (Expr, Expr) {
	numGammas, numRest := extractGammas(num)
	denGammas, denRest := extractGammas(den)
	var numOut, denOut []Expr
	used := make([]bool, len(denGammas))
	for _, ng := range numGammas {
		matched := false
		for j, dg := range denGammas {
			if used[j] {
				continue
			}
			diff := Expand(Sum(ng, Prod(Int(-1), dg))).Simplify()
			n, isNum := diff.(*Num)
			if !isNum || !n.IsInteger() {
				continue
			}
			shift, _ := n.Int64()
			switch {
			case shift == 0:
				// gamma(x)/gamma(x) cancels outright.
			case shift > 0 && shift <= 16:
				for i := int64(0); i < shift; i++ {
					numOut = append(numOut, Sum(dg, Int(i)).Simplify())
				}
			case shift < 0 && shift >= -16:
				for i := int64(0); i < -shift; i++ {
					denOut = append(denOut, Sum(ng, Int(i)).Simplify())
				}
			default:
				continue
			}
			used[j] = true
			matched = true
			break
		}
		if !matched {
			numOut = append(numOut, Gamma(ng))
		}
	}
	for j, dg := range denGammas {
		if !used[j] {
			denOut = append(denOut, Gamma(dg))
		}
	}
	n := Prod(append([]Expr{numRest}, numOut...)...)
	d := Prod(append([]Expr{denRest}, denOut...)...)
	return n.Simplify(), d.Simplify()
}

// extractGammas splits a product into its gamma arguments and the
// remaining non-gamma part.
func extractGammas(e Expr) (args []Expr, rest Expr) {
	var kept []Expr
	for _, f := range mulFactors(e.Simplify()) {
		if fn, ok := f.(*Func); ok && fn.name == "gamma" {
			args = append(args, fn.arg)
			continue
		}
		kept = append(kept, f)
	}
	return args, Prod(append([]Expr{Int(1)}, kept...)...)
}

func containsFunc(e Expr, name string) bool {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			if containsFunc(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if containsFunc(f, name) {
				return true
			}
		}
	case *Pow:
		return containsFunc(v.base, name) || containsFunc(v.exp, name)
	case *Func:
		return v.name == name || containsFunc(v.arg, name)
	}
	return false
}
