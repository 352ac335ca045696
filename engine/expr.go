// Package engine is a deterministic, rule-based symbolic math kernel.
//
// It provides exact rational arithmetic (math/big.Rat), a small set of
// expression node types, and the algebra operations re-exported by the
// symbridge allowlist. Simplification is rule-based, not canonical, and
// output ordering is stable across runs.
package engine

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Expr is the common interface of all expression nodes.
type Expr interface {
	Simplify() Expr
	String() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
}

// Simplify applies one simplification pass to e.
func Simplify(e Expr) Expr { return e.Simplify() }

// ============================================================
// Num — exact rational, optionally displayed as a float
// ============================================================

// Num is an exact rational number. When approx is set the value still
// carries full rational precision but renders as a decimal with prec
// significant digits (the nfloat display mode).
type Num struct {
	val    *big.Rat
	approx bool
	prec   int
}

func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Rat(p, q int64) *Num {
	if q == 0 {
		panic("engine: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func Float(f float64) *Num {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		panic("engine: non-finite float")
	}
	return &Num{val: r, approx: true, prec: 15}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return Int(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }

func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool   { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsPositive() bool { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) IsApprox() bool   { return n.approx }

func (n *Num) Float64() float64   { f, _ := n.val.Float64(); return f }
func (n *Num) Rational() *big.Rat { return new(big.Rat).Set(n.val) }

// Int64 returns the value as an int64 when it is an integer in range.
func (n *Num) Int64() (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return n.val.Num().Int64(), true
}

// Approx returns a copy of n that renders as a decimal with prec digits.
func (n *Num) Approx(prec int) *Num {
	if prec <= 0 {
		prec = 15
	}
	return &Num{val: new(big.Rat).Set(n.val), approx: true, prec: prec}
}

func (n *Num) String() string {
	if n.approx {
		f, _ := n.val.Float64()
		return strconv.FormatFloat(f, 'g', n.prec, 64)
	}
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func numFromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

// blend carries the approx display mode through arithmetic.
func blend(a, b, out *Num) *Num {
	if a.approx || b.approx {
		out.approx = true
		out.prec = a.prec
		if b.prec > out.prec {
			out.prec = b.prec
		}
		if out.prec <= 0 {
			out.prec = 15
		}
	}
	return out
}

func numAdd(a, b *Num) *Num { return blend(a, b, &Num{val: new(big.Rat).Add(a.val, b.val)}) }
func numSub(a, b *Num) *Num { return blend(a, b, &Num{val: new(big.Rat).Sub(a.val, b.val)}) }
func numMul(a, b *Num) *Num { return blend(a, b, &Num{val: new(big.Rat).Mul(a.val, b.val)}) }
func numNeg(a *Num) *Num    { return blend(a, a, &Num{val: new(big.Rat).Neg(a.val)}) }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("engine: division by zero")
	}
	return blend(a, a, &Num{val: new(big.Rat).Inv(a.val)})
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }

func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return blend(a, a, &Num{val: r})
}

func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

// numPowInt raises a to an integer power with exact arithmetic.
func numPowInt(a *Num, e int64) *Num {
	if e == 0 {
		return Int(1)
	}
	neg := e < 0
	if neg {
		e = -e
	}
	out := Int(1)
	for i := int64(0); i < e; i++ {
		out = numMul(out, a)
	}
	if neg {
		out = numRecip(out)
	}
	return out
}

// exactRatRoot returns the exact nth root of r when both numerator and
// denominator are perfect nth powers, for non-negative r and n >= 2.
func exactRatRoot(r *big.Rat, n int64) (*big.Rat, bool) {
	if r.Sign() < 0 || n < 2 {
		return nil, false
	}
	num, ok1 := exactIntRoot(r.Num(), n)
	den, ok2 := exactIntRoot(r.Denom(), n)
	if !ok1 || !ok2 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func exactIntRoot(v *big.Int, n int64) (*big.Int, bool) {
	if v.Sign() < 0 {
		return nil, false
	}
	if v.Sign() == 0 || v.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int).Set(v), true
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(n))))
	for _, c := range []int64{guess - 1, guess, guess + 1} {
		if c < 0 {
			continue
		}
		cand := big.NewInt(c)
		if new(big.Int).Exp(cand, big.NewInt(n), nil).Cmp(v) == 0 {
			return cand, true
		}
	}
	return nil, false
}

// ============================================================
// Sym — symbolic variable
// ============================================================

type Sym struct{ name string }

func Var(name string) *Sym { return &Sym{name: name} }

// I is the imaginary unit used by ExpandComplex.
var I = Var("I")

func (s *Sym) Simplify() Expr        { return s }
func (s *Sym) String() string        { return s.name }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Eval() (*Num, bool)    { return nil, false }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }

func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return Int(1)
	}
	return Int(0)
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func Sum(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Group like terms by their non-numeric part.
	constant := Int(0)
	coeffs := map[string]*Num{}
	rests := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		coeff, rest := SplitCoeff(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = Int(0)
			rests[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}

	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		switch {
		case c.IsZero():
		case c.IsOne():
			result = append(result, rests[key])
		default:
			result = append(result, Prod(c, rests[key]))
		}
	}
	if !constant.IsZero() {
		result = append(result, constant)
	}

	switch len(result) {
	case 0:
		return Int(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(varName string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(varName, value)
	}
	return Sum(out...)
}

func (a *Add) Diff(varName string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(varName)
	}
	return Sum(out...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := Int(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func Prod(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := Int(1)
	others := []Expr{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return Int(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Merge repeated bases with numeric exponents: x*x -> x^2 and
	// 2^(1/2)*2^(1/2) -> 2. Sums stay distributable and symbolic
	// exponents are never combined, so x^a*x^b is left alone.
	type group struct {
		base Expr
		exps []Expr
	}
	seen := map[string]int{}
	groups := make([]*group, 0, len(others))
	merged := false
	for _, f := range others {
		base, exp := f, Expr(Int(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		_, isAdd := base.(*Add)
		_, expNumeric := exp.(*Num)
		if isAdd || !expNumeric {
			groups = append(groups, &group{base: f, exps: nil})
			continue
		}
		key := base.String()
		if idx, ok := seen[key]; ok && groups[idx].exps != nil {
			groups[idx].exps = append(groups[idx].exps, exp)
			merged = true
			continue
		}
		seen[key] = len(groups)
		groups = append(groups, &group{base: base, exps: []Expr{exp}})
	}
	if merged {
		out := make([]Expr, 0, len(groups)+1)
		out = append(out, coeff)
		for _, g := range groups {
			if g.exps == nil {
				out = append(out, g.base)
				continue
			}
			out = append(out, Power(g.base, Sum(g.exps...)))
		}
		return Prod(out...)
	}

	sortExprs(others)

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(varName, value)
	}
	return Prod(out...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		rest := make([]Expr, 0, len(m.factors))
		rest = append(rest, dfi)
		for j, fj := range m.factors {
			if j != i {
				rest = append(rest, fj)
			}
		}
		terms[i] = Prod(rest...)
	}
	return Sum(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := Int(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func Power(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// Sqrt returns base^(1/2); square roots are half-integer powers throughout.
func Sqrt(base Expr) Expr { return Power(base, Rat(1, 2)) }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return Int(1)
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Num); ok2 && (en.IsZero() || en.IsNegative()) {
				// 0^0 and 0^negative stay unevaluated.
				return &Pow{base: base, exp: exp}
			}
			return Int(0)
		}
		if bn.IsOne() {
			return Int(1)
		}
		if en, ok2 := exp.(*Num); ok2 {
			if e, isInt := en.Int64(); isInt && e >= -32 && e <= 32 {
				return numPowInt(bn, e)
			}
			// Exact fractional roots: 4^(1/2) -> 2, 27^(2/3) -> 9.
			if q := en.val.Denom(); q.IsInt64() && q.Int64() >= 2 && q.Int64() <= 6 {
				if pnum := en.val.Num(); pnum.IsInt64() {
					if root, ok3 := exactRatRoot(bn.val, q.Int64()); ok3 {
						return numPowInt(numFromRat(root), pnum.Int64())
					}
				}
			}
		}
	}

	if inner, ok := base.(*Pow); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			return Power(inner.base, Prod(inner.exp, exp))
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	default:
		if n, ok := p.base.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	default:
		if n, ok := p.exp.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return Power(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		return Prod(p.exp, Power(p.base, Sum(p.exp, Int(-1))), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		return Prod(Power(p.base, p.exp), Ln(p.base), dv)
	}
	logTerm := Prod(dv, Ln(p.base))
	ratTerm := Prod(p.exp, du, Power(p.base, Int(-1)))
	return Prod(Power(p.base, p.exp), Sum(logTerm, ratTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	return finiteFloat(math.Pow(b.Float64(), e.Float64()))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// ============================================================
// Func — named function application
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func fnOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func Sin(arg Expr) Expr       { return fnOf("sin", arg).Simplify() }
func Cos(arg Expr) Expr       { return fnOf("cos", arg).Simplify() }
func Tan(arg Expr) Expr       { return fnOf("tan", arg).Simplify() }
func Exp(arg Expr) Expr       { return fnOf("exp", arg).Simplify() }
func Ln(arg Expr) Expr        { return fnOf("ln", arg).Simplify() }
func Abs(arg Expr) Expr       { return fnOf("abs", arg).Simplify() }
func Gamma(arg Expr) Expr     { return fnOf("gamma", arg).Simplify() }
func Factorial(arg Expr) Expr { return fnOf("factorial", arg).Simplify() }

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		// Approx arguments evaluate through; exact arguments only fold
		// for special values so symbolic results stay exact.
		if n.approx {
			if v, ok2 := (&Func{name: f.name, arg: n}).Eval(); ok2 {
				return v
			}
		}
		switch f.name {
		case "sin":
			if n.IsZero() {
				return Int(0)
			}
		case "cos":
			if n.IsZero() {
				return Int(1)
			}
		case "ln":
			if n.IsOne() {
				return Int(0)
			}
		case "exp":
			if n.IsZero() {
				return Int(1)
			}
		case "abs":
			return numAbs(n)
		case "factorial":
			if k, isInt := n.Int64(); isInt && k >= 0 && k <= 20 {
				return Int(intFactorial(k))
			}
		case "gamma":
			if k, isInt := n.Int64(); isInt && k >= 1 && k <= 21 {
				return Int(intFactorial(k - 1))
			}
		}
	}
	switch f.name {
	case "ln":
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 1 {
			if c, ok2 := m.factors[0].(*Num); ok2 && c.IsNegative() {
				rest := append([]Expr{numAbs(c)}, m.factors[1:]...)
				return Abs(Prod(rest...))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

func intFactorial(n int64) int64 {
	out := int64(1)
	for i := int64(2); i <= n; i++ {
		out *= i
	}
	return out
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) Sub(varName string, value Expr) Expr {
	return fnOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = Cos(f.arg)
	case "cos":
		outer = Prod(Int(-1), Sin(f.arg))
	case "tan":
		outer = Sum(Int(1), Power(Tan(f.arg), Int(2)))
	case "exp":
		outer = Exp(f.arg)
	case "ln":
		outer = Power(f.arg, Int(-1))
	default:
		return Prod(fnOf("D["+f.name+"]", f.arg), du)
	}
	return Prod(outer, du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v := n.Float64()
	switch f.name {
	case "sin":
		return finiteFloat(math.Sin(v))
	case "cos":
		return finiteFloat(math.Cos(v))
	case "tan":
		return finiteFloat(math.Tan(v))
	case "exp":
		return finiteFloat(math.Exp(v))
	case "ln":
		if v > 0 {
			return finiteFloat(math.Log(v))
		}
	case "abs":
		return finiteFloat(math.Abs(v))
	case "gamma":
		return finiteFloat(math.Gamma(v))
	case "factorial":
		return finiteFloat(math.Gamma(v + 1))
	}
	return nil, false
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

// ============================================================
// Shared helpers
// ============================================================

// finiteFloat wraps v as an approximate Num, rejecting NaN and
// infinities so overflowing evaluations stay symbolic.
func finiteFloat(v float64) (*Num, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return Float(v), true
}

func sortExprs(list []Expr) {
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(list))
	for i, e := range list {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	for i := range ks {
		list[i] = ks[i].e
	}
}

// SplitCoeff splits e into a numeric coefficient and the remaining factor.
func SplitCoeff(e Expr) (*Num, Expr) {
	if n, ok := e.(*Num); ok {
		return n, Int(1)
	}
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if c, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return c, rest[0]
			}
			return c, &Mul{factors: rest}
		}
	}
	return Int(1), e
}

// FreeSymbols returns the set of variable names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	walkSymbols(e, out)
	return out
}

// SortedSymbols returns the variable names of e in lexical order.
func SortedSymbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func walkSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			walkSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			walkSymbols(f, out)
		}
	case *Pow:
		walkSymbols(v.base, out)
		walkSymbols(v.exp, out)
	case *Func:
		walkSymbols(v.arg, out)
	}
}

func isInt(e Expr, v int64) bool {
	n, ok := e.(*Num)
	if !ok {
		return false
	}
	k, isI := n.Int64()
	return isI && k == v
}

func errorf(format string, args ...any) error { return fmt.Errorf("engine: "+format, args...) }
