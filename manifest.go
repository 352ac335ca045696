package symbridge

import (
	"fmt"
	"strings"
)

// Param documents one keyword argument of an operation. A nil Default
// marks the argument required (or inferred from the receiver).
type Param struct {
	Name    string `json:"name" yaml:"name"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Signature documents one allowlisted operation. The manifest is pure
// documentation: nothing here is ever invoked, and a test keeps it in
// step with the registry.
type Signature struct {
	Name    string  `json:"name" yaml:"name"`
	Summary string  `json:"summary" yaml:"summary"`
	Params  []Param `json:"params,omitempty" yaml:"params,omitempty"`
}

// String renders the signature in call form: name(param=default, ...).
func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		if p.Default == nil {
			parts[i] = p.Name
			continue
		}
		if str, ok := p.Default.(string); ok {
			parts[i] = fmt.Sprintf("%s=%q", p.Name, str)
			continue
		}
		parts[i] = fmt.Sprintf("%s=%v", p.Name, p.Default)
	}
	return s.Name + "(" + strings.Join(parts, ", ") + ")"
}

// manifest lists every allowlisted operation in lexical order.
var manifest = []Signature{
	{Name: "collect_const", Summary: "Group terms of a sum that share a numeric coefficient."},
	{Name: "collect_sqrt", Summary: "Group terms of a sum by their square-root factor."},
	{Name: "convert_rationals_to_floats", Summary: "Alias of nfloat.", Params: []Param{
		{Name: "n", Default: 15},
		{Name: "exponent", Default: false},
	}},
	{Name: "expand_complex", Summary: "Expand and reduce powers of the imaginary unit I."},
	{Name: "expand_func", Summary: "Expand special functions with known functional equations."},
	{Name: "expand_log", Summary: "Split logarithms of products and powers.", Params: []Param{
		{Name: "force", Default: false},
	}},
	{Name: "expand_mul", Summary: "Distribute multiplication over addition."},
	{Name: "expand_multinomial", Summary: "Expand integer powers of sums."},
	{Name: "expand_power_base", Summary: "Rewrite (x*y)^z as x^z*y^z.", Params: []Param{
		{Name: "force", Default: false},
	}},
	{Name: "expand_power_exp", Summary: "Rewrite b^(x+y) as b^x*b^y."},
	{Name: "expand_trig", Summary: "Apply the angle-addition identities to sin and cos."},
	{Name: "factor_nc", Summary: "Factor common terms; identical to factor_terms here since every expression commutes."},
	{Name: "factor_terms", Summary: "Pull the common factor out of a sum, normalizing the sign."},
	{Name: "gcd_terms", Summary: "Pull the greatest common numeric and symbolic factor out of a sum."},
	{Name: "horner", Summary: "Rewrite a polynomial in nested Horner form.", Params: []Param{
		{Name: "symbol"},
	}},
	{Name: "hypersimp", Summary: "Simplify the term ratio f(k+1)/f(k) of a hypergeometric term.", Params: []Param{
		{Name: "k"},
	}},
	{Name: "is_sqrt", Summary: "Report whether the expression is a square root."},
	{Name: "logcombine", Summary: "Merge logarithms: ln(a)+ln(b) becomes ln(a*b).", Params: []Param{
		{Name: "force", Default: false},
	}},
	{Name: "nfloat", Summary: "Convert rational literals to floating-point display form.", Params: []Param{
		{Name: "n", Default: 15},
		{Name: "exponent", Default: false},
	}},
	{Name: "nsolve", Summary: "Solve numerically with Newton's method from a starting point.", Params: []Param{
		{Name: "symbol"},
		{Name: "x0"},
		{Name: "tol", Default: 1e-12},
		{Name: "max_iter", Default: 50},
	}},
	{Name: "nthroot", Summary: "Take the exact n-th root when one exists, else leave it symbolic.", Params: []Param{
		{Name: "n", Default: 2},
	}},
	{Name: "powdenest", Summary: "Collapse nested powers: (b^e1)^e2 becomes b^(e1*e2).", Params: []Param{
		{Name: "force", Default: false},
	}},
	{Name: "rad_rationalize", Summary: "Clear square roots from the denominator; returns [num, den].", Params: []Param{
		{Name: "den"},
	}},
	{Name: "rcollect", Summary: "Collect with respect to each variable in turn.", Params: []Param{
		{Name: "vars"},
	}},
	{Name: "separatevars", Summary: "Factor the expression into parts depending on fewer variables."},
	{Name: "solve", Summary: "Find the roots of expr = 0, sorted ascending.", Params: []Param{
		{Name: "symbol"},
	}},
	{Name: "sqrt_depth", Summary: "Maximum nesting level of square roots."},
	{Name: "sqrtdenest", Summary: "Denest sqrt(a + b*sqrt(r)) when possible.", Params: []Param{
		{Name: "max_iter", Default: 3},
	}},
	{Name: "symmetrize", Summary: "Rewrite via elementary symmetric polynomials; returns [symmetric, remainder].", Params: []Param{
		{Name: "vars"},
	}},
}

// Manifest returns the documentation manifest. The slice is a copy.
func Manifest() []Signature {
	out := make([]Signature, len(manifest))
	copy(out, manifest)
	return out
}

// Lookup returns the documented signature for name.
func Lookup(name string) (Signature, bool) {
	for _, s := range manifest {
		if s.Name == name {
			return s, true
		}
	}
	return Signature{}, false
}
