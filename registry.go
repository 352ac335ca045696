package symbridge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/symbridge/symbridge/engine"
)

// Func is the uniform call shape of every dispatched operation: the
// receiving expression plus keyword arguments.
type Func func(recv engine.Expr, args Args) (any, error)

// operations is the raw table the allowlist is built from. Keys are the
// public snake_case names; init filters dunder names and wires aliases.
var operations = map[string]Func{
	"solve":              opSolve,
	"nsolve":             opNSolve,
	"expand_mul":         opExpandMul,
	"expand_log":         opExpandLog,
	"expand_func":        opExpandFunc,
	"expand_trig":        opExpandTrig,
	"expand_complex":     opExpandComplex,
	"expand_multinomial": opExpandMultinomial,
	"expand_power_exp":   opExpandPowerExp,
	"expand_power_base":  opExpandPowerBase,
	"nfloat":             opNFloat,
	"separatevars":       opSeparateVars,
	"nthroot":            opNthRoot,
	"hypersimp":          opHyperSimp,
	"logcombine":         opLogCombine,
	"rad_rationalize":    opRadRationalize,
	"rcollect":           opRCollect,
	"collect_sqrt":       opCollectSqrt,
	"collect_const":      opCollectConst,
	"powdenest":          opPowDenest,
	"sqrtdenest":         opSqrtDenest,
	"is_sqrt":            opIsSqrt,
	"sqrt_depth":         opSqrtDepth,
	"gcd_terms":          opGCDTerms,
	"factor_terms":       opFactorTerms,
	"factor_nc":          opFactorNC,
	"horner":             opHorner,
	"symmetrize":         opSymmetrize,
}

// aliases maps alternate public names to their canonical operation. An
// alias resolves to the identical Func value as its target.
var aliases = map[string]string{
	"convert_rationals_to_floats": "nfloat",
}

var (
	registry  map[string]Func
	allowlist []string
)

func init() {
	registry = make(map[string]Func, len(operations)+len(aliases))
	for name, fn := range operations {
		if isDunder(name) {
			continue
		}
		registry[name] = fn
	}
	for alias, target := range aliases {
		if isDunder(alias) {
			continue
		}
		fn, ok := registry[target]
		if !ok {
			panic(fmt.Sprintf("symbridge: alias %q targets unknown operation %q", alias, target))
		}
		registry[alias] = fn
	}
	allowlist = make([]string, 0, len(registry))
	for name := range registry {
		allowlist = append(allowlist, name)
	}
	sort.Strings(allowlist)
}

// isDunder reports whether name uses Python's double-underscore form.
func isDunder(name string) bool {
	return strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// pickSymbol resolves the variable an operation works over: the explicit
// argument when given, otherwise the sole free symbol of recv.
func pickSymbol(recv engine.Expr, args Args, key string) (string, error) {
	if name, err := args.StringOr(key, ""); err != nil {
		return "", err
	} else if name != "" {
		return name, nil
	}
	names := engine.SortedSymbols(recv)
	switch len(names) {
	case 0:
		return "", fmt.Errorf("no free symbols in %s; pass %q", recv.String(), key)
	case 1:
		return names[0], nil
	}
	return "", fmt.Errorf("ambiguous free symbols %v; pass %q", names, key)
}

func opSolve(recv engine.Expr, args Args) (any, error) {
	symbol, err := pickSymbol(recv, args, "symbol")
	if err != nil {
		return nil, err
	}
	roots, err := engine.Solve(recv, symbol)
	if err != nil {
		return nil, err
	}
	return roots, nil
}

func opNSolve(recv engine.Expr, args Args) (any, error) {
	symbol, err := pickSymbol(recv, args, "symbol")
	if err != nil {
		return nil, err
	}
	x0, err := args.Float("x0")
	if err != nil {
		return nil, err
	}
	tol, err := args.FloatOr("tol", 1e-12)
	if err != nil {
		return nil, err
	}
	maxIter, err := args.IntOr("max_iter", 50)
	if err != nil {
		return nil, err
	}
	return engine.NSolve(recv, symbol, x0, tol, maxIter)
}

func opExpandMul(recv engine.Expr, _ Args) (any, error) {
	return engine.ExpandMul(recv), nil
}

func opExpandLog(recv engine.Expr, args Args) (any, error) {
	force, err := args.BoolOr("force", false)
	if err != nil {
		return nil, err
	}
	return engine.ExpandLog(recv, force), nil
}

func opExpandFunc(recv engine.Expr, _ Args) (any, error) {
	return engine.ExpandFunc(recv), nil
}

func opExpandTrig(recv engine.Expr, _ Args) (any, error) {
	return engine.ExpandTrig(recv), nil
}

func opExpandComplex(recv engine.Expr, _ Args) (any, error) {
	return engine.ExpandComplex(recv), nil
}

func opExpandMultinomial(recv engine.Expr, _ Args) (any, error) {
	return engine.ExpandMultinomial(recv), nil
}

func opExpandPowerExp(recv engine.Expr, _ Args) (any, error) {
	return engine.ExpandPowerExp(recv), nil
}

func opExpandPowerBase(recv engine.Expr, args Args) (any, error) {
	force, err := args.BoolOr("force", false)
	if err != nil {
		return nil, err
	}
	return engine.ExpandPowerBase(recv, force), nil
}

func opNFloat(recv engine.Expr, args Args) (any, error) {
	n, err := args.IntOr("n", 15)
	if err != nil {
		return nil, err
	}
	exponent, err := args.BoolOr("exponent", false)
	if err != nil {
		return nil, err
	}
	return engine.NFloat(recv, n, exponent), nil
}

func opSeparateVars(recv engine.Expr, _ Args) (any, error) {
	return engine.SeparateVars(recv), nil
}

func opNthRoot(recv engine.Expr, args Args) (any, error) {
	n, err := args.IntOr("n", 2)
	if err != nil {
		return nil, err
	}
	return engine.NthRoot(recv, int64(n))
}

func opHyperSimp(recv engine.Expr, args Args) (any, error) {
	k, err := args.String("k")
	if err != nil {
		return nil, err
	}
	return engine.HyperSimp(recv, k)
}

func opLogCombine(recv engine.Expr, args Args) (any, error) {
	force, err := args.BoolOr("force", false)
	if err != nil {
		return nil, err
	}
	return engine.LogCombine(recv, force), nil
}

func opRadRationalize(recv engine.Expr, args Args) (any, error) {
	den, err := args.Expr("den")
	if err != nil {
		return nil, err
	}
	num, newDen := engine.RadRationalize(recv, den)
	return []engine.Expr{num, newDen}, nil
}

func opRCollect(recv engine.Expr, args Args) (any, error) {
	vars, err := args.Strings("vars")
	if err != nil {
		return nil, err
	}
	return engine.RCollect(recv, vars...), nil
}

func opCollectSqrt(recv engine.Expr, _ Args) (any, error) {
	return engine.CollectSqrt(recv), nil
}

func opCollectConst(recv engine.Expr, _ Args) (any, error) {
	return engine.CollectConst(recv), nil
}

func opPowDenest(recv engine.Expr, args Args) (any, error) {
	force, err := args.BoolOr("force", false)
	if err != nil {
		return nil, err
	}
	return engine.PowDenest(recv, force), nil
}

func opSqrtDenest(recv engine.Expr, args Args) (any, error) {
	maxIter, err := args.IntOr("max_iter", 3)
	if err != nil {
		return nil, err
	}
	return engine.SqrtDenest(recv, maxIter), nil
}

func opIsSqrt(recv engine.Expr, _ Args) (any, error) {
	return engine.IsSqrt(recv), nil
}

func opSqrtDepth(recv engine.Expr, _ Args) (any, error) {
	return engine.SqrtDepth(recv), nil
}

func opGCDTerms(recv engine.Expr, _ Args) (any, error) {
	return engine.GCDTerms(recv), nil
}

func opFactorTerms(recv engine.Expr, _ Args) (any, error) {
	return engine.FactorTerms(recv), nil
}

func opFactorNC(recv engine.Expr, _ Args) (any, error) {
	return engine.FactorNC(recv), nil
}

func opHorner(recv engine.Expr, args Args) (any, error) {
	symbol, err := pickSymbol(recv, args, "symbol")
	if err != nil {
		return nil, err
	}
	return engine.Horner(recv, symbol)
}

func opSymmetrize(recv engine.Expr, args Args) (any, error) {
	vars, err := args.Strings("vars")
	if err != nil {
		return nil, err
	}
	sym, rem, err := engine.Symmetrize(recv, vars)
	if err != nil {
		return nil, err
	}
	return []engine.Expr{sym, rem}, nil
}
