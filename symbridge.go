// Package symbridge exposes a curated allowlist of symbolic-algebra
// operations behind a single attribute resolver.
//
// The allowlist is built once at load from a fixed table of named
// operations; dunder names are excluded and aliases resolve to the
// identical function value as their target. GetAttr is the only lookup
// path: names outside the allowlist fail with ErrAttributeNotFound.
package symbridge

import "fmt"

// GetAttr resolves name against the allowlist and returns the bound
// operation. Unknown names, dunder names included, fail with an error
// wrapping ErrAttributeNotFound.
func GetAttr(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
	}
	return fn, nil
}

// Has reports whether name is in the allowlist.
func Has(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the allowlist in lexical order. The slice is a copy;
// the allowlist itself never changes after load.
func Names() []string {
	out := make([]string, len(allowlist))
	copy(out, allowlist)
	return out
}
