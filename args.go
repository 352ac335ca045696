package symbridge

import (
	"fmt"

	"github.com/symbridge/symbridge/engine"
)

// Args carries the keyword arguments of a dispatched call. Values arrive
// as decoded JSON, so numbers are float64 and expressions are nested
// objects; the typed getters normalize both.
type Args map[string]any

// Expr reads a required expression argument, accepting either an
// engine.Expr or a decoded JSON expression object.
func (a Args) Expr(key string) (engine.Expr, error) {
	v, ok := a[key]
	if !ok {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	switch val := v.(type) {
	case engine.Expr:
		return val, nil
	case map[string]any:
		return engine.FromJSON(val)
	}
	return nil, fmt.Errorf("argument %q must be an expression", key)
}

// String reads a required string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

// StringOr reads an optional string argument.
func (a Args) StringOr(key, def string) (string, error) {
	if _, ok := a[key]; !ok {
		return def, nil
	}
	return a.String(key)
}

// Strings reads a required list of strings.
func (a Args) Strings(key string) ([]string, error) {
	v, ok := a[key]
	if !ok {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		out := make([]string, len(val))
		for i, it := range val {
			s, ok := it.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("argument %q[%d] must be a non-empty string", key, i)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("argument %q must be a list of strings", key)
}

// IntOr reads an optional integer argument. JSON numbers decode as
// float64, so both forms are accepted.
func (a Args) IntOr(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("argument %q must be an integer", key)
}

// Float reads a required float argument.
func (a Args) Float(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("argument %q must be a number", key)
}

// FloatOr reads an optional float argument.
func (a Args) FloatOr(key string, def float64) (float64, error) {
	if _, ok := a[key]; !ok {
		return def, nil
	}
	return a.Float(key)
}

// BoolOr reads an optional boolean argument.
func (a Args) BoolOr(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q must be a boolean", key)
	}
	return b, nil
}
