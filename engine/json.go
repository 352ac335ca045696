package engine

import (
	"encoding/json"
	"math/big"
)

// ToJSON renders an expression tree as a JSON document with one object
// per node, tagged by "type": num, sym, add, mul, pow or func.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(toJSONMap(e))
	return string(b), err
}

func toJSONMap(e Expr) map[string]interface{} {
	switch v := e.(type) {
	case *Num:
		m := map[string]interface{}{"type": "num", "value": v.val.RatString()}
		if v.approx {
			m["approx"] = true
			m["prec"] = v.prec
		}
		return m
	case *Sym:
		return map[string]interface{}{"type": "sym", "name": v.name}
	case *Add:
		ts := make([]map[string]interface{}, len(v.terms))
		for i, t := range v.terms {
			ts[i] = toJSONMap(t)
		}
		return map[string]interface{}{"type": "add", "terms": ts}
	case *Mul:
		fs := make([]map[string]interface{}, len(v.factors))
		for i, f := range v.factors {
			fs[i] = toJSONMap(f)
		}
		return map[string]interface{}{"type": "mul", "factors": fs}
	case *Pow:
		return map[string]interface{}{
			"type": "pow",
			"base": toJSONMap(v.base),
			"exp":  toJSONMap(v.exp),
		}
	case *Func:
		return map[string]interface{}{"type": "func", "name": v.name, "arg": toJSONMap(v.arg)}
	}
	return map[string]interface{}{"type": "num", "value": "0"}
}

// FromJSON rebuilds an expression from its decoded JSON object form.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subObjArray := func(field string) ([]map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, errorf("%s: %q must be an array", typ, field)
		}
		out := make([]map[string]interface{}, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			out[i] = m
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r := new(big.Rat)
		if _, ok := r.SetString(val); !ok {
			return nil, errorf("invalid num value: %s", val)
		}
		n := &Num{val: r}
		if ap, ok := data["approx"].(bool); ok && ap {
			prec := 15
			if p, ok := data["prec"].(float64); ok && p >= 1 {
				prec = int(p)
			}
			n = n.Approx(prec)
		}
		return n, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return Var(name), nil

	case "add":
		objs, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		terms := make([]Expr, len(objs))
		for i, o := range objs {
			e, err := FromJSON(o)
			if err != nil {
				return nil, errorf("add: terms[%d]: %w", i, err)
			}
			terms[i] = e
		}
		return Sum(terms...), nil

	case "mul":
		objs, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		factors := make([]Expr, len(objs))
		for i, o := range objs {
			e, err := FromJSON(o)
			if err != nil {
				return nil, errorf("mul: factors[%d]: %w", i, err)
			}
			factors[i] = e
		}
		return Prod(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := FromJSON(baseM)
		if err != nil {
			return nil, errorf("pow: base: %w", err)
		}
		exp, err := FromJSON(expM)
		if err != nil {
			return nil, errorf("pow: exp: %w", err)
		}
		return Power(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		argM, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		arg, err := FromJSON(argM)
		if err != nil {
			return nil, errorf("func: arg: %w", err)
		}
		return fnOf(name, arg).Simplify(), nil
	}
	return nil, errorf("unknown expression type: %s", typ)
}

// Parse decodes a JSON string directly into an expression.
func Parse(src string) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(src), &m); err != nil {
		return nil, errorf("parse: %w", err)
	}
	return FromJSON(m)
}
