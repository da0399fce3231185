// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"math"

	"github.com/galvanized/animrt/value"
)

// asBool coerces a Value to a boolean per the source's as_bool
// convention: Bool passes through, Float is nonzero, any numeric-like
// value is true if any flattened component is nonzero.
func asBool(v value.Value) bool {
	if b, ok := v.AsBool(); ok {
		return b
	}
	if f, ok := v.AsFloat(); ok {
		return f != 0
	}
	flat, err := value.Flatten(v)
	if err != nil {
		return false
	}
	for _, s := range flat.Data {
		if s != 0 {
			return true
		}
	}
	return false
}

func asFloat(v value.Value) float64 {
	if f, ok := v.AsFloat(); ok {
		return f
	}
	flat, err := value.Flatten(v)
	if err != nil || len(flat.Data) == 0 {
		return 0
	}
	return flat.Data[0]
}

const comparisonEpsilon = 1e-9

func evalLogicOrCompareOrControl(node *NodeSpec, inputs map[string]PortValue) (map[string]PortValue, bool) {
	switch node.Kind {
	case KindAnd:
		return single(value.Bool(asBool(input(inputs, "lhs")) && asBool(input(inputs, "rhs")))), true
	case KindOr:
		return single(value.Bool(asBool(input(inputs, "lhs")) || asBool(input(inputs, "rhs")))), true
	case KindNot:
		return single(value.Bool(!asBool(input(inputs, "in")))), true
	case KindXor:
		return single(value.Bool(asBool(input(inputs, "lhs")) != asBool(input(inputs, "rhs")))), true
	case KindGreaterThan:
		return single(value.Bool(asFloat(input(inputs, "lhs")) > asFloat(input(inputs, "rhs")))), true
	case KindLessThan:
		return single(value.Bool(asFloat(input(inputs, "lhs")) < asFloat(input(inputs, "rhs")))), true
	case KindEqual:
		return single(value.Bool(math.Abs(asFloat(input(inputs, "lhs"))-asFloat(input(inputs, "rhs"))) < comparisonEpsilon)), true
	case KindNotEqual:
		return single(value.Bool(math.Abs(asFloat(input(inputs, "lhs"))-asFloat(input(inputs, "rhs"))) >= comparisonEpsilon)), true
	case KindIf:
		if asBool(input(inputs, "cond")) {
			return single(input(inputs, "then")), true
		}
		return single(input(inputs, "else")), true
	case KindCase:
		return single(evalCase(node, inputs)), true
	default:
		return nil, false
	}
}

// evalCase matches the selector input against params.CaseLabels (string
// labels) or treats it as a numeric index into cases_1..N; falls back to
// the default input, or NaN, when nothing matches (§4.4).
func evalCase(node *NodeSpec, inputs map[string]PortValue) value.Value {
	cases := gatherVariadic(inputs, "cases")
	selector := input(inputs, "selector")

	if len(node.Params.CaseLabels) > 0 {
		if label, ok := selector.AsText(); ok {
			for i, l := range node.Params.CaseLabels {
				if l == label && i < len(cases) {
					return cases[i].Value
				}
			}
			return fallbackDefault(inputs)
		}
	}
	idx := int(asFloat(selector))
	if idx >= 0 && idx < len(cases) {
		return cases[idx].Value
	}
	return fallbackDefault(inputs)
}

func fallbackDefault(inputs map[string]PortValue) value.Value {
	if pv, ok := inputs["default"]; ok {
		return pv.Value
	}
	return value.Float(math.NaN())
}
