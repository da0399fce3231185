// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"math"

	"github.com/galvanized/animrt/value"
)

// NotFoundError reports a reference to an input port or node that carries
// no contribution this tick (distinct from the spec's default-zero rule,
// used where a required named input is simply absent from inputs).
type NotFoundError struct {
	Kind, ID string
}

func (e *NotFoundError) Error() string { return "graph: " + e.Kind + " '" + e.ID + "' not found" }

func single(v value.Value) map[string]PortValue {
	return map[string]PortValue{"out": portOf(v)}
}

func input(inputs map[string]PortValue, port string) value.Value {
	if pv, ok := inputs[port]; ok {
		return pv.Value
	}
	return value.Float(0)
}

// broadcastBinary applies the graph's arithmetic broadcasting contract
// (§4.4): equal shape zips, scalar broadcasts, mismatched fixed shapes
// yield a NaN-filled result of the left operand's shape rather than
// erroring (arithmetic nodes never fail on shape; only NaN signals).
func broadcastBinary(lhs, rhs value.Value, f func(a, b float64) float64) value.Value {
	out, err := value.Binary(lhs, rhs, f)
	if err == nil {
		return out
	}
	return value.NullOfShapeNumeric(value.InferShape(lhs))
}

func broadcastUnary(v value.Value, f func(float64) float64) value.Value {
	out, err := value.Unary(v, f)
	if err != nil {
		return value.NullOfShapeNumeric(value.InferShape(v))
	}
	return out
}

// evalNode evaluates one node given its already-resolved inputs,
// dispatching by Kind across nodes.go and its sibling files
// (nodes_vector.go, nodes_logic.go, nodes_blend.go, nodes_stateful.go,
// nodes_ik.go) — one evaluator family per file, mirroring the source's
// eval_node.rs module split (§4.4).
func evalNode(rt *GraphRuntime, node *NodeSpec, inputs map[string]PortValue) (map[string]PortValue, error) {
	switch node.Kind {
	case KindConstant:
		if node.Params.Value != nil {
			return single(*node.Params.Value), nil
		}
		return single(value.Float(0)), nil
	case KindSlider:
		return single(value.Float(node.Params.X)), nil
	case KindMultiSlider:
		return map[string]PortValue{
			"x": portOf(value.Float(node.Params.X)),
			"y": portOf(value.Float(node.Params.Y)),
			"z": portOf(value.Float(node.Params.Z)),
		}, nil

	case KindAdd:
		return single(evalVariadicFold(inputs, "operands", 0, func(a, b float64) float64 { return a + b })), nil
	case KindMultiply:
		return single(evalVariadicFold(inputs, "operands", 1, func(a, b float64) float64 { return a * b })), nil
	case KindSubtract:
		return single(broadcastBinary(input(inputs, "lhs"), input(inputs, "rhs"), func(a, b float64) float64 { return a - b })), nil
	case KindDivide:
		return single(broadcastBinary(input(inputs, "lhs"), input(inputs, "rhs"), func(a, b float64) float64 {
			if b == 0 {
				return math.NaN()
			}
			return a / b
		})), nil
	case KindPower:
		return single(broadcastBinary(input(inputs, "base"), input(inputs, "exp"), math.Pow)), nil
	case KindLog:
		return single(broadcastBinary(input(inputs, "value"), input(inputs, "base"), func(v, base float64) float64 {
			return math.Log(v) / math.Log(base)
		})), nil
	case KindSin:
		return single(broadcastUnary(input(inputs, "in"), math.Sin)), nil
	case KindCos:
		return single(broadcastUnary(input(inputs, "in"), math.Cos)), nil
	case KindTan:
		return single(broadcastUnary(input(inputs, "in"), math.Tan)), nil
	case KindClamp:
		return single(broadcastUnary(input(inputs, "in"), func(x float64) float64 {
			min, _ := input(inputs, "min").AsFloat()
			max, _ := input(inputs, "max").AsFloat()
			return clampFloat(x, min, max)
		})), nil
	case KindRemap:
		inMin, _ := input(inputs, "in_min").AsFloat()
		inMax, _ := input(inputs, "in_max").AsFloat()
		outMin, _ := input(inputs, "out_min").AsFloat()
		outMax, _ := input(inputs, "out_max").AsFloat()
		return single(broadcastUnary(input(inputs, "in"), func(x float64) float64 {
			t := clampFloat((x-inMin)/(inMax-inMin), 0, 1)
			return outMin + t*(outMax-outMin)
		})), nil

	case KindTime:
		return single(value.Float(rt.T)), nil
	case KindOscillator:
		return single(evalOscillator(rt, inputs)), nil

	case KindInput:
		return evalInputNode(rt, node)
	case KindOutput:
		return single(input(inputs, "in")), nil

	case KindInverseKinematics:
		return single(evalInverseKinematics(inputs)), nil
	case KindUrdfIkPosition, KindUrdfIkPose, KindUrdfFk:
		return evalURDFNode(rt, node, inputs)

	default:
		if out, ok := evalLogicOrCompareOrControl(node, inputs); ok {
			return out, nil
		}
		if out, ok := evalVectorNode(node, inputs); ok {
			return out, nil
		}
		if out, ok := evalBlendNode(node, inputs); ok {
			return out, nil
		}
		if out, ok := evalStatefulNode(rt, node, inputs); ok {
			return out, nil
		}
		return nil, &NotFoundError{Kind: "node kind", ID: string(node.Kind)}
	}
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// evalVariadicFold folds f left-to-right over the sorted operands_<N>
// inputs, seeded with identity when no operand is present (§4.4's
// variadic Add/Multiply, identity 0/1).
func evalVariadicFold(inputs map[string]PortValue, prefix string, identity float64, f func(a, b float64) float64) value.Value {
	ops := gatherVariadic(inputs, prefix)
	if len(ops) == 0 {
		return value.Float(identity)
	}
	acc := ops[0].Value
	for _, pv := range ops[1:] {
		acc = broadcastBinary(acc, pv.Value, f)
	}
	return acc
}

// evalOscillator computes sin(tau*f*t + phase), broadcast over
// vector-valued frequency/phase inputs (§4.4).
func evalOscillator(rt *GraphRuntime, inputs map[string]PortValue) value.Value {
	freq := input(inputs, "frequency")
	phase := input(inputs, "phase")
	combined := broadcastBinary(freq, phase, func(f, p float64) float64 {
		return math.Sin(2*math.Pi*f*rt.T + p)
	})
	return combined
}

func evalInputNode(rt *GraphRuntime, node *NodeSpec) (map[string]PortValue, error) {
	staged, ok := rt.staged[node.Params.Path]
	if !ok {
		if node.Params.Value != nil {
			return single(*node.Params.Value), nil
		}
		if declared, hasOut := node.OutputShapes["out"]; hasOut {
			if value.IsNumericLike(declared) {
				return single(value.NullOfShapeNumeric(declared)), nil
			}
			return nil, &value.InvalidValueError{Reason: "Input node '" + node.ID + "' has no staged value for non-numeric declared shape"}
		}
		return single(value.Float(0)), nil
	}
	v := staged.value
	declared, hasOut := node.OutputShapes["out"]
	if !hasOut && staged.shape != nil {
		declared, hasOut = *staged.shape, true
	}
	if hasOut && value.IsNumericLike(declared) {
		coerced, err := value.Coerce(declared, v)
		if err == nil {
			v = coerced
		}
	}
	return single(v), nil
}
