// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import "github.com/galvanized/animrt/value"

// PortValue pairs a produced value with the shape it was produced under
// (§3.3's `PortValue = { value, shape }`).
type PortValue struct {
	Value value.Value
	Shape value.Shape
}

func portOf(v value.Value) PortValue {
	return PortValue{Value: v, Shape: value.InferShape(v)}
}

// WriteOp is one staged write an Output node emits into the runtime's
// write log, in evaluation order (§3.3/§4.4).
type WriteOp struct {
	Path  string
	Value value.Value
	Shape value.Shape
}

// GraphRuntime is the mutable state threaded through one EvaluateAll
// call: the tick clock, every node's produced outputs, the accumulated
// writes, staged host inputs, and per-node state for stateful nodes and
// the URDF IK cache (§3.3).
type GraphRuntime struct {
	T, Dt   float64
	Outputs map[string]map[string]PortValue
	Writes  []WriteOp

	staged     map[string]stagedInput
	state      map[string]interface{}
	urdfSolver UrdfIKSolver
}

// SetUrdfIKSolver wires a host-supplied solver for UrdfIkPosition,
// UrdfIkPose, and UrdfFk nodes (§4.4/§5.2). Without one, those nodes
// fail when evaluated; every other node kind works with no solver set.
func (rt *GraphRuntime) SetUrdfIKSolver(solver UrdfIKSolver) {
	rt.urdfSolver = solver
}

type stagedInput struct {
	value value.Value
	shape *value.Shape
}

// NewRuntime constructs an empty runtime at tick clock (t, dt).
func NewRuntime(t, dt float64) *GraphRuntime {
	return &GraphRuntime{
		T: t, Dt: dt,
		Outputs: map[string]map[string]PortValue{},
		staged:  map[string]stagedInput{},
		state:   map[string]interface{}{},
	}
}

// StageInput stages a typed value for an Input node to read by path
// (§6.3). A declared shape is optional; when present, the Input node
// coerces staged numerics to it, unless the Input node declares its own
// "out" shape, which takes precedence.
func (rt *GraphRuntime) StageInput(path string, v value.Value, shape *value.Shape) {
	rt.staged[path] = stagedInput{value: v, shape: shape}
}

// readInputs resolves every declared input of node from the outputs
// already produced this tick (topological order guarantees sources run
// first), applying each connection's selector. A missing source defaults
// to Float(0) (§4.4).
func readInputs(rt *GraphRuntime, node *NodeSpec) (map[string]PortValue, error) {
	out := make(map[string]PortValue, len(node.Inputs))
	for port, conn := range node.Inputs {
		srcOutputs, ok := rt.Outputs[conn.SourceNodeID]
		if !ok {
			out[port] = portOf(value.Float(0))
			continue
		}
		src, ok := srcOutputs[conn.SourcePort]
		if !ok {
			out[port] = portOf(value.Float(0))
			continue
		}
		if len(conn.Selector) == 0 {
			out[port] = src
			continue
		}
		sel := toValueSelector(conn.Selector)
		shape := src.Shape
		v, s, err := value.Project(src.Value, &shape, sel)
		if err != nil {
			return nil, err
		}
		pv := PortValue{Value: v}
		if s != nil {
			pv.Shape = *s
		} else {
			pv.Shape = value.InferShape(v)
		}
		out[port] = pv
	}
	return out, nil
}

// EvaluateAll evaluates every node of spec once, in topological order,
// returning the populated runtime or the first node-level error (which
// aborts the tick with no partial writes committed, §7).
func EvaluateAll(spec *GraphSpec, rt *GraphRuntime) (*GraphRuntime, error) {
	order, err := TopologicalOrder(spec)
	if err != nil {
		return nil, err
	}
	var writes []WriteOp
	for _, id := range order {
		node := spec.NodeByID(id)
		inputs, err := readInputs(rt, node)
		if err != nil {
			return nil, err
		}
		outputs, err := evalNode(rt, node, inputs)
		if err != nil {
			return nil, err
		}
		if err := enforceOutputShapes(node, outputs); err != nil {
			return nil, err
		}
		if node.Kind == KindOutput {
			if port, ok := outputs["out"]; ok && node.Params.Path != "" {
				writes = append(writes, WriteOp{Path: node.Params.Path, Value: port.Value, Shape: port.Shape})
			}
		}
		rt.Outputs[id] = outputs
	}
	rt.Writes = append(rt.Writes, writes...)
	return rt, nil
}
