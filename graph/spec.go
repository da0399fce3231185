// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package graph evaluates a dataflow graph of typed nodes, one tick at a
// time, in topological order (§3.3/§4.4).
package graph

import "github.com/galvanized/animrt/value"

// NodeKind names one of the closed catalog of evaluators a NodeSpec may
// select (§6.4's node signature table).
type NodeKind string

const (
	KindConstant    NodeKind = "Constant"
	KindSlider      NodeKind = "Slider"
	KindMultiSlider NodeKind = "MultiSlider"

	KindAdd      NodeKind = "Add"
	KindSubtract NodeKind = "Subtract"
	KindMultiply NodeKind = "Multiply"
	KindDivide   NodeKind = "Divide"
	KindPower    NodeKind = "Power"
	KindLog      NodeKind = "Log"
	KindSin      NodeKind = "Sin"
	KindCos      NodeKind = "Cos"
	KindTan      NodeKind = "Tan"
	KindClamp    NodeKind = "Clamp"
	KindRemap    NodeKind = "Remap"

	KindTime       NodeKind = "Time"
	KindOscillator NodeKind = "Oscillator"

	KindSpring NodeKind = "Spring"
	KindDamp   NodeKind = "Damp"
	KindSlew   NodeKind = "Slew"

	KindAnd         NodeKind = "And"
	KindOr          NodeKind = "Or"
	KindNot         NodeKind = "Not"
	KindXor         NodeKind = "Xor"
	KindGreaterThan NodeKind = "GreaterThan"
	KindLessThan    NodeKind = "LessThan"
	KindEqual       NodeKind = "Equal"
	KindNotEqual    NodeKind = "NotEqual"
	KindIf          NodeKind = "If"
	KindCase        NodeKind = "Case"

	KindVec3Cross       NodeKind = "Vec3Cross"
	KindVectorDot       NodeKind = "VectorDot"
	KindVectorLength    NodeKind = "VectorLength"
	KindVectorNormalize NodeKind = "VectorNormalize"
	KindVectorScale     NodeKind = "VectorScale"
	KindVectorAdd       NodeKind = "VectorAdd"
	KindVectorSubtract  NodeKind = "VectorSubtract"
	KindVectorMultiply  NodeKind = "VectorMultiply"
	KindJoin            NodeKind = "Join"
	KindSplit           NodeKind = "Split"
	KindVectorMin       NodeKind = "VectorMin"
	KindVectorMax       NodeKind = "VectorMax"
	KindVectorMean      NodeKind = "VectorMean"
	KindVectorMedian    NodeKind = "VectorMedian"
	KindVectorMode      NodeKind = "VectorMode"

	KindBlendWeightedAverage NodeKind = "BlendWeightedAverage"
	KindBlendAdditive        NodeKind = "BlendAdditive"
	KindBlendMultiply        NodeKind = "BlendMultiply"
	KindBlendMax             NodeKind = "BlendMax"

	KindInverseKinematics NodeKind = "InverseKinematics"
	KindUrdfIkPosition    NodeKind = "UrdfIkPosition"
	KindUrdfIkPose        NodeKind = "UrdfIkPose"
	KindUrdfFk            NodeKind = "UrdfFk"

	KindInput  NodeKind = "Input"
	KindOutput NodeKind = "Output"
)

// SegmentKind tags a SelectorSegment's variant.
type SegmentKind uint8

const (
	SegField SegmentKind = iota
	SegIndex
)

// SelectorSegment is one step of a selector path applied to a source
// port's value before delivery (§3.3, reusing value.Selector's segment
// shape so graph and value share one projection implementation).
type SelectorSegment struct {
	Kind  SegmentKind
	Field string
	Index int
}

func (s SelectorSegment) toValueSegment() value.Segment {
	if s.Kind == SegField {
		return value.Segment{Kind: value.FieldSegment, Field: s.Field}
	}
	return value.Segment{Kind: value.IndexSegment, Index: s.Index}
}

func toValueSelector(segs []SelectorSegment) value.Selector {
	out := make(value.Selector, len(segs))
	for i, s := range segs {
		out[i] = s.toValueSegment()
	}
	return out
}

// InputConnection names an upstream (node, port) pair and an optional
// selector applied to its value before it reaches this node's input
// (§3.3's `inputs: map<port_name, (src_node_id, src_port_name, selector?)>`).
type InputConnection struct {
	SourceNodeID string
	SourcePort   string
	Selector     []SelectorSegment
}

// NodeParams is the node-kind-specific parameter bag; only fields
// relevant to a node's Kind are read, mirroring anim.Params' sparse
// zero-means-default convention.
type NodeParams struct {
	Value       *value.Value
	X, Y, Z     float64
	Threshold   float64
	CaseLabels  []string
	Sizes       []int
	Path        string
	Stiffness   float64
	Damping     float64
	HalfLife    float64
	MaxRate     float64
	UrdfXML     string
	RootLink    string
	TipLink     string
}

// NodeSpec is one node in a GraphSpec: its kind, parameters, named input
// wiring, and any declared output shapes to enforce post-evaluation
// (§3.3).
type NodeSpec struct {
	ID            string
	Kind          NodeKind
	Params        NodeParams
	Inputs        map[string]InputConnection
	OutputShapes  map[string]value.Shape
}

// GraphSpec is an unordered node set, identity by ID; edges are implied
// by each node's Inputs (§3.3).
type GraphSpec struct {
	Nodes []NodeSpec
}

// NodeByID returns the node with the given id, or nil.
func (g *GraphSpec) NodeByID(id string) *NodeSpec {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}
