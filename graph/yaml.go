// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

// yaml.go loads a GraphSpec from disk the way anim/yaml.go loads a Clip:
// read bytes, yaml.Unmarshal into a config struct, wrap errors with the
// loading function's name.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/galvanized/animrt/value"
	"gopkg.in/yaml.v3"
)

// LoadError reports a malformed graph description.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return "graph: " + e.Reason }

type graphConfig struct {
	Nodes []nodeConfig `yaml:"nodes"`
}

type nodeConfig struct {
	ID           string                    `yaml:"id"`
	Kind         string                    `yaml:"kind"`
	Params       nodeParamsConfig          `yaml:"params"`
	Inputs       map[string]inputConfig    `yaml:"inputs"`
	OutputShapes map[string]string         `yaml:"output_shapes"`
}

type inputConfig struct {
	Node     string   `yaml:"node"`
	Port     string   `yaml:"port"`
	Selector []string `yaml:"selector"`
}

type nodeParamsConfig struct {
	Value      *wireValueConfig `yaml:"value"`
	X          float64          `yaml:"x"`
	Y          float64          `yaml:"y"`
	Z          float64          `yaml:"z"`
	Threshold  float64          `yaml:"threshold"`
	CaseLabels []string         `yaml:"case_labels"`
	Sizes      []int            `yaml:"sizes"`
	Path       string           `yaml:"path"`
	Stiffness  float64          `yaml:"stiffness"`
	Damping    float64          `yaml:"damping"`
	HalfLife   float64          `yaml:"half_life"`
	MaxRate    float64          `yaml:"max_rate"`
	UrdfXML    string           `yaml:"urdf_xml"`
	RootLink   string           `yaml:"root_link"`
	TipLink    string           `yaml:"tip_link"`
}

// wireValueConfig is the graph package's YAML counterpart to value/json.go's
// wireValue, scoped to the scalar/vector variants a Constant node
// realistically carries.
type wireValueConfig struct {
	Type  string    `yaml:"type"`
	Float *float64  `yaml:"value"`
	Bool  *bool     `yaml:"bool"`
	Text  *string   `yaml:"text"`
	Vec   []float64 `yaml:"vec"`
}

func (w wireValueConfig) toValue() (value.Value, error) {
	switch w.Type {
	case "Float":
		if w.Float == nil {
			return value.Value{}, &LoadError{Reason: "missing 'value' for Float"}
		}
		return value.Float(*w.Float), nil
	case "Bool":
		if w.Bool == nil {
			return value.Value{}, &LoadError{Reason: "missing 'bool' for Bool"}
		}
		return value.Bool(*w.Bool), nil
	case "Text":
		if w.Text == nil {
			return value.Value{}, &LoadError{Reason: "missing 'text' for Text"}
		}
		return value.Text(*w.Text), nil
	case "Vec2":
		if len(w.Vec) != 2 {
			return value.Value{}, &LoadError{Reason: "Vec2 needs exactly 2 components"}
		}
		return value.Vec2([2]float64{w.Vec[0], w.Vec[1]}), nil
	case "Vec3":
		if len(w.Vec) != 3 {
			return value.Value{}, &LoadError{Reason: "Vec3 needs exactly 3 components"}
		}
		return value.Vec3([3]float64{w.Vec[0], w.Vec[1], w.Vec[2]}), nil
	case "Vec4":
		if len(w.Vec) != 4 {
			return value.Value{}, &LoadError{Reason: "Vec4 needs exactly 4 components"}
		}
		return value.Vec4([4]float64{w.Vec[0], w.Vec[1], w.Vec[2], w.Vec[3]}), nil
	case "Quat":
		if len(w.Vec) != 4 {
			return value.Value{}, &LoadError{Reason: "Quat needs exactly 4 components"}
		}
		return value.Quat([4]float64{w.Vec[0], w.Vec[1], w.Vec[2], w.Vec[3]}), nil
	case "Vector":
		return value.Vector(append([]float64(nil), w.Vec...)), nil
	default:
		return value.Value{}, &LoadError{Reason: "unsupported value type '" + w.Type + "'"}
	}
}

// parseShape parses the small shape grammar output_shapes entries use:
// scalar | bool | text | vec2 | vec3 | vec4 | quat | color_rgba |
// transform | vector | vector(N).
func parseShape(s string) (value.Shape, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "vector(") && strings.HasSuffix(s, ")") {
		n, err := strconv.Atoi(s[len("vector(") : len(s)-1])
		if err != nil {
			return value.Shape{}, &LoadError{Reason: "malformed vector length in shape '" + s + "'"}
		}
		return value.VectorShape(&n), nil
	}
	switch s {
	case "scalar":
		return value.Shape{Kind: value.ShapeScalar}, nil
	case "bool":
		return value.Shape{Kind: value.ShapeBool}, nil
	case "text":
		return value.Shape{Kind: value.ShapeText}, nil
	case "vec2":
		return value.Shape{Kind: value.ShapeVec2}, nil
	case "vec3":
		return value.Shape{Kind: value.ShapeVec3}, nil
	case "vec4":
		return value.Shape{Kind: value.ShapeVec4}, nil
	case "quat":
		return value.Shape{Kind: value.ShapeQuat}, nil
	case "color_rgba":
		return value.Shape{Kind: value.ShapeColorRgba}, nil
	case "transform":
		return value.Shape{Kind: value.ShapeTransform}, nil
	case "vector":
		return value.VectorShape(nil), nil
	default:
		return value.Shape{}, &LoadError{Reason: "unknown shape '" + s + "'"}
	}
}

func parseSelector(segs []string) ([]SelectorSegment, error) {
	out := make([]SelectorSegment, 0, len(segs))
	for _, seg := range segs {
		if idx, err := strconv.Atoi(seg); err == nil {
			out = append(out, SelectorSegment{Kind: SegIndex, Index: idx})
			continue
		}
		out = append(out, SelectorSegment{Kind: SegField, Field: seg})
	}
	return out, nil
}

var nodeKindByName = func() map[string]NodeKind {
	kinds := []NodeKind{
		KindConstant, KindSlider, KindMultiSlider,
		KindAdd, KindSubtract, KindMultiply, KindDivide, KindPower, KindLog,
		KindSin, KindCos, KindTan, KindClamp, KindRemap,
		KindTime, KindOscillator, KindSpring, KindDamp, KindSlew,
		KindAnd, KindOr, KindNot, KindXor, KindGreaterThan, KindLessThan,
		KindEqual, KindNotEqual, KindIf, KindCase,
		KindVec3Cross, KindVectorDot, KindVectorLength, KindVectorNormalize,
		KindVectorScale, KindVectorAdd, KindVectorSubtract, KindVectorMultiply,
		KindJoin, KindSplit, KindVectorMin, KindVectorMax, KindVectorMean,
		KindVectorMedian, KindVectorMode,
		KindBlendWeightedAverage, KindBlendAdditive, KindBlendMultiply, KindBlendMax,
		KindInverseKinematics, KindUrdfIkPosition, KindUrdfIkPose, KindUrdfFk,
		KindInput, KindOutput,
	}
	out := make(map[string]NodeKind, len(kinds))
	for _, k := range kinds {
		out[string(k)] = k
	}
	return out
}()

// ParseNodeKind looks up a NodeKind by its exact wire name.
func ParseNodeKind(name string) (NodeKind, bool) {
	k, ok := nodeKindByName[name]
	return k, ok
}

func (p nodeParamsConfig) toParams() (NodeParams, error) {
	out := NodeParams{
		X: p.X, Y: p.Y, Z: p.Z,
		Threshold:  p.Threshold,
		CaseLabels: p.CaseLabels,
		Sizes:      p.Sizes,
		Path:       p.Path,
		Stiffness:  p.Stiffness,
		Damping:    p.Damping,
		HalfLife:   p.HalfLife,
		MaxRate:    p.MaxRate,
		UrdfXML:    p.UrdfXML,
		RootLink:   p.RootLink,
		TipLink:    p.TipLink,
	}
	if p.Value != nil {
		v, err := p.Value.toValue()
		if err != nil {
			return NodeParams{}, err
		}
		out.Value = &v
	}
	return out, nil
}

// LoadSpecYAML parses a GraphSpec description from YAML bytes.
func LoadSpecYAML(data []byte) (*GraphSpec, error) {
	var cfg graphConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("LoadSpecYAML: yaml %w", err)
	}
	spec := &GraphSpec{Nodes: make([]NodeSpec, 0, len(cfg.Nodes))}
	for _, nc := range cfg.Nodes {
		kind, ok := ParseNodeKind(nc.Kind)
		if !ok {
			return nil, &LoadError{Reason: "unknown node kind '" + nc.Kind + "' on node " + nc.ID}
		}
		params, err := nc.Params.toParams()
		if err != nil {
			return nil, fmt.Errorf("LoadSpecYAML: node %s: %w", nc.ID, err)
		}
		node := NodeSpec{
			ID:     nc.ID,
			Kind:   kind,
			Params: params,
			Inputs: make(map[string]InputConnection, len(nc.Inputs)),
		}
		for port, ic := range nc.Inputs {
			sel, err := parseSelector(ic.Selector)
			if err != nil {
				return nil, fmt.Errorf("LoadSpecYAML: node %s input %s: %w", nc.ID, port, err)
			}
			node.Inputs[port] = InputConnection{
				SourceNodeID: ic.Node,
				SourcePort:   ic.Port,
				Selector:     sel,
			}
		}
		if len(nc.OutputShapes) > 0 {
			node.OutputShapes = make(map[string]value.Shape, len(nc.OutputShapes))
			for port, shapeStr := range nc.OutputShapes {
				shape, err := parseShape(shapeStr)
				if err != nil {
					return nil, fmt.Errorf("LoadSpecYAML: node %s output %s: %w", nc.ID, port, err)
				}
				node.OutputShapes[port] = shape
			}
		}
		spec.Nodes = append(spec.Nodes, node)
	}
	return spec, nil
}
