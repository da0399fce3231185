// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import "github.com/galvanized/animrt/value"

// ShapeMismatchError reports a node output that failed its declared
// shape after evaluation (§4.4).
type ShapeMismatchError struct {
	NodeID, Port    string
	Declared, Actual value.Shape
}

func (e *ShapeMismatchError) Error() string {
	return "graph: node " + e.NodeID + " port " + e.Port + ": declared shape " +
		e.Declared.String() + ", got " + e.Actual.String()
}

// enforceOutputShapes checks every (port, declared_shape) pair in
// node.OutputShapes against outputs, coercing numeric-like declared
// shapes to match (so a looser-shaped numeric producer still satisfies a
// stricter declared shape) and failing otherwise. Enforcement happens
// before the port becomes visible to downstream nodes (§4.4).
func enforceOutputShapes(node *NodeSpec, outputs map[string]PortValue) error {
	for port, declared := range node.OutputShapes {
		pv, ok := outputs[port]
		if !ok {
			return &ShapeMismatchError{NodeID: node.ID, Port: port, Declared: declared, Actual: value.Shape{}}
		}
		if value.ShapeEqual(pv.Shape, declared) {
			continue
		}
		if value.IsNumericLike(declared) && value.IsNumericLike(pv.Shape) {
			coerced, err := value.Coerce(declared, pv.Value)
			if err != nil {
				return &ShapeMismatchError{NodeID: node.ID, Port: port, Declared: declared, Actual: pv.Shape}
			}
			outputs[port] = PortValue{Value: coerced, Shape: declared}
			continue
		}
		return &ShapeMismatchError{NodeID: node.ID, Port: port, Declared: declared, Actual: pv.Shape}
	}
	return nil
}
