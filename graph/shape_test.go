// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforceOutputShapesPassesMatchingShape(t *testing.T) {
	node := &NodeSpec{ID: "n", OutputShapes: map[string]value.Shape{"out": {Kind: value.ShapeScalar}}}
	outputs := map[string]PortValue{"out": portOf(value.Float(1))}
	require.NoError(t, enforceOutputShapes(node, outputs))
}

func TestEnforceOutputShapesCoercesNumericLikeMismatch(t *testing.T) {
	length := 3
	node := &NodeSpec{ID: "n", OutputShapes: map[string]value.Shape{"out": value.VectorShape(&length)}}
	outputs := map[string]PortValue{"out": portOf(value.Vec3([3]float64{1, 2, 3}))}
	err := enforceOutputShapes(node, outputs)
	require.NoError(t, err)
	data, _ := outputs["out"].Value.AsVector()
	assert.Equal(t, []float64{1, 2, 3}, data)
}

func TestEnforceOutputShapesFailsOnNonNumericMismatch(t *testing.T) {
	node := &NodeSpec{ID: "n", OutputShapes: map[string]value.Shape{"out": {Kind: value.ShapeBool}}}
	outputs := map[string]PortValue{"out": portOf(value.Text("nope"))}
	err := enforceOutputShapes(node, outputs)
	require.Error(t, err)
	var mismatch *ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "n", mismatch.NodeID)
	assert.Equal(t, "out", mismatch.Port)
}

func TestEnforceOutputShapesFailsOnMissingPort(t *testing.T) {
	node := &NodeSpec{ID: "n", OutputShapes: map[string]value.Shape{"out": {Kind: value.ShapeScalar}}}
	err := enforceOutputShapes(node, map[string]PortValue{})
	require.Error(t, err)
}
