// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputsDefaultsMissingSourceToZero(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	node := &NodeSpec{ID: "n", Inputs: map[string]InputConnection{
		"in": {SourceNodeID: "ghost", SourcePort: "out"},
	}}
	inputs, err := readInputs(rt, node)
	require.NoError(t, err)
	f, _ := inputs["in"].Value.AsFloat()
	assert.Equal(t, 0.0, f)
}

func TestReadInputsPassesThroughAlreadyProducedOutput(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	rt.Outputs["src"] = map[string]PortValue{"out": portOf(value.Float(3.5))}
	node := &NodeSpec{ID: "n", Inputs: map[string]InputConnection{
		"in": {SourceNodeID: "src", SourcePort: "out"},
	}}
	inputs, err := readInputs(rt, node)
	require.NoError(t, err)
	f, _ := inputs["in"].Value.AsFloat()
	assert.Equal(t, 3.5, f)
}

func TestReadInputsAppliesSelector(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	rt.Outputs["src"] = map[string]PortValue{"out": portOf(value.Vec3([3]float64{1, 2, 3}))}
	node := &NodeSpec{ID: "n", Inputs: map[string]InputConnection{
		"in": {SourceNodeID: "src", SourcePort: "out", Selector: []SelectorSegment{{Kind: SegIndex, Index: 1}}},
	}}
	inputs, err := readInputs(rt, node)
	require.NoError(t, err)
	f, _ := inputs["in"].Value.AsFloat()
	assert.Equal(t, 2.0, f)
}

func TestEvaluateAllProducesTopologicallyOrderedOutputs(t *testing.T) {
	two := value.Float(2)
	spec := &GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Kind: KindConstant, Params: NodeParams{Value: &two}},
		{ID: "b", Kind: KindSin, Inputs: map[string]InputConnection{
			"in": {SourceNodeID: "a", SourcePort: "out"},
		}},
	}}
	rt := NewRuntime(0, 1.0/60)
	rt, err := EvaluateAll(spec, rt)
	require.NoError(t, err)
	require.Contains(t, rt.Outputs, "a")
	require.Contains(t, rt.Outputs, "b")
	a, _ := rt.Outputs["a"]["out"].Value.AsFloat()
	assert.Equal(t, 2.0, a)
}

func TestEvaluateAllStagesWritesFromOutputNodes(t *testing.T) {
	five := value.Float(5)
	spec := &GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Kind: KindConstant, Params: NodeParams{Value: &five}},
		{ID: "o", Kind: KindOutput, Params: NodeParams{Path: "root.x"}, Inputs: map[string]InputConnection{
			"in": {SourceNodeID: "a", SourcePort: "out"},
		}},
	}}
	rt := NewRuntime(0, 1.0/60)
	rt, err := EvaluateAll(spec, rt)
	require.NoError(t, err)
	require.Len(t, rt.Writes, 1)
	assert.Equal(t, "root.x", rt.Writes[0].Path)
	f, _ := rt.Writes[0].Value.AsFloat()
	assert.Equal(t, 5.0, f)
}

func TestStageInputFeedsInputNode(t *testing.T) {
	spec := &GraphSpec{Nodes: []NodeSpec{
		{ID: "in", Kind: KindInput, Params: NodeParams{Path: "host.knob"}},
	}}
	rt := NewRuntime(0, 1.0/60)
	rt.StageInput("host.knob", value.Float(7), nil)
	rt, err := EvaluateAll(spec, rt)
	require.NoError(t, err)
	f, _ := rt.Outputs["in"]["out"].Value.AsFloat()
	assert.Equal(t, 7.0, f)
}
