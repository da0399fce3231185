// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"math"
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planarIKInputs(l1, l2, l3, theta, x, y float64) map[string]PortValue {
	return map[string]PortValue{
		"bone1": portOf(value.Float(l1)),
		"bone2": portOf(value.Float(l2)),
		"bone3": portOf(value.Float(l3)),
		"theta": portOf(value.Float(theta)),
		"x":     portOf(value.Float(x)),
		"y":     portOf(value.Float(y)),
	}
}

func TestEvalInverseKinematicsReachableTargetYieldsFiniteAngles(t *testing.T) {
	inputs := planarIKInputs(1, 1, 0, 0, 1.5, 0.3)
	got := evalInverseKinematics(inputs)
	angles, ok := got.AsVec3()
	require.True(t, ok)
	for _, a := range angles {
		assert.False(t, math.IsNaN(a))
	}
}

func TestEvalInverseKinematicsUnreachableTargetYieldsNaN(t *testing.T) {
	inputs := planarIKInputs(1, 1, 0, 0, 10, 10)
	got := evalInverseKinematics(inputs)
	angles, ok := got.AsVec3()
	require.True(t, ok)
	for _, a := range angles {
		assert.True(t, math.IsNaN(a))
	}
}

type stubURDFSolver struct {
	positionJoints map[string]float64
}

func (s *stubURDFSolver) SolvePosition(urdfXML, root, tip string, target [3]float64, seed map[string]float64) (map[string]float64, error) {
	return s.positionJoints, nil
}

func (s *stubURDFSolver) SolvePose(urdfXML, root, tip string, targetPos [3]float64, targetRot [4]float64, seed map[string]float64) (map[string]float64, error) {
	return s.positionJoints, nil
}

func (s *stubURDFSolver) ForwardKinematics(urdfXML, root, tip string, joints map[string]float64) ([3]float64, [4]float64, error) {
	return [3]float64{1, 2, 3}, [4]float64{0, 0, 0, 1}, nil
}

func TestEvalURDFNodeFailsWithoutConfiguredSolver(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	node := &NodeSpec{ID: "n", Kind: KindUrdfIkPosition}
	_, err := evalURDFNode(rt, node, map[string]PortValue{"target": portOf(value.Vec3([3]float64{1, 0, 0}))})
	require.Error(t, err)
}

func TestEvalURDFNodeSolvePositionReturnsJointRecord(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	rt.SetUrdfIKSolver(&stubURDFSolver{positionJoints: map[string]float64{"shoulder": 0.5}})
	node := &NodeSpec{ID: "n", Kind: KindUrdfIkPosition, Params: NodeParams{UrdfXML: "<robot/>", RootLink: "base", TipLink: "tip"}}
	out, err := evalURDFNode(rt, node, map[string]PortValue{"target": portOf(value.Vec3([3]float64{1, 0, 0}))})
	require.NoError(t, err)
	rec, ok := out["out"].Value.AsRecord()
	require.True(t, ok)
	f, _ := rec["shoulder"].AsFloat()
	assert.Equal(t, 0.5, f)
}

func TestEvalURDFNodeCacheInvalidatesOnConfigChange(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	rt.SetUrdfIKSolver(&stubURDFSolver{positionJoints: map[string]float64{"j": 1}})
	node := &NodeSpec{ID: "n", Kind: KindUrdfIkPosition, Params: NodeParams{UrdfXML: "<robot/>", RootLink: "base", TipLink: "tip"}}
	_, err := evalURDFNode(rt, node, map[string]PortValue{"target": portOf(value.Vec3([3]float64{1, 0, 0}))})
	require.NoError(t, err)
	first := rt.state["urdfik:n"].(*ikCacheEntry).hash

	node.Params.TipLink = "other_tip"
	_, err = evalURDFNode(rt, node, map[string]PortValue{"target": portOf(value.Vec3([3]float64{1, 0, 0}))})
	require.NoError(t, err)
	second := rt.state["urdfik:n"].(*ikCacheEntry).hash
	assert.NotEqual(t, first, second)
}

func TestEvalURDFNodeForwardKinematics(t *testing.T) {
	rt := NewRuntime(0, 1.0/60)
	rt.SetUrdfIKSolver(&stubURDFSolver{})
	node := &NodeSpec{ID: "n", Kind: KindUrdfFk, Params: NodeParams{UrdfXML: "<robot/>", RootLink: "base", TipLink: "tip"}}
	out, err := evalURDFNode(rt, node, map[string]PortValue{})
	require.NoError(t, err)
	pos, ok := out["position"].Value.AsVec3()
	require.True(t, ok)
	assert.Equal(t, [3]float64{1, 2, 3}, pos)
}
