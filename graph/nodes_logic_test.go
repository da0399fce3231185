// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asBoolT(t *testing.T, v value.Value) bool {
	t.Helper()
	b, ok := v.AsBool()
	require.True(t, ok)
	return b
}

func TestEvalAndOrNotXor(t *testing.T) {
	node := func(k NodeKind) *NodeSpec { return &NodeSpec{ID: "n", Kind: k} }
	tt := map[string]PortValue{"lhs": portOf(value.Bool(true)), "rhs": portOf(value.Bool(true))}
	tf := map[string]PortValue{"lhs": portOf(value.Bool(true)), "rhs": portOf(value.Bool(false))}

	out, ok := evalLogicOrCompareOrControl(node(KindAnd), tt)
	require.True(t, ok)
	assert.True(t, asBoolT(t, out["out"].Value))

	out, ok = evalLogicOrCompareOrControl(node(KindAnd), tf)
	require.True(t, ok)
	assert.False(t, asBoolT(t, out["out"].Value))

	out, ok = evalLogicOrCompareOrControl(node(KindOr), tf)
	require.True(t, ok)
	assert.True(t, asBoolT(t, out["out"].Value))

	out, ok = evalLogicOrCompareOrControl(node(KindNot), map[string]PortValue{"in": portOf(value.Bool(false))})
	require.True(t, ok)
	assert.True(t, asBoolT(t, out["out"].Value))

	out, ok = evalLogicOrCompareOrControl(node(KindXor), tf)
	require.True(t, ok)
	assert.True(t, asBoolT(t, out["out"].Value))

	out, ok = evalLogicOrCompareOrControl(node(KindXor), tt)
	require.True(t, ok)
	assert.False(t, asBoolT(t, out["out"].Value))
}

func TestEvalComparisons(t *testing.T) {
	node := &NodeSpec{ID: "n", Kind: KindGreaterThan}
	inputs := map[string]PortValue{"lhs": portOf(value.Float(2)), "rhs": portOf(value.Float(1))}
	out, ok := evalLogicOrCompareOrControl(node, inputs)
	require.True(t, ok)
	assert.True(t, asBoolT(t, out["out"].Value))

	node = &NodeSpec{ID: "n", Kind: KindEqual}
	inputs = map[string]PortValue{"lhs": portOf(value.Float(1)), "rhs": portOf(value.Float(1))}
	out, ok = evalLogicOrCompareOrControl(node, inputs)
	require.True(t, ok)
	assert.True(t, asBoolT(t, out["out"].Value))
}

func TestEvalIfSelectsBranchByCondition(t *testing.T) {
	node := &NodeSpec{ID: "n", Kind: KindIf}
	inputs := map[string]PortValue{
		"cond": portOf(value.Bool(false)),
		"then": portOf(value.Float(1)),
		"else": portOf(value.Float(2)),
	}
	out, ok := evalLogicOrCompareOrControl(node, inputs)
	require.True(t, ok)
	f, _ := out["out"].Value.AsFloat()
	assert.Equal(t, 2.0, f)
}

func TestEvalCaseMatchesByLabel(t *testing.T) {
	node := &NodeSpec{ID: "n", Kind: KindCase, Params: NodeParams{CaseLabels: []string{"a", "b"}}}
	inputs := map[string]PortValue{
		"selector": portOf(value.Text("b")),
		"cases_1":  portOf(value.Float(10)),
		"cases_2":  portOf(value.Float(20)),
	}
	out, ok := evalLogicOrCompareOrControl(node, inputs)
	require.True(t, ok)
	f, _ := out["out"].Value.AsFloat()
	assert.Equal(t, 20.0, f)
}

func TestEvalCaseFallsBackToDefaultWhenUnmatched(t *testing.T) {
	node := &NodeSpec{ID: "n", Kind: KindCase, Params: NodeParams{CaseLabels: []string{"a"}}}
	inputs := map[string]PortValue{
		"selector": portOf(value.Text("zzz")),
		"cases_1":  portOf(value.Float(10)),
		"default":  portOf(value.Float(-1)),
	}
	out, ok := evalLogicOrCompareOrControl(node, inputs)
	require.True(t, ok)
	f, _ := out["out"].Value.AsFloat()
	assert.Equal(t, -1.0, f)
}

func TestEvalCaseMatchesByNumericIndexWhenNoLabels(t *testing.T) {
	node := &NodeSpec{ID: "n", Kind: KindCase}
	inputs := map[string]PortValue{
		"selector": portOf(value.Float(1)),
		"cases_1":  portOf(value.Float(10)),
		"cases_2":  portOf(value.Float(20)),
	}
	out, ok := evalLogicOrCompareOrControl(node, inputs)
	require.True(t, ok)
	f, _ := out["out"].Value.AsFloat()
	assert.Equal(t, 20.0, f)
}
