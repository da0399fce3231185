// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGraphYAML = `
nodes:
  - id: "a"
    kind: "Constant"
    params:
      value:
        type: "Float"
        value: 2
  - id: "b"
    kind: "Sin"
    inputs:
      in:
        node: "a"
        port: "out"
    output_shapes:
      out: "scalar"
`

func TestLoadSpecYAMLRoundtrip(t *testing.T) {
	spec, err := LoadSpecYAML([]byte(sampleGraphYAML))
	require.NoError(t, err)
	require.Len(t, spec.Nodes, 2)

	a := spec.NodeByID("a")
	require.NotNil(t, a)
	assert.Equal(t, KindConstant, a.Kind)
	require.NotNil(t, a.Params.Value)
	f, _ := a.Params.Value.AsFloat()
	assert.Equal(t, 2.0, f)

	b := spec.NodeByID("b")
	require.NotNil(t, b)
	assert.Equal(t, KindSin, b.Kind)
	conn, ok := b.Inputs["in"]
	require.True(t, ok)
	assert.Equal(t, "a", conn.SourceNodeID)
	assert.Equal(t, "out", conn.SourcePort)
}

func TestLoadSpecYAMLUnknownKindFails(t *testing.T) {
	_, err := LoadSpecYAML([]byte(`
nodes:
  - id: "a"
    kind: "NotARealKind"
`))
	require.Error(t, err)
}

func TestLoadSpecYAMLMalformedYAMLFails(t *testing.T) {
	_, err := LoadSpecYAML([]byte("not: [valid"))
	require.Error(t, err)
}

func TestLoadSpecYAMLUnknownShapeFails(t *testing.T) {
	_, err := LoadSpecYAML([]byte(`
nodes:
  - id: "a"
    kind: "Constant"
    output_shapes:
      out: "bogus_shape"
`))
	require.Error(t, err)
}

func TestParseShapeVectorWithLength(t *testing.T) {
	shape, err := parseShape("vector(3)")
	require.NoError(t, err)
	require.NotNil(t, shape.VectorLen)
	assert.Equal(t, 3, *shape.VectorLen)
}

func TestParseSelectorMixesFieldAndIndex(t *testing.T) {
	segs, err := parseSelector([]string{"rotation", "0"})
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, SegField, segs[0].Kind)
	assert.Equal(t, SegIndex, segs[1].Kind)
	assert.Equal(t, 0, segs[1].Index)
}
