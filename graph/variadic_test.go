// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/stretchr/testify/assert"
)

func TestParseVariadicKeySplitsPrefixAndIndex(t *testing.T) {
	prefix, idx, ok := parseVariadicKey("operands_12")
	assert.True(t, ok)
	assert.Equal(t, "operands", prefix)
	assert.Equal(t, 12, idx)
}

func TestParseVariadicKeyRejectsNonNumericSuffix(t *testing.T) {
	_, _, ok := parseVariadicKey("operands_abc")
	assert.False(t, ok)
}

func TestParseVariadicKeyRejectsNoSuffix(t *testing.T) {
	_, _, ok := parseVariadicKey("lhs")
	assert.False(t, ok)
}

func TestGatherVariadicSortsNumericallyNotLexically(t *testing.T) {
	values := map[string]PortValue{
		"operands_10": portOf(value.Float(10)),
		"operands_2":  portOf(value.Float(2)),
		"operands_1":  portOf(value.Float(1)),
		"weights_1":   portOf(value.Float(99)),
	}
	out := gatherVariadic(values, "operands")
	assert.Len(t, out, 3)
	f0, _ := out[0].Value.AsFloat()
	f1, _ := out[1].Value.AsFloat()
	f2, _ := out[2].Value.AsFloat()
	assert.Equal(t, 1.0, f0)
	assert.Equal(t, 2.0, f1)
	assert.Equal(t, 10.0, f2)
}

func TestGatherVariadicEmptyWhenNoMatch(t *testing.T) {
	out := gatherVariadic(map[string]PortValue{"lhs": portOf(value.Float(1))}, "operands")
	assert.Empty(t, out)
}
