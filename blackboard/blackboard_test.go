// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package blackboard

import (
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenGetRoundTrips(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position.x", value.Float(3.5)))

	_, v, err := bb.Get("position.x")
	require.NoError(t, err)
	f, ok := v.AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)
}

func TestGetEmptyPathIsPathEmpty(t *testing.T) {
	bb := New()
	_, _, err := bb.Get("")
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, PathEmpty, pathErr.Kind)
}

func TestGetMissingSegmentIsNotFound(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position.x", value.Float(1)))

	_, _, err := bb.Get("position.y")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetOnNamespaceIsPathIsNamespace(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position.x", value.Float(1)))

	_, _, err := bb.Get("position")
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, PathIsNamespace, pathErr.Kind)
}

func TestGetThroughLeafIsPathIsLeaf(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position", value.Float(1)))

	_, _, err := bb.Get("position.x")
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, PathIsLeaf, pathErr.Kind)
}

func TestSetRecordCreatesAllFields(t *testing.T) {
	bb := New()
	rec := value.Record(map[string]value.Value{
		"x": value.Float(1),
		"y": value.Float(2),
	})
	require.NoError(t, bb.Set("position", rec))

	_, xv, err := bb.Get("position.x")
	require.NoError(t, err)
	x, _ := xv.AsFloat()
	assert.Equal(t, 1.0, x)

	_, yv, err := bb.Get("position.y")
	require.NoError(t, err)
	y, _ := yv.AsFloat()
	assert.Equal(t, 2.0, y)
}

func TestSetRecordNestedCreatesSubtree(t *testing.T) {
	bb := New()
	rec := value.Record(map[string]value.Value{
		"position": value.Record(map[string]value.Value{
			"x": value.Float(1),
		}),
	})
	require.NoError(t, bb.Set("body", rec))

	_, v, err := bb.Get("body.position.x")
	require.NoError(t, err)
	x, _ := v.AsFloat()
	assert.Equal(t, 1.0, x)
}

func TestSetRecordAbortsWithoutMutationOnIncompatibility(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position.x", value.Float(1)))
	require.NoError(t, bb.Set("position.y", value.Float(2)))

	rec := value.Record(map[string]value.Value{
		"x": value.Float(9),
		"y": value.Bool(true),
	})
	err := bb.Set("position", rec)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)

	_, xv, _ := bb.Get("position.x")
	x, _ := xv.AsFloat()
	assert.Equal(t, 1.0, x, "x must be unchanged because y failed preflight")

	_, yv, _ := bb.Get("position.y")
	y, _ := yv.AsFloat()
	assert.Equal(t, 2.0, y, "y must be unchanged because the whole record was aborted")
}

func TestSetIncompatibleLeafTypeIsRejected(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("flag", value.Bool(true)))

	err := bb.Set("flag", value.Float(1))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)

	_, v, _ := bb.Get("flag")
	b, _ := v.AsBool()
	assert.True(t, b, "original value must be untouched")
}

func TestSetEqualValueIsIdempotentNoOp(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("count", value.Float(5)))
	id1, _, _ := bb.Get("count")

	require.NoError(t, bb.Set("count", value.Float(5)))
	id2, v, _ := bb.Get("count")

	assert.Equal(t, id1, id2)
	f, _ := v.AsFloat()
	assert.Equal(t, 5.0, f)
}

func TestSetWithIDUsesHintForNewLeaf(t *testing.T) {
	bb := New()
	hint := uuid.New()
	require.NoError(t, bb.SetWithID("speed", value.Float(2), hint))

	id, _, err := bb.Get("speed")
	require.NoError(t, err)
	assert.Equal(t, hint, id)
}

func TestSetWithIDPreservesExistingIDOnReset(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("speed", value.Float(2)))
	originalID, _, _ := bb.Get("speed")

	otherHint := uuid.New()
	require.NoError(t, bb.SetWithID("speed", value.Float(3), otherHint))

	id, v, _ := bb.Get("speed")
	assert.Equal(t, originalID, id, "re-setting an existing leaf must preserve its id regardless of idHint")
	f, _ := v.AsFloat()
	assert.Equal(t, 3.0, f)
}

func TestGetKeyValueMaterializesSubtree(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position.x", value.Float(1)))
	require.NoError(t, bb.Set("position.y", value.Float(2)))

	v, err := bb.GetKeyValue("position")
	require.NoError(t, err)

	fields, ok := v.AsRecord()
	require.True(t, ok)
	x, _ := fields["x"].AsFloat()
	y, _ := fields["y"].AsFloat()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)
}

func TestGetKeyValueOnLeafReturnsItsValue(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("speed", value.Float(9)))

	v, err := bb.GetKeyValue("speed")
	require.NoError(t, err)
	f, ok := v.AsFloat()
	require.True(t, ok)
	assert.Equal(t, 9.0, f)
}

func TestGetKeyValueRootPathMaterializesWholeTree(t *testing.T) {
	bb := New()
	require.NoError(t, bb.Set("position.x", value.Float(1)))
	require.NoError(t, bb.Set("speed", value.Float(2)))

	v, err := bb.GetKeyValue("")
	require.NoError(t, err)

	fields, ok := v.AsRecord()
	require.True(t, ok)
	_, hasPosition := fields["position"]
	_, hasSpeed := fields["speed"]
	assert.True(t, hasPosition)
	assert.True(t, hasSpeed)
}

func TestRootIDIsStableAcrossCalls(t *testing.T) {
	bb := New()
	assert.Equal(t, bb.RootID(), bb.RootID())
}
