// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package blackboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPathEmptyIsEmptySlice(t *testing.T) {
	assert.Empty(t, SplitPath(""))
}

func TestSplitPathSplitsOnDot(t *testing.T) {
	assert.Equal(t, []string{"root", "position", "x"}, SplitPath("root.position.x"))
}

func TestJoinPathIsSplitPathInverse(t *testing.T) {
	segs := []string{"a", "b", "c"}
	assert.Equal(t, segs, SplitPath(JoinPath(segs)))
}
