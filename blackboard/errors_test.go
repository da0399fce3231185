// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package blackboard

import (
	"testing"

	"github.com/galvanized/animrt/value"
	"github.com/stretchr/testify/assert"
)

func TestPathErrorMessageNamesPathAndKind(t *testing.T) {
	err := &PathError{Path: "position.x", Kind: PathIsNamespace}
	assert.Contains(t, err.Error(), "position.x")
	assert.Contains(t, err.Error(), "IsNamespace")
}

func TestTypeMismatchErrorMessageNamesShapes(t *testing.T) {
	err := &TypeMismatchError{Path: "flag", Expected: value.Shape{Kind: value.ShapeBool}, Actual: value.Shape{Kind: value.ShapeScalar}}
	msg := err.Error()
	assert.Contains(t, msg, "flag")
}

func TestNotFoundErrorMessageNamesKindAndID(t *testing.T) {
	err := &NotFoundError{Kind: "path segment", ID: "missing"}
	msg := err.Error()
	assert.Contains(t, msg, "path segment")
	assert.Contains(t, msg, "missing")
}
