// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package blackboard

import "github.com/galvanized/animrt/value"

// PathErrorKind tags the reason a path could not be resolved (§7's
// PathError{kind ∈ {Empty, IsNamespace, IsLeaf}}).
type PathErrorKind uint8

const (
	PathEmpty PathErrorKind = iota
	PathIsNamespace
	PathIsLeaf
)

func (k PathErrorKind) String() string {
	switch k {
	case PathEmpty:
		return "Empty"
	case PathIsNamespace:
		return "IsNamespace"
	case PathIsLeaf:
		return "IsLeaf"
	default:
		return "Unknown"
	}
}

// PathError reports a malformed or inapplicable path argument.
type PathError struct {
	Path string
	Kind PathErrorKind
}

func (e *PathError) Error() string {
	return "blackboard: path '" + e.Path + "': " + e.Kind.String()
}

// TypeMismatchError reports an incompatible value assigned to an existing
// leaf (§4.6: "same ValueType" compatibility, no numeric promotion).
type TypeMismatchError struct {
	Path             string
	Expected, Actual value.Shape
}

func (e *TypeMismatchError) Error() string {
	return "blackboard: path '" + e.Path + "': expected " + e.Expected.String() + ", got " + e.Actual.String()
}

// NotFoundError reports a reference to a node id or path that does not
// exist in the blackboard.
type NotFoundError struct {
	Kind, ID string
}

func (e *NotFoundError) Error() string { return "blackboard: " + e.Kind + " '" + e.ID + "' not found" }
