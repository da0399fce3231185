// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import "fmt"

// ShapeMismatchError reports that a value's structural shape did not match
// an expected shape at some named location.
type ShapeMismatchError struct {
	Where    string
	Expected Shape
	Got      Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("value: shape mismatch at %s: expected %s, got %s", e.Where, e.Expected, e.Got)
}

// TypeMismatchError reports that a value's ValueType did not match an
// expected ValueType.
type TypeMismatchError struct {
	Expected ValueType
	Got      ValueType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// InvalidComponentCountError reports that a Coerce call received the wrong
// number of flattened scalars for the target shape.
type InvalidComponentCountError struct {
	Shape    Shape
	Expected int
	Got      int
}

func (e *InvalidComponentCountError) Error() string {
	return fmt.Sprintf("value: shape %s expects %d component(s), got %d", e.Shape, e.Expected, e.Got)
}

// IncompatibleError reports that two flattened values could not be aligned
// for element-wise arithmetic.
type IncompatibleError struct {
	Left  Shape
	Right Shape
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("value: incompatible shapes for element-wise op: %s vs %s", e.Left, e.Right)
}

// SelectorError reports a selector segment that could not be applied to a
// value, qualified by the path walked so far.
type SelectorError struct {
	Path   string
	Reason string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("value: selector %q: %s", e.Path, e.Reason)
}

// InvalidValueError reports a value that could not be constructed, such as
// a String requested from Coerce or a declared non-numeric shape at a
// numeric-only boundary.
type InvalidValueError struct {
	Reason string
}

func (e *InvalidValueError) Error() string { return "value: invalid value: " + e.Reason }
