// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import "testing"

func TestEqualRecordFieldOrderInsignificant(t *testing.T) {
	a := Record(map[string]Value{"x": Float(1), "y": Float(2)})
	b := Record(map[string]Value{"y": Float(2), "x": Float(1)})
	if !Equal(a, b) {
		t.Errorf("expected records with same fields in different insertion order to be equal")
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	a := Vec3([3]float64{1, 2, 3})
	b := Vec3([3]float64{1, 2, 4})
	if Equal(a, b) {
		t.Errorf("expected different Vec3 values to compare unequal")
	}
}

func TestIsNumericExcludesBoolAndText(t *testing.T) {
	if Bool(true).IsNumeric() {
		t.Errorf("Bool should not be numeric")
	}
	if Text("hi").IsNumeric() {
		t.Errorf("Text should not be numeric")
	}
	if !Float(1).IsNumeric() {
		t.Errorf("Float should be numeric")
	}
	if !TransformVal(IdentityTransform).IsNumeric() {
		t.Errorf("Transform should be numeric")
	}
}

func TestEnumRoundtripAccessor(t *testing.T) {
	v := Enum("active", Float(3))
	tag, payload, ok := v.AsEnum()
	if !ok || tag != "active" {
		t.Fatalf("expected enum tag 'active', got %q ok=%v", tag, ok)
	}
	if f, ok := payload.AsFloat(); !ok || f != 3 {
		t.Errorf("expected payload Float(3), got %v ok=%v", f, ok)
	}
}

func TestArrayListTupleAccessorsAreIndependent(t *testing.T) {
	arr := Array([]Value{Float(1), Float(2)})
	if _, ok := arr.AsList(); ok {
		t.Errorf("Array value should not satisfy AsList")
	}
	items, ok := arr.AsArray()
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2-item array, got %v ok=%v", items, ok)
	}
}
