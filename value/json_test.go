// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import (
	"encoding/json"
	"testing"
)

func roundtrip(t *testing.T, v Value) Value {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var out Value
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return out
}

func TestJSONRoundtripEveryVariant(t *testing.T) {
	values := []Value{
		Float(3.5),
		Bool(true),
		Text("hello"),
		Vec2([2]float64{1, 2}),
		Vec3([3]float64{1, 2, 3}),
		Vec4([4]float64{1, 2, 3, 4}),
		Quat([4]float64{0, 0, 0, 1}),
		ColorRgba([4]float64{0.1, 0.2, 0.3, 1}),
		TransformVal(IdentityTransform),
		Vector([]float64{1, 2, 3, 4, 5}),
		Record(map[string]Value{"a": Float(1), "b": Bool(false)}),
		Array([]Value{Float(1), Float(2)}),
		List([]Value{Text("x"), Text("y")}),
		Tuple([]Value{Float(1), Text("z")}),
		Enum("active", Float(7)),
	}
	for _, v := range values {
		got := roundtrip(t, v)
		if !Equal(v, got) {
			t.Errorf("roundtrip mismatch: original %v, got %v", v, got)
		}
	}
}

func TestJSONUnmarshalRejectsUnknownType(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"type":"Bogus"}`), &v)
	if err == nil {
		t.Errorf("expected error for unknown wire type")
	}
}

func TestJSONUnmarshalRejectsShortVec(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"type":"Vec3","vec":[1,2]}`), &v)
	if err == nil {
		t.Errorf("expected component-count error for short Vec3")
	}
}

func TestJSONNestedRecordRoundtrip(t *testing.T) {
	v := Record(map[string]Value{
		"pose": TransformVal(IdentityTransform),
		"tags": List([]Value{Text("a"), Text("b")}),
	})
	got := roundtrip(t, v)
	if !Equal(v, got) {
		t.Errorf("nested record roundtrip mismatch: %v vs %v", v, got)
	}
}
