// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package value implements the runtime's tagged-union Value type and its
// structural Shape descriptor: construction, equality, flattening to
// scalars for broadcasted arithmetic, numeric coercion, and selector
// projection into nested structures. It has no dependency on the
// animation or graph engines — they both build on top of it instead.
package value

import (
	"fmt"
	"sort"
)

// ValueType tags the variant held by a Value.
type ValueType uint8

const (
	TFloat ValueType = iota
	TBool
	TText
	TVec2
	TVec3
	TVec4
	TQuat
	TColorRgba
	TTransform
	TVector
	TRecord
	TArray
	TList
	TTuple
	TEnum
)

var typeNames = [...]string{
	TFloat:     "Float",
	TBool:      "Bool",
	TText:      "Text",
	TVec2:      "Vec2",
	TVec3:      "Vec3",
	TVec4:      "Vec4",
	TQuat:      "Quat",
	TColorRgba: "ColorRgba",
	TTransform: "Transform",
	TVector:    "Vector",
	TRecord:    "Record",
	TArray:     "Array",
	TList:      "List",
	TTuple:     "Tuple",
	TEnum:      "Enum",
}

func (t ValueType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("ValueType(%d)", t)
}

// Transform is a translation/rotation/scale triple. Rotation is a
// quaternion expected unit-norm at module boundaries.
type Transform struct {
	Translation [3]float64
	Rotation    [4]float64
	Scale       [3]float64
}

// IdentityTransform is the no-op transform: zero translation, identity
// rotation, unit scale.
var IdentityTransform = Transform{
	Translation: [3]float64{0, 0, 0},
	Rotation:    [4]float64{0, 0, 0, 1},
	Scale:       [3]float64{1, 1, 1},
}

// Value is the runtime's tagged-union value. Exactly one of its backing
// fields is meaningful, selected by typ; callers never read a field
// without checking Type() first (or using the typed accessors below, which
// check for them).
type Value struct {
	typ       ValueType
	num       float64  // Float
	boolean   bool     // Bool
	text      string   // Text
	vec2      [2]float64
	vec3      [3]float64
	vec4      [4]float64
	transform Transform
	vector    []float64
	record    map[string]Value
	array     []Value // Array: fixed length, length is len(array)
	list      []Value
	tuple     []Value
	enumTag   string
	enumVal   *Value
}

// Type returns the variant tag of v.
func (v Value) Type() ValueType { return v.typ }

// Constructors. Each returns a Value of the named variant.

func Float(f float64) Value      { return Value{typ: TFloat, num: f} }
func Bool(b bool) Value          { return Value{typ: TBool, boolean: b} }
func Text(s string) Value        { return Value{typ: TText, text: s} }
func Vec2(v [2]float64) Value    { return Value{typ: TVec2, vec2: v} }
func Vec3(v [3]float64) Value    { return Value{typ: TVec3, vec3: v} }
func Vec4(v [4]float64) Value    { return Value{typ: TVec4, vec4: v} }
func Quat(q [4]float64) Value    { return Value{typ: TQuat, vec4: q} }
func ColorRgba(c [4]float64) Value { return Value{typ: TColorRgba, vec4: c} }
func TransformVal(t Transform) Value { return Value{typ: TTransform, transform: t} }

// Vector constructs a dynamic numeric sequence. The slice is copied.
func Vector(data []float64) Value {
	cp := make([]float64, len(data))
	copy(cp, data)
	return Value{typ: TVector, vector: cp}
}

// Record constructs a field-name-keyed compound value. The map is copied
// one level deep (field Values are not deep-cloned beyond their own copy
// semantics).
func Record(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, val := range fields {
		cp[k] = val
	}
	return Value{typ: TRecord, record: cp}
}

// Array constructs a fixed-length sequence; its length is part of its
// Shape.
func Array(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{typ: TArray, array: cp}
}

// List constructs a variable-length sequence.
func List(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{typ: TList, list: cp}
}

// Tuple constructs a fixed heterogeneous sequence.
func Tuple(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{typ: TTuple, tuple: cp}
}

// Enum constructs a tagged variant payload.
func Enum(tag string, payload Value) Value {
	p := payload
	return Value{typ: TEnum, enumTag: tag, enumVal: &p}
}

// Accessors. Each reports ok=false if v is not of the requested variant.

func (v Value) AsFloat() (float64, bool)   { return v.num, v.typ == TFloat }
func (v Value) AsBool() (bool, bool)       { return v.boolean, v.typ == TBool }
func (v Value) AsText() (string, bool)     { return v.text, v.typ == TText }
func (v Value) AsVec2() ([2]float64, bool) { return v.vec2, v.typ == TVec2 }
func (v Value) AsVec3() ([3]float64, bool) { return v.vec3, v.typ == TVec3 }
func (v Value) AsVec4() ([4]float64, bool) { return v.vec4, v.typ == TVec4 }
func (v Value) AsQuat() ([4]float64, bool) { return v.vec4, v.typ == TQuat }
func (v Value) AsColorRgba() ([4]float64, bool) { return v.vec4, v.typ == TColorRgba }
func (v Value) AsTransform() (Transform, bool)  { return v.transform, v.typ == TTransform }

func (v Value) AsVector() ([]float64, bool) {
	if v.typ != TVector {
		return nil, false
	}
	cp := make([]float64, len(v.vector))
	copy(cp, v.vector)
	return cp, true
}

func (v Value) AsRecord() (map[string]Value, bool) {
	if v.typ != TRecord {
		return nil, false
	}
	cp := make(map[string]Value, len(v.record))
	for k, val := range v.record {
		cp[k] = val
	}
	return cp, true
}

func (v Value) AsArray() ([]Value, bool) { return asSlice(v, TArray, v.array) }
func (v Value) AsList() ([]Value, bool)  { return asSlice(v, TList, v.list) }
func (v Value) AsTuple() ([]Value, bool) { return asSlice(v, TTuple, v.tuple) }

func asSlice(v Value, want ValueType, backing []Value) ([]Value, bool) {
	if v.typ != want {
		return nil, false
	}
	cp := make([]Value, len(backing))
	copy(cp, backing)
	return cp, true
}

func (v Value) AsEnum() (tag string, payload Value, ok bool) {
	if v.typ != TEnum {
		return "", Value{}, false
	}
	return v.enumTag, *v.enumVal, true
}

// IsNumeric reports whether v's own variant (ignoring nested structure) is
// one whose interpolatable form is purely numeric: Float, Vec2/3/4, Quat,
// ColorRgba, Transform, Vector. Bool is deliberately excluded even though
// it has a component form — blending treats booleans as a discrete value
// (§4.3 "strings and other non-interpolable variants").
func (v Value) IsNumeric() bool {
	switch v.typ {
	case TFloat, TVec2, TVec3, TVec4, TQuat, TColorRgba, TTransform, TVector:
		return true
	default:
		return false
	}
}

// Equal reports deep structural equality. Record field order is not
// significant, per §3.1.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TFloat:
		return a.num == b.num
	case TBool:
		return a.boolean == b.boolean
	case TText:
		return a.text == b.text
	case TVec2:
		return a.vec2 == b.vec2
	case TVec3:
		return a.vec3 == b.vec3
	case TVec4, TQuat, TColorRgba:
		return a.vec4 == b.vec4
	case TTransform:
		return a.transform == b.transform
	case TVector:
		return equalFloatSlice(a.vector, b.vector)
	case TRecord:
		if len(a.record) != len(b.record) {
			return false
		}
		for k, av := range a.record {
			bv, ok := b.record[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case TArray:
		return equalValueSlice(a.array, b.array)
	case TList:
		return equalValueSlice(a.list, b.list)
	case TTuple:
		return equalValueSlice(a.tuple, b.tuple)
	case TEnum:
		return a.enumTag == b.enumTag && Equal(*a.enumVal, *b.enumVal)
	default:
		return false
	}
}

func equalFloatSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalValueSlice(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SortedRecordFields returns the field names of a Record in sorted order,
// matching the canonical order used by serialization and coercion (§3.1,
// §4.1).
func SortedRecordFields(fields map[string]Value) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
