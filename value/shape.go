// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import (
	"sort"
	"strings"
)

// ShapeKind tags the variant of a Shape, mirroring ValueType's variants
// one-for-one plus the extra structural parameters (Vector length,
// Record/Array/List/Tuple/Enum element shapes).
type ShapeKind uint8

const (
	ShapeScalar ShapeKind = iota
	ShapeBool
	ShapeVec2
	ShapeVec3
	ShapeVec4
	ShapeQuat
	ShapeColorRgba
	ShapeTransform
	ShapeText
	ShapeVector
	ShapeRecord
	ShapeArray
	ShapeList
	ShapeTuple
	ShapeEnum
)

// Field is a named field of a Record shape.
type Field struct {
	Name  string
	Shape Shape
}

// EnumVariant is a named, shaped variant of an Enum shape.
type EnumVariant struct {
	Tag   string
	Shape Shape
}

// Shape is a structural descriptor for a Value. Equality is structural
// (see Equal): two Shapes are the same Shape iff they describe the same
// structure, regardless of how they were built.
type Shape struct {
	Kind        ShapeKind
	VectorLen   *int // nil means unknown/unspecified length
	Fields      []Field // Record: sorted by Name
	ElemShape   *Shape  // Array/List element shape
	ElemLen     int     // Array length
	TupleShapes []Shape
	Variants    []EnumVariant
}

func ptrInt(n int) *int { return &n }

// Scalar, Bool, Vec2Shape, ... are convenience constructors for the
// shapes with no parameters.
var (
	Scalar        = Shape{Kind: ShapeScalar}
	BoolShape     = Shape{Kind: ShapeBool}
	Vec2Shape     = Shape{Kind: ShapeVec2}
	Vec3Shape     = Shape{Kind: ShapeVec3}
	Vec4Shape     = Shape{Kind: ShapeVec4}
	QuatShape     = Shape{Kind: ShapeQuat}
	ColorRgbaShape = Shape{Kind: ShapeColorRgba}
	TransformShape = Shape{Kind: ShapeTransform}
	TextShape     = Shape{Kind: ShapeText}
)

// VectorShape constructs a Vector shape. A nil len means unspecified
// length.
func VectorShape(length *int) Shape { return Shape{Kind: ShapeVector, VectorLen: length} }

// RecordShape constructs a Record shape, sorting fields by name so that
// two RecordShape calls with the same fields in different order compare
// Equal.
func RecordShape(fields []Field) Shape {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Name < cp[j].Name })
	return Shape{Kind: ShapeRecord, Fields: cp}
}

// ArrayShape constructs a fixed-length Array shape.
func ArrayShape(elem Shape, length int) Shape {
	return Shape{Kind: ShapeArray, ElemShape: &elem, ElemLen: length}
}

// ListShape constructs a variable-length List shape.
func ListShape(elem Shape) Shape { return Shape{Kind: ShapeList, ElemShape: &elem} }

// TupleShape constructs a Tuple shape.
func TupleShape(elems []Shape) Shape {
	cp := make([]Shape, len(elems))
	copy(cp, elems)
	return Shape{Kind: ShapeTuple, TupleShapes: cp}
}

// EnumShape constructs an Enum shape from its variants.
func EnumShape(variants []EnumVariant) Shape {
	cp := make([]EnumVariant, len(variants))
	copy(cp, variants)
	return Shape{Kind: ShapeEnum, Variants: cp}
}

// ShapeEqual reports structural equality between a and b.
func ShapeEqual(a, b Shape) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ShapeVector:
		if (a.VectorLen == nil) != (b.VectorLen == nil) {
			return false
		}
		return a.VectorLen == nil || *a.VectorLen == *b.VectorLen
	case ShapeRecord:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !ShapeEqual(a.Fields[i].Shape, b.Fields[i].Shape) {
				return false
			}
		}
		return true
	case ShapeArray:
		return a.ElemLen == b.ElemLen && ShapeEqual(*a.ElemShape, *b.ElemShape)
	case ShapeList:
		return ShapeEqual(*a.ElemShape, *b.ElemShape)
	case ShapeTuple:
		if len(a.TupleShapes) != len(b.TupleShapes) {
			return false
		}
		for i := range a.TupleShapes {
			if !ShapeEqual(a.TupleShapes[i], b.TupleShapes[i]) {
				return false
			}
		}
		return true
	case ShapeEnum:
		if len(a.Variants) != len(b.Variants) {
			return false
		}
		for i := range a.Variants {
			if a.Variants[i].Tag != b.Variants[i].Tag || !ShapeEqual(a.Variants[i].Shape, b.Variants[i].Shape) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders a compact, human-readable form of the shape, used in
// error messages.
func (s Shape) String() string {
	switch s.Kind {
	case ShapeScalar:
		return "Scalar"
	case ShapeBool:
		return "Bool"
	case ShapeVec2:
		return "Vec2"
	case ShapeVec3:
		return "Vec3"
	case ShapeVec4:
		return "Vec4"
	case ShapeQuat:
		return "Quat"
	case ShapeColorRgba:
		return "ColorRgba"
	case ShapeTransform:
		return "Transform"
	case ShapeText:
		return "Text"
	case ShapeVector:
		if s.VectorLen != nil {
			return "Vector{len=" + itoa(*s.VectorLen) + "}"
		}
		return "Vector{len=?}"
	case ShapeRecord:
		parts := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			parts[i] = f.Name + ":" + f.Shape.String()
		}
		return "Record{" + strings.Join(parts, ", ") + "}"
	case ShapeArray:
		return "Array(" + s.ElemShape.String() + ", " + itoa(s.ElemLen) + ")"
	case ShapeList:
		return "List(" + s.ElemShape.String() + ")"
	case ShapeTuple:
		parts := make([]string, len(s.TupleShapes))
		for i, t := range s.TupleShapes {
			parts[i] = t.String()
		}
		return "Tuple(" + strings.Join(parts, ", ") + ")"
	case ShapeEnum:
		parts := make([]string, len(s.Variants))
		for i, v := range s.Variants {
			parts[i] = v.Tag + ":" + v.Shape.String()
		}
		return "Enum{" + strings.Join(parts, ", ") + "}"
	default:
		return "Unknown"
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// IsNumericLike reports whether every leaf of shape s is a Float, per
// §3.1's definition.
func IsNumericLike(s Shape) bool {
	switch s.Kind {
	case ShapeScalar, ShapeVec2, ShapeVec3, ShapeVec4, ShapeQuat, ShapeColorRgba, ShapeTransform, ShapeVector:
		return true
	case ShapeRecord:
		for _, f := range s.Fields {
			if !IsNumericLike(f.Shape) {
				return false
			}
		}
		return true
	case ShapeArray, ShapeList:
		return IsNumericLike(*s.ElemShape)
	case ShapeTuple:
		for _, t := range s.TupleShapes {
			if !IsNumericLike(t) {
				return false
			}
		}
		return true
	case ShapeEnum:
		for _, v := range s.Variants {
			if !IsNumericLike(v.Shape) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// InferShape infers the structural Shape of v. Vectors infer their
// concrete length; homogeneous Arrays/Lists collapse to the common element
// shape, mismatched elements degrade to Scalar (§4.5).
func InferShape(v Value) Shape {
	switch v.typ {
	case TFloat:
		return Scalar
	case TBool:
		return BoolShape
	case TText:
		return TextShape
	case TVec2:
		return Vec2Shape
	case TVec3:
		return Vec3Shape
	case TVec4:
		return Vec4Shape
	case TQuat:
		return QuatShape
	case TColorRgba:
		return ColorRgbaShape
	case TTransform:
		return TransformShape
	case TVector:
		n := len(v.vector)
		return VectorShape(&n)
	case TRecord:
		names := SortedRecordFields(v.record)
		fields := make([]Field, len(names))
		for i, name := range names {
			fields[i] = Field{Name: name, Shape: InferShape(v.record[name])}
		}
		return Shape{Kind: ShapeRecord, Fields: fields}
	case TArray:
		return Shape{Kind: ShapeArray, ElemShape: collapseElemShape(v.array), ElemLen: len(v.array)}
	case TList:
		return Shape{Kind: ShapeList, ElemShape: collapseElemShape(v.list)}
	case TTuple:
		shapes := make([]Shape, len(v.tuple))
		for i, item := range v.tuple {
			shapes[i] = InferShape(item)
		}
		return Shape{Kind: ShapeTuple, TupleShapes: shapes}
	case TEnum:
		return Shape{Kind: ShapeEnum, Variants: []EnumVariant{{Tag: v.enumTag, Shape: InferShape(*v.enumVal)}}}
	default:
		return Scalar
	}
}

func collapseElemShape(items []Value) *Shape {
	if len(items) == 0 {
		s := Scalar
		return &s
	}
	first := InferShape(items[0])
	for _, item := range items[1:] {
		if !ShapeEqual(first, InferShape(item)) {
			s := Scalar
			return &s
		}
	}
	return &first
}

// NullOfShapeNumeric produces a NaN-filled Value matching the given
// numeric-like shape, used when a node or blend has no valid contribution
// but a value of a declared shape must still be produced (§4.1, §4.4).
func NullOfShapeNumeric(s Shape) Value {
	nan := nan()
	switch s.Kind {
	case ShapeScalar:
		return Float(nan)
	case ShapeVec2:
		return Vec2([2]float64{nan, nan})
	case ShapeVec3:
		return Vec3([3]float64{nan, nan, nan})
	case ShapeVec4:
		return Vec4([4]float64{nan, nan, nan, nan})
	case ShapeQuat:
		return Quat([4]float64{nan, nan, nan, nan})
	case ShapeColorRgba:
		return ColorRgba([4]float64{nan, nan, nan, nan})
	case ShapeTransform:
		return TransformVal(Transform{
			Translation: [3]float64{nan, nan, nan},
			Rotation:    [4]float64{nan, nan, nan, nan},
			Scale:       [3]float64{nan, nan, nan},
		})
	case ShapeVector:
		n := 0
		if s.VectorLen != nil {
			n = *s.VectorLen
		}
		data := make([]float64, n)
		for i := range data {
			data[i] = nan
		}
		return Vector(data)
	case ShapeRecord:
		fields := make(map[string]Value, len(s.Fields))
		for _, f := range s.Fields {
			fields[f.Name] = NullOfShapeNumeric(f.Shape)
		}
		return Record(fields)
	case ShapeArray:
		items := make([]Value, s.ElemLen)
		for i := range items {
			items[i] = NullOfShapeNumeric(*s.ElemShape)
		}
		return Array(items)
	case ShapeList:
		return List(nil)
	case ShapeTuple:
		items := make([]Value, len(s.TupleShapes))
		for i, ts := range s.TupleShapes {
			items[i] = NullOfShapeNumeric(ts)
		}
		return Tuple(items)
	case ShapeEnum:
		if len(s.Variants) > 0 {
			return Enum(s.Variants[0].Tag, NullOfShapeNumeric(s.Variants[0].Shape))
		}
		return Enum("", Float(nan))
	default:
		return Float(nan)
	}
}
