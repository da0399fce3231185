// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

// Flat is a numeric value flattened to a flat scalar slice plus the Shape
// needed to reconstruct its original structure (§4.1).
type Flat struct {
	Shape Shape
	Data  []float64
}

// Flatten decomposes a numeric-like Value into its Shape and a flat scalar
// slice in canonical order: translation, rotation, scale for Transform;
// field-sorted order for Record; positional order for Array/List/Tuple;
// component order for Vec2/3/4, Quat, ColorRgba, Vector.
func Flatten(v Value) (Flat, error) {
	shape := InferShape(v)
	if !IsNumericLike(shape) {
		return Flat{}, &InvalidValueError{Reason: "cannot flatten non-numeric-like value of type " + v.Type().String()}
	}
	data := make([]float64, 0, 8)
	data = appendFlat(data, v)
	return Flat{Shape: shape, Data: data}, nil
}

func appendFlat(data []float64, v Value) []float64 {
	switch v.typ {
	case TFloat:
		return append(data, v.num)
	case TVec2:
		return append(data, v.vec2[0], v.vec2[1])
	case TVec3:
		return append(data, v.vec3[0], v.vec3[1], v.vec3[2])
	case TVec4, TQuat, TColorRgba:
		return append(data, v.vec4[0], v.vec4[1], v.vec4[2], v.vec4[3])
	case TTransform:
		t := v.transform
		data = append(data, t.Translation[0], t.Translation[1], t.Translation[2])
		data = append(data, t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3])
		data = append(data, t.Scale[0], t.Scale[1], t.Scale[2])
		return data
	case TVector:
		return append(data, v.vector...)
	case TRecord:
		for _, name := range SortedRecordFields(v.record) {
			data = appendFlat(data, v.record[name])
		}
		return data
	case TArray:
		for _, item := range v.array {
			data = appendFlat(data, item)
		}
		return data
	case TList:
		for _, item := range v.list {
			data = appendFlat(data, item)
		}
		return data
	case TTuple:
		for _, item := range v.tuple {
			data = appendFlat(data, item)
		}
		return data
	case TEnum:
		return appendFlat(data, *v.enumVal)
	default:
		return data
	}
}

// Align prepares two flattened operands for element-wise arithmetic per
// §4.1: equal shape zips directly; one side a Float (Scalar) broadcasts
// across the other's data; any other mismatch is Incompatible. The result
// shape is the non-scalar operand's shape (or the left operand's, if both
// are scalar).
func Align(lhs, rhs Flat) (left, right []float64, shape Shape, err error) {
	switch {
	case ShapeEqual(lhs.Shape, rhs.Shape):
		return lhs.Data, rhs.Data, lhs.Shape, nil
	case lhs.Shape.Kind == ShapeScalar:
		return broadcastScalar(lhs.Data[0], len(rhs.Data)), rhs.Data, rhs.Shape, nil
	case rhs.Shape.Kind == ShapeScalar:
		return lhs.Data, broadcastScalar(rhs.Data[0], len(lhs.Data)), lhs.Shape, nil
	default:
		return nil, nil, Shape{}, &IncompatibleError{Left: lhs.Shape, Right: rhs.Shape}
	}
}

func broadcastScalar(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Coerce attempts to build a Value of the declared numeric-like target
// shape by flattening v and consuming its scalars in the target's
// canonical order. Fails if v is not numeric-like or the component counts
// differ (§4.1).
func Coerce(target Shape, v Value) (Value, error) {
	if !IsNumericLike(target) {
		return Value{}, &InvalidValueError{Reason: "coercion target shape " + target.String() + " is not numeric-like"}
	}
	flat, err := Flatten(v)
	if err != nil {
		return Value{}, err
	}
	offset := 0
	out, err := buildFromScalars(target, flat.Data, &offset)
	if err != nil {
		return Value{}, err
	}
	if offset != len(flat.Data) {
		return Value{}, &InvalidComponentCountError{Shape: target, Expected: offset, Got: len(flat.Data)}
	}
	return out, nil
}

func buildFromScalars(shape Shape, scalars []float64, offset *int) (Value, error) {
	need := func(n int) ([]float64, error) {
		if *offset+n > len(scalars) {
			return nil, &InvalidComponentCountError{Shape: shape, Expected: *offset + n, Got: len(scalars)}
		}
		out := scalars[*offset : *offset+n]
		*offset += n
		return out, nil
	}
	switch shape.Kind {
	case ShapeScalar:
		s, err := need(1)
		if err != nil {
			return Value{}, err
		}
		return Float(s[0]), nil
	case ShapeVec2:
		s, err := need(2)
		if err != nil {
			return Value{}, err
		}
		return Vec2([2]float64{s[0], s[1]}), nil
	case ShapeVec3:
		s, err := need(3)
		if err != nil {
			return Value{}, err
		}
		return Vec3([3]float64{s[0], s[1], s[2]}), nil
	case ShapeVec4:
		s, err := need(4)
		if err != nil {
			return Value{}, err
		}
		return Vec4([4]float64{s[0], s[1], s[2], s[3]}), nil
	case ShapeQuat:
		s, err := need(4)
		if err != nil {
			return Value{}, err
		}
		return Quat([4]float64{s[0], s[1], s[2], s[3]}), nil
	case ShapeColorRgba:
		s, err := need(4)
		if err != nil {
			return Value{}, err
		}
		return ColorRgba([4]float64{s[0], s[1], s[2], s[3]}), nil
	case ShapeTransform:
		pos, err := need(3)
		if err != nil {
			return Value{}, err
		}
		rot, err := need(4)
		if err != nil {
			return Value{}, err
		}
		scale, err := need(3)
		if err != nil {
			return Value{}, err
		}
		return TransformVal(Transform{
			Translation: [3]float64{pos[0], pos[1], pos[2]},
			Rotation:    [4]float64{rot[0], rot[1], rot[2], rot[3]},
			Scale:       [3]float64{scale[0], scale[1], scale[2]},
		}), nil
	case ShapeVector:
		n := len(scalars) - *offset
		if shape.VectorLen != nil {
			n = *shape.VectorLen
		}
		s, err := need(n)
		if err != nil {
			return Value{}, err
		}
		return Vector(s), nil
	case ShapeRecord:
		fields := make(map[string]Value, len(shape.Fields))
		for _, f := range shape.Fields {
			val, err := buildFromScalars(f.Shape, scalars, offset)
			if err != nil {
				return Value{}, err
			}
			fields[f.Name] = val
		}
		return Record(fields), nil
	case ShapeArray:
		items := make([]Value, shape.ElemLen)
		for i := range items {
			val, err := buildFromScalars(*shape.ElemShape, scalars, offset)
			if err != nil {
				return Value{}, err
			}
			items[i] = val
		}
		return Array(items), nil
	case ShapeTuple:
		items := make([]Value, len(shape.TupleShapes))
		for i, ts := range shape.TupleShapes {
			val, err := buildFromScalars(ts, scalars, offset)
			if err != nil {
				return Value{}, err
			}
			items[i] = val
		}
		return Tuple(items), nil
	default:
		return Value{}, &InvalidValueError{Reason: "cannot coerce into shape " + shape.String()}
	}
}

// Unary applies f to every flattened scalar of v, preserving its
// structure. Fails if v is not numeric-like.
func Unary(v Value, f func(float64) float64) (Value, error) {
	flat, err := Flatten(v)
	if err != nil {
		return Value{}, err
	}
	out := make([]float64, len(flat.Data))
	for i, s := range flat.Data {
		out[i] = f(s)
	}
	offset := 0
	return buildFromScalars(flat.Shape, out, &offset)
}

// Binary applies f element-wise over the aligned flattened scalars of lhs
// and rhs (equal shape, or one side a scalar broadcast), preserving the
// non-scalar operand's structure.
func Binary(lhs, rhs Value, f func(a, b float64) float64) (Value, error) {
	lf, err := Flatten(lhs)
	if err != nil {
		return Value{}, err
	}
	rf, err := Flatten(rhs)
	if err != nil {
		return Value{}, err
	}
	l, r, shape, err := Align(lf, rf)
	if err != nil {
		return Value{}, err
	}
	out := make([]float64, len(l))
	for i := range l {
		out[i] = f(l[i], r[i])
	}
	offset := 0
	return buildFromScalars(shape, out, &offset)
}
