// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import "encoding/json"

// wireValue is the explicit tagged-object JSON encoding used for Value,
// so that every variant round-trips exactly regardless of any host-side
// JSON normalization policy (§9's open question on numeric-array
// ambiguity is left to the external JSON-shorthand boundary, not this
// core codec).
type wireValue struct {
	Type      string             `json:"type"`
	Float     *float64           `json:"value,omitempty"`
	Bool      *bool              `json:"bool,omitempty"`
	Text      *string            `json:"text,omitempty"`
	Vec       []float64          `json:"vec,omitempty"`
	Translation []float64        `json:"translation,omitempty"`
	Rotation  []float64          `json:"rotation,omitempty"`
	Scale     []float64          `json:"scale,omitempty"`
	Fields    map[string]wireValue `json:"fields,omitempty"`
	Items     []wireValue        `json:"items,omitempty"`
	Tag       string             `json:"tag,omitempty"`
	Payload   *wireValue         `json:"payload,omitempty"`
}

// MarshalJSON implements json.Marshaler for Value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toWire())
}

func (v Value) toWire() wireValue {
	switch v.typ {
	case TFloat:
		f := v.num
		return wireValue{Type: "Float", Float: &f}
	case TBool:
		b := v.boolean
		return wireValue{Type: "Bool", Bool: &b}
	case TText:
		t := v.text
		return wireValue{Type: "Text", Text: &t}
	case TVec2:
		return wireValue{Type: "Vec2", Vec: v.vec2[:]}
	case TVec3:
		return wireValue{Type: "Vec3", Vec: v.vec3[:]}
	case TVec4:
		return wireValue{Type: "Vec4", Vec: v.vec4[:]}
	case TQuat:
		return wireValue{Type: "Quat", Vec: v.vec4[:]}
	case TColorRgba:
		return wireValue{Type: "ColorRgba", Vec: v.vec4[:]}
	case TTransform:
		return wireValue{
			Type:        "Transform",
			Translation: v.transform.Translation[:],
			Rotation:    v.transform.Rotation[:],
			Scale:       v.transform.Scale[:],
		}
	case TVector:
		return wireValue{Type: "Vector", Vec: v.vector}
	case TRecord:
		fields := make(map[string]wireValue, len(v.record))
		for k, val := range v.record {
			fields[k] = val.toWire()
		}
		return wireValue{Type: "Record", Fields: fields}
	case TArray, TList, TTuple:
		var backing []Value
		typeName := "Array"
		switch v.typ {
		case TArray:
			backing = v.array
		case TList:
			backing = v.list
			typeName = "List"
		case TTuple:
			backing = v.tuple
			typeName = "Tuple"
		}
		items := make([]wireValue, len(backing))
		for i, item := range backing {
			items[i] = item.toWire()
		}
		return wireValue{Type: typeName, Items: items}
	case TEnum:
		payload := v.enumVal.toWire()
		return wireValue{Type: "Enum", Tag: v.enumTag, Payload: &payload}
	default:
		return wireValue{Type: "Float"}
	}
}

// UnmarshalJSON implements json.Unmarshaler for Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out, err := w.toValue()
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func (w wireValue) toValue() (Value, error) {
	switch w.Type {
	case "Float":
		if w.Float == nil {
			return Value{}, &InvalidValueError{Reason: "missing 'value' for Float"}
		}
		return Float(*w.Float), nil
	case "Bool":
		if w.Bool == nil {
			return Value{}, &InvalidValueError{Reason: "missing 'bool' for Bool"}
		}
		return Bool(*w.Bool), nil
	case "Text":
		if w.Text == nil {
			return Value{}, &InvalidValueError{Reason: "missing 'text' for Text"}
		}
		return Text(*w.Text), nil
	case "Vec2":
		if len(w.Vec) != 2 {
			return Value{}, &InvalidComponentCountError{Shape: Vec2Shape, Expected: 2, Got: len(w.Vec)}
		}
		return Vec2([2]float64{w.Vec[0], w.Vec[1]}), nil
	case "Vec3":
		if len(w.Vec) != 3 {
			return Value{}, &InvalidComponentCountError{Shape: Vec3Shape, Expected: 3, Got: len(w.Vec)}
		}
		return Vec3([3]float64{w.Vec[0], w.Vec[1], w.Vec[2]}), nil
	case "Vec4":
		if len(w.Vec) != 4 {
			return Value{}, &InvalidComponentCountError{Shape: Vec4Shape, Expected: 4, Got: len(w.Vec)}
		}
		return Vec4([4]float64{w.Vec[0], w.Vec[1], w.Vec[2], w.Vec[3]}), nil
	case "Quat":
		if len(w.Vec) != 4 {
			return Value{}, &InvalidComponentCountError{Shape: QuatShape, Expected: 4, Got: len(w.Vec)}
		}
		return Quat([4]float64{w.Vec[0], w.Vec[1], w.Vec[2], w.Vec[3]}), nil
	case "ColorRgba":
		if len(w.Vec) != 4 {
			return Value{}, &InvalidComponentCountError{Shape: ColorRgbaShape, Expected: 4, Got: len(w.Vec)}
		}
		return ColorRgba([4]float64{w.Vec[0], w.Vec[1], w.Vec[2], w.Vec[3]}), nil
	case "Transform":
		if len(w.Translation) != 3 || len(w.Rotation) != 4 || len(w.Scale) != 3 {
			return Value{}, &InvalidValueError{Reason: "malformed Transform components"}
		}
		return TransformVal(Transform{
			Translation: [3]float64{w.Translation[0], w.Translation[1], w.Translation[2]},
			Rotation:    [4]float64{w.Rotation[0], w.Rotation[1], w.Rotation[2], w.Rotation[3]},
			Scale:       [3]float64{w.Scale[0], w.Scale[1], w.Scale[2]},
		}), nil
	case "Vector":
		return Vector(w.Vec), nil
	case "Record":
		fields := make(map[string]Value, len(w.Fields))
		for k, fw := range w.Fields {
			val, err := fw.toValue()
			if err != nil {
				return Value{}, err
			}
			fields[k] = val
		}
		return Record(fields), nil
	case "Array", "List", "Tuple":
		items := make([]Value, len(w.Items))
		for i, iw := range w.Items {
			val, err := iw.toValue()
			if err != nil {
				return Value{}, err
			}
			items[i] = val
		}
		switch w.Type {
		case "Array":
			return Array(items), nil
		case "List":
			return List(items), nil
		default:
			return Tuple(items), nil
		}
	case "Enum":
		if w.Payload == nil {
			return Value{}, &InvalidValueError{Reason: "missing 'payload' for Enum"}
		}
		payload, err := w.Payload.toValue()
		if err != nil {
			return Value{}, err
		}
		return Enum(w.Tag, payload), nil
	default:
		return Value{}, &InvalidValueError{Reason: "unknown value type '" + w.Type + "'"}
	}
}

// NumericArrayPolicy governs how an external, loosely-typed JSON boundary
// (outside this module's scope, per §1's "JSON shorthand parsers" carve-
// out) should interpret a bare JSON array of length 2, 3, or 4: as the
// corresponding fixed Vec2/Vec3/Vec4, or as a dynamic Vector. This core
// package does not itself parse shorthand JSON; it only names the policy
// so host-side normalizers have a shared vocabulary (§9).
type NumericArrayPolicy uint8

const (
	// PreferFixedVec treats length-2/3/4 numeric arrays as Vec2/Vec3/Vec4.
	PreferFixedVec NumericArrayPolicy = iota
	// PreferDynamicVector treats every numeric array as a Vector.
	PreferDynamicVector
)
