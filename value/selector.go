// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import (
	"strconv"
	"strings"
)

// SegmentKind tags a Selector segment as a field projection or an index
// projection.
type SegmentKind uint8

const (
	FieldSegment SegmentKind = iota
	IndexSegment
)

// Segment is one step of a Selector: either .Field or [Index].
type Segment struct {
	Kind  SegmentKind
	Field string
	Index int
}

// Selector is an ordered list of segments used to project into a
// structured Value (§4.1).
type Selector []Segment

// ParseSelector parses the glossary's selector syntax: a sequence of
// `.field` and `[index]` tokens, e.g. ".rotation[0]" or "[2].scale".
// An empty string parses to an empty (no-op) Selector.
func ParseSelector(raw string) (Selector, error) {
	var out Selector
	i := 0
	for i < len(raw) {
		switch raw[i] {
		case '.':
			j := i + 1
			for j < len(raw) && raw[j] != '.' && raw[j] != '[' {
				j++
			}
			name := raw[i+1 : j]
			if name == "" {
				return nil, &SelectorError{Path: raw, Reason: "empty field segment"}
			}
			out = append(out, Segment{Kind: FieldSegment, Field: name})
			i = j
		case '[':
			j := strings.IndexByte(raw[i:], ']')
			if j < 0 {
				return nil, &SelectorError{Path: raw, Reason: "unterminated index segment"}
			}
			j += i
			idxStr := raw[i+1 : j]
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 {
				return nil, &SelectorError{Path: raw, Reason: "invalid index '" + idxStr + "'"}
			}
			out = append(out, Segment{Kind: IndexSegment, Index: idx})
			i = j + 1
		default:
			return nil, &SelectorError{Path: raw, Reason: "expected '.' or '[' at position " + itoa(i)}
		}
	}
	return out, nil
}

// String renders the selector back to its textual form.
func (s Selector) String() string {
	var b strings.Builder
	for _, seg := range s {
		switch seg.Kind {
		case FieldSegment:
			b.WriteByte('.')
			b.WriteString(seg.Field)
		case IndexSegment:
			b.WriteByte('[')
			b.WriteString(itoa(seg.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// transformFieldNames maps the accepted Transform selector field aliases
// to the sub-value they project.
func transformField(t Transform, field string) (Value, bool) {
	switch field {
	case "translation", "pos", "position":
		return Vec3(t.Translation), true
	case "rotation", "rot":
		return Quat(t.Rotation), true
	case "scale":
		return Vec3(t.Scale), true
	default:
		return Value{}, false
	}
}

func transformFieldShape(field string) (Shape, bool) {
	switch field {
	case "translation", "pos", "position":
		return Vec3Shape, true
	case "rotation", "rot":
		return QuatShape, true
	case "scale":
		return Vec3Shape, true
	default:
		return Shape{}, false
	}
}

// Project walks sel over v (and, optionally, v's known shape), returning
// the projected Value and, if shape tracking was requested, the projected
// Shape. Out-of-bounds or type-inapplicable segments fail with a
// path-qualified SelectorError (§4.1).
func Project(v Value, shape *Shape, sel Selector) (Value, *Shape, error) {
	cur := v
	var curShape *Shape
	if shape != nil {
		s := *shape
		curShape = &s
	}
	var walked strings.Builder
	for _, seg := range sel {
		switch seg.Kind {
		case FieldSegment:
			walked.WriteByte('.')
			walked.WriteString(seg.Field)
			next, nextShape, err := projectField(cur, curShape, seg.Field, walked.String())
			if err != nil {
				return Value{}, nil, err
			}
			cur, curShape = next, nextShape
		case IndexSegment:
			walked.WriteByte('[')
			walked.WriteString(itoa(seg.Index))
			walked.WriteByte(']')
			next, nextShape, err := projectIndex(cur, curShape, seg.Index, walked.String())
			if err != nil {
				return Value{}, nil, err
			}
			cur, curShape = next, nextShape
		}
	}
	return cur, curShape, nil
}

func projectField(cur Value, curShape *Shape, field, path string) (Value, *Shape, error) {
	switch cur.typ {
	case TRecord:
		val, ok := cur.record[field]
		if !ok {
			return Value{}, nil, &SelectorError{Path: path, Reason: "field '" + field + "' missing in record"}
		}
		var nextShape *Shape
		if curShape != nil && curShape.Kind == ShapeRecord {
			for _, f := range curShape.Fields {
				if f.Name == field {
					s := f.Shape
					nextShape = &s
					break
				}
			}
		}
		if nextShape == nil {
			s := InferShape(val)
			nextShape = &s
		}
		return val, nextShape, nil
	case TTransform:
		val, ok := transformField(cur.transform, field)
		if !ok {
			return Value{}, nil, &SelectorError{Path: path, Reason: "field '" + field + "' invalid for transform"}
		}
		var nextShape *Shape
		if s, ok := transformFieldShape(field); ok {
			nextShape = &s
		}
		return val, nextShape, nil
	case TEnum:
		if cur.enumTag != field {
			return Value{}, nil, &SelectorError{Path: path, Reason: "field '" + field + "' does not match enum variant '" + cur.enumTag + "'"}
		}
		val := *cur.enumVal
		var nextShape *Shape
		if curShape != nil && curShape.Kind == ShapeEnum {
			for _, variant := range curShape.Variants {
				if variant.Tag == field {
					s := variant.Shape
					nextShape = &s
					break
				}
			}
		}
		if nextShape == nil {
			s := InferShape(val)
			nextShape = &s
		}
		return val, nextShape, nil
	default:
		return Value{}, nil, &SelectorError{Path: path, Reason: "field '" + field + "' unsupported for value of type " + cur.typ.String()}
	}
}

func projectIndex(cur Value, curShape *Shape, idx int, path string) (Value, *Shape, error) {
	scalarAt := func(arr []float64) (Value, *Shape, error) {
		if idx < 0 || idx >= len(arr) {
			return Value{}, nil, &SelectorError{Path: path, Reason: "index out of bounds"}
		}
		s := Scalar
		return Float(arr[idx]), &s, nil
	}
	switch cur.typ {
	case TVector:
		return scalarAt(cur.vector)
	case TVec2:
		return scalarAt(cur.vec2[:])
	case TVec3:
		return scalarAt(cur.vec3[:])
	case TVec4, TQuat, TColorRgba:
		return scalarAt(cur.vec4[:])
	case TArray, TList, TTuple:
		items := cur.array
		if cur.typ == TList {
			items = cur.list
		} else if cur.typ == TTuple {
			items = cur.tuple
		}
		if idx < 0 || idx >= len(items) {
			return Value{}, nil, &SelectorError{Path: path, Reason: "index out of bounds"}
		}
		val := items[idx]
		var nextShape *Shape
		if curShape != nil {
			switch curShape.Kind {
			case ShapeArray, ShapeList:
				nextShape = curShape.ElemShape
			case ShapeTuple:
				if idx < len(curShape.TupleShapes) {
					s := curShape.TupleShapes[idx]
					nextShape = &s
				}
			}
		}
		if nextShape == nil {
			s := InferShape(val)
			nextShape = &s
		}
		return val, nextShape, nil
	default:
		return Value{}, nil, &SelectorError{Path: path, Reason: "index unsupported for value of type " + cur.typ.String()}
	}
}
