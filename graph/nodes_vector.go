// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"math"
	"sort"
	"strconv"

	"github.com/galvanized/animrt/internal/vmath"
	"github.com/galvanized/animrt/value"
)

func asVec3(v value.Value) [3]float64 {
	if vec, ok := v.AsVec3(); ok {
		return vec
	}
	flat, err := value.Flatten(v)
	if err != nil {
		return [3]float64{}
	}
	var out [3]float64
	for i := 0; i < 3 && i < len(flat.Data); i++ {
		out[i] = flat.Data[i]
	}
	return out
}

func vec3Of(v [3]float64) vmath.Vec3 { return vmath.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func asFlatSlice(v value.Value) []float64 {
	flat, err := value.Flatten(v)
	if err != nil {
		return nil
	}
	return flat.Data
}

func evalVectorNode(node *NodeSpec, inputs map[string]PortValue) (map[string]PortValue, bool) {
	switch node.Kind {
	case KindVec3Cross:
		av, bv := vec3Of(asVec3(input(inputs, "a"))), vec3Of(asVec3(input(inputs, "b")))
		out := av.Cross(bv)
		return single(value.Vec3([3]float64{out.X, out.Y, out.Z})), true
	case KindVectorDot:
		a, b := asFlatSlice(input(inputs, "a")), asFlatSlice(input(inputs, "b"))
		if len(a) == 3 && len(b) == 3 {
			av, bv := vec3Of([3]float64{a[0], a[1], a[2]}), vec3Of([3]float64{b[0], b[1], b[2]})
			return single(value.Float(av.Dot(bv))), true
		}
		sum := 0.0
		for i := 0; i < len(a) && i < len(b); i++ {
			sum += a[i] * b[i]
		}
		return single(value.Float(sum)), true
	case KindVectorLength:
		a := asFlatSlice(input(inputs, "in"))
		if len(a) == 3 {
			av := vec3Of([3]float64{a[0], a[1], a[2]})
			return single(value.Float(av.Len())), true
		}
		sum := 0.0
		for _, s := range a {
			sum += s * s
		}
		return single(value.Float(math.Sqrt(sum))), true
	case KindVectorNormalize:
		return single(normalizeVector(input(inputs, "in"))), true
	case KindVectorScale:
		scalar := asFloat(input(inputs, "scalar"))
		return single(broadcastUnary(input(inputs, "in"), func(x float64) float64 { return x * scalar })), true
	case KindVectorAdd:
		return single(broadcastBinary(input(inputs, "a"), input(inputs, "b"), func(x, y float64) float64 { return x + y })), true
	case KindVectorSubtract:
		return single(broadcastBinary(input(inputs, "a"), input(inputs, "b"), func(x, y float64) float64 { return x - y })), true
	case KindVectorMultiply:
		return single(broadcastBinary(input(inputs, "a"), input(inputs, "b"), func(x, y float64) float64 { return x * y })), true
	case KindJoin:
		return single(evalJoin(inputs)), true
	case KindSplit:
		return evalSplit(node, inputs), true
	case KindVectorMin:
		return single(value.Float(reduceVector(input(inputs, "in"), math.Inf(1), math.Min))), true
	case KindVectorMax:
		return single(value.Float(reduceVector(input(inputs, "in"), math.Inf(-1), math.Max))), true
	case KindVectorMean:
		return single(value.Float(meanVector(input(inputs, "in")))), true
	case KindVectorMedian:
		return single(value.Float(medianVector(input(inputs, "in")))), true
	case KindVectorMode:
		return single(value.Float(modeVector(input(inputs, "in")))), true
	default:
		return nil, false
	}
}

func normalizeVector(v value.Value) value.Value {
	flat, err := value.Flatten(v)
	if err != nil {
		return value.NullOfShapeNumeric(value.InferShape(v))
	}
	if len(flat.Data) == 3 {
		in := vec3Of([3]float64{flat.Data[0], flat.Data[1], flat.Data[2]})
		if in.Dot(in) == 0 {
			return v
		}
		out := in.Unit()
		coerced, err := value.Coerce(flat.Shape, value.Vector([]float64{out.X, out.Y, out.Z}))
		if err != nil {
			return value.NullOfShapeNumeric(flat.Shape)
		}
		return coerced
	}
	sum := 0.0
	for _, s := range flat.Data {
		sum += s * s
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(flat.Data))
	for i, s := range flat.Data {
		out[i] = s / norm
	}
	coerced, err := value.Coerce(flat.Shape, value.Vector(out))
	if err != nil {
		return value.NullOfShapeNumeric(flat.Shape)
	}
	return coerced
}

// evalJoin concatenates the flattened numeric data of the sorted
// operands_<N> variadic inputs into a single Vector (§4.4).
func evalJoin(inputs map[string]PortValue) value.Value {
	ops := gatherVariadic(inputs, "operands")
	var out []float64
	for _, pv := range ops {
		out = append(out, asFlatSlice(pv.Value)...)
	}
	return value.Vector(out)
}

// evalSplit partitions the "in" input's flattened data by params.Sizes
// into part1..partN; a length mismatch NaN-fills the offending part to
// its requested size (§4.4).
func evalSplit(node *NodeSpec, inputs map[string]PortValue) map[string]PortValue {
	data := asFlatSlice(input(inputs, "in"))
	out := map[string]PortValue{}
	offset := 0
	for i, size := range node.Params.Sizes {
		part := make([]float64, size)
		if offset+size <= len(data) {
			copy(part, data[offset:offset+size])
		} else {
			for j := range part {
				part[j] = math.NaN()
			}
		}
		offset += size
		out[partName(i+1)] = portOf(value.Vector(part))
	}
	return out
}

func partName(n int) string {
	return "part" + strconv.Itoa(n)
}

func reduceVector(v value.Value, seed float64, f func(a, b float64) float64) float64 {
	data := asFlatSlice(v)
	if len(data) == 0 {
		return math.NaN()
	}
	acc := seed
	for _, s := range data {
		acc = f(acc, s)
	}
	return acc
}

func meanVector(v value.Value) float64 {
	data := asFlatSlice(v)
	if len(data) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, s := range data {
		sum += s
	}
	return sum / float64(len(data))
}

func medianVector(v value.Value) float64 {
	data := append([]float64(nil), asFlatSlice(v)...)
	if len(data) == 0 {
		return math.NaN()
	}
	sort.Float64s(data)
	mid := len(data) / 2
	if len(data)%2 == 1 {
		return data[mid]
	}
	return (data[mid-1] + data[mid]) / 2
}

// modeVector returns the most frequent flattened scalar, ties broken by
// smallest numeric value (§4.4).
func modeVector(v value.Value) float64 {
	data := asFlatSlice(v)
	if len(data) == 0 {
		return math.NaN()
	}
	counts := map[float64]int{}
	for _, s := range data {
		counts[s]++
	}
	best := data[0]
	bestCount := 0
	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			bestCount = counts[k]
			best = k
		}
	}
	return best
}
