// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"github.com/galvanized/animrt/internal/vmath"
	"github.com/galvanized/animrt/value"
)

// Contribution is one instance's weighted sample for a single target
// path, gathered during a tick before being folded by Accumulate.
type Contribution struct {
	Weight     float64
	Value      value.Value
	Derivative *value.Value
	// order is the contribution's insertion order, used to break ties
	// among equal-weight non-interpolable contributors (§4.3).
	order int
}

// Accumulator collects per-target-path contributions for one player tick
// and folds them into a single blended value (§4.3's "Blend
// accumulation").
type Accumulator struct {
	byTarget map[string][]Contribution
	next     int
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{byTarget: map[string][]Contribution{}}
}

// Add records one weighted contribution for targetPath. Zero-weight or
// disabled contributions should not be passed in at all (callers filter
// via Instance.Contributes before sampling).
func (a *Accumulator) Add(targetPath string, weight float64, v value.Value, deriv *value.Value) {
	a.byTarget[targetPath] = append(a.byTarget[targetPath], Contribution{
		Weight: weight, Value: v, Derivative: deriv, order: a.next,
	})
	a.next++
}

// Targets returns every target path that received at least one
// contribution this tick, in no particular order.
func (a *Accumulator) Targets() []string {
	out := make([]string, 0, len(a.byTarget))
	for k := range a.byTarget {
		out = append(out, k)
	}
	return out
}

// Resolve folds all contributions for targetPath into a single value
// (and, if every contribution carried one, a single derivative), per
// §4.3/§4.3a. Returns ok=false if the total weight is zero (skip
// emission) or the target has no contributions.
func Resolve(contribs []Contribution) (val value.Value, deriv *value.Value, ok bool) {
	if len(contribs) == 0 {
		return value.Value{}, nil, false
	}
	total := 0.0
	for _, c := range contribs {
		total += c.Weight
	}
	if total == 0 {
		return value.Value{}, nil, false
	}
	if len(contribs) == 1 {
		return contribs[0].Value, contribs[0].Derivative, true
	}

	switch contribs[0].Value.Type() {
	case value.TQuat:
		return blendQuat(contribs, total)
	case value.TTransform:
		return blendTransform(contribs, total)
	case value.TBool, value.TText, value.TEnum:
		return highestWeight(contribs), nil, true
	default:
		return blendNumeric(contribs, total)
	}
}

// highestWeight picks the contributor with the largest weight, ties
// broken by earliest insertion order (§4.3).
func highestWeight(contribs []Contribution) value.Value {
	best := contribs[0]
	for _, c := range contribs[1:] {
		if c.Weight > best.Weight || (c.Weight == best.Weight && c.order < best.order) {
			best = c
		}
	}
	return best.Value
}

// blendNumeric computes output = Σ(wᵢ·vᵢ)/Σwᵢ component-wise for any
// numeric-like shape, skipping contributions whose shape is incompatible
// with the first (silent skip at blend time, §4.3's failure semantics).
func blendNumeric(contribs []Contribution, total float64) (value.Value, *value.Value, bool) {
	shape := value.InferShape(contribs[0].Value)
	acc, err := value.Flatten(value.NullOfShapeNumeric(shape))
	if err != nil {
		return value.Value{}, nil, false
	}
	for i := range acc.Data {
		acc.Data[i] = 0
	}
	var derivAcc []float64
	haveDeriv := true
	for _, c := range contribs {
		flat, err := value.Flatten(c.Value)
		if err != nil || !value.ShapeEqual(flat.Shape, shape) {
			continue
		}
		for i, s := range flat.Data {
			acc.Data[i] += c.Weight * s
		}
		if c.Derivative != nil && haveDeriv {
			df, err := value.Flatten(*c.Derivative)
			if err != nil || !value.ShapeEqual(df.Shape, shape) {
				haveDeriv = false
				continue
			}
			if derivAcc == nil {
				derivAcc = make([]float64, len(df.Data))
			}
			for i, s := range df.Data {
				derivAcc[i] += c.Weight * s
			}
		} else {
			haveDeriv = false
		}
	}
	for i := range acc.Data {
		acc.Data[i] /= total
	}
	out, err := value.Coerce(shape, value.Vector(acc.Data))
	if err != nil {
		return value.Value{}, nil, false
	}
	if haveDeriv && derivAcc != nil {
		for i := range derivAcc {
			derivAcc[i] /= total
		}
		d, err := value.Coerce(shape, value.Vector(derivAcc))
		if err == nil {
			return out, &d, true
		}
	}
	return out, nil, true
}

// blendQuat implements §4.3a: two contributions SLERP at the weight
// ratio; more than two weighted-component-sum after hemisphere
// alignment, then re-normalize (identity on near-zero norm).
func blendQuat(contribs []Contribution, total float64) (value.Value, *value.Value, bool) {
	quats := make([]vmath.Quat, len(contribs))
	for i, c := range contribs {
		arr, _ := c.Value.AsQuat()
		quats[i] = vmath.Quat{X: arr[0], Y: arr[1], Z: arr[2], W: arr[3]}
	}
	if len(contribs) == 2 {
		t := contribs[1].Weight / total
		out := vmath.Slerp(quats[0], quats[1], t)
		return value.Quat([4]float64{out.X, out.Y, out.Z, out.W}), nil, true
	}
	sum := vmath.Quat{}
	first := quats[0]
	for i, q := range quats {
		if first.Dot(q) < 0 {
			q = q.Neg()
		}
		sum = sum.Add(q.Scale(contribs[i].Weight))
	}
	sum = sum.Scale(1 / total)
	if sum.Len() < 1e-6 {
		return value.Quat([4]float64{0, 0, 0, 1}), nil, true
	}
	u := sum.Unit()
	return value.Quat([4]float64{u.X, u.Y, u.Z, u.W}), nil, true
}

// blendTransform blends a Transform's translation/scale as numeric
// vectors and its rotation via blendQuat, matching the sampler's
// per-field treatment of transforms.
func blendTransform(contribs []Contribution, total float64) (value.Value, *value.Value, bool) {
	transSum := vmath.Vec3{}
	scaleSum := vmath.Vec3{}
	quatContribs := make([]Contribution, len(contribs))
	for i, c := range contribs {
		t, _ := c.Value.AsTransform()
		transSum.X += c.Weight * t.Translation[0]
		transSum.Y += c.Weight * t.Translation[1]
		transSum.Z += c.Weight * t.Translation[2]
		scaleSum.X += c.Weight * t.Scale[0]
		scaleSum.Y += c.Weight * t.Scale[1]
		scaleSum.Z += c.Weight * t.Scale[2]
		quatContribs[i] = Contribution{Weight: c.Weight, Value: value.Quat(t.Rotation), order: c.order}
	}
	rotVal, _, ok := blendQuat(quatContribs, total)
	if !ok {
		return value.Value{}, nil, false
	}
	rot, _ := rotVal.AsQuat()
	out := value.TransformVal(value.Transform{
		Translation: [3]float64{transSum.X / total, transSum.Y / total, transSum.Z / total},
		Rotation:    rot,
		Scale:       [3]float64{scaleSum.X / total, scaleSum.Y / total, scaleSum.Z / total},
	})
	return out, nil, true
}
