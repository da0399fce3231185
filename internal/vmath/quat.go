// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package vmath adapts the engine's quaternion/vector kernel to the
// rotation and blend math the animation and value systems need: unit-norm
// quaternions, shortest-arc slerp/nlerp, and small fixed vectors.
package vmath

import "math"

// Epsilon is the tolerance used by the Aeq family of near-equality checks.
const Epsilon = 0.0000001

// Aeq (~=) returns true if a and b are within Epsilon of each other.
func Aeq(a, b float64) bool { return math.Abs(a-b) <= Epsilon }

// Quat is a unit-length-by-convention quaternion: (X, Y, Z) direction and
// W angle of rotation.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{0, 0, 0, 1}

// Dot returns the dot product of q and r.
func (q Quat) Dot(r Quat) float64 { return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W }

// Len returns the length (norm) of q.
func (q Quat) Len() float64 { return math.Sqrt(q.Dot(q)) }

// Scale returns q with every component multiplied by s.
func (q Quat) Scale(s float64) Quat { return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s} }

// Add returns the component-wise sum of q and r.
func (q Quat) Add(r Quat) Quat { return Quat{q.X + r.X, q.Y + r.Y, q.Z + r.Z, q.W + r.W} }

// Neg returns q with every component negated.
func (q Quat) Neg() Quat { return Quat{-q.X, -q.Y, -q.Z, -q.W} }

// Unit returns q normalized to unit length. The zero quaternion normalizes
// to the identity rather than dividing by zero.
func (q Quat) Unit() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdentity
	}
	return q.Scale(1 / l)
}

// Nlerp returns the normalized linear interpolation between q and r at the
// given ratio (expected in [0,1]). q and r are not aligned to a common
// hemisphere by this function; callers wanting the shortest arc should use
// NlerpShortest.
func Nlerp(q, r Quat, ratio float64) Quat {
	return Quat{
		X: (r.X-q.X)*ratio + q.X,
		Y: (r.Y-q.Y)*ratio + q.Y,
		Z: (r.Z-q.Z)*ratio + q.Z,
		W: (r.W-q.W)*ratio + q.W,
	}.Unit()
}

// NlerpShortest is Nlerp with r flipped to q's hemisphere first, so the
// interpolation takes the shorter of the two arcs between q and r.
func NlerpShortest(q, r Quat, ratio float64) Quat {
	if q.Dot(r) < 0 {
		r = r.Neg()
	}
	return Nlerp(q, r, ratio)
}

// nearParallelDot is the dot-product threshold above which Slerp falls back
// to Nlerp for numerical stability (the two quaternions are close enough
// that linear interpolation is indistinguishable from the great-circle arc).
const nearParallelDot = 0.9995

// Slerp returns the spherical linear interpolation between q and r at the
// given ratio, flipping r to q's hemisphere first so the shorter arc is
// always taken. Falls back to a normalized lerp when q and r are nearly
// parallel, where the great-circle formula becomes numerically unstable.
func Slerp(q, r Quat, ratio float64) Quat {
	dot := q.Dot(r)
	if dot < 0 {
		r = r.Neg()
		dot = -dot
	}
	if dot > nearParallelDot {
		return NlerpShortest(q, r, ratio)
	}
	theta0 := math.Acos(clamp(dot, -1, 1))
	theta := theta0 * ratio
	sinTheta0 := math.Sin(theta0)
	if sinTheta0 == 0 {
		return NlerpShortest(q, r, ratio)
	}
	s0 := math.Sin(theta0-theta) / sinTheta0
	s1 := math.Sin(theta) / sinTheta0
	return q.Scale(s0).Add(r.Scale(s1)).Unit()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
