// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"math"

	"github.com/galvanized/animrt/internal/vmath"
	"github.com/galvanized/animrt/value"
)

// InterpolationKind tags one of the closed catalog of easing curves
// (§9: "tagged variant + registry indexed by kind", not dynamic dispatch
// through inheritance).
type InterpolationKind uint8

const (
	Linear InterpolationKind = iota
	Cubic
	EaseIn
	EaseOut
	EaseInOut
	Step
	Bezier
	Spring
)

var interpolationKindNames = [...]string{
	Linear: "Linear", Cubic: "Cubic", EaseIn: "EaseIn", EaseOut: "EaseOut",
	EaseInOut: "EaseInOut", Step: "Step", Bezier: "Bezier", Spring: "Spring",
}

func (k InterpolationKind) String() string {
	if int(k) < len(interpolationKindNames) {
		return interpolationKindNames[k]
	}
	return "Unknown"
}

var interpolationKindsByName = map[string]InterpolationKind{
	"linear": Linear, "cubic": Cubic, "ease_in": EaseIn, "ease_out": EaseOut,
	"ease_in_out": EaseInOut, "step": Step, "bezier": Bezier, "spring": Spring,
}

// ParseInterpolationKind looks up an InterpolationKind by its lower_snake
// configuration name (e.g. from YAML), reporting false if unrecognized.
func ParseInterpolationKind(name string) (InterpolationKind, bool) {
	k, ok := interpolationKindsByName[name]
	return k, ok
}

// Params holds every interpolator's tunables; only the fields relevant to
// the active InterpolationKind are read. Zero values mean "use the
// documented default" (see interp_params.go for the schema).
type Params struct {
	Threshold      float64 // Step
	BezierX1       float64 // Bezier
	BezierY1       float64
	BezierX2       float64
	BezierY2       float64
	SpringDamping  float64 // Spring
	SpringStiffness float64
}

// DefaultParams returns the documented defaults for kind.
func DefaultParams(kind InterpolationKind) Params {
	switch kind {
	case Step:
		return Params{Threshold: 1.0}
	case Bezier:
		return Params{BezierX1: 0.25, BezierY1: 0.1, BezierX2: 0.25, BezierY2: 1.0}
	case Spring:
		return Params{SpringDamping: 20.0, SpringStiffness: 100.0}
	default:
		return Params{}
	}
}

// withDefaults fills zero-valued fields relevant to kind with their
// documented defaults, so a caller-supplied Params{} means "defaults".
func withDefaults(kind InterpolationKind, p Params) Params {
	d := DefaultParams(kind)
	switch kind {
	case Step:
		if p.Threshold == 0 {
			p.Threshold = d.Threshold
		}
	case Bezier:
		if p.BezierX1 == 0 && p.BezierY1 == 0 && p.BezierX2 == 0 && p.BezierY2 == 0 {
			p = Params{BezierX1: d.BezierX1, BezierY1: d.BezierY1, BezierX2: d.BezierX2, BezierY2: d.BezierY2}
		}
	case Spring:
		if p.SpringDamping == 0 {
			p.SpringDamping = d.SpringDamping
		}
		if p.SpringStiffness == 0 {
			p.SpringStiffness = d.SpringStiffness
		}
	}
	return p
}

// Ease maps a normalized progress u in [0,1] through kind's easing curve
// (§4.2's mapping table). Step is handled by the caller instead of here,
// since it selects between prev/next wholesale rather than blending.
func Ease(kind InterpolationKind, u float64, p Params) float64 {
	p = withDefaults(kind, p)
	switch kind {
	case Linear:
		return u
	case Cubic:
		return u * u * (3 - 2*u)
	case EaseIn:
		return u * u
	case EaseOut:
		return 1 - (1-u)*(1-u)
	case EaseInOut:
		if u < 0.5 {
			return 2 * u * u
		}
		return 1 - 2*(1-u)*(1-u)
	case Bezier:
		return cubicBezierEase(u, p.BezierX1, p.BezierY1, p.BezierX2, p.BezierY2)
	case Spring:
		return springEase(u, p.SpringDamping, p.SpringStiffness)
	default:
		return u
	}
}

// cubicBezierEase inverts the curve's x(t) component by up to 10
// iterations of bisection to find the t producing x==u, then evaluates
// y(t) at that t (§4.2).
func cubicBezierEase(u, x1, y1, x2, y2 float64) float64 {
	lower, upper := 0.0, 1.0
	t := u
	for i := 0; i < 10; i++ {
		x := cubicBezierValue(t, 0, x1, x2, 1)
		if math.Abs(x-u) < 0.001 {
			break
		}
		if x < u {
			lower = t
		} else {
			upper = t
		}
		t = (lower + upper) / 2
	}
	return cubicBezierValue(t, 0, y1, y2, 1)
}

func cubicBezierValue(t, p0, p1, p2, p3 float64) float64 {
	omt := 1 - t
	omt2 := omt * omt
	omt3 := omt2 * omt
	t2 := t * t
	t3 := t2 * t
	return omt3*p0 + 3*omt2*t*p1 + 3*omt*t2*p2 + t3*p3
}

// springEase is the closed-form unit-step response of a damped harmonic
// oscillator (mass 1), starting at rest at 0 and settling at 1. It is
// monotone in u in the critically and over-damped regimes; the
// under-damped regime overshoots 1 before settling (§4.2).
func springEase(u, damping, stiffness float64) float64 {
	if u == 0 || u == 1 {
		return u
	}
	const mass = 1.0
	w0 := math.Sqrt(stiffness / mass)
	zeta := damping / (2 * math.Sqrt(stiffness*mass))
	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		return 1 - math.Exp(-zeta*w0*u)*(math.Cos(wd*u)+zeta*w0/wd*math.Sin(wd*u))
	case zeta == 1:
		return 1 - math.Exp(-w0*u)*(1+w0*u)
	default:
		wd := w0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*w0 + wd
		r2 := -zeta*w0 - wd
		return 1 - (r2*math.Exp(r1*u)-r1*math.Exp(r2*u))/(r2-r1)
	}
}

// InterpolateValues blends prev and next's native-domain values at eased
// progress u' (§4.2): component-wise for vectors/colors/floats; SLERP for
// standalone quaternions; SLERP rotation + lerp translation/scale for
// transforms. prev and next must share a ValueType; callers performing
// Step interpolation should not call this (they select prev or next
// wholesale instead).
func InterpolateValues(prev, next value.Value, uPrime float64) (value.Value, error) {
	if prev.Type() != next.Type() {
		return value.Value{}, &value.TypeMismatchError{Expected: prev.Type(), Got: next.Type()}
	}
	switch prev.Type() {
	case value.TQuat:
		p, _ := prev.AsQuat()
		n, _ := next.AsQuat()
		return value.Quat(quatArr(vmath.Slerp(arrQuat(p), arrQuat(n), uPrime))), nil
	case value.TTransform:
		pt, _ := prev.AsTransform()
		nt, _ := next.AsTransform()
		return value.TransformVal(value.Transform{
			Translation: lerp3Arr(pt.Translation, nt.Translation, uPrime),
			Rotation:    quatArr(vmath.Slerp(arrQuat(pt.Rotation), arrQuat(nt.Rotation), uPrime)),
			Scale:       lerp3Arr(pt.Scale, nt.Scale, uPrime),
		}), nil
	case value.TBool, value.TText, value.TEnum:
		// Non-interpolable in their native domain: step at the midpoint,
		// matching the source's "can_interpolate" gate which excludes them
		// from arithmetic blending entirely.
		if uPrime < 0.5 {
			return prev, nil
		}
		return next, nil
	default:
		return value.Binary(prev, next, func(a, b float64) float64 {
			return a + (b-a)*uPrime
		})
	}
}

func arrQuat(a [4]float64) vmath.Quat { return vmath.Quat{X: a[0], Y: a[1], Z: a[2], W: a[3]} }
func quatArr(q vmath.Quat) [4]float64 { return [4]float64{q.X, q.Y, q.Z, q.W} }

func lerp3Arr(a, b [3]float64, t float64) [3]float64 {
	v := vmath.Lerp3(vmath.Vec3{X: a[0], Y: a[1], Z: a[2]}, vmath.Vec3{X: b[0], Y: b[1], Z: b[2]}, t)
	return [3]float64{v.X, v.Y, v.Z}
}
