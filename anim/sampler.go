// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"sort"

	"github.com/galvanized/animrt/value"
)

// lookup performs the binary-search keypoint lookup of §4.2: it returns
// the indices of the surrounding keypoints (equal when t lands exactly on
// one, or when the track holds a single point) and the normalized
// progress u between them. Outside the track's range the boundary
// keypoint is held (no extrapolation).
func lookup(points []Keypoint, t float64) (prev, next int, u float64) {
	n := len(points)
	switch {
	case n == 0:
		return -1, -1, 0
	case n == 1:
		return 0, 0, 0
	case t <= points[0].Time:
		return 0, 0, 0
	case t >= points[n-1].Time:
		return n - 1, n - 1, 0
	}
	i := sort.Search(n, func(i int) bool { return points[i].Time >= t })
	if points[i].Time == t {
		return i, i, 0
	}
	prev, next = i-1, i
	span := points[next].Time - points[prev].Time
	if span <= 0 {
		return prev, next, 0
	}
	return prev, next, (t - points[prev].Time) / span
}

func mergeParams(kind InterpolationKind, track, fallback Params) Params {
	switch kind {
	case Step:
		if track.Threshold == 0 {
			track.Threshold = fallback.Threshold
		}
	case Bezier:
		if track.BezierX1 == 0 && track.BezierY1 == 0 && track.BezierX2 == 0 && track.BezierY2 == 0 {
			track = fallback
		}
	case Spring:
		if track.SpringDamping == 0 {
			track.SpringDamping = fallback.SpringDamping
		}
		if track.SpringStiffness == 0 {
			track.SpringStiffness = fallback.SpringStiffness
		}
	}
	return track
}

// Sample evaluates track at time t, reporting ok=false for an empty
// track ("no value", §8). defaultParams fills in any interpolation
// parameter the track's own settings leave unset.
func Sample(track *Track, t float64, defaultParams Params) (value.Value, bool, error) {
	if len(track.Points) == 0 {
		return value.Value{}, false, nil
	}
	prev, next, u := lookup(track.Points, t)
	if prev == next {
		return track.Points[prev].Value, true, nil
	}
	kind := track.Settings.Interpolation
	params := mergeParams(kind, track.Settings.Params, defaultParams)
	if kind == Step {
		threshold := params.Threshold
		if threshold == 0 {
			threshold = DefaultParams(Step).Threshold
		}
		if u < threshold {
			return track.Points[prev].Value, true, nil
		}
		return track.Points[next].Value, true, nil
	}
	uPrime := Ease(kind, u, params)
	out, err := InterpolateValues(track.Points[prev].Value, track.Points[next].Value, uPrime)
	return out, true, err
}

// SampleWithDerivative evaluates track at t and additionally estimates its
// time derivative by finite difference of width h (§4.2): centered when
// both t-h/2 and t+h/2 lie within the track's domain, one-sided at the
// boundaries. h must be strictly positive. Boolean, text, and enum tracks
// report no derivative (§9's resolution of the source's unspecified
// behavior for those types).
func SampleWithDerivative(track *Track, t, h float64) (value.Value, *value.Value, error) {
	val, ok, err := Sample(track, t, Params{})
	if !ok || err != nil {
		return val, nil, err
	}
	if h <= 0 {
		return val, nil, &value.InvalidValueError{Reason: "derivative delta must be strictly positive"}
	}
	switch val.Type() {
	case value.TBool, value.TText, value.TEnum:
		return val, nil, nil
	}
	domainStart := track.Points[0].Time
	domainEnd := track.Points[len(track.Points)-1].Time

	var before, after value.Value
	var dt float64
	half := h / 2
	if t-half >= domainStart && t+half <= domainEnd {
		before, _, err = Sample(track, t-half, Params{})
		if err != nil {
			return val, nil, err
		}
		after, _, err = Sample(track, t+half, Params{})
		if err != nil {
			return val, nil, err
		}
		dt = h
	} else if t+h <= domainEnd {
		before = val
		after, _, err = Sample(track, t+h, Params{})
		if err != nil {
			return val, nil, err
		}
		dt = h
	} else {
		before, _, err = Sample(track, t-h, Params{})
		if err != nil {
			return val, nil, err
		}
		after = val
		dt = h
	}
	deriv, err := value.Binary(after, before, func(a, b float64) float64 { return (a - b) / dt })
	if err != nil {
		return val, nil, err
	}
	return val, &deriv, nil
}
