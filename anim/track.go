// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package anim implements the animation engine: keyframe tracks, clips,
// the sampler, and the player/instance/engine timeline that blends
// multiple concurrently active clips onto named targets.
package anim

import (
	"sort"

	"github.com/galvanized/animrt/value"
)

// Handle is a 2-D bezier control point in [0,1]², used by Keypoint's
// optional transition handles.
type Handle struct {
	X, Y float64
}

// Transitions holds the incoming and outgoing bezier control handles for
// a keypoint. A nil handle on either side means "default ease" at that
// side. The handles are carried with the keypoint only: Sample does not
// read them, and Bezier easing takes its control points from the track's
// Params.
type Transitions struct {
	In  *Handle
	Out *Handle
}

// Keypoint is one time-stamped sample on a Track.
type Keypoint struct {
	ID          string
	Time        float64
	Value       value.Value
	Transitions *Transitions
}

// Track is a typed sequence of keypoints targeted at a named destination
// path, plus the interpolation settings applied between them.
type Track struct {
	ID         string
	TargetPath string
	Points     []Keypoint
	Settings   TrackSettings
}

// TrackSettings carries the per-track interpolation kind and parameters,
// plus an optional per-track blend weight multiplier (§4.3's
// "apply track-level weight if configured").
type TrackSettings struct {
	Interpolation InterpolationKind
	Params        Params
	Weight        float64 // 0 means "unset", treated as 1
}

// NewTrack constructs an empty track with default (Linear, weight 1)
// settings.
func NewTrack(id, targetPath string) *Track {
	return &Track{
		ID:         id,
		TargetPath: targetPath,
		Settings:   TrackSettings{Interpolation: Linear, Weight: 1},
	}
}

// EffectiveWeight returns the track's configured weight, defaulting to 1
// when unset.
func (s TrackSettings) EffectiveWeight() float64 {
	if s.Weight == 0 {
		return 1
	}
	return s.Weight
}

// Insert adds or replaces a keypoint, keeping Points sorted by time and
// non-decreasing. Equal time stamps resolve to the last-inserted keypoint
// (§3.2): an existing point at the same time is overwritten in place.
func (t *Track) Insert(kp Keypoint) {
	i := sort.Search(len(t.Points), func(i int) bool { return t.Points[i].Time >= kp.Time })
	if i < len(t.Points) && t.Points[i].Time == kp.Time {
		t.Points[i] = kp
		return
	}
	t.Points = append(t.Points, Keypoint{})
	copy(t.Points[i+1:], t.Points[i:])
	t.Points[i] = kp
}

// ValueType reports the ValueType carried by the track's keypoints, or
// false if the track has no points.
func (t *Track) ValueType() (value.ValueType, bool) {
	if len(t.Points) == 0 {
		return 0, false
	}
	return t.Points[0].Value.Type(), true
}
