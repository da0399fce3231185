// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

// Clip (the spec's AnimationData) is immutable animation data: named
// tracks, a non-negative duration, a per-kind default interpolation
// table, and free-form metadata (SPEC_FULL §5.4 — carried from the
// original implementation's clip metadata map, dropped by the distilled
// spec's track-level-only interpolation settings).
type Clip struct {
	ID                   string
	Name                 string
	Tracks               []*Track
	Duration             float64
	DefaultInterpolation map[InterpolationKind]Params
	Metadata             map[string]string
}

// NewClip constructs a clip with an empty default-interpolation table and
// metadata map.
func NewClip(id, name string, duration float64) *Clip {
	return &Clip{
		ID:                   id,
		Name:                 name,
		Duration:             duration,
		DefaultInterpolation: map[InterpolationKind]Params{},
		Metadata:             map[string]string{},
	}
}

// TrackByTarget returns the first track whose TargetPath matches, or nil.
func (c *Clip) TrackByTarget(targetPath string) *Track {
	for _, tr := range c.Tracks {
		if tr.TargetPath == targetPath {
			return tr
		}
	}
	return nil
}
