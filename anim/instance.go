// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

// Instance is a per-player activation of a clip (§3.2): the clip it
// references, where it starts on the player's clock, its signed time
// scale (0 holds a static pose at StartOffset), its blend weight, and
// whether it currently contributes at all.
type Instance struct {
	ID          string
	AnimationID string
	StartTime   float64
	TimeScale   float64
	StartOffset float64
	Weight      float64
	Enabled     bool
	ModeOverride *PlayMode
}

// NewInstance constructs an enabled, full-weight, real-time instance.
func NewInstance(id, animationID string) *Instance {
	return &Instance{
		ID:          id,
		AnimationID: animationID,
		TimeScale:   1,
		Weight:      1,
		Enabled:     true,
	}
}

// EffectiveTime computes the instance's local sample time given the
// player's current time (§4.3): `clamp((current - start) * scale, 0,
// duration)`, or a static StartOffset pose when TimeScale is exactly 0.
func (ins *Instance) EffectiveTime(playerTime, clipDuration float64) float64 {
	if ins.TimeScale == 0 {
		return ins.StartOffset
	}
	t := (playerTime - ins.StartTime) * ins.TimeScale
	if t < 0 {
		return 0
	}
	if t > clipDuration {
		return clipDuration
	}
	return t
}

// Contributes reports whether the instance should be sampled this tick:
// enabled and carrying non-zero weight (§4.3).
func (ins *Instance) Contributes() bool {
	return ins.Enabled && ins.Weight > 0
}
