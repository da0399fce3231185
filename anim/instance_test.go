// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import "testing"

func TestInstanceEffectiveTimeClampsToClipBounds(t *testing.T) {
	ins := NewInstance("i1", "clipA")
	ins.StartTime = 1
	ins.TimeScale = 1
	if got := ins.EffectiveTime(0, 5); got != 0 {
		t.Errorf("expected clamp to 0 before start, got %v", got)
	}
	if got := ins.EffectiveTime(10, 5); got != 5 {
		t.Errorf("expected clamp to clip duration, got %v", got)
	}
	if got := ins.EffectiveTime(3, 5); got != 2 {
		t.Errorf("expected (3-1)*1=2, got %v", got)
	}
}

func TestInstanceEffectiveTimeScalesPlayback(t *testing.T) {
	ins := NewInstance("i1", "clipA")
	ins.TimeScale = 2
	if got := ins.EffectiveTime(1, 10); got != 2 {
		t.Errorf("expected (1-0)*2=2, got %v", got)
	}
}

func TestInstanceZeroTimeScaleHoldsStaticPose(t *testing.T) {
	ins := NewInstance("i1", "clipA")
	ins.TimeScale = 0
	ins.StartOffset = 1.5
	if got := ins.EffectiveTime(100, 10); got != 1.5 {
		t.Errorf("expected static pose at StartOffset 1.5, got %v", got)
	}
}

func TestInstanceContributes(t *testing.T) {
	ins := NewInstance("i1", "clipA")
	if !ins.Contributes() {
		t.Error("expected a fresh enabled full-weight instance to contribute")
	}
	ins.Weight = 0
	if ins.Contributes() {
		t.Error("expected zero-weight instance to not contribute")
	}
	ins.Weight = 1
	ins.Enabled = false
	if ins.Contributes() {
		t.Error("expected disabled instance to not contribute")
	}
}
