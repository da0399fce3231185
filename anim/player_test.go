// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"math"
	"testing"
)

func TestPlayerPlayPauseStopTransitions(t *testing.T) {
	p := NewPlayer("p1")
	if p.State != Stopped {
		t.Fatalf("expected new player Stopped, got %v", p.State)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Stopped->Playing should be legal: %v", err)
	}
	if err := p.Pause(); err != nil {
		t.Fatalf("Playing->Paused should be legal: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Paused->Playing should be legal: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("any->Stopped should be legal: %v", err)
	}
	if p.State != Stopped {
		t.Errorf("expected Stopped after Stop, got %v", p.State)
	}
}

func TestPlayerPauseWhileStoppedIsIllegal(t *testing.T) {
	p := NewPlayer("p1")
	err := p.Pause()
	if err == nil {
		t.Fatal("expected error pausing a stopped player")
	}
	if _, ok := err.(*InvalidStateError); !ok {
		t.Errorf("expected *InvalidStateError, got %T", err)
	}
}

func TestPlayerEndedRestartsFromStartTime(t *testing.T) {
	p := NewPlayer("p1")
	p.StartTime = 2
	p.State = Ended
	p.CurrentTime = 99
	if err := p.Play(); err != nil {
		t.Fatalf("Ended->Playing should be legal: %v", err)
	}
	if p.CurrentTime != 2 {
		t.Errorf("expected restart at StartTime 2, got %v", p.CurrentTime)
	}
}

func TestPlayerSeekWhileStoppedIsIllegal(t *testing.T) {
	p := NewPlayer("p1")
	err := p.Seek(0.5, 1)
	if err == nil {
		t.Fatal("expected error seeking a stopped player")
	}
}

func TestPlayerLoopSeekNegativeWraps(t *testing.T) {
	p := NewPlayer("p1")
	p.Mode = Loop
	p.State = Playing
	if err := p.Seek(-0.25, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p.CurrentTime-0.75) > 1e-9 {
		t.Errorf("expected wrapped time 0.75, got %v", p.CurrentTime)
	}
	if p.State != Playing {
		t.Errorf("expected still Playing after a Loop wrap, got %v", p.State)
	}
}

func TestPlayerPingPongSeekOverrunReflectsAndFlipsSpeed(t *testing.T) {
	p := NewPlayer("p1")
	p.Mode = PingPong
	p.State = Playing
	p.Speed = 1
	if err := p.Seek(1.25, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p.CurrentTime-0.75) > 1e-9 {
		t.Errorf("expected reflected time 0.75, got %v", p.CurrentTime)
	}
	if p.Speed != -1 {
		t.Errorf("expected speed reversed to -1, got %v", p.Speed)
	}
}

func TestPlayerOnceModeEndsAtWindowEnd(t *testing.T) {
	p := NewPlayer("p1")
	p.Mode = Once
	p.State = Playing
	p.AdvanceTime(2, 1)
	if p.State != Ended {
		t.Fatalf("expected Ended after overrunning Once window, got %v", p.State)
	}
	if p.CurrentTime != 1 {
		t.Errorf("expected clamp to window end 1, got %v", p.CurrentTime)
	}
}

func TestPlayerAdvanceTimeNoOpWhenNotPlaying(t *testing.T) {
	p := NewPlayer("p1")
	p.State = Paused
	p.CurrentTime = 0.5
	p.AdvanceTime(10, 1)
	if p.CurrentTime != 0.5 {
		t.Errorf("expected no advance while paused, got %v", p.CurrentTime)
	}
}

func TestPlayerAddRemoveInstance(t *testing.T) {
	p := NewPlayer("p1")
	ins := NewInstance("i1", "clipA")
	p.AddInstance(ins)
	if p.InstanceByID("i1") == nil {
		t.Fatal("expected instance to be findable after add")
	}
	if !p.RemoveInstance("i1") {
		t.Fatal("expected remove to report found")
	}
	if p.InstanceByID("i1") != nil {
		t.Error("expected instance gone after remove")
	}
	if p.RemoveInstance("missing") {
		t.Error("expected remove of unknown id to report false")
	}
}
