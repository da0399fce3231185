// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import "math"

// PlayMode selects how a player's timeline behaves on overrun (§4.3).
type PlayMode uint8

const (
	Once PlayMode = iota
	Loop
	PingPong
)

func (m PlayMode) String() string {
	switch m {
	case Once:
		return "Once"
	case Loop:
		return "Loop"
	case PingPong:
		return "PingPong"
	default:
		return "Unknown"
	}
}

// PlaybackState is a player's coarse lifecycle state (§3.2).
type PlaybackState uint8

const (
	Stopped PlaybackState = iota
	Playing
	Paused
	Ended
	ErrorState
)

func (s PlaybackState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Ended:
		return "Ended"
	case ErrorState:
		return "Error"
	default:
		return "Unknown"
	}
}

// Player is a timeline with a playback state, speed, mode, and the set of
// clip instances it drives (§3.2).
type Player struct {
	ID          string
	CurrentTime float64
	Speed       float64
	StartTime   float64
	EndTime     *float64
	Mode        PlayMode
	State       PlaybackState
	Instances   []*Instance
}

// NewPlayer constructs a stopped, real-time-speed player in Once mode.
func NewPlayer(id string) *Player {
	return &Player{ID: id, Speed: 1, State: Stopped}
}

// InstanceByID returns the instance with the given id, or nil.
func (p *Player) InstanceByID(id string) *Instance {
	for _, ins := range p.Instances {
		if ins.ID == id {
			return ins
		}
	}
	return nil
}

// AddInstance appends ins to the player's instance set. Instances may be
// added or removed at any time between ticks (§3.2).
func (p *Player) AddInstance(ins *Instance) {
	p.Instances = append(p.Instances, ins)
}

// RemoveInstance drops the instance with the given id, reporting whether
// one was found.
func (p *Player) RemoveInstance(id string) bool {
	for i, ins := range p.Instances {
		if ins.ID == id {
			p.Instances = append(p.Instances[:i], p.Instances[i+1:]...)
			return true
		}
	}
	return false
}

// Play transitions a Stopped, Paused, or Ended player to Playing.
// Stopped->Playing, Paused->Playing, and Ended->Playing (restart) are the
// legal arcs (§4.3); any other current state fails.
func (p *Player) Play() error {
	switch p.State {
	case Stopped, Paused, Ended:
		if p.State == Ended {
			p.CurrentTime = p.StartTime
		}
		p.State = Playing
		return nil
	default:
		return &InvalidStateError{Current: p.State, Requested: Playing}
	}
}

// Pause transitions a Playing player to Paused.
func (p *Player) Pause() error {
	if p.State != Playing {
		return &InvalidStateError{Current: p.State, Requested: Paused}
	}
	p.State = Paused
	return nil
}

// Stop transitions any player to Stopped and resets its timeline to
// StartTime.
func (p *Player) Stop() error {
	p.State = Stopped
	p.CurrentTime = p.StartTime
	return nil
}

// Seek moves the player's current time to t, resolved through the same
// overrun rule its Mode applies on a normal tick (§8's Loop/PingPong seek
// boundary examples: a seek outside the window wraps or reflects exactly
// as an overrunning AdvanceTime would). windowEnd is the caller-supplied
// window end, as for AdvanceTime. An Ended player that is sought becomes
// Playing again; Stopped players cannot be sought directly.
func (p *Player) Seek(t, windowEnd float64) error {
	if p.State == Stopped {
		return &InvalidStateError{Current: p.State, Requested: Playing}
	}
	if p.State == Ended {
		p.State = Playing
	}
	newTime, newSpeed, ended := p.resolveOverrun(t, windowEnd)
	p.CurrentTime = newTime
	p.Speed = newSpeed
	if ended {
		p.State = Ended
	}
	return nil
}

// AdvanceTime applies one tick of §4.3's timeline update given the
// caller-supplied window end (the longest active instance's effective
// duration, or p.EndTime if set). Paused and Stopped players do not
// advance; Playing players that overrun the window transition per Mode.
func (p *Player) AdvanceTime(frameDelta, windowEnd float64) {
	if p.State != Playing {
		return
	}
	t := p.CurrentTime + frameDelta*p.Speed
	newTime, newSpeed, ended := p.resolveOverrun(t, windowEnd)
	p.CurrentTime = newTime
	p.Speed = newSpeed
	if ended {
		p.State = Ended
	}
}

// resolveOverrun applies §4.3's per-Mode overrun table to a raw
// (pre-mode) target time t, returning the resolved time, the (possibly
// sign-flipped, for PingPong) speed, and whether the player has Ended.
func (p *Player) resolveOverrun(t, windowEnd float64) (resolvedTime, resolvedSpeed float64, ended bool) {
	start := p.StartTime
	end := windowEnd
	if p.EndTime != nil {
		end = *p.EndTime
	}
	length := end - start
	speed := p.Speed

	switch p.Mode {
	case Once:
		if t > end {
			return end, speed, true
		}
		if t < start {
			return start, speed, true
		}
		return t, speed, false
	case Loop:
		if length <= 0 {
			return start, speed, false
		}
		if t > end || t < start {
			wrapped := start + math.Mod(t-start, length)
			if wrapped < start {
				wrapped += length
			}
			return wrapped, speed, false
		}
		return t, speed, false
	case PingPong:
		if length <= 0 {
			return start, speed, false
		}
		if t > end {
			return end - (t - end), -speed, false
		}
		if t < start {
			return start + (start - t), -speed, false
		}
		return t, speed, false
	default:
		return t, speed, false
	}
}
