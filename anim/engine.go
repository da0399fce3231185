// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import "github.com/galvanized/animrt/value"

// EventKind tags the kind of Event emitted through the engine's event
// stream (SPEC_FULL §5.7, supplemented from the original implementation's
// event.rs — the distilled spec only gestures at "the error is emitted
// through the event stream" in §7 without naming a shape).
type EventKind uint8

const (
	EventPlayerError EventKind = iota
	EventPlayerEnded
)

// Event is one notification produced during Engine.Update, collected in
// tick order and returned to the host alongside the per-target output
// values.
type Event struct {
	Kind     EventKind
	PlayerID string
	Err      error
}

// Engine owns clips and players by id, a shared interpolation default
// table, and the tick clock. No package-level engine state exists; every
// Engine is an explicit value constructed by New (§9: "no process-wide
// singletons").
type Engine struct {
	clips            map[string]*Clip
	players          map[string]*Player
	defaultParams    map[InterpolationKind]Params
	derivativeWidth  float64
}

// New constructs an empty engine with the documented interpolator
// defaults and a 1/60s default derivative finite-difference width.
func New() *Engine {
	defaults := map[InterpolationKind]Params{}
	for kind := range Schemas {
		defaults[kind] = DefaultParams(kind)
	}
	return &Engine{
		clips:           map[string]*Clip{},
		players:         map[string]*Player{},
		defaultParams:   defaults,
		derivativeWidth: 1.0 / 60.0,
	}
}

// LoadClip registers a clip under its own id. Loading under an id already
// in use replaces the prior clip; unloading (UnloadClip) while any
// player's instance still references it is an error (§3.2).
func (e *Engine) LoadClip(c *Clip) {
	e.clips[c.ID] = c
}

// UnloadClip removes a clip, failing if any player instance still
// references it.
func (e *Engine) UnloadClip(id string) error {
	for _, p := range e.players {
		for _, ins := range p.Instances {
			if ins.AnimationID == id {
				return &ClipInUseError{ClipID: id, PlayerID: p.ID}
			}
		}
	}
	delete(e.clips, id)
	return nil
}

// Clip returns the clip with the given id, or NotFoundError.
func (e *Engine) Clip(id string) (*Clip, error) {
	c, ok := e.clips[id]
	if !ok {
		return nil, &NotFoundError{Kind: "clip", ID: id}
	}
	return c, nil
}

// CreatePlayer registers and returns a new stopped player under id.
func (e *Engine) CreatePlayer(id string) *Player {
	p := NewPlayer(id)
	e.players[id] = p
	return p
}

// Player returns the player with the given id, or NotFoundError.
func (e *Engine) Player(id string) (*Player, error) {
	p, ok := e.players[id]
	if !ok {
		return nil, &NotFoundError{Kind: "player", ID: id}
	}
	return p, nil
}

// windowEnd computes a player's implicit timeline end: the longest
// duration among its instances' referenced clips (scaled by each
// instance's time_scale magnitude), since §3.2's Player state has no
// explicit duration field of its own (an Open Question this module
// resolves — see DESIGN.md).
func (e *Engine) windowEnd(p *Player) float64 {
	longest := 0.0
	for _, ins := range p.Instances {
		clip, ok := e.clips[ins.AnimationID]
		if !ok {
			continue
		}
		scale := ins.TimeScale
		if scale == 0 {
			scale = 1
		}
		if scale < 0 {
			scale = -scale
		}
		d := clip.Duration / scale
		if d > longest {
			longest = d
		}
	}
	return longest
}

// Update advances every playing player by frameDelta and returns the
// blended output per player per target path (§6.1), plus any events
// raised (§7: a single failing player does not fail the whole tick).
func (e *Engine) Update(frameDelta float64) (map[string]map[string]value.Value, []Event) {
	out := map[string]map[string]value.Value{}
	var events []Event
	for id, p := range e.players {
		vals, evs := e.updatePlayer(p, frameDelta, false)
		if len(vals) > 0 {
			out[id] = vals
		}
		events = append(events, evs...)
	}
	return out, events
}

// TargetDerivatives pairs a blended value with its optional derivative.
type TargetDerivatives struct {
	Value      value.Value
	Derivative *value.Value
}

// UpdateWithDerivatives is Update's derivative-carrying variant (§6.1's
// update_values_and_derivatives).
func (e *Engine) UpdateWithDerivatives(frameDelta float64) (map[string]map[string]TargetDerivatives, []Event) {
	out := map[string]map[string]TargetDerivatives{}
	var events []Event
	for id, p := range e.players {
		vals, evs := e.updatePlayerWithDerivatives(p, frameDelta)
		if len(vals) > 0 {
			out[id] = vals
		}
		events = append(events, evs...)
	}
	return out, events
}

func (e *Engine) updatePlayer(p *Player, frameDelta float64, _ bool) (map[string]value.Value, []Event) {
	vals, _, evs := e.tick(p, frameDelta, false)
	return vals, evs
}

func (e *Engine) updatePlayerWithDerivatives(p *Player, frameDelta float64) (map[string]TargetDerivatives, []Event) {
	_, withDeriv, evs := e.tick(p, frameDelta, true)
	return withDeriv, evs
}

func (e *Engine) tick(p *Player, frameDelta float64, wantDeriv bool) (map[string]value.Value, map[string]TargetDerivatives, []Event) {
	var events []Event
	end := e.windowEnd(p)
	p.AdvanceTime(frameDelta, end)
	if p.State == Ended {
		events = append(events, Event{Kind: EventPlayerEnded, PlayerID: p.ID})
	}

	acc := NewAccumulator()
	for _, ins := range p.Instances {
		if !ins.Contributes() {
			continue
		}
		clip, ok := e.clips[ins.AnimationID]
		if !ok {
			events = append(events, Event{Kind: EventPlayerError, PlayerID: p.ID, Err: &NotFoundError{Kind: "clip", ID: ins.AnimationID}})
			continue
		}
		tEff := ins.EffectiveTime(p.CurrentTime, clip.Duration)
		for _, tr := range clip.Tracks {
			weight := ins.Weight * tr.Settings.EffectiveWeight()
			if wantDeriv {
				v, d, err := SampleWithDerivative(tr, tEff, e.derivativeWidth)
				if err != nil {
					continue // silent skip at blend time, §4.3
				}
				acc.Add(tr.TargetPath, weight, v, d)
			} else {
				v, ok, err := Sample(tr, tEff, e.defaultParams[tr.Settings.Interpolation])
				if !ok || err != nil {
					continue
				}
				acc.Add(tr.TargetPath, weight, v, nil)
			}
		}
	}

	values := map[string]value.Value{}
	withDeriv := map[string]TargetDerivatives{}
	for _, target := range acc.Targets() {
		v, d, ok := Resolve(acc.byTarget[target])
		if !ok {
			continue
		}
		values[target] = v
		withDeriv[target] = TargetDerivatives{Value: v, Derivative: d}
	}
	return values, withDeriv, events
}
