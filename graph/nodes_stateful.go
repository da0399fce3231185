// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"math"

	"github.com/galvanized/animrt/value"
)

// springState is a Spring node's per-(node, layout) physical state
// (§5.2): position/velocity settle toward the node's current input each
// tick. Rebuilt from scratch if the input's flattened layout changes.
type springState struct {
	shape    value.Shape
	position []float64
	velocity []float64
}

type dampState struct {
	shape value.Shape
	value []float64
}

type slewState struct {
	shape value.Shape
	value []float64
}

func springStateFor(rt *GraphRuntime, nodeID string, flat value.Flat) *springState {
	key := "spring:" + nodeID
	if s, ok := rt.state[key].(*springState); ok && value.ShapeEqual(s.shape, flat.Shape) {
		return s
	}
	s := &springState{
		shape:    flat.Shape,
		position: append([]float64(nil), flat.Data...),
		velocity: make([]float64, len(flat.Data)),
	}
	rt.state[key] = s
	return s
}

func dampStateFor(rt *GraphRuntime, nodeID string, flat value.Flat) *dampState {
	key := "damp:" + nodeID
	if s, ok := rt.state[key].(*dampState); ok && value.ShapeEqual(s.shape, flat.Shape) {
		return s
	}
	s := &dampState{shape: flat.Shape, value: make([]float64, len(flat.Data))}
	rt.state[key] = s
	return s
}

func slewStateFor(rt *GraphRuntime, nodeID string, flat value.Flat) *slewState {
	key := "slew:" + nodeID
	if s, ok := rt.state[key].(*slewState); ok && value.ShapeEqual(s.shape, flat.Shape) {
		return s
	}
	s := &slewState{shape: flat.Shape, value: make([]float64, len(flat.Data))}
	rt.state[key] = s
	return s
}

func reconstructOrVector(shape value.Shape, data []float64) value.Value {
	out, err := value.Coerce(shape, value.Vector(data))
	if err != nil {
		return value.Vector(data)
	}
	return out
}

func evalStatefulNode(rt *GraphRuntime, node *NodeSpec, inputs map[string]PortValue) (map[string]PortValue, bool) {
	target := input(inputs, "in")
	flat, err := value.Flatten(target)
	if err != nil {
		return single(value.Float(math.NaN())), true
	}
	dt := rt.Dt
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	switch node.Kind {
	case KindSpring:
		stiffness := node.Params.Stiffness
		if stiffness == 0 {
			stiffness = 120
		}
		damping := node.Params.Damping
		if damping == 0 {
			damping = 20
		}
		const mass = 1.0
		s := springStateFor(rt, node.ID, flat)
		if dt <= 0 {
			s.position = append([]float64(nil), flat.Data...)
			for i := range s.velocity {
				s.velocity[i] = 0
			}
		} else {
			invMass := 1.0 / mass
			for i := range s.position {
				displacement := s.position[i] - flat.Data[i]
				springForce := -stiffness * displacement
				dampingForce := -damping * s.velocity[i]
				accel := (springForce + dampingForce) * invMass
				s.velocity[i] += accel * dt
				s.position[i] += s.velocity[i] * dt
			}
		}
		return single(reconstructOrVector(s.shape, s.position)), true

	case KindDamp:
		halfLife := node.Params.HalfLife
		if halfLife == 0 {
			halfLife = 0.1
		}
		s := dampStateFor(rt, node.ID, flat)
		if dt <= 0 || halfLife <= 0 {
			s.value = append([]float64(nil), flat.Data...)
		} else {
			hl := math.Max(halfLife, 1e-6)
			decay := math.Exp(-math.Ln2 * dt / hl)
			for i := range s.value {
				s.value[i] = flat.Data[i] + (s.value[i]-flat.Data[i])*decay
			}
		}
		return single(reconstructOrVector(s.shape, s.value)), true

	case KindSlew:
		maxRate := node.Params.MaxRate
		if maxRate == 0 {
			maxRate = 1
		}
		s := slewStateFor(rt, node.ID, flat)
		if dt <= 0 || maxRate <= 0 {
			s.value = append([]float64(nil), flat.Data...)
		} else {
			maxDelta := maxRate * dt
			for i := range s.value {
				delta := flat.Data[i] - s.value[i]
				switch {
				case math.Abs(delta) <= maxDelta:
					s.value[i] = flat.Data[i]
				case delta > 0:
					s.value[i] += maxDelta
				default:
					s.value[i] -= maxDelta
				}
			}
		}
		return single(reconstructOrVector(s.shape, s.value)), true

	default:
		return nil, false
	}
}
