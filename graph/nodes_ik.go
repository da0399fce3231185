// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"hash/fnv"
	"math"

	"github.com/galvanized/animrt/value"
)

// UrdfIKSolver is the opaque collaborator a host supplies to resolve
// URDF-described kinematic chains (§4.4's "URDF IK (optional)"); no
// implementation ships with this package, matching the source's
// feature-gated build and §1's "implementation is assumed" framing.
type UrdfIKSolver interface {
	// SolvePosition resolves joint angles placing the tip link at
	// target, returning a record of joint_name -> Float(angle).
	SolvePosition(urdfXML, rootLink, tipLink string, target [3]float64, seed map[string]float64) (map[string]float64, error)
	// SolvePose additionally constrains tip orientation (quaternion).
	SolvePose(urdfXML, rootLink, tipLink string, targetPos [3]float64, targetRot [4]float64, seed map[string]float64) (map[string]float64, error)
	// ForwardKinematics computes the tip link's pose for given joint angles.
	ForwardKinematics(urdfXML, rootLink, tipLink string, joints map[string]float64) (pos [3]float64, rot [4]float64, err error)
}

// UnreachableIkTargetError reports a planar IK target outside the
// reachable annulus of the two-link chain (§4.4: "unreachable target ⇒
// NaN Vec3" — the caller documents the NaN, this error is for solvers
// that can signal explicitly, e.g. a UrdfIKSolver).
type UnreachableIkTargetError struct{}

func (e *UnreachableIkTargetError) Error() string { return "graph: unreachable IK target" }

// evalInverseKinematics solves a planar 2-link chain with a wrist-offset
// third segment analytically (§4.4): given bone lengths, a target wrist
// orientation theta, and target (x, y), returns the three joint angles
// as a Vec3, or NaN on an unreachable target.
func evalInverseKinematics(inputs map[string]PortValue) value.Value {
	l1 := asFloat(input(inputs, "bone1"))
	l2 := asFloat(input(inputs, "bone2"))
	l3 := asFloat(input(inputs, "bone3"))
	theta := asFloat(input(inputs, "theta"))
	x := asFloat(input(inputs, "x"))
	y := asFloat(input(inputs, "y"))

	wx := x - l3*math.Cos(theta)
	wy := y - l3*math.Sin(theta)
	distSq := wx*wx + wy*wy

	reachMax := (l1 + l2) * (l1 + l2)
	reachMin := (l1 - l2) * (l1 - l2)
	if distSq > reachMax || distSq < reachMin {
		return value.Vec3([3]float64{math.NaN(), math.NaN(), math.NaN()})
	}

	cosAngle2 := (distSq - l1*l1 - l2*l2) / (2 * l1 * l2)
	angle2 := math.Acos(cosAngle2)
	angle1 := math.Atan2(wy, wx) - math.Atan2(l2*math.Sin(angle2), l1+l2*math.Cos(angle2))
	angle3 := theta - angle1 - angle2
	return value.Vec3([3]float64{angle1, angle2, angle3})
}

// ikCacheEntry records the hash(urdf_xml, root, tip) a URDF IK node was
// last evaluated with (§5.2); a hash change replaces the entry. It holds
// no parsed chain or solver handle of its own.
type ikCacheEntry struct {
	hash uint64
}

func hashURDFConfig(urdfXML, root, tip string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(urdfXML))
	h.Write([]byte{0})
	h.Write([]byte(root))
	h.Write([]byte{0})
	h.Write([]byte(tip))
	return h.Sum64()
}

func urdfJointRecord(joints map[string]float64) value.Value {
	fields := make(map[string]value.Value, len(joints))
	for name, angle := range joints {
		fields[name] = value.Float(angle)
	}
	return value.Record(fields)
}

// evalURDFNode dispatches UrdfIkPosition/UrdfIkPose/UrdfFk to the
// runtime's configured solver, failing if none was supplied — this is
// the "optional feature" boundary of §4.4/§6.4.
func evalURDFNode(rt *GraphRuntime, node *NodeSpec, inputs map[string]PortValue) (map[string]PortValue, error) {
	if rt.urdfSolver == nil {
		return nil, &value.InvalidValueError{Reason: node.ID + " requires a UrdfIKSolver but none was configured on the runtime"}
	}
	key := "urdfik:" + node.ID
	wantHash := hashURDFConfig(node.Params.UrdfXML, node.Params.RootLink, node.Params.TipLink)
	if cached, ok := rt.state[key].(*ikCacheEntry); !ok || cached.hash != wantHash {
		rt.state[key] = &ikCacheEntry{hash: wantHash}
	}

	switch node.Kind {
	case KindUrdfIkPosition:
		target := asVec3(input(inputs, "target"))
		joints, err := rt.urdfSolver.SolvePosition(node.Params.UrdfXML, node.Params.RootLink, node.Params.TipLink, target, nil)
		if err != nil {
			return nil, err
		}
		return single(urdfJointRecord(joints)), nil
	case KindUrdfIkPose:
		targetPos := asVec3(input(inputs, "target_position"))
		rot, _ := input(inputs, "target_rotation").AsQuat()
		joints, err := rt.urdfSolver.SolvePose(node.Params.UrdfXML, node.Params.RootLink, node.Params.TipLink, targetPos, rot, nil)
		if err != nil {
			return nil, err
		}
		return single(urdfJointRecord(joints)), nil
	case KindUrdfFk:
		joints := map[string]float64{}
		if rec, ok := input(inputs, "joints").AsRecord(); ok {
			for name, v := range rec {
				joints[name] = asFloat(v)
			}
		}
		pos, rot, err := rt.urdfSolver.ForwardKinematics(node.Params.UrdfXML, node.Params.RootLink, node.Params.TipLink, joints)
		if err != nil {
			return nil, err
		}
		return map[string]PortValue{
			"position": portOf(value.Vec3(pos)),
			"rotation": portOf(value.Quat(rot)),
		}, nil
	default:
		return nil, &NotFoundError{Kind: "node kind", ID: string(node.Kind)}
	}
}
