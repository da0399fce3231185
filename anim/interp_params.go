// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

// ParamDef documents one tunable of an interpolator: its name, default,
// and (if bounded) its valid range. Supplemented from the original
// implementation's per-interpolator parameter schema (dropped by the
// distilled spec, which only lists the closed-form math) so hosts can
// build parameter editors generically instead of hard-coding per-kind UI.
type ParamDef struct {
	Name    string
	Default float64
	Min     *float64
	Max     *float64
}

// ParameterSchema lists the tunables accepted by one InterpolationKind.
type ParameterSchema struct {
	Kind   InterpolationKind
	Params []ParamDef
}

func bounded(lo, hi float64) (*float64, *float64) {
	l, h := lo, hi
	return &l, &h
}

// Schemas is the registry of parameter schemas for every interpolation
// kind, indexed by kind.
var Schemas = map[InterpolationKind]ParameterSchema{
	Linear: {Kind: Linear},
	Cubic:  {Kind: Cubic},
	EaseIn: {Kind: EaseIn},
	EaseOut: {Kind: EaseOut},
	EaseInOut: {Kind: EaseInOut},
	Step: {Kind: Step, Params: []ParamDef{
		func() ParamDef {
			lo, hi := bounded(0, 1)
			return ParamDef{Name: "threshold", Default: 1.0, Min: lo, Max: hi}
		}(),
	}},
	Bezier: {Kind: Bezier, Params: func() []ParamDef {
		x1lo, x1hi := bounded(0, 1)
		x2lo, x2hi := bounded(0, 1)
		return []ParamDef{
			{Name: "x1", Default: 0.25, Min: x1lo, Max: x1hi},
			{Name: "y1", Default: 0.1},
			{Name: "x2", Default: 0.25, Min: x2lo, Max: x2hi},
			{Name: "y2", Default: 1.0},
		}
	}()},
	Spring: {Kind: Spring, Params: []ParamDef{
		{Name: "damping", Default: 20.0},
		{Name: "stiffness", Default: 100.0},
	}},
}
