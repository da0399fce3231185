// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

// yaml.go loads clip descriptions from disk, the way load/shd.go loads
// shader descriptions: read bytes, yaml.Unmarshal into a config struct,
// wrap errors with the loading function's name.

import (
	"fmt"

	"github.com/galvanized/animrt/value"
	"gopkg.in/yaml.v3"
)

type clipConfig struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Duration float64           `yaml:"duration"`
	Metadata map[string]string `yaml:"metadata"`
	Tracks   []trackConfig     `yaml:"tracks"`
}

type trackConfig struct {
	ID            string            `yaml:"id"`
	Target        string            `yaml:"target"`
	Interpolation string            `yaml:"interpolation"`
	Weight        float64           `yaml:"weight"`
	Params        paramsConfig      `yaml:"params"`
	Points        []keypointConfig  `yaml:"points"`
}

type paramsConfig struct {
	Threshold       *float64 `yaml:"threshold"`
	X1              *float64 `yaml:"x1"`
	Y1              *float64 `yaml:"y1"`
	X2              *float64 `yaml:"x2"`
	Y2              *float64 `yaml:"y2"`
	Damping         *float64 `yaml:"damping"`
	Stiffness       *float64 `yaml:"stiffness"`
}

type keypointConfig struct {
	ID    string      `yaml:"id"`
	Time  float64     `yaml:"time"`
	Value valueConfig `yaml:"value"`
}

// valueConfig is the YAML counterpart to value/json.go's wireValue: a tagged
// object covering the variants a clip's keyframe data realistically
// carries (scalars, small vectors, quaternion, color, transform, bool,
// text). Record/array/list/tuple/enum keypoints are not supported at this
// boundary — tracks target a single typed destination, not a compound one.
type valueConfig struct {
	Type        string     `yaml:"type"`
	Float       *float64   `yaml:"value"`
	Bool        *bool      `yaml:"bool"`
	Text        *string    `yaml:"text"`
	Vec         []float64  `yaml:"vec"`
	Translation []float64  `yaml:"translation"`
	Rotation    []float64  `yaml:"rotation"`
	Scale       []float64  `yaml:"scale"`
}

func (v valueConfig) toValue() (value.Value, error) {
	switch v.Type {
	case "Float":
		if v.Float == nil {
			return value.Value{}, &LoadError{Reason: "missing 'value' for Float keypoint"}
		}
		return value.Float(*v.Float), nil
	case "Bool":
		if v.Bool == nil {
			return value.Value{}, &LoadError{Reason: "missing 'bool' for Bool keypoint"}
		}
		return value.Bool(*v.Bool), nil
	case "Text":
		if v.Text == nil {
			return value.Value{}, &LoadError{Reason: "missing 'text' for Text keypoint"}
		}
		return value.Text(*v.Text), nil
	case "Vec2":
		if len(v.Vec) != 2 {
			return value.Value{}, &LoadError{Reason: "Vec2 keypoint needs exactly 2 components"}
		}
		return value.Vec2([2]float64{v.Vec[0], v.Vec[1]}), nil
	case "Vec3":
		if len(v.Vec) != 3 {
			return value.Value{}, &LoadError{Reason: "Vec3 keypoint needs exactly 3 components"}
		}
		return value.Vec3([3]float64{v.Vec[0], v.Vec[1], v.Vec[2]}), nil
	case "Vec4":
		if len(v.Vec) != 4 {
			return value.Value{}, &LoadError{Reason: "Vec4 keypoint needs exactly 4 components"}
		}
		return value.Vec4([4]float64{v.Vec[0], v.Vec[1], v.Vec[2], v.Vec[3]}), nil
	case "Quat":
		if len(v.Vec) != 4 {
			return value.Value{}, &LoadError{Reason: "Quat keypoint needs exactly 4 components"}
		}
		return value.Quat([4]float64{v.Vec[0], v.Vec[1], v.Vec[2], v.Vec[3]}), nil
	case "ColorRgba":
		if len(v.Vec) != 4 {
			return value.Value{}, &LoadError{Reason: "ColorRgba keypoint needs exactly 4 components"}
		}
		return value.ColorRgba([4]float64{v.Vec[0], v.Vec[1], v.Vec[2], v.Vec[3]}), nil
	case "Transform":
		if len(v.Translation) != 3 || len(v.Rotation) != 4 || len(v.Scale) != 3 {
			return value.Value{}, &LoadError{Reason: "Transform keypoint needs translation(3)/rotation(4)/scale(3)"}
		}
		return value.TransformVal(value.Transform{
			Translation: [3]float64{v.Translation[0], v.Translation[1], v.Translation[2]},
			Rotation:    [4]float64{v.Rotation[0], v.Rotation[1], v.Rotation[2], v.Rotation[3]},
			Scale:       [3]float64{v.Scale[0], v.Scale[1], v.Scale[2]},
		}), nil
	default:
		return value.Value{}, &LoadError{Reason: "unsupported keypoint value type '" + v.Type + "'"}
	}
}

func (p paramsConfig) toParams() Params {
	out := Params{}
	if p.Threshold != nil {
		out.Threshold = *p.Threshold
	}
	if p.X1 != nil {
		out.BezierX1 = *p.X1
	}
	if p.Y1 != nil {
		out.BezierY1 = *p.Y1
	}
	if p.X2 != nil {
		out.BezierX2 = *p.X2
	}
	if p.Y2 != nil {
		out.BezierY2 = *p.Y2
	}
	if p.Damping != nil {
		out.SpringDamping = *p.Damping
	}
	if p.Stiffness != nil {
		out.SpringStiffness = *p.Stiffness
	}
	return out
}

// LoadClipYAML parses a clip description from YAML bytes.
func LoadClipYAML(data []byte) (clip *Clip, err error) {
	var cfg clipConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("LoadClipYAML: yaml %w", err)
	}
	clip = NewClip(cfg.ID, cfg.Name, cfg.Duration)
	for k, v := range cfg.Metadata {
		clip.Metadata[k] = v
	}
	for _, tc := range cfg.Tracks {
		track := NewTrack(tc.ID, tc.Target)
		if tc.Interpolation != "" {
			kind, ok := ParseInterpolationKind(tc.Interpolation)
			if !ok {
				return nil, &LoadError{Reason: "unknown interpolation kind '" + tc.Interpolation + "' on track " + tc.ID}
			}
			track.Settings.Interpolation = kind
		}
		track.Settings.Params = tc.Params.toParams()
		if tc.Weight != 0 {
			track.Settings.Weight = tc.Weight
		}
		for _, kc := range tc.Points {
			v, err := kc.Value.toValue()
			if err != nil {
				return nil, fmt.Errorf("LoadClipYAML: track %s keypoint %s: %w", tc.ID, kc.ID, err)
			}
			track.Insert(Keypoint{ID: kc.ID, Time: kc.Time, Value: v})
		}
		clip.Tracks = append(clip.Tracks, track)
	}
	return clip, nil
}
