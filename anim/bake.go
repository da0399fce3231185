// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import (
	"math"

	"github.com/galvanized/animrt/value"
)

// BakeConfig parametrizes Bake (§6.2).
type BakeConfig struct {
	FrameRate float64
	StartTime float64
	EndTime   *float64 // defaults to the clip's duration
}

// BakedTrack holds one target path's per-frame sampled values.
type BakedTrack struct {
	TargetPath string
	Values     []value.Value
}

// BakedDerivativeTrack holds one target path's per-frame derivative
// samples; an entry is nil where no derivative applies (§9).
type BakedDerivativeTrack struct {
	TargetPath string
	Values     []*value.Value
}

// BakedAnimation is the frame-rate-quantized export of a clip (§6.2).
type BakedAnimation struct {
	AnimationID    string
	FrameRate      float64
	StartTime      float64
	EndTime        float64
	FrameDuration  float64
	FrameCount     int
	Tracks         []BakedTrack
	Derivatives    []BakedDerivativeTrack
}

// Bake samples every track of clip at cfg.FrameRate between cfg.StartTime
// and cfg.EndTime (clip.Duration if unset), clamping the last frame to
// EndTime (§6.2). includeDerivatives additionally bakes a derivative
// track per target using derivativeWidth as the finite-difference width.
func Bake(clip *Clip, cfg BakeConfig, defaultParams map[InterpolationKind]Params, derivativeWidth float64, includeDerivatives bool) (BakedAnimation, error) {
	end := clip.Duration
	if cfg.EndTime != nil {
		end = *cfg.EndTime
	}
	if cfg.FrameRate <= 0 {
		return BakedAnimation{}, &value.InvalidValueError{Reason: "bake frame_rate must be positive"}
	}
	frameDuration := 1.0 / cfg.FrameRate
	frameCount := int(math.Ceil((end-cfg.StartTime)*cfg.FrameRate)) + 1
	if frameCount < 1 {
		frameCount = 1
	}

	baked := BakedAnimation{
		AnimationID:   clip.ID,
		FrameRate:     cfg.FrameRate,
		StartTime:     cfg.StartTime,
		EndTime:       end,
		FrameDuration: frameDuration,
		FrameCount:    frameCount,
	}

	for _, tr := range clip.Tracks {
		bt := BakedTrack{TargetPath: tr.TargetPath, Values: make([]value.Value, frameCount)}
		var bd BakedDerivativeTrack
		if includeDerivatives {
			bd = BakedDerivativeTrack{TargetPath: tr.TargetPath, Values: make([]*value.Value, frameCount)}
		}
		for i := 0; i < frameCount; i++ {
			t := cfg.StartTime + float64(i)*frameDuration
			if i == frameCount-1 {
				t = end
			}
			if includeDerivatives {
				v, d, err := SampleWithDerivative(tr, t, derivativeWidth)
				if err != nil {
					return BakedAnimation{}, err
				}
				bt.Values[i] = v
				bd.Values[i] = d
			} else {
				v, _, err := Sample(tr, t, defaultParams[tr.Settings.Interpolation])
				if err != nil {
					return BakedAnimation{}, err
				}
				bt.Values[i] = v
			}
		}
		baked.Tracks = append(baked.Tracks, bt)
		if includeDerivatives {
			baked.Derivatives = append(baked.Derivatives, bd)
		}
	}
	return baked, nil
}

// Bake is also exposed as an Engine method for convenience, using the
// engine's clip registry and default interpolation/derivative settings.
func (e *Engine) Bake(animationID string, cfg BakeConfig, includeDerivatives bool) (BakedAnimation, error) {
	clip, err := e.Clip(animationID)
	if err != nil {
		return BakedAnimation{}, err
	}
	return Bake(clip, cfg, e.defaultParams, e.derivativeWidth, includeDerivatives)
}
