// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import "testing"

const sampleClipYAML = `
id: walk
name: Walk Cycle
duration: 1.0
metadata:
  author: test
tracks:
  - id: t1
    target: root.position.x
    interpolation: linear
    points:
      - id: k0
        time: 0
        value:
          type: Float
          value: 0
      - id: k1
        time: 1
        value:
          type: Float
          value: 1
`

func TestLoadClipYAMLRoundtrip(t *testing.T) {
	clip, err := LoadClipYAML([]byte(sampleClipYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.ID != "walk" || clip.Name != "Walk Cycle" {
		t.Errorf("unexpected clip identity: %+v", clip)
	}
	if clip.Metadata["author"] != "test" {
		t.Errorf("expected metadata to round-trip, got %v", clip.Metadata)
	}
	if len(clip.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(clip.Tracks))
	}
	tr := clip.Tracks[0]
	if tr.TargetPath != "root.position.x" {
		t.Errorf("unexpected target path %q", tr.TargetPath)
	}
	if tr.Settings.Interpolation != Linear {
		t.Errorf("expected Linear interpolation, got %v", tr.Settings.Interpolation)
	}
	if len(tr.Points) != 2 {
		t.Fatalf("expected 2 keypoints, got %d", len(tr.Points))
	}
}

func TestLoadClipYAMLUnknownInterpolationFails(t *testing.T) {
	bad := `
id: c1
name: c
duration: 1
tracks:
  - id: t1
    target: x
    interpolation: nonexistent
    points:
      - time: 0
        value: {type: Float, value: 0}
`
	_, err := LoadClipYAML([]byte(bad))
	if err == nil {
		t.Fatal("expected error for unknown interpolation kind")
	}
}

func TestLoadClipYAMLMalformedYAMLFails(t *testing.T) {
	_, err := LoadClipYAML([]byte("not: [valid: yaml"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadClipYAMLMissingValueFieldFails(t *testing.T) {
	bad := `
id: c1
name: c
duration: 1
tracks:
  - id: t1
    target: x
    points:
      - time: 0
        value: {type: Float}
`
	_, err := LoadClipYAML([]byte(bad))
	if err == nil {
		t.Fatal("expected error for missing Float value field")
	}
}
