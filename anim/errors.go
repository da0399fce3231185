// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package anim

import "fmt"

// NotFoundError reports a lookup failure for a clip, player, or instance
// by the identity the caller used to look it up.
type NotFoundError struct {
	Kind string // "clip", "player", or "instance"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("anim: %s %q not found", e.Kind, e.ID)
}

// InvalidStateError reports an illegal playback_state transition request
// (§4.3's legal-transition table).
type InvalidStateError struct {
	Current   PlaybackState
	Requested PlaybackState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("anim: cannot transition from %s to %s", e.Current, e.Requested)
}

// LoadError wraps a clip-loading failure (YAML parse, malformed track data).
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return "anim: load: " + e.Reason }

// ClipInUseError reports an attempt to unload a clip still referenced by
// a player instance (§3.2: "unloading a clip while referenced is an
// error").
type ClipInUseError struct {
	ClipID   string
	PlayerID string
}

func (e *ClipInUseError) Error() string {
	return fmt.Sprintf("anim: clip %q still referenced by player %q", e.ClipID, e.PlayerID)
}
