// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package blackboard

import "strings"

// SplitPath splits a dot-separated path into its non-empty segments.
// SplitPath("") returns an empty, invalid-target slice (§4.6).
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' })
}

// JoinPath is SplitPath's inverse.
func JoinPath(segments []string) string {
	return strings.Join(segments, ".")
}
