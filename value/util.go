// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package value

import "math"

func nan() float64 { return math.NaN() }

// IsNaN reports whether f is NaN, exported so callers composing graph
// node output don't need to import math themselves for this one check.
func IsNaN(f float64) bool { return math.IsNaN(f) }
