// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"sort"
	"strconv"
	"strings"
)

// variadicKey is one input port matched against the `name_<index>`
// pattern (§4.4).
type variadicKey struct {
	name   string
	prefix string
	index  int
}

// parseVariadicKey splits a port name into its prefix and trailing
// numeric index, e.g. "operands_12" -> ("operands", 12). Returns ok=false
// if the name has no trailing `_<digits>` suffix.
func parseVariadicKey(name string) (prefix string, index int, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 || i == len(name)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return name[:i], n, true
}

// gatherVariadic collects every key in values whose name matches prefix's
// `prefix_<index>` pattern and returns them sorted by index ascending
// (numeric comparison, so `_2` precedes `_10`) — required for
// order-sensitive nodes (Add, Join, Case) per §4.4.
func gatherVariadic(values map[string]PortValue, prefix string) []PortValue {
	var keys []variadicKey
	for name := range values {
		p, idx, ok := parseVariadicKey(name)
		if !ok || p != prefix {
			continue
		}
		keys = append(keys, variadicKey{name: name, prefix: p, index: idx})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].index < keys[j].index })
	out := make([]PortValue, len(keys))
	for i, k := range keys {
		out[i] = values[k.name]
	}
	return out
}
