// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import "sort"

// CycleError reports the ids of every node TopologicalOrder could not
// order (§4.4: "Cycles ⇒ fail with the set of nodes involved"): nodes on
// a cycle, nodes downstream of one, and nodes with an input whose source
// node is not in the spec.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	s := "graph: cycle detected among nodes ["
	for i, id := range e.Nodes {
		if i > 0 {
			s += ", "
		}
		s += id
	}
	return s + "]"
}

// TopologicalOrder computes an evaluation order over spec's nodes via
// Kahn's algorithm on the edges implied by each node's Inputs. Within a
// ready level, nodes are ordered by id for reproducibility across
// identical specs on the same host (§4.4).
func TopologicalOrder(spec *GraphSpec) ([]string, error) {
	indegree := map[string]int{}
	dependents := map[string][]string{}
	for _, n := range spec.Nodes {
		if _, ok := indegree[n.ID]; !ok {
			indegree[n.ID] = 0
		}
		seen := map[string]bool{}
		for _, conn := range n.Inputs {
			if seen[conn.SourceNodeID] {
				continue
			}
			seen[conn.SourceNodeID] = true
			indegree[n.ID]++
			dependents[conn.SourceNodeID] = append(dependents[conn.SourceNodeID], n.ID)
		}
	}

	var ready []string
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		sort.Strings(ready)
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		var newlyReady []string
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				newlyReady = append(newlyReady, dep)
			}
		}
		sort.Strings(newlyReady)
		ready = append(ready, newlyReady...)
	}

	if len(order) != len(indegree) {
		var cyclic []string
		for id, d := range indegree {
			if d > 0 {
				cyclic = append(cyclic, id)
			}
		}
		sort.Strings(cyclic)
		return nil, &CycleError{Nodes: cyclic}
	}
	return order, nil
}
