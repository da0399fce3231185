// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package blackboard

import (
	"sync"

	"github.com/galvanized/animrt/value"
	"github.com/google/uuid"
)

// NodeID globally identifies a node within a Blackboard (§3.4).
type NodeID = uuid.UUID

// node is the common shape every blackboard node satisfies; concrete
// nodes are *pathNode (interior namespace) or *itemNode (leaf), matching
// the source's ArcABBNode::{Path, Item} split — each with its own mutex
// rather than one shared lock (§5.3).
type node interface {
	nodeID() NodeID
	parentID() (NodeID, bool)
	setParent(id NodeID)
}

// pathNode is an interior namespace node: an ordered name→id map plus a
// back-reference to its parent (§3.4). Its own mutex guards the map.
type pathNode struct {
	mu       sync.Mutex
	id       NodeID
	name     string
	parent   NodeID
	hasParentFlag bool
	children map[string]NodeID
	order    []string
}

func newPathNode(id NodeID, name string) *pathNode {
	return &pathNode{id: id, name: name, children: map[string]NodeID{}}
}

func (p *pathNode) nodeID() NodeID { return p.id }

func (p *pathNode) parentID() (NodeID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parent, p.hasParentFlag
}

func (p *pathNode) setParent(id NodeID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parent = id
	p.hasParentFlag = true
}

// childID returns the id mapped to name, if any.
func (p *pathNode) childID(name string) (NodeID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.children[name]
	return id, ok
}

// addChild records a new name→id mapping, preserving insertion order for
// deterministic get_keyvalue traversal (§3.4, §4.6).
func (p *pathNode) addChild(name string, id NodeID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.children[name]; !exists {
		p.order = append(p.order, name)
	}
	p.children[name] = id
}

// childEntry is one name→id mapping returned by childrenSnapshot.
type childEntry struct {
	Name string
	ID   NodeID
}

// childrenSnapshot returns a name→id copy in insertion order.
func (p *pathNode) childrenSnapshot() []childEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]childEntry, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, childEntry{Name: name, ID: p.children[name]})
	}
	return out
}

// itemNode is a leaf node carrying a typed Value (§3.4). Its own mutex
// guards the value slot.
type itemNode struct {
	mu     sync.Mutex
	id     NodeID
	name   string
	parent NodeID
	shape  value.Shape
	val    value.Value
}

func newItemNode(id NodeID, name string, v value.Value) *itemNode {
	return &itemNode{id: id, name: name, val: v, shape: value.InferShape(v)}
}

func (it *itemNode) nodeID() NodeID { return it.id }

func (it *itemNode) parentID() (NodeID, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.parent, true
}

func (it *itemNode) setParent(id NodeID) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.parent = id
}

// get returns a snapshot copy of the item's current value and shape.
func (it *itemNode) get() (value.Value, value.Shape) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.val, it.shape
}

// compatible reports whether v has the same ValueType as this item's
// current value; no implicit numeric promotion is performed (§4.6).
func (it *itemNode) compatible(v value.Value) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.val.Type() == v.Type()
}

// set assigns v, returning false if the assignment was a no-op (same
// value already held) per the idempotency rule of §4.6.
func (it *itemNode) set(v value.Value) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	if value.Equal(it.val, v) {
		return false
	}
	it.val = v
	it.shape = value.InferShape(v)
	return true
}
