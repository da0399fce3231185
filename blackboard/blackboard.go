// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package blackboard implements a shared, path-addressed store of typed
// values, organized as a tree of namespace (Path) and leaf (Item) nodes
// (§3.4).
package blackboard

import (
	"sort"
	"sync"

	"github.com/galvanized/animrt/value"
	"github.com/google/uuid"
)

// Blackboard owns the set of nodes keyed by id and designates one Path as
// root. The id→node map is guarded by a single read-write lock; readers
// are not blocked by other readers (§5.3). Each node additionally guards
// its own name→id map or value slot with its own mutex.
type Blackboard struct {
	mu    sync.RWMutex
	nodes map[NodeID]node
	root  NodeID
}

// New constructs an empty blackboard with a freshly minted root Path.
func New() *Blackboard {
	rootID := uuid.New()
	bb := &Blackboard{nodes: map[NodeID]node{}, root: rootID}
	bb.nodes[rootID] = newPathNode(rootID, "root")
	return bb
}

// RootID returns the blackboard's root Path node id.
func (b *Blackboard) RootID() NodeID { return b.root }

func (b *Blackboard) nodeByID(id NodeID) (node, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.nodes[id]
	return n, ok
}

// resolvePath walks Path nodes from root following segments, returning
// the id and node of the final segment. Walking into an Item with
// segments remaining is an error (§4.6).
func (b *Blackboard) resolvePath(segments []string) (NodeID, node, error) {
	cur := b.root
	curNode, _ := b.nodeByID(cur)
	for _, seg := range segments {
		p, ok := curNode.(*pathNode)
		if !ok {
			return uuid.Nil, nil, &PathError{Path: JoinPath(segments), Kind: PathIsLeaf}
		}
		childID, ok := p.childID(seg)
		if !ok {
			return uuid.Nil, nil, &NotFoundError{Kind: "path segment", ID: seg}
		}
		cur = childID
		curNode, ok = b.nodeByID(cur)
		if !ok {
			return uuid.Nil, nil, &NotFoundError{Kind: "node", ID: cur.String()}
		}
	}
	return cur, curNode, nil
}

// Get resolves path to a node id and a snapshot Value. path must
// terminate at an Item; resolving into a Path returns PathIsNamespace.
func (b *Blackboard) Get(path string) (NodeID, value.Value, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return uuid.Nil, value.Value{}, &PathError{Path: path, Kind: PathEmpty}
	}
	id, n, err := b.resolvePath(segments)
	if err != nil {
		return uuid.Nil, value.Value{}, err
	}
	item, ok := n.(*itemNode)
	if !ok {
		return uuid.Nil, value.Value{}, &PathError{Path: path, Kind: PathIsNamespace}
	}
	v, _ := item.get()
	return id, v, nil
}

// GetKeyValue materializes path's subtree as a record: Items become
// fields, Paths recurse. Cycles cannot occur (tree, not graph), so no
// visited-set is needed (§4.6).
func (b *Blackboard) GetKeyValue(path string) (value.Value, error) {
	segments := SplitPath(path)
	var id NodeID
	var n node
	var err error
	if len(segments) == 0 {
		id, n = b.root, mustNode(b, b.root)
	} else {
		id, n, err = b.resolvePath(segments)
		if err != nil {
			return value.Value{}, err
		}
	}
	return b.materialize(id, n), nil
}

func mustNode(b *Blackboard, id NodeID) node {
	n, _ := b.nodeByID(id)
	return n
}

func (b *Blackboard) materialize(id NodeID, n node) value.Value {
	switch t := n.(type) {
	case *itemNode:
		v, _ := t.get()
		return v
	case *pathNode:
		children := t.childrenSnapshot()
		fields := make(map[string]value.Value, len(children))
		for _, c := range children {
			childNode, ok := b.nodeByID(c.ID)
			if !ok {
				continue
			}
			fields[c.Name] = b.materialize(c.ID, childNode)
		}
		return value.Record(fields)
	default:
		return value.Value{}
	}
}

// Set assigns value at path, creating intermediate Path nodes and a fresh
// leaf id as needed. See SetWithID to supply an id hint for newly created
// leaves (§4.6).
func (b *Blackboard) Set(path string, v value.Value) error {
	return b.SetWithID(path, v, uuid.Nil)
}

// SetWithID is Set, but a caller-supplied id hint is used for a newly
// created leaf (idHint == uuid.Nil means "mint one"). Re-setting an
// existing leaf preserves its existing id regardless of idHint (§4.6).
func (b *Blackboard) SetWithID(path string, v value.Value, idHint NodeID) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return &PathError{Path: path, Kind: PathEmpty}
	}

	if fields, isRecord := v.AsRecord(); isRecord {
		return b.setRecord(segments, fields)
	}
	return b.setLeaf(segments, v, idHint)
}

// setRecord walks every leaf of a record value, preflighting type
// compatibility against any existing leaves before mutating anything
// (§4.6: "any incompatibility aborts without mutation").
func (b *Blackboard) setRecord(segments []string, fields map[string]value.Value) error {
	type pending struct {
		segs []string
		v    value.Value
	}
	var leaves []pending
	var collect func(prefix []string, fields map[string]value.Value)
	collect = func(prefix []string, fields map[string]value.Value) {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fv := fields[name]
			segs := append(append([]string(nil), prefix...), name)
			if sub, ok := fv.AsRecord(); ok {
				collect(segs, sub)
				continue
			}
			leaves = append(leaves, pending{segs: segs, v: fv})
		}
	}
	collect(segments, fields)

	for _, leaf := range leaves {
		if err := b.preflightLeaf(leaf.segs, leaf.v); err != nil {
			return err
		}
	}
	for _, leaf := range leaves {
		if err := b.setLeaf(leaf.segs, leaf.v, uuid.Nil); err != nil {
			return err
		}
	}
	return nil
}

// preflightLeaf checks, without mutating, that an existing leaf at segs
// is type-compatible with v. A leaf that does not yet exist is always
// compatible (it will be created).
func (b *Blackboard) preflightLeaf(segs []string, v value.Value) error {
	_, n, err := b.resolvePath(segs)
	if _, isNotFound := err.(*NotFoundError); isNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	item, ok := n.(*itemNode)
	if !ok {
		return &PathError{Path: JoinPath(segs), Kind: PathIsNamespace}
	}
	if !item.compatible(v) {
		_, actualShape := item.get()
		return &TypeMismatchError{Path: JoinPath(segs), Expected: actualShape, Actual: value.InferShape(v)}
	}
	return nil
}

// setLeaf assigns v at segs, creating intermediate Path nodes and the
// terminal leaf as needed. Each node's own mutex is held only for the
// single child-map or value-slot operation that needs it, never across
// more than one node at a time, so no lock-ordering discipline is needed
// to avoid deadlock during the walk itself (§5.3's ascending-id ordering
// matters for operations that must hold two node locks at once; see
// DESIGN.md for why this walk doesn't need to).
func (b *Blackboard) setLeaf(segs []string, v value.Value, idHint NodeID) error {
	cur := b.root
	for i, seg := range segs {
		isLast := i == len(segs)-1
		curNode, ok := b.nodeByID(cur)
		if !ok {
			return &NotFoundError{Kind: "node", ID: cur.String()}
		}
		p, ok := curNode.(*pathNode)
		if !ok {
			return &PathError{Path: JoinPath(segs), Kind: PathIsLeaf}
		}
		childID, exists := p.childID(seg)
		if !exists {
			newID := idHint
			if newID == uuid.Nil || !isLast {
				newID = uuid.New()
			}
			var newNode node
			if isLast {
				newNode = newItemNode(newID, seg, v)
			} else {
				newNode = newPathNode(newID, seg)
			}
			newNode.setParent(cur)
			b.mu.Lock()
			b.nodes[newID] = newNode
			b.mu.Unlock()
			p.addChild(seg, newID)
			cur = newID
			continue
		}
		if isLast {
			childNode, ok := b.nodeByID(childID)
			if !ok {
				return &NotFoundError{Kind: "node", ID: childID.String()}
			}
			item, ok := childNode.(*itemNode)
			if !ok {
				return &PathError{Path: JoinPath(segs), Kind: PathIsNamespace}
			}
			if !item.compatible(v) {
				_, actualShape := item.get()
				return &TypeMismatchError{Path: JoinPath(segs), Expected: actualShape, Actual: value.InferShape(v)}
			}
			item.set(v)
			return nil
		}
		cur = childID
	}
	return nil
}
