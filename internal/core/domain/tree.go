package domain

import (
	"cmp"
	"iter"
	"slices"
)

// NodeID addresses a node inside a Tree.
type NodeID int

// NoNode is returned where no node exists.
const NoNode NodeID = -1

const (
	// AutoSize marks a node whose display size is derived from its children.
	AutoSize = 0.0
	// MinLeafSize is the smallest display size given to a leaf.
	MinLeafSize = 1.0
)

const noPayload = -1

// Node is the display data of a tree node.
type Node struct {
	Name        string
	Name2       string
	CenterText  string
	LogicalName string
	Size        float64

	parent   NodeID
	children []NodeID
	payload  int
	self     bool
}

// Tree is an arena of nodes addressed by index.
// Parents are stored as indices so moving a node never copies its subtree.
// Payloads live in a side table so several nodes can share one.
type Tree struct {
	nodes    []Node
	payloads []NodePayload
}

// NewTree creates a tree holding only its root.
func NewTree() *Tree {
	return &Tree{
		nodes: []Node{{parent: NoNode, payload: noPayload}},
	}
}

// Root returns the overall root of the tree.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for display updates.
// The pointer is invalidated by the next AddChild.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// AddChild appends a new node to parent's children and returns it.
func (t *Tree) AddChild(parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{parent: parent, payload: noPayload})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// Reparent moves id, with its subtree, to the end of newParent's children.
func (t *Tree) Reparent(id, newParent NodeID) {
	old := t.nodes[id].parent
	if old != NoNode {
		siblings := t.nodes[old].children
		if i := slices.Index(siblings, id); i >= 0 {
			t.nodes[old].children = slices.Delete(siblings, i, i+1)
		}
	}
	t.nodes[newParent].children = append(t.nodes[newParent].children, id)
	t.nodes[id].parent = newParent
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns a copy of the children of id in display order.
func (t *Tree) Children(id NodeID) []NodeID {
	return slices.Clone(t.nodes[id].children)
}

// IsLeaf reports whether id has no children other than a self node.
func (t *Tree) IsLeaf(id NodeID) bool {
	for _, c := range t.nodes[id].children {
		if !t.nodes[c].self {
			return false
		}
	}
	return true
}

// RootLevelAncestor walks up from id to the node directly below the overall root.
// It returns NoNode for the overall root itself.
func (t *Tree) RootLevelAncestor(id NodeID) NodeID {
	if t.nodes[id].parent == NoNode {
		return NoNode
	}
	for t.nodes[t.nodes[id].parent].parent != NoNode {
		id = t.nodes[id].parent
	}
	return id
}

// SetPayload stores a new payload for id.
func (t *Tree) SetPayload(id NodeID, p NodePayload) {
	if idx := t.nodes[id].payload; idx != noPayload {
		t.payloads[idx] = p
		return
	}
	t.nodes[id].payload = len(t.payloads)
	t.payloads = append(t.payloads, p)
}

// SharePayload makes id alias the payload of from.
func (t *Tree) SharePayload(id, from NodeID) {
	t.nodes[id].payload = t.nodes[from].payload
}

// Payload returns the payload of id.
func (t *Tree) Payload(id NodeID) (NodePayload, bool) {
	idx := t.nodes[id].payload
	if idx == noPayload {
		return NodePayload{}, false
	}
	return t.payloads[idx], true
}

// AddSelf appends a self node to container, aliasing its payload.
func (t *Tree) AddSelf(container NodeID) NodeID {
	id := t.AddChild(container)
	t.nodes[id].self = true
	t.SharePayload(id, container)
	return id
}

// SelfNode returns the self node of container, or NoNode.
func (t *Tree) SelfNode(container NodeID) NodeID {
	for _, c := range t.nodes[container].children {
		if t.nodes[c].self {
			return c
		}
	}
	return NoNode
}

// IsSelf reports whether id represents its parent's own footprint.
func (t *Tree) IsSelf(id NodeID) bool {
	return t.nodes[id].self
}

// SortChildren orders the children of id by name, keeping the relative order of equal names.
func (t *Tree) SortChildren(id NodeID) {
	slices.SortStableFunc(t.nodes[id].children, func(a, b NodeID) int {
		return cmp.Compare(t.nodes[a].Name, t.nodes[b].Name)
	})
}

// Walk yields every node in pre-order together with its depth. The root has depth 0.
func (t *Tree) Walk() iter.Seq2[NodeID, int] {
	return func(yield func(NodeID, int) bool) {
		t.walk(t.Root(), 0, yield)
	}
}

func (t *Tree) walk(id NodeID, depth int, yield func(NodeID, int) bool) bool {
	if !yield(id, depth) {
		return false
	}
	for _, c := range t.nodes[id].children {
		if !t.walk(c, depth+1, yield) {
			return false
		}
	}
	return true
}
