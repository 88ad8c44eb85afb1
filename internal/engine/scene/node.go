package scene

import (
	"github.com/Faultbox/wikiwalk/internal/engine/picking"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Transform is a node's position, rotation and scale relative to its parent.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform returns a transform that changes nothing.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.V3(1, 1, 1)}
}

// Matrix returns the local transform matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// RenderState holds the per-node flags the renderer reads.
type RenderState struct {
	Visible     bool
	DepthTest   bool
	DepthWrite  bool
	RenderOrder int
}

// DefaultRenderState is how ordinary scene geometry is drawn.
func DefaultRenderState() RenderState {
	return RenderState{Visible: true, DepthTest: true, DepthWrite: true}
}

// InteractiveKind tags what a node does when the player aims at it.
type InteractiveKind int

const (
	NotInteractive InteractiveKind = iota
	InteractiveDoor
	InteractivePickable
	InteractiveAction
)

// Interactive is the tagged union attached to interactive surfaces:
// Door(id) | Pickable(id) | ActionButton(action).
type Interactive struct {
	Kind   InteractiveKind
	ID     string
	Action room.Action
}

// Door tags a door surface.
func Door(id string) Interactive { return Interactive{Kind: InteractiveDoor, ID: id} }

// Pickable tags an object that can be held.
func Pickable(id string) Interactive { return Interactive{Kind: InteractivePickable, ID: id} }

// ActionButton tags a wall button.
func ActionButton(id string, action room.Action) Interactive {
	return Interactive{Kind: InteractiveAction, ID: id, Action: action}
}

// Node is one element of the scene graph.
type Node struct {
	Name        string
	Transform   Transform
	Render      RenderState
	Interactive Interactive

	// LocalBounds is only meaningful when HasBounds is set.
	LocalBounds picking.AABB
	HasBounds   bool

	parent    *Node
	children  []*Node
	resources []Resource
}

// NewNode creates a detached node with identity transform and default render state.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: IdentityTransform(),
		Render:    DefaultRenderState(),
	}
}

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Add attaches child to n at the end of its child list, detaching it from any
// previous parent first. The child's local transform is kept as is.
func (n *Node) Add(child *Node) {
	n.Insert(child, len(n.children))
}

// Insert attaches child at index (clamped to the child list).
func (n *Node) Insert(child *Node, index int) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	index = max(0, min(index, len(n.children)))
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
}

// Detach removes n from its parent. Detaching a root is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// Index returns n's position among its parent's children, or -1.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return n.parent.indexOf(n)
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// WorldMatrix returns the product of every transform from the root down to n.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.Transform.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.Matrix().Mul(m)
	}
	return m
}

// WorldBounds returns the union of the world-space bounds of n and all its
// descendants. ok is false when nothing in the subtree has bounds.
func (n *Node) WorldBounds() (box picking.AABB, ok bool) {
	n.walkWorld(n.parentMatrix(), func(node *Node, world math.Mat4) {
		if !node.HasBounds {
			return
		}
		b := node.LocalBounds.Transform(world)
		if !ok {
			box, ok = b, true
			return
		}
		box.Min = box.Min.Min(b.Min)
		box.Max = box.Max.Max(b.Max)
	})
	return box, ok
}

// LocalSubtreeBounds returns the bounds of n's subtree expressed in n's own
// space, ignoring n's transform and ancestors.
func (n *Node) LocalSubtreeBounds() (box picking.AABB, ok bool) {
	n.walkLocal(math.Identity(), true, func(node *Node, m math.Mat4) {
		if !node.HasBounds {
			return
		}
		b := node.LocalBounds.Transform(m)
		if !ok {
			box, ok = b, true
			return
		}
		box.Min = box.Min.Min(b.Min)
		box.Max = box.Max.Max(b.Max)
	})
	return box, ok
}

func (n *Node) parentMatrix() math.Mat4 {
	if n.parent == nil {
		return math.Identity()
	}
	return n.parent.WorldMatrix()
}

func (n *Node) walkWorld(parent math.Mat4, fn func(*Node, math.Mat4)) {
	world := parent.Mul(n.Transform.Matrix())
	fn(n, world)
	for _, c := range n.children {
		c.walkWorld(world, fn)
	}
}

func (n *Node) walkLocal(m math.Mat4, root bool, fn func(*Node, math.Mat4)) {
	if !root {
		m = m.Mul(n.Transform.Matrix())
	}
	fn(n, m)
	for _, c := range n.children {
		c.walkLocal(m, false, fn)
	}
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// InteractiveAncestor returns n or its nearest ancestor that carries an
// Interactive tag.
func (n *Node) InteractiveAncestor() (*Node, bool) {
	for p := n; p != nil; p = p.parent {
		if p.Interactive.Kind != NotInteractive {
			return p, true
		}
	}
	return nil, false
}

// Own registers a resource that is disposed together with the node.
func (n *Node) Own(r Resource) {
	if r != nil {
		n.resources = append(n.resources, r)
	}
}

// Snapshot records everything about a node that holding it changes.
type Snapshot struct {
	Parent    *Node
	Index     int
	Transform Transform
	Render    RenderState
}

// Capture returns n's current parent, sibling position, transform and render state.
func Capture(n *Node) Snapshot {
	return Snapshot{
		Parent:    n.parent,
		Index:     n.Index(),
		Transform: n.Transform,
		Render:    n.Render,
	}
}

// Restore puts n back exactly where Capture found it.
func (s Snapshot) Restore(n *Node) {
	if s.Parent != nil {
		s.Parent.Insert(n, s.Index)
	} else {
		n.Detach()
	}
	n.Transform = s.Transform
	n.Render = s.Render
}
