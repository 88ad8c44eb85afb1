// Package scene holds the node graph of the current room: walls, door
// surfaces, slots, pickables and buttons, with the render flags and owned
// resources the renderer attaches to them.
package scene

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/engine/picking"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Resource is anything a node owns that must be released with the room:
// GPU buffers, textures, decoded images.
type Resource interface {
	Dispose() error
}

// ResourceFunc adapts a function to Resource.
type ResourceFunc func() error

// Dispose calls f.
func (f ResourceFunc) Dispose() error { return f() }

// surfaceDepth is the thickness given to flat wall surfaces so rays can hit them.
const surfaceDepth float32 = 0.05

// Scene is the node graph for one room.
type Scene struct {
	Root *Node

	byName map[string]*Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{Root: NewNode("root"), byName: make(map[string]*Node)}
}

// Add attaches n under parent (the root when parent is nil) and indexes it by name.
func (s *Scene) Add(parent, n *Node) *Node {
	if parent == nil {
		parent = s.Root
	}
	parent.Add(n)
	if n.Name != "" {
		s.byName[n.Name] = n
	}
	return n
}

// Find returns the node registered under name.
func (s *Scene) Find(name string) (*Node, bool) {
	n, ok := s.byName[name]
	return n, ok
}

// Interactives returns every tagged node in the scene, in tree order.
func (s *Scene) Interactives() []*Node {
	var out []*Node
	s.Root.Walk(func(n *Node) {
		if n.Interactive.Kind != NotInteractive {
			out = append(out, n)
		}
	})
	return out
}

// Dispose detaches every node and disposes every owned resource. A failing
// resource does not stop the others; all failures are returned together.
func (s *Scene) Dispose() error {
	if s == nil || s.Root == nil {
		return nil
	}
	var errs error
	var count int
	s.Root.Walk(func(n *Node) {
		for _, r := range n.resources {
			count++
			if err := disposeOne(r); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("node %q: %w", n.Name, err))
			}
		}
		n.resources = nil
	})
	for len(s.Root.children) > 0 {
		s.Root.children[0].Detach()
	}
	s.byName = make(map[string]*Node)

	if errs != nil {
		logger.Warn("scene disposal incomplete",
			zap.Int("resources", count),
			zap.Int("failed", len(multierr.Errors(errs))),
			zap.Error(errs))
	}
	return errs
}

// disposeOne turns a panicking Dispose into an error so one bad resource
// cannot abort the sweep.
func disposeOne(r Resource) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("dispose panicked: %v", p)
		}
	}()
	return r.Dispose()
}

// FromDescriptor builds the interactive scene for a room: one surface node
// per door, slot and action button, and a group per pickable.
func FromDescriptor(d *room.Descriptor) *Scene {
	s := New()
	if d == nil {
		return s
	}

	walls := s.Add(nil, NewNode("walls"))
	for _, id := range room.Walls {
		plane, ok := d.Walls[id]
		if !ok {
			continue
		}
		n := NewNode("wall-" + id.String())
		n.LocalBounds = surfaceBox(plane.Center, plane.Normal, plane.Right, plane.Width, plane.Height, d.WallThickness)
		n.HasBounds = true
		s.Add(walls, n)
	}

	doors := s.Add(nil, NewNode("doors"))
	for _, door := range d.Doors {
		n := NewNode("door-" + door.ID)
		n.Interactive = Door(door.ID)
		n.LocalBounds = surfaceBox(door.Center, door.Normal, d.Walls[door.Wall].Right, door.Width, door.Height, surfaceDepth)
		n.HasBounds = true
		s.Add(doors, n)
	}

	slots := s.Add(nil, NewNode("slots"))
	for _, slot := range d.Slots {
		n := NewNode("slot-" + slot.ID)
		n.LocalBounds = surfaceBox(slot.Center, slot.Normal, d.Walls[slot.Wall].Right, slot.Width, slot.Height, surfaceDepth)
		n.HasBounds = true
		s.Add(slots, n)
	}

	buttons := s.Add(nil, NewNode("actions"))
	for _, a := range d.Actions {
		n := NewNode("action-" + a.ID)
		n.Interactive = ActionButton(a.ID, a.Action)
		n.LocalBounds = surfaceBox(a.Center, a.Normal, d.Walls[a.Wall].Right, a.Width, a.Height, surfaceDepth)
		n.HasBounds = true
		s.Add(buttons, n)
	}

	// Pickables are a group positioned in the room with the mesh as a child,
	// so a hit on the mesh resolves to the group through its ancestors.
	props := s.Add(nil, NewNode("pickables"))
	for _, p := range d.Pickables {
		group := NewNode("pickable-" + p.ID)
		group.Interactive = Pickable(p.ID)
		group.Transform.Position = p.Center
		mesh := NewNode("pickable-" + p.ID + "-mesh")
		mesh.LocalBounds = picking.BoxAround(math.Vec3{}, p.HalfExtents)
		mesh.HasBounds = true
		s.Add(props, group)
		s.Add(group, mesh)
	}

	return s
}

// surfaceBox returns the world box of a rectangle lying on a wall, given
// its centre, the wall normal and right axis, and its depth along the normal.
func surfaceBox(center, normal, right math.Vec3, width, height, depth float32) picking.AABB {
	half := right.Scale(width / 2).Add(math.UnitY.Scale(height / 2)).Add(normal.Scale(depth / 2))
	abs := math.V3(math.Abs(half.X), math.Abs(half.Y), math.Abs(half.Z))
	// Right and normal are axis-aligned for every wall, so the half extents
	// above already are the box half sizes.
	return picking.BoxAround(center, abs)
}
