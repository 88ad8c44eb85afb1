package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/wikiwalk/internal/engine/picking"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

func TestAddInsertDetach(t *testing.T) {
	root := NewNode("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.Add(a)
	root.Add(c)
	root.Insert(b, 1)

	if got := root.Children(); len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("unexpected child order: %v", names(got))
	}
	if b.Index() != 1 || b.Parent() != root {
		t.Errorf("b index %d parent %v", b.Index(), b.Parent())
	}

	// Re-adding moves the node rather than duplicating it.
	a.Add(c)
	if len(root.Children()) != 2 || c.Parent() != a {
		t.Errorf("re-parenting failed: root=%v", names(root.Children()))
	}

	b.Detach()
	b.Detach()
	if b.Parent() != nil || len(root.Children()) != 1 {
		t.Errorf("detach failed: root=%v", names(root.Children()))
	}
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestWorldBoundsFollowParents(t *testing.T) {
	root := NewNode("root")
	group := NewNode("group")
	group.Transform.Position = math.V3(5, 0, 0)
	group.Transform.Scale = math.V3(2, 2, 2)
	mesh := NewNode("mesh")
	mesh.LocalBounds = picking.BoxAround(math.Vec3{}, math.V3(0.5, 0.5, 0.5))
	mesh.HasBounds = true
	root.Add(group)
	group.Add(mesh)

	box, ok := mesh.WorldBounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	want := picking.BoxAround(math.V3(5, 0, 0), math.V3(1, 1, 1))
	if !box.Min.ApproxEqual(want.Min, 1e-5) || !box.Max.ApproxEqual(want.Max, 1e-5) {
		t.Errorf("WorldBounds = %+v, want %+v", box, want)
	}

	// The group has no bounds of its own but inherits the mesh's.
	gbox, ok := group.WorldBounds()
	if !ok || gbox != box {
		t.Errorf("group bounds = %+v (ok=%v), want %+v", gbox, ok, box)
	}

	local, ok := group.LocalSubtreeBounds()
	if !ok || !local.Max.ApproxEqual(math.V3(0.5, 0.5, 0.5), 1e-5) {
		t.Errorf("LocalSubtreeBounds = %+v", local)
	}
}

func TestInteractiveAncestor(t *testing.T) {
	group := NewNode("group")
	group.Interactive = Pickable("vase")
	mesh := NewNode("mesh")
	group.Add(mesh)

	got, ok := mesh.InteractiveAncestor()
	if !ok || got != group {
		t.Fatalf("InteractiveAncestor = %v, %v", got, ok)
	}
	if _, ok := NewNode("plain").InteractiveAncestor(); ok {
		t.Error("plain node should have no interactive ancestor")
	}
}

func TestCaptureRestore(t *testing.T) {
	root := NewNode("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.Add(a)
	root.Add(b)
	root.Add(c)
	b.Transform.Position = math.V3(1, 2, 3)
	b.Transform.Scale = math.V3(0.5, 0.5, 0.5)

	snap := Capture(b)

	other := NewNode("anchor")
	other.Add(b)
	b.Transform = IdentityTransform()
	b.Render = RenderState{Visible: true, RenderOrder: 999}

	snap.Restore(b)
	if b.Parent() != root || b.Index() != 1 {
		t.Errorf("restored to parent %v index %d", b.Parent(), b.Index())
	}
	if b.Transform != snap.Transform || b.Render != DefaultRenderState() {
		t.Errorf("restored transform %+v render %+v", b.Transform, b.Render)
	}
	if len(other.Children()) != 0 {
		t.Error("node still attached to anchor")
	}
}

func TestDisposeIsBestEffort(t *testing.T) {
	s := New()
	var disposed []string
	ok := func(name string) Resource {
		return ResourceFunc(func() error {
			disposed = append(disposed, name)
			return nil
		})
	}

	a := s.Add(nil, NewNode("a"))
	a.Own(ok("a1"))
	a.Own(ResourceFunc(func() error { return errors.New("gpu lost") }))
	b := s.Add(a, NewNode("b"))
	b.Own(ResourceFunc(func() error { panic("boom") }))
	b.Own(ok("b2"))

	err := s.Dispose()
	if err == nil {
		t.Fatal("expected combined error")
	}
	if len(disposed) != 2 {
		t.Errorf("expected both healthy resources disposed, got %v", disposed)
	}
	if len(s.Root.Children()) != 0 {
		t.Error("root still has children after dispose")
	}
	if _, found := s.Find("a"); found {
		t.Error("name index not cleared")
	}
	if err := s.Dispose(); err != nil {
		t.Errorf("second dispose should be clean, got %v", err)
	}
}

func TestFromDescriptor(t *testing.T) {
	d := room.Build(room.ModeGallery, "X", room.Params{RelatedTitles: []string{"A", "B"}}, room.DefaultLayout())
	s := FromDescriptor(d)

	var doors, pickables, actions int
	for _, n := range s.Interactives() {
		switch n.Interactive.Kind {
		case InteractiveDoor:
			doors++
		case InteractivePickable:
			pickables++
		case InteractiveAction:
			actions++
		}
	}
	if doors != len(d.Doors) || pickables != len(d.Pickables) || actions != len(d.Actions) {
		t.Errorf("interactives: doors=%d/%d pickables=%d/%d actions=%d/%d",
			doors, len(d.Doors), pickables, len(d.Pickables), actions, len(d.Actions))
	}

	door, ok := s.Find("door-previous")
	if !ok {
		t.Fatal("previous door node missing")
	}
	box, _ := door.WorldBounds()
	prev, _ := d.Door("previous")
	if !box.Center().ApproxEqual(prev.Center, 1e-4) {
		t.Errorf("door box centre %v, want %v", box.Center(), prev.Center)
	}
	if size := box.Size(); math.Abs(size.X-prev.Width) > 1e-4 || math.Abs(size.Y-prev.Height) > 1e-4 {
		t.Errorf("door box size %v, want %vx%v", size, prev.Width, prev.Height)
	}
}

func TestCollectInheritsRenderState(t *testing.T) {
	root := NewNode("root")
	wall := NewNode("wall")
	wall.LocalBounds = picking.BoxAround(math.Vec3{}, math.V3(1, 1, 1))
	wall.HasBounds = true
	root.Add(wall)

	hidden := NewNode("hidden")
	hidden.Render.Visible = false
	hiddenChild := NewNode("hidden-child")
	hiddenChild.HasBounds = true
	hidden.Add(hiddenChild)
	root.Add(hidden)

	anchor := NewNode("anchor")
	anchor.Transform.Position = math.V3(0, 2, 0)
	held := NewNode("held")
	held.Interactive = Pickable("globe")
	held.Render = RenderState{Visible: true, RenderOrder: 999}
	mesh := NewNode("held-mesh")
	mesh.LocalBounds = picking.BoxAround(math.Vec3{}, math.V3(0.5, 0.5, 0.5))
	mesh.HasBounds = true
	held.Add(mesh)
	anchor.Add(held)

	got := Collect(anchor, root, nil)
	if len(got) != 2 {
		t.Fatalf("Collect() returned %d drawables, want 2", len(got))
	}
	if got[0].Name != "wall" || got[1].Name != "held-mesh" {
		t.Errorf("draw order = %s, %s; want wall then held-mesh", got[0].Name, got[1].Name)
	}
	h := got[1]
	if h.Render.DepthTest || h.Render.DepthWrite || h.Render.RenderOrder != 999 {
		t.Errorf("held mesh render state = %+v", h.Render)
	}
	if h.Interactive != InteractivePickable {
		t.Errorf("held mesh kind = %v", h.Interactive)
	}
	if c := h.Bounds.Center(); !c.ApproxEqual(math.V3(0, 2, 0), 1e-5) {
		t.Errorf("held mesh centre = %v, want anchor position", c)
	}
}
