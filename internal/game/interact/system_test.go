package interact

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Faultbox/wikiwalk/internal/engine/picking"
	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/game/world"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

var testWalls = map[room.WallID]room.WallPlane{
	room.North: {ID: room.North, Normal: math.UnitZ, Right: math.UnitX, Width: 20, Height: 6},
	room.West:  {ID: room.West, Normal: math.UnitX, Right: math.UnitZ.Neg(), Width: 20, Height: 6},
}

func fixture(t *testing.T, d *room.Descriptor) (*System, *world.State) {
	t.Helper()
	if d.Walls == nil {
		d.Walls = testWalls
	}
	d.HalfW, d.HalfL = 10, 10
	state := world.New(player.New(player.Pose{}, player.DefaultTuning()))
	state.Install(d, scene.FromDescriptor(d), uuid.New())
	state.SetPointerLocked(true)
	state.SyncCamera()
	camera := CameraFunc(func() Camera {
		pose := state.Player.Pose()
		return Camera{Position: pose.Position, Forward: pose.Forward(), FovY: 1.2, Aspect: 16.0 / 9}
	})
	return New(state, camera, DefaultOptions()), state
}

func doorRoom() *room.Descriptor {
	return &room.Descriptor{
		Doors: []room.Door{{
			ID:     "related-1",
			Wall:   room.North,
			Center: math.V3(0, 1.6, -3),
			Width:  2,
			Height: 2.8,
			Normal: math.UnitZ,
			Meta:   room.DoorMeta{Label: "Moon", ArticleTitle: "Moon", Target: "gallery"},
		}},
	}
}

func propRoom() *room.Descriptor {
	half := math.V3(0.15, 0.15, 0.15)
	return &room.Descriptor{
		Pickables: []room.PickableRef{
			{ID: "globe", Kind: "globe", Center: math.V3(0, 1.6, -2), HalfExtents: half},
			{ID: "vase", Kind: "vase", Center: math.V3(-2, 1.6, 0), HalfExtents: half},
		},
	}
}

func TestDoorTrigger(t *testing.T) {
	sys, _ := fixture(t, doorRoom())
	if !sys.QueryAim() {
		t.Fatal("aim should rest on the door")
	}
	if target, ok := sys.AimTarget(); !ok || target.Kind != scene.InteractiveDoor || target.ID != "related-1" {
		t.Errorf("AimTarget() = %+v, %v", target, ok)
	}
	ev := sys.Trigger()
	if ev == nil || ev.Kind != EventDoor {
		t.Fatalf("Trigger() = %+v, want door event", ev)
	}
	if ev.Door.ID != "related-1" || ev.Door.Meta.Target != "gallery" || ev.Door.Meta.ArticleTitle != "Moon" {
		t.Errorf("door event carries %+v", ev.Door)
	}
}

func TestDistanceGating(t *testing.T) {
	sys, state := fixture(t, doorRoom())
	// The door surface is 3.975 m away from here.
	state.Player.Place(player.Pose{Position: math.V3(0, 0, 1)})
	if sys.QueryAim() {
		t.Error("aim should miss beyond max distance")
	}
	if ev := sys.Trigger(); ev != nil {
		t.Errorf("Trigger() = %+v beyond max distance", ev)
	}
}

func TestGates(t *testing.T) {
	sys, state := fixture(t, doorRoom())

	state.Locked = true
	if sys.QueryAim() || sys.Trigger() != nil {
		t.Error("locked state should block aim and trigger")
	}
	state.Locked = false

	state.SetPointerLocked(false)
	if !sys.QueryAim() {
		t.Error("aim hint does not depend on pointer lock")
	}
	if sys.Trigger() != nil {
		t.Error("trigger requires pointer lock")
	}
}

func TestNoRoom(t *testing.T) {
	state := world.New(player.New(player.Pose{}, player.DefaultTuning()))
	state.SetPointerLocked(true)
	sys := New(state, CameraFunc(func() Camera { return Camera{Forward: math.V3(0, 0, -1)} }), Options{})
	if sys.QueryAim() || sys.Trigger() != nil {
		t.Error("nothing to hit without a room")
	}
}

func TestHoldRoundTrip(t *testing.T) {
	sys, state := fixture(t, propRoom())
	node, ok := state.Scene.Find("pickable-globe")
	if !ok {
		t.Fatal("globe node missing")
	}
	before := scene.Capture(node)

	ev := sys.Trigger()
	if ev == nil || ev.Kind != EventHoldStarted || ev.PickableID != "globe" {
		t.Fatalf("Trigger() = %+v, want hold of globe", ev)
	}
	if state.Held == nil || state.Held.Node != node {
		t.Fatal("held object not recorded")
	}
	if node.Parent() != state.CameraAnchor {
		t.Error("held object should hang off the camera anchor")
	}
	if node.Render.DepthTest || node.Render.DepthWrite || node.Render.RenderOrder != sys.Options().HeldRenderOrder {
		t.Errorf("held render state = %+v", node.Render)
	}
	// 0.3 m cube; depth is the tightest fit.
	wantScale := sys.Options().HoldDistance * sys.Options().DepthFit / 0.3
	if math.Abs(node.Transform.Scale.X-wantScale) > 1e-3 {
		t.Errorf("scale = %v, want %v", node.Transform.Scale.X, wantScale)
	}

	ev = sys.Trigger()
	if ev == nil || ev.Kind != EventHoldReleased || ev.PickableID != "globe" {
		t.Fatalf("second Trigger() = %+v, want release", ev)
	}
	if state.Held != nil {
		t.Error("still holding after release")
	}
	after := scene.Capture(node)
	if after != before {
		t.Errorf("round trip changed the node:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestHoldIsExclusive(t *testing.T) {
	sys, state := fixture(t, propRoom())
	globe, _ := state.Scene.Find("pickable-globe")
	vase, _ := state.Scene.Find("pickable-vase")
	globeHome := globe.Parent()

	if ev := sys.Trigger(); ev == nil || ev.PickableID != "globe" {
		t.Fatalf("first trigger = %+v", ev)
	}

	// Turn to face the vase without moving the anchor, so the globe is no
	// longer in the way.
	state.Player.Place(player.Pose{Yaw: math.Pi / 2})
	ev := sys.Trigger()
	if ev == nil || ev.Kind != EventHoldStarted || ev.PickableID != "vase" {
		t.Fatalf("second trigger = %+v, want hold of vase", ev)
	}
	if state.Held == nil || state.Held.Node != vase {
		t.Fatal("vase should be held")
	}
	if globe.Parent() != globeHome {
		t.Error("globe was not put back")
	}
	held := 0
	for _, c := range state.CameraAnchor.Children() {
		if c.Interactive.Kind == scene.InteractivePickable {
			held++
		}
	}
	if held != 1 {
		t.Errorf("%d objects on the anchor, want 1", held)
	}
}

func TestReleaseWithNothingHeld(t *testing.T) {
	sys, _ := fixture(t, propRoom())
	if sys.Release() {
		t.Error("Release() reported a hold")
	}
}

func TestUntaggedSurfacesAreIgnored(t *testing.T) {
	d := &room.Descriptor{
		Slots: []room.Slot{{
			ID: "hero", Wall: room.North, Center: math.V3(0, 1.6, -2),
			Width: 2, Height: 2, Normal: math.UnitZ,
		}},
	}
	sys, _ := fixture(t, d)
	if sys.QueryAim() || sys.Trigger() != nil {
		t.Error("slots are not interactive")
	}
}

func TestActionTrigger(t *testing.T) {
	d := &room.Descriptor{
		Actions: []room.ActionRef{{
			ID: "lobby", Action: room.ActionLobby, Wall: room.North,
			Center: math.V3(0, 1.6, -2), Width: 0.6, Height: 0.6, Normal: math.UnitZ,
		}},
	}
	sys, _ := fixture(t, d)
	ev := sys.Trigger()
	if ev == nil || ev.Kind != EventAction || ev.Action != room.ActionLobby || ev.ActionID != "lobby" {
		t.Errorf("Trigger() = %+v, want lobby action", ev)
	}
}

func TestNearestHitWins(t *testing.T) {
	d := doorRoom()
	d.Pickables = []room.PickableRef{{ID: "globe", Center: math.V3(0, 1.6, -2), HalfExtents: math.V3(0.15, 0.15, 0.15)}}
	sys, _ := fixture(t, d)
	ev := sys.Trigger()
	if ev == nil || ev.Kind != EventHoldStarted {
		t.Errorf("Trigger() = %+v, want the nearer pickable", ev)
	}
}

func TestFitUsesWidestAxis(t *testing.T) {
	sys, _ := fixture(t, propRoom())
	n := scene.NewNode("plank")
	n.LocalBounds = picking.BoxAround(math.Vec3{}, math.V3(2, 0.1, 0.1))
	n.HasBounds = true

	scale, offset := sys.fit(n)
	o := sys.Options()
	availH := 2 * o.HoldDistance * math.Tan(0.6) * (1 - 2*o.HoldMargin)
	want := availH * 16.0 / 9 / 4
	if math.Abs(scale-want) > 1e-4 {
		t.Errorf("scale = %v, want %v", scale, want)
	}
	if !offset.ApproxEqual(math.Vec3{}, 1e-6) {
		t.Errorf("offset = %v for a centred box", offset)
	}
}
