package game

import (
	"testing"
	"time"

	"github.com/Faultbox/wikiwalk/internal/game/interact"
	"github.com/Faultbox/wikiwalk/internal/game/lifecycle"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

const frame = 16 * time.Millisecond

func newSession(t *testing.T, cb Callbacks) *Session {
	t.Helper()
	opts := Options{
		Player:         player.DefaultTuning(),
		Interaction:    interact.DefaultOptions(),
		Lifecycle:      lifecycle.DefaultOptions(),
		ReportInterval: 250 * time.Millisecond,
	}
	s := NewSession(opts, nil, cb)
	t.Cleanup(s.Close)
	return s
}

func locked(v bool) *bool { return &v }

func TestPointerLockCallback(t *testing.T) {
	var changes []bool
	s := newSession(t, Callbacks{OnPointerLockChange: func(v bool) { changes = append(changes, v) }})
	s.Rooms().LoadRoom(lifecycle.RoomOptions{})

	s.Tick(frame, Input{PointerLock: locked(true)})
	s.Tick(frame, Input{PointerLock: locked(true)})
	s.Tick(frame, Input{PointerLock: locked(false)})

	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("lock changes = %v, want [true false]", changes)
	}
}

func TestFpsIsThrottled(t *testing.T) {
	var reports []float64
	s := newSession(t, Callbacks{OnFps: func(v float64) { reports = append(reports, v) }})
	s.Rooms().LoadRoom(lifecycle.RoomOptions{})

	// One second of 10 ms frames.
	for i := 0; i < 100; i++ {
		s.Tick(10*time.Millisecond, Input{})
	}
	if len(reports) != 4 {
		t.Fatalf("got %d fps reports in 1s, want 4", len(reports))
	}
	for _, v := range reports {
		if v < 99 || v > 101 {
			t.Errorf("fps = %v, want ~100", v)
		}
	}
}

func TestHeadingReportedOnChange(t *testing.T) {
	var headings []string
	s := newSession(t, Callbacks{OnHeading: func(h string) { headings = append(headings, h) }})
	s.Rooms().LoadRoom(lifecycle.RoomOptions{})
	s.Tick(frame, Input{PointerLock: locked(true)})

	for i := 0; i < 40; i++ {
		s.Tick(frame, Input{})
	}
	if len(headings) != 1 || headings[0] != "N" {
		t.Fatalf("headings = %v, want [N]", headings)
	}

	// Turn right by 90 degrees in one mouse move.
	dx := (math.Pi / 2) / player.DefaultTuning().LookSensitivity
	s.Tick(frame, Input{Move: player.Input{LookDX: dx}})
	for i := 0; i < 40; i++ {
		s.Tick(frame, Input{})
	}
	if len(headings) != 2 || headings[1] != "E" {
		t.Errorf("headings = %v, want [N E]", headings)
	}
	if s.Heading() != "E" {
		t.Errorf("Heading() = %q", s.Heading())
	}
}

func TestPrimaryTriggersDoor(t *testing.T) {
	var doors []room.Door
	s := newSession(t, Callbacks{OnDoorTrigger: func(d room.Door) { doors = append(doors, d) }})
	d := s.Rooms().LoadRoom(lifecycle.RoomOptions{
		Mode:         lifecycle.Ptr(room.ModeGallery),
		SeedTitle:    lifecycle.Ptr("B"),
		GalleryTitle: lifecycle.Ptr("B"),
		GalleryTrail: lifecycle.Ptr([]string{"A", "B"}),
	})
	s.Tick(frame, Input{PointerLock: locked(true)})

	// Stand two metres from the south wall, facing it.
	s.State().Player.Place(player.Pose{Position: math.V3(0, 0, d.HalfL-2), Yaw: math.Pi})

	f := s.Tick(frame, Input{Primary: true})
	if !f.Aim {
		t.Error("aim should rest on the previous door")
	}
	if f.Event == nil || f.Event.Kind != interact.EventDoor {
		t.Fatalf("event = %+v, want door", f.Event)
	}
	if len(doors) != 1 || doors[0].ID != "previous" || doors[0].Meta.ArticleTitle != "A" {
		t.Errorf("door callbacks = %+v", doors)
	}
}

func TestPrimaryWithoutLockDoesNothing(t *testing.T) {
	called := false
	s := newSession(t, Callbacks{OnDoorTrigger: func(room.Door) { called = true }})
	d := s.Rooms().LoadRoom(lifecycle.RoomOptions{Mode: lifecycle.Ptr(room.ModeGallery)})
	s.State().Player.Place(player.Pose{Position: math.V3(0, 0, d.HalfL-2), Yaw: math.Pi})

	if f := s.Tick(frame, Input{Primary: true}); f.Event != nil || called {
		t.Errorf("trigger fired without pointer lock: %+v", f.Event)
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	s := newSession(t, Callbacks{})
	s.SetViewport(800, 400)
	s.Rooms().LoadRoom(lifecycle.RoomOptions{Spawn: lifecycle.Ptr(lifecycle.SpawnCenter(0.5, 0))})

	cam := s.Camera()
	if cam.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", cam.Aspect)
	}
	pose := s.State().Player.Pose()
	if cam.Position != pose.Position || !cam.Forward.ApproxEqual(pose.Forward(), 1e-6) {
		t.Errorf("camera %+v does not match pose %+v", cam, pose)
	}

	// The eye maps to the view-space origin.
	view, _ := s.ViewProjection()
	if p := view.TransformVec3(pose.Position); !p.ApproxEqual(math.Vec3{}, 1e-4) {
		t.Errorf("eye in view space = %v", p)
	}
	ahead := view.TransformVec3(pose.Position.Add(pose.Forward()))
	if !ahead.ApproxEqual(math.V3(0, 0, -1), 1e-4) {
		t.Errorf("forward in view space = %v, want -Z", ahead)
	}
}
