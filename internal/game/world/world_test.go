package world

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

func TestInstallTracksAssetJobs(t *testing.T) {
	s := New(player.New(player.Pose{}, player.DefaultTuning()))
	if s.HasRoom() {
		t.Fatal("new state should be empty")
	}

	d := room.Build(room.ModeGallery, "Moon", room.Params{
		Title:            "Moon",
		MainThumbnailURL: "https://example.org/moon.jpg",
	}, room.DefaultLayout())
	id := uuid.New()
	s.Install(d, scene.FromDescriptor(d), id)

	if !s.HasRoom() || s.RoomID != id {
		t.Fatal("room not installed")
	}
	if len(d.AssetJobs) == 0 {
		t.Fatal("expected at least one asset job")
	}
	for _, job := range d.AssetJobs {
		a, ok := s.Asset(job.SlotID)
		if !ok || a.Status != AssetPending {
			t.Errorf("slot %s: %+v, %v", job.SlotID, a, ok)
		}
	}
	if b := s.Bounds(); b.HalfW != d.HalfW || b.HalfL != d.HalfL {
		t.Errorf("bounds = %+v", b)
	}

	s.Clear()
	if s.HasRoom() || s.RoomID != uuid.Nil || len(s.Assets) != 0 {
		t.Error("Clear left state behind")
	}
	if s.Obstacles() != nil {
		t.Error("obstacles after Clear")
	}
}

func TestPointerLockEngagesPlayer(t *testing.T) {
	s := New(player.New(player.Pose{}, player.DefaultTuning()))
	if !s.SetPointerLocked(true) {
		t.Error("expected a change")
	}
	if !s.Player.Engaged() {
		t.Error("player should be engaged")
	}
	if s.SetPointerLocked(true) {
		t.Error("no change expected")
	}
	s.SetPointerLocked(false)
	if s.Player.Engaged() {
		t.Error("player should be disengaged")
	}
}

func TestSyncCamera(t *testing.T) {
	p := player.New(player.Pose{Position: math.V3(1, 0, 2), Yaw: 0.5}, player.DefaultTuning())
	s := New(p)
	pose := s.SyncCamera()
	if s.CameraAnchor.Transform.Position != pose.Position {
		t.Errorf("anchor at %v, eye at %v", s.CameraAnchor.Transform.Position, pose.Position)
	}
	fwd := s.CameraAnchor.Transform.Rotation.Rotate(math.V3(0, 0, -1))
	if !fwd.ApproxEqual(pose.Forward(), 1e-5) {
		t.Errorf("anchor forward %v, pose forward %v", fwd, pose.Forward())
	}
}

func TestAssetStatusString(t *testing.T) {
	for s, want := range map[AssetStatus]string{AssetPending: "pending", AssetReady: "ready", AssetFailed: "failed"} {
		if s.String() != want {
			t.Errorf("%d = %q", s, s.String())
		}
	}
}
