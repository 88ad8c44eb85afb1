// Package world holds the engine state shared by the frame loop: the current
// room, its scene, the player and whatever the player is holding.
package world

import (
	"github.com/google/uuid"

	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// AssetStatus is the load state of a slot image.
type AssetStatus int

const (
	AssetPending AssetStatus = iota
	AssetReady
	AssetFailed
)

func (s AssetStatus) String() string {
	switch s {
	case AssetReady:
		return "ready"
	case AssetFailed:
		return "failed"
	default:
		return "pending"
	}
}

// SlotAsset is what the room knows about one slot's image.
type SlotAsset struct {
	Status AssetStatus
	Data   []byte
	Err    error
}

// HeldObject is a pickable currently attached to the camera anchor, with the
// placement it must return to.
type HeldObject struct {
	ID       string
	Node     *scene.Node
	Original scene.Snapshot
}

// State is owned by the frame goroutine. Nothing in it is safe for
// concurrent use.
type State struct {
	Room   *room.Descriptor
	RoomID uuid.UUID
	Scene  *scene.Scene

	Player *player.Controller
	// CameraAnchor follows the player's eye. Held objects are parented here.
	CameraAnchor *scene.Node
	Held         *HeldObject

	// Locked blocks interaction while a room transition is in progress.
	Locked        bool
	pointerLocked bool

	Assets map[string]SlotAsset
}

// New creates a state around p with no room loaded.
func New(p *player.Controller) *State {
	return &State{
		Player:       p,
		CameraAnchor: scene.NewNode("camera-anchor"),
		Assets:       make(map[string]SlotAsset),
	}
}

// HasRoom reports whether a room is installed.
func (s *State) HasRoom() bool {
	return s.Room != nil && s.Scene != nil
}

// Install replaces the current room. The caller is responsible for releasing
// the held object and disposing the previous scene first.
func (s *State) Install(d *room.Descriptor, sc *scene.Scene, id uuid.UUID) {
	s.Room = d
	s.Scene = sc
	s.RoomID = id
	s.Assets = make(map[string]SlotAsset, len(d.Slots))
	for _, job := range d.AssetJobs {
		s.Assets[job.SlotID] = SlotAsset{Status: AssetPending}
	}
}

// Clear forgets the current room.
func (s *State) Clear() {
	s.Room = nil
	s.Scene = nil
	s.RoomID = uuid.Nil
	s.Assets = make(map[string]SlotAsset)
}

// PointerLocked reports whether camera control is engaged.
func (s *State) PointerLocked() bool { return s.pointerLocked }

// SetPointerLocked engages or disengages camera control and reports whether
// the value changed.
func (s *State) SetPointerLocked(locked bool) bool {
	if s.pointerLocked == locked {
		return false
	}
	s.pointerLocked = locked
	s.Player.SetEngaged(locked)
	return true
}

// Bounds returns the walkable bounds of the current room.
func (s *State) Bounds() player.Bounds {
	return player.BoundsOf(s.Room)
}

// Obstacles returns the current room's obstacles.
func (s *State) Obstacles() []room.Obstacle {
	if s.Room == nil {
		return nil
	}
	return s.Room.Obstacles
}

// SyncCamera moves the camera anchor to the player's eye.
func (s *State) SyncCamera() player.Pose {
	pose := s.Player.Pose()
	s.CameraAnchor.Transform.Position = pose.Position
	s.CameraAnchor.Transform.Rotation = pose.Orientation()
	s.CameraAnchor.Transform.Scale = math.V3(1, 1, 1)
	return pose
}

// ReleaseHeld puts the held object back exactly where it was picked up and
// reports whether anything was held.
func (s *State) ReleaseHeld() (string, bool) {
	held := s.Held
	if held == nil {
		return "", false
	}
	held.Original.Restore(held.Node)
	s.Held = nil
	return held.ID, true
}

// SetAsset records a slot image result.
func (s *State) SetAsset(slotID string, a SlotAsset) {
	s.Assets[slotID] = a
}

// Asset returns the load state of a slot image.
func (s *State) Asset(slotID string) (SlotAsset, bool) {
	a, ok := s.Assets[slotID]
	return a, ok
}
