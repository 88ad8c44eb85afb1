// Package interact casts the aim ray from the centre of the view and turns
// hits into door, hold and action events.
package interact

import (
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/engine/picking"
	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/game/world"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// System resolves the player's aim against the current room.
type System struct {
	state  *world.State
	camera CameraProvider
	opts   Options

	// pickables is the set of pickable ids of indexedRoom.
	pickables   mapset.Set[string]
	indexedRoom uuid.UUID
}

// New creates an interaction system over state.
func New(state *world.State, camera CameraProvider, opts Options) *System {
	return &System{
		state:     state,
		camera:    camera,
		opts:      opts.withDefaults(),
		pickables: mapset.New[string](),
	}
}

// Options returns the effective options.
func (s *System) Options() Options { return s.opts }

// hit is the nearest interactive node under the aim ray.
type hit struct {
	node     *scene.Node
	distance float32
}

// QueryAim reports whether the aim ray currently rests on something
// interactive within reach. It has no side effects.
func (s *System) QueryAim() bool {
	if s.state.Locked {
		return false
	}
	_, ok := s.cast()
	return ok
}

// AimTarget returns the tag of whatever QueryAim would report.
func (s *System) AimTarget() (scene.Interactive, bool) {
	if s.state.Locked {
		return scene.Interactive{}, false
	}
	h, ok := s.cast()
	if !ok {
		return scene.Interactive{}, false
	}
	return h.node.Interactive, true
}

// Trigger performs the primary action on whatever is aimed at. It returns nil
// when nothing happens.
func (s *System) Trigger() *Event {
	if s.state.Locked || !s.state.PointerLocked() {
		return nil
	}
	h, ok := s.cast()
	if !ok {
		return nil
	}

	tag := h.node.Interactive
	switch tag.Kind {
	case scene.InteractivePickable:
		if !s.isPickable(tag.ID) {
			return nil
		}
		if held := s.state.Held; held != nil && held.ID == tag.ID {
			s.Release()
			return &Event{Kind: EventHoldReleased, PickableID: tag.ID}
		}
		s.Release()
		s.hold(tag.ID, h.node)
		return &Event{Kind: EventHoldStarted, PickableID: tag.ID}

	case scene.InteractiveDoor:
		door, ok := s.state.Room.Door(tag.ID)
		if !ok {
			return nil
		}
		logger.Debug("door triggered",
			zap.String("door", door.ID),
			zap.String("target", door.Meta.Target),
			zap.Float32("distance", h.distance))
		return &Event{Kind: EventDoor, Door: *door}

	case scene.InteractiveAction:
		logger.Debug("action triggered", zap.String("action", string(tag.Action)))
		return &Event{Kind: EventAction, ActionID: tag.ID, Action: tag.Action}
	}
	return nil
}

// Release puts the held object back where it came from. It reports whether
// anything was held.
func (s *System) Release() bool {
	id, ok := s.state.ReleaseHeld()
	if ok {
		logger.Debug("hold released", zap.String("pickable", id))
	}
	return ok
}

// cast returns the nearest interactive hit within MaxDistance. Candidates are
// every bounded node in the scene plus the held object; a hit on an untagged
// node resolves to its nearest tagged ancestor and is ignored if there is none.
func (s *System) cast() (hit, bool) {
	if !s.state.HasRoom() {
		return hit{}, false
	}
	cam := s.camera.Camera()
	if !cam.Position.IsFinite() || !cam.Forward.IsFinite() || cam.Forward.Length() == 0 {
		return hit{}, false
	}
	ray := picking.NewRay(cam.Position, cam.Forward)

	var best hit
	found := false
	visit := func(n *scene.Node) {
		if !n.HasBounds {
			return
		}
		target, ok := n.InteractiveAncestor()
		if !ok {
			return
		}
		box := n.LocalBounds.Transform(n.WorldMatrix())
		t, ok := ray.IntersectAABB(box)
		if !ok || t > s.opts.MaxDistance {
			return
		}
		if !found || t < best.distance {
			best = hit{node: target, distance: t}
			found = true
		}
	}
	s.state.Scene.Root.Walk(visit)
	if held := s.state.Held; held != nil {
		held.Node.Walk(visit)
	}
	return best, found
}

func (s *System) isPickable(id string) bool {
	if s.state.RoomID != s.indexedRoom || s.pickables.Size() == 0 {
		s.pickables = mapset.New[string]()
		for _, p := range s.state.Room.Pickables {
			s.pickables.Put(p.ID)
		}
		s.indexedRoom = s.state.RoomID
	}
	return s.pickables.Has(id)
}

// hold moves node onto the camera anchor and scales it to fit the view.
func (s *System) hold(id string, node *scene.Node) {
	original := scene.Capture(node)
	s.state.CameraAnchor.Add(node)

	node.Transform = scene.IdentityTransform()
	node.Render.DepthTest = false
	node.Render.DepthWrite = false
	node.Render.RenderOrder = s.opts.HeldRenderOrder

	scale, offset := s.fit(node)
	node.Transform.Scale = math.V3(scale, scale, scale)
	node.Transform.Position = math.V3(0, 0, -s.opts.HoldDistance).Add(offset)

	s.state.Held = &world.HeldObject{ID: id, Node: node, Original: original}
	logger.Debug("hold started", zap.String("pickable", id), zap.Float32("scale", scale))
}

// fit returns the uniform scale that inscribes node's bounds in the view at
// HoldDistance, and the offset that recentres it.
func (s *System) fit(node *scene.Node) (float32, math.Vec3) {
	box, ok := node.LocalSubtreeBounds()
	if !ok {
		return 1, math.Vec3{}
	}
	cam := s.camera.Camera()
	fov := cam.FovY
	if !(fov > 0 && fov < math.Pi) {
		fov = DefaultFovY
	}
	aspect := cam.Aspect
	if !(aspect > 0) {
		aspect = 1
	}

	d := s.opts.HoldDistance
	availH := 2 * d * math.Tan(fov/2) * (1 - 2*s.opts.HoldMargin)
	availW := availH * aspect
	size := box.Size()

	scale := float32(-1)
	consider := func(avail, extent float32) {
		if extent <= 0 {
			return
		}
		if v := avail / extent; scale < 0 || v < scale {
			scale = v
		}
	}
	consider(availW, size.X)
	consider(availH, size.Y)
	consider(d*s.opts.DepthFit, size.Z)
	if scale < 0 {
		scale = 1
	}
	return scale, box.Center().Scale(-scale)
}

// DefaultFovY is used when the camera reports no usable field of view.
const DefaultFovY = 75 * math.Pi / 180
