// Package player implements the first-person controller: input integration,
// gravity and jumping, and collision against the room's obstacle field.
package player

import (
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Input is the movement input for one frame.
type Input struct {
	Forward, Back, Left, Right bool
	Sprint                     bool
	Jump                       bool // pressed this frame
	LookDX, LookDY             float32
}

// Pose is where the camera is and where it looks.
type Pose struct {
	Position math.Vec3
	Yaw      float32 // 0 faces -Z, positive turns left
	Pitch    float32 // positive looks up
}

// Forward returns the unit view direction.
func (p Pose) Forward() math.Vec3 {
	cp := math.Cos(p.Pitch)
	return math.V3(-math.Sin(p.Yaw)*cp, math.Sin(p.Pitch), -math.Cos(p.Yaw)*cp)
}

// Orientation returns the camera rotation.
func (p Pose) Orientation() math.Quat {
	return math.QuatFromYawPitch(p.Yaw, p.Pitch)
}

// State is the controller's full mutable state.
type State struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32
	Velocity math.Vec3
	Grounded bool
}

// Pose returns the camera pose part of the state.
func (s State) Pose() Pose {
	return Pose{Position: s.Position, Yaw: s.Yaw, Pitch: s.Pitch}
}

// Bounds is the walkable half extent of the room around its origin.
type Bounds struct {
	HalfW, HalfL float32
}

// BoundsOf returns the bounds of a room descriptor.
func BoundsOf(d *room.Descriptor) Bounds {
	if d == nil {
		return Bounds{}
	}
	return Bounds{HalfW: d.HalfW, HalfL: d.HalfL}
}

// Controller owns the player state. It is not safe for concurrent use; the
// frame loop is its only caller.
type Controller struct {
	tuning        Tuning
	state         State
	engaged       bool
	jumpRequested bool
}

// New creates a controller standing at pose. A zero pose height is raised to
// eye height.
func New(pose Pose, tuning Tuning) *Controller {
	c := &Controller{tuning: tuning.withDefaults()}
	c.Place(pose)
	return c
}

// Tuning returns the effective movement constants.
func (c *Controller) Tuning() Tuning { return c.tuning }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Pose returns the current camera pose.
func (c *Controller) Pose() Pose { return c.state.Pose() }

// Engaged reports whether camera control (pointer lock) is active.
func (c *Controller) Engaged() bool { return c.engaged }

// SetEngaged switches camera control on or off. Disengaging drops any
// queued jump.
func (c *Controller) SetEngaged(engaged bool) {
	c.engaged = engaged
	if !engaged {
		c.jumpRequested = false
	}
}

// RequestJump queues a jump for the next update.
func (c *Controller) RequestJump() {
	c.jumpRequested = true
}

// Place teleports the player: velocity is reset and the player is grounded.
func (c *Controller) Place(pose Pose) {
	pos := pose.Position
	if !pos.IsFinite() {
		pos = math.Vec3{}
	}
	if pos.Y < c.tuning.EyeHeight {
		pos.Y = c.tuning.EyeHeight
	}
	c.state = State{
		Position: pos,
		Yaw:      math.WrapAngle(finiteOr(pose.Yaw, 0)),
		Pitch:    math.Clamp(finiteOr(pose.Pitch, 0), -c.tuning.PitchLimit, c.tuning.PitchLimit),
		Grounded: true,
	}
	c.jumpRequested = false
}

// Settle moves a freshly placed player to the nearest point that is inside
// bounds and clear of obstacles. It reports false if none was found, in
// which case the position is only clamped to the bounds.
func (c *Controller) Settle(bounds Bounds, obstacles []room.Obstacle) bool {
	xz, ok := nearestClear(c.state.Position.XZ(), obstacles, bounds, c.tuning)
	c.state.Position.X = xz.X
	c.state.Position.Z = xz.Y
	return ok
}

// Look applies a mouse delta. It does nothing while disengaged.
func (c *Controller) Look(dx, dy float32) {
	if !c.engaged || !math.IsFinite(dx) || !math.IsFinite(dy) {
		return
	}
	t := c.tuning
	c.state.Yaw = math.WrapAngle(c.state.Yaw - dx*t.LookSensitivity)
	c.state.Pitch = math.Clamp(c.state.Pitch-dy*t.LookSensitivity, -t.PitchLimit, t.PitchLimit)
}

// Update advances the player by dt seconds and returns the new pose. While
// disengaged nothing moves and a pending jump is discarded.
func (c *Controller) Update(dt float32, in Input, bounds Bounds, obstacles []room.Obstacle) Pose {
	if !c.engaged {
		c.jumpRequested = false
		c.state.Velocity.X = 0
		c.state.Velocity.Z = 0
		return c.Pose()
	}
	if !(dt > 0) {
		return c.Pose()
	}
	t := c.tuning
	dt = min(dt, t.MaxStep)
	s := &c.state
	start := s.Position

	if in.Jump {
		c.jumpRequested = true
	}
	c.Look(in.LookDX, in.LookDY)

	// Planar motion.
	axes := math.Vec2{X: axis(in.Right, in.Left), Y: axis(in.Forward, in.Back)}
	speed := t.Speed
	if in.Sprint {
		speed *= t.SprintMultiplier
	}
	planar := axes.Normalize().Rotate(s.Yaw).Scale(speed)
	s.Velocity.X = planar.X
	s.Velocity.Z = planar.Y
	s.Position.X += s.Velocity.X * dt
	s.Position.Z += s.Velocity.Z * dt

	// Vertical motion.
	s.Velocity.Y += t.Gravity * dt
	if c.jumpRequested && s.Grounded {
		s.Velocity.Y = t.JumpSpeed
		s.Grounded = false
	}
	c.jumpRequested = false
	s.Position.Y += s.Velocity.Y * dt
	if s.Position.Y <= t.EyeHeight {
		s.Position.Y = t.EyeHeight
		s.Velocity.Y = 0
		s.Grounded = true
	}

	// Collision.
	xz := s.Position.XZ()
	for i := 0; i < t.ResolvePasses; i++ {
		xz = resolveObstacles(xz, obstacles, t.Radius, t.Skin)
		xz = clampToBounds(xz, bounds, t.WallMargin)
		if satisfies(xz, obstacles, bounds, t) {
			break
		}
	}
	if !satisfies(xz, obstacles, bounds, t) && satisfies(start.XZ(), obstacles, bounds, t) {
		// Wedged between an obstacle and a wall: stay where we were.
		xz = start.XZ()
	}
	s.Position.X = xz.X
	s.Position.Z = xz.Y

	return c.Pose()
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

func finiteOr(v, fallback float32) float32 {
	if math.IsFinite(v) {
		return v
	}
	return fallback
}
