// Package game runs one frame of the walker: player movement, the aim query,
// the primary action and the throttled status callbacks. It has no window
// or GL dependency; the desktop front-end drives it.
package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/assets"
	"github.com/Faultbox/wikiwalk/internal/game/interact"
	"github.com/Faultbox/wikiwalk/internal/game/lifecycle"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/game/world"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Callbacks are the hooks the host application may set. All are optional.
type Callbacks struct {
	OnDoorTrigger       func(room.Door)
	OnAction            func(room.Action)
	OnFps               func(float64)
	OnHeading           func(string)
	OnPointerLockChange func(bool)
}

// Options configures a Session.
type Options struct {
	Player         player.Tuning
	Interaction    interact.Options
	Lifecycle      lifecycle.Options
	ReportInterval time.Duration
	FovY           float32 // radians
	Aspect         float32
}

// Input is everything the host gathered for one frame.
type Input struct {
	Move    player.Input
	Primary bool // primary action pressed this frame
	// PointerLock, when set, requests camera control on or off.
	PointerLock *bool
}

// Frame is the outcome of one Tick.
type Frame struct {
	Pose  player.Pose
	Aim   bool // the crosshair rests on something usable
	Event *interact.Event
}

// Session owns the engine state and every per-frame system.
type Session struct {
	state    *world.State
	interact *interact.System
	rooms    *lifecycle.Manager
	cb       Callbacks

	interval time.Duration
	fovY     float32
	aspect   float32

	frames      int
	fps         float64
	fpsElapsed  time.Duration
	headElapsed time.Duration
	heading     string
}

// NewSession creates a session with no room loaded; call Rooms().LoadRoom.
func NewSession(opts Options, loader assets.Loader, cb Callbacks) *Session {
	if opts.ReportInterval <= 0 {
		opts.ReportInterval = 250 * time.Millisecond
	}
	if !(opts.FovY > 0) {
		opts.FovY = interact.DefaultFovY
	}
	if !(opts.Aspect > 0) {
		opts.Aspect = 16.0 / 9
	}

	s := &Session{
		cb:       cb,
		interval: opts.ReportInterval,
		fovY:     opts.FovY,
		aspect:   opts.Aspect,
	}
	s.state = world.New(player.New(player.Pose{}, opts.Player))
	s.interact = interact.New(s.state, s, opts.Interaction)
	s.rooms = lifecycle.New(s.state, loader, opts.Lifecycle)
	return s
}

// State returns the engine state.
func (s *Session) State() *world.State { return s.state }

// Rooms returns the room lifecycle manager.
func (s *Session) Rooms() *lifecycle.Manager { return s.rooms }

// Interaction returns the interaction system.
func (s *Session) Interaction() *interact.System { return s.interact }

// Camera implements interact.CameraProvider.
func (s *Session) Camera() interact.Camera {
	pose := s.state.Player.Pose()
	return interact.Camera{
		Position: pose.Position,
		Forward:  pose.Forward(),
		FovY:     s.fovY,
		Aspect:   s.aspect,
	}
}

// FovY returns the vertical field of view in radians.
func (s *Session) FovY() float32 { return s.fovY }

// SetViewport updates the aspect ratio after a resize.
func (s *Session) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		s.aspect = float32(width) / float32(height)
	}
}

// Tick advances one frame.
func (s *Session) Tick(dt time.Duration, in Input) Frame {
	if in.PointerLock != nil && s.state.SetPointerLocked(*in.PointerLock) {
		logger.Debug("pointer lock changed", zap.Bool("locked", *in.PointerLock))
		if s.cb.OnPointerLockChange != nil {
			s.cb.OnPointerLockChange(*in.PointerLock)
		}
	}

	pose := s.state.Player.Update(float32(dt.Seconds()), in.Move, s.state.Bounds(), s.state.Obstacles())
	s.state.SyncCamera()
	s.rooms.Pump()

	f := Frame{Pose: pose, Aim: s.interact.QueryAim()}
	if in.Primary {
		f.Event = s.interact.Trigger()
		s.dispatch(f.Event)
	}

	s.report(dt, pose)
	return f
}

func (s *Session) dispatch(ev *interact.Event) {
	if ev == nil {
		return
	}
	switch ev.Kind {
	case interact.EventDoor:
		if s.cb.OnDoorTrigger != nil {
			s.cb.OnDoorTrigger(ev.Door)
		}
	case interact.EventAction:
		if s.cb.OnAction != nil {
			s.cb.OnAction(ev.Action)
		}
	}
}

// report invokes the fps and heading callbacks at most once per interval.
// Heading is only reported when it changed.
func (s *Session) report(dt time.Duration, pose player.Pose) {
	if dt > 0 {
		s.frames++
		s.fpsElapsed += dt
		s.headElapsed += dt
	}

	if s.fpsElapsed >= s.interval {
		s.fps = float64(s.frames) / s.fpsElapsed.Seconds()
		if s.cb.OnFps != nil {
			s.cb.OnFps(s.fps)
		}
		s.frames = 0
		s.fpsElapsed = 0
	}

	if s.headElapsed >= s.interval {
		s.headElapsed = 0
		if h := player.Cardinal(pose.Yaw); h != s.heading {
			s.heading = h
			if s.cb.OnHeading != nil {
				s.cb.OnHeading(h)
			}
		}
	}
}

// Heading returns the last reported heading.
func (s *Session) Heading() string { return s.heading }

// ViewProjection returns the camera matrices for the renderer.
func (s *Session) ViewProjection() (view, projection math.Mat4) {
	pose := s.state.Player.Pose()
	return math.View(pose.Position, pose.Orientation()), math.Perspective(s.fovY, s.aspect, 0.05, 200)
}

// Close disposes the current room and waits for background loads to stop.
func (s *Session) Close() {
	s.rooms.Dispose()
	s.rooms.Wait()
}
