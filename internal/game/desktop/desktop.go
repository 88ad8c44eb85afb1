// Package desktop runs the walker in an SDL2 window: it owns the window, the
// renderers, audio and input, and feeds a game.Session one frame at a time.
package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/assets"
	"github.com/Faultbox/wikiwalk/internal/config"
	"github.com/Faultbox/wikiwalk/internal/engine/audio"
	"github.com/Faultbox/wikiwalk/internal/engine/debug"
	"github.com/Faultbox/wikiwalk/internal/engine/input"
	"github.com/Faultbox/wikiwalk/internal/engine/renderer"
	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/engine/ui2d"
	"github.com/Faultbox/wikiwalk/internal/engine/window"
	"github.com/Faultbox/wikiwalk/internal/game"
	"github.com/Faultbox/wikiwalk/internal/game/interact"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

const windowTitle = "WikiWalk"

// Game is the desktop walker.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	hud      *ui2d.Renderer
	input    *input.Input
	audio    *audio.Manager
	assets   *assets.Manager

	session  *game.Session
	nav      *game.Navigator
	pictures *pictures
	shots    *debug.ScreenshotCapture
	title    string

	screenshotPending bool
}

// New creates the window and every subsystem, then loads the first room.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing walker",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	g := &Game{cfg: cfg}

	// Window first: it creates the OpenGL context.
	var err error
	g.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	width, height := g.window.GetSize()

	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.hud, err = ui2d.New(width, height)
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to create hud: %w", err)
	}

	g.input = input.New()
	g.pictures = newPictures()
	g.shots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "wikiwalk")
	g.audio = g.initAudio()

	g.assets = assets.NewManager()
	if cfg.Assets.Dir != "" {
		g.assets.AddSource(assets.DirLoader{Root: cfg.Assets.Dir})
	}

	g.session = game.NewSession(game.Options{
		Player:         cfg.Player,
		Interaction:    cfg.Interaction,
		Lifecycle:      cfg.LifecycleOptions(),
		ReportInterval: cfg.Session.ReportInterval,
		FovY:           cfg.Graphics.FOV * math.Pi / 180,
		Aspect:         float32(width) / float32(height),
	}, g.assets, game.Callbacks{
		OnDoorTrigger:       g.onDoor,
		OnAction:            g.onAction,
		OnFps:               func(fps float64) { logger.Debug("fps", zap.Float64("fps", fps)) },
		OnHeading:           func(h string) { logger.Debug("heading", zap.String("heading", h)) },
		OnPointerLockChange: g.window.SetPointerLock,
	})
	g.nav = game.NewNavigator(g.session, uint32(time.Now().UnixNano()))
	g.session.Rooms().LoadRoom(cfg.Room)

	logger.Info("walker initialized")
	return g, nil
}

// initAudio opens the output device and loads any configured cue files.
// Audio problems are logged and never fatal.
func (g *Game) initAudio() *audio.Manager {
	m := audio.New(g.cfg.Audio.Volume)
	if g.cfg.Audio.Muted {
		return m
	}
	if err := m.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return m
	}

	var errs error
	for name, path := range g.cfg.Audio.Cues {
		cue, ok := audio.ParseCue(name)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown cue %q", name))
			continue
		}
		data, err := os.ReadFile(filepath.Clean(path))
		if err == nil {
			err = m.LoadCue(cue, data)
		}
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		logger.Warn("some sound cues fell back to synthesized tones", zap.Error(errs))
	}
	return m
}

func (g *Game) onDoor(d room.Door) {
	g.audio.Play(audio.CueDoor)
	g.nav.Door(d)
}

func (g *Game) onAction(a room.Action) {
	g.audio.Play(audio.CueButton)
	g.nav.Action(a)
}

// Run starts the main loop and returns when the window closes.
func (g *Game) Run() error {
	g.running = true

	var frameBudget time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}
	lastTime := time.Now()

	logger.Info("starting walker loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		lock := g.handleEvents()

		// 2. Update; the click that captures the pointer does not also trigger.
		f := g.session.Tick(dt, game.Input{
			Move:        g.input.Movement(),
			Primary:     g.input.Primary() && lock == nil,
			PointerLock: lock,
		})
		g.cue(f.Event)

		// 3. Render
		o := g.render(f)

		// 4. Present
		if g.screenshotPending {
			g.screenshotPending = false
			g.screenshot()
		}
		g.window.SwapBuffers()
		g.updateTitle(o.Title)

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

// handleEvents reacts to window and key events and returns the requested
// pointer lock state, if any. Escape frees the pointer, or quits when it is
// already free; a click captures it.
func (g *Game) handleEvents() *bool {
	var lock *bool
	set := func(v bool) { lock = &v }
	locked := g.session.State().PointerLocked()

	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.resize(event.Width, event.Height)
		case input.EventFocusLost:
			if locked {
				set(false)
			}
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_F12 {
				g.screenshotPending = true
			}
			if event.Key != sdl.SCANCODE_ESCAPE {
				continue
			}
			if locked {
				set(false)
			} else {
				g.running = false
			}
		case input.EventMouseDown:
			if !locked && event.Button == sdl.BUTTON_LEFT {
				set(true)
			}
		}
	}
	return lock
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.renderer.Resize(width, height)
	g.hud.Resize(width, height)
	g.session.SetViewport(width, height)
}

func (g *Game) cue(ev *interact.Event) {
	if ev == nil {
		return
	}
	switch ev.Kind {
	case interact.EventHoldStarted:
		g.audio.Play(audio.CuePickUp)
	case interact.EventHoldReleased:
		g.audio.Play(audio.CueDrop)
	}
}

func (g *Game) render(f game.Frame) game.Overlay {
	state := g.session.State()

	g.renderer.Begin()
	if state.Scene != nil {
		view, proj := g.session.ViewProjection()
		g.renderer.DrawPictures(g.pictures.sync(state), view, proj)
		g.renderer.DrawScene(scene.Collect(state.Scene.Root, state.CameraAnchor), view, proj)
	}
	g.renderer.DrawCrosshair(f.Aim)
	g.renderer.End()

	width, height := g.hud.ScreenSize()
	o := g.session.Overlay(float32(width), float32(height))
	drawOverlay(g.hud, o, float32(width), float32(height))
	return o
}

// screenshot reads back the finished frame and saves it.
func (g *Game) screenshot() {
	width, height := g.hud.ScreenSize()
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := g.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) updateTitle(name string) {
	title := windowTitle
	if name != "" {
		title = windowTitle + ": " + name
	}
	if title != g.title {
		g.title = title
		g.window.SetTitle(title)
	}
}

// Close cleans up walker resources.
func (g *Game) Close() {
	logger.Info("closing walker")

	if g.session != nil {
		g.session.Close()
	}
	if g.pictures != nil {
		g.pictures.release()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.hud != nil {
		g.hud.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
