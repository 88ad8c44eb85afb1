// Package input turns SDL2 events into walker input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/wikiwalk/internal/game/player"
)

// Event types the frame loop reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDown
	EventFocusLost
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Button uint8
}

// Input tracks held keys and per-frame mouse motion and clicks.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	lookDX, lookDY float32
	jump           bool
	primary        bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events. It returns true if the walker should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.lookDX, i.lookDY = 0, 0
	i.jump = false
	i.primary = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// Keys released while unfocused never arrive.
				clear(i.held)
				i.events = append(i.events, Event{Type: EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			code := e.Keysym.Scancode
			if e.Type == sdl.KEYDOWN {
				i.held[code] = true
				if e.Repeat != 0 {
					continue
				}
				if code == sdl.SCANCODE_SPACE {
					i.jump = true
				}
				i.events = append(i.events, Event{Type: EventKeyDown, Key: code})
			} else if e.Type == sdl.KEYUP {
				delete(i.held, code)
				i.events = append(i.events, Event{Type: EventKeyUp, Key: code})
			}

		case *sdl.MouseMotionEvent:
			i.lookDX += float32(e.XRel)
			i.lookDY += float32(e.YRel)

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				if e.Button == sdl.BUTTON_LEFT {
					i.primary = true
				}
				i.events = append(i.events, Event{Type: EventMouseDown, Button: e.Button})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Primary reports whether the left button was clicked this frame.
func (i *Input) Primary() bool { return i.primary }

// Movement returns the player input for this frame: WASD or arrows to move,
// shift to sprint, space to jump, mouse to look.
func (i *Input) Movement() player.Input {
	return player.Input{
		Forward: i.held[sdl.SCANCODE_W] || i.held[sdl.SCANCODE_UP],
		Back:    i.held[sdl.SCANCODE_S] || i.held[sdl.SCANCODE_DOWN],
		Left:    i.held[sdl.SCANCODE_A] || i.held[sdl.SCANCODE_LEFT],
		Right:   i.held[sdl.SCANCODE_D] || i.held[sdl.SCANCODE_RIGHT],
		Sprint:  i.held[sdl.SCANCODE_LSHIFT] || i.held[sdl.SCANCODE_RSHIFT],
		Jump:    i.jump,
		LookDX:  i.lookDX,
		LookDY:  i.lookDY,
	}
}
