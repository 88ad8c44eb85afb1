package game

import (
	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/room"
)

// Label is text anchored at a window position in pixels.
type Label struct {
	Text string
	X, Y float32
}

// Overlay is everything the heads-up display shows for one frame.
type Overlay struct {
	Title   string
	Heading string
	FPS     float64
	Hint    string // what the primary button would do
	Loading int    // slot images still in flight
	Paused  bool   // pointer is free, walking is off
	Doors   []Label
}

// labelLift raises door labels above the lintel.
const labelLift = 0.3

// Overlay describes the HUD for a width x height window.
func (s *Session) Overlay(width, height float32) Overlay {
	o := Overlay{
		Heading: s.heading,
		FPS:     s.fps,
		Loading: s.rooms.Pending(),
		Paused:  !s.state.PointerLocked(),
	}
	d := s.state.Room
	if d == nil {
		return o
	}

	o.Title = "Lobby"
	if d.Mode == room.ModeGallery {
		o.Title = d.Seed
		if t := s.rooms.Current().GalleryTitle; t != nil && *t != "" {
			o.Title = *t
		}
	}

	if target, ok := s.interact.AimTarget(); ok {
		o.Hint = s.hint(target)
	}

	view, proj := s.ViewProjection()
	vp := proj.Mul(view)
	for i := range d.Doors {
		door := &d.Doors[i]
		p := door.Center
		p.Y += door.Height/2 + labelLift
		if x, y, ok := vp.Project(p, width, height); ok {
			o.Doors = append(o.Doors, Label{Text: door.DisplayLabel(), X: x, Y: y})
		}
	}
	return o
}

func (s *Session) hint(target scene.Interactive) string {
	switch target.Kind {
	case scene.InteractiveDoor:
		if door, ok := s.state.Room.Door(target.ID); ok {
			return "Enter " + door.DisplayLabel()
		}
	case scene.InteractivePickable:
		if h := s.state.Held; h != nil && h.ID == target.ID {
			return "Put back"
		}
		return "Pick up"
	case scene.InteractiveAction:
		switch target.Action {
		case room.ActionRandomArticle:
			return "Random article"
		case room.ActionLobby:
			return "Back to lobby"
		}
	}
	return ""
}
