// Package room builds the procedural floor plan of a lobby or gallery room:
// dimensions, wall planes, doors, display slots, pickables and the static
// obstacle field the player collides with.
package room

import (
	"fmt"

	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Mode selects the room generator.
type Mode int

const (
	ModeLobby Mode = iota
	ModeGallery
)

// String returns the mode name used in config and logs.
func (m Mode) String() string {
	switch m {
	case ModeGallery:
		return "gallery"
	default:
		return "lobby"
	}
}

// ParseMode converts a config string to a Mode. Unknown values map to lobby.
func ParseMode(s string) Mode {
	if s == "gallery" {
		return ModeGallery
	}
	return ModeLobby
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	*m = ParseMode(string(text))
	return nil
}

// WallID names one of the four walls.
type WallID int

const (
	North WallID = iota
	South
	East
	West
)

// Walls lists wall ids in build order.
var Walls = [4]WallID{North, South, East, West}

// String returns the wall name.
func (w WallID) String() string {
	switch w {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("wall(%d)", int(w))
}

// ParseWall converts a wall name. ok is false for unknown names.
func ParseWall(s string) (WallID, bool) {
	switch s {
	case "north":
		return North, true
	case "south":
		return South, true
	case "east":
		return East, true
	case "west":
		return West, true
	}
	return North, false
}

// MarshalText implements encoding.TextMarshaler.
func (w WallID) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WallID) UnmarshalText(text []byte) error {
	id, ok := ParseWall(string(text))
	if !ok {
		return fmt.Errorf("unknown wall %q", text)
	}
	*w = id
	return nil
}

// WallPlane is the inner face of a wall. U runs along Right, Y runs up from
// the floor.
type WallPlane struct {
	ID     WallID
	Center math.Vec3
	Normal math.Vec3 // points into the room
	Right  math.Vec3 // Up x Normal: the viewer's right when facing the wall
	Width  float32
	Height float32
}

// Point maps wall-local (u, y) to world space, pushed off the wall by inset
// along the normal.
func (p WallPlane) Point(u, y, inset float32) math.Vec3 {
	return p.Center.
		Add(p.Right.Scale(u)).
		Add(math.UnitY.Scale(y - p.Height/2)).
		Add(p.Normal.Scale(inset))
}

// DoorMeta is free-form navigation data. The core stores it and hands it back
// on trigger; only the navigation collaborator interprets it.
type DoorMeta struct {
	Label        string `json:"label,omitempty"`
	Category     string `json:"category,omitempty"`
	ArticleTitle string `json:"articleTitle,omitempty"`
	Target       string `json:"target,omitempty"`
}

// DoorLabel is either the door's original label or an override text.
type DoorLabel struct {
	overridden bool
	text       string
}

// OriginalLabel is the zero DoorLabel.
func OriginalLabel() DoorLabel { return DoorLabel{} }

// OverrideLabel replaces the displayed label with text.
func OverrideLabel(text string) DoorLabel { return DoorLabel{overridden: true, text: text} }

// Overridden reports whether an override is set.
func (l DoorLabel) Overridden() bool { return l.overridden }

// Resolve returns the text to display for a door whose original label is original.
func (l DoorLabel) Resolve(original string) string {
	if l.overridden {
		return l.text
	}
	return original
}

// Door is a triggerable opening in a wall.
type Door struct {
	ID     string
	Wall   WallID
	U      float32
	Center math.Vec3
	Width  float32
	Height float32
	Normal math.Vec3
	Meta   DoorMeta
	Label  DoorLabel
}

// DisplayLabel returns the label after applying any override.
func (d *Door) DisplayLabel() string {
	return d.Label.Resolve(d.Meta.Label)
}

// SlotKind is the decoration type of a slot.
type SlotKind int

const (
	SlotFrame SlotKind = iota
	SlotPlaque
)

func (k SlotKind) String() string {
	if k == SlotPlaque {
		return "plaque"
	}
	return "frame"
}

// SlotContent is what the decoration collaborator should draw in a slot.
type SlotContent struct {
	Title       string
	Text        string
	ImageURL    string
	Placeholder bool
}

// Slot reserves a rectangle on a wall for decoration.
type Slot struct {
	ID      string
	Wall    WallID
	Kind    SlotKind
	U       float32
	Center  math.Vec3
	Width   float32
	Height  float32
	Normal  math.Vec3
	Content SlotContent
}

// ObstacleKind tags an Obstacle.
type ObstacleKind int

const (
	ObstacleCylinder ObstacleKind = iota
	ObstacleBox
)

// Obstacle is a static collision primitive in room-local XZ. Cylinders use
// Radius; boxes use W (along X) and D (along Z).
type Obstacle struct {
	Kind   ObstacleKind
	X, Z   float32
	Radius float32
	W, D   float32
}

// Cylinder returns a cylinder obstacle.
func Cylinder(x, z, radius float32) Obstacle {
	return Obstacle{Kind: ObstacleCylinder, X: x, Z: z, Radius: radius}
}

// Box returns an axis-aligned box obstacle centred on (x, z).
func Box(x, z, w, d float32) Obstacle {
	return Obstacle{Kind: ObstacleBox, X: x, Z: z, W: w, D: d}
}

// Sanitized returns a copy with non-finite coordinates and non-finite or
// negative sizes replaced by zero. Zero-sized obstacles are no-ops, and so is
// any obstacle whose position was not finite.
func (o Obstacle) Sanitized() Obstacle {
	if !math.IsFinite(o.X) || !math.IsFinite(o.Z) {
		return Obstacle{Kind: o.Kind}
	}
	fix := func(v float32) float32 {
		if !math.IsFinite(v) {
			return 0
		}
		return v
	}
	size := func(v float32) float32 {
		if !math.IsFinite(v) || v < 0 {
			return 0
		}
		return v
	}
	return Obstacle{
		Kind:   o.Kind,
		X:      fix(o.X),
		Z:      fix(o.Z),
		Radius: size(o.Radius),
		W:      size(o.W),
		D:      size(o.D),
	}
}

// PickableRef describes an object the player can pick up and hold.
type PickableRef struct {
	ID          string
	Kind        string
	Center      math.Vec3
	HalfExtents math.Vec3
}

// Action is the kind of an action button.
type Action string

const (
	ActionRandomArticle Action = "random"
	ActionLobby         Action = "lobby"
)

// ActionRef is a wall-mounted button.
type ActionRef struct {
	ID     string
	Action Action
	Wall   WallID
	Center math.Vec3
	Width  float32
	Height float32
	Normal math.Vec3
}

// AssetJob asks the lifecycle manager to fetch an image for a slot.
type AssetJob struct {
	ID     string
	SlotID string
	URL    string
}

// Descriptor is the complete result of one room build.
type Descriptor struct {
	Mode          Mode
	Seed          string
	Width         float32
	Length        float32
	Height        float32
	HalfW         float32
	HalfL         float32
	WallThickness float32

	Walls     map[WallID]WallPlane
	Doors     []Door
	Slots     []Slot
	Obstacles []Obstacle
	Pickables []PickableRef
	Actions   []ActionRef
	AssetJobs []AssetJob
}

// Door returns the door with the given id.
func (d *Descriptor) Door(id string) (*Door, bool) {
	if d == nil || id == "" {
		return nil, false
	}
	for i := range d.Doors {
		if d.Doors[i].ID == id {
			return &d.Doors[i], true
		}
	}
	return nil, false
}

// DoorsOn returns the doors placed on wall, in placement order.
func (d *Descriptor) DoorsOn(wall WallID) []Door {
	var out []Door
	for _, door := range d.Doors {
		if door.Wall == wall {
			out = append(out, door)
		}
	}
	return out
}

// Slot returns the slot with the given id.
func (d *Descriptor) Slot(id string) (*Slot, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Slots {
		if d.Slots[i].ID == id {
			return &d.Slots[i], true
		}
	}
	return nil, false
}
