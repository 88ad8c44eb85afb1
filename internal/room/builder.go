package room

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// minDoorHeight keeps a door walkable even when the layout asks for less.
const minDoorHeight float32 = 1.0

// builder accumulates one Descriptor. Every list is append-only.
type builder struct {
	layout Layout
	d      *Descriptor
}

// Build generates the room for mode. The result depends only on the
// arguments: the same seed title always yields the same geometry.
func Build(mode Mode, seedTitle string, params Params, layout Layout) *Descriptor {
	b := &builder{layout: layout.withDefaults()}

	switch mode {
	case ModeGallery:
		b.gallery(seedTitle, params)
	default:
		b.lobby(seedTitle, params)
	}

	logger.Debug("room built",
		zap.Stringer("mode", mode),
		zap.String("seed", seedTitle),
		zap.Float32("width", b.d.Width),
		zap.Float32("length", b.d.Length),
		zap.Int("doors", len(b.d.Doors)),
		zap.Int("slots", len(b.d.Slots)),
		zap.Int("obstacles", len(b.d.Obstacles)),
		zap.Int("assetJobs", len(b.d.AssetJobs)))

	return b.d
}

// init sets dimensions and the four wall planes.
func (b *builder) init(mode Mode, seed string, width, length float32) {
	l := b.layout
	halfW := width / 2
	halfL := length / 2
	h := l.Height

	b.d = &Descriptor{
		Mode:          mode,
		Seed:          seed,
		Width:         width,
		Length:        length,
		Height:        h,
		HalfW:         halfW,
		HalfL:         halfL,
		WallThickness: l.WallThickness,
		Walls:         make(map[WallID]WallPlane, 4),
	}

	planes := []struct {
		id     WallID
		center math.Vec3
		normal math.Vec3
		width  float32
	}{
		{North, math.V3(0, h/2, -halfL), math.V3(0, 0, 1), width},
		{South, math.V3(0, h/2, halfL), math.V3(0, 0, -1), width},
		{East, math.V3(halfW, h/2, 0), math.V3(-1, 0, 0), length},
		{West, math.V3(-halfW, h/2, 0), math.V3(1, 0, 0), length},
	}
	for _, p := range planes {
		b.d.Walls[p.id] = WallPlane{
			ID:     p.id,
			Center: p.center,
			Normal: p.normal,
			Right:  math.UnitY.Cross(p.normal),
			Width:  p.width,
			Height: h,
		}
	}
}

// addDoor places a door whose bottom edge sits on the floor. Width and height
// are clamped into the safe range first.
func (b *builder) addDoor(id string, wall WallID, width, height, u float32, meta DoorMeta) *Door {
	l := b.layout
	plane := b.d.Walls[wall]
	width = math.Clamp(width, l.MinDoorWidth, l.MaxDoorWidth)
	height = math.Clamp(height, minDoorHeight, plane.Height)

	b.d.Doors = append(b.d.Doors, Door{
		ID:     id,
		Wall:   wall,
		U:      u,
		Center: plane.Point(u, height/2, l.WallThickness/2),
		Width:  width,
		Height: height,
		Normal: plane.Normal,
		Meta:   meta,
	})
	return &b.d.Doors[len(b.d.Doors)-1]
}

// addSlot reserves a decoration rectangle centred at (u, y) on wall.
func (b *builder) addSlot(id string, wall WallID, kind SlotKind, width, height, u, y float32, content SlotContent) {
	plane := b.d.Walls[wall]
	b.d.Slots = append(b.d.Slots, Slot{
		ID:      id,
		Wall:    wall,
		Kind:    kind,
		U:       u,
		Center:  plane.Point(u, y, b.layout.WallThickness/2),
		Width:   max(width, 0),
		Height:  max(height, 0),
		Normal:  plane.Normal,
		Content: content,
	})
	if content.ImageURL != "" {
		b.d.AssetJobs = append(b.d.AssetJobs, AssetJob{
			ID:     fmt.Sprintf("asset-%d", len(b.d.AssetJobs)),
			SlotID: id,
			URL:    content.ImageURL,
		})
	}
}

// addAction mounts a square button on wall.
func (b *builder) addAction(id string, action Action, wall WallID, size, u, y float32) {
	plane := b.d.Walls[wall]
	b.d.Actions = append(b.d.Actions, ActionRef{
		ID:     id,
		Action: action,
		Wall:   wall,
		Center: plane.Point(u, y, b.layout.WallThickness/2),
		Width:  size,
		Height: size,
		Normal: plane.Normal,
	})
}

func (b *builder) addObstacle(o Obstacle) {
	b.d.Obstacles = append(b.d.Obstacles, o.Sanitized())
}

// addColumn represents a column of the given width along X as a row of
// adjoining cylinders.
func (b *builder) addColumn(x, z, width, radius float32) {
	n := int(gomath.Ceil(float64(width / (2 * radius))))
	if n < 1 {
		n = 1
	}
	if n == 1 {
		b.addObstacle(Cylinder(x, z, radius))
		return
	}
	step := (width - 2*radius) / float32(n-1)
	start := x - width/2 + radius
	for i := 0; i < n; i++ {
		b.addObstacle(Cylinder(start+float32(i)*step, z, radius))
	}
}

// addBench registers a bench obstacle and returns the height of its seat.
func (b *builder) addBench(x, z float32) float32 {
	l := b.layout
	b.addObstacle(Box(x, z, l.BenchWidth, l.BenchDepth))
	return l.BenchHeight
}

func (b *builder) addPickable(id, kind string, center math.Vec3) {
	half := b.layout.PickableSize / 2
	b.d.Pickables = append(b.d.Pickables, PickableRef{
		ID:          id,
		Kind:        kind,
		Center:      center,
		HalfExtents: math.V3(half, half, half),
	})
}

// spread returns n centre offsets evenly distributed over span, centred on 0.
func spread(n int, span float32) []float32 {
	if n <= 0 {
		return nil
	}
	pitch := span / float32(n)
	out := make([]float32, n)
	for i := range out {
		out[i] = -span/2 + pitch*(float32(i)+0.5)
	}
	return out
}

// row returns n centre offsets of items of width w separated by gap, with the
// whole row centred on 0.
func row(n int, w, gap float32) []float32 {
	if n <= 0 {
		return nil
	}
	total := float32(n)*w + float32(n-1)*gap
	uStart := -total/2 + w/2
	out := make([]float32, n)
	for i := range out {
		out[i] = uStart + float32(i)*(w+gap)
	}
	return out
}
