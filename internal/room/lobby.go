package room

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// lobby builds the fixed-size hub room: category doors down the east and west
// walls, a central column, planters, two benches with a globe on each, a
// welcome plaque and the random-article button on the north wall.
func (b *builder) lobby(seed string, p Params) {
	l := b.layout
	b.init(ModeLobby, seed, l.LobbyWidth, l.LobbyLength)
	d := b.d

	categories := p.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	limit := 2 * l.LobbyDoorsPerWall
	if len(categories) > limit {
		logger.Debug("lobby categories truncated",
			zap.Int("given", len(categories)),
			zap.Int("placed", limit))
		categories = categories[:limit]
	}

	eastCount := (len(categories) + 1) / 2
	b.categoryDoors(East, categories[:eastCount])
	b.categoryDoors(West, categories[eastCount:])

	// Welcome plaque and random-article button on the north wall.
	b.addSlot("lobby-welcome", North, SlotPlaque, 6, 1.2, 0, l.DoorHeight+1.2, SlotContent{
		Title: "Welcome",
		Text:  "Pick a category door, or press the button for a random article.",
	})
	b.addAction("lobby-random", ActionRandomArticle, North, 0.6, 0, 1.4)

	// Column and furniture.
	b.addColumn(0, 0, l.ColumnWidth, l.ColumnRadius)
	px := d.HalfW - 1
	pz := d.HalfL - 1
	for _, c := range [][2]float32{{-px, -pz}, {px, -pz}, {-px, pz}, {px, pz}} {
		b.addObstacle(Cylinder(c[0], c[1], l.PlanterRadius))
	}
	for i, z := range []float32{-d.Length / 4, d.Length / 4} {
		seat := b.addBench(0, z)
		b.addPickable(fmt.Sprintf("lobby-globe-%d", i), "globe", math.V3(0, seat+l.PickableSize/2, z))
	}
}

// categoryDoors spreads one door per category evenly along wall, inside the
// corner margins. Door widths shrink when the pitch gets tight so adjacent
// doors never overlap.
func (b *builder) categoryDoors(wall WallID, categories []string) {
	if len(categories) == 0 {
		return
	}
	l := b.layout
	plane := b.d.Walls[wall]
	usable := plane.Width - 2*l.CornerMargin
	if fit := int(usable / (l.MinDoorWidth + l.DoorGap)); len(categories) > fit {
		categories = categories[:max(fit, 0)]
		if len(categories) == 0 {
			return
		}
	}
	pitch := usable / float32(len(categories))
	width := math.Clamp(min(l.LobbyDoorWidth, pitch-l.DoorGap), l.MinDoorWidth, l.MaxDoorWidth)

	for i, u := range spread(len(categories), usable) {
		name := categories[i]
		id := fmt.Sprintf("lobby-%s-%d", wall, i)
		b.addDoor(id, wall, width, l.DoorHeight, u, DoorMeta{
			Label:    name,
			Category: name,
			Target:   "category",
		})
		b.addSlot("label-"+id, wall, SlotPlaque, width, 0.5, u, l.DoorHeight+0.45, SlotContent{Title: name})
	}
}
