package room

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/pkg/math"
	"github.com/Faultbox/wikiwalk/pkg/seedrand"
)

// cornerDoor is one of the six fixed related-article door positions.
type cornerDoor struct {
	wall WallID
	// sign of u: -1 toward the start of the wall's Right axis, +1 toward its end.
	sign float32
	name string
}

// cornerDoors lists the corner positions in the order related titles fill
// them. North wall Right is +X, east wall Right is +Z, west wall Right is -Z.
var cornerDoors = [6]cornerDoor{
	{North, -1, "north-west"},
	{North, +1, "north-east"},
	{East, -1, "east-north"},
	{West, +1, "west-north"},
	{East, +1, "east-south"},
	{West, -1, "west-south"},
}

// gallery builds an article room. Dimensions come from the seed title.
func (b *builder) gallery(seed string, p Params) {
	l := b.layout
	rng := seedrand.FromText(seed)

	width := float32(seedrand.Snap(rng.Range(float64(l.GalleryMinWidth), float64(l.GalleryMaxWidth)), float64(l.GridStep)))
	length := float32(seedrand.Snap(rng.Range(float64(l.GalleryMinLength), float64(l.GalleryMaxLength)), float64(l.GridStep)))
	if floor := float32(seedrand.SnapUp(float64(l.minGalleryLength()), float64(l.GridStep))); length < floor {
		length = floor
	}
	// The north wall must leave room between its corner doors.
	if floor := float32(seedrand.SnapUp(float64(2*(l.CornerMargin+l.CornerDoorWidth+l.DoorGap)+l.NorthDoorMinWidth), float64(l.GridStep))); width < floor {
		width = floor
	}

	b.init(ModeGallery, seed, width, length)
	d := b.d

	b.galleryDoors(p)
	b.gallerySlots(p)

	// Column, benches and planters beside the previous door.
	b.addColumn(0, 0, l.ColumnWidth, l.ColumnRadius)

	benches := 1 + rng.Intn(2)
	benchZ := []float32{d.Length / 4}
	if benches == 2 {
		benchZ = []float32{-d.Length / 4, d.Length / 4}
	}
	var seat float32
	for _, z := range benchZ {
		seat = b.addBench(0, z)
	}

	prevW := min(l.CornerDoorWidth, l.MaxDoorWidth)
	planterX := prevW/2 + 1.0
	planterZ := d.HalfL - 0.8
	b.addObstacle(Cylinder(-planterX, planterZ, l.PlanterRadius))
	b.addObstacle(Cylinder(planterX, planterZ, l.PlanterRadius))

	artifacts := 1 + rng.Intn(3)
	xs := row(artifacts, l.PickableSize, (l.BenchWidth-float32(artifacts)*l.PickableSize)/float32(artifacts+1))
	for i, x := range xs {
		b.addPickable(fmt.Sprintf("artifact-%d", i), "artifact", math.V3(x, seat+l.PickableSize/2, benchZ[0]))
	}
}

// galleryDoors places the previous door, the six corner doors and the
// overflow row on the north wall.
func (b *builder) galleryDoors(p Params) {
	l := b.layout
	d := b.d

	prev := p.previousTitle()
	prevMeta := DoorMeta{Label: "Lobby", Target: "lobby"}
	if prev != "" {
		prevMeta = DoorMeta{Label: prev, ArticleTitle: prev, Target: "previous"}
	}
	b.addDoor("previous", South, l.CornerDoorWidth, l.DoorHeight, 0, prevMeta)

	titles := make([]string, 0, len(p.RelatedTitles))
	for _, t := range p.RelatedTitles {
		if t != "" {
			titles = append(titles, t)
		}
	}

	for i, c := range cornerDoors {
		if i >= len(titles) {
			break
		}
		plane := d.Walls[c.wall]
		u := c.sign * (plane.Width/2 - l.CornerMargin - l.CornerDoorWidth/2)
		b.addDoor("related-"+c.name, c.wall, l.CornerDoorWidth, l.DoorHeight, u, DoorMeta{
			Label:        titles[i],
			ArticleTitle: titles[i],
			Target:       "article",
		})
	}

	if len(titles) > len(cornerDoors) {
		b.northRow(titles[len(cornerDoors):])
	}
}

// northRow lays the remaining titles out between the north corner doors with
// a uniform width chosen so that n*w + (n-1)*gap fills the span. When the
// width hits a clamp bound the row is centred instead, and titles that
// still do not fit at the minimum width are dropped.
func (b *builder) northRow(titles []string) {
	l := b.layout
	plane := b.d.Walls[North]
	span := l.northSpan(plane.Width)
	gap := l.DoorGap

	// addDoor never goes below MinDoorWidth, so neither may the row.
	minW := max(l.NorthDoorMinWidth, l.MinDoorWidth)
	maxW := max(min(l.NorthDoorMaxWidth, l.MaxDoorWidth), minW)

	n := min(len(titles), l.MaxNorthDoors)
	if fit := int((span + gap) / (minW + gap)); n > fit {
		n = max(fit, 0)
	}
	if n < len(titles) {
		logger.Debug("north wall doors truncated",
			zap.Int("given", len(titles)),
			zap.Int("placed", n),
			zap.Float32("span", span))
	}
	if n == 0 {
		return
	}

	w := (span - float32(n-1)*gap) / float32(n)
	w = math.Clamp(w, minW, maxW)

	for i, u := range row(n, w, gap) {
		b.addDoor(fmt.Sprintf("related-north-%d", i), North, w, l.DoorHeight, u, DoorMeta{
			Label:        titles[i],
			ArticleTitle: titles[i],
			Target:       "article",
		})
	}
}

// gallerySlots reserves the hero frame, text plaques and the photo grid.
func (b *builder) gallerySlots(p Params) {
	l := b.layout
	d := b.d
	north := d.Walls[North]
	south := d.Walls[South]

	heroW := min(l.northSpan(north.Width), 3.2)
	heroH := min(2.0, d.Height-l.DoorHeight-2*l.DoorGap)
	b.addSlot("hero", North, SlotFrame, heroW, heroH, 0, l.DoorHeight+l.DoorGap+heroH/2, SlotContent{
		Title:       p.Title,
		ImageURL:    p.MainThumbnailURL,
		Placeholder: p.MainThumbnailURL == "",
	})

	b.addSlot("title", South, SlotPlaque, 4, 0.8, 0, l.DoorHeight+0.9, SlotContent{
		Title:       p.Title,
		Placeholder: p.Title == "",
	})

	// Trail plaque at the far left of the south wall (Right is -X there),
	// lobby button just right of the previous door.
	trailW := float32(3)
	b.addSlot("trail", South, SlotPlaque, trailW, 1.2, -(south.Width/2 - l.CornerMargin - trailW/2), 1.8, SlotContent{
		Title:       "Trail",
		Text:        strings.Join(p.Trail, " > "),
		Placeholder: len(p.Trail) == 0,
	})
	b.addAction("gallery-lobby", ActionLobby, South, 0.6, l.CornerDoorWidth/2+l.DoorGap+0.3, 1.4)

	panelW := l.PanelWidth
	b.addSlot("description", East, SlotPlaque, panelW, 1.0, 0, 3.8, SlotContent{
		Title:       p.Title,
		Text:        p.Description,
		Placeholder: p.Description == "",
	})
	b.addSlot("extract", East, SlotPlaque, panelW, 2.2, 0, 2.0, SlotContent{
		Text:        p.LongExtract,
		Placeholder: p.LongExtract == "",
	})

	// Photo grid: PhotoColumns x PhotoRows frames on the west wall, top row
	// first. Missing photos leave placeholder frames.
	cols := row(l.PhotoColumns, l.PhotoWidth, l.PhotoGap)
	idx := 0
	for r := l.PhotoRows - 1; r >= 0; r-- {
		y := 1.6 + float32(r)*(l.PhotoHeight+l.PhotoGap)
		for _, u := range cols {
			content := SlotContent{Placeholder: true}
			if idx < len(p.Photos) && p.Photos[idx].URL != "" {
				content = SlotContent{Title: p.Photos[idx].Caption, ImageURL: p.Photos[idx].URL}
			}
			b.addSlot(fmt.Sprintf("photo-%d", idx), West, SlotFrame, l.PhotoWidth, l.PhotoHeight, u, y, content)
			idx++
		}
	}
}
