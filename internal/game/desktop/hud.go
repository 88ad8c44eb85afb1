package desktop

import (
	"fmt"

	"github.com/Faultbox/wikiwalk/internal/engine/ui2d"
	"github.com/Faultbox/wikiwalk/internal/game"
)

const (
	hudScale   = 1.5
	hudPadding = 8
)

// drawOverlay paints the HUD: room title, heading and fps top left, door
// labels over their doors and the aim hint under the crosshair.
func drawOverlay(r *ui2d.Renderer, o game.Overlay, width, height float32) {
	r.Begin()
	defer r.End()

	status := fmt.Sprintf("%s\nFacing %s   %.0f fps", o.Title, o.Heading, o.FPS)
	if o.Loading > 0 {
		status += fmt.Sprintf("\nLoading %d images", o.Loading)
	}
	panel(r, hudPadding, hudPadding, status, ui2d.ColorText)

	for _, l := range o.Doors {
		if l.X < 0 || l.X > width || l.Y < 0 || l.Y > height {
			continue
		}
		w, h := r.MeasureText(l.Text, 1)
		r.DrawText(l.X-w/2, l.Y-h/2, l.Text, 1, ui2d.ColorHighlight)
	}

	switch {
	case o.Paused:
		centred(r, width, height/2+24, "Click to walk, Esc to quit", ui2d.ColorTextDim)
	case o.Hint != "":
		centred(r, width, height/2+24, o.Hint, ui2d.ColorHighlight)
	}
}

func panel(r *ui2d.Renderer, x, y float32, text string, c ui2d.Color) {
	w, h := r.MeasureText(text, hudScale)
	r.DrawPanel(x, y, w+2*hudPadding, h+2*hudPadding, ui2d.ColorPanelBg, ui2d.ColorPanelBorder)
	r.DrawText(x+hudPadding, y+hudPadding, text, hudScale, c)
}

func centred(r *ui2d.Renderer, width, y float32, text string, c ui2d.Color) {
	w, _ := r.MeasureText(text, hudScale)
	panel(r, (width-w)/2-hudPadding, y, text, c)
}
