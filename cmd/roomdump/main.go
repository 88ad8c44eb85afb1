// Command roomdump builds a room the way the walker would and prints it:
// a summary, every door, slot and obstacle, and a top-down plan.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/Faultbox/wikiwalk/internal/room"
)

var (
	flagMode       = flag.String("mode", "lobby", "Room mode (lobby or gallery)")
	flagSeed       = flag.String("seed", "", "Seed title")
	flagTitle      = flag.String("title", "", "Gallery title (defaults to the seed)")
	flagCategories = flag.String("categories", "", "Comma-separated lobby categories")
	flagRelated    = flag.String("related", "", "Comma-separated related titles")
	flagTrail      = flag.String("trail", "", "Comma-separated visited titles")
	flagPhotos     = flag.Int("photos", 0, "Number of placeholder gallery photos")
	flagCols       = flag.Int("cols", 0, "Plan width in characters (default: terminal width)")
	flagPlain      = flag.Bool("plain", false, "Disable colours")
)

var (
	styleHeading = color.Style{color.FgCyan, color.OpBold}
	styleKey     = color.Style{color.FgGray}
	styleDoor    = color.Style{color.FgYellow, color.OpBold}
	styleSlot    = color.Style{color.FgBlue}
	styleSolid   = color.Style{color.FgMagenta}
	styleItem    = color.Style{color.FgGreen, color.OpBold}
)

func main() {
	flag.Parse()

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if *flagPlain || !tty {
		color.Disable()
	}

	params := room.Params{
		Categories:    split(*flagCategories),
		Title:         *flagTitle,
		RelatedTitles: split(*flagRelated),
		Trail:         split(*flagTrail),
	}
	if params.Title == "" {
		params.Title = *flagSeed
	}
	for i := 0; i < *flagPhotos; i++ {
		params.Photos = append(params.Photos, room.Photo{
			URL:     fmt.Sprintf("photo-%d.jpg", i),
			Caption: fmt.Sprintf("Photo %d", i+1),
		})
	}

	d := room.Build(room.ParseMode(*flagMode), *flagSeed, params, room.DefaultLayout())

	cols := *flagCols
	if cols <= 0 {
		cols = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			cols = min(w, 160)
		}
	}
	dump(d, cols)
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func heading(s string) { fmt.Println(styleHeading.Sprint(s)) }

func field(k string, v any) { fmt.Printf("  %s %v\n", styleKey.Sprintf("%-10s", k), v) }

func dump(d *room.Descriptor, cols int) {
	heading(fmt.Sprintf("%s %q", d.Mode, d.Seed))
	field("size", fmt.Sprintf("%.1f x %.1f x %.1f m", d.Width, d.Length, d.Height))
	field("walls", fmt.Sprintf("%.2f m thick", d.WallThickness))

	heading(fmt.Sprintf("doors (%d)", len(d.Doors)))
	for i, door := range d.Doors {
		fmt.Printf("  %s %-22s %-5s u=%6.2f w=%.2f  %s -> %s\n",
			styleDoor.Sprintf("[%c]", doorGlyph(i)), door.ID, door.Wall, door.U, door.Width,
			door.DisplayLabel(), door.Meta.Target)
	}

	heading(fmt.Sprintf("slots (%d)", len(d.Slots)))
	for _, s := range d.Slots {
		what := s.Content.Title
		if s.Content.ImageURL != "" {
			what = s.Content.ImageURL
		}
		if s.Content.Placeholder {
			what += " (placeholder)"
		}
		fmt.Printf("  %s %-5s %.2fx%.2f  %s\n", styleSlot.Sprintf("%-22s", s.ID), s.Wall, s.Width, s.Height, what)
	}

	heading(fmt.Sprintf("obstacles (%d)", len(d.Obstacles)))
	for _, o := range d.Obstacles {
		if o.Kind == room.ObstacleBox {
			fmt.Printf("  %s at (%.2f, %.2f) %.2fx%.2f\n", styleSolid.Sprint("box     "), o.X, o.Z, o.W, o.D)
		} else {
			fmt.Printf("  %s at (%.2f, %.2f) r=%.2f\n", styleSolid.Sprint("cylinder"), o.X, o.Z, o.Radius)
		}
	}

	heading(fmt.Sprintf("pickables (%d), actions (%d), asset jobs (%d)", len(d.Pickables), len(d.Actions), len(d.AssetJobs)))
	for _, pk := range d.Pickables {
		fmt.Printf("  %s %s\n", styleItem.Sprint(pk.ID), pk.Kind)
	}
	for _, a := range d.Actions {
		fmt.Printf("  %s %s on %s\n", styleItem.Sprint(a.ID), a.Action, a.Wall)
	}
	for _, j := range d.AssetJobs {
		fmt.Printf("  %s %s -> %s\n", styleItem.Sprint(j.ID), j.URL, j.SlotID)
	}

	heading("plan")
	p := newPlan(d, cols)
	for _, line := range p.Lines() {
		fmt.Println("  " + line)
	}
	glyphs := make([]rune, 0, len(p.doors))
	for g := range p.doors {
		glyphs = append(glyphs, g)
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i] < glyphs[j] })
	for _, g := range glyphs {
		fmt.Printf("  %s %s\n", styleDoor.Sprintf("%c", g), p.doors[g])
	}
	fmt.Printf("  %s\n", styleKey.Sprint("# wall  O column  = box  * pickable  ! button  @ centre"))
}
