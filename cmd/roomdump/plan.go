package main

import (
	"github.com/Faultbox/wikiwalk/internal/room"
)

// Plan cell glyphs.
const (
	glyphFloor    = '.'
	glyphWall     = '#'
	glyphColumn   = 'O'
	glyphBox      = '='
	glyphPickable = '*'
	glyphAction   = '!'
	glyphSpawn    = '@'
)

// doorGlyphs label doors in placement order; doors past the end share '+'.
const doorGlyphs = "0123456789abcdefghijklmnopqrstuvwxyz"

// plan is a top-down character map of a room, north up. Terminal cells are
// about twice as tall as wide, so each row covers two columns' worth of Z.
type plan struct {
	rows  [][]rune
	doors map[rune]string // glyph -> door label
}

func doorGlyph(i int) rune {
	if i < len(doorGlyphs) {
		return rune(doorGlyphs[i])
	}
	return '+'
}

// newPlan draws d into a grid cols wide, including the wall ring.
func newPlan(d *room.Descriptor, cols int) *plan {
	cols = max(cols, 8)
	inner := cols - 2
	cell := d.Width / float32(inner)
	rowsInner := max(int(d.Length/(2*cell)+0.5), 2)

	p := &plan{doors: make(map[rune]string)}
	p.rows = make([][]rune, rowsInner+2)
	for r := range p.rows {
		p.rows[r] = make([]rune, cols)
		for c := range p.rows[r] {
			if r == 0 || c == 0 || r == rowsInner+1 || c == cols-1 {
				p.rows[r][c] = glyphWall
			} else {
				p.rows[r][c] = glyphFloor
			}
		}
	}

	// toCell maps room XZ into the interior grid.
	toCell := func(x, z float32) (int, int) {
		c := int((x+d.HalfW)/d.Width*float32(inner)) + 1
		r := int((z+d.HalfL)/d.Length*float32(rowsInner)) + 1
		return min(max(r, 1), rowsInner), min(max(c, 1), inner)
	}
	// toWall maps a wall point onto the wall ring.
	toWall := func(w room.WallID, x, z float32) (int, int) {
		r, c := toCell(x, z)
		switch w {
		case room.North:
			r = 0
		case room.South:
			r = rowsInner + 1
		case room.East:
			c = cols - 1
		case room.West:
			c = 0
		}
		return r, c
	}

	for _, o := range d.Obstacles {
		g, hx, hz := glyphColumn, o.Radius, o.Radius
		if o.Kind == room.ObstacleBox {
			g, hx, hz = glyphBox, o.W/2, o.D/2
		}
		r0, c0 := toCell(o.X-hx, o.Z-hz)
		r1, c1 := toCell(o.X+hx, o.Z+hz)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				p.rows[r][c] = g
			}
		}
	}
	for _, pk := range d.Pickables {
		r, c := toCell(pk.Center.X, pk.Center.Z)
		p.rows[r][c] = glyphPickable
	}
	for _, a := range d.Actions {
		r, c := toWall(a.Wall, a.Center.X, a.Center.Z)
		p.rows[r][c] = glyphAction
	}
	for i, door := range d.Doors {
		g := doorGlyph(i)
		r, c := toWall(door.Wall, door.Center.X, door.Center.Z)
		p.rows[r][c] = g
		if _, seen := p.doors[g]; !seen {
			p.doors[g] = door.DisplayLabel()
		}
	}
	r, c := toCell(0, 0)
	if p.rows[r][c] == glyphFloor {
		p.rows[r][c] = glyphSpawn
	}
	return p
}

// Lines returns the plan rows as strings.
func (p *plan) Lines() []string {
	out := make([]string, len(p.rows))
	for i, row := range p.rows {
		out[i] = string(row)
	}
	return out
}
