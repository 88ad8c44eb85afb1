package player

import (
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// degenerateEpsilon is the distance below which the player is considered to
// be exactly on an obstacle's centre.
const degenerateEpsilon = 1e-6

// resolveObstacles pushes p out of every obstacle it overlaps. Cylinders push
// radially; boxes push away from their closest point. Zero-sized or malformed
// obstacles are ignored.
func resolveObstacles(p math.Vec2, obstacles []room.Obstacle, radius, skin float32) math.Vec2 {
	for _, raw := range obstacles {
		o := raw.Sanitized()
		switch o.Kind {
		case room.ObstacleCylinder:
			p = pushFromCylinder(p, o, radius, skin)
		case room.ObstacleBox:
			p = pushFromBox(p, o, radius, skin)
		}
	}
	return p
}

func pushFromCylinder(p math.Vec2, o room.Obstacle, radius, skin float32) math.Vec2 {
	if o.Radius <= 0 {
		return p
	}
	minDist := radius + o.Radius + skin
	d := p.Sub(math.Vec2{X: o.X, Y: o.Z})
	dist := d.Length()
	if dist >= minDist {
		return p
	}
	if dist < degenerateEpsilon {
		return math.Vec2{X: o.X + minDist, Y: o.Z}
	}
	return p.Add(d.Scale((minDist - dist) / dist))
}

func pushFromBox(p math.Vec2, o room.Obstacle, radius, skin float32) math.Vec2 {
	if o.W <= 0 || o.D <= 0 {
		return p
	}
	minX, maxX := o.X-o.W/2, o.X+o.W/2
	minZ, maxZ := o.Z-o.D/2, o.Z+o.D/2
	clear := radius + skin

	closest := math.Vec2{X: math.Clamp(p.X, minX, maxX), Y: math.Clamp(p.Y, minZ, maxZ)}
	d := p.Sub(closest)
	dist := d.Length()
	if dist >= clear {
		return p
	}
	if dist >= degenerateEpsilon {
		return p.Add(d.Scale((clear - dist) / dist))
	}

	// Centre inside the box: leave through the nearest face.
	exits := [4]struct {
		depth float32
		to    math.Vec2
	}{
		{p.X - minX, math.Vec2{X: minX - clear, Y: p.Y}},
		{maxX - p.X, math.Vec2{X: maxX + clear, Y: p.Y}},
		{p.Y - minZ, math.Vec2{X: p.X, Y: minZ - clear}},
		{maxZ - p.Y, math.Vec2{X: p.X, Y: maxZ + clear}},
	}
	best := exits[0]
	for _, e := range exits[1:] {
		if e.depth < best.depth {
			best = e
		}
	}
	return best.to
}

// clampToBounds keeps p inside the room minus margin.
func clampToBounds(p math.Vec2, b Bounds, margin float32) math.Vec2 {
	limX := max(b.HalfW-margin, 0)
	limZ := max(b.HalfL-margin, 0)
	return math.Vec2{X: math.Clamp(p.X, -limX, limX), Y: math.Clamp(p.Y, -limZ, limZ)}
}

// satisfies reports whether p is inside the bounds and clear of every obstacle.
func satisfies(p math.Vec2, obstacles []room.Obstacle, b Bounds, t Tuning) bool {
	if p != clampToBounds(p, b, t.WallMargin) {
		return false
	}
	return Clear(p, obstacles, t.Radius)
}

// Clear reports whether a player of the given radius at p overlaps no
// obstacle. Touching is allowed.
func Clear(p math.Vec2, obstacles []room.Obstacle, radius float32) bool {
	const tolerance = 1e-4
	for _, raw := range obstacles {
		o := raw.Sanitized()
		switch o.Kind {
		case room.ObstacleCylinder:
			if o.Radius <= 0 {
				continue
			}
			if p.Distance(math.Vec2{X: o.X, Y: o.Z}) < radius+o.Radius-tolerance {
				return false
			}
		case room.ObstacleBox:
			if o.W <= 0 || o.D <= 0 {
				continue
			}
			closest := math.Vec2{
				X: math.Clamp(p.X, o.X-o.W/2, o.X+o.W/2),
				Y: math.Clamp(p.Y, o.Z-o.D/2, o.Z+o.D/2),
			}
			if p.Distance(closest) < radius-tolerance {
				return false
			}
		}
	}
	return true
}

// clearRings and clearSpokes bound the spiral search of nearestClear.
const (
	clearRings  = 64
	clearSpokes = 16
)

// nearestClear returns the closest point to p found on a spiral of rings
// that is inside the bounds and clear of every obstacle. Rings start due
// south of p. It returns p and false when no such point exists.
func nearestClear(p math.Vec2, obstacles []room.Obstacle, b Bounds, t Tuning) (math.Vec2, bool) {
	p = clampToBounds(p, b, t.WallMargin)
	if satisfies(p, obstacles, b, t) {
		return p, true
	}
	step := max(t.Radius/2, 0.05)
	for ring := 1; ring <= clearRings; ring++ {
		r := step * float32(ring)
		for spoke := 0; spoke < clearSpokes; spoke++ {
			a := 2 * math.Pi * float32(spoke) / clearSpokes
			c := p.Add(math.Vec2{X: math.Sin(a) * r, Y: math.Cos(a) * r})
			if c != clampToBounds(c, b, t.WallMargin) {
				continue
			}
			if satisfies(c, obstacles, b, t) {
				return c, true
			}
		}
	}
	return p, false
}
