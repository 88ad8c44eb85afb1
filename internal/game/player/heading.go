package player

import "github.com/Faultbox/wikiwalk/pkg/math"

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Cardinal returns the 8-way compass heading for yaw. North is -Z, east is +X.
func Cardinal(yaw float32) string {
	bearing := -math.WrapAngle(yaw)
	if bearing < 0 {
		bearing += 2 * math.Pi
	}
	sector := int(bearing/(math.Pi/4)+0.5) % 8
	return cardinals[sector]
}
