// Package physics provides collision detection and distance utilities.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Length returns the distance of (x, y) from the origin.
func Length(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// PointInCircle reports whether a point lies strictly inside the circle
// centered at (cx, cy). A point exactly on the rim is outside.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// TowardOrigin returns the unit vector pointing from (x, y) to the origin.
// (x, y) must not be the origin; the result is NaN there.
func TowardOrigin(x, y float64) (dx, dy float64) {
	l := Length(x, y)
	return -x / l, -y / l
}

// Rotate rotates (x, y) counter-clockwise by angle radians.
func Rotate(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}
