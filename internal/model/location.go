package model

import "math"

// Location is a position on the battlefield. Value type, passed by value.
type Location struct {
	X int32
	Y int32
}

// NewLocation creates a Location with the given coordinates.
func NewLocation(x, y int32) Location {
	return Location{X: x, Y: y}
}

// DistanceSquared returns the squared distance to another point
// (no sqrt on the hot path).
func (l Location) DistanceSquared(other Location) int64 {
	dx := int64(l.X - other.X)
	dy := int64(l.Y - other.Y)
	return dx*dx + dy*dy
}

// Distance returns the distance to another point.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(float64(l.DistanceSquared(other)))
}

// WithinRange reports whether other is within r units of l.
func (l Location) WithinRange(other Location, r int32) bool {
	return l.DistanceSquared(other) <= int64(r)*int64(r)
}

// StepToward returns a location moved up to dist units from l toward dest.
// If dest is closer than dist, returns dest.
func (l Location) StepToward(dest Location, dist float64) Location {
	d := l.Distance(dest)
	if d <= dist || d == 0 {
		return dest
	}
	scale := dist / d
	return Location{
		X: l.X + int32(math.Round(float64(dest.X-l.X)*scale)),
		Y: l.Y + int32(math.Round(float64(dest.Y-l.Y)*scale)),
	}
}
