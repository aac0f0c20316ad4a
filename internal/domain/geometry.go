package domain

import (
	"math"
	"strconv"
)

// Point is a 2D coordinate in drawing units. Z is always 0 on the surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return "(" + FormatNumber(p.X) + ", " + FormatNumber(p.Y) + ")"
}

// RectangleCorners returns the four corners of the axis-aligned rectangle spanned
// by two opposite corners, in drawing order: (x1,y1),(x2,y1),(x2,y2),(x1,y2).
func RectangleCorners(a, b Point) [4]Point {
	return [4]Point{
		{X: a.X, Y: a.Y},
		{X: b.X, Y: a.Y},
		{X: b.X, Y: b.Y},
		{X: a.X, Y: b.Y},
	}
}

// EllipseRatio returns minor/major, or 0 when major is 0.
func EllipseRatio(major, minor float64) float64 {
	if major == 0 {
		return 0
	}
	return minor / major
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FormatNumber renders v in the shortest decimal form that round-trips
// (5 -> "5", 2.5 -> "2.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
