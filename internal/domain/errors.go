package domain

import "errors"

// ErrTooFewPoints is returned when a polyline is requested with fewer than two vertices.
var ErrTooFewPoints = errors.New("polyline requires at least 2 points")
