// Package geo is the flat-plane geometry kernel: Euclidean distance, the
// fixed-length compass step, and the point-in-polygon test the pathfinder
// and scheduler depend on.
package geo

import (
	"drone-dispatch-service/internal/domain"
	"errors"
	"fmt"
	"math"
)

const (
	// StepLength is the fixed distance every legal move covers exactly.
	StepLength = 0.00015

	// Closeness is the arrival threshold: positions closer than this are
	// considered to be at the same place. Equal to StepLength so one step
	// can never overshoot past a goal without landing close to it.
	Closeness = 0.00015

	// AngleUnit is the compass resolution: legal directions are the 16
	// multiples of 22.5 degrees.
	AngleUnit = 22.5

	// onEdgeEpsilon bounds how far from a polygon edge a point may be and
	// still count as on it.
	onEdgeEpsilon = 1e-12
)

var (
	ErrInvalidDirection = errors.New("direction must be a multiple of 22.5 degrees")
	ErrInvalidPolygon   = errors.New("invalid polygon")
)

// Distance returns the Euclidean distance between two coordinates.
func Distance(a, b domain.Coordinate) float64 {
	dx := a.Lng - b.Lng
	dy := a.Lat - b.Lat
	return math.Sqrt(dx*dx + dy*dy)
}

// IsClose reports whether two coordinates are within the arrival threshold.
func IsClose(a, b domain.Coordinate) bool {
	return Distance(a, b) < Closeness
}

// Step advances origin by exactly StepLength in the given direction.
// The angle is a standard mathematical angle in degrees (0 = +lng axis,
// counter-clockwise), not a navigational bearing, and must be a multiple
// of 22.5 or the step fails with ErrInvalidDirection.
func Step(origin domain.Coordinate, angle float64) (domain.Coordinate, error) {
	if math.Mod(angle, AngleUnit) != 0 {
		return domain.Coordinate{}, fmt.Errorf("step at angle %v: %w", angle, ErrInvalidDirection)
	}

	rad := angle * math.Pi / 180
	return domain.Coordinate{
		Lng: origin.Lng + StepLength*math.Cos(rad),
		Lat: origin.Lat + StepLength*math.Sin(rad),
	}, nil
}

// ValidateRing checks that vertices form a closed ring usable as a polygon:
// at least 4 points with the first and last identical.
func ValidateRing(vertices []domain.Coordinate) error {
	if len(vertices) == 0 {
		return fmt.Errorf("ring is empty: %w", ErrInvalidPolygon)
	}
	// 3 vertices for a triangle plus 1 closing the ring.
	if len(vertices) < 4 {
		return fmt.Errorf("ring has %d vertices, need at least 4: %w", len(vertices), ErrInvalidPolygon)
	}

	first := vertices[0]
	last := vertices[len(vertices)-1]
	if first.Lng != last.Lng || first.Lat != last.Lat {
		return fmt.Errorf("ring is open (first vertex != last): %w", ErrInvalidPolygon)
	}

	return nil
}

// PointInPolygon reports whether a point lies inside the closed ring using
// an even-odd horizontal ray cast. Points lying exactly on an edge count
// as inside; this is the conservative convention for no-fly zones.
func PointInPolygon(point domain.Coordinate, vertices []domain.Coordinate) (bool, error) {
	if err := ValidateRing(vertices); err != nil {
		return false, fmt.Errorf("point in polygon: %w", err)
	}

	n := len(vertices)
	in := false

	for i := 0; i < n; i++ {
		curr := vertices[i]
		next := vertices[(i+1)%n]

		if onSegment(point, curr, next) {
			return true, nil
		}

		intersects := (curr.Lat > point.Lat) != (next.Lat > point.Lat) &&
			point.Lng < (next.Lng-curr.Lng)*(point.Lat-curr.Lat)/(next.Lat-curr.Lat)+curr.Lng

		if intersects {
			in = !in
		}
	}

	return in, nil
}

// onSegment reports whether p lies on the segment a-b within onEdgeEpsilon.
func onSegment(p, a, b domain.Coordinate) bool {
	abx := b.Lng - a.Lng
	aby := b.Lat - a.Lat
	apx := p.Lng - a.Lng
	apy := p.Lat - a.Lat

	segLenSq := abx*abx + aby*aby
	if segLenSq == 0 {
		return Distance(p, a) <= onEdgeEpsilon
	}

	t := (apx*abx + apy*aby) / segLenSq
	if t < 0 || t > 1 {
		return false
	}

	proj := domain.Coordinate{Lng: a.Lng + t*abx, Lat: a.Lat + t*aby}
	return Distance(p, proj) <= onEdgeEpsilon
}
