package geo

import (
	"drone-dispatch-service/internal/domain"
	"errors"
	"math"
	"testing"
)

func TestDistanceScaledTriangle(t *testing.T) {
	a := domain.Coordinate{Lng: 0, Lat: 0}
	b := domain.Coordinate{Lng: 12, Lat: 5}

	if d := Distance(a, b); d != 13.0 {
		t.Fatalf("distance = %v, want 13.0", d)
	}
}

func TestIsCloseThreshold(t *testing.T) {
	origin := domain.Coordinate{}

	if !IsClose(origin, domain.Coordinate{Lng: Closeness * 0.99}) {
		t.Fatalf("point inside threshold reported not close")
	}
	if IsClose(origin, domain.Coordinate{Lng: Closeness}) {
		t.Fatalf("point exactly at threshold reported close")
	}
}

func TestStepAllDirectionsExactLength(t *testing.T) {
	origin := domain.Coordinate{Lng: -3.1869, Lat: 55.9445}

	for k := 0; k < 16; k++ {
		angle := AngleUnit * float64(k)
		next, err := Step(origin, angle)
		if err != nil {
			t.Fatalf("step at %v: unexpected error: %v", angle, err)
		}

		if d := Distance(origin, next); math.Abs(d-StepLength) > 1e-12 {
			t.Fatalf("step at %v moved %v, want %v", angle, d, StepLength)
		}
	}
}

func TestStepAxisDirections(t *testing.T) {
	origin := domain.Coordinate{}

	east, err := Step(origin, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if east.Lng != StepLength || math.Abs(east.Lat) > 1e-18 {
		t.Fatalf("step at 0 = %+v, want (%v, 0)", east, StepLength)
	}

	north, err := Step(origin, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if north.Lat != StepLength || math.Abs(north.Lng) > 1e-18 {
		t.Fatalf("step at 90 = %+v, want (0, %v)", north, StepLength)
	}
}

func TestStepRejectsOffGridAngle(t *testing.T) {
	for _, angle := range []float64{10, 45.1, 22.4, 359} {
		if _, err := Step(domain.Coordinate{}, angle); !errors.Is(err, ErrInvalidDirection) {
			t.Fatalf("step at %v: error = %v, want ErrInvalidDirection", angle, err)
		}
	}
}

func closedUnitSquare() []domain.Coordinate {
	return []domain.Coordinate{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 0},
		{Lng: 1, Lat: 1},
		{Lng: 0, Lat: 1},
		{Lng: 0, Lat: 0},
	}
}

func TestPointInPolygonUnitSquare(t *testing.T) {
	square := closedUnitSquare()

	in, err := PointInPolygon(domain.Coordinate{Lng: 0.5, Lat: 0.5}, square)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in {
		t.Fatalf("(0.5, 0.5) reported outside the unit square")
	}

	in, err = PointInPolygon(domain.Coordinate{Lng: 1.5, Lat: 1.0}, square)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in {
		t.Fatalf("(1.5, 1.0) reported inside the unit square")
	}
}

func TestPointInPolygonEdgeIsInside(t *testing.T) {
	square := closedUnitSquare()

	for _, p := range []domain.Coordinate{
		{Lng: 0.5, Lat: 0}, // mid edge
		{Lng: 1, Lat: 1},   // vertex
	} {
		in, err := PointInPolygon(p, square)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !in {
			t.Fatalf("boundary point %+v reported outside", p)
		}
	}
}

func TestPointInPolygonRejectsMalformedRings(t *testing.T) {
	open := []domain.Coordinate{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 0},
		{Lng: 1, Lat: 1},
		{Lng: 0, Lat: 1},
	}
	if _, err := PointInPolygon(domain.Coordinate{}, open); !errors.Is(err, ErrInvalidPolygon) {
		t.Fatalf("open ring: error = %v, want ErrInvalidPolygon", err)
	}

	tooFew := []domain.Coordinate{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 0},
		{Lng: 0, Lat: 0},
	}
	if _, err := PointInPolygon(domain.Coordinate{}, tooFew); !errors.Is(err, ErrInvalidPolygon) {
		t.Fatalf("3-point ring: error = %v, want ErrInvalidPolygon", err)
	}

	if _, err := PointInPolygon(domain.Coordinate{}, nil); !errors.Is(err, ErrInvalidPolygon) {
		t.Fatalf("empty ring: error = %v, want ErrInvalidPolygon", err)
	}
}
