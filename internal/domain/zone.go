package domain

// NoFlyZone is a named closed polygon no waypoint may lie inside.
// Vertices must form a closed ring: at least 4 points with the first and
// last identical. Violated forms are rejected, never silently repaired.
type NoFlyZone struct {
	Name     string
	Vertices []Coordinate
}
