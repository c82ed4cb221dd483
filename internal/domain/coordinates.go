package domain

// Immutable geographic coordinates (longitude, latitude) in a flat plane.
// Distances over Coordinates are plain Euclidean; no geodesy anywhere.
type Coordinate struct {
	Lng float64
	Lat float64
}

// Return coordinates as [lng, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }
