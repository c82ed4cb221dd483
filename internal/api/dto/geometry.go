package dto

// Position carries a coordinate pair. Pointers distinguish absent fields
// from a legitimate zero coordinate.
type Position struct {
	Lng *float64 `json:"lng"`
	Lat *float64 `json:"lat"`
}

type DistanceRequest struct {
	Position1 *Position `json:"position1"`
	Position2 *Position `json:"position2"`
}

type NextPositionRequest struct {
	Start *Position `json:"start"`
	Angle *float64  `json:"angle"`
}

type Region struct {
	Name     string     `json:"name"`
	Vertices []Position `json:"vertices"`
}

type RegionRequest struct {
	Position *Position `json:"position"`
	Region   *Region   `json:"region"`
}

type PositionResponse struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}
