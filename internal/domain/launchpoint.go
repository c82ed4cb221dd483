package domain

// LaunchPoint is a fixed location vehicles depart from and return to.
type LaunchPoint struct {
	ID       int64
	Name     string
	Location Coordinate
}
