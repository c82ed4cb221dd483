package ports

import (
	"context"
	"drone-dispatch-service/internal/domain"
)

// Port: a boundary for retrieving fleet data from the upstream directory
// service. The scheduling core never calls this itself; the request layer
// fetches everything up front and passes plain values in.
type FleetDirectory interface {
	// Retrieve the full vehicle roster.
	Vehicles(ctx context.Context) ([]domain.Vehicle, error)
	// Retrieve all launch point locations.
	LaunchPoints(ctx context.Context) ([]domain.LaunchPoint, error)
	// Retrieve per-vehicle weekly availability windows per launch point.
	Availability(ctx context.Context) (domain.AvailabilitySet, error)
	// Retrieve the declared no-fly zones.
	NoFlyZones(ctx context.Context) ([]domain.NoFlyZone, error)
}
