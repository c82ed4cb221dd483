package directory

import (
	"context"

	"drone-dispatch-service/internal/domain"
)

// StaticDirectory serves fixed fleet data. Used in tests and local runs
// without an upstream directory service.
type StaticDirectory struct {
	FleetVehicles     []domain.Vehicle
	FleetLaunchPoints []domain.LaunchPoint
	FleetAvailability domain.AvailabilitySet
	FleetNoFlyZones   []domain.NoFlyZone
}

func (s *StaticDirectory) Vehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.FleetVehicles, nil
}

func (s *StaticDirectory) LaunchPoints(ctx context.Context) ([]domain.LaunchPoint, error) {
	return s.FleetLaunchPoints, nil
}

func (s *StaticDirectory) Availability(ctx context.Context) (domain.AvailabilitySet, error) {
	return s.FleetAvailability, nil
}

func (s *StaticDirectory) NoFlyZones(ctx context.Context) ([]domain.NoFlyZone, error) {
	return s.FleetNoFlyZones, nil
}
