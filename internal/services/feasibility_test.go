package services

import (
	"drone-dispatch-service/internal/domain"
	"reflect"
	"testing"
)

func TestCheckBatchFeasibilityReturnsCapableVehicles(t *testing.T) {
	launchPoints := []domain.LaunchPoint{{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}}

	able := testVehicle("alpha")
	unable := testVehicle("bravo")
	unable.Capability.Cooling = false

	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
		"bravo": {1: {mondayWindow(t)}},
	}

	req := testRequest(t, 1, domain.Coordinate{Lng: 0.002, Lat: 0})
	req.Requirements.Cooling = true

	got := CheckBatchFeasibility(
		[]domain.DeliveryRequest{req},
		[]domain.Vehicle{able, unable},
		availability,
		launchPoints,
	)

	if !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Fatalf("feasible = %v, want [alpha]", got)
	}
}

func TestCheckBatchFeasibilityIgnoresNoFlyZones(t *testing.T) {
	// The pre-check is deliberately optimistic: it never consults zones,
	// so a destination the full scheduler would reject still counts.
	launchPoints := []domain.LaunchPoint{{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	req := testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0.001})

	got := CheckBatchFeasibility([]domain.DeliveryRequest{req}, []domain.Vehicle{vehicle}, availability, launchPoints)
	if !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Fatalf("feasible = %v, want [alpha]", got)
	}
}

func TestCheckBatchFeasibilityMoveBudget(t *testing.T) {
	launchPoints := []domain.LaunchPoint{{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}}

	vehicle := testVehicle("alpha")
	vehicle.Capability.MaxMoves = 10

	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	req := testRequest(t, 1, domain.Coordinate{Lng: 0.005, Lat: 0})

	got := CheckBatchFeasibility([]domain.DeliveryRequest{req}, []domain.Vehicle{vehicle}, availability, launchPoints)
	if len(got) != 0 {
		t.Fatalf("feasible = %v, want none", got)
	}
}

func TestCheckBatchFeasibilityAvailabilityWindow(t *testing.T) {
	launchPoints := []domain.LaunchPoint{{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	req := testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0})
	req.Time = tod(t, "23:00:00")

	got := CheckBatchFeasibility([]domain.DeliveryRequest{req}, []domain.Vehicle{vehicle}, availability, launchPoints)
	if len(got) != 0 {
		t.Fatalf("feasible = %v, want none", got)
	}
}

func TestCheckBatchFeasibilityEmptyBatch(t *testing.T) {
	got := CheckBatchFeasibility(nil, []domain.Vehicle{testVehicle("alpha")}, domain.AvailabilitySet{}, nil)
	if len(got) != 0 {
		t.Fatalf("feasible = %v, want empty", got)
	}
}
