package services

import (
	"drone-dispatch-service/internal/domain"
	"reflect"
	"testing"
	"time"
)

// monday is a fixed calendar date used across tests (2026-01-05 is a Monday).
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func tod(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	v, err := domain.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse time of day: %v", err)
	}
	return v
}

func testVehicle(id string) domain.Vehicle {
	return domain.Vehicle{
		ID:   id,
		Name: "Vehicle " + id,
		Capability: domain.Capability{
			Capacity:    5,
			Cooling:     true,
			Heating:     true,
			MaxMoves:    2000,
			CostInitial: 10,
			CostPerMove: 0.1,
			CostFinal:   5,
		},
	}
}

func mondayWindow(t *testing.T) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		Day:   time.Monday,
		From:  tod(t, "08:00:00"),
		Until: tod(t, "18:00:00"),
	}
}

func testRequest(t *testing.T, id int, dest domain.Coordinate) domain.DeliveryRequest {
	return domain.DeliveryRequest{
		ID:           id,
		Date:         monday,
		Time:         tod(t, "10:00:00"),
		Destination:  dest,
		Requirements: domain.Requirements{Capacity: 1},
	}
}

func TestComputeDeliveryPathsSingleDelivery(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Name: "Depot", Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	dest := domain.Coordinate{Lng: 0.002, Lat: 0.002}
	requests := []domain.DeliveryRequest{testRequest(t, 1, dest)}

	result, err := ComputeDeliveryPaths(requests, []domain.Vehicle{vehicle}, []domain.LaunchPoint{launch}, availability, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Unassigned) != 0 {
		t.Fatalf("unassigned = %+v, want none", result.Unassigned)
	}
	if len(result.Routes) != 1 || result.Routes[0].VehicleID != "alpha" {
		t.Fatalf("routes = %+v, want one for alpha", result.Routes)
	}
	if result.TotalMoves <= 0 {
		t.Fatalf("total moves = %d, want > 0", result.TotalMoves)
	}
	if result.TotalCost <= 0 {
		t.Fatalf("total cost = %v, want > 0", result.TotalCost)
	}

	paths := result.Routes[0].Paths
	if len(paths) != 2 {
		t.Fatalf("expected delivery leg + return leg, got %d", len(paths))
	}

	// Delivery leg ends in a hover at the destination, return leg in a
	// hover at the launch point.
	wps := paths[0].Waypoints
	if wps[len(wps)-1] != dest || wps[len(wps)-2] != dest {
		t.Fatalf("delivery leg does not end with a hover at the destination")
	}
	ret := paths[1].Waypoints
	if ret[len(ret)-1] != launch.Location || ret[len(ret)-2] != launch.Location {
		t.Fatalf("return leg does not end with a hover at the launch point")
	}
}

func TestComputeDeliveryPathsBundlesNearbyDeliveries(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	requests := []domain.DeliveryRequest{
		testRequest(t, 2, domain.Coordinate{Lng: 0.002, Lat: 0}),
		testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0}),
	}

	result, err := ComputeDeliveryPaths(requests, []domain.Vehicle{vehicle}, []domain.LaunchPoint{launch}, availability, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Unassigned) != 0 {
		t.Fatalf("unassigned = %+v, want none", result.Unassigned)
	}
	if len(result.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(result.Routes))
	}

	// One bundled flight: two delivery legs plus one return leg, nearest
	// destination (request 1) first.
	paths := result.Routes[0].Paths
	if len(paths) != 3 {
		t.Fatalf("paths = %d, want 3 (two deliveries + return)", len(paths))
	}
	if paths[0].DeliveryID == nil || *paths[0].DeliveryID != 1 {
		t.Fatalf("first leg serves %v, want delivery 1", paths[0].DeliveryID)
	}
	if paths[1].DeliveryID == nil || *paths[1].DeliveryID != 2 {
		t.Fatalf("second leg serves %v, want delivery 2", paths[1].DeliveryID)
	}
	if paths[2].DeliveryID != nil {
		t.Fatalf("third leg must be the return leg")
	}
}

func TestComputeDeliveryPathsNoCapableVehicle(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}

	vehicle := testVehicle("alpha")
	vehicle.Capability.Cooling = false

	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	req := testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0})
	req.Requirements.Cooling = true

	result, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{req},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Routes) != 0 {
		t.Fatalf("routes = %+v, want none", result.Routes)
	}
	want := []domain.UnassignedDelivery{{ID: 1, Reason: reasonNoCapableVehicle}}
	if !reflect.DeepEqual(result.Unassigned, want) {
		t.Fatalf("unassigned = %+v, want %+v", result.Unassigned, want)
	}
}

func TestComputeDeliveryPathsOutsideAvailabilityWindow(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	req := testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0})
	req.Time = tod(t, "22:00:00")

	result, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{req},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Routes) != 0 || len(result.Unassigned) != 1 {
		t.Fatalf("result = %+v, want only an unassigned report", result)
	}
}

func TestComputeDeliveryPathsCostCeilingRejects(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	// Fixed costs alone exceed the ceiling, so neither bundling nor the
	// singular fallback can serve this request.
	ceiling := 1.0
	req := testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0})
	req.Requirements.MaxCost = &ceiling

	result, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{req},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.UnassignedDelivery{{ID: 1, Reason: reasonInfeasible}}
	if !reflect.DeepEqual(result.Unassigned, want) {
		t.Fatalf("unassigned = %+v, want %+v", result.Unassigned, want)
	}
}

func TestComputeDeliveryPathsBlockedDestinationReported(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	dest := domain.Coordinate{Lng: 0.001, Lat: 0.001}
	zones := []domain.NoFlyZone{{
		Name: "restricted",
		Vertices: []domain.Coordinate{
			{Lng: 0.0005, Lat: 0.0005},
			{Lng: 0.0015, Lat: 0.0005},
			{Lng: 0.0015, Lat: 0.0015},
			{Lng: 0.0005, Lat: 0.0015},
			{Lng: 0.0005, Lat: 0.0005},
		},
	}}

	result, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{testRequest(t, 1, dest)},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		zones,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Routes) != 0 {
		t.Fatalf("routes = %+v, want none", result.Routes)
	}
	want := []domain.UnassignedDelivery{{ID: 1, Reason: reasonRoutingFailed}}
	if !reflect.DeepEqual(result.Unassigned, want) {
		t.Fatalf("unassigned = %+v, want %+v", result.Unassigned, want)
	}
}

func TestComputeDeliveryPathsMalformedZoneFailsBatch(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	zones := []domain.NoFlyZone{{
		Name:     "broken",
		Vertices: []domain.Coordinate{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 0, Lat: 0}},
	}}

	_, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0})},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		zones,
	)
	if err == nil {
		t.Fatalf("expected a structural polygon error, got nil")
	}
}

func TestComputeDeliveryPathsDeterministic(t *testing.T) {
	launchPoints := []domain.LaunchPoint{
		{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}},
		{ID: 2, Location: domain.Coordinate{Lng: 0.004, Lat: 0}},
	}
	vehicles := []domain.Vehicle{testVehicle("alpha"), testVehicle("bravo")}
	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}, 2: {mondayWindow(t)}},
		"bravo": {1: {mondayWindow(t)}, 2: {mondayWindow(t)}},
	}

	requests := []domain.DeliveryRequest{
		testRequest(t, 3, domain.Coordinate{Lng: 0.001, Lat: 0.001}),
		testRequest(t, 1, domain.Coordinate{Lng: 0.003, Lat: 0}),
		testRequest(t, 2, domain.Coordinate{Lng: 0.002, Lat: 0.002}),
	}

	first, err := ComputeDeliveryPaths(requests, vehicles, launchPoints, availability, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeDeliveryPaths(requests, vehicles, launchPoints, availability, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different assignments")
	}
}

func TestComputeDeliveryPathsRespectsMoveBudget(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}

	vehicle := testVehicle("alpha")
	vehicle.Capability.MaxMoves = 10

	availability := domain.AvailabilitySet{
		"alpha": {1: {mondayWindow(t)}},
	}

	// Round trip needs roughly 28 moves, well past the 10-move budget.
	req := testRequest(t, 1, domain.Coordinate{Lng: 0.002, Lat: 0})

	result, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{req},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Routes) != 0 || len(result.Unassigned) != 1 {
		t.Fatalf("result = %+v, want the request reported unassigned", result)
	}
}

func TestComputeDeliveryPathsSeparateDatesSeparateFlights(t *testing.T) {
	launch := domain.LaunchPoint{ID: 1, Location: domain.Coordinate{Lng: 0, Lat: 0}}
	vehicle := testVehicle("alpha")

	window := domain.AvailabilityWindow{Day: time.Monday, From: tod(t, "08:00:00"), Until: tod(t, "18:00:00")}
	nextWindow := domain.AvailabilityWindow{Day: time.Tuesday, From: tod(t, "08:00:00"), Until: tod(t, "18:00:00")}
	availability := domain.AvailabilitySet{
		"alpha": {1: {window, nextWindow}},
	}

	tuesday := monday.AddDate(0, 0, 1)

	reqA := testRequest(t, 1, domain.Coordinate{Lng: 0.001, Lat: 0})
	reqB := testRequest(t, 2, domain.Coordinate{Lng: 0.001, Lat: 0.0005})
	reqB.Date = tuesday

	result, err := ComputeDeliveryPaths(
		[]domain.DeliveryRequest{reqA, reqB},
		[]domain.Vehicle{vehicle},
		[]domain.LaunchPoint{launch},
		availability,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Unassigned) != 0 {
		t.Fatalf("unassigned = %+v, want none", result.Unassigned)
	}

	// A flight never spans dates: one vehicle, two flights of two legs each.
	if len(result.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(result.Routes))
	}
	if got := len(result.Routes[0].Paths); got != 4 {
		t.Fatalf("paths = %d, want 4 (two flights of delivery + return)", got)
	}
}
