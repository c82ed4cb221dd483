// Package services holds the scheduling core: pure computations over
// externally supplied vehicle, launch point, availability and no-fly zone
// data. Nothing here performs I/O.
package services

import (
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/geo"
	"drone-dispatch-service/internal/pathfind"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// ErrAssignmentInfeasible marks a request no vehicle/launch-point
// combination can serve. It is recovered locally and reported in the
// result, never aborting the batch.
var ErrAssignmentInfeasible = errors.New("no feasible vehicle/launch-point combination")

const (
	reasonNoCapableVehicle = "no capable vehicle"
	reasonRoutingFailed    = "routing failed (no-fly zones)"
	reasonInfeasible       = "no feasible vehicle/launch-point combination"
)

// ComputeDeliveryPaths partitions a delivery batch across vehicles, launch
// points and dates, materializes obstacle-avoiding routes for the selected
// flights, and aggregates them per vehicle. It is a pure function of its
// inputs: identical inputs yield identical output.
//
// Structural input violations (malformed no-fly rings) fail the whole call.
// Per-delivery failures never do: affected requests end up in the
// Unassigned report with a reason.
func ComputeDeliveryPaths(
	requests []domain.DeliveryRequest,
	vehicles []domain.Vehicle,
	launchPoints []domain.LaunchPoint,
	availability domain.AvailabilitySet,
	zones []domain.NoFlyZone,
) (*domain.DispatchResult, error) {
	for _, zone := range zones {
		if err := geo.ValidateRing(zone.Vertices); err != nil {
			return nil, fmt.Errorf("compute delivery paths: zone %q: %w", zone.Name, err)
		}
	}

	launchPos := make(map[int64]domain.Coordinate, len(launchPoints))
	for _, lp := range launchPoints {
		launchPos[lp.ID] = lp.Location
	}

	// Phase A: keep only vehicles whose capability and availability cover
	// at least one request.
	candidates := prefilterVehicles(requests, vehicles, availability)

	reasons := make(map[int]string, len(requests))
	if len(candidates) == 0 {
		for _, req := range requests {
			reasons[req.ID] = reasonNoCapableVehicle
		}
		return buildResult(nil, requests, reasons), nil
	}

	byDate := make(map[string][]domain.DeliveryRequest)
	for _, req := range requests {
		byDate[req.DateKey()] = append(byDate[req.DateKey()], req)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var flights []domain.AssignedFlight

	for _, dateKey := range dates {
		dateRequests := byDate[dateKey]
		date := dateRequests[0].Date

		unassigned := slices.Clone(dateRequests)
		slices.SortFunc(unassigned, func(a, b domain.DeliveryRequest) int { return a.ID - b.ID })

		// Phase B: greedy bundling. Each round builds one candidate per
		// (vehicle, launch point) pair and commits the best ranked one.
		for len(unassigned) > 0 {
			best := bestCandidate(candidates, availability, launchPos, unassigned, date)
			if best == nil {
				break
			}

			vehicle, _ := vehicleByID(candidates, best.VehicleID)
			flight := materialize(*best, vehicle, launchPos[best.LaunchPointID], zones)

			if flight == nil {
				// Unroutable as a bundle; these deliveries are done for
				// this date, matching the one-attempt contract.
				for _, d := range best.Deliveries {
					reasons[d.ID] = reasonRoutingFailed
				}
			} else {
				flights = append(flights, *flight)
			}

			unassigned = removeRequests(unassigned, best.Deliveries)
		}

		// Phase C: singular fallback for whatever bundling left behind.
		for _, req := range unassigned {
			flight := assignSingularFlight(req, candidates, availability, launchPos, zones)
			if flight == nil {
				reasons[req.ID] = reasonInfeasible
				continue
			}
			flights = append(flights, *flight)
		}
	}

	return buildResult(flights, requests, reasons), nil
}

// prefilterVehicles drops vehicles that cannot serve a single request,
// either by capability or by availability window. The survivors come back
// sorted by id for deterministic iteration.
func prefilterVehicles(
	requests []domain.DeliveryRequest,
	vehicles []domain.Vehicle,
	availability domain.AvailabilitySet,
) []domain.Vehicle {
	var candidates []domain.Vehicle

	for _, v := range vehicles {
		byLaunchPoint := availability[v.ID]
		if len(byLaunchPoint) == 0 {
			continue
		}

		for _, req := range requests {
			if !v.CanHandle(req.Requirements.Capacity, req.Requirements.Cooling, req.Requirements.Heating) {
				continue
			}
			if availableAtAny(byLaunchPoint, req.Date, req.Time) {
				candidates = append(candidates, v)
				break
			}
		}
	}

	slices.SortFunc(candidates, func(a, b domain.Vehicle) int {
		return strings.Compare(a.ID, b.ID)
	})
	return candidates
}

// bestCandidate builds one greedy candidate per (vehicle, launch point)
// pair and returns the best ranked, or nil when nothing can fly.
func bestCandidate(
	candidates []domain.Vehicle,
	availability domain.AvailabilitySet,
	launchPos map[int64]domain.Coordinate,
	unassigned []domain.DeliveryRequest,
	date time.Time,
) *domain.FlightCandidate {
	var best *domain.FlightCandidate

	for _, vehicle := range candidates {
		byLaunchPoint := availability[vehicle.ID]

		for _, lpID := range sortedLaunchPointIDs(byLaunchPoint) {
			pos, ok := launchPos[lpID]
			if !ok {
				continue
			}

			candidate := buildCandidate(
				vehicle, lpID, pos,
				unassigned, byLaunchPoint[lpID], date,
				pathfind.LegMoves,
			)
			if candidate == nil {
				continue
			}
			if best == nil || candidate.Better(*best) {
				best = candidate
			}
		}
	}

	return best
}

// materialize promotes a candidate to an assigned flight, or nil when the
// pathfinder cannot route it or obstacle detours blow the move budget.
func materialize(
	candidate domain.FlightCandidate,
	vehicle domain.Vehicle,
	launchPos domain.Coordinate,
	zones []domain.NoFlyZone,
) *domain.AssignedFlight {
	paths, moves, err := pathfind.GenerateFlightPath(launchPos, candidate.Deliveries, zones)
	if err != nil {
		return nil
	}
	if moves > vehicle.Capability.MaxMoves {
		return nil
	}

	return &domain.AssignedFlight{
		VehicleID:     candidate.VehicleID,
		LaunchPointID: candidate.LaunchPointID,
		Deliveries:    candidate.Deliveries,
		Paths:         paths,
		TotalMoves:    moves,
		FlightCost:    candidate.FlightCost,
	}
}

// assignSingularFlight tries a one-delivery flight for a request left
// behind by bundling: vehicles in ascending id order, launch points in
// ascending id order, first viable combination wins.
func assignSingularFlight(
	req domain.DeliveryRequest,
	candidates []domain.Vehicle,
	availability domain.AvailabilitySet,
	launchPos map[int64]domain.Coordinate,
	zones []domain.NoFlyZone,
) *domain.AssignedFlight {
	for _, vehicle := range candidates {
		if !vehicle.CanHandle(req.Requirements.Capacity, req.Requirements.Cooling, req.Requirements.Heating) {
			continue
		}

		byLaunchPoint := availability[vehicle.ID]

		for _, lpID := range sortedLaunchPointIDs(byLaunchPoint) {
			pos, ok := launchPos[lpID]
			if !ok {
				continue
			}
			if !availableAt(byLaunchPoint[lpID], req.Date, req.Time) {
				continue
			}

			moves := pathfind.EstimateMoves(pos, []domain.DeliveryRequest{req})
			if moves > vehicle.Capability.MaxMoves {
				continue
			}

			cost := vehicle.FlightCost(moves)
			if req.Requirements.MaxCost != nil && cost > *req.Requirements.MaxCost {
				continue
			}

			candidate := domain.FlightCandidate{
				VehicleID:     vehicle.ID,
				LaunchPointID: lpID,
				Deliveries:    []domain.DeliveryRequest{req},
				TotalMoves:    moves,
				FlightCost:    cost,
			}
			if flight := materialize(candidate, vehicle, pos, zones); flight != nil {
				return flight
			}
		}
	}

	return nil
}

// buildResult groups flights by vehicle id, concatenates their paths in
// flight order, and totals materialized moves and cost. Requests missing
// from every flight land in the unassigned report.
func buildResult(
	flights []domain.AssignedFlight,
	requests []domain.DeliveryRequest,
	reasons map[int]string,
) *domain.DispatchResult {
	assigned := make(map[int]bool)
	byVehicle := make(map[string][]domain.AssignedFlight)

	result := &domain.DispatchResult{}

	for _, f := range flights {
		byVehicle[f.VehicleID] = append(byVehicle[f.VehicleID], f)
		for _, d := range f.Deliveries {
			assigned[d.ID] = true
		}
		result.TotalCost += f.FlightCost
		result.TotalMoves += f.TotalMoves
	}

	vehicleIDs := make([]string, 0, len(byVehicle))
	for id := range byVehicle {
		vehicleIDs = append(vehicleIDs, id)
	}
	sort.Strings(vehicleIDs)

	for _, id := range vehicleIDs {
		route := domain.VehicleRoute{VehicleID: id}
		for _, f := range byVehicle[id] {
			route.Paths = append(route.Paths, f.Paths...)
		}
		result.Routes = append(result.Routes, route)
	}

	ids := make([]int, 0, len(requests))
	for _, req := range requests {
		if !assigned[req.ID] {
			ids = append(ids, req.ID)
		}
	}
	sort.Ints(ids)

	for _, id := range ids {
		reason := reasons[id]
		if reason == "" {
			reason = reasonInfeasible
		}
		result.Unassigned = append(result.Unassigned, domain.UnassignedDelivery{ID: id, Reason: reason})
	}

	return result
}

func vehicleByID(vehicles []domain.Vehicle, id string) (domain.Vehicle, bool) {
	for _, v := range vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

func sortedLaunchPointIDs(byLaunchPoint map[int64][]domain.AvailabilityWindow) []int64 {
	ids := make([]int64, 0, len(byLaunchPoint))
	for id := range byLaunchPoint {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func removeRequests(from, toRemove []domain.DeliveryRequest) []domain.DeliveryRequest {
	drop := make(map[int]bool, len(toRemove))
	for _, r := range toRemove {
		drop[r.ID] = true
	}

	kept := from[:0]
	for _, r := range from {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	return kept
}
