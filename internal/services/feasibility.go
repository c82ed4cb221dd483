package services

import (
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/geo"
	"drone-dispatch-service/internal/pathfind"
	"math"
	"slices"
	"strings"
)

// CheckBatchFeasibility answers which vehicles could plausibly serve the
// entire batch. It reuses the greedy bundler with the cheap move
// estimator and never consults no-fly zones, so a "yes" here is
// optimistic: the full scheduler can still reject a vehicle once obstacle
// avoidance inflates the true move count.
func CheckBatchFeasibility(
	requests []domain.DeliveryRequest,
	vehicles []domain.Vehicle,
	availability domain.AvailabilitySet,
	launchPoints []domain.LaunchPoint,
) []string {
	if len(requests) == 0 {
		return []string{}
	}

	// Batch-global requirements: the vehicle must cover the heaviest
	// payload and every declared cooling/heating need.
	maxCapacity := 0.0
	needsCooling := false
	needsHeating := false
	for _, req := range requests {
		maxCapacity = math.Max(maxCapacity, req.Requirements.Capacity)
		needsCooling = needsCooling || req.Requirements.Cooling
		needsHeating = needsHeating || req.Requirements.Heating
	}

	launchPos := make(map[int64]domain.Coordinate, len(launchPoints))
	for _, lp := range launchPoints {
		launchPos[lp.ID] = lp.Location
	}

	byDate := make(map[string][]domain.DeliveryRequest)
	for _, req := range requests {
		byDate[req.DateKey()] = append(byDate[req.DateKey()], req)
	}

	var feasible []string

	for _, vehicle := range vehicles {
		if !vehicle.CanHandle(maxCapacity, needsCooling, needsHeating) {
			continue
		}

		byLaunchPoint := availability[vehicle.ID]
		if len(byLaunchPoint) == 0 {
			continue
		}

		covered := true
		for _, req := range requests {
			if !availableAtAny(byLaunchPoint, req.Date, req.Time) {
				covered = false
				break
			}
		}
		if !covered {
			continue
		}

		serviceable := true
		for _, dateRequests := range byDate {
			if canBundleAll(vehicle, byLaunchPoint, launchPos, dateRequests) {
				continue
			}
			if !canFlySingularly(vehicle, byLaunchPoint, launchPos, dateRequests) {
				serviceable = false
				break
			}
		}

		if serviceable {
			feasible = append(feasible, vehicle.ID)
		}
	}

	slices.SortFunc(feasible, strings.Compare)
	if feasible == nil {
		return []string{}
	}
	return feasible
}

// canBundleAll reports whether greedy bundling from a single launch point
// covers every request of one date within the vehicle's budgets.
func canBundleAll(
	vehicle domain.Vehicle,
	byLaunchPoint map[int64][]domain.AvailabilityWindow,
	launchPos map[int64]domain.Coordinate,
	dateRequests []domain.DeliveryRequest,
) bool {
	date := dateRequests[0].Date

	for _, lpID := range sortedLaunchPointIDs(byLaunchPoint) {
		pos, ok := launchPos[lpID]
		if !ok {
			continue
		}

		windows := byLaunchPoint[lpID]

		allAvailableHere := true
		for _, req := range dateRequests {
			if !availableAt(windows, date, req.Time) {
				allAvailableHere = false
				break
			}
		}
		if !allAvailableHere {
			continue
		}

		remaining := slices.Clone(dateRequests)
		coveredAll := true

		for len(remaining) > 0 {
			candidate := buildCandidate(
				vehicle, lpID, pos,
				remaining, windows, date,
				pathfind.LegMoves,
			)
			if candidate == nil {
				coveredAll = false
				break
			}
			remaining = removeRequests(remaining, candidate.Deliveries)
		}

		if coveredAll {
			return true
		}
	}

	return false
}

// canFlySingularly estimates a dedicated round trip from the nearest
// launch point for every request of one date.
func canFlySingularly(
	vehicle domain.Vehicle,
	byLaunchPoint map[int64][]domain.AvailabilityWindow,
	launchPos map[int64]domain.Coordinate,
	dateRequests []domain.DeliveryRequest,
) bool {
	for _, req := range dateRequests {
		nearestDist := math.MaxFloat64
		found := false

		for _, lpID := range sortedLaunchPointIDs(byLaunchPoint) {
			pos, ok := launchPos[lpID]
			if !ok {
				continue
			}
			if d := geo.Distance(pos, req.Destination); d < nearestDist {
				nearestDist = d
				found = true
			}
		}
		if !found {
			return false
		}

		moves := int(math.Ceil(nearestDist/geo.StepLength)) * 2
		if moves > vehicle.Capability.MaxMoves {
			return false
		}

		cost := vehicle.FlightCost(moves)
		if req.Requirements.MaxCost != nil && cost > *req.Requirements.MaxCost {
			return false
		}
	}

	return true
}
