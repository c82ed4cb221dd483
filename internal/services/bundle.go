package services

import (
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/geo"
	"slices"
	"time"
)

// maxFlightDeliveries caps how many deliveries a single flight may bundle.
const maxFlightDeliveries = 10

// legEstimator prices a straight leg in moves. The scheduler and the
// feasibility pre-check supply the same cheap estimator today; the
// parameter exists so both call sites share one bundling algorithm and
// cannot drift apart.
type legEstimator func(from, to domain.Coordinate) int

// buildCandidate constructs a flight candidate by repeated nearest-neighbor
// selection from the launch point, admitting a delivery only while the
// running move estimate (so far + leg + return) stays inside the vehicle's
// move budget. Returns nil when no delivery fits or a cost ceiling is
// violated.
func buildCandidate(
	vehicle domain.Vehicle,
	launchPointID int64,
	launchPos domain.Coordinate,
	unassigned []domain.DeliveryRequest,
	windows []domain.AvailabilityWindow,
	date time.Time,
	estimate legEstimator,
) *domain.FlightCandidate {
	eligible := make([]domain.DeliveryRequest, 0, len(unassigned))
	for _, req := range unassigned {
		if !vehicle.CanHandle(req.Requirements.Capacity, req.Requirements.Cooling, req.Requirements.Heating) {
			continue
		}
		if !availableAt(windows, date, req.Time) {
			continue
		}
		eligible = append(eligible, req)
	}

	// Ascending id order makes nearest-neighbor ties deterministic.
	slices.SortFunc(eligible, func(a, b domain.DeliveryRequest) int { return a.ID - b.ID })

	var deliveries []domain.DeliveryRequest
	currentPos := launchPos
	movesSoFar := 0

	for len(eligible) > 0 && len(deliveries) < maxFlightDeliveries {
		// Nearest by true distance; the strict < over the id-sorted slice
		// resolves distance ties toward the smaller id.
		nearest := 0
		minDist := geo.Distance(currentPos, eligible[0].Destination)
		for i := 1; i < len(eligible); i++ {
			if d := geo.Distance(currentPos, eligible[i].Destination); d < minDist {
				minDist = d
				nearest = i
			}
		}

		next := eligible[nearest]
		legMoves := estimate(currentPos, next.Destination)
		returnMoves := estimate(next.Destination, launchPos)

		if movesSoFar+legMoves+returnMoves > vehicle.Capability.MaxMoves {
			break
		}

		deliveries = append(deliveries, next)
		eligible = slices.Delete(eligible, nearest, nearest+1)
		currentPos = next.Destination
		movesSoFar += legMoves
	}

	if len(deliveries) == 0 {
		return nil
	}

	totalMoves := routeMoves(launchPos, deliveries, estimate)
	flightCost := vehicle.FlightCost(totalMoves)

	// Every bundled delivery shares the flight cost equally; any declared
	// ceiling rejects the whole candidate.
	perDeliveryCost := flightCost / float64(len(deliveries))
	for _, d := range deliveries {
		if d.Requirements.MaxCost != nil && perDeliveryCost > *d.Requirements.MaxCost {
			return nil
		}
	}

	return &domain.FlightCandidate{
		VehicleID:     vehicle.ID,
		LaunchPointID: launchPointID,
		Deliveries:    deliveries,
		TotalMoves:    totalMoves,
		FlightCost:    flightCost,
	}
}

// routeMoves sums the estimator over the full route including the return.
func routeMoves(launchPos domain.Coordinate, deliveries []domain.DeliveryRequest, estimate legEstimator) int {
	moves := 0
	current := launchPos
	for _, d := range deliveries {
		moves += estimate(current, d.Destination)
		current = d.Destination
	}
	return moves + estimate(current, launchPos)
}
