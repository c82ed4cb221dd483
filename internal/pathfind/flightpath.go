package pathfind

import (
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/geo"
	"fmt"
	"math"
)

// GenerateFlightPath materializes a full flight: one leg per delivery in
// order, each ending with a hover (duplicated waypoint) at the destination,
// then a return leg ending with a hover at the launch point. It returns the
// per-leg paths and the materialized move count. On any leg failure the
// whole generation fails; no partial paths are ever returned.
func GenerateFlightPath(
	launch domain.Coordinate,
	deliveries []domain.DeliveryRequest,
	zones []domain.NoFlyZone,
) ([]domain.DeliveryPath, int, error) {
	paths := make([]domain.DeliveryPath, 0, len(deliveries)+1)
	current := launch
	moves := 0

	for _, delivery := range deliveries {
		leg, err := searchLeg(current, delivery.Destination, zones)
		if err != nil {
			return nil, 0, fmt.Errorf("generate flight path: delivery %d: %w", delivery.ID, err)
		}

		// Hover at the destination: arrival plus the dwell/drop event.
		waypoints := append(leg, delivery.Destination)
		moves += countMoves(waypoints)

		id := delivery.ID
		paths = append(paths, domain.DeliveryPath{DeliveryID: &id, Waypoints: waypoints})
		current = delivery.Destination
	}

	returnLeg, err := searchLeg(current, launch, zones)
	if err != nil {
		return nil, 0, fmt.Errorf("generate flight path: return leg: %w", err)
	}

	// Hover at the launch point closes the loop.
	waypoints := append(returnLeg, launch)
	moves += countMoves(waypoints)
	paths = append(paths, domain.DeliveryPath{DeliveryID: nil, Waypoints: waypoints})

	return paths, moves, nil
}

// countMoves counts actual moves in a waypoint sequence. Hovers (identical
// consecutive waypoints) are dwell events, not moves.
func countMoves(waypoints []domain.Coordinate) int {
	moves := 0
	for i := 1; i < len(waypoints); i++ {
		if waypoints[i] != waypoints[i-1] {
			moves++
		}
	}
	return moves
}

// EstimateMoves is the cheap, obstacle-blind feasibility estimator: the sum
// of ceil(distance/step) over the straight-line legs including the final
// return. It is a lower bound on the materialized move count and is used
// only for admission checks before the expensive search runs.
func EstimateMoves(launch domain.Coordinate, deliveries []domain.DeliveryRequest) int {
	moves := 0
	current := launch

	for _, delivery := range deliveries {
		moves += LegMoves(current, delivery.Destination)
		current = delivery.Destination
	}

	return moves + LegMoves(current, launch)
}

// LegMoves estimates the moves for one straight-line leg.
func LegMoves(from, to domain.Coordinate) int {
	return int(math.Ceil(geo.Distance(from, to) / geo.StepLength))
}
