package domain

// FlightCandidate is a proposed (vehicle, launch point, ordered deliveries)
// assignment before path legality is confirmed. Moves and cost come from
// the straight-line estimator; it is never persisted.
type FlightCandidate struct {
	VehicleID     string
	LaunchPointID int64
	Deliveries    []DeliveryRequest
	TotalMoves    int
	FlightCost    float64
}

func (c FlightCandidate) DeliveryCount() int { return len(c.Deliveries) }

func (c FlightCandidate) CostPerDelivery() float64 {
	if len(c.Deliveries) == 0 {
		return 0
	}
	return c.FlightCost / float64(len(c.Deliveries))
}

func (c FlightCandidate) MovesPerDelivery() float64 {
	if len(c.Deliveries) == 0 {
		return 0
	}
	return float64(c.TotalMoves) / float64(len(c.Deliveries))
}

// Better ranks candidates: more deliveries first, then fewer moves per
// delivery, then lower cost per delivery, then lexicographically smaller
// vehicle id, then numerically smaller launch point id. The full chain of
// tie-breakers keeps candidate selection deterministic.
func (c FlightCandidate) Better(o FlightCandidate) bool {
	if len(c.Deliveries) != len(o.Deliveries) {
		return len(c.Deliveries) > len(o.Deliveries)
	}
	if c.MovesPerDelivery() != o.MovesPerDelivery() {
		return c.MovesPerDelivery() < o.MovesPerDelivery()
	}
	if c.CostPerDelivery() != o.CostPerDelivery() {
		return c.CostPerDelivery() < o.CostPerDelivery()
	}
	if c.VehicleID != o.VehicleID {
		return c.VehicleID < o.VehicleID
	}
	return c.LaunchPointID < o.LaunchPointID
}

// DeliveryPath is one materialized leg of a flight: the waypoint sequence
// serving a single delivery, or the return leg when DeliveryID is nil.
// A stationary dwell (arrival/drop, final return) appears as two identical
// consecutive waypoints.
type DeliveryPath struct {
	DeliveryID *int
	Waypoints  []Coordinate
}

// AssignedFlight is a FlightCandidate promoted to a concrete
// obstacle-avoiding route. TotalMoves counts materialized moves, which can
// exceed the candidate's straight-line estimate when detours were needed.
type AssignedFlight struct {
	VehicleID     string
	LaunchPointID int64
	Deliveries    []DeliveryRequest
	Paths         []DeliveryPath
	TotalMoves    int
	FlightCost    float64
}

// VehicleRoute aggregates every path flown by one vehicle, in flight order.
type VehicleRoute struct {
	VehicleID string
	Paths     []DeliveryPath
}

// UnassignedDelivery records a request no flight could serve, and why.
type UnassignedDelivery struct {
	ID     int
	Reason string
}

// DispatchResult is the outcome of one scheduling computation.
type DispatchResult struct {
	TotalCost  float64
	TotalMoves int
	Routes     []VehicleRoute
	Unassigned []UnassignedDelivery
}
