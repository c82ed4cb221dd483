package domain

// Capability describes what a vehicle can carry and what a flight costs.
// MaxMoves bounds the total moves of a single flight including the return leg.
type Capability struct {
	Capacity    float64
	Cooling     bool
	Heating     bool
	MaxMoves    int
	CostInitial float64
	CostPerMove float64
	CostFinal   float64
}

// Vehicle is an aerial delivery vehicle. Immutable once loaded for a
// request cycle.
type Vehicle struct {
	ID         string
	Name       string
	Capability Capability
}

// CanHandle reports whether the vehicle satisfies a delivery requirement
// (payload capacity plus cooling/heating support).
func (v Vehicle) CanHandle(capacity float64, needsCooling, needsHeating bool) bool {
	if v.Capability.Capacity < capacity {
		return false
	}
	if needsCooling && !v.Capability.Cooling {
		return false
	}
	if needsHeating && !v.Capability.Heating {
		return false
	}
	return true
}

// FlightCost computes the fixed-plus-per-move cost of a flight with the
// given move count.
func (v Vehicle) FlightCost(moves int) float64 {
	return v.Capability.CostInitial +
		float64(moves)*v.Capability.CostPerMove +
		v.Capability.CostFinal
}
