package services

import (
	"drone-dispatch-service/internal/domain"
	"strconv"
	"strings"
)

// AttributeQuery is one capability predicate: attribute, comparison
// operator (=, !=, <, >) and the value to compare against.
type AttributeQuery struct {
	Attribute string
	Operator  string
	Value     string
}

// VehiclesWithCooling returns the ids of vehicles whose cooling flag
// matches the requested state.
func VehiclesWithCooling(vehicles []domain.Vehicle, state bool) []string {
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Capability.Cooling == state {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// VehicleByID looks a vehicle up in the roster.
func VehicleByID(vehicles []domain.Vehicle, id string) (domain.Vehicle, bool) {
	for _, v := range vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

// QueryAttribute returns the ids of vehicles whose named capability equals
// the given value. Unknown attributes and unparseable values match nothing.
func QueryAttribute(vehicles []domain.Vehicle, attribute, value string) []string {
	ids := make([]string, 0, len(vehicles))
	q := AttributeQuery{Attribute: attribute, Operator: "=", Value: value}
	for _, v := range vehicles {
		if matchQuery(v, q) {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// QueryVehicles returns the ids of vehicles satisfying every query
// (conjunction).
func QueryVehicles(vehicles []domain.Vehicle, queries []AttributeQuery) []string {
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		matches := true
		for _, q := range queries {
			if !matchQuery(v, q) {
				matches = false
				break
			}
		}
		if matches {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

func matchQuery(v domain.Vehicle, q AttributeQuery) bool {
	attr := strings.ToLower(strings.TrimSpace(q.Attribute))
	op := strings.TrimSpace(q.Operator)
	val := strings.TrimSpace(q.Value)

	cap := v.Capability

	switch attr {
	case "cooling", "heating":
		want, err := strconv.ParseBool(strings.ToLower(val))
		if err != nil {
			return false
		}
		have := cap.Cooling
		if attr == "heating" {
			have = cap.Heating
		}
		switch op {
		case "=":
			return have == want
		case "!=":
			return have != want
		default:
			return false
		}
	case "capacity", "maxmoves", "costpermove", "costinitial", "costfinal":
		want, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return false
		}
		var have float64
		switch attr {
		case "capacity":
			have = cap.Capacity
		case "maxmoves":
			have = float64(cap.MaxMoves)
		case "costpermove":
			have = cap.CostPerMove
		case "costinitial":
			have = cap.CostInitial
		case "costfinal":
			have = cap.CostFinal
		}
		return compareNumeric(have, op, want)
	default:
		return false
	}
}

func compareNumeric(a float64, op string, b float64) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case ">":
		return a > b
	default:
		return false
	}
}
