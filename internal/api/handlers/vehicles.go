package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"drone-dispatch-service/internal/api/dto"
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/ports"
	"drone-dispatch-service/internal/services"
)

// VehicleHandler exposes roster retrieval and capability query endpoints.
type VehicleHandler struct {
	Directory ports.FleetDirectory
}

func vehicleResponse(v domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:   v.ID,
		Name: v.Name,
		Capability: dto.CapabilityResponse{
			Capacity:    v.Capability.Capacity,
			Cooling:     v.Capability.Cooling,
			Heating:     v.Capability.Heating,
			MaxMoves:    v.Capability.MaxMoves,
			CostInitial: v.Capability.CostInitial,
			CostPerMove: v.Capability.CostPerMove,
			CostFinal:   v.Capability.CostFinal,
		},
	}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	vehicles, err := h.Directory.Vehicles(r.Context())
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, vehicleResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Detail serves /api/v1/vehicles/{id}.
func (h *VehicleHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/vehicles/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	vehicles, err := h.Directory.Vehicles(r.Context())
	if err != nil {
		log.Printf("vehicle detail failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	v, ok := services.VehicleByID(vehicles, id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown vehicle id")
		return
	}

	writeJSON(w, r, http.StatusOK, vehicleResponse(v))
}

// Cooling serves /api/v1/vehicles/cooling/{state}.
func (h *VehicleHandler) Cooling(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/vehicles/cooling/")
	state, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "state must be true or false")
		return
	}

	vehicles, err := h.Directory.Vehicles(r.Context())
	if err != nil {
		log.Printf("cooling query failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, services.VehiclesWithCooling(vehicles, state))
}

// QueryPath serves /api/v1/vehicles/query/{attribute}/{value}, the
// equality-only shorthand for a single-predicate query.
func (h *VehicleHandler) QueryPath(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/vehicles/query/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	vehicles, err := h.Directory.Vehicles(r.Context())
	if err != nil {
		log.Printf("vehicle path query failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, services.QueryAttribute(vehicles, parts[0], parts[1]))
}

func (h *VehicleHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req []dto.AttributeQueryRequest
	if !readJSON(w, r, &req) {
		return
	}

	queries := make([]services.AttributeQuery, 0, len(req))
	for _, q := range req {
		queries = append(queries, services.AttributeQuery{
			Attribute: q.Attribute,
			Operator:  q.Operator,
			Value:     q.Value,
		})
	}

	vehicles, err := h.Directory.Vehicles(r.Context())
	if err != nil {
		log.Printf("vehicle query failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, services.QueryVehicles(vehicles, queries))
}
