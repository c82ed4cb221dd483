package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"drone-dispatch-service/internal/api/dto"
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/ports"
	"drone-dispatch-service/internal/services"
)

// DispatchHandler runs the feasibility pre-check and the full scheduling
// computation over fleet data pulled from the directory.
type DispatchHandler struct {
	Directory ports.FleetDirectory
}

func parseRecords(records []dto.DispatchRecord) ([]domain.DeliveryRequest, error) {
	requests := make([]domain.DeliveryRequest, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			return nil, fmt.Errorf("request %d: invalid date %q", rec.ID, rec.Date)
		}

		t, err := domain.ParseTimeOfDay(rec.Time)
		if err != nil {
			return nil, fmt.Errorf("request %d: invalid time %q", rec.ID, rec.Time)
		}

		dest, ok := position(rec.Delivery)
		if !ok {
			return nil, fmt.Errorf("request %d: delivery position is required", rec.ID)
		}

		requests = append(requests, domain.DeliveryRequest{
			ID:          rec.ID,
			Date:        date,
			Time:        t,
			Destination: dest,
			Requirements: domain.Requirements{
				Capacity: rec.Requirements.Capacity,
				Cooling:  rec.Requirements.Cooling,
				Heating:  rec.Requirements.Heating,
				MaxCost:  rec.Requirements.MaxCost,
			},
		})
	}

	return requests, nil
}

func (h *DispatchHandler) FeasibleVehicles(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var records []dto.DispatchRecord
	if !readJSON(w, r, &records) {
		return
	}

	requests, err := parseRecords(records)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	vehicles, err := h.Directory.Vehicles(ctx)
	if err != nil {
		log.Printf("feasible vehicles: fetch vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	availability, err := h.Directory.Availability(ctx)
	if err != nil {
		log.Printf("feasible vehicles: fetch availability failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	launchPoints, err := h.Directory.LaunchPoints(ctx)
	if err != nil {
		log.Printf("feasible vehicles: fetch launch points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	ids := services.CheckBatchFeasibility(requests, vehicles, availability, launchPoints)
	writeJSON(w, r, http.StatusOK, ids)
}

func (h *DispatchHandler) compute(w http.ResponseWriter, r *http.Request) (*domain.DispatchResult, bool) {
	var records []dto.DispatchRecord
	if !readJSON(w, r, &records) {
		return nil, false
	}

	requests, err := parseRecords(records)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	ctx := r.Context()
	vehicles, err := h.Directory.Vehicles(ctx)
	if err != nil {
		log.Printf("delivery paths: fetch vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	launchPoints, err := h.Directory.LaunchPoints(ctx)
	if err != nil {
		log.Printf("delivery paths: fetch launch points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	availability, err := h.Directory.Availability(ctx)
	if err != nil {
		log.Printf("delivery paths: fetch availability failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	zones, err := h.Directory.NoFlyZones(ctx)
	if err != nil {
		log.Printf("delivery paths: fetch no-fly zones failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	result, err := services.ComputeDeliveryPaths(requests, vehicles, launchPoints, availability, zones)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	return result, true
}

func dispatchResponse(result *domain.DispatchResult) dto.DispatchResponse {
	res := dto.DispatchResponse{
		TotalCost:    result.TotalCost,
		TotalMoves:   result.TotalMoves,
		VehiclePaths: make([]dto.VehiclePathResponse, 0, len(result.Routes)),
		Unassigned:   make([]dto.UnassignedResponse, 0, len(result.Unassigned)),
	}

	for _, route := range result.Routes {
		deliveries := make([]dto.DeliveryPathResponse, 0, len(route.Paths))
		for _, path := range route.Paths {
			flightPath := make([]dto.PositionResponse, 0, len(path.Waypoints))
			for _, wp := range path.Waypoints {
				flightPath = append(flightPath, dto.PositionResponse{Lng: wp.Lng, Lat: wp.Lat})
			}
			deliveries = append(deliveries, dto.DeliveryPathResponse{
				DeliveryID: path.DeliveryID,
				FlightPath: flightPath,
			})
		}
		res.VehiclePaths = append(res.VehiclePaths, dto.VehiclePathResponse{
			VehicleID:  route.VehicleID,
			Deliveries: deliveries,
		})
	}

	for _, u := range result.Unassigned {
		res.Unassigned = append(res.Unassigned, dto.UnassignedResponse{ID: u.ID, Reason: u.Reason})
	}

	return res
}

func (h *DispatchHandler) DeliveryPaths(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	result, ok := h.compute(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dispatchResponse(result))
}

func (h *DispatchHandler) DeliveryPathsGeoJSON(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	result, ok := h.compute(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, toGeoJSON(dispatchResponse(result)))
}
