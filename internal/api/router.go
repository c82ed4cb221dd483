package api

import (
	"net/http"

	"drone-dispatch-service/internal/api/handlers"
	"drone-dispatch-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(directory ports.FleetDirectory) http.Handler {
	mux := http.NewServeMux()

	geometry := &handlers.GeometryHandler{}
	vehicles := &handlers.VehicleHandler{Directory: directory}
	dispatch := &handlers.DispatchHandler{Directory: directory}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/api/v1/distance", geometry.Distance)
	mux.HandleFunc("/api/v1/is-close", geometry.IsClose)
	mux.HandleFunc("/api/v1/next-position", geometry.NextPosition)
	mux.HandleFunc("/api/v1/is-in-region", geometry.IsInRegion)

	// Registration order does not matter: ServeMux picks the longest
	// matching pattern, so query and cooling win over the detail subtree.
	mux.HandleFunc("/api/v1/vehicles", vehicles.List)
	mux.HandleFunc("/api/v1/vehicles/", vehicles.Detail)
	mux.HandleFunc("/api/v1/vehicles/query", vehicles.Query)
	mux.HandleFunc("/api/v1/vehicles/query/", vehicles.QueryPath)
	mux.HandleFunc("/api/v1/vehicles/cooling/", vehicles.Cooling)

	mux.HandleFunc("/api/v1/feasible-vehicles", dispatch.FeasibleVehicles)
	mux.HandleFunc("/api/v1/delivery-paths", dispatch.DeliveryPaths)
	mux.HandleFunc("/api/v1/delivery-paths/geojson", dispatch.DeliveryPathsGeoJSON)

	return loggingMiddleware(mux)
}
