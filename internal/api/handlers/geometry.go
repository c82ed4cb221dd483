package handlers

import (
	"net/http"

	"drone-dispatch-service/internal/api/dto"
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/geo"
)

// GeometryHandler exposes the plain geometry computations. These endpoints
// are stateless and need no fleet data.
type GeometryHandler struct{}

func position(p *dto.Position) (domain.Coordinate, bool) {
	if p == nil || p.Lng == nil || p.Lat == nil {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Lng: *p.Lng, Lat: *p.Lat}, true
}

func (h *GeometryHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.DistanceRequest
	if !readJSON(w, r, &req) {
		return
	}

	p1, ok1 := position(req.Position1)
	p2, ok2 := position(req.Position2)
	if !ok1 || !ok2 {
		writeError(w, r, http.StatusBadRequest, "position1 and position2 are required")
		return
	}

	writeJSON(w, r, http.StatusOK, geo.Distance(p1, p2))
}

func (h *GeometryHandler) IsClose(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.DistanceRequest
	if !readJSON(w, r, &req) {
		return
	}

	p1, ok1 := position(req.Position1)
	p2, ok2 := position(req.Position2)
	if !ok1 || !ok2 {
		writeError(w, r, http.StatusBadRequest, "position1 and position2 are required")
		return
	}

	writeJSON(w, r, http.StatusOK, geo.IsClose(p1, p2))
}

func (h *GeometryHandler) NextPosition(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.NextPositionRequest
	if !readJSON(w, r, &req) {
		return
	}

	start, ok := position(req.Start)
	if !ok || req.Angle == nil {
		writeError(w, r, http.StatusBadRequest, "start and angle are required")
		return
	}

	next, err := geo.Step(start, *req.Angle)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "angle must be a multiple of 22.5 degrees")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PositionResponse{Lng: next.Lng, Lat: next.Lat})
}

func (h *GeometryHandler) IsInRegion(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RegionRequest
	if !readJSON(w, r, &req) {
		return
	}

	p, ok := position(req.Position)
	if !ok || req.Region == nil {
		writeError(w, r, http.StatusBadRequest, "position and region are required")
		return
	}

	vertices := make([]domain.Coordinate, 0, len(req.Region.Vertices))
	for _, v := range req.Region.Vertices {
		c, ok := position(&v)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "region vertices must have lng and lat")
			return
		}
		vertices = append(vertices, c)
	}

	inside, err := geo.PointInPolygon(p, vertices)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "region must be a closed ring of at least four vertices")
		return
	}

	writeJSON(w, r, http.StatusOK, inside)
}
