package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"drone-dispatch-service/internal/domain"
)

// HTTPDirectory implements FleetDirectory against the upstream fleet
// directory REST service.
//
// It coordinates:
//   - Payload retrieval with retry/backoff
//   - Translation from wire DTOs to domain values
//
// The client is safe for concurrent use.
type HTTPDirectory struct {
	session *http.Client
	baseURL string
}

func NewHTTPDirectory(baseURL string) (*HTTPDirectory, error) {
	if baseURL == "" {
		return nil, errors.New("directory base URL is empty")
	}

	client := &HTTPDirectory{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	return client, nil
}

// Wire DTOs mirror the directory service's JSON payloads.

type positionPayload struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type vehiclePayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Capability struct {
		Cooling     bool    `json:"cooling"`
		Heating     bool    `json:"heating"`
		Capacity    float64 `json:"capacity"`
		MaxMoves    int     `json:"maxMoves"`
		CostPerMove float64 `json:"costPerMove"`
		CostInitial float64 `json:"costInitial"`
		CostFinal   float64 `json:"costFinal"`
	} `json:"capability"`
}

type launchPointPayload struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Location positionPayload `json:"location"`
}

type availabilityPayload struct {
	LaunchPointID int64 `json:"launchPointId"`
	Vehicles      []struct {
		ID           string `json:"id"`
		Availability []struct {
			DayOfWeek string `json:"dayOfWeek"`
			From      string `json:"from"`
			Until     string `json:"until"`
		} `json:"availability"`
	} `json:"vehicles"`
}

type zonePayload struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Vertices []positionPayload `json:"vertices"`
}

func (d *HTTPDirectory) fetch(ctx context.Context, path string, out any) error {
	url := d.baseURL + path

	resp, err := d.doWithRetry(ctx, func() (*http.Request, error) {
		return d.newRequest(ctx, http.MethodGet, url, nil)
	})
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}

func (d *HTTPDirectory) Vehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var payload []vehiclePayload
	if err := d.fetch(ctx, "/vehicles", &payload); err != nil {
		return nil, err
	}

	vehicles := make([]domain.Vehicle, 0, len(payload))
	for _, p := range payload {
		vehicles = append(vehicles, domain.Vehicle{
			ID:   p.ID,
			Name: p.Name,
			Capability: domain.Capability{
				Capacity:    p.Capability.Capacity,
				Cooling:     p.Capability.Cooling,
				Heating:     p.Capability.Heating,
				MaxMoves:    p.Capability.MaxMoves,
				CostInitial: p.Capability.CostInitial,
				CostPerMove: p.Capability.CostPerMove,
				CostFinal:   p.Capability.CostFinal,
			},
		})
	}

	return vehicles, nil
}

func (d *HTTPDirectory) LaunchPoints(ctx context.Context) ([]domain.LaunchPoint, error) {
	var payload []launchPointPayload
	if err := d.fetch(ctx, "/launch-points", &payload); err != nil {
		return nil, err
	}

	points := make([]domain.LaunchPoint, 0, len(payload))
	for _, p := range payload {
		points = append(points, domain.LaunchPoint{
			ID:       p.ID,
			Name:     p.Name,
			Location: domain.Coordinate{Lng: p.Location.Lng, Lat: p.Location.Lat},
		})
	}

	return points, nil
}

func (d *HTTPDirectory) Availability(ctx context.Context) (domain.AvailabilitySet, error) {
	var payload []availabilityPayload
	if err := d.fetch(ctx, "/vehicles-for-launch-points", &payload); err != nil {
		return nil, err
	}

	set := make(domain.AvailabilitySet)
	for _, lp := range payload {
		for _, v := range lp.Vehicles {
			windows := make([]domain.AvailabilityWindow, 0, len(v.Availability))
			for _, w := range v.Availability {
				day, err := domain.ParseWeekday(w.DayOfWeek)
				if err != nil {
					return nil, fmt.Errorf("availability for vehicle %q: %w", v.ID, err)
				}
				from, err := domain.ParseTimeOfDay(w.From)
				if err != nil {
					return nil, fmt.Errorf("availability for vehicle %q: %w", v.ID, err)
				}
				until, err := domain.ParseTimeOfDay(w.Until)
				if err != nil {
					return nil, fmt.Errorf("availability for vehicle %q: %w", v.ID, err)
				}
				windows = append(windows, domain.AvailabilityWindow{
					Day:   day,
					From:  from,
					Until: until,
				})
			}

			byPoint, ok := set[v.ID]
			if !ok {
				byPoint = make(map[int64][]domain.AvailabilityWindow)
				set[v.ID] = byPoint
			}
			byPoint[lp.LaunchPointID] = append(byPoint[lp.LaunchPointID], windows...)
		}
	}

	return set, nil
}

func (d *HTTPDirectory) NoFlyZones(ctx context.Context) ([]domain.NoFlyZone, error) {
	var payload []zonePayload
	if err := d.fetch(ctx, "/no-fly-zones", &payload); err != nil {
		return nil, err
	}

	zones := make([]domain.NoFlyZone, 0, len(payload))
	for _, p := range payload {
		vertices := make([]domain.Coordinate, 0, len(p.Vertices))
		for _, v := range p.Vertices {
			vertices = append(vertices, domain.Coordinate{Lng: v.Lng, Lat: v.Lat})
		}
		zones = append(zones, domain.NoFlyZone{Name: p.Name, Vertices: vertices})
	}

	return zones, nil
}
