package handlers

import (
	"drone-dispatch-service/internal/api/dto"
	"drone-dispatch-service/internal/domain"
)

// toGeoJSON renders a dispatch result as one LineString feature per flight
// leg, tagged with the vehicle, the delivery served and the segment kind.
func toGeoJSON(res dto.DispatchResponse) dto.GeoJSONFeatureCollection {
	out := dto.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]dto.GeoJSONFeature, 0),
	}

	for _, vp := range res.VehiclePaths {
		for _, delivery := range vp.Deliveries {
			coords := make([][]float64, 0, len(delivery.FlightPath))
			for _, p := range delivery.FlightPath {
				coords = append(coords, domain.Coordinate{Lng: p.Lng, Lat: p.Lat}.CoordsToList())
			}

			segment := "delivery"
			if delivery.DeliveryID == nil {
				segment = "return"
			}

			out.Features = append(out.Features, dto.GeoJSONFeature{
				Type: "Feature",
				Properties: map[string]any{
					"droneId":     vp.VehicleID,
					"deliveryId":  delivery.DeliveryID,
					"segmentType": segment,
				},
				Geometry: dto.GeoJSONGeometry{
					Type:        "LineString",
					Coordinates: coords,
				},
			})
		}
	}

	return out
}
