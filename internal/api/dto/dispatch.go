package dto

// DispatchRecord is one incoming medical delivery request. Date is
// "2006-01-02", time is "15:04:05" or "15:04".
type DispatchRecord struct {
	ID           int          `json:"id"`
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	Requirements Requirements `json:"requirements"`
	Delivery     *Position    `json:"delivery"`
}

type Requirements struct {
	Capacity float64  `json:"capacity"`
	Cooling  bool     `json:"cooling"`
	Heating  bool     `json:"heating"`
	MaxCost  *float64 `json:"maxCost"`
}

type VehicleResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Capability CapabilityResponse `json:"capability"`
}

type CapabilityResponse struct {
	Capacity    float64 `json:"capacity"`
	Cooling     bool    `json:"cooling"`
	Heating     bool    `json:"heating"`
	MaxMoves    int     `json:"maxMoves"`
	CostInitial float64 `json:"costInitial"`
	CostPerMove float64 `json:"costPerMove"`
	CostFinal   float64 `json:"costFinal"`
}

type AttributeQueryRequest struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

type DeliveryPathResponse struct {
	DeliveryID *int               `json:"deliveryId"`
	FlightPath []PositionResponse `json:"flightPath"`
}

type VehiclePathResponse struct {
	VehicleID  string                 `json:"droneId"`
	Deliveries []DeliveryPathResponse `json:"deliveries"`
}

type UnassignedResponse struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

type DispatchResponse struct {
	TotalCost    float64               `json:"totalCost"`
	TotalMoves   int                   `json:"totalMoves"`
	VehiclePaths []VehiclePathResponse `json:"dronePaths"`
	Unassigned   []UnassignedResponse  `json:"unassigned"`
}
