package domain

import "time"

// Requirements declares what a delivery demands of the vehicle carrying it.
// MaxCost is optional: nil means the requester accepts any cost share.
type Requirements struct {
	Capacity float64
	Cooling  bool
	Heating  bool
	MaxCost  *float64
}

// DeliveryRequest is a single requested dispatch of a medical payload to a
// destination on a given date and time of day.
type DeliveryRequest struct {
	ID           int
	Date         time.Time
	Time         TimeOfDay
	Destination  Coordinate
	Requirements Requirements
}

// DateKey returns the calendar-date partition key for the request.
func (r DeliveryRequest) DateKey() string { return r.Date.Format("2006-01-02") }
