package services

import (
	"drone-dispatch-service/internal/domain"
	"time"
)

// availableAt reports whether any window covers the request's weekday and
// time of day. Windows are inclusive on both ends.
func availableAt(windows []domain.AvailabilityWindow, date time.Time, t domain.TimeOfDay) bool {
	day := date.Weekday()
	for _, w := range windows {
		if w.Contains(day, t) {
			return true
		}
	}
	return false
}

// availableAtAny reports whether the vehicle is available at any of its
// launch points for the given date and time.
func availableAtAny(byLaunchPoint map[int64][]domain.AvailabilityWindow, date time.Time, t domain.TimeOfDay) bool {
	for _, windows := range byLaunchPoint {
		if availableAt(windows, date, t) {
			return true
		}
	}
	return false
}
