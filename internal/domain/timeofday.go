package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a clock time as seconds since midnight, independent of any
// calendar date or timezone.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM:SS" (or "HH:MM") into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}

	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// AvailabilityWindow is a weekly recurring window during which a vehicle
// may launch from a given launch point. From and Until are inclusive.
type AvailabilityWindow struct {
	Day   time.Weekday
	From  TimeOfDay
	Until TimeOfDay
}

// Contains reports whether the window covers the given weekday and time.
func (w AvailabilityWindow) Contains(day time.Weekday, t TimeOfDay) bool {
	return w.Day == day && t >= w.From && t <= w.Until
}

// ParseWeekday parses a day name ("MONDAY", "monday", ...) into a
// time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("parse weekday: unknown day %q", s)
}

// AvailabilitySet maps vehicle id -> launch point id -> weekly windows.
// It is built once per request cycle and treated as read-only afterwards.
type AvailabilitySet map[string]map[int64][]AvailabilityWindow
