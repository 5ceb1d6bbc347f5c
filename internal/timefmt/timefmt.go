// Package timefmt renders minute estimates as short human-readable durations.
package timefmt

import (
	"fmt"
	"math"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 1440
)

// Format renders totalMinutes the way alert messages display it. Fractions
// are dropped, never rounded: 119 minutes is "1 hour(s)".
func Format(totalMinutes float64) string {
	switch {
	case totalMinutes < minutesPerHour:
		return fmt.Sprintf("%d minute(s)", int(totalMinutes))
	case totalMinutes < minutesPerDay:
		hours := math.Floor(totalMinutes / minutesPerHour)
		return fmt.Sprintf("%d hour(s)", int(hours))
	default:
		days := math.Floor(totalMinutes / minutesPerDay)
		hours := math.Floor(math.Mod(totalMinutes, minutesPerDay) / minutesPerHour)
		return fmt.Sprintf("%d day(s) and %d hour(s)", int(days), int(hours))
	}
}
