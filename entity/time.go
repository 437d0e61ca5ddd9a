package entity

import (
	"strconv"
	"strings"
)

// Festival days run past midnight. Hours in [0,6) belong to the next calendar
// day and are shifted by 24 hours so that "00:30" sorts after "23:45" of the
// same nominal day.
const nightEndHour = 6

// ParseTimeToMinutes converts an "HH:MM" time-of-day string to minutes on a
// scale that is totally ordered within one festival day. Malformed input
// degrades to 0 ("start of day") instead of failing, so one bad entry cannot
// take down schedule rendering.
func ParseTimeToMinutes(t string) int {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}

	if hour >= 0 && hour < nightEndHour {
		hour += 24
	}

	return hour*60 + minute
}

// FormatTimeForDisplay marks times past midnight with a "(+1)" prefix.
func FormatTimeForDisplay(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return t
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return t
	}

	if hour >= 0 && hour < nightEndHour {
		return "(+1) " + t
	}

	return t
}

// DurationMinutes returns the length of a performance in minutes. A negative
// naive result means the end time was not flagged as post-midnight; wrap it
// around a full day instead of returning garbage.
func DurationMinutes(start, end string) int {
	d := ParseTimeToMinutes(end) - ParseTimeToMinutes(start)
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// Overlaps reports whether two half-open time ranges intersect. Touching
// endpoints (one ends exactly when the other starts) do not count.
func Overlaps(startA, endA, startB, endB string) bool {
	return ParseTimeToMinutes(startA) < ParseTimeToMinutes(endB) &&
		ParseTimeToMinutes(endA) > ParseTimeToMinutes(startB)
}
