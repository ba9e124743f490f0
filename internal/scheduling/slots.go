// Package scheduling turns mentor availability windows into discrete
// bookable slots. Pure computation; persistence happens in the services
// layer.
package scheduling

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
)

var timeLabelPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ParseTimeLabel converts a 24-hour "HH:mm" label into minutes since
// midnight.
func ParseTimeLabel(label string) (int, error) {
	m := timeLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, apperr.Newf(apperr.Validation, "invalid time label %q, expected HH:mm", label)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, apperr.Newf(apperr.Validation, "time label %q out of range", label)
	}
	return hour*60 + minute, nil
}

// Window is a half-open availability interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// SplitWindow cuts a window into consecutive slots of exactly durationMin
// minutes. A trailing remainder shorter than the duration is dropped.
func SplitWindow(startMin, endMin, durationMin int) []Window {
	var slots []Window
	for cur := startMin; cur+durationMin <= endMin; cur += durationMin {
		slots = append(slots, Window{Start: cur, End: cur + durationMin})
	}
	return slots
}

// ValidateNonOverlap checks that every window is well-formed and that no
// two windows on the same date overlap.
func ValidateNonOverlap(date string, windows []Window) error {
	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, w := range sorted {
		if w.Start >= w.End {
			return apperr.Newf(apperr.Validation, "window %s-%s on %s is empty or inverted",
				formatMinutes(w.Start), formatMinutes(w.End), date)
		}
		if i > 0 && w.Start < sorted[i-1].End {
			return apperr.Newf(apperr.Validation, "windows %s-%s and %s-%s on %s overlap",
				formatMinutes(sorted[i-1].Start), formatMinutes(sorted[i-1].End),
				formatMinutes(w.Start), formatMinutes(w.End), date)
		}
	}
	return nil
}

// Interval is an absolute slot boundary pair.
type Interval struct {
	StartAt time.Time
	EndAt   time.Time
}

// LocalToAbsolute interprets dateLocal ("2006-01-02") plus wall-clock
// minutes as local time in the given IANA zone and returns UTC instants.
// time.Date through the loaded location handles DST shifts; fixed offsets
// are never assumed.
func LocalToAbsolute(dateLocal string, startMin, endMin int, timezone string) (Interval, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Interval{}, apperr.Newf(apperr.Validation, "unknown timezone %q", timezone)
	}
	day, err := time.ParseInLocation("2006-01-02", dateLocal, loc)
	if err != nil {
		return Interval{}, apperr.Newf(apperr.Validation, "invalid date %q, expected YYYY-MM-DD", dateLocal)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), startMin/60, startMin%60, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), endMin/60, endMin%60, 0, 0, loc)
	return Interval{StartAt: start.UTC(), EndAt: end.UTC()}, nil
}

func formatMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
