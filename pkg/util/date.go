package util

import "time"

const (
	dayKeyLayout   = "2006-1-2"
	monthKeyLayout = "2006.1"
)

// ValidDate normalizes t to midnight and steps Feb 29 back to Feb 28.
// Upstream daily price readers reject a leap-day start date.
func ValidDate(t time.Time) time.Time {
	y, m, d := t.Date()
	if m == time.February && d == 29 {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SubtractWeeks returns the valid lookback start date n weeks before now.
func SubtractWeeks(now time.Time, n int) time.Time {
	return ValidDate(now.AddDate(0, 0, -7*n))
}

// DayKey formats t as an unpadded Y-M-D key, e.g. "2024-3-7".
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDayKey is the inverse of DayKey.
func ParseDayKey(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dayKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthKey formats t as an unpadded Y.M key, e.g. "2024.3".
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ParseMonthKey is the inverse of MonthKey.
func ParseMonthKey(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(monthKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
