package dateutil

import "time"

// KeyLayout is the canonical date key format: zero-padded YYYY-MM-DD.
const KeyLayout = "2006-01-02"

// DateKey converts an instant to the calendar-day key in the given location.
// The deployment runs with a single fixed reference timezone for all users;
// per-user timezones are not modeled.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(KeyLayout)
}

// ParseKey parses a date key back into a midnight time in the given location.
func ParseKey(key string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the signed number of calendar days from keyA to keyB.
// ok is false when either key is malformed.
func DaysBetween(keyA, keyB string) (int, bool) {
	a, okA := ParseKey(keyA, time.UTC)
	b, okB := ParseKey(keyB, time.UTC)
	if !okA || !okB {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// AddDays shifts a date key by n calendar days.
func AddDays(key string, n int) (string, bool) {
	t, ok := ParseKey(key, time.UTC)
	if !ok {
		return "", false
	}
	return t.AddDate(0, 0, n).Format(KeyLayout), true
}

// DayWindow returns the single-day window containing key.
func DayWindow(key string) (string, string, bool) {
	if _, ok := ParseKey(key, time.UTC); !ok {
		return "", "", false
	}
	return key, key, true
}

// WeekWindow returns the Monday..Sunday window containing key. Weeks are
// ISO-style, matching DATE_TRUNC('week') on the database side.
func WeekWindow(key string) (string, string, bool) {
	t, ok := ParseKey(key, time.UTC)
	if !ok {
		return "", "", false
	}
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	start := t.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start.Format(KeyLayout), end.Format(KeyLayout), true
}

// MonthWindow returns the first..last day window of the calendar month
// containing key.
func MonthWindow(key string) (string, string, bool) {
	t, ok := ParseKey(key, time.UTC)
	if !ok {
		return "", "", false
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format(KeyLayout), end.Format(KeyLayout), true
}

// InRange reports whether key falls within [startKey, endKey] inclusive.
// Date keys compare correctly as strings because the layout is zero-padded.
func InRange(key, startKey, endKey string) bool {
	return key >= startKey && key <= endKey
}
