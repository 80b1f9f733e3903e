package streak

import (
	"nutriTrackAPI/internal/dateutil"
)

// Result is the outcome of advancing a login streak to todayKey.
type Result struct {
	NewStreak       int    `json:"new_streak"`
	RolloverNeeded  bool   `json:"rollover_needed"`
	NewLastLoginKey string `json:"new_last_login_key"`
}

// Advance computes the next streak state for a login on todayKey.
//
// A nil lastLoginKey means first-ever login: streak starts at 1 and no day
// needs closing out. A same-day re-login is a no-op so the check-in path is
// idempotent across tabs and devices. A consecutive-day login increments the
// streak; any other difference (gap, clock skew, malformed key) resets it
// to 1. Malformed keys are deliberately treated as a gap rather than an
// error: a broken streak is preferable to a failed login flow.
func Advance(lastLoginKey *string, currentStreak int, todayKey string) Result {
	if lastLoginKey == nil || *lastLoginKey == "" {
		return Result{NewStreak: 1, RolloverNeeded: false, NewLastLoginKey: todayKey}
	}

	if *lastLoginKey == todayKey {
		return Result{NewStreak: currentStreak, RolloverNeeded: false, NewLastLoginKey: todayKey}
	}

	diff, ok := dateutil.DaysBetween(*lastLoginKey, todayKey)
	if ok && diff == 1 {
		return Result{NewStreak: currentStreak + 1, RolloverNeeded: true, NewLastLoginKey: todayKey}
	}

	// Gap of two or more days, negative difference from clock skew, or an
	// unparseable stored key: the streak is over but the previous day still
	// has to be rolled over.
	return Result{NewStreak: 1, RolloverNeeded: true, NewLastLoginKey: todayKey}
}
