package rollover

import (
	"time"

	"nutriTrackAPI/internal/streak"
	"nutriTrackAPI/internal/types/hydration"

	"github.com/google/uuid"
)

// State is the profile snapshot the rollover decision is made from.
type State struct {
	UserID            uuid.UUID
	LastLoginDateKey  *string
	CurrentStreak     int
	LiveWaterIntakeML int
	WaterGoalML       int
}

// Plan is everything a check-in has to apply, computed up front so the
// stateful layer can apply it in a single transaction.
type Plan struct {
	Streak streak.Result

	// Archive is the hydration record closing out the previous day, nil when
	// no rollover is needed. A zero live intake still produces a record:
	// "tracked, drank nothing" must stay distinguishable from "no data".
	Archive *hydration.Record

	// ResetLive is true when the live water counter goes back to zero for
	// the new day.
	ResetLive bool
}

// Compute derives the rollover plan for a check-in on todayKey. Pure: all
// writes (and their atomicity) are the caller's concern.
//
// The archive targets the previous last-login day, not yesterday: after a
// multi-day gap the day being closed out is the last one the user was
// actually present for.
func Compute(st State, todayKey string, now time.Time) Plan {
	res := streak.Advance(st.LastLoginDateKey, st.CurrentStreak, todayKey)

	p := Plan{Streak: res}
	if !res.RolloverNeeded {
		return p
	}

	p.ResetLive = true
	if st.LastLoginDateKey != nil && *st.LastLoginDateKey != "" {
		p.Archive = &hydration.Record{
			UserID:     st.UserID,
			DateKey:    *st.LastLoginDateKey,
			IntakeML:   st.LiveWaterIntakeML,
			GoalML:     st.WaterGoalML,
			ArchivedAt: now,
		}
	}
	return p
}
