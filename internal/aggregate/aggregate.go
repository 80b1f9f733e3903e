package aggregate

import (
	"fmt"

	"nutriTrackAPI/internal/dateutil"
	"nutriTrackAPI/internal/types/hydration"
	"nutriTrackAPI/internal/types/meal"
	"nutriTrackAPI/internal/types/profile"
	"nutriTrackAPI/internal/types/summary"
)

// monthGoalScale is a flat approximation: monthly goals are always daily
// goals x30, never the actual day count of the displayed month. Preserved
// from the product on purpose so day goal == month goal / 30 holds by
// construction.
const monthGoalScale = 30

// Goals are the daily goals aggregation compares against. Zero or negative
// fields fall back to the documented defaults.
type Goals struct {
	Calories float64
	Protein  float64
	WaterML  int
}

func (g Goals) withDefaults() Goals {
	if g.Calories <= 0 {
		g.Calories = profile.DefaultCalorieGoal
	}
	if g.Protein <= 0 {
		g.Protein = profile.DefaultProteinGoal
	}
	if g.WaterML <= 0 {
		g.WaterML = profile.DefaultWaterGoalML
	}
	return g
}

// WindowFor resolves the inclusive date-key window containing key for the
// given mode.
func WindowFor(mode summary.Mode, key string) (summary.Window, error) {
	var start, end string
	var ok bool
	scale := 1

	switch mode {
	case summary.ModeDay:
		start, end, ok = dateutil.DayWindow(key)
	case summary.ModeWeek:
		start, end, ok = dateutil.WeekWindow(key)
	case summary.ModeMonth:
		start, end, ok = dateutil.MonthWindow(key)
		scale = monthGoalScale
	default:
		return summary.Window{}, fmt.Errorf("unknown aggregation mode %q", mode)
	}
	if !ok {
		return summary.Window{}, fmt.Errorf("invalid date key %q", key)
	}

	return summary.Window{Mode: mode, StartKey: start, EndKey: end, GoalScale: scale}, nil
}

// Compute aggregates meal and hydration records over a window.
//
// Meal totals sum every record whose date key falls inside the window; each
// record counts once, duplicates included. Hydration substitutes the live
// counter for today wherever today is in range, because today's historical
// record does not exist yet. Archived records dated today (only possible
// under a rollover race) are skipped for the same reason.
//
// Pure over its inputs: empty collections yield a zero summary, never an
// error.
func Compute(meals []meal.Record, days []hydration.Record, live hydration.LiveState, todayKey string, goals Goals, w summary.Window) summary.Summary {
	goals = goals.withDefaults()

	s := summary.Summary{
		Window:      w,
		CalorieGoal: goals.Calories * float64(w.GoalScale),
		ProteinGoal: goals.Protein * float64(w.GoalScale),
		WaterGoalML: goals.WaterML * w.GoalScale,
	}

	for _, m := range meals {
		if !dateutil.InRange(m.DateKey, w.StartKey, w.EndKey) {
			continue
		}
		s.Totals = s.Totals.Add(m.Totals)
		s.MealCount++
	}

	todayInRange := dateutil.InRange(todayKey, w.StartKey, w.EndKey)

	switch w.Mode {
	case summary.ModeDay:
		if todayInRange {
			s.WaterIntakeML = live.IntakeML
		} else if rec, found := recordFor(days, w.StartKey); found {
			s.WaterIntakeML = rec.IntakeML
		}
	default:
		for _, d := range days {
			if !dateutil.InRange(d.DateKey, w.StartKey, w.EndKey) || d.DateKey == todayKey {
				continue
			}
			s.WaterIntakeML += d.IntakeML
		}
		if todayInRange {
			s.WaterIntakeML += live.IntakeML
		}
	}

	s.CalorieProgress = Progress(s.Totals.Calories, s.CalorieGoal)
	s.ProteinProgress = Progress(s.Totals.Protein, s.ProteinGoal)
	s.WaterProgress = Progress(float64(s.WaterIntakeML), waterGoalFor(w, goals))

	return s
}

// waterGoalFor gives the hydration comparison basis: per-day semantics, so a
// week window compares against daily goal x days in the window while month
// keeps the flat x30.
func waterGoalFor(w summary.Window, goals Goals) float64 {
	switch w.Mode {
	case summary.ModeWeek:
		return float64(goals.WaterML * w.Days())
	default:
		return float64(goals.WaterML * w.GoalScale)
	}
}

// Progress is the capped completion ratio: min(total/goal, 1), and 0 when
// the goal is not positive.
func Progress(total, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := total / goal
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func recordFor(days []hydration.Record, key string) (hydration.Record, bool) {
	for _, d := range days {
		if d.DateKey == key {
			return d, true
		}
	}
	return hydration.Record{}, false
}
