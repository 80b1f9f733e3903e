package summary

import (
	"nutriTrackAPI/internal/dateutil"
	"nutriTrackAPI/internal/types/meal"
)

type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth:
		return true
	}
	return false
}

// Window is an inclusive range of date keys with the goal multiplier for the
// mode. Day and week windows display daily goals (scale 1); month windows use
// a flat x30 regardless of the month's actual length. The x30 is a deliberate
// approximation carried over from the product, so day-mode goals are always
// exactly month-mode goals / 30.
type Window struct {
	Mode      Mode   `json:"mode"`
	StartKey  string `json:"start_key"`
	EndKey    string `json:"end_key"`
	GoalScale int    `json:"goal_scale"`
}

// Days returns the number of calendar days the window spans.
func (w Window) Days() int {
	d, ok := dateutil.DaysBetween(w.StartKey, w.EndKey)
	if !ok || d < 0 {
		return 0
	}
	return d + 1
}

// Summary is the aggregated view over one window.
//
// CalorieGoal/ProteinGoal/WaterGoalML are the daily goals multiplied by
// GoalScale. Water progress uses per-day semantics for week and month
// windows: the summed intake is compared against daily goal x window days
// (week) or daily goal x 30 (month).
type Summary struct {
	Window        Window      `json:"window"`
	Totals        meal.Totals `json:"totals"`
	MealCount     int         `json:"meal_count"`
	WaterIntakeML int         `json:"water_intake_ml"`

	CalorieGoal float64 `json:"calorie_goal"`
	ProteinGoal float64 `json:"protein_goal"`
	WaterGoalML int     `json:"water_goal_ml"`

	CalorieProgress float64 `json:"calorie_progress"`
	ProteinProgress float64 `json:"protein_progress"`
	WaterProgress   float64 `json:"water_progress"`
}
