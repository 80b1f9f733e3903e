package aggregate

import (
	"testing"

	"nutriTrackAPI/internal/types/hydration"
	"nutriTrackAPI/internal/types/meal"
	"nutriTrackAPI/internal/types/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealOn(key string, calories, protein float64) meal.Record {
	return meal.Record{
		DateKey: key,
		Type:    meal.TypeLunch,
		Totals:  meal.Totals{Calories: calories, Protein: protein},
	}
}

func dayRecord(key string, intake int) hydration.Record {
	return hydration.Record{DateKey: key, IntakeML: intake, GoalML: 2000}
}

var testGoals = Goals{Calories: 2000, Protein: 140, WaterML: 2000}

func TestWindowFor(t *testing.T) {
	w, err := WindowFor(summary.ModeDay, "2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", w.StartKey)
	assert.Equal(t, "2024-05-02", w.EndKey)
	assert.Equal(t, 1, w.GoalScale)

	w, err = WindowFor(summary.ModeWeek, "2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-29", w.StartKey)
	assert.Equal(t, "2024-05-05", w.EndKey)
	assert.Equal(t, 1, w.GoalScale)

	w, err = WindowFor(summary.ModeMonth, "2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", w.StartKey)
	assert.Equal(t, "2024-05-31", w.EndKey)
	assert.Equal(t, 30, w.GoalScale)

	_, err = WindowFor("year", "2024-05-02")
	assert.Error(t, err)

	_, err = WindowFor(summary.ModeDay, "nonsense")
	assert.Error(t, err)
}

func TestComputeDayTotals(t *testing.T) {
	// Scenario C: three meals of 300/450/200 kcal on the same day.
	meals := []meal.Record{
		mealOn("2024-05-02", 300, 20),
		mealOn("2024-05-02", 450, 35),
		mealOn("2024-05-02", 200, 10),
	}

	w, err := WindowFor(summary.ModeDay, "2024-05-02")
	require.NoError(t, err)

	s := Compute(meals, nil, hydration.LiveState{}, "2024-05-02", testGoals, w)

	assert.Equal(t, 950.0, s.Totals.Calories)
	assert.Equal(t, 65.0, s.Totals.Protein)
	assert.Equal(t, 3, s.MealCount)
}

func TestComputeDuplicateMealsAreSummedNotDeduplicated(t *testing.T) {
	same := mealOn("2024-05-02", 300, 20)
	meals := []meal.Record{same, same}

	w, _ := WindowFor(summary.ModeDay, "2024-05-02")
	s := Compute(meals, nil, hydration.LiveState{}, "2024-05-02", testGoals, w)

	assert.Equal(t, 600.0, s.Totals.Calories)
	assert.Equal(t, 2, s.MealCount)
}

func TestComputeDayWaterUsesLiveCounterForToday(t *testing.T) {
	w, _ := WindowFor(summary.ModeDay, "2024-05-02")

	// An archived record for today would only exist after a rollover race;
	// the live counter still wins.
	days := []hydration.Record{dayRecord("2024-05-02", 9999)}
	s := Compute(nil, days, hydration.LiveState{IntakeML: 750, GoalML: 2000}, "2024-05-02", testGoals, w)

	assert.Equal(t, 750, s.WaterIntakeML)
}

func TestComputeDayWaterUsesRecordForPastDay(t *testing.T) {
	w, _ := WindowFor(summary.ModeDay, "2024-05-01")
	days := []hydration.Record{dayRecord("2024-05-01", 1600)}

	s := Compute(nil, days, hydration.LiveState{IntakeML: 400}, "2024-05-02", testGoals, w)
	assert.Equal(t, 1600, s.WaterIntakeML)

	// No record for the past day: no data, counted as zero.
	s = Compute(nil, nil, hydration.LiveState{IntakeML: 400}, "2024-05-02", testGoals, w)
	assert.Equal(t, 0, s.WaterIntakeML)
}

func TestComputeWeekWaterSumsRecordsPlusLive(t *testing.T) {
	w, err := WindowFor(summary.ModeWeek, "2024-05-02")
	require.NoError(t, err)

	days := []hydration.Record{
		dayRecord("2024-04-29", 1000),
		dayRecord("2024-04-30", 1500),
		dayRecord("2024-05-01", 2000),
		// Outside the window, ignored.
		dayRecord("2024-04-28", 5000),
	}

	s := Compute(nil, days, hydration.LiveState{IntakeML: 500}, "2024-05-02", testGoals, w)

	assert.Equal(t, 1000+1500+2000+500, s.WaterIntakeML)
}

func TestComputeWeekSkipsTodayRecordInFavorOfLive(t *testing.T) {
	w, _ := WindowFor(summary.ModeWeek, "2024-05-02")

	days := []hydration.Record{
		dayRecord("2024-05-01", 1000),
		dayRecord("2024-05-02", 8888), // stale record for today
	}

	s := Compute(nil, days, hydration.LiveState{IntakeML: 300}, "2024-05-02", testGoals, w)
	assert.Equal(t, 1300, s.WaterIntakeML)
}

func TestComputeGoalScaling(t *testing.T) {
	// The testable contract: day-mode goal == month-mode goal / 30, by
	// construction, regardless of the month's actual day count.
	dayW, _ := WindowFor(summary.ModeDay, "2024-02-15")
	monthW, _ := WindowFor(summary.ModeMonth, "2024-02-15")
	weekW, _ := WindowFor(summary.ModeWeek, "2024-02-15")

	day := Compute(nil, nil, hydration.LiveState{}, "2024-02-15", testGoals, dayW)
	month := Compute(nil, nil, hydration.LiveState{}, "2024-02-15", testGoals, monthW)
	week := Compute(nil, nil, hydration.LiveState{}, "2024-02-15", testGoals, weekW)

	assert.Equal(t, day.CalorieGoal, month.CalorieGoal/30)
	assert.Equal(t, day.ProteinGoal, month.ProteinGoal/30)
	assert.Equal(t, day.WaterGoalML, month.WaterGoalML/30)

	// Week totals display daily goals.
	assert.Equal(t, day.CalorieGoal, week.CalorieGoal)
	assert.Equal(t, day.ProteinGoal, week.ProteinGoal)
}

func TestComputeProgressCap(t *testing.T) {
	// Scenario D: goal 2000 ml, live intake 2500 -> capped at 1.0.
	w, _ := WindowFor(summary.ModeDay, "2024-05-02")
	s := Compute(nil, nil, hydration.LiveState{IntakeML: 2500, GoalML: 2000}, "2024-05-02", testGoals, w)

	assert.Equal(t, 1.0, s.WaterProgress)
}

func TestComputeAdditivityOverAdjacentDays(t *testing.T) {
	// aggregate(day1) + aggregate(day2) == aggregate([day1, day2]) for
	// disjoint adjacent windows with no shared records.
	meals := []meal.Record{
		mealOn("2024-05-01", 500, 30),
		mealOn("2024-05-01", 300, 15),
		mealOn("2024-05-02", 700, 45),
	}
	days := []hydration.Record{
		dayRecord("2024-05-01", 1200),
		dayRecord("2024-05-02", 1800),
	}
	today := "2024-05-10" // both days are in the past

	d1, _ := WindowFor(summary.ModeDay, "2024-05-01")
	d2, _ := WindowFor(summary.ModeDay, "2024-05-02")
	both := summary.Window{Mode: summary.ModeWeek, StartKey: "2024-05-01", EndKey: "2024-05-02", GoalScale: 1}

	s1 := Compute(meals, days, hydration.LiveState{}, today, testGoals, d1)
	s2 := Compute(meals, days, hydration.LiveState{}, today, testGoals, d2)
	combined := Compute(meals, days, hydration.LiveState{}, today, testGoals, both)

	assert.Equal(t, combined.Totals, s1.Totals.Add(s2.Totals))
	assert.Equal(t, combined.WaterIntakeML, s1.WaterIntakeML+s2.WaterIntakeML)
	assert.Equal(t, combined.MealCount, s1.MealCount+s2.MealCount)
}

func TestComputeEmptyInputsYieldZeroSummary(t *testing.T) {
	w, _ := WindowFor(summary.ModeMonth, "2024-05-02")
	s := Compute(nil, nil, hydration.LiveState{}, "2024-06-15", testGoals, w)

	assert.Equal(t, meal.Totals{}, s.Totals)
	assert.Equal(t, 0, s.WaterIntakeML)
	assert.Equal(t, 0.0, s.CalorieProgress)
	assert.Equal(t, 0.0, s.WaterProgress)
}

func TestComputeMissingGoalsFallBackToDefaults(t *testing.T) {
	w, _ := WindowFor(summary.ModeDay, "2024-05-02")
	s := Compute(nil, nil, hydration.LiveState{}, "2024-05-02", Goals{}, w)

	assert.Equal(t, 2000.0, s.CalorieGoal)
	assert.Equal(t, 140.0, s.ProteinGoal)
	assert.Equal(t, 2000, s.WaterGoalML)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name        string
		total, goal float64
		want        float64
	}{
		{"zero of goal", 0, 2000, 0},
		{"half", 1000, 2000, 0.5},
		{"exact", 2000, 2000, 1},
		{"over caps at one", 2500, 2000, 1},
		{"zero goal never divides", 500, 0, 0},
		{"negative goal", 500, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(tt.total, tt.goal))
		})
	}
}
