package profile

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a profile is created on first check-in or when a
// stored goal is missing/non-positive.
const (
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 140
	DefaultWaterGoalML = 2000
)

type Profile struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserKey           string    `json:"user_key" db:"user_key"`
	LastLoginDateKey  *string   `json:"last_login_date_key" db:"last_login_date_key"`
	CurrentStreak     int       `json:"current_streak" db:"current_streak"`
	CalorieGoal       float64   `json:"calorie_goal" db:"calorie_goal"`
	ProteinGoal       float64   `json:"protein_goal" db:"protein_goal"`
	WaterGoalML       int       `json:"water_goal_ml" db:"water_goal_ml"`
	LiveWaterIntakeML int       `json:"live_water_intake_ml" db:"live_water_intake_ml"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateGoalsRequest struct {
	CalorieGoal *float64 `json:"calorie_goal,omitempty"`
	ProteinGoal *float64 `json:"protein_goal,omitempty"`
	WaterGoalML *int     `json:"water_goal_ml,omitempty"`
}

// CheckInResponse is returned by the check-in endpoint: the profile after the
// streak/rollover pass plus what the pass actually did.
type CheckInResponse struct {
	Profile        *Profile `json:"profile"`
	RolloverDone   bool     `json:"rollover_done"`
	ArchivedDayKey string   `json:"archived_day_key,omitempty"`
}
