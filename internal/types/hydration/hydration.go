package hydration

import (
	"time"

	"github.com/google/uuid"
)

// Record is one archived hydration day. At most one exists per user per date
// key, and once written it is never updated: re-archiving the same day is a
// no-op so concurrent rollovers cannot clobber each other.
//
// A record with IntakeML 0 means "tracked, drank nothing" and is distinct
// from no record at all ("no data for that day").
type Record struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	DateKey    string    `json:"date_key" db:"date_key"`
	IntakeML   int       `json:"intake_ml" db:"intake_ml"`
	GoalML     int       `json:"goal_ml" db:"goal_ml"`
	ArchivedAt time.Time `json:"archived_at" db:"archived_at"`
}

// LiveState is the mutable running total for the current day.
type LiveState struct {
	IntakeML int `json:"intake_ml"`
	GoalML   int `json:"goal_ml"`
}

type AddWaterRequest struct {
	DeltaML int `json:"delta_ml"`
}
