package services

import (
	"context"
	"errors"
	"fmt"

	"nutriTrackAPI/internal/types/hydration"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HydrationService struct {
	db *pgxpool.Pool
}

func NewHydrationService(db *pgxpool.Pool) *HydrationService {
	return &HydrationService{db: db}
}

// Live returns the running water counter and goal for the current day.
func (s *HydrationService) Live(ctx context.Context, userKey string) (*hydration.LiveState, error) {
	query := `SELECT live_water_intake_ml, water_goal_ml FROM profiles WHERE user_key = $1`

	state := &hydration.LiveState{}
	err := s.db.QueryRow(ctx, query, userKey).Scan(&state.IntakeML, &state.GoalML)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to get live hydration: %w", err)
	}

	return state, nil
}

// AddDelta applies a coalesced batch of water taps as one relative update.
// The counter never goes below zero even if a correction delta overshoots.
func (s *HydrationService) AddDelta(ctx context.Context, userKey string, deltaML int) error {
	query := `
	UPDATE profiles
	SET live_water_intake_ml = GREATEST(live_water_intake_ml + $2, 0), updated_at = NOW()
	WHERE user_key = $1
	`

	result, err := s.db.Exec(ctx, query, userKey, deltaML)
	if err != nil {
		return fmt.Errorf("failed to add water delta: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

// ListRange returns archived hydration days with date keys in
// [fromKey, toKey] inclusive. Days the user never rolled over are simply
// absent, which the aggregation layer treats as "no data".
func (s *HydrationService) ListRange(ctx context.Context, userKey string, fromKey, toKey string) ([]hydration.Record, error) {
	query := `
	SELECT h.user_id, h.date_key, h.intake_ml, h.goal_ml, h.archived_at
	FROM hydration_days h
	INNER JOIN profiles p ON p.id = h.user_id
	WHERE p.user_key = $1
		AND h.date_key >= $2
		AND h.date_key <= $3
	ORDER BY h.date_key
	`

	rows, err := s.db.Query(ctx, query, userKey, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list hydration days: %w", err)
	}
	defer rows.Close()

	var records []hydration.Record
	for rows.Next() {
		var rec hydration.Record
		if err := rows.Scan(&rec.UserID, &rec.DateKey, &rec.IntakeML, &rec.GoalML, &rec.ArchivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hydration day: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hydration days: %w", err)
	}

	if records == nil {
		records = []hydration.Record{}
	}

	return records, nil
}
