package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nutriTrackAPI/internal/dateutil"
	"nutriTrackAPI/internal/rollover"
	"nutriTrackAPI/internal/types/hydration"
	"nutriTrackAPI/internal/types/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, user_key, last_login_date_key, current_streak, calorie_goal, protein_goal, water_goal_ml, live_water_intake_ml, created_at, updated_at`

type ProfileService struct {
	db  *pgxpool.Pool
	loc *time.Location
}

func NewProfileService(db *pgxpool.Pool, loc *time.Location) *ProfileService {
	return &ProfileService{db: db, loc: loc}
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID,
		&p.UserKey,
		&p.LastLoginDateKey,
		&p.CurrentStreak,
		&p.CalorieGoal,
		&p.ProteinGoal,
		&p.WaterGoalML,
		&p.LiveWaterIntakeML,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile loads the profile for a user key, creating it with defaults on
// first access.
func (s *ProfileService) GetProfile(ctx context.Context, userKey string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_key = $1`

	p, err := scanProfile(s.db.QueryRow(ctx, query, userKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.createDefault(ctx, userKey)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

func (s *ProfileService) createDefault(ctx context.Context, userKey string) (*profile.Profile, error) {
	todayKey := dateutil.DateKey(time.Now(), s.loc)

	query := `
	INSERT INTO profiles (id, user_key, last_login_date_key, current_streak, calorie_goal, protein_goal, water_goal_ml, live_water_intake_ml, created_at, updated_at)
	VALUES ($1, $2, $3, 1, $4, $5, $6, 0, NOW(), NOW())
	ON CONFLICT (user_key) DO UPDATE SET updated_at = profiles.updated_at
	RETURNING ` + profileColumns

	p, err := scanProfile(s.db.QueryRow(
		ctx,
		query,
		uuid.New(),
		userKey,
		todayKey,
		profile.DefaultCalorieGoal,
		profile.DefaultProteinGoal,
		profile.DefaultWaterGoalML,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

// CheckIn advances the login streak and, when a day boundary was crossed,
// closes out the previous day's hydration counter.
//
// Everything runs in one transaction against a row-locked profile, so two
// sessions checking in at once serialize: the first one applies the
// rollover, the second sees the already-advanced profile and no-ops. The
// archive insert uses ON CONFLICT DO NOTHING, which makes a re-run for an
// already-archived day harmless even across the transaction boundary.
func (s *ProfileService) CheckIn(ctx context.Context, userKey string) (*profile.CheckInResponse, error) {
	now := time.Now()
	todayKey := dateutil.DateKey(now, s.loc)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin check-in transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockQuery := `SELECT ` + profileColumns + ` FROM profiles WHERE user_key = $1 FOR UPDATE`
	p, err := scanProfile(tx.QueryRow(ctx, lockQuery, userKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// First-ever check-in: create with defaults, nothing to roll over.
			created, cerr := s.createDefault(ctx, userKey)
			if cerr != nil {
				return nil, cerr
			}
			return &profile.CheckInResponse{Profile: created}, nil
		}
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	if p.LastLoginDateKey != nil {
		if diff, ok := dateutil.DaysBetween(*p.LastLoginDateKey, todayKey); ok && diff < 0 {
			log.Printf("CheckIn: clock skew for %s: last login %s is after today %s, resetting streak", userKey, *p.LastLoginDateKey, todayKey)
		}
	}

	plan := rollover.Compute(rollover.State{
		UserID:            p.ID,
		LastLoginDateKey:  p.LastLoginDateKey,
		CurrentStreak:     p.CurrentStreak,
		LiveWaterIntakeML: p.LiveWaterIntakeML,
		WaterGoalML:       p.WaterGoalML,
	}, todayKey, now)

	resp := &profile.CheckInResponse{RolloverDone: plan.ResetLive}

	if plan.Archive != nil {
		if err := insertArchive(ctx, tx, plan.Archive); err != nil {
			return nil, err
		}
		resp.ArchivedDayKey = plan.Archive.DateKey
	}

	updateQuery := `
	UPDATE profiles
	SET
		current_streak = $2,
		last_login_date_key = $3,
		live_water_intake_ml = CASE WHEN $4 THEN 0 ELSE live_water_intake_ml END,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + profileColumns

	p, err = scanProfile(tx.QueryRow(ctx, updateQuery, p.ID, plan.Streak.NewStreak, plan.Streak.NewLastLoginKey, plan.ResetLive))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile on check-in: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}

	if plan.ResetLive {
		rolloverArchives.Inc()
	}

	resp.Profile = p
	return resp, nil
}

// insertArchive writes the immutable historical record for a closed-out day.
// An existing record for that (user, day) wins: the second writer in a
// concurrent-rollover race silently no-ops.
func insertArchive(ctx context.Context, tx pgx.Tx, rec *hydration.Record) error {
	query := `
	INSERT INTO hydration_days (user_id, date_key, intake_ml, goal_ml, archived_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (user_id, date_key) DO NOTHING
	`

	_, err := tx.Exec(ctx, query, rec.UserID, rec.DateKey, rec.IntakeML, rec.GoalML, rec.ArchivedAt)
	if err != nil {
		return fmt.Errorf("failed to archive hydration day %s: %w", rec.DateKey, err)
	}
	return nil
}

// UpdateGoals applies a partial goal edit. Only positive values are
// accepted; omitted fields keep their current value.
func (s *ProfileService) UpdateGoals(ctx context.Context, userKey string, req *profile.UpdateGoalsRequest) (*profile.Profile, error) {
	if req.CalorieGoal != nil && *req.CalorieGoal <= 0 {
		return nil, fmt.Errorf("calorie goal must be positive")
	}
	if req.ProteinGoal != nil && *req.ProteinGoal <= 0 {
		return nil, fmt.Errorf("protein goal must be positive")
	}
	if req.WaterGoalML != nil && *req.WaterGoalML <= 0 {
		return nil, fmt.Errorf("water goal must be positive")
	}

	query := `
	UPDATE profiles
	SET
		calorie_goal = COALESCE($2::double precision, calorie_goal),
		protein_goal = COALESCE($3::double precision, protein_goal),
		water_goal_ml = COALESCE($4::integer, water_goal_ml),
		updated_at = NOW()
	WHERE user_key = $1
	RETURNING ` + profileColumns

	p, err := scanProfile(s.db.QueryRow(ctx, query, userKey, req.CalorieGoal, req.ProteinGoal, req.WaterGoalML))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to update goals: %w", err)
	}

	return p, nil
}
