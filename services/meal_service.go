package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutriTrackAPI/internal/types/meal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MealService struct {
	db *pgxpool.Pool
}

func NewMealService(db *pgxpool.Pool) *MealService {
	return &MealService{db: db}
}

func (s *MealService) userIDFor(ctx context.Context, userKey string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM profiles WHERE user_key = $1`, userKey).Scan(&userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("profile not found: %w", err)
	}
	return userID, nil
}

// CreateMeal logs a new meal. Totals are always recomputed from the items
// server-side; whatever the client sent for them is ignored.
func (s *MealService) CreateMeal(ctx context.Context, userKey string, req *meal.CreateRequest) (*meal.Record, error) {
	userID, err := s.userIDFor(ctx, userKey)
	if err != nil {
		return nil, err
	}

	rec := &meal.Record{
		ID:        uuid.New(),
		UserID:    userID,
		DateKey:   req.DateKey,
		Type:      req.Type,
		Items:     req.Items,
		CreatedAt: time.Now(),
	}
	if rec.Items == nil {
		rec.Items = []meal.Item{}
	}
	rec.Recompute()

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	itemsJSON, err := json.Marshal(rec.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meal items: %w", err)
	}

	query := `
	INSERT INTO meals (id, user_id, date_key, meal_type, items, total_calories, total_protein, total_carbs, total_fat, total_fiber, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = s.db.Exec(ctx, query,
		rec.ID, rec.UserID, rec.DateKey, rec.Type, itemsJSON,
		rec.Totals.Calories, rec.Totals.Protein, rec.Totals.Carbs, rec.Totals.Fat, rec.Totals.Fiber,
		rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	return rec, nil
}

// ReplaceMeal is the only edit operation: the stored record is replaced
// wholesale. Sending items recomputes the totals from them; sending totals
// instead is a manual override and collapses the items to a single synthetic
// entry so totals and items stay consistent.
func (s *MealService) ReplaceMeal(ctx context.Context, userKey string, mealID uuid.UUID, req *meal.ReplaceRequest) (*meal.Record, error) {
	userID, err := s.userIDFor(ctx, userKey)
	if err != nil {
		return nil, err
	}

	rec, err := s.getMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Totals != nil:
		rec.OverrideTotals(*req.Totals)
	case req.Items != nil:
		rec.Items = req.Items
		rec.Recompute()
	default:
		return nil, fmt.Errorf("either items or totals must be provided")
	}

	itemsJSON, err := json.Marshal(rec.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meal items: %w", err)
	}

	query := `
	UPDATE meals
	SET items = $3, total_calories = $4, total_protein = $5, total_carbs = $6, total_fat = $7, total_fiber = $8
	WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.Exec(ctx, query,
		mealID, userID, itemsJSON,
		rec.Totals.Calories, rec.Totals.Protein, rec.Totals.Carbs, rec.Totals.Fat, rec.Totals.Fiber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to replace meal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("meal not found")
	}

	return rec, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, userKey string, mealID uuid.UUID) error {
	userID, err := s.userIDFor(ctx, userKey)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, mealID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("meal not found")
	}

	return nil
}

func (s *MealService) getMeal(ctx context.Context, userID uuid.UUID, mealID uuid.UUID) (*meal.Record, error) {
	query := `
	SELECT id, user_id, date_key, meal_type, items, total_calories, total_protein, total_carbs, total_fat, total_fiber, created_at
	FROM meals
	WHERE id = $1 AND user_id = $2
	`

	rec, err := scanMeal(s.db.QueryRow(ctx, query, mealID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("meal not found")
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return rec, nil
}

// ListRange returns the user's meals with date keys in [fromKey, toKey]
// inclusive, ordered for intra-day display.
func (s *MealService) ListRange(ctx context.Context, userKey string, fromKey, toKey string) ([]meal.Record, error) {
	userID, err := s.userIDFor(ctx, userKey)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, date_key, meal_type, items, total_calories, total_protein, total_carbs, total_fat, total_fiber, created_at
	FROM meals
	WHERE user_id = $1
		AND date_key >= $2
		AND date_key <= $3
	ORDER BY date_key, created_at
	`

	rows, err := s.db.Query(ctx, query, userID, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []meal.Record
	for rows.Next() {
		rec, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meals: %w", err)
	}

	if meals == nil {
		meals = []meal.Record{}
	}

	return meals, nil
}

func scanMeal(row pgx.Row) (*meal.Record, error) {
	rec := &meal.Record{}
	var itemsJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.DateKey,
		&rec.Type,
		&itemsJSON,
		&rec.Totals.Calories,
		&rec.Totals.Protein,
		&rec.Totals.Carbs,
		&rec.Totals.Fat,
		&rec.Totals.Fiber,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &rec.Items); err != nil {
		return nil, fmt.Errorf("failed to decode meal items: %w", err)
	}

	return rec, nil
}
