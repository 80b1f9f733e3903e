package services

import (
	"context"
	"fmt"
	"time"

	"nutriTrackAPI/internal/aggregate"
	"nutriTrackAPI/internal/dateutil"
	"nutriTrackAPI/internal/types/summary"
)

// SummaryService answers day/week/month view requests. It is pull-based: it
// reads a snapshot of the relevant records and runs the pure aggregation
// over them, leaving re-fetch timing entirely to the caller.
type SummaryService struct {
	profiles  *ProfileService
	meals     *MealService
	hydration *HydrationService
	loc       *time.Location
}

func NewSummaryService(profiles *ProfileService, meals *MealService, hydration *HydrationService, loc *time.Location) *SummaryService {
	return &SummaryService{profiles: profiles, meals: meals, hydration: hydration, loc: loc}
}

// Summarize aggregates the window of the given mode containing dateKey. An
// empty dateKey means today.
func (s *SummaryService) Summarize(ctx context.Context, userKey string, mode summary.Mode, dateKey string) (*summary.Summary, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown summary mode %q", mode)
	}

	todayKey := dateutil.DateKey(time.Now(), s.loc)
	if dateKey == "" {
		dateKey = todayKey
	}

	window, err := aggregate.WindowFor(mode, dateKey)
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(ctx, userKey)
	if err != nil {
		return nil, err
	}

	meals, err := s.meals.ListRange(ctx, userKey, window.StartKey, window.EndKey)
	if err != nil {
		return nil, err
	}

	days, err := s.hydration.ListRange(ctx, userKey, window.StartKey, window.EndKey)
	if err != nil {
		return nil, err
	}

	live, err := s.hydration.Live(ctx, userKey)
	if err != nil {
		return nil, err
	}

	result := aggregate.Compute(meals, days, *live, todayKey, aggregate.Goals{
		Calories: p.CalorieGoal,
		Protein:  p.ProteinGoal,
		WaterML:  p.WaterGoalML,
	}, window)

	summaryRequests.WithLabelValues(string(mode)).Inc()

	return &result, nil
}
