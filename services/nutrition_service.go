package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"nutriTrackAPI/internal/nutrition"
	"nutriTrackAPI/internal/types/meal"
	"nutriTrackAPI/utils"
)

// NutritionService wraps the external AI nutrition-lookup webhook. It is a
// thin collaborator: the aggregation core only depends on the item shapes it
// produces, never on the wire contract.
type NutritionService struct {
	webhookURL string
	client     *http.Client
}

func NewNutritionService(webhookURL string) *NutritionService {
	return &NutritionService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupRequest struct {
	FoodName    string  `json:"foodName"`
	PortionSize float64 `json:"portionSize"`
	Unit        string  `json:"unit"`
}

// LookupOutcome carries the resolved items plus an advisory when the lookup
// had nothing for the food. An unresolved food is not an error: the item is
// kept visible with zero nutritional contribution.
type LookupOutcome struct {
	Items    []meal.Item `json:"items"`
	Advisory string      `json:"advisory,omitempty"`
}

// Lookup resolves one food description into meal items. Transient transport
// failures are retried with exponential backoff; a webhook answer of "no
// data" is recovered locally into a single unresolved zero-value item.
func (s *NutritionService) Lookup(ctx context.Context, foodName string, portionSize float64, unit string) (*LookupOutcome, error) {
	if s.webhookURL == "" {
		return nil, fmt.Errorf("nutrition webhook is not configured")
	}

	body, err := json.Marshal(lookupRequest{FoodName: foodName, PortionSize: portionSize, Unit: unit})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	var raw []byte
	err = utils.Retry(ctx, 3, 500*time.Millisecond, func() error {
		req, rerr := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if rerr != nil {
			return rerr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, rerr := s.client.Do(req)
		if rerr != nil {
			return rerr
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("nutrition webhook returned %d", resp.StatusCode)
		}

		raw, rerr = io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return rerr
	})
	if err != nil {
		return nil, fmt.Errorf("nutrition lookup failed: %w", err)
	}

	result := nutrition.Decode(raw)
	nutritionLookups.WithLabelValues(string(result.Kind)).Inc()

	switch result.Kind {
	case nutrition.KindRecipe:
		items := make([]meal.Item, 0, len(result.Foods))
		for _, f := range result.Foods {
			items = append(items, meal.Item{
				Name:        f.Name,
				PortionSize: portionSize,
				Unit:        unit,
				Calories:    f.Calories,
				Protein:     f.Protein,
				Carbs:       f.Carbs,
				Fat:         f.Fat,
				Fiber:       f.Fiber,
				Resolved:    true,
			})
		}
		return &LookupOutcome{Items: items}, nil

	case nutrition.KindMessage:
		return &LookupOutcome{
			Items:    []meal.Item{unresolvedItem(foodName, portionSize, unit)},
			Advisory: result.Message,
		}, nil

	default:
		log.Printf("NutritionService: unrecognized webhook payload for %q: %s", foodName, string(result.Raw))
		return &LookupOutcome{
			Items:    []meal.Item{unresolvedItem(foodName, portionSize, unit)},
			Advisory: "no nutrition data found for " + foodName,
		}, nil
	}
}

func unresolvedItem(foodName string, portionSize float64, unit string) meal.Item {
	return meal.Item{
		Name:        foodName,
		PortionSize: portionSize,
		Unit:        unit,
		Resolved:    false,
	}
}
