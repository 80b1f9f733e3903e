package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nutriTrackAPI/internal/types/meal"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MealHandler struct {
	mealService      *services.MealService
	nutritionService *services.NutritionService
}

func NewMealHandler(mealService *services.MealService, nutritionService *services.NutritionService) *MealHandler {
	return &MealHandler{
		mealService:      mealService,
		nutritionService: nutritionService,
	}
}

func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req meal.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.mealService.CreateMeal(ctx, userKey, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, rec)
}

type lookupMealRequest struct {
	DateKey     string    `json:"date_key"`
	Type        meal.Type `json:"meal_type"`
	FoodName    string    `json:"food_name"`
	PortionSize float64   `json:"portion_size"`
	Unit        string    `json:"unit"`
}

type lookupMealResponse struct {
	Meal     *meal.Record `json:"meal"`
	Advisory string       `json:"advisory,omitempty"`
}

// CreateMealFromLookup resolves a food description through the external
// nutrition service and logs the result as a meal. Foods the lookup cannot
// resolve are still recorded, with zero contribution and an advisory for the
// client to display.
func (h *MealHandler) CreateMealFromLookup(w http.ResponseWriter, r *http.Request) {
	// Lookup goes out to the AI webhook, give it more room than a plain write.
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req lookupMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FoodName == "" {
		respondWithError(w, http.StatusBadRequest, "food_name is required")
		return
	}

	outcome, err := h.nutritionService.Lookup(ctx, req.FoodName, req.PortionSize, req.Unit)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Nutrition lookup unavailable: "+err.Error())
		return
	}

	rec, err := h.mealService.CreateMeal(ctx, userKey, &meal.CreateRequest{
		DateKey: req.DateKey,
		Type:    req.Type,
		Items:   outcome.Items,
	})
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, lookupMealResponse{Meal: rec, Advisory: outcome.Advisory})
}

func (h *MealHandler) ReplaceMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	mealID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid meal id")
		return
	}

	var req meal.ReplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.mealService.ReplaceMeal(ctx, userKey, mealID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}

func (h *MealHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	mealID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid meal id")
		return
	}

	if err := h.mealService.DeleteMeal(ctx, userKey, mealID); err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Meal deleted successfully"})
}

func (h *MealHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'from' and 'to' are required")
		return
	}

	meals, err := h.mealService.ListRange(ctx, userKey, from, to)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, meals)
}
