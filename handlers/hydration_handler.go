package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nutriTrackAPI/internal/intake"
	"nutriTrackAPI/internal/types/hydration"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

type HydrationHandler struct {
	hydrationService *services.HydrationService
	coalescer        *intake.Coalescer
}

func NewHydrationHandler(hydrationService *services.HydrationService, coalescer *intake.Coalescer) *HydrationHandler {
	return &HydrationHandler{
		hydrationService: hydrationService,
		coalescer:        coalescer,
	}
}

// AddWater buffers a water-intake delta. Rapid taps coalesce into a single
// database write, so the response reflects the accepted delta, not the
// persisted counter.
func (h *HydrationHandler) AddWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req hydration.AddWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DeltaML == 0 {
		respondWithError(w, http.StatusBadRequest, "delta_ml must be non-zero")
		return
	}

	h.coalescer.Add(userKey, req.DeltaML)

	respondWithJSON(w, http.StatusAccepted, map[string]int{"accepted_delta_ml": req.DeltaML})
}

// GetWater returns the live counter plus any delta still sitting in the
// coalescing buffer, so the client sees its own taps immediately.
func (h *HydrationHandler) GetWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	state, err := h.hydrationService.Live(ctx, userKey)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	state.IntakeML += h.coalescer.Pending(userKey)
	if state.IntakeML < 0 {
		state.IntakeML = 0
	}

	respondWithJSON(w, http.StatusOK, state)
}
