package handlers

import (
	"context"
	"net/http"
	"time"

	"nutriTrackAPI/internal/types/summary"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

type SummaryHandler struct {
	summaryService *services.SummaryService
}

func NewSummaryHandler(summaryService *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// GetSummary aggregates the day/week/month window containing ?date
// (defaulting to today). Mode comes from ?mode.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userKey, ok := middleware.GetUserKey(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	mode := summary.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = summary.ModeDay
	}
	if !mode.Valid() {
		respondWithError(w, http.StatusBadRequest, "mode must be one of day, week, month")
		return
	}

	result, err := h.summaryService.Summarize(ctx, userKey, mode, r.URL.Query().Get("date"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
