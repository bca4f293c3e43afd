package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/service/recommendation"
)

// RecommendationHandler handles planning and statistics HTTP requests.
type RecommendationHandler struct {
	recommendationService recommendation.Service
	logger                *slog.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler with the given
// dependencies.
func NewRecommendationHandler(
	recommendationService recommendation.Service,
	log *slog.Logger,
) *RecommendationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &RecommendationHandler{
		recommendationService: recommendationService,
		logger:                log.With(slog.String("component", "recommendation_handler")),
	}
}

// Recommendations handles GET /recommendations requests. The optional
// limit query parameter caps how many ranked tasks are returned.
func (h *RecommendationHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			shared.RespondWithError(
				w,
				r,
				http.StatusBadRequest,
				"Invalid limit: must be a positive integer",
			)
			return
		}
		limit = parsed
	}

	recommendations, err := h.recommendationService.Recommendations(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, recommendations)
}

// WeeklyLoad handles GET /recommendations/weekly-load requests.
func (h *RecommendationHandler) WeeklyLoad(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	report, err := h.recommendationService.WeeklyLoad(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// StudyPlan handles GET /recommendations/study-plan requests. The optional
// daily_hours query parameter overrides the budget derived from the user's
// study profile.
func (h *RecommendationHandler) StudyPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	dailyHours := 0.0
	if v := r.URL.Query().Get("daily_hours"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(
				w,
				r,
				http.StatusBadRequest,
				"Invalid daily_hours: must be a positive number",
			)
			return
		}
		dailyHours = parsed
	}

	plan, err := h.recommendationService.StudyPlan(r.Context(), userID, dailyHours)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// Stats handles GET /recommendations/stats requests.
func (h *RecommendationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.recommendationService.Stats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
