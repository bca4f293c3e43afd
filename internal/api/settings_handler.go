package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/service"
)

// SettingsHandler handles account and settings HTTP requests.
type SettingsHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler with the given dependencies.
func NewSettingsHandler(userService service.UserService, log *slog.Logger) *SettingsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SettingsHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "settings_handler")),
	}
}

// GetProfile handles GET /me requests.
func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// GetSettings handles GET /settings requests.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		StudyProfile: user.StudyProfile,
	})
}

// UpdateSettings handles PUT /settings requests. The study profile selects
// the default daily hour budget for study plans.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateStudyProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile := domain.StudyProfile(req.StudyProfile)
	if err := h.userService.UpdateStudyProfile(r.Context(), userID, profile); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("study profile updated",
		slog.String("user_id", userID.String()),
		slog.String("study_profile", string(profile)))

	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{StudyProfile: profile})
}

// DeleteAccount handles DELETE /me requests.
func (h *SettingsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
