package api

import (
	"log/slog"
	"net/http"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/service/notification"
)

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationService notification.Service
	logger              *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler with the given
// dependencies.
func NewNotificationHandler(
	notificationService notification.Service,
	log *slog.Logger,
) *NotificationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              log.With(slog.String("component", "notification_handler")),
	}
}

// ListNotifications handles GET /notifications requests. The feed is
// recomputed from current task state on every call.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.Generate(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	})
}

// UnreadCount handles GET /notifications/unread-count requests.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UnreadCountResponse{Unread: count})
}

// MarkRead handles POST /notifications/{notificationID}/read requests.
// Marking an already read notification is a no-op.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	notificationID, err := getPathUUID(r, "notificationID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), userID, notificationID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Achievements handles GET /notifications/achievements requests. It lists
// every achievement rule with its unlocked state.
func (h *NotificationHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	achievements, err := h.notificationService.Achievements(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, achievements)
}
