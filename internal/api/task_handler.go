package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/service"
	"github.com/uniplanner/planner-api/internal/service/recommendation"
	"github.com/uniplanner/planner-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService           service.TaskService
	recommendationService recommendation.Service
	validator             *validator.Validate
	logger                *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	taskService service.TaskService,
	recommendationService recommendation.Service,
	log *slog.Logger,
) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService:           taskService,
		recommendationService: recommendationService,
		validator:             validator.New(),
		logger:                log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	taskType := domain.TaskType(req.Type)
	if !taskType.IsValid() {
		HandleAPIError(w, r, domain.ErrInvalidTaskType, "")
		return
	}

	dueAt, err := time.Parse(time.RFC3339, req.DueAt)
	if err != nil {
		shared.RespondWithError(
			w,
			r,
			http.StatusBadRequest,
			"Invalid due_at: must be an RFC 3339 timestamp",
		)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, service.CreateTaskParams{
		CourseCode:     req.CourseCode,
		Title:          req.Title,
		Description:    req.Description,
		Type:           taskType,
		DueAt:          dueAt,
		EstimatedHours: req.EstimatedHours,
		Difficulty:     req.Difficulty,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// GetTask handles GET /tasks/{taskID} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ListTasks handles GET /tasks requests. Supported query parameters:
// q (term match on title/description), course, type, status
// (pending|completed|urgent), days (urgent window override),
// due_after, due_before (RFC 3339).
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	// The urgent state is computed from due dates rather than stored, so it
	// routes through the planning service instead of a store filter.
	if query.Get("status") == "urgent" {
		days := 0
		if v := query.Get("days"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest,
					"Invalid days: must be an integer")
				return
			}
			days = parsed
		}

		tasks, err := h.recommendationService.UrgentTasks(r.Context(), userID, days)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks, Total: len(tasks)})
		return
	}

	filter, err := taskFilterFromQuery(query)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

// CompleteTask handles POST /tasks/{taskID}/complete requests.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.CompleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{taskID} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// taskFilterFromQuery builds a store.TaskFilter from list query parameters.
func taskFilterFromQuery(query map[string][]string) (store.TaskFilter, error) {
	get := func(key string) string {
		if vals := query[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	filter := store.TaskFilter{
		Query:      get("q"),
		CourseCode: get("course"),
	}

	if t := get("type"); t != "" {
		taskType := domain.TaskType(t)
		if !taskType.IsValid() {
			return store.TaskFilter{}, domain.ErrInvalidTaskType
		}
		filter.Type = taskType
	}

	switch get("status") {
	case "", "all":
	case "pending":
		completed := false
		filter.Completed = &completed
	case "completed":
		completed := true
		filter.Completed = &completed
	default:
		return store.TaskFilter{}, domain.NewValidationError(
			"status", "must be pending, completed, urgent, or all", domain.ErrValidation)
	}

	if v := get("due_after"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError(
				"due_after", "must be an RFC 3339 timestamp", domain.ErrValidation)
		}
		filter.DueAfter = ts
	}

	if v := get("due_before"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError(
				"due_before", "must be an RFC 3339 timestamp", domain.ErrValidation)
		}
		filter.DueBefore = ts
	}

	return filter, nil
}
