package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/store"
)

// CreateTaskParams carries the attributes of a new task.
type CreateTaskParams struct {
	CourseCode     string
	Title          string
	Description    string
	Type           domain.TaskType
	DueAt          time.Time
	EstimatedHours float64
	Difficulty     int
}

// TaskService defines operations for managing a student's tasks.
type TaskService interface {
	// CreateTask creates a task for the user after checking that the
	// referenced course exists in the catalog.
	// Returns store.ErrCourseNotFound when the course is unknown, or a
	// domain validation error when the attributes are invalid.
	CreateTask(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*domain.Task, error)

	// GetTask retrieves one of the user's tasks.
	// Returns store.ErrTaskNotFound when the task does not exist, or
	// ErrNotOwned when it belongs to a different user.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks retrieves the user's tasks matching the filter, ordered by
	// due date ascending.
	ListTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]domain.Task, error)

	// CompleteTask flags one of the user's tasks as done.
	// Returns store.ErrTaskNotFound when the task does not exist or belongs
	// to a different user.
	CompleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// DeleteTask removes one of the user's tasks.
	// Returns store.ErrTaskNotFound when the task does not exist or belongs
	// to a different user.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore   store.TaskStore
	courseStore store.CourseStore
	logger      *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(
	taskStore store.TaskStore,
	courseStore store.CourseStore,
	logger *slog.Logger,
) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore:   taskStore,
		courseStore: courseStore,
		logger:      logger.With("component", "task_service"),
	}
}

// CreateTask implements TaskService.CreateTask.
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	params CreateTaskParams,
) (*domain.Task, error) {
	if _, err := s.courseStore.GetByCode(ctx, params.CourseCode); err != nil {
		return nil, fmt.Errorf("checking course %s: %w", params.CourseCode, err)
	}

	task, err := domain.NewTask(
		userID,
		params.CourseCode,
		params.Title,
		params.Description,
		params.Type,
		params.DueAt,
		params.EstimatedHours,
		params.Difficulty,
	)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Debug("task created",
		"task_id", task.ID,
		"user_id", userID,
		"course_code", task.CourseCode)

	return task, nil
}

// GetTask implements TaskService.GetTask.
func (s *TaskServiceImpl) GetTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]domain.Task, error) {
	return s.taskStore.ListByUser(ctx, userID, filter)
}

// CompleteTask implements TaskService.CompleteTask.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.taskStore.MarkCompleted(ctx, userID, taskID)
}

// DeleteTask implements TaskService.DeleteTask.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.taskStore.Delete(ctx, userID, taskID)
}
