package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
)

// TaskFilter narrows ListByUser results. Zero-valued fields are ignored.
type TaskFilter struct {
	// Query matches case-insensitively against title and description.
	Query string

	// CourseCode restricts to a single course.
	CourseCode string

	// Type restricts to a single task type.
	Type domain.TaskType

	// Completed restricts by completion state when non-nil.
	Completed *bool

	// DueAfter and DueBefore bound the due date when non-zero.
	DueAfter  time.Time
	DueBefore time.Time
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves a user's tasks matching the filter, ordered by
	// due date ascending. Returns an empty slice if no tasks match.
	ListByUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]domain.Task, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// MarkCompleted flags a task as done.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	MarkCompleted(ctx context.Context, userID, taskID uuid.UUID) error

	// CountCompleted returns how many tasks the user has completed.
	CountCompleted(ctx context.Context, userID uuid.UUID) (int, error)

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
