package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskCourseCodeEmpty is returned when a task's course code is empty.
	ErrTaskCourseCodeEmpty = errors.New("task course code cannot be empty")

	// ErrTaskTitleLength is returned when a task title is shorter than 3 or
	// longer than 255 characters.
	ErrTaskTitleLength = errors.New("task title must be between 3 and 255 characters")

	// ErrTaskDueAtZero is returned when a task has no due date.
	ErrTaskDueAtZero = errors.New("task due date cannot be empty")

	// ErrTaskHoursRange is returned when estimated hours fall outside 0.5-24.
	ErrTaskHoursRange = errors.New("task estimated hours must be between 0.5 and 24")

	// ErrTaskDifficultyRange is returned when difficulty falls outside 1-5.
	ErrTaskDifficultyRange = errors.New("task difficulty must be between 1 and 5")
)

// TaskType classifies a task by the kind of academic work it represents.
// The type feeds into priority scoring: exams weigh more than readings.
type TaskType string

// Recognized task types.
const (
	TaskTypePartial      TaskType = "partial"
	TaskTypeFinal        TaskType = "final"
	TaskTypeProject      TaskType = "project"
	TaskTypeWorkshop     TaskType = "workshop"
	TaskTypePresentation TaskType = "presentation"
	TaskTypeReading      TaskType = "reading"
	TaskTypeLab          TaskType = "lab"
	TaskTypeQuiz         TaskType = "quiz"
)

// TaskTypes lists every recognized task type in a stable order.
var TaskTypes = []TaskType{
	TaskTypePartial,
	TaskTypeFinal,
	TaskTypeProject,
	TaskTypeWorkshop,
	TaskTypePresentation,
	TaskTypeReading,
	TaskTypeLab,
	TaskTypeQuiz,
}

// IsValid reports whether t is one of the recognized task types.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypePartial, TaskTypeFinal, TaskTypeProject, TaskTypeWorkshop,
		TaskTypePresentation, TaskTypeReading, TaskTypeLab, TaskTypeQuiz:
		return true
	default:
		return false
	}
}

// Task represents a unit of academic work tied to a course: an exam to
// prepare for, a project to hand in, a reading to finish.
type Task struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	CourseCode     string    `json:"course_code"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Type           TaskType  `json:"type"`
	DueAt          time.Time `json:"due_at"`
	EstimatedHours float64   `json:"estimated_hours"`
	Difficulty     int       `json:"difficulty"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTask creates a new Task for the given user and course.
// It generates a new UUID for the task ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	courseCode, title, description string,
	taskType TaskType,
	dueAt time.Time,
	estimatedHours float64,
	difficulty int,
) (*Task, error) {
	task := &Task{
		ID:             uuid.New(),
		UserID:         userID,
		CourseCode:     strings.TrimSpace(courseCode),
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Type:           taskType,
		DueAt:          dueAt,
		EstimatedHours: estimatedHours,
		Difficulty:     difficulty,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.CourseCode == "" {
		return ErrTaskCourseCodeEmpty
	}

	if len(t.Title) < 3 || len(t.Title) > 255 {
		return ErrTaskTitleLength
	}

	if !t.Type.IsValid() {
		return ErrInvalidTaskType
	}

	if t.DueAt.IsZero() {
		return ErrTaskDueAtZero
	}

	if t.EstimatedHours < 0.5 || t.EstimatedHours > 24 {
		return ErrTaskHoursRange
	}

	if t.Difficulty < 1 || t.Difficulty > 5 {
		return ErrTaskDifficultyRange
	}

	return nil
}

// MarkCompleted flags the task as done and updates the UpdatedAt timestamp.
// Completing an already completed task is a no-op.
func (t *Task) MarkCompleted() {
	if t.Completed {
		return
	}
	t.Completed = true
	t.UpdatedAt = time.Now().UTC()
}
