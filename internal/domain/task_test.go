package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid task creation
	userID := uuid.New()
	dueAt := time.Now().UTC().Add(72 * time.Hour)

	task, err := NewTask(userID, "CS101", "Prepare midterm", "Chapters 1-4", TaskTypePartial, dueAt, 6.0, 4)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, task.UserID)
	}

	if task.CourseCode != "CS101" {
		t.Errorf("Expected course code CS101, got %s", task.CourseCode)
	}

	if task.Completed {
		t.Error("Expected new task to be incomplete")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid userID
	_, err = NewTask(uuid.Nil, "CS101", "Prepare midterm", "", TaskTypePartial, dueAt, 6.0, 4)
	if err != ErrTaskUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskUserIDEmpty, err)
	}

	// Test empty course code
	_, err = NewTask(userID, "", "Prepare midterm", "", TaskTypePartial, dueAt, 6.0, 4)
	if err != ErrTaskCourseCodeEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskCourseCodeEmpty, err)
	}

	// Test short title
	_, err = NewTask(userID, "CS101", "ab", "", TaskTypePartial, dueAt, 6.0, 4)
	if err != ErrTaskTitleLength {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleLength, err)
	}

	// Test unknown type
	_, err = NewTask(userID, "CS101", "Prepare midterm", "", TaskType("essay"), dueAt, 6.0, 4)
	if err != ErrInvalidTaskType {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskType, err)
	}

	// Test zero due date
	_, err = NewTask(userID, "CS101", "Prepare midterm", "", TaskTypePartial, time.Time{}, 6.0, 4)
	if err != ErrTaskDueAtZero {
		t.Errorf("Expected error %v, got %v", ErrTaskDueAtZero, err)
	}
}

func TestTaskValidateRanges(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	dueAt := time.Now().UTC().Add(24 * time.Hour)

	tests := []struct {
		name       string
		hours      float64
		difficulty int
		wantErr    error
	}{
		{name: "hours below minimum", hours: 0.25, difficulty: 3, wantErr: ErrTaskHoursRange},
		{name: "hours above maximum", hours: 24.5, difficulty: 3, wantErr: ErrTaskHoursRange},
		{name: "hours at lower bound", hours: 0.5, difficulty: 3, wantErr: nil},
		{name: "hours at upper bound", hours: 24, difficulty: 3, wantErr: nil},
		{name: "difficulty below minimum", hours: 2, difficulty: 0, wantErr: ErrTaskDifficultyRange},
		{name: "difficulty above maximum", hours: 2, difficulty: 6, wantErr: ErrTaskDifficultyRange},
		{name: "difficulty at bounds", hours: 2, difficulty: 5, wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(userID, "CS101", "Valid title", "", TaskTypeReading, dueAt, tc.hours, tc.difficulty)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTaskTypeIsValid(t *testing.T) {
	t.Parallel()

	for _, taskType := range TaskTypes {
		if !taskType.IsValid() {
			t.Errorf("Expected type %s to be valid", taskType)
		}
	}

	if TaskType("essay").IsValid() {
		t.Error("Expected unknown type to be invalid")
	}
	if TaskType("").IsValid() {
		t.Error("Expected empty type to be invalid")
	}
}

func TestMarkCompleted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	dueAt := time.Now().UTC().Add(24 * time.Hour)
	task, err := NewTask(userID, "CS101", "Finish lab report", "", TaskTypeLab, dueAt, 3.0, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt
	task.MarkCompleted()

	if !task.Completed {
		t.Error("Expected task to be completed")
	}
	if task.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	// Completing twice keeps the first completion timestamp
	stamp := task.UpdatedAt
	task.MarkCompleted()
	if task.UpdatedAt != stamp {
		t.Error("Expected second completion to be a no-op")
	}
}
