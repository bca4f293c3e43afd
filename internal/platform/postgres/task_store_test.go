package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/platform/postgres"
	"github.com/uniplanner/planner-api/internal/store"
)

func validTask() *domain.Task {
	now := time.Now().UTC()
	return &domain.Task{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CourseCode:     "CS101",
		Title:          "Read chapter 4",
		Description:    "Sections 4.1 through 4.3",
		Type:           domain.TaskTypeReading,
		DueAt:          now.AddDate(0, 0, 7),
		EstimatedHours: 2,
		Difficulty:     2,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func taskRows(task *domain.Task) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "course_code", "title", "description", "type", "due_at",
		"estimated_hours", "difficulty", "completed", "created_at", "updated_at",
	}).AddRow(
		task.ID.String(), task.UserID.String(), task.CourseCode, task.Title, task.Description,
		string(task.Type), task.DueAt, task.EstimatedHours, task.Difficulty,
		task.Completed, task.CreatedAt, task.UpdatedAt,
	)
}

func TestTaskStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO tasks").
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := postgres.NewPostgresTaskStore(db, nil)
		err = s.Create(context.Background(), validTask())
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dangling course code", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO tasks").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_course_code_fkey"})

		s := postgres.NewPostgresTaskStore(db, nil)
		err = s.Create(context.Background(), validTask())
		require.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("invalid task never reaches the database", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := validTask()
		task.Difficulty = 9

		s := postgres.NewPostgresTaskStore(db, nil)
		err = s.Create(context.Background(), task)
		require.ErrorIs(t, err, domain.ErrTaskDifficultyRange)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskStoreListByUser(t *testing.T) {
	t.Parallel()

	t.Run("returns tasks in due order", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := validTask()
		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(task.UserID).
			WillReturnRows(taskRows(task))

		s := postgres.NewPostgresTaskStore(db, nil)
		tasks, err := s.ListByUser(context.Background(), task.UserID, store.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, task.Title, tasks[0].Title)
	})

	t.Run("filters add query arguments", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		userID := uuid.New()
		completed := false
		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(userID, "essay", "CS101", string(domain.TaskTypeProject), completed).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "course_code", "title", "description", "type", "due_at",
				"estimated_hours", "difficulty", "completed", "created_at", "updated_at",
			}))

		s := postgres.NewPostgresTaskStore(db, nil)
		tasks, err := s.ListByUser(context.Background(), userID, store.TaskFilter{
			Query:      "essay",
			CourseCode: "CS101",
			Type:       domain.TaskTypeProject,
			Completed:  &completed,
		})
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskStoreMarkCompleted(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := postgres.NewPostgresTaskStore(db, nil)
		err = s.MarkCompleted(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)
	})

	t.Run("wrong owner looks like not found", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		s := postgres.NewPostgresTaskStore(db, nil)
		err = s.MarkCompleted(context.Background(), uuid.New(), uuid.New())
		require.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskStoreCountCompleted(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	userID := uuid.New()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	s := postgres.NewPostgresTaskStore(db, nil)
	count, err := s.CountCompleted(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
