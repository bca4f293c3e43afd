package recommendation

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplanner/planner-api/internal/config"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/domain/planner"
	"github.com/uniplanner/planner-api/internal/store"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type mockTaskStore struct {
	tasks []domain.Task
}

var _ store.TaskStore = (*mockTaskStore)(nil)

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error { return nil }

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]domain.Task, error) {
	return m.tasks, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error { return nil }

func (m *mockTaskStore) MarkCompleted(ctx context.Context, userID, taskID uuid.UUID) error {
	return nil
}

func (m *mockTaskStore) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, task := range m.tasks {
		if task.Completed {
			count++
		}
	}
	return count, nil
}

func (m *mockTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error { return nil }

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }

type mockCourseStore struct {
	courses map[string]*domain.Course
}

var _ store.CourseStore = (*mockCourseStore)(nil)

func (m *mockCourseStore) Create(ctx context.Context, course *domain.Course) error { return nil }

func (m *mockCourseStore) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	course, ok := m.courses[code]
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	return course, nil
}

func (m *mockCourseStore) List(ctx context.Context) ([]*domain.Course, error) { return nil, nil }

func (m *mockCourseStore) ListBySemester(ctx context.Context, semester int) ([]*domain.Course, error) {
	return nil, nil
}

func (m *mockCourseStore) Search(ctx context.Context, query string) ([]*domain.Course, error) {
	return nil, nil
}

func (m *mockCourseStore) GetByCodes(ctx context.Context, codes []string) (map[string]*domain.Course, error) {
	found := make(map[string]*domain.Course)
	for _, code := range codes {
		if course, ok := m.courses[code]; ok {
			found[code] = course
		}
	}
	return found, nil
}

func (m *mockCourseStore) WithTx(tx *sql.Tx) store.CourseStore { return m }

type mockUserStore struct {
	user *domain.User
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.user == nil {
		return nil, store.ErrUserNotFound
	}
	return m.user, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error { return nil }

func (m *mockUserStore) UpdateStudyProfile(ctx context.Context, id uuid.UUID, profile domain.StudyProfile) error {
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

type mockEnrollmentStore struct {
	state *domain.AcademicState
}

var _ store.EnrollmentStore = (*mockEnrollmentStore)(nil)

func (m *mockEnrollmentStore) GetState(ctx context.Context, userID uuid.UUID) (*domain.AcademicState, error) {
	return m.state, nil
}

func (m *mockEnrollmentStore) Enroll(ctx context.Context, userID uuid.UUID, courseCode string) error {
	return nil
}

func (m *mockEnrollmentStore) Cancel(ctx context.Context, userID uuid.UUID, courseCode string) error {
	return nil
}

func (m *mockEnrollmentStore) ListEnrolled(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return m.state.EnrolledCourses, nil
}

func (m *mockEnrollmentStore) ListApproved(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return m.state.ApprovedCourses, nil
}

func (m *mockEnrollmentStore) RecordApproval(ctx context.Context, userID uuid.UUID, courseCode string) error {
	return nil
}

func (m *mockEnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore { return m }

func testStudyConfig() config.StudyConfig {
	return config.StudyConfig{
		IntensiveDailyHours: 6,
		ModerateDailyHours:  4,
		LightDailyHours:     2,
		UrgentWindowDays:    3,
		RecommendationLimit: 5,
		CriticalLoadHours:   10,
	}
}

func newTask(course, title string, taskType domain.TaskType, dueInDays int, hours float64, difficulty int, completed bool) domain.Task {
	return domain.Task{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CourseCode:     course,
		Title:          title,
		Type:           taskType,
		DueAt:          testNow.AddDate(0, 0, dueInDays),
		EstimatedHours: hours,
		Difficulty:     difficulty,
		Completed:      completed,
	}
}

func newTestService(tasks []domain.Task, user *domain.User, state *domain.AcademicState) *serviceImpl {
	courses := map[string]*domain.Course{
		"CS101": {Code: "CS101", Name: "Intro to Programming", Credits: 4, Semester: 1},
		"CS201": {Code: "CS201", Name: "Data Structures", Credits: 4, Semester: 2},
		"MA101": {Code: "MA101", Name: "Calculus", Credits: 3, Semester: 1},
	}
	if state == nil {
		state = &domain.AcademicState{UserID: uuid.New()}
	}
	return &serviceImpl{
		taskStore:       &mockTaskStore{tasks: tasks},
		courseStore:     &mockCourseStore{courses: courses},
		userStore:       &mockUserStore{user: user},
		enrollmentStore: &mockEnrollmentStore{state: state},
		planner:         planner.NewDefaultService(),
		study:           testStudyConfig(),
		logger:          slog.Default(),
		timeFunc:        func() time.Time { return testNow },
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("ranks pending tasks by score", func(t *testing.T) {
		t.Parallel()
		tasks := []domain.Task{
			newTask("MA101", "reading", domain.TaskTypeReading, 9, 2, 1, false),
			newTask("CS101", "final exam", domain.TaskTypeFinal, 1, 6, 5, false),
			newTask("CS201", "done already", domain.TaskTypeProject, 2, 4, 3, true),
		}
		svc := newTestService(tasks, nil, nil)

		scored, err := svc.Recommendations(context.Background(), userID, 0)
		require.NoError(t, err)
		require.Len(t, scored, 2)
		assert.Equal(t, "final exam", scored[0].Task.Title)
		assert.Equal(t, "CS101", scored[0].Course.Code)
		assert.Equal(t, "Intro to Programming", scored[0].Course.Name)
		assert.Equal(t, "reading", scored[1].Task.Title)
		assert.Equal(t, "Calculus", scored[1].Course.Name)
		assert.Greater(t, scored[0].Score, scored[1].Score)
	})

	t.Run("explicit limit truncates", func(t *testing.T) {
		t.Parallel()
		tasks := []domain.Task{
			newTask("CS101", "a", domain.TaskTypeQuiz, 5, 1, 1, false),
			newTask("CS101", "b", domain.TaskTypeQuiz, 6, 1, 1, false),
			newTask("CS101", "c", domain.TaskTypeQuiz, 7, 1, 1, false),
		}
		svc := newTestService(tasks, nil, nil)

		scored, err := svc.Recommendations(context.Background(), userID, 2)
		require.NoError(t, err)
		assert.Len(t, scored, 2)
	})

	t.Run("unknown course code is an error", func(t *testing.T) {
		t.Parallel()
		tasks := []domain.Task{
			newTask("XX999", "orphan", domain.TaskTypeQuiz, 5, 1, 1, false),
		}
		svc := newTestService(tasks, nil, nil)

		_, err := svc.Recommendations(context.Background(), userID, 0)
		require.ErrorIs(t, err, planner.ErrUnknownCourse)
	})
}

func TestStudyPlan(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("profile default budget applies when hours omitted", func(t *testing.T) {
		t.Parallel()
		tasks := []domain.Task{
			newTask("CS101", "a", domain.TaskTypeProject, 3, 2, 3, false),
			newTask("CS101", "b", domain.TaskTypeProject, 4, 2, 3, false),
		}
		user := &domain.User{
			ID:           userID,
			StudyProfile: domain.StudyProfileLight,
		}
		svc := newTestService(tasks, user, nil)

		plan, err := svc.StudyPlan(context.Background(), userID, 0)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, plan.DailyHours, 0.001)
		// Two 2-hour tasks at a 2-hour budget land on separate days.
		require.Len(t, plan.Days, 2)
	})

	t.Run("explicit budget overrides the profile", func(t *testing.T) {
		t.Parallel()
		tasks := []domain.Task{
			newTask("CS101", "a", domain.TaskTypeProject, 3, 2, 3, false),
			newTask("CS101", "b", domain.TaskTypeProject, 4, 2, 3, false),
		}
		svc := newTestService(tasks, nil, nil)

		plan, err := svc.StudyPlan(context.Background(), userID, 4)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, plan.DailyHours, 0.001)
		require.Len(t, plan.Days, 1)
		assert.Len(t, plan.Days[0].Tasks, 2)
	})
}

func TestUrgentTasks(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		newTask("CS101", "due tomorrow", domain.TaskTypeQuiz, 1, 1, 1, false),
		newTask("CS101", "due next week", domain.TaskTypeQuiz, 9, 1, 1, false),
		newTask("CS101", "overdue", domain.TaskTypeQuiz, -1, 1, 1, false),
		newTask("CS101", "done", domain.TaskTypeQuiz, 1, 1, 1, true),
	}
	svc := newTestService(tasks, nil, nil)

	urgent, err := svc.UrgentTasks(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	require.Len(t, urgent, 2)
	assert.Equal(t, "overdue", urgent[0].Title)
	assert.Equal(t, "due tomorrow", urgent[1].Title)

	urgent, err = svc.UrgentTasks(context.Background(), uuid.New(), 10)
	require.NoError(t, err)
	assert.Len(t, urgent, 3)

	_, err = svc.UrgentTasks(context.Background(), uuid.New(), -1)
	require.ErrorIs(t, err, planner.ErrInvalidThreshold)
}

func TestStats(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		newTask("CS101", "a", domain.TaskTypeQuiz, 2, 2, 2, true),
		newTask("CS101", "b", domain.TaskTypeProject, 3, 4, 4, false),
		newTask("MA101", "c", domain.TaskTypeQuiz, 4, 2, 2, false),
	}
	state := &domain.AcademicState{
		UserID:             uuid.New(),
		ApprovedCourses:    []string{"CS101"},
		EnrolledCourses:    []string{"CS201", "MA101"},
		AccumulatedCredits: 4,
	}
	svc := newTestService(tasks, nil, state)

	stats, err := svc.Stats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Summary.Total)
	assert.Equal(t, 1, stats.Summary.Completed)
	assert.InDelta(t, 1.0/3.0, stats.CompletionRate, 0.001)
	assert.Equal(t, 2, stats.TasksByCourse["CS101"])
	assert.Equal(t, 1, stats.TasksByCourse["MA101"])
	assert.Equal(t, 2, stats.TasksByType[domain.TaskTypeQuiz])
	assert.Equal(t, 1, stats.TasksByType[domain.TaskTypeProject])
	assert.Equal(t, 4, stats.Credits.Accumulated)
	assert.Equal(t, 7, stats.Credits.InProgress)
}
