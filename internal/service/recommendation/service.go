// Package recommendation exposes the priority engine to the API layer. It
// loads a student's tasks and the courses they reference, then delegates the
// scoring, load, and planning math to the planner domain service.
package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/config"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/domain/planner"
	"github.com/uniplanner/planner-api/internal/store"
)

// DetailedStats extends the planner summary with distributions and degree
// progress for the stats endpoint.
type DetailedStats struct {
	Summary        planner.Summary         `json:"summary"`
	CompletionRate float64                 `json:"completion_rate"`
	TasksByCourse  map[string]int          `json:"tasks_by_course"`
	TasksByType    map[domain.TaskType]int `json:"tasks_by_type"`
	Credits        CreditsProgress         `json:"credits"`
}

// CreditsProgress reports accumulated credits against the credits the
// student's active enrollments would add.
type CreditsProgress struct {
	Accumulated int `json:"accumulated"`
	InProgress  int `json:"in_progress"`
}

// Service defines the planning operations available to the API layer.
type Service interface {
	// Recommendations returns the user's pending tasks ranked by priority.
	// A non-positive limit falls back to the configured default.
	Recommendations(ctx context.Context, userID uuid.UUID, limit int) ([]planner.ScoredTask, error)

	// WeeklyLoad reports pending hours per course with the load verdict.
	WeeklyLoad(ctx context.Context, userID uuid.UUID) (*planner.LoadReport, error)

	// StudyPlan packs the top pending tasks into consecutive days. A
	// non-positive dailyHours falls back to the user's study profile budget.
	StudyPlan(ctx context.Context, userID uuid.UUID, dailyHours float64) (*planner.StudyPlan, error)

	// UrgentTasks returns pending tasks due within thresholdDays of now.
	// A zero thresholdDays uses the configured urgent window.
	UrgentTasks(ctx context.Context, userID uuid.UUID, thresholdDays int) ([]domain.Task, error)

	// Stats computes aggregate statistics and degree progress.
	Stats(ctx context.Context, userID uuid.UUID) (*DetailedStats, error)
}

type serviceImpl struct {
	taskStore       store.TaskStore
	courseStore     store.CourseStore
	userStore       store.UserStore
	enrollmentStore store.EnrollmentStore
	planner         planner.Service
	study           config.StudyConfig
	logger          *slog.Logger
	timeFunc        func() time.Time
}

// Ensure serviceImpl implements Service.
var _ Service = (*serviceImpl)(nil)

// NewService creates a recommendation Service.
func NewService(
	taskStore store.TaskStore,
	courseStore store.CourseStore,
	userStore store.UserStore,
	enrollmentStore store.EnrollmentStore,
	plannerService planner.Service,
	study config.StudyConfig,
	logger *slog.Logger,
) Service {
	return &serviceImpl{
		taskStore:       taskStore,
		courseStore:     courseStore,
		userStore:       userStore,
		enrollmentStore: enrollmentStore,
		planner:         plannerService,
		study:           study,
		logger:          logger.With("component", "recommendation_service"),
		timeFunc:        time.Now,
	}
}

// loadTasksAndCourses fetches the user's tasks and the catalog entries their
// course codes reference.
func (s *serviceImpl) loadTasksAndCourses(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Task, map[string]*domain.Course, error) {
	tasks, err := s.taskStore.ListByUser(ctx, userID, store.TaskFilter{})
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	codes := make([]string, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if _, ok := seen[task.CourseCode]; ok {
			continue
		}
		seen[task.CourseCode] = struct{}{}
		codes = append(codes, task.CourseCode)
	}

	courses, err := s.courseStore.GetByCodes(ctx, codes)
	if err != nil {
		s.logger.Error("failed to resolve task courses",
			"error", err,
			"user_id", userID)
		return nil, nil, fmt.Errorf("failed to resolve courses: %w", err)
	}

	return tasks, courses, nil
}

// Recommendations returns pending tasks ranked by priority score.
func (s *serviceImpl) Recommendations(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]planner.ScoredTask, error) {
	tasks, courses, err := s.loadTasksAndCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.study.RecommendationLimit
	}

	scored, err := s.planner.Recommend(tasks, courses, s.timeFunc(), limit)
	if err != nil {
		s.logger.Error("failed to rank tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to rank tasks: %w", err)
	}

	s.logger.Debug("ranked recommendations",
		"user_id", userID,
		"count", len(scored))

	return scored, nil
}

// WeeklyLoad reports pending hours per course.
func (s *serviceImpl) WeeklyLoad(
	ctx context.Context,
	userID uuid.UUID,
) (*planner.LoadReport, error) {
	tasks, courses, err := s.loadTasksAndCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	report, err := s.planner.WeeklyLoad(tasks, courses)
	if err != nil {
		s.logger.Error("failed to compute weekly load",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to compute weekly load: %w", err)
	}

	return report, nil
}

// StudyPlan packs the top pending tasks into day buckets. When dailyHours is
// not positive, the budget comes from the user's study profile.
func (s *serviceImpl) StudyPlan(
	ctx context.Context,
	userID uuid.UUID,
	dailyHours float64,
) (*planner.StudyPlan, error) {
	if dailyHours <= 0 {
		user, err := s.userStore.GetByID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to retrieve user for study plan",
				"error", err,
				"user_id", userID)
			return nil, fmt.Errorf("failed to retrieve user: %w", err)
		}
		dailyHours = s.dailyHoursFor(user.StudyProfile)
	}

	tasks, courses, err := s.loadTasksAndCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.BuildStudyPlan(tasks, courses, s.timeFunc(), dailyHours)
	if err != nil {
		s.logger.Error("failed to build study plan",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to build study plan: %w", err)
	}

	s.logger.Debug("built study plan",
		"user_id", userID,
		"days", len(plan.Days),
		"daily_hours", dailyHours)

	return plan, nil
}

// UrgentTasks returns pending tasks due within thresholdDays of now.
func (s *serviceImpl) UrgentTasks(
	ctx context.Context,
	userID uuid.UUID,
	thresholdDays int,
) ([]domain.Task, error) {
	tasks, err := s.taskStore.ListByUser(ctx, userID, store.TaskFilter{})
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	urgent, err := s.planner.UrgentTasks(tasks, s.timeFunc(), thresholdDays)
	if err != nil {
		return nil, fmt.Errorf("failed to filter urgent tasks: %w", err)
	}

	return urgent, nil
}

// Stats computes the summary plus distributions and credit progress.
func (s *serviceImpl) Stats(ctx context.Context, userID uuid.UUID) (*DetailedStats, error) {
	tasks, err := s.taskStore.ListByUser(ctx, userID, store.TaskFilter{})
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	stats := &DetailedStats{
		Summary:       s.planner.Summarize(tasks),
		TasksByCourse: make(map[string]int),
		TasksByType:   make(map[domain.TaskType]int),
	}
	for _, task := range tasks {
		stats.TasksByCourse[task.CourseCode]++
		stats.TasksByType[task.Type]++
	}
	if stats.Summary.Total > 0 {
		stats.CompletionRate = float64(stats.Summary.Completed) / float64(stats.Summary.Total)
	}

	state, err := s.enrollmentStore.GetState(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve academic state",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve academic state: %w", err)
	}
	stats.Credits.Accumulated = state.AccumulatedCredits

	enrolled, err := s.courseStore.GetByCodes(ctx, state.EnrolledCourses)
	if err != nil {
		s.logger.Error("failed to resolve enrolled courses",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to resolve enrolled courses: %w", err)
	}
	for _, course := range enrolled {
		stats.Credits.InProgress += course.Credits
	}

	return stats, nil
}

// dailyHoursFor maps a study profile to its configured daily hour budget.
func (s *serviceImpl) dailyHoursFor(profile domain.StudyProfile) float64 {
	switch profile {
	case domain.StudyProfileIntensive:
		return s.study.IntensiveDailyHours
	case domain.StudyProfileLight:
		return s.study.LightDailyHours
	default:
		return s.study.ModerateDailyHours
	}
}
