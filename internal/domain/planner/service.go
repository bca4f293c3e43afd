package planner

import (
	"errors"
	"time"

	"github.com/uniplanner/planner-api/internal/domain"
)

// Common errors
var (
	ErrUnknownCourse    = errors.New("task references unknown course")
	ErrInvalidDaily     = errors.New("daily hours must be positive")
	ErrInvalidThreshold = errors.New("urgency threshold must be at least 1 day")
)

// Service defines the interface for priority scoring and planning operations
type Service interface {
	// Score computes the priority factor breakdown for a single task
	Score(task *domain.Task, course *domain.Course, now time.Time) ScoreFactors

	// Recommend returns incomplete tasks in descending priority order,
	// truncated to limit (the configured default when limit is 0)
	Recommend(
		tasks []domain.Task,
		courses map[string]*domain.Course,
		now time.Time,
		limit int,
	) ([]ScoredTask, error)

	// WeeklyLoad aggregates pending hours per course
	WeeklyLoad(tasks []domain.Task, courses map[string]*domain.Course) (*LoadReport, error)

	// UrgentTasks returns incomplete tasks due within thresholdDays of now
	// (the configured window when thresholdDays is 0)
	UrgentTasks(tasks []domain.Task, now time.Time, thresholdDays int) ([]domain.Task, error)

	// Summarize computes aggregate statistics over the task list
	Summarize(tasks []domain.Task) Summary

	// BuildStudyPlan packs the top pending tasks into consecutive days
	// honoring the daily hour budget
	BuildStudyPlan(
		tasks []domain.Task,
		courses map[string]*domain.Course,
		now time.Time,
		dailyHours float64,
	) (*StudyPlan, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new planner service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new planner service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Score implements the Service interface for single-task scoring
func (s *defaultService) Score(task *domain.Task, course *domain.Course, now time.Time) ScoreFactors {
	return scoreTask(task, course, now, s.params)
}

// Recommend implements the Service interface for ranked recommendations
func (s *defaultService) Recommend(
	tasks []domain.Task,
	courses map[string]*domain.Course,
	now time.Time,
	limit int,
) ([]ScoredTask, error) {
	if limit <= 0 {
		limit = s.params.RecommendationLimit
	}
	return recommendTasks(tasks, courses, now, limit, s.params)
}

// WeeklyLoad implements the Service interface for per-course load reports
func (s *defaultService) WeeklyLoad(
	tasks []domain.Task,
	courses map[string]*domain.Course,
) (*LoadReport, error) {
	return weeklyLoad(tasks, courses, s.params)
}

// UrgentTasks implements the Service interface for the urgent-task filter
func (s *defaultService) UrgentTasks(
	tasks []domain.Task,
	now time.Time,
	thresholdDays int,
) ([]domain.Task, error) {
	if thresholdDays == 0 {
		thresholdDays = s.params.UrgentWindowDays
	}
	if thresholdDays < 1 {
		return nil, ErrInvalidThreshold
	}
	return urgentTasks(tasks, now, thresholdDays), nil
}

// Summarize implements the Service interface for aggregate statistics
func (s *defaultService) Summarize(tasks []domain.Task) Summary {
	return summarize(tasks)
}

// BuildStudyPlan implements the Service interface for day-bucketed plans
func (s *defaultService) BuildStudyPlan(
	tasks []domain.Task,
	courses map[string]*domain.Course,
	now time.Time,
	dailyHours float64,
) (*StudyPlan, error) {
	if dailyHours <= 0 {
		return nil, ErrInvalidDaily
	}
	return buildStudyPlan(tasks, courses, now, dailyHours, s.params)
}
