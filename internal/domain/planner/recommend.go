package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/uniplanner/planner-api/internal/domain"
)

// CourseRef identifies the course a scored task belongs to, so API
// consumers get the display name without a second catalog lookup.
type CourseRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ScoredTask pairs a task with its course, its computed priority score,
// and the factor breakdown that produced it.
type ScoredTask struct {
	Task    domain.Task  `json:"task"`
	Course  CourseRef    `json:"course"`
	Score   float64      `json:"score"`
	Factors ScoreFactors `json:"factors"`
}

// CourseLoad aggregates the pending hours for one course.
type CourseLoad struct {
	CourseName string  `json:"course_name"`
	Hours      float64 `json:"hours"`
	TaskCount  int     `json:"task_count"`
}

// LoadReport is the weekly workload picture: per-course pending hours in
// descending order, the total, the courses over the critical threshold,
// and a one-word verdict of the overall load.
type LoadReport struct {
	Courses         []CourseLoad `json:"courses"`
	TotalHours      float64      `json:"total_hours"`
	CriticalCourses []string     `json:"critical_courses"`
	Verdict         string       `json:"verdict"`
}

// Load verdicts.
const (
	VerdictHighLoad     = "high load"
	VerdictModerateLoad = "moderate load"
	VerdictLightLoad    = "light load"
)

// Summary aggregates counts over a task list.
// AvgDifficulty covers pending tasks only and is 0 when none are pending.
type Summary struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	Pending         int     `json:"pending"`
	PendingHours    float64 `json:"pending_hours"`
	AvgDifficulty   float64 `json:"avg_difficulty"`
	MostUrgentTitle string  `json:"most_urgent_title,omitempty"`
}

// recommendTasks filters out completed tasks, scores the rest, and returns
// them in descending score order truncated to limit. The sort is stable, so
// tasks with equal scores keep their input order.
//
// Every incomplete task must resolve to a course in the index; a dangling
// course code is an error, never a silent zero-credit score.
func recommendTasks(
	tasks []domain.Task,
	courses map[string]*domain.Course,
	now time.Time,
	limit int,
	params *Params,
) ([]ScoredTask, error) {
	scored := make([]ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		if task.Completed {
			continue
		}

		course, ok := courses[task.CourseCode]
		if !ok {
			return nil, fmt.Errorf("%w: course %s for task %s",
				ErrUnknownCourse, task.CourseCode, task.ID)
		}

		factors := scoreTask(&task, course, now, params)
		scored = append(scored, ScoredTask{
			Task:    task,
			Course:  CourseRef{Code: course.Code, Name: course.Name},
			Score:   factors.Total(),
			Factors: factors,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// weeklyLoad folds incomplete tasks into per-course hour totals.
//
// Grouping is by course display name, not code: two catalog entries
// sharing a name merge into one row. That mirrors how the report is read
// (students think in course names) and is accepted behavior.
func weeklyLoad(
	tasks []domain.Task,
	courses map[string]*domain.Course,
	params *Params,
) (*LoadReport, error) {
	hours := make(map[string]float64)
	counts := make(map[string]int)

	for _, task := range tasks {
		if task.Completed {
			continue
		}

		course, ok := courses[task.CourseCode]
		if !ok {
			return nil, fmt.Errorf("%w: course %s for task %s",
				ErrUnknownCourse, task.CourseCode, task.ID)
		}

		hours[course.Name] += task.EstimatedHours
		counts[course.Name]++
	}

	report := &LoadReport{
		Courses:         make([]CourseLoad, 0, len(hours)),
		CriticalCourses: []string{},
	}
	for name, h := range hours {
		report.Courses = append(report.Courses, CourseLoad{
			CourseName: name,
			Hours:      h,
			TaskCount:  counts[name],
		})
		report.TotalHours += h
	}

	sort.SliceStable(report.Courses, func(i, j int) bool {
		if report.Courses[i].Hours != report.Courses[j].Hours {
			return report.Courses[i].Hours > report.Courses[j].Hours
		}
		return report.Courses[i].CourseName < report.Courses[j].CourseName
	})

	for _, load := range report.Courses {
		if load.Hours > params.CriticalLoadHours {
			report.CriticalCourses = append(report.CriticalCourses, load.CourseName)
		}
	}

	switch {
	case report.TotalHours > params.HighLoadHours:
		report.Verdict = VerdictHighLoad
	case report.TotalHours > params.ModerateLoadHours:
		report.Verdict = VerdictModerateLoad
	default:
		report.Verdict = VerdictLightLoad
	}

	return report, nil
}

// urgentTasks returns incomplete tasks due within thresholdDays of now,
// including overdue ones, in ascending due-date order.
func urgentTasks(tasks []domain.Task, now time.Time, thresholdDays int) []domain.Task {
	urgent := make([]domain.Task, 0)
	cutoff := now.AddDate(0, 0, thresholdDays)

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if !task.DueAt.After(cutoff) {
			urgent = append(urgent, task)
		}
	}

	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].DueAt.Before(urgent[j].DueAt)
	})

	return urgent
}

// summarize computes aggregate statistics over the task list.
func summarize(tasks []domain.Task) Summary {
	summary := Summary{Total: len(tasks)}

	var difficultySum int
	var mostUrgent *domain.Task
	for i := range tasks {
		task := &tasks[i]
		if task.Completed {
			summary.Completed++
			continue
		}

		summary.Pending++
		summary.PendingHours += task.EstimatedHours
		difficultySum += task.Difficulty
		if mostUrgent == nil || task.DueAt.Before(mostUrgent.DueAt) {
			mostUrgent = task
		}
	}

	if summary.Pending > 0 {
		summary.AvgDifficulty = float64(difficultySum) / float64(summary.Pending)
	}
	if mostUrgent != nil {
		summary.MostUrgentTitle = mostUrgent.Title
	}

	return summary
}
