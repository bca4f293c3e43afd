package planner

import (
	"time"

	"github.com/uniplanner/planner-api/internal/domain"
)

// PlanDay is one calendar day of a study plan.
type PlanDay struct {
	Date       time.Time    `json:"date"`
	Tasks      []ScoredTask `json:"tasks"`
	TotalHours float64      `json:"total_hours"`
}

// StudyPlan distributes the highest-priority pending tasks over consecutive
// calendar days, respecting a daily hour budget.
type StudyPlan struct {
	Days       []PlanDay `json:"days"`
	TotalTasks int       `json:"total_tasks"`
	DailyHours float64   `json:"daily_hours"`
}

// buildStudyPlan packs the top pending tasks into day buckets.
//
// Tasks are taken in priority order and placed first-fit: each task goes
// into the current day while the budget holds, otherwise a new day opens.
// A task larger than the whole daily budget still occupies a day by itself;
// its day simply runs over budget. With no pending tasks the plan has no
// days at all.
func buildStudyPlan(
	tasks []domain.Task,
	courses map[string]*domain.Course,
	now time.Time,
	dailyHours float64,
	params *Params,
) (*StudyPlan, error) {
	top, err := recommendTasks(tasks, courses, now, params.PlanTaskLimit, params)
	if err != nil {
		return nil, err
	}

	plan := &StudyPlan{
		Days:       []PlanDay{},
		TotalTasks: len(top),
		DailyHours: dailyHours,
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	current := PlanDay{Tasks: []ScoredTask{}}
	remaining := dailyHours
	for _, scored := range top {
		if scored.Task.EstimatedHours > remaining && len(current.Tasks) > 0 {
			plan.Days = append(plan.Days, current)
			current = PlanDay{Tasks: []ScoredTask{}}
			remaining = dailyHours
		}

		current.Tasks = append(current.Tasks, scored)
		current.TotalHours += scored.Task.EstimatedHours
		remaining -= scored.Task.EstimatedHours
	}
	if len(current.Tasks) > 0 {
		plan.Days = append(plan.Days, current)
	}

	for i := range plan.Days {
		plan.Days[i].Date = startOfDay.AddDate(0, 0, i)
	}

	return plan, nil
}
