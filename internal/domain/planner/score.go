package planner

import (
	"time"

	"github.com/uniplanner/planner-api/internal/domain"
)

// ScoreFactors breaks a priority score into its additive components.
// Each factor is computed independently of the others, so callers can
// explain a score or re-weight a single dimension without touching the rest.
type ScoreFactors struct {
	Urgency    float64 `json:"urgency"`
	CreditLoad float64 `json:"credit_load"`
	Difficulty float64 `json:"difficulty"`
	Duration   float64 `json:"duration"`
	TypeBonus  float64 `json:"type_bonus"`
}

// Total sums the factors into the final priority score.
func (f ScoreFactors) Total() float64 {
	return f.Urgency + f.CreditLoad + f.Difficulty + f.Duration + f.TypeBonus
}

// calculateUrgency scores how soon the task is due.
//
// Urgency grows linearly as the due date approaches: a task due in ten or
// more days scores 0, a task due today scores the ceiling, and an overdue
// task stays clamped at the ceiling rather than growing without bound.
//
// Days remaining are whole calendar days truncated toward zero, so a task
// due in 36 hours counts as 1 day away.
func calculateUrgency(dueAt, now time.Time, params *Params) float64 {
	daysLeft := int(dueAt.Sub(now).Hours() / 24)

	urgency := params.UrgencyCeiling - float64(daysLeft)
	if urgency < 0 {
		return 0
	}
	if urgency > params.UrgencyCeiling {
		return params.UrgencyCeiling
	}
	return urgency
}

// calculateCreditLoad weighs the task by the credits of its course.
// High-credit courses pull their tasks up the ranking.
func calculateCreditLoad(course *domain.Course, params *Params) float64 {
	return float64(course.Credits) * params.CreditWeightFactor
}

// calculateDifficulty converts the 1-5 difficulty rating into score points.
func calculateDifficulty(task *domain.Task, params *Params) float64 {
	return float64(task.Difficulty) * params.DifficultyWeight
}

// calculateDuration weighs estimated hours. Long tasks (above
// params.LongTaskHours) get a steeper per-hour weight so multi-day work
// surfaces earlier.
func calculateDuration(task *domain.Task, params *Params) float64 {
	if task.EstimatedHours > params.LongTaskHours {
		return task.EstimatedHours * params.LongHourWeight
	}
	return task.EstimatedHours * params.ShortHourWeight
}

// calculateTypeBonus returns the flat bonus for the task's type.
// Types without a configured bonus contribute 0.
func calculateTypeBonus(task *domain.Task, params *Params) float64 {
	return params.TypeBonus[task.Type]
}

// scoreTask computes the full factor breakdown for a task against its
// course at the given reference time.
func scoreTask(task *domain.Task, course *domain.Course, now time.Time, params *Params) ScoreFactors {
	return ScoreFactors{
		Urgency:    calculateUrgency(task.DueAt, now, params),
		CreditLoad: calculateCreditLoad(course, params),
		Difficulty: calculateDifficulty(task, params),
		Duration:   calculateDuration(task, params),
		TypeBonus:  calculateTypeBonus(task, params),
	}
}
