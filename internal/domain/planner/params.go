package planner

import (
	"github.com/uniplanner/planner-api/internal/domain"
)

// Params defines all configurable parameters for the priority scoring and
// planning algorithm
type Params struct {
	// Urgency bounds
	UrgencyCeiling float64

	// Scoring weights
	CreditWeightFactor float64
	DifficultyWeight   float64

	// Duration weighting: tasks longer than LongTaskHours use the long
	// weight, everything else the short weight
	LongTaskHours   float64
	LongHourWeight  float64
	ShortHourWeight float64

	// Flat bonus per task type
	TypeBonus map[domain.TaskType]float64

	// Selection limits
	RecommendationLimit int
	PlanTaskLimit       int

	// Urgent window and load thresholds
	UrgentWindowDays  int
	CriticalLoadHours float64
	HighLoadHours     float64
	ModerateLoadHours float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance
type ParamsConfig struct {
	UrgencyCeiling float64

	CreditWeightFactor float64
	DifficultyWeight   float64

	LongTaskHours   float64
	LongHourWeight  float64
	ShortHourWeight float64

	PartialBonus      float64
	FinalBonus        float64
	ProjectBonus      float64
	PresentationBonus float64
	WorkshopBonus     float64
	ReadingBonus      float64

	RecommendationLimit int
	PlanTaskLimit       int

	UrgentWindowDays  int
	CriticalLoadHours float64
	HighLoadHours     float64
	ModerateLoadHours float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		UrgencyCeiling: 10,

		CreditWeightFactor: 2.0,
		DifficultyWeight:   1.5,

		LongTaskHours:   8,
		LongHourWeight:  0.3,
		ShortHourWeight: 0.2,

		// Exams dominate, hands-on work in the middle, readings barely move
		// the needle. Labs and quizzes carry no bonus.
		TypeBonus: map[domain.TaskType]float64{
			domain.TaskTypePartial:      5.0,
			domain.TaskTypeFinal:        5.0,
			domain.TaskTypeProject:      3.0,
			domain.TaskTypePresentation: 2.0,
			domain.TaskTypeWorkshop:     1.0,
			domain.TaskTypeReading:      0.5,
			domain.TaskTypeLab:          0.0,
			domain.TaskTypeQuiz:         0.0,
		},

		RecommendationLimit: 5,
		PlanTaskLimit:       10,

		UrgentWindowDays:  3,
		CriticalLoadHours: 10,
		HighLoadHours:     30,
		ModerateLoadHours: 15,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.UrgencyCeiling > 0 {
		params.UrgencyCeiling = config.UrgencyCeiling
	}

	if config.CreditWeightFactor > 0 {
		params.CreditWeightFactor = config.CreditWeightFactor
	}
	if config.DifficultyWeight > 0 {
		params.DifficultyWeight = config.DifficultyWeight
	}

	if config.LongTaskHours > 0 {
		params.LongTaskHours = config.LongTaskHours
	}
	if config.LongHourWeight > 0 {
		params.LongHourWeight = config.LongHourWeight
	}
	if config.ShortHourWeight > 0 {
		params.ShortHourWeight = config.ShortHourWeight
	}

	if config.PartialBonus > 0 {
		params.TypeBonus[domain.TaskTypePartial] = config.PartialBonus
	}
	if config.FinalBonus > 0 {
		params.TypeBonus[domain.TaskTypeFinal] = config.FinalBonus
	}
	if config.ProjectBonus > 0 {
		params.TypeBonus[domain.TaskTypeProject] = config.ProjectBonus
	}
	if config.PresentationBonus > 0 {
		params.TypeBonus[domain.TaskTypePresentation] = config.PresentationBonus
	}
	if config.WorkshopBonus > 0 {
		params.TypeBonus[domain.TaskTypeWorkshop] = config.WorkshopBonus
	}
	if config.ReadingBonus > 0 {
		params.TypeBonus[domain.TaskTypeReading] = config.ReadingBonus
	}

	if config.RecommendationLimit > 0 {
		params.RecommendationLimit = config.RecommendationLimit
	}
	if config.PlanTaskLimit > 0 {
		params.PlanTaskLimit = config.PlanTaskLimit
	}

	if config.UrgentWindowDays > 0 {
		params.UrgentWindowDays = config.UrgentWindowDays
	}
	if config.CriticalLoadHours > 0 {
		params.CriticalLoadHours = config.CriticalLoadHours
	}
	if config.HighLoadHours > 0 {
		params.HighLoadHours = config.HighLoadHours
	}
	if config.ModerateLoadHours > 0 {
		params.ModerateLoadHours = config.ModerateLoadHours
	}

	return params
}
