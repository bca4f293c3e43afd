package domain

import (
	"errors"
	"strings"
)

// Course-specific validation errors
var (
	// ErrCourseCodeEmpty is returned when a course code is empty.
	ErrCourseCodeEmpty = errors.New("course code cannot be empty")

	// ErrCourseNameEmpty is returned when a course name is empty.
	ErrCourseNameEmpty = errors.New("course name cannot be empty")

	// ErrCourseCreditsNegative is returned when credits are negative.
	ErrCourseCreditsNegative = errors.New("course credits cannot be negative")

	// ErrCourseSemesterRange is returned when a semester falls outside 1-12.
	ErrCourseSemesterRange = errors.New("course semester must be between 1 and 12")

	// ErrCourseSelfPrerequisite is returned when a course lists itself as
	// its own prerequisite.
	ErrCourseSelfPrerequisite = errors.New("course cannot be its own prerequisite")
)

// Course is a catalog entry. Courses are identified by their code; the
// catalog is shared across users and enrollment eligibility is evaluated
// against it.
type Course struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Semester      int      `json:"semester"`
	Prerequisites []string `json:"prerequisites"`

	// MinCredits is the number of approved credits a student must have
	// accumulated before enrolling, independent of named prerequisites.
	MinCredits int `json:"min_credits"`
}

// NewCourse creates a catalog Course with the given attributes.
// Returns an error if validation fails.
func NewCourse(code, name string, credits, semester int, prerequisites []string, minCredits int) (*Course, error) {
	course := &Course{
		Code:          strings.TrimSpace(code),
		Name:          strings.TrimSpace(name),
		Credits:       credits,
		Semester:      semester,
		Prerequisites: prerequisites,
		MinCredits:    minCredits,
	}

	if course.Prerequisites == nil {
		course.Prerequisites = []string{}
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
// Returns an error if any field fails validation.
func (c *Course) Validate() error {
	if c.Code == "" {
		return ErrCourseCodeEmpty
	}

	if c.Name == "" {
		return ErrCourseNameEmpty
	}

	if c.Credits < 0 {
		return ErrCourseCreditsNegative
	}

	if c.Semester < 1 || c.Semester > 12 {
		return ErrCourseSemesterRange
	}

	if c.MinCredits < 0 {
		return ErrCourseCreditsNegative
	}

	for _, prereq := range c.Prerequisites {
		if strings.EqualFold(prereq, c.Code) {
			return ErrCourseSelfPrerequisite
		}
	}

	return nil
}

// HasPrerequisites reports whether the course names any prerequisite codes.
func (c *Course) HasPrerequisites() bool {
	return len(c.Prerequisites) > 0
}
