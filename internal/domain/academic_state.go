package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Academic-state validation errors
var (
	// ErrStateUserIDEmpty is returned when an academic state has no user ID.
	ErrStateUserIDEmpty = errors.New("academic state user ID cannot be empty")

	// ErrStateCourseOverlap is returned when a course code appears in both
	// the approved and enrolled sets.
	ErrStateCourseOverlap = errors.New("course cannot be both approved and enrolled")
)

// EnrollmentStatus tracks the lifecycle of an enrollment row.
// Cancelled enrollments stay in history; only active ones count.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// AcademicState is a snapshot of a student's standing: the set of course
// codes already approved, the set currently enrolled, and the credits
// accumulated from approved courses. The credit total is always derived
// from the approved set against the catalog, never stored independently.
type AcademicState struct {
	UserID             uuid.UUID `json:"user_id"`
	ApprovedCourses    []string  `json:"approved_courses"`
	EnrolledCourses    []string  `json:"enrolled_courses"`
	AccumulatedCredits int       `json:"accumulated_credits"`
}

// Validate checks the state's structural invariants.
// Returns an error if a course code appears in both sets.
func (s *AcademicState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrStateUserIDEmpty
	}

	enrolled := make(map[string]struct{}, len(s.EnrolledCourses))
	for _, code := range s.EnrolledCourses {
		enrolled[code] = struct{}{}
	}
	for _, code := range s.ApprovedCourses {
		if _, ok := enrolled[code]; ok {
			return ErrStateCourseOverlap
		}
	}

	return nil
}

// HasApproved reports whether the student has approved the given course.
func (s *AcademicState) HasApproved(courseCode string) bool {
	for _, code := range s.ApprovedCourses {
		if code == courseCode {
			return true
		}
	}
	return false
}

// IsEnrolled reports whether the student is currently enrolled in the
// given course.
func (s *AcademicState) IsEnrolled(courseCode string) bool {
	for _, code := range s.EnrolledCourses {
		if code == courseCode {
			return true
		}
	}
	return false
}
