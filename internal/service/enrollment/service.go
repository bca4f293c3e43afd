// Package enrollment implements the eligibility rules that gate course
// enrollment: credit thresholds and prerequisite completion. It orchestrates
// the course catalog and the student's academic history.
package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/store"
)

// Reason strings returned in Decision for each ineligibility cause. They are
// part of the API response surface, so they must stay stable.
const (
	ReasonCourseNotFound  = "course not found"
	ReasonAlreadyApproved = "already approved"
	ReasonAlreadyEnrolled = "already enrolled"
	ReasonEligible        = "eligible"
)

// ErrNotEligible is returned by Enroll when the eligibility check fails.
// The wrapped message carries the specific reason.
var ErrNotEligible = errors.New("not eligible for enrollment")

// Decision is the outcome of an eligibility check. Reason explains the first
// failed rule, or is ReasonEligible when all rules pass. Checks short-circuit,
// so only the first failure is reported even when several rules would fail.
type Decision struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
}

// Service defines enrollment operations available to the API layer.
type Service interface {
	// CheckEligibility evaluates whether the user may enroll in the course.
	// It never mutates state; Enroll runs the same checks before inserting.
	CheckEligibility(ctx context.Context, userID uuid.UUID, courseCode string) (Decision, error)

	// Enroll enrolls the user in the course after re-checking eligibility.
	// Returns ErrNotEligible when a rule fails, or store.ErrAlreadyEnrolled
	// when a concurrent request won the race on the active-enrollment
	// uniqueness constraint.
	Enroll(ctx context.Context, userID uuid.UUID, courseCode string) error

	// Cancel transitions the user's active enrollment to cancelled.
	// Returns store.ErrEnrollmentNotFound when there is no active enrollment.
	Cancel(ctx context.Context, userID uuid.UUID, courseCode string) error

	// CurrentCourses lists the courses the user is actively enrolled in.
	CurrentCourses(ctx context.Context, userID uuid.UUID) ([]*domain.Course, error)

	// ApprovedCourses lists the courses the user has approved, together with
	// the credit total they accumulate.
	ApprovedCourses(ctx context.Context, userID uuid.UUID) ([]*domain.Course, int, error)
}

type serviceImpl struct {
	courseStore     store.CourseStore
	enrollmentStore store.EnrollmentStore
	db              *sql.DB
	logger          *slog.Logger
}

// Ensure serviceImpl implements Service.
var _ Service = (*serviceImpl)(nil)

// NewService creates an enrollment Service backed by the given stores.
func NewService(
	courseStore store.CourseStore,
	enrollmentStore store.EnrollmentStore,
	db *sql.DB,
	logger *slog.Logger,
) Service {
	return &serviceImpl{
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
		db:              db,
		logger:          logger.With("component", "enrollment_service"),
	}
}

// CheckEligibility evaluates the enrollment rules in their fixed order:
// course existence, prior approval, active enrollment, the credit threshold,
// and finally each prerequisite in catalog order.
func (s *serviceImpl) CheckEligibility(
	ctx context.Context,
	userID uuid.UUID,
	courseCode string,
) (Decision, error) {
	return s.checkEligibility(ctx, s.courseStore, s.enrollmentStore, userID, courseCode)
}

func (s *serviceImpl) checkEligibility(
	ctx context.Context,
	courses store.CourseStore,
	enrollments store.EnrollmentStore,
	userID uuid.UUID,
	courseCode string,
) (Decision, error) {
	course, err := courses.GetByCode(ctx, courseCode)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return Decision{Eligible: false, Reason: ReasonCourseNotFound}, nil
		}
		s.logger.Error("failed to retrieve course for eligibility check",
			"error", err,
			"course_code", courseCode)
		return Decision{}, fmt.Errorf("failed to retrieve course: %w", err)
	}

	state, err := enrollments.GetState(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve academic state",
			"error", err,
			"user_id", userID)
		return Decision{}, fmt.Errorf("failed to retrieve academic state: %w", err)
	}

	if state.HasApproved(course.Code) {
		return Decision{Eligible: false, Reason: ReasonAlreadyApproved}, nil
	}
	if state.IsEnrolled(course.Code) {
		return Decision{Eligible: false, Reason: ReasonAlreadyEnrolled}, nil
	}

	if state.AccumulatedCredits < course.MinCredits {
		return Decision{
			Eligible: false,
			Reason: fmt.Sprintf("requires %d approved credits (have %d)",
				course.MinCredits, state.AccumulatedCredits),
		}, nil
	}

	for _, prereq := range course.Prerequisites {
		if state.HasApproved(prereq) {
			continue
		}
		// Report the catalog display name when the prerequisite resolves,
		// otherwise fall back to the raw code.
		label := prereq
		if prereqCourse, err := courses.GetByCode(ctx, prereq); err == nil {
			label = prereqCourse.Name
		} else if !errors.Is(err, store.ErrCourseNotFound) {
			s.logger.Error("failed to resolve prerequisite course",
				"error", err,
				"course_code", prereq)
			return Decision{}, fmt.Errorf("failed to resolve prerequisite: %w", err)
		}
		return Decision{
			Eligible: false,
			Reason:   fmt.Sprintf("missing prerequisite: %s", label),
		}, nil
	}

	return Decision{Eligible: true, Reason: ReasonEligible}, nil
}

// Enroll re-runs the eligibility check and inserts the enrollment in one
// transaction. The partial unique index on active enrollments closes the
// check-then-act race: a concurrent duplicate surfaces as
// store.ErrAlreadyEnrolled from the insert.
func (s *serviceImpl) Enroll(ctx context.Context, userID uuid.UUID, courseCode string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCourses := s.courseStore.WithTx(tx)
		txEnrollments := s.enrollmentStore.WithTx(tx)

		decision, err := s.checkEligibility(ctx, txCourses, txEnrollments, userID, courseCode)
		if err != nil {
			return err
		}
		if !decision.Eligible {
			return fmt.Errorf("%w: %s", ErrNotEligible, decision.Reason)
		}

		return txEnrollments.Enroll(ctx, userID, courseCode)
	})

	if err != nil {
		if errors.Is(err, ErrNotEligible) || errors.Is(err, store.ErrAlreadyEnrolled) {
			s.logger.Debug("enrollment rejected",
				"user_id", userID,
				"course_code", courseCode,
				"error", err)
		} else {
			s.logger.Error("failed to enroll",
				"error", err,
				"user_id", userID,
				"course_code", courseCode)
		}
		return err
	}

	s.logger.Info("user enrolled",
		"user_id", userID,
		"course_code", courseCode)

	return nil
}

// Cancel transitions the active enrollment to cancelled, keeping the row
// for history.
func (s *serviceImpl) Cancel(ctx context.Context, userID uuid.UUID, courseCode string) error {
	err := s.enrollmentStore.Cancel(ctx, userID, courseCode)
	if err != nil {
		if errors.Is(err, store.ErrEnrollmentNotFound) {
			s.logger.Debug("attempted to cancel non-existent enrollment",
				"user_id", userID,
				"course_code", courseCode)
		} else {
			s.logger.Error("failed to cancel enrollment",
				"error", err,
				"user_id", userID,
				"course_code", courseCode)
		}
		return fmt.Errorf("failed to cancel enrollment: %w", err)
	}

	s.logger.Info("enrollment cancelled",
		"user_id", userID,
		"course_code", courseCode)

	return nil
}

// CurrentCourses resolves the user's active enrollment codes against the
// catalog, preserving enrollment order.
func (s *serviceImpl) CurrentCourses(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Course, error) {
	codes, err := s.enrollmentStore.ListEnrolled(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return s.resolveCourses(ctx, codes)
}

// ApprovedCourses resolves the user's approved course codes against the
// catalog and sums their credits.
func (s *serviceImpl) ApprovedCourses(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Course, int, error) {
	codes, err := s.enrollmentStore.ListApproved(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list approved courses: %w", err)
	}

	courses, err := s.resolveCourses(ctx, codes)
	if err != nil {
		return nil, 0, err
	}

	credits := 0
	for _, course := range courses {
		credits += course.Credits
	}
	return courses, credits, nil
}

func (s *serviceImpl) resolveCourses(
	ctx context.Context,
	codes []string,
) ([]*domain.Course, error) {
	byCode, err := s.courseStore.GetByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve courses: %w", err)
	}

	courses := make([]*domain.Course, 0, len(codes))
	for _, code := range codes {
		if course, ok := byCode[code]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}
