package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
)

// EnrollmentStore defines the interface for enrollment and academic-history
// persistence. Enrollment rows are never deleted: cancelling flips the row's
// status so the history stays queryable.
type EnrollmentStore interface {
	// GetState assembles the user's academic snapshot: approved course
	// codes, active enrollment codes, and credits accumulated from the
	// approved set against the catalog.
	GetState(ctx context.Context, userID uuid.UUID) (*domain.AcademicState, error)

	// Enroll inserts an active enrollment row.
	// Returns ErrAlreadyEnrolled if an active enrollment already exists for
	// the user and course; the partial unique index enforces this even when
	// two requests race.
	Enroll(ctx context.Context, userID uuid.UUID, courseCode string) error

	// Cancel transitions the user's active enrollment in the course to
	// cancelled. The row is kept for history.
	// Returns ErrEnrollmentNotFound if no active enrollment exists.
	Cancel(ctx context.Context, userID uuid.UUID, courseCode string) error

	// ListEnrolled retrieves the codes of the user's active enrollments,
	// ordered by enrollment time.
	ListEnrolled(ctx context.Context, userID uuid.UUID) ([]string, error)

	// ListApproved retrieves the codes of the user's approved courses,
	// ordered by approval time.
	ListApproved(ctx context.Context, userID uuid.UUID) ([]string, error)

	// RecordApproval adds a course to the user's approved history.
	// Approving an already approved course is a no-op.
	RecordApproval(ctx context.Context, userID uuid.UUID, courseCode string) error

	// WithTx returns a new EnrollmentStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) EnrollmentStore
}
