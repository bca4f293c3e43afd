package store

import (
	"context"
	"database/sql"

	"github.com/uniplanner/planner-api/internal/domain"
)

// CourseStore defines the interface for course catalog persistence.
// The catalog is keyed by course code and shared across all users.
type CourseStore interface {
	// Create adds a course to the catalog.
	// Returns ErrCourseExists if the code is already taken.
	// Returns validation errors from the domain Course if data is invalid.
	Create(ctx context.Context, course *domain.Course) error

	// GetByCode retrieves a course by its code.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByCode(ctx context.Context, code string) (*domain.Course, error)

	// List retrieves the full catalog ordered by semester, then code.
	// Returns an empty slice when the catalog is empty.
	List(ctx context.Context) ([]*domain.Course, error)

	// ListBySemester retrieves the courses of one semester ordered by code.
	// Returns an empty slice if no courses match.
	ListBySemester(ctx context.Context, semester int) ([]*domain.Course, error)

	// Search retrieves courses whose code or name contains the query,
	// case-insensitively, ordered by code.
	// Returns an empty slice if no courses match.
	Search(ctx context.Context, query string) ([]*domain.Course, error)

	// GetByCodes retrieves the named courses as a code-indexed map.
	// Codes with no catalog entry are simply absent from the result;
	// callers decide whether a missing course is an error.
	GetByCodes(ctx context.Context, codes []string) (map[string]*domain.Course, error)

	// WithTx returns a new CourseStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CourseStore
}
