package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/store"
)

// PostgresCourseStore implements the store.CourseStore interface
// using a PostgreSQL database as the storage backend.
// Prerequisite codes are stored as a JSONB array.
type PostgresCourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the CourseStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore interface
var _ store.CourseStore = (*PostgresCourseStore)(nil)

const courseColumns = `code, name, credits, semester, prerequisites, min_credits`

// Create implements store.CourseStore.Create
// Returns store.ErrCourseExists if the code is already taken.
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during create",
			slog.String("error", err.Error()),
			slog.String("course_code", course.Code))
		return err
	}

	prereqs, err := json.Marshal(course.Prerequisites)
	if err != nil {
		return fmt.Errorf("failed to encode prerequisites: %w", err)
	}

	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		course.Code,
		course.Name,
		course.Credits,
		course.Semester,
		prereqs,
		course.MinCredits,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("attempted to create course with existing code",
				slog.String("course_code", course.Code))
			return store.ErrCourseExists
		}

		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_code", course.Code))
		return MapError(err)
	}

	log.Info("course created successfully",
		slog.String("course_code", course.Code),
		slog.Int("credits", course.Credits))
	return nil
}

// GetByCode implements store.CourseStore.GetByCode
// Returns store.ErrCourseNotFound if the course does not exist.
func (s *PostgresCourseStore) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + courseColumns + ` FROM courses WHERE code = $1`

	course, err := scanCourse(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found", slog.String("course_code", code))
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course by code",
			slog.String("error", err.Error()),
			slog.String("course_code", code))
		return nil, MapError(err)
	}

	return course, nil
}

// List implements store.CourseStore.List
// The catalog comes back ordered by semester, then code.
func (s *PostgresCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY semester, code`
	return s.queryCourses(ctx, query)
}

// ListBySemester implements store.CourseStore.ListBySemester
func (s *PostgresCourseStore) ListBySemester(
	ctx context.Context,
	semester int,
) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE semester = $1 ORDER BY code`
	return s.queryCourses(ctx, query, semester)
}

// Search implements store.CourseStore.Search
// The query matches code and name case-insensitively.
func (s *PostgresCourseStore) Search(ctx context.Context, query string) ([]*domain.Course, error) {
	sqlQuery := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY code
	`
	return s.queryCourses(ctx, sqlQuery, query)
}

// GetByCodes implements store.CourseStore.GetByCodes
// Codes with no catalog entry are simply absent from the result map.
func (s *PostgresCourseStore) GetByCodes(
	ctx context.Context,
	codes []string,
) (map[string]*domain.Course, error) {
	found := make(map[string]*domain.Course, len(codes))
	if len(codes) == 0 {
		return found, nil
	}

	placeholders := make([]string, len(codes))
	args := make([]any, len(codes))
	for i, code := range codes {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = code
	}

	query := `SELECT ` + courseColumns + ` FROM courses WHERE code IN (` +
		strings.Join(placeholders, ", ") + `)`
	courses, err := s.queryCourses(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, course := range courses {
		found[course.Code] = course
	}
	return found, nil
}

// WithTx implements store.CourseStore.WithTx
func (s *PostgresCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &PostgresCourseStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresCourseStore) queryCourses(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query courses",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	courses := []*domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			log.Error("failed to scan course row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return courses, nil
}

func scanCourse(row scanner) (*domain.Course, error) {
	var course domain.Course
	var prereqs []byte

	err := row.Scan(
		&course.Code,
		&course.Name,
		&course.Credits,
		&course.Semester,
		&prereqs,
		&course.MinCredits,
	)
	if err != nil {
		return nil, err
	}

	if len(prereqs) > 0 {
		if err := json.Unmarshal(prereqs, &course.Prerequisites); err != nil {
			return nil, fmt.Errorf("failed to decode prerequisites: %w", err)
		}
	}
	if course.Prerequisites == nil {
		course.Prerequisites = []string{}
	}
	return &course, nil
}
