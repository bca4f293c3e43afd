package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/store"
)

// PostgresEnrollmentStore implements the store.EnrollmentStore interface
// using a PostgreSQL database as the storage backend.
//
// Active enrollments live in the enrollments table with a partial unique
// index on (user_id, course_code) WHERE status = 'active'; approved courses
// live in academic_history. Cancelling never deletes a row.
type PostgresEnrollmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEnrollmentStore creates a new PostgreSQL implementation of the EnrollmentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresEnrollmentStore(db store.DBTX, logger *slog.Logger) *PostgresEnrollmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEnrollmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "enrollment_store")),
	}
}

// Ensure PostgresEnrollmentStore implements store.EnrollmentStore interface
var _ store.EnrollmentStore = (*PostgresEnrollmentStore)(nil)

// GetState implements store.EnrollmentStore.GetState
// The credit total is derived from the approved courses joined against the
// catalog, never stored independently.
func (s *PostgresEnrollmentStore) GetState(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.AcademicState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	approved, err := s.ListApproved(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.ListEnrolled(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(SUM(c.credits), 0)
		FROM academic_history h
		JOIN courses c ON c.code = h.course_code
		WHERE h.user_id = $1
	`
	var credits int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&credits); err != nil {
		log.Error("failed to sum approved credits",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	state := &domain.AcademicState{
		UserID:             userID,
		ApprovedCourses:    approved,
		EnrolledCourses:    enrolled,
		AccumulatedCredits: credits,
	}

	log.Debug("assembled academic state",
		slog.String("user_id", userID.String()),
		slog.Int("approved", len(approved)),
		slog.Int("enrolled", len(enrolled)),
		slog.Int("credits", credits))
	return state, nil
}

// Enroll implements store.EnrollmentStore.Enroll
// Returns store.ErrAlreadyEnrolled when the partial unique index rejects a
// second active enrollment for the same user and course.
func (s *PostgresEnrollmentStore) Enroll(
	ctx context.Context,
	userID uuid.UUID,
	courseCode string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO enrollments (id, user_id, course_code, status, enrolled_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	now := time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		query,
		uuid.New(),
		userID,
		courseCode,
		domain.EnrollmentStatusActive,
		now,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate active enrollment",
				slog.String("user_id", userID.String()),
				slog.String("course_code", courseCode))
			return store.ErrAlreadyEnrolled
		}

		log.Error("failed to create enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_code", courseCode))
		return MapError(err)
	}

	log.Info("enrollment created",
		slog.String("user_id", userID.String()),
		slog.String("course_code", courseCode))
	return nil
}

// Cancel implements store.EnrollmentStore.Cancel
// The row is kept with status 'cancelled' so the history stays queryable.
// Returns store.ErrEnrollmentNotFound when no active enrollment exists.
func (s *PostgresEnrollmentStore) Cancel(
	ctx context.Context,
	userID uuid.UUID,
	courseCode string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE enrollments
		SET status = $1, updated_at = $2
		WHERE user_id = $3 AND course_code = $4 AND status = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		domain.EnrollmentStatusCancelled,
		time.Now().UTC(),
		userID,
		courseCode,
		domain.EnrollmentStatusActive,
	)

	if err != nil {
		log.Error("failed to cancel enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_code", courseCode))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		log.Debug("no active enrollment to cancel",
			slog.String("user_id", userID.String()),
			slog.String("course_code", courseCode))
		return store.ErrEnrollmentNotFound
	}

	log.Info("enrollment cancelled",
		slog.String("user_id", userID.String()),
		slog.String("course_code", courseCode))
	return nil
}

// ListEnrolled implements store.EnrollmentStore.ListEnrolled
func (s *PostgresEnrollmentStore) ListEnrolled(
	ctx context.Context,
	userID uuid.UUID,
) ([]string, error) {
	query := `
		SELECT course_code
		FROM enrollments
		WHERE user_id = $1 AND status = $2
		ORDER BY enrolled_at
	`
	return s.queryCodes(ctx, query, userID, domain.EnrollmentStatusActive)
}

// ListApproved implements store.EnrollmentStore.ListApproved
func (s *PostgresEnrollmentStore) ListApproved(
	ctx context.Context,
	userID uuid.UUID,
) ([]string, error) {
	query := `
		SELECT course_code
		FROM academic_history
		WHERE user_id = $1
		ORDER BY approved_at
	`
	return s.queryCodes(ctx, query, userID)
}

// RecordApproval implements store.EnrollmentStore.RecordApproval
// Approving an already approved course is a no-op.
func (s *PostgresEnrollmentStore) RecordApproval(
	ctx context.Context,
	userID uuid.UUID,
	courseCode string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO academic_history (user_id, course_code, approved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_code) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, userID, courseCode, time.Now().UTC())
	if err != nil {
		log.Error("failed to record approval",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_code", courseCode))
		return MapError(err)
	}

	log.Info("course approval recorded",
		slog.String("user_id", userID.String()),
		slog.String("course_code", courseCode))
	return nil
}

// WithTx implements store.EnrollmentStore.WithTx
func (s *PostgresEnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore {
	return &PostgresEnrollmentStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresEnrollmentStore) queryCodes(
	ctx context.Context,
	query string,
	args ...any,
) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query course codes",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			log.Error("failed to scan course code",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return codes, nil
}
