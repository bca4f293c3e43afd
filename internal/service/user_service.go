package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/service/auth"
	"github.com/uniplanner/planner-api/internal/store"
)

// UserService provides account-related operations: registration,
// authentication, profile updates, and deletion.
type UserService interface {
	// Register creates a new user account with the given email, name, and
	// password. The optional approved and enrolled course code slices seed
	// the student's academic history in the same transaction, so a student
	// transferring mid-degree starts with their record already in place.
	Register(
		ctx context.Context,
		email, name, password string,
		approved, enrolled []string,
	) (*domain.User, error)

	// Authenticate verifies the email/password pair and returns the user on
	// success. Returns auth.ErrInvalidCredentials for both unknown emails and
	// wrong passwords so callers cannot distinguish the two.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateStudyProfile changes the user's study profile, which selects the
	// default daily hour budget for study plans.
	UpdateStudyProfile(ctx context.Context, userID uuid.UUID, profile domain.StudyProfile) error

	// DeleteUser deletes a user by their ID
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore       store.UserStore
	courseStore     store.CourseStore
	enrollmentStore store.EnrollmentStore
	hasher          auth.PasswordHasher
	verifier        auth.PasswordVerifier
	logger          *slog.Logger
	db              *sql.DB
}

// Ensure UserServiceImpl implements UserService.
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	courseStore store.CourseStore,
	enrollmentStore store.EnrollmentStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore:       userStore,
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
		hasher:          hasher,
		verifier:        verifier,
		db:              db,
		logger:          logger.With("component", "user_service"),
	}
}

// Register creates a new user account and seeds its academic history.
// Uses a transaction so a failure while recording the initial course sets
// leaves no half-created account behind.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, name, password string,
	approved, enrolled []string,
) (*domain.User, error) {
	// A course is either approved or currently enrolled, never both.
	approvedSet := make(map[string]struct{}, len(approved))
	for _, code := range approved {
		approvedSet[code] = struct{}{}
	}
	for _, code := range enrolled {
		if _, ok := approvedSet[code]; ok {
			s.logger.Debug("rejected registration with overlapping course sets",
				"email", email,
				"course_code", code)
			return nil, domain.NewValidationError(
				"approved_courses",
				fmt.Sprintf("course %s cannot be both approved and enrolled", code),
				domain.ErrValidation,
			)
		}
	}

	user, err := domain.NewUser(email, name, password)
	if err != nil {
		s.logger.Debug("rejected registration with invalid data",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)
		txEnrollments := s.enrollmentStore.WithTx(tx)
		txCourses := s.courseStore.WithTx(tx)

		if err := txUsers.Create(ctx, user); err != nil {
			return err
		}

		// Seeded course codes must exist in the catalog.
		codes := make([]string, 0, len(approved)+len(enrolled))
		codes = append(codes, approved...)
		codes = append(codes, enrolled...)
		if len(codes) > 0 {
			known, err := txCourses.GetByCodes(ctx, codes)
			if err != nil {
				return fmt.Errorf("failed to look up seeded courses: %w", err)
			}
			for _, code := range codes {
				if _, ok := known[code]; !ok {
					return fmt.Errorf("%w: %s", store.ErrCourseNotFound, code)
				}
			}
		}

		for _, code := range approved {
			if err := txEnrollments.RecordApproval(ctx, user.ID, code); err != nil {
				return fmt.Errorf("failed to record approval for %s: %w", code, err)
			}
		}
		for _, code := range enrolled {
			if err := txEnrollments.Enroll(ctx, user.ID, code); err != nil {
				return fmt.Errorf("failed to enroll in %s: %w", code, err)
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email",
				"email", email)
		} else {
			s.logger.Error("failed to register user",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"email", user.Email,
		"approved_courses", len(approved),
		"enrolled_courses", len(enrolled))

	return user, nil
}

// Authenticate verifies the email/password pair.
// Unknown emails and wrong passwords both map to auth.ErrInvalidCredentials.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication attempt for unknown email",
				"email", email)
			return nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for authentication",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication attempt with wrong password",
			"user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	s.logger.Debug("user authenticated successfully",
		"user_id", user.ID)

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	s.logger.Debug("retrieved user successfully",
		"user_id", userID,
		"email", user.Email)

	return user, nil
}

// UpdateStudyProfile changes the user's study profile.
func (s *UserServiceImpl) UpdateStudyProfile(
	ctx context.Context,
	userID uuid.UUID,
	profile domain.StudyProfile,
) error {
	if !profile.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStudyProfile, profile)
	}

	err := s.userStore.UpdateStudyProfile(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to update profile of non-existent user",
				"user_id", userID)
		} else {
			s.logger.Error("failed to update study profile",
				"error", err,
				"user_id", userID)
		}
		return fmt.Errorf("failed to update study profile: %w", err)
	}

	s.logger.Info("study profile updated",
		"user_id", userID,
		"study_profile", profile)

	return nil
}

// DeleteUser deletes a user by their ID
// Uses a transaction to ensure atomicity of the operation
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		err := txStore.Delete(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				s.logger.Debug("attempted to delete non-existent user",
					"user_id", userID)
			} else {
				s.logger.Error("failed to delete user",
					"error", err,
					"user_id", userID)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("user deleted successfully in transaction",
			"user_id", userID)

		return nil
	})
}
