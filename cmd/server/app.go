package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uniplanner/planner-api/internal/config"
	"github.com/uniplanner/planner-api/internal/domain/planner"
	"github.com/uniplanner/planner-api/internal/platform/postgres"
	"github.com/uniplanner/planner-api/internal/service"
	"github.com/uniplanner/planner-api/internal/service/auth"
	"github.com/uniplanner/planner-api/internal/service/enrollment"
	"github.com/uniplanner/planner-api/internal/service/notification"
	"github.com/uniplanner/planner-api/internal/service/recommendation"
	"github.com/uniplanner/planner-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore               store.UserStore
	courseStore             store.CourseStore
	taskStore               store.TaskStore
	enrollmentStore         store.EnrollmentStore
	notificationMarkerStore store.NotificationMarkerStore

	// Service interfaces
	jwtService            auth.JWTService
	userService           service.UserService
	taskService           service.TaskService
	enrollmentService     enrollment.Service
	recommendationService recommendation.Service
	notificationService   notification.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hasher := auth.NewBcryptHasher(bcryptCost)
	verifier := auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.courseStore = postgres.NewPostgresCourseStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.enrollmentStore = postgres.NewPostgresEnrollmentStore(db, logger)
	app.notificationMarkerStore = postgres.NewPostgresNotificationMarkerStore(db, logger)

	// Initialize the priority scoring engine
	plannerService := planner.NewServiceWithParams(planner.NewParams(planner.ParamsConfig{
		UrgentWindowDays:    cfg.Study.UrgentWindowDays,
		RecommendationLimit: cfg.Study.RecommendationLimit,
		CriticalLoadHours:   cfg.Study.CriticalLoadHours,
	}))

	// Initialize application services
	app.userService = service.NewUserService(
		app.userStore,
		app.courseStore,
		app.enrollmentStore,
		hasher,
		verifier,
		db,
		logger,
	)
	app.taskService = service.NewTaskService(app.taskStore, app.courseStore, logger)
	app.enrollmentService = enrollment.NewService(
		app.courseStore,
		app.enrollmentStore,
		db,
		logger,
	)
	app.recommendationService = recommendation.NewService(
		app.taskStore,
		app.courseStore,
		app.userStore,
		app.enrollmentStore,
		plannerService,
		cfg.Study,
		logger,
	)
	app.notificationService = notification.NewService(
		app.taskStore,
		app.courseStore,
		app.notificationMarkerStore,
		cfg.Study.UrgentWindowDays,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
