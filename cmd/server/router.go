package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uniplanner/planner-api/internal/api"
	apiMiddleware "github.com/uniplanner/planner-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, tokenLifetime, app.logger)
	courseHandler := api.NewCourseHandler(app.courseStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.recommendationService, app.logger)
	enrollmentHandler := api.NewEnrollmentHandler(app.enrollmentService, app.logger)
	recommendationHandler := api.NewRecommendationHandler(app.recommendationService, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.userService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Set up API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/courses", func(r chi.Router) {
				r.Post("/", courseHandler.CreateCourse)
				r.Get("/", courseHandler.ListCourses)
				r.Get("/{courseCode}", courseHandler.GetCourse)
			})

			r.Route("/enrollments", func(r chi.Router) {
				r.Get("/current", enrollmentHandler.CurrentCourses)
				r.Get("/approved", enrollmentHandler.ApprovedCourses)
				r.Post("/{courseCode}", enrollmentHandler.Enroll)
				r.Delete("/{courseCode}", enrollmentHandler.Cancel)
				r.Get("/{courseCode}/eligibility", enrollmentHandler.CheckEligibility)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.CreateTask)
				r.Get("/", taskHandler.ListTasks)
				r.Get("/{taskID}", taskHandler.GetTask)
				r.Post("/{taskID}/complete", taskHandler.CompleteTask)
				r.Delete("/{taskID}", taskHandler.DeleteTask)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", recommendationHandler.Recommendations)
				r.Get("/weekly-load", recommendationHandler.WeeklyLoad)
				r.Get("/study-plan", recommendationHandler.StudyPlan)
				r.Get("/stats", recommendationHandler.Stats)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListNotifications)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/{notificationID}/read", notificationHandler.MarkRead)
				r.Get("/achievements", notificationHandler.Achievements)
			})

			r.Get("/me", settingsHandler.GetProfile)
			r.Delete("/me", settingsHandler.DeleteAccount)
			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
		})
	})

	// Basic health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}
