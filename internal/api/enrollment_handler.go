package api

import (
	"log/slog"
	"net/http"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/service/enrollment"
)

// EnrollmentHandler handles enrollment-related HTTP requests.
type EnrollmentHandler struct {
	enrollmentService enrollment.Service
	logger            *slog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler with the given dependencies.
func NewEnrollmentHandler(enrollmentService enrollment.Service, log *slog.Logger) *EnrollmentHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		logger:            log.With(slog.String("component", "enrollment_handler")),
	}
}

// CheckEligibility handles GET /enrollments/{courseCode}/eligibility requests.
// It reports whether the user could enroll without changing any state.
func (h *EnrollmentHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	code, err := getPathCourseCode(r, "courseCode")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	decision, err := h.enrollmentService.CheckEligibility(r.Context(), userID, code)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decision)
}

// Enroll handles POST /enrollments/{courseCode} requests.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	code, err := getPathCourseCode(r, "courseCode")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.enrollmentService.Enroll(r.Context(), userID, code); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("enrolled",
		slog.String("user_id", userID.String()),
		slog.String("course_code", code))

	shared.RespondWithJSON(w, r, http.StatusCreated, EnrollmentResponse{
		CourseCode: code,
		Status:     "active",
	})
}

// Cancel handles DELETE /enrollments/{courseCode} requests.
func (h *EnrollmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	code, err := getPathCourseCode(r, "courseCode")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.enrollmentService.Cancel(r.Context(), userID, code); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EnrollmentResponse{
		CourseCode: code,
		Status:     "cancelled",
	})
}

// CurrentCourses handles GET /enrollments/current requests.
func (h *EnrollmentHandler) CurrentCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courses, err := h.enrollmentService.CurrentCourses(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{
		Courses: courses,
		Total:   len(courses),
	})
}

// ApprovedCourses handles GET /enrollments/approved requests.
func (h *EnrollmentHandler) ApprovedCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courses, credits, err := h.enrollmentService.ApprovedCourses(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ApprovedCoursesResponse{
		Courses:      courses,
		TotalCredits: credits,
	})
}
