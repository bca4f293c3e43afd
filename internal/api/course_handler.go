package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/store"
)

// CourseHandler handles course catalog HTTP requests.
type CourseHandler struct {
	courseStore store.CourseStore
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(courseStore store.CourseStore, log *slog.Logger) *CourseHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CourseHandler{
		courseStore: courseStore,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "course_handler")),
	}
}

// CreateCourse handles POST /courses requests.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := domain.NewCourse(
		req.Code,
		req.Name,
		req.Credits,
		req.Semester,
		req.Prerequisites,
		req.MinCredits,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.courseStore.Create(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("course created", slog.String("course_code", course.Code))

	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// GetCourse handles GET /courses/{courseCode} requests.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	code, err := getPathCourseCode(r, "courseCode")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courseStore.GetByCode(r.Context(), code)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// ListCourses handles GET /courses requests. Supported query parameters:
// q (term match on code/name) and semester. When both are present the
// search term wins.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if term := query.Get("q"); term != "" {
		courses, err := h.courseStore.Search(r.Context(), term)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{
			Courses: courses,
			Total:   len(courses),
		})
		return
	}

	if sem := query.Get("semester"); sem != "" {
		semester, err := strconv.Atoi(sem)
		if err != nil || semester < 1 {
			shared.RespondWithError(
				w,
				r,
				http.StatusBadRequest,
				"Invalid semester: must be a positive integer",
			)
			return
		}
		courses, err := h.courseStore.ListBySemester(r.Context(), semester)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{
			Courses: courses,
			Total:   len(courses),
		})
		return
	}

	courses, err := h.courseStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{
		Courses: courses,
		Total:   len(courses),
	})
}
