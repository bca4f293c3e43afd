package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/uniplanner/planner-api/internal/api/shared"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/domain/planner"
	"github.com/uniplanner/planner-api/internal/service"
	"github.com/uniplanner/planner-api/internal/service/auth"
	"github.com/uniplanner/planner-api/internal/service/enrollment"
	"github.com/uniplanner/planner-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors, including tasks that reference a course missing
	// from the catalog
	case store.IsNotFoundError(err),
		errors.Is(err, planner.ErrUnknownCourse):
		return http.StatusNotFound

	// Conflict errors: duplicates and failed enrollment rules
	case store.IsDuplicateError(err),
		errors.Is(err, enrollment.ErrNotEligible):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, planner.ErrInvalidDaily),
		errors.Is(err, planner.ErrInvalidThreshold),
		isDomainValidationError(err),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// isDomainValidationError reports whether err is one of the domain entity
// validation sentinels. These surface when a handler constructs or mutates
// an entity from request data.
func isDomainValidationError(err error) bool {
	validationErrs := []error{
		domain.ErrInvalidEmail,
		domain.ErrInvalidPassword,
		domain.ErrInvalidTaskType,
		domain.ErrInvalidStudyProfile,
		domain.ErrEmptyEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrPasswordNeedsLetter,
		domain.ErrTaskCourseCodeEmpty,
		domain.ErrTaskTitleLength,
		domain.ErrTaskDueAtZero,
		domain.ErrTaskHoursRange,
		domain.ErrTaskDifficultyRange,
		domain.ErrCourseCodeEmpty,
		domain.ErrCourseNameEmpty,
		domain.ErrCourseCreditsNegative,
		domain.ErrCourseSemesterRange,
		domain.ErrCourseSelfPrerequisite,
	}
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCourseNotFound),
		errors.Is(err, planner.ErrUnknownCourse):
		return "Course not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrEnrollmentNotFound):
		return "No active enrollment found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrCourseExists):
		return "Course code already exists"

	case errors.Is(err, store.ErrAlreadyEnrolled):
		return "Already enrolled in this course"

	case errors.Is(err, enrollment.ErrNotEligible):
		// The text after the sentinel prefix is one of the fixed
		// eligibility reason strings, safe to surface.
		prefix := enrollment.ErrNotEligible.Error() + ": "
		if reason := strings.TrimPrefix(err.Error(), prefix); reason != err.Error() {
			return "Not eligible: " + reason
		}
		return "Not eligible for enrollment"

	// Bad request errors
	case errors.Is(err, planner.ErrInvalidDaily):
		return "Daily hours must be positive"

	case errors.Is(err, planner.ErrInvalidThreshold):
		return "Days must be at least 1"

	case isDomainValidationError(err), errors.Is(err, domain.ErrValidation):
		// Domain validation sentinels carry fixed, user-facing text.
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message, then writes the
// error response. If userMessage is non-empty it overrides the derived
// message. The raw error is logged (redacted), never sent to the client.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt":
		return "must be greater"
	default:
		return "validation failed"
	}
}
