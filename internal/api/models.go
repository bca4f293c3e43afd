package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/uniplanner/planner-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// ApprovedCourses and CurrentCourses optionally seed the student's academic
// record, so a student transferring mid-degree starts with history in place.
type RegisterRequest struct {
	Email           string   `json:"email"            validate:"required,email"`
	Name            string   `json:"name"             validate:"required,min=1,max=255"`
	Password        string   `json:"password"         validate:"required,min=6,max=72"`
	ApprovedCourses []string `json:"approved_courses" validate:"omitempty,dive,required"`
	CurrentCourses  []string `json:"current_courses"  validate:"omitempty,dive,required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// UserResponse defines the public representation of a user account.
type UserResponse struct {
	ID           uuid.UUID           `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	StudyProfile domain.StudyProfile `json:"study_profile"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a domain User.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		StudyProfile: user.StudyProfile,
		CreatedAt:    user.CreatedAt,
	}
}

// UpdateStudyProfileRequest defines the payload for the settings endpoint.
type UpdateStudyProfileRequest struct {
	StudyProfile string `json:"study_profile" validate:"required,oneof=intensive moderate light"`
}

// SettingsResponse defines the response for the settings endpoints.
type SettingsResponse struct {
	StudyProfile domain.StudyProfile `json:"study_profile"`
}

// CreateCourseRequest defines the payload for adding a catalog course.
type CreateCourseRequest struct {
	Code          string   `json:"code"          validate:"required,min=2,max=32"`
	Name          string   `json:"name"          validate:"required,min=1,max=255"`
	Credits       int      `json:"credits"       validate:"min=0"`
	Semester      int      `json:"semester"      validate:"required,min=1,max=12"`
	Prerequisites []string `json:"prerequisites" validate:"omitempty,dive,required"`
	MinCredits    int      `json:"min_credits"   validate:"min=0"`
}

// CourseListResponse defines the response for catalog listing endpoints.
type CourseListResponse struct {
	Courses []*domain.Course `json:"courses"`
	Total   int              `json:"total"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	CourseCode     string  `json:"course_code"     validate:"required"`
	Title          string  `json:"title"           validate:"required,min=3,max=255"`
	Description    string  `json:"description"     validate:"max=2000"`
	Type           string  `json:"type"            validate:"required"`
	DueAt          string  `json:"due_at"          validate:"required"`
	EstimatedHours float64 `json:"estimated_hours" validate:"required,gt=0"`
	Difficulty     int     `json:"difficulty"      validate:"required,min=1,max=5"`
}

// TaskListResponse defines the response for the task listing endpoint.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// EnrollmentResponse defines the response for enroll/cancel operations.
type EnrollmentResponse struct {
	CourseCode string `json:"course_code"`
	Status     string `json:"status"`
}

// ApprovedCoursesResponse defines the response for the approved-courses
// endpoint, listing the approved catalog entries with the accumulated
// credit total.
type ApprovedCoursesResponse struct {
	Courses      []*domain.Course `json:"courses"`
	TotalCredits int              `json:"total_credits"`
}

// NotificationListResponse defines the response for the notification feed.
type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int                   `json:"total"`
}

// UnreadCountResponse defines the response for the unread-count endpoint.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
