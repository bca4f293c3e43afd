package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrPasswordNeedsLetter = errors.New("password must contain at least one letter")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// StudyProfile expresses how many hours per day a student is willing to
// study. It selects the default daily budget used when building study plans.
type StudyProfile string

// Recognized study profiles.
const (
	StudyProfileIntensive StudyProfile = "intensive"
	StudyProfileModerate  StudyProfile = "moderate"
	StudyProfileLight     StudyProfile = "light"
)

// IsValid reports whether p is one of the recognized study profiles.
func (p StudyProfile) IsValid() bool {
	switch p {
	case StudyProfileIntensive, StudyProfileModerate, StudyProfileLight:
		return true
	default:
		return false
	}
}

// User represents a registered student.
// It contains essential account information and authentication details.
type User struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	Name           string       `json:"name"`
	Password       string       `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string       `json:"-"` // Never expose password hash in JSON
	StudyProfile   StudyProfile `json:"study_profile"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewUser creates a new User with the given email, name, and password.
// It generates a new UUID for the user ID, defaults the study profile to
// moderate, and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(email, name, password string) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Password:     password, // Plaintext password - must be hashed before storage
		StudyProfile: StudyProfileModerate,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if !u.StudyProfile.IsValid() {
		return ErrInvalidStudyProfile
	}

	// During user creation/update we need to validate the provided password
	if u.Password != "" {
		if err := validatePassword(u.Password); err != nil {
			return err
		}
	} else {
		// When no plaintext password is provided, the user must have a hashed
		// password (the case for existing users loaded from the database)
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// TODO: Replace this basic email validation with a more robust library.
// This implementation is intentionally simple and has limitations.
//
// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	if dotIndex == -1 || dotIndex == 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}

// validatePassword checks the password against account rules:
// 6 to 72 characters (bcrypt's practical limit) with at least one letter.
func validatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	for _, char := range password {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') {
			return nil
		}
	}
	return ErrPasswordNeedsLetter
}
