package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("student@example.com", "Ana", "secret1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.StudyProfile != StudyProfileModerate {
		t.Errorf("Expected default profile %s, got %s", StudyProfileModerate, user.StudyProfile)
	}

	// Test invalid email
	_, err = NewUser("not-an-email", "Ana", "secret1")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test short password
	_, err = NewUser("student@example.com", "Ana", "ab1")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	// Test all-digit password
	_, err = NewUser("student@example.com", "Ana", "123456789")
	if err != ErrPasswordNeedsLetter {
		t.Errorf("Expected error %v, got %v", ErrPasswordNeedsLetter, err)
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from storage has a hash but no plaintext password
	user := User{
		ID:             uuid.New(),
		Email:          "student@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		StudyProfile:   StudyProfileLight,
	}
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	user.StudyProfile = StudyProfile("hardcore")
	if err := user.Validate(); err != ErrInvalidStudyProfile {
		t.Errorf("Expected error %v, got %v", ErrInvalidStudyProfile, err)
	}
}

func TestStudyProfileIsValid(t *testing.T) {
	t.Parallel()

	for _, profile := range []StudyProfile{StudyProfileIntensive, StudyProfileModerate, StudyProfileLight} {
		if !profile.IsValid() {
			t.Errorf("Expected profile %s to be valid", profile)
		}
	}
	if StudyProfile("").IsValid() {
		t.Error("Expected empty profile to be invalid")
	}
}
