package validation

import (
	"fmt"
	"regexp"
	"strings"

	"tinymath/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "fullName", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "fullName", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateGender checks that gender is one of the accepted enum values
func ValidateGender(gender string) error {
	if !models.ValidGender(gender) {
		return ValidationError{Field: "gender", Message: "gender must be male, female or other"}
	}
	return nil
}

// ValidateAge checks that a child's age is non-negative. There is no upper
// bound: any age from 5 up lands in the top level tier.
func ValidateAge(age int) error {
	if age < 0 {
		return ValidationError{Field: "age", Message: "age must not be negative"}
	}
	return nil
}

// ValidateProgress checks level and star counts for a progress update
func ValidateProgress(level, stars int) error {
	if level < 1 {
		return ValidationError{Field: "currentLevel", Message: "level must be at least 1"}
	}
	if stars < 0 {
		return ValidationError{Field: "stars", Message: "stars must not be negative"}
	}
	return nil
}
