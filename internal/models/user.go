package models

import "time"

// Gender values accepted for a parent account
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User represents a parent account in the system
type User struct {
	ID           int64
	FullName     string
	Email        string
	Gender       string
	PasswordHash string
	Verified     bool

	// VerificationCode and CodeExpiresAt are a pair: both set while a
	// one-time code is pending, both nil otherwise.
	VerificationCode *string
	CodeExpiresAt    *time.Time

	Phone       string
	Nationality string
	Region      string
	DateOfBirth string

	CurrentLevel int
	Stars        int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingCode reports whether a one-time code is stored on the account
func (u *User) HasPendingCode() bool {
	return u.VerificationCode != nil && u.CodeExpiresAt != nil
}

// CodeMatches reports whether code matches the pending one-time code and the
// code is still valid at instant now. Expiry is exclusive: a code is invalid
// from its expiry instant onwards.
func (u *User) CodeMatches(code string, now time.Time) bool {
	if !u.HasPendingCode() || code == "" {
		return false
	}
	return *u.VerificationCode == code && u.CodeExpiresAt.After(now)
}

// ValidGender reports whether gender is one of the accepted values
func ValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
