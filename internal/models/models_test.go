package models

import (
	"testing"
	"time"
)

func TestUserCodeMatches(t *testing.T) {
	now := time.Now()
	code := "123456"
	future := now.Add(10 * time.Minute)
	past := now.Add(-1 * time.Second)

	tests := []struct {
		name      string
		code      *string
		expiresAt *time.Time
		input     string
		want      bool
	}{
		{
			name:      "matching unexpired code",
			code:      &code,
			expiresAt: &future,
			input:     "123456",
			want:      true,
		},
		{
			name:      "wrong code",
			code:      &code,
			expiresAt: &future,
			input:     "654321",
			want:      false,
		},
		{
			name:      "expired code",
			code:      &code,
			expiresAt: &past,
			input:     "123456",
			want:      false,
		},
		{
			name:      "expiry exactly now is invalid",
			code:      &code,
			expiresAt: &now,
			input:     "123456",
			want:      false,
		},
		{
			name:  "no pending code",
			input: "123456",
			want:  false,
		},
		{
			name:      "empty input never matches",
			code:      &code,
			expiresAt: &future,
			input:     "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{
				ID:               1,
				Email:            "parent@example.com",
				VerificationCode: tt.code,
				CodeExpiresAt:    tt.expiresAt,
			}
			if got := user.CodeMatches(tt.input, now); got != tt.want {
				t.Errorf("User.CodeMatches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUserHasPendingCode(t *testing.T) {
	code := "123456"
	expires := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		code      *string
		expiresAt *time.Time
		want      bool
	}{
		{name: "both set", code: &code, expiresAt: &expires, want: true},
		{name: "both nil", want: false},
		{name: "code without expiry", code: &code, want: false},
		{name: "expiry without code", expiresAt: &expires, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{VerificationCode: tt.code, CodeExpiresAt: tt.expiresAt}
			if got := user.HasPendingCode(); got != tt.want {
				t.Errorf("User.HasPendingCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidGender(t *testing.T) {
	tests := []struct {
		gender string
		want   bool
	}{
		{"male", true},
		{"female", true},
		{"other", true},
		{"", false},
		{"Male", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			if got := ValidGender(tt.gender); got != tt.want {
				t.Errorf("ValidGender(%q) = %v, want %v", tt.gender, got, tt.want)
			}
		})
	}
}

func TestInitialLevelForAge(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{0, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{12, 3},
		{99, 3},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			if got := InitialLevelForAge(tt.age); got != tt.want {
				t.Errorf("InitialLevelForAge(%d) = %d, want %d", tt.age, got, tt.want)
			}
		})
	}
}
