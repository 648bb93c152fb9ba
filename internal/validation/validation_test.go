package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "John Doe",
			wantErr: false,
		},
		{
			name:    "single name",
			input:   "John",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "name too short",
			input:   "J",
			wantErr: true,
		},
		{
			name:    "name with hyphen",
			input:   "Mary-Jane",
			wantErr: false,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password exactly 8 characters",
			password: "pass1234",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "pass123",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "long password",
			password: "thisIsAVeryLongPasswordThatShouldBeValid123",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGender(t *testing.T) {
	tests := []struct {
		name    string
		gender  string
		wantErr bool
	}{
		{name: "male", gender: "male", wantErr: false},
		{name: "female", gender: "female", wantErr: false},
		{name: "other", gender: "other", wantErr: false},
		{name: "empty", gender: "", wantErr: true},
		{name: "capitalized", gender: "Female", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGender(tt.gender)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGender(%q) error = %v, wantErr %v", tt.gender, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		wantErr bool
	}{
		{name: "newborn", age: 0, wantErr: false},
		{name: "toddler", age: 2, wantErr: false},
		{name: "teenager", age: 17, wantErr: false},
		{name: "no upper bound", age: 99, wantErr: false},
		{name: "negative", age: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAge(tt.age)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAge(%d) error = %v, wantErr %v", tt.age, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProgress(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		stars   int
		wantErr bool
	}{
		{name: "defaults", level: 1, stars: 0, wantErr: false},
		{name: "advanced", level: 7, stars: 120, wantErr: false},
		{name: "zero level", level: 0, stars: 5, wantErr: true},
		{name: "negative stars", level: 2, stars: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgress(tt.level, tt.stars)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgress(%d, %d) error = %v, wantErr %v", tt.level, tt.stars, err, tt.wantErr)
			}
		})
	}
}
