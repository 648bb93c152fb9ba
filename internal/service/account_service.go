package service

import (
	"fmt"

	"tinymath/internal/models"
	"tinymath/internal/repository"
	"tinymath/internal/validation"
)

// AccountService handles profile and progress mutation for parent accounts
type AccountService struct {
	userRepo *repository.UserRepository
}

// NewAccountService creates a new account service
func NewAccountService(userRepo *repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// GetUser retrieves an account by ID
func (s *AccountService) GetUser(id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile updates the editable profile fields of an account and
// returns the updated representation
func (s *AccountService) UpdateProfile(id int64, fullName, gender, phone, nationality, region, dateOfBirth string) (*models.User, error) {
	if err := validation.ValidateName(fullName); err != nil {
		return nil, err
	}
	if err := validation.ValidateGender(gender); err != nil {
		return nil, err
	}

	ok, err := s.userRepo.UpdateProfile(id, fullName, gender, phone, nationality, region, dateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	return s.GetUser(id)
}

// UpdateProgress sets the account's game progress and returns the updated
// representation
func (s *AccountService) UpdateProgress(id int64, stars, currentLevel int) (*models.User, error) {
	if err := validation.ValidateProgress(currentLevel, stars); err != nil {
		return nil, err
	}

	ok, err := s.userRepo.UpdateProgress(id, stars, currentLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	return s.GetUser(id)
}
