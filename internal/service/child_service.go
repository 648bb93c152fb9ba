package service

import (
	"errors"
	"fmt"

	"tinymath/internal/models"
	"tinymath/internal/repository"
	"tinymath/internal/validation"
)

var ErrChildNotFound = errors.New("child not found")

// ChildService handles child profile CRUD and progress tracking
type ChildService struct {
	childRepo *repository.ChildRepository
	userRepo  *repository.UserRepository
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository, userRepo *repository.UserRepository) *ChildService {
	return &ChildService{
		childRepo: childRepo,
		userRepo:  userRepo,
	}
}

// AddChild creates a child profile under a parent account. The starting
// level is derived from the child's age.
func (s *ChildService) AddChild(parentID int64, name string, age int) (*models.Child, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(age); err != nil {
		return nil, err
	}

	parent, err := s.userRepo.GetUserByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, ErrUserNotFound
	}

	level := models.InitialLevelForAge(age)

	child, err := s.childRepo.CreateChild(parentID, name, age, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return child, nil
}

// GetChildren retrieves all child profiles owned by a parent account
func (s *ChildService) GetChildren(parentID int64) ([]models.Child, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	return children, nil
}

// UpdateProgress sets a child's game progress and returns the updated
// profile. highScore is optional: nil leaves the stored high score
// untouched, while an explicit value (including zero) overwrites it.
func (s *ChildService) UpdateProgress(id int64, stars, currentLevel int, highScore *int) (*models.Child, error) {
	if err := validation.ValidateProgress(currentLevel, stars); err != nil {
		return nil, err
	}
	if highScore != nil && *highScore < 0 {
		return nil, validation.ValidationError{Field: "highScore", Message: "high score must not be negative"}
	}

	ok, err := s.childRepo.UpdateProgress(id, stars, currentLevel, highScore)
	if err != nil {
		return nil, fmt.Errorf("failed to update child progress: %w", err)
	}
	if !ok {
		return nil, ErrChildNotFound
	}

	child, err := s.childRepo.GetChildByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	return child, nil
}

// DeleteChild removes a child profile by ID
func (s *ChildService) DeleteChild(id int64) error {
	ok, err := s.childRepo.DeleteChild(id)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	if !ok {
		return ErrChildNotFound
	}
	return nil
}
