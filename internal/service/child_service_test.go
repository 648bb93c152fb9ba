package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tinymath/internal/database"
	"tinymath/internal/repository"
	"tinymath/internal/validation"
)

func newTestChildService(t *testing.T) (*ChildService, int64) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)

	parent, err := userRepo.CreateUser("Test Parent", "parent@example.com", "female", "hashedpass", "123456", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Failed to create parent: %v", err)
	}

	return NewChildService(childRepo, userRepo), parent.ID
}

func TestAddChildDerivesLevelFromAge(t *testing.T) {
	svc, parentID := newTestChildService(t)

	tests := []struct {
		age           int
		expectedLevel int
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
		child, err := svc.AddChild(parentID, "Test Child", tt.age)
		if err != nil {
			t.Fatalf("AddChild(age=%d) failed: %v", tt.age, err)
		}
		if child.CurrentLevel != tt.expectedLevel {
			t.Errorf("age %d: expected level %d, got %d", tt.age, tt.expectedLevel, child.CurrentLevel)
		}
		if child.Stars != 0 || child.HighScore != 0 {
			t.Errorf("age %d: expected zeroed progress, got %+v", tt.age, child)
		}
	}
}

func TestAddChildValidation(t *testing.T) {
	svc, parentID := newTestChildService(t)

	var vErr validation.ValidationError
	if _, err := svc.AddChild(parentID, "X", 5); !errors.As(err, &vErr) {
		t.Errorf("expected validation error for short name, got %v", err)
	}
	if _, err := svc.AddChild(parentID, "Test Child", -1); !errors.As(err, &vErr) {
		t.Errorf("expected validation error for negative age, got %v", err)
	}
}

func TestAddChildMissingParent(t *testing.T) {
	svc, _ := newTestChildService(t)

	if _, err := svc.AddChild(9999, "Test Child", 5); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetChildrenList(t *testing.T) {
	svc, parentID := newTestChildService(t)

	children, err := svc.GetChildren(parentID)
	if err != nil {
		t.Fatalf("GetChildren failed: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("expected no children yet, got %d", len(children))
	}

	for _, name := range []string{"Ana", "Ben"} {
		if _, err := svc.AddChild(parentID, name, 5); err != nil {
			t.Fatalf("AddChild failed: %v", err)
		}
	}

	children, err = svc.GetChildren(parentID)
	if err != nil {
		t.Fatalf("GetChildren failed: %v", err)
	}
	if len(children) != 2 {
		t.Errorf("expected 2 children, got %d", len(children))
	}
}

func TestUpdateChildProgressService(t *testing.T) {
	svc, parentID := newTestChildService(t)

	child, err := svc.AddChild(parentID, "Test Child", 5)
	if err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}

	score := 120
	updated, err := svc.UpdateProgress(child.ID, 7, 4, &score)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if updated.Stars != 7 || updated.CurrentLevel != 4 || updated.HighScore != 120 {
		t.Errorf("unexpected progress: %+v", updated)
	}

	// No high score in the request leaves the stored one alone
	updated, err = svc.UpdateProgress(child.ID, 9, 5, nil)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if updated.HighScore != 120 {
		t.Errorf("high score should be untouched, got %d", updated.HighScore)
	}

	var vErr validation.ValidationError
	negative := -5
	if _, err := svc.UpdateProgress(child.ID, 1, 1, &negative); !errors.As(err, &vErr) {
		t.Errorf("expected validation error for negative high score, got %v", err)
	}

	if _, err := svc.UpdateProgress(9999, 1, 1, nil); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("expected ErrChildNotFound, got %v", err)
	}
}

func TestDeleteChildService(t *testing.T) {
	svc, parentID := newTestChildService(t)

	child, err := svc.AddChild(parentID, "Test Child", 5)
	if err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}

	if err := svc.DeleteChild(child.ID); err != nil {
		t.Fatalf("DeleteChild failed: %v", err)
	}

	if err := svc.DeleteChild(child.ID); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("expected ErrChildNotFound, got %v", err)
	}

	children, err := svc.GetChildren(parentID)
	if err != nil {
		t.Fatalf("GetChildren failed: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("expected no children after delete, got %d", len(children))
	}
}
