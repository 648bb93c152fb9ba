package repository

import (
	"testing"
	"time"
)

func newChildTestRepos(t *testing.T) (*UserRepository, *ChildRepository, int64) {
	t.Helper()
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	childRepo := NewChildRepository(db)
	parentID := createTestUser(t, userRepo, "parent@example.com", "123456", time.Now().Add(time.Hour))
	return userRepo, childRepo, parentID
}

func TestCreateAndGetChild(t *testing.T) {
	_, repo, parentID := newChildTestRepos(t)

	child, err := repo.CreateChild(parentID, "Mia", 4, 2)
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}
	if child.ID <= 0 {
		t.Errorf("expected positive id, got %d", child.ID)
	}

	got, err := repo.GetChildByID(child.ID)
	if err != nil {
		t.Fatalf("GetChildByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected child, got nil")
	}
	if got.Name != "Mia" || got.Age != 4 || got.CurrentLevel != 2 {
		t.Errorf("unexpected child: %+v", got)
	}
	if got.Stars != 0 || got.HighScore != 0 {
		t.Errorf("expected zeroed progress, got stars=%d highScore=%d", got.Stars, got.HighScore)
	}
	if got.ParentID != parentID {
		t.Errorf("expected parent %d, got %d", parentID, got.ParentID)
	}
}

func TestGetChildMissingReturnsNil(t *testing.T) {
	_, repo, _ := newChildTestRepos(t)

	child, err := repo.GetChildByID(9999)
	if err != nil {
		t.Fatalf("GetChildByID failed: %v", err)
	}
	if child != nil {
		t.Errorf("expected nil for missing child, got %+v", child)
	}
}

func TestGetChildrenByParent(t *testing.T) {
	userRepo, repo, parentID := newChildTestRepos(t)

	otherParent := createTestUser(t, userRepo, "other@example.com", "654321", time.Now().Add(time.Hour))

	names := []string{"Ana", "Ben", "Cleo"}
	for _, name := range names {
		if _, err := repo.CreateChild(parentID, name, 5, 3); err != nil {
			t.Fatalf("CreateChild failed: %v", err)
		}
	}
	if _, err := repo.CreateChild(otherParent, "Zed", 6, 3); err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	children, err := repo.GetChildrenByParent(parentID)
	if err != nil {
		t.Fatalf("GetChildrenByParent failed: %v", err)
	}
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	for i, name := range names {
		if children[i].Name != name {
			t.Errorf("expected child %d to be %q, got %q", i, name, children[i].Name)
		}
	}

	empty, err := repo.GetChildrenByParent(9999)
	if err != nil {
		t.Fatalf("GetChildrenByParent failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no children, got %d", len(empty))
	}
}

func TestUpdateChildProgress(t *testing.T) {
	_, repo, parentID := newChildTestRepos(t)

	child, err := repo.CreateChild(parentID, "Mia", 4, 2)
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	// Seed a high score, then update without one: it must survive
	score := 90
	if _, err := repo.UpdateProgress(child.ID, 5, 2, &score); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	ok, err := repo.UpdateProgress(child.ID, 10, 3, nil)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if !ok {
		t.Fatal("expected progress update to match")
	}

	got, _ := repo.GetChildByID(child.ID)
	if got.Stars != 10 || got.CurrentLevel != 3 {
		t.Errorf("expected progress 10/3, got %d/%d", got.Stars, got.CurrentLevel)
	}
	if got.HighScore != 90 {
		t.Errorf("high score should be untouched, got %d", got.HighScore)
	}

	// An explicit zero overwrites
	zero := 0
	if _, err := repo.UpdateProgress(child.ID, 10, 3, &zero); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	got, _ = repo.GetChildByID(child.ID)
	if got.HighScore != 0 {
		t.Errorf("expected high score overwritten to 0, got %d", got.HighScore)
	}

	ok, err = repo.UpdateProgress(9999, 1, 1, nil)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if ok {
		t.Error("expected no match for missing child")
	}
}

func TestDeleteChild(t *testing.T) {
	_, repo, parentID := newChildTestRepos(t)

	child, err := repo.CreateChild(parentID, "Mia", 4, 2)
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	ok, err := repo.DeleteChild(child.ID)
	if err != nil {
		t.Fatalf("DeleteChild failed: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to match")
	}

	got, err := repo.GetChildByID(child.ID)
	if err != nil {
		t.Fatalf("GetChildByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected child to be gone, got %+v", got)
	}

	ok, err = repo.DeleteChild(child.ID)
	if err != nil {
		t.Fatalf("DeleteChild failed: %v", err)
	}
	if ok {
		t.Error("expected no match for already-deleted child")
	}
}
