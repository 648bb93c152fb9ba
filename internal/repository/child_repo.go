package repository

import (
	"database/sql"
	"fmt"
	"time"

	"tinymath/internal/database"
	"tinymath/internal/models"
)

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild creates a new child profile with its starting level
func (r *ChildRepository) CreateChild(parentID int64, name string, age, currentLevel int) (*models.Child, error) {
	query := `
		INSERT INTO children (parent_id, name, age, current_level)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, parentID, name, age, currentLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	child := &models.Child{
		ID:           id,
		ParentID:     parentID,
		Name:         name,
		Age:          age,
		CurrentLevel: currentLevel,
		Stars:        0,
		HighScore:    0,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return child, nil
}

// GetChildByID retrieves a child profile by ID
func (r *ChildRepository) GetChildByID(id int64) (*models.Child, error) {
	query := `
		SELECT id, parent_id, name, age, current_level, stars, high_score, created_at, updated_at
		FROM children
		WHERE id = ?
	`
	child := &models.Child{}
	err := r.db.QueryRow(query, id).Scan(
		&child.ID,
		&child.ParentID,
		&child.Name,
		&child.Age,
		&child.CurrentLevel,
		&child.Stars,
		&child.HighScore,
		&child.CreatedAt,
		&child.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	return child, nil
}

// GetChildrenByParent retrieves all child profiles owned by an account
func (r *ChildRepository) GetChildrenByParent(parentID int64) ([]models.Child, error) {
	query := `
		SELECT id, parent_id, name, age, current_level, stars, high_score, created_at, updated_at
		FROM children
		WHERE parent_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		if err := rows.Scan(
			&child.ID,
			&child.ParentID,
			&child.Name,
			&child.Age,
			&child.CurrentLevel,
			&child.Stars,
			&child.HighScore,
			&child.CreatedAt,
			&child.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

// UpdateProgress sets a child's game progress. highScore is only written when
// provided; a nil pointer leaves the stored value untouched.
// Returns false when the child does not exist.
func (r *ChildRepository) UpdateProgress(id int64, stars, currentLevel int, highScore *int) (bool, error) {
	var result sql.Result
	var err error

	if highScore != nil {
		query := `
			UPDATE children
			SET stars = ?, current_level = ?, high_score = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		result, err = r.db.Exec(query, stars, currentLevel, *highScore, id)
	} else {
		query := `
			UPDATE children
			SET stars = ?, current_level = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		result, err = r.db.Exec(query, stars, currentLevel, id)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update child progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// DeleteChild removes a child profile.
// Returns false when the child does not exist.
func (r *ChildRepository) DeleteChild(id int64) (bool, error) {
	query := "DELETE FROM children WHERE id = ?"
	result, err := r.db.Exec(query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete child: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}
