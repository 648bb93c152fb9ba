package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"tinymath/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string         `json:"version"`
	ExportedAt   time.Time      `json:"exported_at"`
	DatabaseType string         `json:"database_type"`
	Users        []UserBackup   `json:"users"`
	Children     []ChildBackup  `json:"children"`
}

// UserBackup represents a parent account record for backup
type UserBackup struct {
	ID               int64      `json:"id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Gender           string     `json:"gender"`
	PasswordHash     string     `json:"password_hash"`
	IsVerified       bool       `json:"is_verified"`
	VerificationCode *string    `json:"verification_code"`
	CodeExpiresAt    *time.Time `json:"code_expires_at"`
	Phone            string     `json:"phone"`
	Nationality      string     `json:"nationality"`
	Region           string     `json:"region"`
	DateOfBirth      string     `json:"date_of_birth"`
	CurrentLevel     int        `json:"current_level"`
	Stars            int        `json:"stars"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ChildBackup represents a child profile record for backup
type ChildBackup struct {
	ID           int64     `json:"id"`
	ParentID     int64     `json:"parent_id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	CurrentLevel int       `json:"current_level"`
	Stars        int       `json:"stars"`
	HighScore    int       `json:"high_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	if err := s.exportChildren(backup); err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d children", len(backup.Users), len(backup.Children))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}

	if err := s.importChildren(backup.Children); err != nil {
		return fmt.Errorf("failed to import children: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, full_name, email, gender, password_hash, is_verified,
		verification_code, code_expires_at,
		COALESCE(phone, ''), COALESCE(nationality, ''), COALESCE(region, ''), COALESCE(date_of_birth, ''),
		current_level, stars, created_at, updated_at
		FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Gender, &u.PasswordHash, &u.IsVerified,
			&u.VerificationCode, &u.CodeExpiresAt,
			&u.Phone, &u.Nationality, &u.Region, &u.DateOfBirth,
			&u.CurrentLevel, &u.Stars, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportChildren(backup *BackupData) error {
	query := `SELECT id, parent_id, name, age, current_level, stars, high_score, created_at, updated_at
		FROM children ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Age, &c.CurrentLevel, &c.Stars, &c.HighScore, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	for _, u := range users {
		// Skip records that already exist so imports can merge
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE id = ?", u.ID).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		query := `INSERT INTO users (id, full_name, email, gender, password_hash, is_verified,
			verification_code, code_expires_at, phone, nationality, region, date_of_birth,
			current_level, stars, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := s.db.Exec(query, u.ID, u.FullName, u.Email, u.Gender, u.PasswordHash, u.IsVerified,
			u.VerificationCode, u.CodeExpiresAt, u.Phone, u.Nationality, u.Region, u.DateOfBirth,
			u.CurrentLevel, u.Stars, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import user %d (%s): %w", u.ID, u.Email, err)
		}
	}

	log.Printf("Imported %d users", len(users))
	return nil
}

func (s *BackupService) importChildren(children []ChildBackup) error {
	for _, c := range children {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM children WHERE id = ?", c.ID).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		query := `INSERT INTO children (id, parent_id, name, age, current_level, stars, high_score, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := s.db.Exec(query, c.ID, c.ParentID, c.Name, c.Age, c.CurrentLevel, c.Stars, c.HighScore, c.CreatedAt, c.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import child %d (%s): %w", c.ID, c.Name, err)
		}
	}

	log.Printf("Imported %d children", len(children))
	return nil
}
