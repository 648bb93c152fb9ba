package repository

import (
	"database/sql"
	"fmt"
	"time"

	"tinymath/internal/database"
	"tinymath/internal/models"
)

const userColumns = `id, full_name, email, gender, password_hash, is_verified,
		verification_code, code_expires_at,
		COALESCE(phone, ''), COALESCE(nationality, ''), COALESCE(region, ''), COALESCE(date_of_birth, ''),
		current_level, stars, created_at, updated_at`

// UserRepository handles database operations for parent accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new unverified account with its initial one-time code
func (r *UserRepository) CreateUser(fullName, email, gender, passwordHash, code string, codeExpiresAt time.Time) (*models.User, error) {
	query := `
		INSERT INTO users (full_name, email, gender, password_hash, is_verified, verification_code, code_expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, fullName, email, gender, passwordHash, false, code, codeExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{
		ID:               id,
		FullName:         fullName,
		Email:            email,
		Gender:           gender,
		PasswordHash:     passwordHash,
		Verified:         false,
		VerificationCode: &code,
		CodeExpiresAt:    &codeExpiresAt,
		CurrentLevel:     1,
		Stars:            0,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	return user, nil
}

// GetUserByEmail retrieves an account by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return r.scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves an account by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.scanUser(r.db.QueryRow(query, id))
}

// SetVerificationCode stores a fresh one-time code and its expiry on the account
func (r *UserRepository) SetVerificationCode(userID int64, code string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET verification_code = ?, code_expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, code, expiresAt, userID); err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	return nil
}

// MarkVerified flips the account to verified and clears the pending code.
// The update is filtered on the code so a concurrent consumption loses cleanly.
// Returns false when no row matched.
func (r *UserRepository) MarkVerified(userID int64, code string) (bool, error) {
	query := `
		UPDATE users
		SET is_verified = ?, verification_code = NULL, code_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND verification_code = ?
	`
	result, err := r.db.Exec(query, true, userID, code)
	if err != nil {
		return false, fmt.Errorf("failed to mark verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read verify result: %w", err)
	}
	return rows > 0, nil
}

// ResetPasswordByCode replaces the password hash for the account matching
// email with a matching, unexpired reset code, clearing the code in the same
// statement. Folding the expiry predicate into the update closes the window
// between checking a code and consuming it: of two concurrent resets with the
// same code, exactly one sees a row. Expiry is exclusive (code_expires_at > now).
// Returns false when no row matched.
func (r *UserRepository) ResetPasswordByCode(email, code, passwordHash string, now time.Time) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = ?, verification_code = NULL, code_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE email = ? AND verification_code = ? AND code_expires_at > ?
	`
	result, err := r.db.Exec(query, passwordHash, email, code, now)
	if err != nil {
		return false, fmt.Errorf("failed to reset password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read reset result: %w", err)
	}
	return rows > 0, nil
}

// UpdateProfile updates the editable profile fields of an account.
// Returns false when the account does not exist.
func (r *UserRepository) UpdateProfile(id int64, fullName, gender, phone, nationality, region, dateOfBirth string) (bool, error) {
	query := `
		UPDATE users
		SET full_name = ?, gender = ?, phone = ?, nationality = ?, region = ?, date_of_birth = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, fullName, gender, phone, nationality, region, dateOfBirth, id)
	if err != nil {
		return false, fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// UpdateProgress sets the account's game progress.
// Returns false when the account does not exist.
func (r *UserRepository) UpdateProgress(id int64, stars, currentLevel int) (bool, error) {
	query := `
		UPDATE users
		SET stars = ?, current_level = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, stars, currentLevel, id)
	if err != nil {
		return false, fmt.Errorf("failed to update progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// scanUser scans a single account row, mapping nullable code fields to pointers
func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var code sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Gender,
		&user.PasswordHash,
		&user.Verified,
		&code,
		&expiresAt,
		&user.Phone,
		&user.Nationality,
		&user.Region,
		&user.DateOfBirth,
		&user.CurrentLevel,
		&user.Stars,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if code.Valid {
		user.VerificationCode = &code.String
	}
	if expiresAt.Valid {
		user.CodeExpiresAt = &expiresAt.Time
	}

	return user, nil
}
