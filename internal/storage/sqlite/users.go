package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartsplit/backend/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	user.UpdatedAt = user.CreatedAt

	query := `
		INSERT INTO users (id, email, display_name, password_hash, verified, verification_token, token_expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.Verified,
		nullString(user.VerificationToken),
		nullInt(user.TokenExpiresAt),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.getUserWhere(ctx, "id = ?", userID, userID)
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserWhere(ctx, "email = ?", email, email)
}

// GetUserByVerificationToken retrieves the user holding the given token.
func (s *SQLiteStore) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return s.getUserWhere(ctx, "verification_token = ?", token, token)
}

func (s *SQLiteStore) getUserWhere(ctx context.Context, where string, arg any, id string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, verified, verification_token, token_expires_at, created_at, updated_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	var token sql.NullString
	var expires sql.NullInt64
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.Verified,
		&token,
		&expires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.VerificationToken = token.String
	user.TokenExpiresAt = expires.Int64
	return user, nil
}

// UpdateUser replaces the stored user row with the given value.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()

	query := `
		UPDATE users
		SET email = ?, display_name = ?, password_hash = ?, verified = ?, verification_token = ?, token_expires_at = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.Verified,
		nullString(user.VerificationToken),
		nullInt(user.TokenExpiresAt),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return models.NewNotFound("user", user.ID)
	}

	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
