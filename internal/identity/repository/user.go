package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/pkg/database"
	"github.com/kycflow/kycflow-backend/pkg/errors"
)

const userColumns = `id, phone_number, full_name, email, password_hash, is_admin,
	       is_kyc_verified, kyc_rejection_reason, document_key, profile_photo_key,
	       created_at, updated_at, last_login_at`

// UserRepository handles user persistence
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, phone_number, full_name, email, password_hash, is_admin, document_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.PhoneNumber,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.DocumentKey,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &user, query, id)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByPhoneNumber gets a user by phone number
func (r *UserRepository) GetByPhoneNumber(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE phone_number = $1
	`
	err := r.db.GetContext(ctx, &user, query, phone)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateVerificationState writes a verification state in a single
// UPDATE, so the verified flag and rejection reason can never be
// written out of step with each other.
func (r *UserRepository) UpdateVerificationState(ctx context.Context, userID string, state domain.VerificationState) error {
	verified, reason := state.Columns()

	query := `
		UPDATE users
		SET is_kyc_verified = $2, kyc_rejection_reason = $3, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, verified, reason)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("user")
	}

	return nil
}

// SetVerifiedWithPhoto marks a user verified and records the stored
// profile-photo key in the same statement.
func (r *UserRepository) SetVerifiedWithPhoto(ctx context.Context, userID string, photoKey *string) error {
	query := `
		UPDATE users
		SET is_kyc_verified = TRUE, kyc_rejection_reason = '', profile_photo_key = COALESCE($2, profile_photo_key), updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, photoKey)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("user")
	}

	return nil
}

// TouchLastLogin records a successful login
func (r *UserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
