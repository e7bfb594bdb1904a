package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/accountly/backend/internal/db"
	"github.com/accountly/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO user
	(id, username, email, password_hash, verification_code, verification_code_expires_at, enabled)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.VerificationCode,
		user.VerificationCodeExpiresAt,
		user.Enabled,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT id, username, email, password_hash, verification_code, verification_code_expires_at, enabled, created_at, updated_at
	FROM user WHERE email = ?;
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by email failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
	SELECT id, username, email, password_hash, verification_code, verification_code_expires_at, enabled, created_at, updated_at
	FROM user WHERE id = uuid_to_bin(?);
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by id failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	const query = `
	SELECT id, username, email, password_hash, verification_code, verification_code_expires_at, enabled, created_at, updated_at
	FROM user ORDER BY created_at;
	`
	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("select all users failed: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	const query = `
	UPDATE user SET verification_code = ?, verification_code_expires_at = ? WHERE id = uuid_to_bin(?);
	`
	result, err := r.db.ExecContext(ctx, query, code, expiresAt, id)
	if err != nil {
		return fmt.Errorf("update verification code failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// MarkVerified enables the account and clears the verification code in one
// statement, no intermediate state is observable.
func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE user SET enabled = TRUE, verification_code = NULL, verification_code_expires_at = NULL WHERE id = uuid_to_bin(?);
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update user enabled failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
