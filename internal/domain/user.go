package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User is the persisted account record. VerificationCode and
// VerificationCodeExpiresAt are present only while the account is pending
// and are cleared together, atomically with Enabled flipping to true.
type User struct {
	ID                        uuid.UUID      `db:"id"`
	Username                  string         `db:"username"`
	Email                     string         `db:"email"`
	PasswordHash              string         `db:"password_hash"`
	VerificationCode          sql.NullString `db:"verification_code"`
	VerificationCodeExpiresAt sql.NullTime   `db:"verification_code_expires_at"`
	Enabled                   bool           `db:"enabled"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
