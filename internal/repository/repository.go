package repository

import (
	"context"
	"time"

	"github.com/accountly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users Users
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users: newUserRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	UpdateVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
}
