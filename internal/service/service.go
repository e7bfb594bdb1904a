package service

import (
	"context"

	"github.com/accountly/backend/internal/config"
	"github.com/accountly/backend/internal/domain"
	"github.com/accountly/backend/internal/repository"
	"github.com/accountly/backend/pkg/hash"
	"github.com/accountly/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Users Users
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	OtpGenerator otp.Generator
	Repos        *repository.Repositories
	Notifier     VerificationNotifier
}

func NewServices(deps Deps) *Services {
	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Hasher,
			deps.OtpGenerator,
			deps.Notifier,
			deps.Config.Auth,
		),
	}
}

// VerificationNotifier delivers a verification code to an address
// out-of-band. Failures are the caller's to log and swallow, signup and
// resend succeed regardless.
type VerificationNotifier interface {
	NotifyVerificationCode(ctx context.Context, email string, code string) error
}

type SignUpInput struct {
	Username string
	Email    string
	Password string
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)
	Verify(ctx context.Context, email string, code string) error
	ResendCode(ctx context.Context, email string) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
}
