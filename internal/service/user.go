package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/accountly/backend/internal/config"
	"github.com/accountly/backend/internal/domain"
	"github.com/accountly/backend/internal/repository"
	"github.com/accountly/backend/pkg/hash"
	"github.com/accountly/backend/pkg/logger"
	"github.com/accountly/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	userRepository repository.Users
	hasher         hash.PasswordHasher
	otpGenerator   otp.Generator
	notifier       VerificationNotifier
	authConfig     config.AuthConfig

	now func() time.Time
}

func newUserService(
	userRepository repository.Users,
	hasher hash.PasswordHasher,
	otpGenerator otp.Generator,
	notifier VerificationNotifier,
	authConfig config.AuthConfig,
) *userService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		otpGenerator:   otpGenerator,
		notifier:       notifier,
		authConfig:     authConfig,
		now:            time.Now,
	}
}

// SignUp registers a disabled account with a fresh verification code and
// kicks off code delivery. A delivery failure does not fail the signup, the
// user can always ask for a resend.
func (s *userService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	code, err := s.otpGenerator.RandomCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		VerificationCode: sql.NullString{
			String: code,
			Valid:  true,
		},
		VerificationCodeExpiresAt: sql.NullTime{
			Time:  s.now().Add(s.authConfig.SignupCodeTTL),
			Valid: true,
		},
		Enabled: false,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	if err := s.notifier.NotifyVerificationCode(ctx, user.Email, code); err != nil {
		logger.Error("notify verification code failed", zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

// Authenticate checks credentials against a verified account. An unverified
// account fails before the password check, regardless of password
// correctness.
func (s *userService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if !user.Enabled {
		return nil, ErrUserNotVerified
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify password failed: %w", err)
	}

	return user, nil
}

// Verify flips a pending account to verified when the submitted code matches
// the stored one before its expiry. Enabling and clearing the code happen in
// a single update.
func (s *userService) Verify(ctx context.Context, email string, code string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if user.Enabled || !user.VerificationCode.Valid {
		return ErrAlreadyVerified
	}

	if !user.VerificationCodeExpiresAt.Valid || s.now().After(user.VerificationCodeExpiresAt.Time) {
		return ErrCodeExpired
	}

	// Exact string comparison, no normalization.
	if user.VerificationCode.String != code {
		return ErrCodeMismatch
	}

	if err := s.userRepository.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark user verified failed: %w", err)
	}

	return nil
}

// ResendCode replaces the verification code of a pending account and extends
// its expiry by the resend window, which is wider than the signup one.
func (s *userService) ResendCode(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if user.Enabled {
		return ErrAlreadyVerified
	}

	code, err := s.otpGenerator.RandomCode()
	if err != nil {
		return fmt.Errorf("generate verification code failed: %w", err)
	}

	expiresAt := s.now().Add(s.authConfig.ResendCodeTTL)
	if err := s.userRepository.UpdateVerificationCode(ctx, user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("update verification code failed: %w", err)
	}

	if err := s.notifier.NotifyVerificationCode(ctx, user.Email, code); err != nil {
		logger.Error("notify verification code failed", zap.String("email", user.Email), zap.Error(err))
	}

	return nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	return user, nil
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.userRepository.GetAll(ctx)
}
