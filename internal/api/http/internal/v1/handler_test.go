package v1

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/accountly/backend/internal/config"
	"github.com/accountly/backend/internal/domain"
	"github.com/accountly/backend/internal/repository"
	"github.com/accountly/backend/internal/service"
	"github.com/accountly/backend/pkg/auth"
	"github.com/accountly/backend/pkg/hash"
	"github.com/accountly/backend/pkg/otp"
	"github.com/accountly/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEntry
	}
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *memoryUserRepo) GetOneByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			out := *user
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.byEmail))
	for _, user := range r.byEmail {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memoryUserRepo) UpdateVerificationCode(_ context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			user.VerificationCode.String = code
			user.VerificationCode.Valid = true
			user.VerificationCodeExpiresAt.Time = expiresAt
			user.VerificationCodeExpiresAt.Valid = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memoryUserRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			user.Enabled = true
			user.VerificationCode.String = ""
			user.VerificationCode.Valid = false
			user.VerificationCodeExpiresAt.Time = time.Time{}
			user.VerificationCodeExpiresAt.Valid = false
			return nil
		}
	}
	return domain.ErrNotFound
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{codes: make(map[string]string)}
}

func (n *recordingNotifier) NotifyVerificationCode(_ context.Context, email string, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[email] = code
	return nil
}

func (n *recordingNotifier) codeFor(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

type testEnv struct {
	router   *gin.Engine
	repo     *memoryUserRepo
	notifier *recordingNotifier
	tokens   *auth.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	tokens, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL: time.Hour,
		SigningKey:     "test-signing-key-with-enough-entropy",
	})
	require.NoError(t, err)

	repo := newMemoryUserRepo()
	notifier := newRecordingNotifier()

	services := service.NewServices(service.Deps{
		Config: &config.Config{
			Auth: config.AuthConfig{
				SignupCodeTTL: 15 * time.Minute,
				ResendCodeTTL: 60 * time.Minute,
			},
		},
		Hasher:       hash.NewBcryptHasher(bcrypt.MinCost),
		OtpGenerator: otp.NewRandomGenerator(),
		Repos:        &repository.Repositories{Users: repo},
		Notifier:     notifier,
	})

	router := gin.New()
	NewHandler(services, tokens).Init(router)

	return &testEnv{
		router:   router,
		repo:     repo,
		notifier: notifier,
		tokens:   tokens,
	}
}
