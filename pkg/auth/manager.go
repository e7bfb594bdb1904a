package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/accountly/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// TokenManager issues and verifies signed bearer tokens. The subject claim
// carries the account email; possession of a token with a live expiry is the
// whole session state, nothing is stored server side.
type TokenManager interface {
	NewJWT(subject string) (string, time.Duration, error)
	NewJWTWithClaims(subject string, extra map[string]any, ttl time.Duration) (string, error)
	ExtractSubject(accessToken string) (string, error)
	ExtractExpiry(accessToken string) (time.Time, error)
	IsValid(accessToken string, subject string) bool
	AccessTokenTTL() time.Duration
}

type Manager struct {
	signingKey     []byte
	accessTokenTTL time.Duration

	now func() time.Time
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	return &Manager{
		signingKey:     []byte(cfg.SigningKey),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}, nil
}

// NewJWT issues a token for subject with the configured default lifetime.
func (m *Manager) NewJWT(subject string) (string, time.Duration, error) {
	token, err := m.NewJWTWithClaims(subject, nil, m.accessTokenTTL)
	if err != nil {
		return "", 0, err
	}

	return token, m.accessTokenTTL, nil
}

// NewJWTWithClaims issues a token for subject with extra custom claims and an
// explicit lifetime. Registered claims win over colliding extra claims.
func (m *Manager) NewJWTWithClaims(subject string, extra map[string]any, ttl time.Duration) (string, error) {
	issuedAt := m.now()

	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(issuedAt)
	claims["exp"] = jwt.NewNumericDate(issuedAt.Add(ttl))

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt failed: %w", err)
	}

	return accessToken, nil
}

// parseClaims verifies the signature and decodes the payload. Expiry is not
// checked here, callers compare it against their own clock.
func (m *Manager) parseClaims(accessToken string) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.Parse(accessToken, func(token *jwt.Token) (any, error) {
		return m.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (m *Manager) ExtractSubject(accessToken string) (string, error) {
	claims, err := m.parseClaims(accessToken)
	if err != nil {
		return "", err
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}

	return subject, nil
}

func (m *Manager) ExtractExpiry(accessToken string) (time.Time, error) {
	claims, err := m.parseClaims(accessToken)
	if err != nil {
		return time.Time{}, err
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, fmt.Errorf("%w: missing expiry", ErrTokenMalformed)
	}

	return expiry.Time, nil
}

// IsValid reports whether the token carries a valid signature, names exactly
// the given subject and has not expired. Any decode failure counts as invalid.
func (m *Manager) IsValid(accessToken string, subject string) bool {
	claims, err := m.parseClaims(accessToken)
	if err != nil {
		return false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != subject {
		return false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}

	return expiry.Time.After(m.now())
}

func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}
