package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func signUpAndVerify(t *testing.T, env *testEnv, username, email, password string) {
	t.Helper()

	resp := doJSON(t, env.router, http.MethodPost, "/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, env.router, http.MethodPost, "/auth/verify", map[string]string{
		"email":             email,
		"verification_code": env.notifier.codeFor(email),
	}, "")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthenticateUserMiddleware(t *testing.T) {
	env := newTestEnv(t)
	signUpAndVerify(t, env, "alice", "alice@x.com", "pw123456")

	t.Run("no credential is rejected on protected route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		resp := httptest.NewRecorder()
		env.router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("wrong scheme is treated as no credential", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp := httptest.NewRecorder()
		env.router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("garbage token degrades to anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp := httptest.NewRecorder()
		env.router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("token for unknown account degrades to anonymous", func(t *testing.T) {
		token, _, err := env.tokens.NewJWT("ghost@x.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		env.router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("expired token degrades to anonymous", func(t *testing.T) {
		token, err := env.tokens.NewJWTWithClaims("alice@x.com", nil, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		env.router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid token establishes identity", func(t *testing.T) {
		token, _, err := env.tokens.NewJWT("alice@x.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		env.router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"email":"alice@x.com"`)
	})

	t.Run("auth routes stay reachable without a token", func(t *testing.T) {
		resp := doJSON(t, env.router, http.MethodPost, "/auth/login", map[string]string{
			"email":    "alice@x.com",
			"password": "pw123456",
		}, "")
		require.Equal(t, http.StatusOK, resp.Code)
	})
}
