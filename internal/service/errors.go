package service

import "errors"

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserNotVerified        = errors.New("account not verified, please verify your account")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrCodeExpired            = errors.New("verification code has expired")
	ErrCodeMismatch           = errors.New("invalid verification code")
	ErrAlreadyVerified        = errors.New("user already verified")
)
