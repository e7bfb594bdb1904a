package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/accountly/backend/internal/domain"
	"github.com/accountly/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// userResponse is the outward account projection. The password hash and the
// live verification code never leave the service.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Enabled:   user.Enabled,
		CreatedAt: user.CreatedAt,
	}
}

func errorResponse(c *gin.Context, code ErrorCode) {
	c.AbortWithStatusJSON(http.StatusBadRequest, getErrorStruct(code))
}

// serviceErrorResponse translates typed service failures into 400 responses,
// anything unexpected becomes an opaque 500.
func serviceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		errorResponse(c, EmailAlreadyRegisteredCode)
	case errors.Is(err, service.ErrUserNotFound):
		errorResponse(c, UserNotFoundCode)
	case errors.Is(err, service.ErrUserNotVerified):
		errorResponse(c, UserNotVerifiedCode)
	case errors.Is(err, service.ErrInvalidCredentials):
		errorResponse(c, InvalidCredentialsCode)
	case errors.Is(err, service.ErrCodeExpired):
		errorResponse(c, CodeExpiredCode)
	case errors.Is(err, service.ErrCodeMismatch):
		errorResponse(c, CodeMismatchCode)
	case errors.Is(err, service.ErrAlreadyVerified):
		errorResponse(c, AlreadyVerifiedCode)
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
		}
		response.Errors = out
		c.AbortWithStatusJSON(http.StatusBadRequest, response)
		return
	}

	c.AbortWithStatus(http.StatusBadRequest)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum field length is %v", value)
	case "max":
		return fmt.Sprintf("Maximum field length is %v", value)
	case "vercode":
		return "Verification code must be 6 digits"
	}
	return tag
}
