package v1

import (
	"net/http"

	"github.com/accountly/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAuthRoutes(router *gin.Engine) {
	auth := router.Group("/auth")

	auth.POST("/signup", h.signUp)
	auth.POST("/login", h.login)
	auth.POST("/verify", h.verify)
	auth.POST("/resend", h.resendCode)
}

type signUpRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	token, ttl, err := h.tokenManager.NewJWT(user.Email)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	})
}

type verifyRequest struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verification_code" binding:"required,vercode"`
}

func (h *Handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.Verify(c.Request.Context(), req.Email, req.VerificationCode); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.String(http.StatusOK, "Account verified successfully")
}

func (h *Handler) resendCode(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := h.services.Users.ResendCode(c.Request.Context(), email); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.String(http.StatusOK, "Verification code resent")
}
