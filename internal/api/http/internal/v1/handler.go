package v1

import (
	"github.com/accountly/backend/internal/service"
	"github.com/accountly/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
	}
}

func (h *Handler) Init(router *gin.Engine) {
	h.initAuthRoutes(router)
	h.initUsersRoutes(router)
}
