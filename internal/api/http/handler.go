package apiHttp

import (
	"time"

	"github.com/accountly/backend/internal/config"
	"github.com/accountly/backend/internal/service"
	"github.com/accountly/backend/pkg/auth"
	"github.com/accountly/backend/pkg/limiter"
	"github.com/accountly/backend/pkg/logger"
	"github.com/accountly/backend/pkg/validator"

	internalV1 "github.com/accountly/backend/internal/api/http/internal/v1"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.HttpServer.AllowedOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager)
	internalHandlersV1.Init(router)
}
