package v1

import (
	"github.com/vibe-gaming/gatekeeper/internal/service"
	"github.com/vibe-gaming/gatekeeper/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Gatekeeper API
// @version 1.0
// @description Registration, email verification and login

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

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

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initUsersRoutes(v1)
}
