package v1

import (
	"net/http"

	"github.com/vibe-gaming/gatekeeper/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")

	users.GET("/me", h.userIdentityMiddleware, h.me)
}

// @Summary Current user
// @Tags Users
// @Description Профиль текущего пользователя
// @ModuleID usersMe
// @Accept  json
// @Produce  json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /users/me [get]
func (h *Handler) me(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		logger.Error("get user id from context failed", zap.Error(err))
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	account, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, account.Profile())
}
