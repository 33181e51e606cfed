package v1

import (
	"net/http"

	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/service"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	auth.POST("/register", h.register)
	auth.POST("/verify", h.verify)
	auth.GET("/verify", h.verifyLink)
	auth.POST("/login", h.login)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
} // @name RegisterRequest

// @Summary Register
// @Tags Auth
// @Description Регистрация по email и паролю, код подтверждения уходит на почту
// @ModuleID authRegister
// @Accept  json
// @Produce  json
// @Param input body registerRequest true "credentials"
// @Success 201 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 422 {object} ValidationErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("bind register request failed", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode)
		return
	}

	_, err := h.services.Auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Origin:    c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

type verifyRequest struct {
	Email            string `json:"email" form:"email"`
	VerificationCode string `json:"verification_code" form:"verification_code"`
} // @name VerifyRequest

// @Summary Verify email
// @Tags Auth
// @Description Подтверждение email кодом из письма
// @ModuleID authVerify
// @Accept  json
// @Produce  json
// @Param input body verifyRequest true "email and code"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 422 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/verify [post]
func (h *Handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("bind verify request failed", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode)
		return
	}

	h.verifyAccount(c, req)
}

// @Summary Verify email by link
// @Tags Auth
// @Description Подтверждение email по ссылке из письма
// @ModuleID authVerifyLink
// @Produce  json
// @Param email query string true "email"
// @Param verification_code query string true "verification code"
// @Success 200 {object} messageResponse
// @Failure 422 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/verify [get]
func (h *Handler) verifyLink(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Debug("bind verify query failed", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode)
		return
	}

	h.verifyAccount(c, req)
}

func (h *Handler) verifyAccount(c *gin.Context, req verifyRequest) {
	_, err := h.services.Auth.Verify(c.Request.Context(), service.VerifyInput{
		Email:            req.Email,
		VerificationCode: req.VerificationCode,
		Origin:           c.ClientIP(),
		UserAgent:        c.Request.UserAgent(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "User account verified successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
} // @name LoginRequest

type loginResponse struct {
	Message     string         `json:"message"`
	User        domain.Profile `json:"user"`
	AccessToken string         `json:"access_token"`
	ExpiresIn   int64          `json:"expires_in"`
} // @name LoginResponse

// @Summary Login
// @Tags Auth
// @Description Вход по email и паролю
// @ModuleID authLogin
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 422 {object} ValidationErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("bind login request failed", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode)
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Origin:    c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message:     "Login successful",
		User:        result.Account.Profile(),
		AccessToken: result.AccessToken,
		ExpiresIn:   int64(result.AccessTTL.Seconds()),
	})
}
